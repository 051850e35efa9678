package humankey

import (
	"errors"
	"fmt"
	"math/big"
	"path/filepath"
	"time"

	"humankey/internal/common"
	"humankey/internal/crypto"
	"humankey/internal/model"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

const networkEthereum = "ethereum"

// FileExistsError is an error when file already exists and is not empty
type FileExistsError struct {
	Message string
}

func (e *FileExistsError) Error() string {
	return e.Message
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	var target *FileExistsError
	return errors.As(err, &target)
}

// ExportKey encrypts key into an .hkf file at filePath.
// password must be []byte for security (caller should zero it after use)
func ExportKey(filePath string, key *DerivedKey, password []byte) error {
	if filepath.Ext(filePath) != crypto.KeyFileExt {
		return fmt.Errorf("file must have %s extension", crypto.KeyFileExt)
	}

	qrCode, err := GenerateQRCode(key.Address)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	privateKey, err := hexutil.Decode(key.PrivateKey)
	if err != nil {
		return fmt.Errorf("invalid private key encoding: %w", err)
	}
	defer clear(privateKey)

	keyData := &model.KeyData{
		PrivateKey: privateKey,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	if err := crypto.EncryptKeyFile(filePath, networkEthereum, key.Address, key.PublicKey, qrCode, keyData, password); err != nil {
		if errors.Is(err, crypto.ErrFileNotEmpty) {
			return &FileExistsError{Message: "file is not empty"}
		}
		return fmt.Errorf("failed to encrypt key: %w", err)
	}
	return nil
}

// OpenKeyFile decrypts an .hkf file and re-derives the key it holds.
// The derived address must match the address stored in the file.
func OpenKeyFile(filePath string, password []byte) (*DerivedKey, error) {
	keyFile, keyData, err := crypto.DecryptKeyFile(filePath, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt key file: %w", err)
	}
	defer clear(keyData.PrivateKey)

	if len(keyData.PrivateKey) != common.ScalarBytes {
		return nil, fmt.Errorf("invalid private key length")
	}

	k := new(big.Int).SetBytes(keyData.PrivateKey)
	defer k.SetInt64(0)
	if !common.IsValidScalar(k) {
		return nil, fmt.Errorf("%w - outside secp256k1 curve order", ErrInvalidScalar)
	}

	key, err := deriveKey(common.ScalarToHex(k))
	if err != nil {
		return nil, err
	}
	if key.Address != keyFile.Address {
		return nil, fmt.Errorf("private key does not match address")
	}
	return key, nil
}
