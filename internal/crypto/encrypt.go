package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"humankey/internal/model"

	"golang.org/x/crypto/scrypt"
)

// KeyFileExt is the extension of encrypted key files
const KeyFileExt = ".hkf"

const (
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12
)

// scryptN: 2^18 (~256MB RAM, 0.5-2s per derivation).
var scryptN = 1 << 18

// SetScryptCost overrides the scrypt N parameter and returns a restore func.
// Meant for tests of packages that write key files.
func SetScryptCost(n int) func() {
	prev := scryptN
	scryptN = n
	return func() { scryptN = prev }
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrFileNotEmpty is returned when the target key file already holds data
var ErrFileNotEmpty = fmt.Errorf("file is not empty: %w", os.ErrExist)

// EncryptKeyFile encrypts key data and writes it to an .hkf file
// password must be []byte for security (caller should zero it after use)
func EncryptKeyFile(filePath string, network, address, publicKey, qrCode string, keyData *model.KeyData, password []byte) error {
	if !strings.HasSuffix(filePath, KeyFileExt) {
		return fmt.Errorf("file must have %s extension", KeyFileExt)
	}
	if len(password) == 0 {
		return errors.New("password cannot be empty")
	}

	// Refuse to overwrite an existing key file
	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return ErrFileNotEmpty
	}

	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return err
	}

	// Serialize key data
	plaintext, err := json.Marshal(keyData)
	if err != nil {
		return fmt.Errorf("failed to marshal key data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	keyFile := model.KeyFile{
		Network:    network,
		Address:    address,
		PublicKey:  publicKey,
		QR:         qrCode,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}

	fileData, err := json.MarshalIndent(keyFile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal key file: %w", err)
	}

	// Add UTF-8 BOM for proper display in Windows
	fileDataWithBOM := append(append([]byte{}, utf8BOM...), fileData...)

	if err := os.WriteFile(filePath, fileDataWithBOM, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// newGCM derives the AES-256-GCM cipher for password and salt
func newGCM(password, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
