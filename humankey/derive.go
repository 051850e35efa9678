package humankey

import (
	"errors"
	"fmt"

	"humankey/internal/common"

	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

var (
	// ErrInvalidScalar is returned when the signer result is not a usable secp256k1 private key
	ErrInvalidScalar = errors.New("invalid private key")
	// ErrKeyDerivation is returned when a valid scalar could not be turned into a key
	ErrKeyDerivation = errors.New("failed to derive key")
)

// DerivedKey is the keypair and account derived from the OPRF result
type DerivedKey struct {
	PrivateKey string `json:"privateKey"` // 0x + 64 hex
	PublicKey  string `json:"publicKey"`  // 0x04 + X + Y, uncompressed
	Address    string `json:"address"`    // EIP-55 checksummed
}

// CheckAndDeriveHumanKey turns the signer's decimal result into a secp256k1 key.
// The scalar must satisfy 0 < k < N; otherwise ErrInvalidScalar is returned
// and no key is constructed.
func CheckAndDeriveHumanKey(result string) (*DerivedKey, error) {
	k, err := common.ParseDecimalScalar(result)
	if err != nil {
		return nil, fmt.Errorf("%w - signer result is not a decimal integer: %w", ErrInvalidScalar, err)
	}
	defer k.SetInt64(0)

	// Convert to hex format (32 bytes for secp256k1)
	privateKeyHex := common.ScalarToHex(k)

	valid := common.IsValidScalar(k)
	zap.L().Debug("key derivation",
		zap.Int("privateKeyBytes", (len(privateKeyHex)-2)/2),
		zap.Bool("validSecp256k1", valid),
	)
	if !valid {
		return nil, fmt.Errorf("%w - outside secp256k1 curve order", ErrInvalidScalar)
	}

	return deriveKey(privateKeyHex)
}

// deriveKey builds the Ethereum keypair for a validated 0x-prefixed scalar
func deriveKey(privateKeyHex string) (*DerivedKey, error) {
	raw, err := hexutil.Decode(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyDerivation, err)
	}
	defer clear(raw)

	key, err := ethcrypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyDerivation, err)
	}
	defer key.D.SetInt64(0)

	derived := &DerivedKey{
		PrivateKey: hexutil.Encode(ethcrypto.FromECDSA(key)),
		PublicKey:  hexutil.Encode(ethcrypto.FromECDSAPub(&key.PublicKey)),
		Address:    ethcrypto.PubkeyToAddress(key.PublicKey).Hex(),
	}

	zap.L().Info("derived keys",
		zap.String("publicKey", derived.PublicKey),
		zap.String("address", derived.Address),
	)
	return derived, nil
}
