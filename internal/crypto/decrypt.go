package crypto

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"humankey/internal/model"
)

// ErrInvalidPassword is returned when the key file cannot be opened with the password
var ErrInvalidPassword = errors.New("invalid password")

// DecryptKeyFile reads and decrypts an .hkf file
// password must be []byte for security (caller should zero it after use)
func DecryptKeyFile(filePath string, password []byte) (*model.KeyFile, *model.KeyData, error) {
	keyFile, err := readKeyFile(filePath)
	if err != nil {
		return nil, nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(keyFile.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(keyFile.Nonce)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode nonce: %w", err)
	}
	if len(nonce) != nonceLen {
		return nil, nil, fmt.Errorf("invalid nonce length %d", len(nonce))
	}

	ciphertext, err := base64.StdEncoding.DecodeString(keyFile.CipherText)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return nil, nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, nil, ErrInvalidPassword
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var keyData model.KeyData
	if err := json.Unmarshal(plaintext, &keyData); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal key data: %w", err)
	}

	return keyFile, &keyData, nil
}

// ReadKeyFileAddress reads only the address from an .hkf file (without decryption)
func ReadKeyFileAddress(filePath string) (string, error) {
	keyFile, err := readKeyFile(filePath)
	if err != nil {
		return "", err
	}
	return keyFile.Address, nil
}

func readKeyFile(filePath string) (*model.KeyFile, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("file does not exist")
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if fileInfo.Size() == 0 {
		return nil, errors.New("file is empty")
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Skip UTF-8 BOM if present
	fileData = bytes.TrimPrefix(fileData, utf8BOM)

	var keyFile model.KeyFile
	if err := json.Unmarshal(fileData, &keyFile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal key file: %w", err)
	}

	return &keyFile, nil
}
