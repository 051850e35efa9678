package crypto

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"humankey/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	scryptN = 1 << 10
	os.Exit(m.Run())
}

func testKeyData() *model.KeyData {
	return &model.KeyData{
		PrivateKey: bytes.Repeat([]byte{0x01}, 32),
		CreatedAt:  "2026-01-02T03:04:05Z",
	}
}

func TestKeyFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.hkf")
	password := []byte("correct horse")

	err := EncryptKeyFile(path, "ethereum", "0xabc", "0x04ff", "cXI=", testKeyData(), password)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, utf8BOM))
	assert.NotContains(t, string(raw), "AQEBAQEB") // base64 of the plaintext key must not leak

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	keyFile, keyData, err := DecryptKeyFile(path, password)
	require.NoError(t, err)
	assert.Equal(t, "ethereum", keyFile.Network)
	assert.Equal(t, "0xabc", keyFile.Address)
	assert.Equal(t, "0x04ff", keyFile.PublicKey)
	assert.Equal(t, testKeyData(), keyData)

	address, err := ReadKeyFileAddress(path)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", address)
}

func TestDecryptWrongPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.hkf")
	require.NoError(t, EncryptKeyFile(path, "ethereum", "0xabc", "", "", testKeyData(), []byte("one")))

	_, _, err := DecryptKeyFile(path, []byte("two"))
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestEncryptRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.hkf")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0600))

	err := EncryptKeyFile(path, "ethereum", "0xabc", "", "", testKeyData(), []byte("pw"))
	assert.ErrorIs(t, err, ErrFileNotEmpty)
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestEncryptAllowsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.hkf")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	assert.NoError(t, EncryptKeyFile(path, "ethereum", "0xabc", "", "", testKeyData(), []byte("pw")))
}

func TestEncryptValidation(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, EncryptKeyFile(filepath.Join(dir, "key.json"), "ethereum", "0xabc", "", "", testKeyData(), []byte("pw")))
	assert.Error(t, EncryptKeyFile(filepath.Join(dir, "key.hkf"), "ethereum", "0xabc", "", "", testKeyData(), nil))
}

func TestReadKeyFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadKeyFileAddress(filepath.Join(dir, "missing.hkf"))
	assert.EqualError(t, err, "file does not exist")

	empty := filepath.Join(dir, "empty.hkf")
	require.NoError(t, os.WriteFile(empty, nil, 0600))
	_, err = ReadKeyFileAddress(empty)
	assert.EqualError(t, err, "file is empty")

	garbage := filepath.Join(dir, "garbage.hkf")
	require.NoError(t, os.WriteFile(garbage, []byte("not json"), 0600))
	_, err = ReadKeyFileAddress(garbage)
	assert.Error(t, err)
}
