package humankey

import (
	"os"
	"path/filepath"
	"testing"

	"humankey/internal/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	restore := crypto.SetScryptCost(1 << 10)
	code := m.Run()
	restore()
	os.Exit(code)
}

func TestExportAndOpenKeyFile(t *testing.T) {
	key, err := CheckAndDeriveHumanKey("1")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "human.hkf")
	password := []byte("pw")
	require.NoError(t, ExportKey(path, key, password))

	address, err := crypto.ReadKeyFileAddress(path)
	require.NoError(t, err)
	assert.Equal(t, addressForOne, address)

	opened, err := OpenKeyFile(path, password)
	require.NoError(t, err)
	assert.Equal(t, key, opened)

	_, err = OpenKeyFile(path, []byte("wrong"))
	assert.ErrorIs(t, err, crypto.ErrInvalidPassword)
}

func TestExportKeyRefusesOverwrite(t *testing.T) {
	key, err := CheckAndDeriveHumanKey("2")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "human.hkf")
	require.NoError(t, ExportKey(path, key, []byte("pw")))

	err = ExportKey(path, key, []byte("pw"))
	assert.True(t, IsFileExistsError(err))
}

func TestExportKeyRequiresExtension(t *testing.T) {
	key, err := CheckAndDeriveHumanKey("2")
	require.NoError(t, err)

	err = ExportKey(filepath.Join(t.TempDir(), "human.json"), key, []byte("pw"))
	assert.Error(t, err)
	assert.False(t, IsFileExistsError(err))
}

func TestOpenKeyFileDetectsMismatchedAddress(t *testing.T) {
	key, err := CheckAndDeriveHumanKey("1")
	require.NoError(t, err)
	key.Address = "0x2B5AD5c4795c026514f8317c7a215E218DcCD6cF"

	path := filepath.Join(t.TempDir(), "human.hkf")
	require.NoError(t, ExportKey(path, key, []byte("pw")))

	_, err = OpenKeyFile(path, []byte("pw"))
	assert.EqualError(t, err, "private key does not match address")
}
