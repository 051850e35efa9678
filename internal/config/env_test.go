package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears variables for the duration of the test
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestInitDefaults(t *testing.T) {
	unsetEnv(t, "PORT", "SIGNER_URL", "SIGNER_METHOD", "SIGNER_TIMEOUT", "LOG_LEVEL", "KEYFILE_DIR", "KEYFILE_EXPORT")
	require.NoError(t, Init())

	assert.Equal(t, "8080", GetPort())
	assert.Equal(t, "http://localhost:3030", GetSignerURL())
	assert.Equal(t, "OPRFSecp256k1", GetSignerMethod())
	assert.Equal(t, 30*time.Second, GetSignerTimeout())
	assert.Equal(t, ".", GetKeyFileDir())
	assert.False(t, KeyFileExportEnabled())
	assert.Equal(t, "info", Get().LogLevel)
}

func TestInitFromEnv(t *testing.T) {
	unsetEnv(t, "SIGNER_METHOD")
	t.Setenv("PORT", "9090")
	t.Setenv("SIGNER_URL", "https://signer.example")
	t.Setenv("SIGNER_TIMEOUT", "5s")
	t.Setenv("KEYFILE_EXPORT", "true")

	require.NoError(t, Init())

	assert.Equal(t, "9090", GetPort())
	assert.Equal(t, "https://signer.example", GetSignerURL())
	assert.Equal(t, 5*time.Second, GetSignerTimeout())
	assert.True(t, KeyFileExportEnabled())
}

func TestInitRejectsBadTimeout(t *testing.T) {
	t.Setenv("SIGNER_TIMEOUT", "not-a-duration")
	assert.Error(t, Init())

	t.Setenv("SIGNER_TIMEOUT", "0s")
	assert.Error(t, Init())
}

func TestKeyFilePassword(t *testing.T) {
	SetKeyFilePassword(nil)
	_, err := GetKeyFilePasswordBytes()
	assert.Error(t, err)

	SetKeyFilePassword([]byte("secret"))
	got, err := GetKeyFilePasswordBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), got)

	// returned slice is a copy
	clear(got)
	again, err := GetKeyFilePasswordBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), again)
}
