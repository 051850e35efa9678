package cmd

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"humankey/humankey"
	"humankey/internal/devsigner"
	"humankey/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addressOne = "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"

func TestPrintKeyMasksPrivateKey(t *testing.T) {
	key, err := humankey.CheckAndDeriveHumanKey("1")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printKey(&out, key, false, false))
	assert.Contains(t, out.String(), "Private Key: "+maskedKey)
	assert.Contains(t, out.String(), "Address:     "+addressOne)
	assert.NotContains(t, out.String(), key.PrivateKey)

	out.Reset()
	require.NoError(t, printKey(&out, key, true, false))
	assert.Contains(t, out.String(), key.PrivateKey)
}

func TestPrintKeyJSON(t *testing.T) {
	key, err := humankey.CheckAndDeriveHumanKey("1")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printKey(&out, key, true, true))

	var got humankey.DerivedKey
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, *key, got)
}

func TestDeriveCommandAgainstDevSigner(t *testing.T) {
	signer, err := devsigner.New("cmd test seed", nil)
	require.NoError(t, err)
	srv := httptest.NewServer(signer.Handler())
	t.Cleanup(srv.Close)

	t.Setenv("LOG_LEVEL", "error")
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs([]string{"derive", "--signer-url", srv.URL, "--json", "--show-private-key"})
	t.Cleanup(func() {
		RootCmd.SetArgs(nil)
		showPrivateKey, jsonOutput, signerURL = false, false, ""
	})

	require.NoError(t, RootCmd.Execute())

	var got humankey.DerivedKey
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))

	// the dev signer is deterministic for a seed, so the CLI must agree with a direct derivation
	sample := recordFromFlags()
	value, err := humankey.EncodePulseRecord(sample)
	require.NoError(t, err)
	result, err := signer.Evaluate(value, humankey.MethodOPRFSecp256k1)
	require.NoError(t, err)
	want, err := humankey.CheckAndDeriveHumanKey(result)
	require.NoError(t, err)

	assert.Equal(t, *want, got)
	assert.True(t, strings.HasPrefix(got.PublicKey, "0x04"))
}

func TestDeriveCommandRejectsBadRecord(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs([]string{"derive", "--signer-url", "http://127.0.0.1:1", "--e_2", "not-a-number"})
	t.Cleanup(func() {
		RootCmd.SetArgs(nil)
		signerURL = ""
		sample := model.DefaultPulseRecord()
		deriveRecord = sample.Fields()
	})

	err := RootCmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, humankey.ErrInvalidInput)
}
