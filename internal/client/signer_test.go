package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestSignerClientRequest(t *testing.T) {
	var got SignerRequest
	srv := newTestSigner(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, RequestPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"result": "123456789"})
	})

	c := NewSignerClient(5 * time.Second)
	result, err := c.RequestFromSigner(context.Background(), "aGFzaA==", "OPRFSecp256k1", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "123456789", result)
	assert.Equal(t, SignerRequest{Value: "aGFzaA==", Method: "OPRFSecp256k1"}, got)
}

func TestSignerClientNumericResult(t *testing.T) {
	srv := newTestSigner(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": 115792089237316195423570985008687907852837564279074904382605163141518161494336}`))
	})

	result, err := NewSignerClient(time.Second).RequestFromSigner(context.Background(), "v", "m", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "115792089237316195423570985008687907852837564279074904382605163141518161494336", result)
}

func TestSignerClientErrorStatus(t *testing.T) {
	srv := newTestSigner(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "unsupported method"}`))
	})

	_, err := NewSignerClient(time.Second).RequestFromSigner(context.Background(), "v", "m", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "unsupported method")
}

func TestSignerClientBadBodies(t *testing.T) {
	bodies := map[string]string{
		"not json":     `<html>`,
		"empty result": `{}`,
		"error field":  `{"error": "quota exceeded"}`,
		"bool result":  `{"result": true}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := newTestSigner(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			_, err := NewSignerClient(time.Second).RequestFromSigner(context.Background(), "v", "m", srv.URL)
			assert.Error(t, err)
		})
	}
}

func TestSignerClientHonoursContext(t *testing.T) {
	srv := newTestSigner(t, func(w http.ResponseWriter, r *http.Request) {
		// reading the body lets the server notice the client going away
		io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := NewSignerClient(5*time.Second).RequestFromSigner(ctx, "v", "m", srv.URL)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSignerEndpoint(t *testing.T) {
	got, err := SignerEndpoint("http://localhost:3030")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3030/request", got)

	got, err = SignerEndpoint(" https://signer.example/base/ ")
	require.NoError(t, err)
	assert.Equal(t, "https://signer.example/base/request", got)

	for _, bad := range []string{"", "localhost:3030", "ftp://signer", "http://", "://x"} {
		_, err := SignerEndpoint(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestLoadSignerClient(t *testing.T) {
	module, err := LoadSignerClient(time.Second)()
	require.NoError(t, err)
	assert.IsType(t, &SignerClient{}, module)

	_, err = LoadSignerClient(0)()
	assert.Error(t, err)
}
