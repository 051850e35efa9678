package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"humankey/humankey"
	"humankey/internal/client"
	"humankey/internal/config"
	"humankey/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, export bool) http.Handler {
	t.Helper()
	if export {
		t.Setenv("KEYFILE_EXPORT", "true")
	} else {
		t.Setenv("KEYFILE_EXPORT", "false")
	}
	require.NoError(t, config.Init())

	reg := prometheus.NewRegistry()
	signer := client.ModuleFunc(func(context.Context, string, string, string) (string, error) {
		return "1", nil
	})
	service := humankey.NewService(signer, "", metrics.New(reg))

	router, err := SetupRouter(service, func() bool { return true }, reg)
	require.NoError(t, err)
	return router
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter(t, false)

	tests := []struct {
		method string
		target string
		body   string
		status int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/swagger/doc.json", "", http.StatusOK},
		{http.MethodGet, "/oprf/qr?address=0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", "", http.StatusOK},
		{http.MethodPost, "/oprf/derive", `{"record":{"e_0":"0.1","e_1":"0.2","e_2":"0.3","e_3":"0.4","e_4":"0.5","e_5":"0.6","e_6":"0.7","e_7":"0.8"}}`, http.StatusOK},
		{http.MethodGet, "/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRouterMetricsAfterDerive(t *testing.T) {
	router := newTestRouter(t, false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/oprf/derive",
		strings.NewReader(`{"record":{"e_0":"1","e_1":"1","e_2":"1","e_3":"1","e_4":"1","e_5":"1","e_6":"1","e_7":"1"}}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `humankey_derivations_total{result="ok"} 1`)
}

func TestRouterExportToggle(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, false).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/oprf/export", strings.NewReader("{}")))
	// falls through to the page handler, which only serves "/"
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	newTestRouter(t, true).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/oprf/export", strings.NewReader("{}")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
