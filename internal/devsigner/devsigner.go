// Package devsigner is a local stand-in for the signer network.
// It answers the same request contract as a real signer so the demo
// can run end to end on one machine. It is not oblivious: the server
// sees the hashed record and evaluates the PRF directly.
package devsigner

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"humankey/internal/client"
	"humankey/internal/common"
	"humankey/internal/metrics"
	"humankey/internal/model"

	"github.com/cloudflare/circl/oprf"
	"go.uber.org/zap"
)

const (
	methodOPRFSecp256k1 = "OPRFSecp256k1"
	keyInfo             = "humankey dev signer"
	maxRequestBytes     = 1 << 16
)

var (
	// ErrUnsupportedMethod is returned for methods other than OPRFSecp256k1
	ErrUnsupportedMethod = errors.New("unsupported method")
	// ErrEmptyValue is returned when the request carries no value
	ErrEmptyValue = errors.New("value is empty")
)

// Signer evaluates a keyed OPRF (P-256, SHA-256) and maps it onto a secp256k1 scalar
type Signer struct {
	server  oprf.Server
	metrics *metrics.Metrics
}

// New derives the signer key from seed
func New(seed string, m *metrics.Metrics) (*Signer, error) {
	if seed == "" {
		return nil, errors.New("dev signer seed is empty")
	}
	if m == nil {
		m = metrics.Discard()
	}

	// DeriveKey expects a 32 byte seed
	seedHash := sha256.Sum256([]byte(seed))
	key, err := oprf.DeriveKey(oprf.SuiteP256, oprf.BaseMode, seedHash[:], []byte(keyInfo))
	if err != nil {
		return nil, fmt.Errorf("failed to derive signer key: %w", err)
	}

	return &Signer{
		server:  oprf.NewServer(oprf.SuiteP256, key),
		metrics: m,
	}, nil
}

// Evaluate returns the decimal scalar for value. The result is always in [1, N-1].
func (s *Signer) Evaluate(value, method string) (string, error) {
	if method != methodOPRFSecp256k1 {
		return "", fmt.Errorf("%w %q", ErrUnsupportedMethod, method)
	}
	if strings.TrimSpace(value) == "" {
		return "", ErrEmptyValue
	}

	output, err := s.server.FullEvaluate([]byte(value))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate: %w", err)
	}

	// k = output mod (N-1) + 1
	nMinus1 := new(big.Int).Sub(common.Secp256k1Order(), big.NewInt(1))
	k := new(big.Int).SetBytes(output)
	k.Mod(k, nMinus1).Add(k, big.NewInt(1))
	return k.String(), nil
}

// ServeHTTP handles POST /request
func (s *Signer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req client.SignerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: model.CodeInvalidRequest})
		return
	}
	s.metrics.SignerRequests.WithLabelValues(req.Method).Inc()

	result, err := s.Evaluate(req.Value, req.Method)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrUnsupportedMethod) || errors.Is(err, ErrEmptyValue) {
			status = http.StatusBadRequest
		}
		zap.L().Warn("dev signer rejected request", zap.String("method", req.Method), zap.Error(err))
		writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: model.CodeInvalidRequest})
		return
	}

	zap.L().Debug("dev signer evaluated request", zap.String("method", req.Method))
	writeJSON(w, http.StatusOK, client.SignerResponse{Result: client.Decimal(result)})
}

// Handler returns a mux serving the signer endpoint
func (s *Signer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(client.RequestPath, s)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
