package humankey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"humankey/internal/client"
	"humankey/internal/metrics"
	"humankey/internal/model"

	"go.uber.org/zap"
)

// MethodOPRFSecp256k1 is the signer method that yields a secp256k1 scalar
const MethodOPRFSecp256k1 = "OPRFSecp256k1"

// ErrInvalidInput is returned for pulse records that are not well-formed
var ErrInvalidInput = errors.New("invalid pulse record")

// Service runs the request chain: hash -> signer -> validation -> derivation
type Service struct {
	signer  client.Module
	method  string
	metrics *metrics.Metrics
}

// NewService creates a Service. An empty method defaults to OPRFSecp256k1.
func NewService(signer client.Module, method string, m *metrics.Metrics) *Service {
	if method == "" {
		method = MethodOPRFSecp256k1
	}
	if m == nil {
		m = metrics.Discard()
	}
	return &Service{
		signer:  signer,
		method:  method,
		metrics: m,
	}
}

// RequestFromSigner forwards an already encoded value to the signer
func (s *Service) RequestFromSigner(ctx context.Context, value, signerURL string) (string, error) {
	start := time.Now()
	result, err := s.signer.RequestFromSigner(ctx, value, s.method, signerURL)
	s.metrics.SignerDuration.Observe(time.Since(start).Seconds())
	return result, err
}

// RequestOPRFSecp256k1 derives the human key for record using the signer at signerURL
func (s *Service) RequestOPRFSecp256k1(ctx context.Context, signerURL string, record model.PulseRecord) (*DerivedKey, error) {
	key, err := s.requestOPRFSecp256k1(ctx, signerURL, record)
	s.metrics.DerivationsTotal.WithLabelValues(resultLabel(err)).Inc()
	return key, err
}

func (s *Service) requestOPRFSecp256k1(ctx context.Context, signerURL string, record model.PulseRecord) (*DerivedKey, error) {
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	hashedPulseRecord, err := EncodePulseRecord(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	zap.L().Info("hashed pulse record", zap.String("value", hashedPulseRecord))

	result, err := s.RequestFromSigner(ctx, hashedPulseRecord, signerURL)
	if err != nil {
		zap.L().Warn("signer request failed", zap.String("signerUrl", signerURL), zap.Error(err))
		return nil, err
	}
	// the result is the private key itself, only its size is logged
	zap.L().Info("result from Human Network", zap.Int("digits", len(result)))

	return CheckAndDeriveHumanKey(result)
}

// resultLabel maps an error to the metrics result label
func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, ErrInvalidInput):
		return metrics.ResultInvalidInput
	case errors.Is(err, client.ErrModuleInit):
		return metrics.ResultInitFailed
	case errors.Is(err, ErrInvalidScalar), errors.Is(err, ErrKeyDerivation):
		return metrics.ResultInvalidScalar
	default:
		return metrics.ResultRequestFailed
	}
}

// KeyFileWritten records an encrypted key file written for a derived key
func (s *Service) KeyFileWritten() {
	s.metrics.KeyFilesWritten.Inc()
}
