package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for DerivationsTotal
const (
	ResultOK            = "ok"
	ResultInitFailed    = "init_failed"
	ResultRequestFailed = "request_failed"
	ResultInvalidScalar = "invalid_scalar"
	ResultInvalidInput  = "invalid_input"
)

// Metrics used for prometheus
type Metrics struct {
	DerivationsTotal *prometheus.CounterVec
	SignerDuration   prometheus.Histogram
	SignerRequests   *prometheus.CounterVec
	KeyFilesWritten  prometheus.Counter
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DerivationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "humankey_derivations_total",
				Help: "Human key derivation attempts by result.",
			},
			[]string{"result"},
		),
		SignerDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "humankey_signer_request_duration_seconds",
				Help:    "Latency of requests forwarded to the signer.",
				Buckets: prometheus.DefBuckets,
			},
		),
		SignerRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "humankey_dev_signer_requests_total",
				Help: "Requests served by the development signer by method.",
			},
			[]string{"method"},
		),
		KeyFilesWritten: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "humankey_keyfiles_written_total",
				Help: "Encrypted key files written.",
			},
		),
	}
	reg.MustRegister(m.DerivationsTotal, m.SignerDuration, m.SignerRequests, m.KeyFilesWritten)
	return m
}

// Discard returns metrics registered on a throwaway registry.
func Discard() *Metrics {
	return New(prometheus.NewRegistry())
}
