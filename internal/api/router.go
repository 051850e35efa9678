package api

import (
	"net/http"

	_ "humankey/docs"
	"humankey/humankey"
	"humankey/internal/config"
	"humankey/internal/handler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers.
// ready backs /healthz, gatherer backs /metrics.
func SetupRouter(service *humankey.Service, ready func() bool, gatherer prometheus.Gatherer) (http.Handler, error) {
	humanKeyHandler, err := handler.NewHumanKeyHandler(service)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Prometheus
	if gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	mux.HandleFunc("/healthz", handler.Healthz(ready))

	// Demo page
	mux.HandleFunc("/", humanKeyHandler.Page)

	// OPRF endpoints
	mux.HandleFunc("/oprf/derive", humanKeyHandler.Derive)
	mux.HandleFunc("/oprf/qr", humanKeyHandler.QRCode)
	if config.KeyFileExportEnabled() {
		mux.HandleFunc("/oprf/export", humanKeyHandler.Export)
	}

	return mux, nil
}
