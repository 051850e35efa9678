package cmd

import (
	"net/http"
	"time"

	"humankey/humankey"
	"humankey/internal/api"
	"humankey/internal/client"
	"humankey/internal/config"
	"humankey/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the demo page and the JSON API",
	Long: `Serve the pulse data form on /, the OPRF JSON API under /oprf/,
Swagger UI on /swagger/ and Prometheus metrics on /metrics.

With KEYFILE_EXPORT=true the key file password is prompted once at startup.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if config.KeyFileExportEnabled() {
			if err := config.PromptForPassword(); err != nil {
				return err
			}
			defer config.SetKeyFilePassword(nil)
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		network := client.NewNetwork(client.LoadSignerClient(config.GetSignerTimeout()))
		service := humankey.NewService(network, config.GetSignerMethod(), metrics.New(reg))

		router, err := api.SetupRouter(service, network.Ready, reg)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              ":" + config.GetPort(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		zap.L().Info("starting server",
			zap.String("port", config.GetPort()),
			zap.String("signerUrl", config.GetSignerURL()),
			zap.Bool("keyFileExport", config.KeyFileExportEnabled()),
		)
		return runServer(cmd.Context(), srv)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
