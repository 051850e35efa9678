package cmd

import (
	"net/http"
	"time"

	"humankey/internal/config"
	"humankey/internal/devsigner"
	"humankey/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// signerCmd represents the signer command
var signerCmd = &cobra.Command{
	Use:   "signer",
	Short: "Run a local development signer",
	Long: `Run a signer answering POST /request with the same contract as a
Human Network signer. The PRF key is derived from DEV_SIGNER_SEED.
It is not oblivious and is meant for local testing only.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg := prometheus.NewRegistry()
		signer, err := devsigner.New(config.Get().DevSignerSeed, metrics.New(reg))
		if err != nil {
			return err
		}

		mux := http.NewServeMux()
		mux.Handle("/", signer.Handler())
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

		srv := &http.Server{
			Addr:              ":" + config.Get().DevSignerPort,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		zap.L().Warn("development signer is not oblivious, do not use with real pulse data")
		return runServer(cmd.Context(), srv)
	},
}

func init() {
	RootCmd.AddCommand(signerCmd)
}
