package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"humankey/internal/config"
	"humankey/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var (
	logLevel      string
	restoreLogger func()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "humankey",
	Short: "Derive a Human Key from pulse data",
	Long: `humankey hashes eight pulse values, asks a Human Network signer for the
OPRFSecp256k1 result and turns it into a secp256k1 keypair and Ethereum address.

Configuration is read from the environment (PORT, SIGNER_URL, SIGNER_TIMEOUT,
LOG_LEVEL, KEYFILE_DIR, KEYFILE_EXPORT, DEV_SIGNER_PORT, DEV_SIGNER_SEED).`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := config.Init(); err != nil {
			return err
		}
		level := config.Get().LogLevel
		if logLevel != "" {
			level = logLevel
		}
		logger, err := logging.New(level, config.Get().LogJSON)
		if err != nil {
			return err
		}
		restoreLogger = zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = zap.L().Sync()
		if restoreLogger != nil {
			restoreLogger()
		}
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level, overrides LOG_LEVEL")
}

// runServer serves srv until ctx is done or SIGINT/SIGTERM arrives, then shuts down gracefully
func runServer(ctx context.Context, srv *http.Server) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zap.L().Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down", zap.String("addr", srv.Addr))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
