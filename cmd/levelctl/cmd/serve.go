package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sunyelw/logging-log4j2/pkg/admin"
	"github.com/Sunyelw/logging-log4j2/pkg/configurator"
	"github.com/Sunyelw/logging-log4j2/pkg/status"
	"github.com/spf13/cobra"
)

var (
	serveConfig string
	serveAddr   string
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a logging context with the management endpoint",
		Long: `Load a logging configuration, keep its context running and expose the
management API over HTTP. Useful to try the endpoint out, or as a
sidecar carrying the logging context of a host process.`,
		RunE: runServe,
	}

	serveCmd.Flags().StringVar(&serveConfig, "config", "logging.yaml", "logging configuration file")
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8686", "management endpoint listen address")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	lctx := configurator.Initialize(configurator.InitOptions{
		CallerID: "levelctl",
		Location: serveConfig,
	})
	if lctx == nil {
		return fmt.Errorf("failed to initialize logging context from %s", serveConfig)
	}
	defer configurator.Shutdown(context.Background(), lctx)

	srv := admin.NewServer(&admin.Config{Addr: serveAddr}, configurator.Default())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigChan:
		status.Logger().Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
