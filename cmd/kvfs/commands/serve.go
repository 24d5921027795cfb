package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/kvfs/internal/logger"
	"github.com/marmos91/kvfs/pkg/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP gateway",
	Long: `Start the HTTP gateway exposing the filesystem over REST.

The gateway serves file content, metadata, listings and deletes under
/api/v1, health probes under /health, and Prometheus metrics under /metrics
when enabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fs, err := openFilesystem(cfg)
		if err != nil {
			return err
		}
		defer fs.Close()

		server := api.NewServer(cfg.Server.Listen, fs, cfg.Server.RequestTimeout, cfg.Server.MaxBodySize.Int64())

		errc := make(chan error, 1)
		go func() {
			errc <- server.Start()
		}()

		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errc:
			return err
		case sig := <-sigc:
			logger.Info("signal received", "signal", sig.String())
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
