package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nfrund/classmeta/internal/app"
	"github.com/nfrund/classmeta/internal/config"
	"github.com/nfrund/classmeta/internal/logging"
	"github.com/nfrund/classmeta/internal/typeregistry"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the registry over HTTP",
	Long: `Register the application's classes into the process-wide registry and
serve it over HTTP until interrupted.

Configuration is read from .env and the environment:
  CLASSMETA_HTTP_ADDR        listen address (default :8080)
  CLASSMETA_EVENTS_TOPIC     topic registrations are published on
  CLASSMETA_PUBLISH_EVENTS   set to false to disable publishing
  LOG_FORMAT, LOG_LEVEL      text|json, debug|info|warn|error`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		if serveAddr != "" {
			cfg.HTTPAddr = serveAddr
		}
		logger := logging.New(cfg.LogFormat, cfg.LogLevel)

		a, err := app.New(cfg, logger, typeregistry.Default())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return a.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides CLASSMETA_HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
