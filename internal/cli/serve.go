package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tubefetch/tubefetch/internal/download"
	"github.com/tubefetch/tubefetch/internal/engine"
	"github.com/tubefetch/tubefetch/internal/web"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web form UI",
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		logger := newLogger(settings.LogLevel)

		addr := settings.ListenAddr
		if listenAddr != "" {
			addr = listenAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := settings.DownloadConfig()
		cfg.Logger = logger
		svc, err := download.NewService(engine.NewYTDLP(), cfg)
		if err != nil {
			return err
		}
		defer svc.Close()

		logger.Info("session started", "id", svc.SessionID(), "dir", svc.DownloadDir())
		return web.NewServer(svc, logger).Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (overrides config)")
}
