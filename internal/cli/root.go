package cli

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tubefetch/tubefetch/internal/config"
	"github.com/tubefetch/tubefetch/internal/engine"
)

var (
	configFile string
	hardened   bool
)

var rootCmd = &cobra.Command{
	Use:   "tubefetch",
	Short: "Fetch YouTube videos and audio via yt-dlp",
	Long: "tubefetch inspects YouTube videos, lists their available formats and " +
		"downloads the selected rendition through yt-dlp, with automatic retry " +
		"and client rotation on throttling.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&hardened, "hardened", false, "rotate through hardened client profiles")

	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the command tree and returns its error for main to exit on.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadSettings reads configuration and applies flag overrides.
func loadSettings() (*config.Settings, error) {
	settings, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if hardened {
		settings.Hardened = true
	}
	if len(settings.SubtitleLangs) > 0 {
		engine.SubtitleLangs = settings.SubtitleLangs
	}
	return settings, nil
}

func newLogger(level string) *log.Logger {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           parsed,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}
