package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/tubefetch/tubefetch/internal/download"
	"github.com/tubefetch/tubefetch/internal/engine"
	"github.com/tubefetch/tubefetch/internal/format"
)

var fetchJSON bool

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Inspect a video without downloading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		logger := newLogger(settings.LogLevel)

		cfg := settings.DownloadConfig()
		cfg.Logger = logger
		svc, err := download.NewService(engine.NewYTDLP(), cfg)
		if err != nil {
			return err
		}
		defer svc.Close()

		meta, err := svc.FetchMetadata(cmd.Context(), args[0])
		if err != nil {
			c := newConsole(os.Stdin, os.Stderr)
			c.renderFault(err)
			return err
		}

		if fetchJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(meta)
		}

		c := newConsole(os.Stdin, os.Stdout)
		c.renderMetadata(meta)
		c.renderFormats(format.Classify(meta.Formats))
		return nil
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "print raw metadata as JSON")
	rootCmd.AddCommand(fetchCmd)
}
