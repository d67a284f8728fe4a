package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tubefetch/tubefetch/internal/download"
	"github.com/tubefetch/tubefetch/internal/engine"
	"github.com/tubefetch/tubefetch/internal/format"
	"github.com/tubefetch/tubefetch/internal/model"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Interactive download session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		logger := newLogger(settings.LogLevel)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := settings.DownloadConfig()
		cfg.Logger = logger
		svc, err := download.NewService(engine.NewYTDLP(), cfg)
		if err != nil {
			return err
		}
		defer svc.Close()

		logger.Info("session started", "dir", svc.DownloadDir())
		return runPrompt(ctx, newConsole(os.Stdin, os.Stdout), svc)
	},
}

// runPrompt drives the interactive loop until the user quits or input closes.
func runPrompt(ctx context.Context, c *console, svc *download.Service) error {
	c.println("Enter a YouTube URL to inspect it, or one of:")
	c.println("  list   show downloaded files")
	c.println("  clear  remove downloaded files")
	c.println("  quit   exit")

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := c.readLine("\nURL")
		if err != nil {
			return nil
		}

		switch input {
		case "", "quit", "q", "exit":
			if input != "" {
				return nil
			}
			continue
		case "list", "l":
			files, err := svc.ListFiles()
			if err != nil {
				c.printf("Error: %v\n", err)
				continue
			}
			c.renderFiles(files)
			continue
		case "clear":
			if err := svc.ClearDownloads(); err != nil {
				c.printf("Error: %v\n", err)
			} else {
				c.println("Downloads cleared.")
			}
			continue
		}

		if err := inspectAndDownload(ctx, c, svc, input); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.renderFault(err)
		}
	}
}

func inspectAndDownload(ctx context.Context, c *console, svc *download.Service, url string) error {
	c.println("Fetching video information...")
	meta, err := svc.FetchMetadata(ctx, url)
	if err != nil {
		return err
	}

	c.renderMetadata(meta)
	c.renderFormats(format.Classify(meta.Formats))

	req, err := buildRequest(c, url)
	if err != nil {
		return err
	}
	if req == nil {
		return nil
	}

	return runDownload(ctx, c, svc, *req)
}

// buildRequest walks the user through kind, quality, container and sidecar
// selection. A nil request without error means the user backed out.
func buildRequest(c *console, url string) (*model.DownloadRequest, error) {
	kindNames := []string{"video+audio", "video only", "audio only"}
	kindAnswer, err := c.choose("Download type", kindNames, "video+audio")
	if err != nil {
		return nil, err
	}

	req := model.DownloadRequest{URL: url}
	switch kindAnswer {
	case "video only":
		req.Kind = model.KindVideoOnly
	case "audio only":
		req.Kind = model.KindAudioOnly
	default:
		req.Kind = model.KindVideoAudio
	}

	if req.Kind == model.KindAudioOnly {
		req.Quality, err = c.choose("Audio quality", model.AudioQualities(), model.QualityBest)
		if err != nil {
			return nil, err
		}
		req.Container, err = c.choose("Audio format", model.AudioContainers(), "mp3")
		if err != nil {
			return nil, err
		}
	} else {
		req.Quality, err = c.choose("Video quality", model.VideoQualities(), model.QualityBest)
		if err != nil {
			return nil, err
		}
		req.Container, err = c.choose("Container", model.VideoContainers(), "mp4")
		if err != nil {
			return nil, err
		}
	}

	if req.Sidecars.Thumbnail, err = c.confirm("Save thumbnail?", false); err != nil {
		return nil, err
	}
	if req.Sidecars.Description, err = c.confirm("Save description?", false); err != nil {
		return nil, err
	}
	if req.Sidecars.Subtitles, err = c.confirm("Save subtitles?", false); err != nil {
		return nil, err
	}

	proceed, err := c.confirm("Start download?", true)
	if err != nil {
		return nil, err
	}
	if !proceed {
		return nil, nil
	}
	return &req, nil
}

func runDownload(ctx context.Context, c *console, svc *download.Service, req model.DownloadRequest) error {
	err := svc.Download(ctx, req, func(state model.DownloadState) {
		c.renderProgress(state)
	})
	c.println()

	if err != nil {
		c.renderFault(err)
		return offerFallback(ctx, c, svc, req)
	}

	c.println("Download complete.")
	files, listErr := svc.ListFiles()
	if listErr == nil {
		c.renderFiles(files)
	}
	return nil
}

// offerFallback proposes the degraded retry paths after a failed download:
// audio extraction first, then the lowest combined rendition.
func offerFallback(ctx context.Context, c *console, svc *download.Service, req model.DownloadRequest) error {
	if req.Kind != model.KindAudioOnly {
		retry, err := c.confirm("Try audio-only instead?", false)
		if err != nil || !retry {
			return nil
		}
		return runDownload(ctx, c, svc, req.AudioFallback())
	}

	retry, err := c.confirm("Try lowest video quality instead?", false)
	if err != nil || !retry {
		return nil
	}
	return runDownload(ctx, c, svc, req.LowestQualityFallback())
}
