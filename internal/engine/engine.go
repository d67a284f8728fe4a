package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	ytdlp "github.com/lrstanley/go-ytdlp"

	"github.com/tubefetch/tubefetch/internal/faults"
	"github.com/tubefetch/tubefetch/internal/model"
)

// Engine network hygiene applied to every call
const socketTimeoutSec = 30

// ProgressUpdate is one periodic status record from an in-flight transfer
type ProgressUpdate struct {
	Percent         float64
	DownloadedBytes int64
	TotalBytes      int64
	Speed           string
	ETA             string
}

// Engine is the extraction-engine boundary. Implementations resolve a URL to
// metadata and perform the transfer; everything behind it is opaque.
type Engine interface {
	FetchMetadata(ctx context.Context, url string, timeout time.Duration, profile ClientProfile) (*model.VideoMetadata, error)
	Download(ctx context.Context, url string, opts Options, profile ClientProfile, onProgress func(ProgressUpdate)) error
}

// YTDLP drives the yt-dlp library
type YTDLP struct{}

// NewYTDLP returns the yt-dlp backed engine
func NewYTDLP() *YTDLP {
	return &YTDLP{}
}

// FetchMetadata probes the URL in metadata-only mode, no transfer happens.
// Subtitle extraction stays off here; it tends to trip rate limits.
func (e *YTDLP) FetchMetadata(ctx context.Context, url string, timeout time.Duration, profile ClientProfile) (*model.VideoMetadata, error) {
	if timeout <= 0 {
		timeout = socketTimeoutSec * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := ytdlp.New().
		Quiet().
		NoWarnings().
		SkipDownload().
		DumpSingleJSON().
		SocketTimeout(timeout.Seconds())
	applyProfile(cmd, profile)

	result, err := cmd.Run(ctx, url)
	if err != nil {
		return nil, faults.Wrap(err, faults.CategoryExtractionFailed)
	}

	meta, err := projectMetadata([]byte(result.Stdout))
	if err != nil {
		return nil, faults.Wrap(err, faults.CategoryExtractionFailed)
	}
	return meta, nil
}

// Download runs the actual transfer, forwarding periodic progress records.
// Retrying is the orchestrator's job; the engine performs exactly one attempt.
func (e *YTDLP) Download(ctx context.Context, url string, opts Options, profile ClientProfile, onProgress func(ProgressUpdate)) error {
	cmd := ytdlp.New().
		Output(opts.OutputTemplate).
		RestrictFilenames().
		ForceOverwrites().
		NoWarnings().
		SocketTimeout(socketTimeoutSec).
		Format(opts.FormatSelector)

	if opts.MergeContainer != "" {
		cmd.MergeOutputFormat(opts.MergeContainer)
	}
	if opts.ExtractAudio {
		cmd.ExtractAudio().AudioFormat(opts.AudioFormat)
		if opts.AudioQuality != "" {
			cmd.AudioQuality(opts.AudioQuality)
		}
	}
	if opts.Thumbnail {
		cmd.WriteThumbnail()
	}
	if opts.Description {
		cmd.WriteDescription()
	}
	if opts.Subtitles {
		cmd.WriteSubs().WriteAutoSubs().SubLangs(strings.Join(opts.SubtitleLangs, ","))
	}
	applyProfile(cmd, profile)

	if onProgress != nil {
		cmd.ProgressFunc(500*time.Millisecond, func(update ytdlp.ProgressUpdate) {
			onProgress(toProgressUpdate(update))
		})
	}

	if _, err := cmd.Run(ctx, url); err != nil {
		return faults.Wrap(err, faults.CategoryDownloadFailed)
	}
	return nil
}

func applyProfile(cmd *ytdlp.Command, profile ClientProfile) {
	if profile.UserAgent != "" {
		cmd.UserAgent(profile.UserAgent)
	}
	for _, header := range profile.Headers {
		cmd.AddHeaders(header)
	}
	if profile.PlayerClient != "" {
		cmd.ExtractorArgs("youtube:player_client=" + profile.PlayerClient)
	}
	if profile.SleepInterval > 0 {
		cmd.SleepInterval(profile.SleepInterval)
	}
}

func toProgressUpdate(update ytdlp.ProgressUpdate) ProgressUpdate {
	out := ProgressUpdate{
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
	}

	if out.TotalBytes > 0 {
		out.Percent = float64(out.DownloadedBytes) / float64(out.TotalBytes) * 100
		if out.Percent > 100 {
			out.Percent = 100
		}
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			bytesPerSecond := float64(out.DownloadedBytes) / elapsed.Seconds()
			out.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
		}
	}

	if eta := update.ETA(); eta > 0 {
		out.ETA = eta.Round(time.Second).String()
	}

	return out
}
