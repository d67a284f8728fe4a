package engine

import (
	"fmt"
	"strings"

	"github.com/tubefetch/tubefetch/internal/model"
)

// Default subtitle languages requested when the subtitles sidecar is on
var SubtitleLangs = []string{"en", "en-US", "en-GB"}

// Ceiling applied when quality is "best"; streams above 4K are not offered
const bestHeightCeiling = 2160

// Options is the compiled, engine-ready form of a DownloadRequest. It is
// fully deterministic: the same request always compiles to the same Options.
// Client identity (user agent, headers) lives in ClientProfile, not here.
type Options struct {
	FormatSelector string
	MergeContainer string // container for muxing separate video+audio streams
	ExtractAudio   bool   // transcode to AudioFormat after download
	AudioFormat    string
	AudioQuality   string // preferred bitrate for the transcode, e.g. "192"
	Thumbnail      bool
	Description    bool
	Subtitles      bool
	SubtitleLangs  []string
	OutputTemplate string
}

var videoHeights = map[string]int{
	"2160p": 2160,
	"1440p": 1440,
	"1080p": 1080,
	"720p":  720,
	"480p":  480,
	"360p":  360,
}

var audioBitrates = map[string]int{
	"320k": 320,
	"256k": 256,
	"192k": 192,
	"128k": 128,
	"96k":  96,
}

// Compile derives the engine options from a download request. Selection
// strings prefer the constrained mp4+m4a pairing first and fall back
// progressively to unconstrained streams.
func Compile(req model.DownloadRequest) Options {
	opts := Options{
		Thumbnail:   req.Sidecars.Thumbnail,
		Description: req.Sidecars.Description,
	}
	if req.Sidecars.Subtitles {
		opts.Subtitles = true
		opts.SubtitleLangs = append([]string(nil), SubtitleLangs...)
	}

	switch req.Kind {
	case model.KindVideoAudio:
		opts.FormatSelector = videoAudioSelector(req.Quality)
		if containsToken(model.VideoContainers(), req.Container) {
			opts.MergeContainer = strings.ToLower(req.Container)
		}

	case model.KindVideoOnly:
		opts.FormatSelector = videoOnlySelector(req.Quality)

	case model.KindAudioOnly:
		opts.FormatSelector = audioSelector(req.Quality)
		if containsToken(model.AudioContainers(), req.Container) {
			opts.ExtractAudio = true
			opts.AudioFormat = strings.ToLower(req.Container)
			opts.AudioQuality = audioQualityFor(req.Quality)
		}

	default:
		opts.FormatSelector = "best[ext=mp4]/best"
	}

	return opts
}

func videoAudioSelector(quality string) string {
	if quality == model.QualityWorst {
		return "worstvideo[ext=mp4]+worstaudio[ext=m4a]/worstvideo+worstaudio/worst"
	}
	h := heightFor(quality)
	return fmt.Sprintf(
		"bestvideo[height<=%d][ext=mp4]+bestaudio[ext=m4a]/bestvideo[height<=%d]+bestaudio/best[height<=%d]",
		h, h, h)
}

func videoOnlySelector(quality string) string {
	switch quality {
	case model.QualityWorst:
		return "worstvideo[ext=mp4]/worstvideo"
	case model.QualityBest:
		return fmt.Sprintf("bestvideo[height<=%d][ext=mp4]/bestvideo[height<=%d]/bestvideo",
			bestHeightCeiling, bestHeightCeiling)
	}
	h := heightFor(quality)
	return fmt.Sprintf("bestvideo[height<=%d][ext=mp4]/bestvideo[height<=%d]", h, h)
}

func audioSelector(quality string) string {
	abr, ok := audioBitrates[quality]
	if !ok {
		return "bestaudio[ext=m4a]/bestaudio"
	}
	return fmt.Sprintf("bestaudio[abr<=%d][ext=m4a]/bestaudio[abr<=%d]", abr, abr)
}

func heightFor(quality string) int {
	if h, ok := videoHeights[quality]; ok {
		return h
	}
	return bestHeightCeiling
}

func audioQualityFor(quality string) string {
	if strings.HasSuffix(quality, "k") {
		return strings.TrimSuffix(quality, "k")
	}
	return "192"
}

func containsToken(list []string, v string) bool {
	v = strings.ToLower(v)
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
