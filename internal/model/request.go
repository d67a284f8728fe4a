package model

import "fmt"

// Kind selects what streams a download request targets
type Kind string

const (
	KindVideoAudio Kind = "video_audio"
	KindVideoOnly  Kind = "video_only"
	KindAudioOnly  Kind = "audio_only"
)

// Quality tokens shared by the UI surfaces and the request compiler
const (
	QualityBest  = "best"
	QualityWorst = "worst"
)

// Sidecars is the set of auxiliary artifacts downloaded alongside the media
type Sidecars struct {
	Thumbnail   bool
	Description bool
	Subtitles   bool
}

// DownloadRequest is a user-selected download configuration.
type DownloadRequest struct {
	URL       string
	Kind      Kind
	Quality   string // resolution ceiling ("1080p"), bitrate ceiling ("192k"), "best" or "worst"
	Container string // output container for video, target codec for audio
	Sidecars  Sidecars
}

// VideoQualities lists the quality tokens offered for video downloads
func VideoQualities() []string {
	return []string{"best", "2160p", "1440p", "1080p", "720p", "480p", "360p", "worst"}
}

// AudioQualities lists the bitrate-ceiling tokens offered for audio downloads
func AudioQualities() []string {
	return []string{"best", "320k", "256k", "192k", "128k", "96k"}
}

// VideoContainers lists the supported video output containers
func VideoContainers() []string {
	return []string{"mp4", "mkv", "webm", "avi"}
}

// AudioContainers lists the supported audio output codecs
func AudioContainers() []string {
	return []string{"mp3", "aac", "flac", "wav", "ogg"}
}

// Validate checks internal consistency of the request; the URL itself is
// validated separately before any engine call.
func (r DownloadRequest) Validate() error {
	switch r.Kind {
	case KindVideoAudio, KindVideoOnly, KindAudioOnly:
	default:
		return fmt.Errorf("unknown download kind %q", r.Kind)
	}
	if r.URL == "" {
		return fmt.Errorf("empty URL")
	}
	return nil
}

// AudioFallback builds the reduced-scope retry that drops video entirely.
func (r DownloadRequest) AudioFallback() DownloadRequest {
	return DownloadRequest{
		URL:       r.URL,
		Kind:      KindAudioOnly,
		Quality:   QualityBest,
		Container: "mp3",
	}
}

// LowestQualityFallback builds the reduced-scope retry at the smallest
// commonly available resolution.
func (r DownloadRequest) LowestQualityFallback() DownloadRequest {
	return DownloadRequest{
		URL:       r.URL,
		Kind:      KindVideoAudio,
		Quality:   "360p",
		Container: "mp4",
	}
}
