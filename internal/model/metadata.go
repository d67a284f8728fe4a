package model

import (
	"fmt"
	"strings"
)

// Codec value reported by the engine when a stream carries no track of that kind
const CodecAbsent = "none"

// Description length cap applied during metadata projection
const MaxDescriptionLength = 500

// VideoMetadata is the projected, engine-independent view of a video.
// It is immutable once fetched and replaced wholesale on refresh.
type VideoMetadata struct {
	ID           string
	Title        string
	Uploader     string
	DurationSec  int
	ViewCount    int64
	UploadDate   string // 8-digit calendar string, e.g. "20240131"
	Description  string // truncated to MaxDescriptionLength
	ThumbnailURL string
	Formats      []FormatDescriptor
	Availability string
	AgeLimit     int
}

// FormatDescriptor describes one downloadable encoding variant.
type FormatDescriptor struct {
	FormatID   string
	Ext        string
	VideoCodec string // CodecAbsent or "" when no video track
	AudioCodec string // CodecAbsent or "" when no audio track
	Height     int
	FPS        float64
	ABR        float64 // average audio bitrate, kbps
	Filesize   int64   // approximate bytes, 0 when unknown
	Protocol   string
}

// HasVideo reports whether the format carries a video track
func (f FormatDescriptor) HasVideo() bool {
	return f.VideoCodec != "" && f.VideoCodec != CodecAbsent
}

// HasAudio reports whether the format carries an audio track
func (f FormatDescriptor) HasAudio() bool {
	return f.AudioCodec != "" && f.AudioCodec != CodecAbsent
}

// FormatUploadDate renders the 8-digit upload date as YYYY-MM-DD,
// returning the raw value when it does not match that shape.
func (m VideoMetadata) FormatUploadDate() string {
	d := m.UploadDate
	if len(d) != 8 {
		return d
	}
	return d[:4] + "-" + d[4:6] + "-" + d[6:8]
}

// FormatDuration renders the duration as hh:mm:ss (mm:ss below one hour)
func (m VideoMetadata) FormatDuration() string {
	return FormatDuration(m.DurationSec)
}

// FormatDuration renders seconds as hh:mm:ss, or "N/A" for non-positive input
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "N/A"
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatFilesize renders a byte count in human readable form
func FormatFilesize(size int64) string {
	if size <= 0 {
		return "Unknown size"
	}
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if value < 1024.0 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.1f PB", value)
}

// FormatCount renders a large number with comma grouping, "N/A" when negative
func FormatCount(n int64) string {
	if n < 0 {
		return "N/A"
	}
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
