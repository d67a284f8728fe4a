package format

import (
	"sort"

	"github.com/duke-git/lancet/v2/slice"

	"github.com/tubefetch/tubefetch/internal/model"
)

// Display caps. These bound what is shown, never what is eligible for
// selection during download.
const (
	MaxVideoFormats    = 15
	MaxCombinedFormats = 15
	MaxAudioFormats    = 10
)

// Segmented/live transport tags; such formats are not downloadable here and
// are excluded from the classification entirely.
var liveProtocols = map[string]bool{
	"m3u8":               true,
	"m3u8_native":        true,
	"http_dash_segments": true,
}

// Classified is a strict partition of the downloadable formats
type Classified struct {
	Combined  []model.FormatDescriptor // video+audio, sorted by height desc
	VideoOnly []model.FormatDescriptor // sorted by height desc
	AudioOnly []model.FormatDescriptor // sorted by bitrate desc
}

// Classify partitions formats into combined, video-only and audio-only
// classes by codec absence. Every non-live descriptor lands in exactly one
// class; live/segmented descriptors land in none.
func Classify(formats []model.FormatDescriptor) Classified {
	downloadable := slice.Filter(formats, func(_ int, f model.FormatDescriptor) bool {
		return !liveProtocols[f.Protocol]
	})

	var c Classified
	for _, f := range downloadable {
		switch {
		case f.HasVideo() && f.HasAudio():
			c.Combined = append(c.Combined, f)
		case f.HasVideo():
			c.VideoOnly = append(c.VideoOnly, f)
		case f.HasAudio():
			c.AudioOnly = append(c.AudioOnly, f)
		}
	}

	sortByHeight(c.Combined)
	sortByHeight(c.VideoOnly)
	sortByBitrate(c.AudioOnly)
	return c
}

// ForDisplay returns a capped copy of the partition for rendering
func (c Classified) ForDisplay() Classified {
	return Classified{
		Combined:  capList(c.Combined, MaxCombinedFormats),
		VideoOnly: capList(c.VideoOnly, MaxVideoFormats),
		AudioOnly: capList(c.AudioOnly, MaxAudioFormats),
	}
}

func capList(formats []model.FormatDescriptor, max int) []model.FormatDescriptor {
	if len(formats) <= max {
		return formats
	}
	return formats[:max]
}

func sortByHeight(formats []model.FormatDescriptor) {
	sort.SliceStable(formats, func(i, j int) bool {
		return formats[i].Height > formats[j].Height
	})
}

func sortByBitrate(formats []model.FormatDescriptor) {
	sort.SliceStable(formats, func(i, j int) bool {
		return formats[i].ABR > formats[j].ABR
	})
}
