package engine

import (
	"encoding/json"
	"fmt"

	"github.com/tubefetch/tubefetch/internal/model"
)

// rawInfo mirrors only the fields of the engine's JSON dump that the data
// model keeps; everything else the engine emits is dropped at this boundary.
type rawInfo struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Uploader     string      `json:"uploader"`
	Duration     float64     `json:"duration"`
	ViewCount    int64       `json:"view_count"`
	UploadDate   string      `json:"upload_date"`
	Description  string      `json:"description"`
	Thumbnail    string      `json:"thumbnail"`
	AgeLimit     int         `json:"age_limit"`
	Availability string      `json:"availability"`
	Formats      []rawFormat `json:"formats"`
}

type rawFormat struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	VCodec         string  `json:"vcodec"`
	ACodec         string  `json:"acodec"`
	Height         int     `json:"height"`
	FPS            float64 `json:"fps"`
	ABR            float64 `json:"abr"`
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
	Protocol       string  `json:"protocol"`
}

// projectMetadata narrows the engine's single-JSON dump into VideoMetadata
func projectMetadata(data []byte) (*model.VideoMetadata, error) {
	var raw rawInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode metadata dump: %w", err)
	}
	if raw.ID == "" {
		return nil, fmt.Errorf("metadata dump carries no video id")
	}

	meta := &model.VideoMetadata{
		ID:           raw.ID,
		Title:        orDefault(raw.Title, "Unknown Title"),
		Uploader:     orDefault(raw.Uploader, "Unknown"),
		DurationSec:  int(raw.Duration),
		ViewCount:    raw.ViewCount,
		UploadDate:   raw.UploadDate,
		Description:  truncateDescription(raw.Description),
		ThumbnailURL: raw.Thumbnail,
		Availability: raw.Availability,
		AgeLimit:     raw.AgeLimit,
	}

	meta.Formats = make([]model.FormatDescriptor, 0, len(raw.Formats))
	for _, f := range raw.Formats {
		size := f.Filesize
		if size == 0 {
			size = f.FilesizeApprox
		}
		meta.Formats = append(meta.Formats, model.FormatDescriptor{
			FormatID:   f.FormatID,
			Ext:        f.Ext,
			VideoCodec: f.VCodec,
			AudioCodec: f.ACodec,
			Height:     f.Height,
			FPS:        f.FPS,
			ABR:        f.ABR,
			Filesize:   size,
			Protocol:   f.Protocol,
		})
	}

	return meta, nil
}

func truncateDescription(desc string) string {
	if desc == "" {
		return ""
	}
	if len(desc) > model.MaxDescriptionLength {
		return desc[:model.MaxDescriptionLength] + "..."
	}
	return desc
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
