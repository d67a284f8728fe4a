package model

import "fmt"

// DownloadState is the shared progress record for one in-flight download.
// The background unit mutates it and the poll loop reads snapshots of it;
// the orchestrator guards the whole record with a single mutex so a reader
// never observes detail fields newer than the status.
type DownloadState struct {
	Status          Status
	Progress        float64 // percent, 0..100
	Speed           string  // human readable, e.g. "1.2MB/s"
	ETA             string  // human readable, "" when unknown
	TotalBytes      int64
	DownloadedBytes int64
	Err             string
}

// NewDownloadState returns a fresh record for a new attempt
func NewDownloadState() DownloadState {
	return DownloadState{Status: StatusIdle}
}

// ProgressLine renders the state for a line-oriented surface. When the total
// size is unknown the byte counts are omitted rather than shown as zero.
func (s DownloadState) ProgressLine() string {
	switch s.Status {
	case StatusStarting:
		return "Starting download..."
	case StatusDownloading:
		if s.TotalBytes > 0 {
			return fmt.Sprintf("Downloading... %.1f%% | %s / %s | Speed: %s | ETA: %s",
				s.Progress,
				FormatFilesize(s.DownloadedBytes),
				FormatFilesize(s.TotalBytes),
				orUnknown(s.Speed),
				orUnknown(s.ETA))
		}
		return fmt.Sprintf("Downloading... %.1f%% | Speed: %s", s.Progress, orUnknown(s.Speed))
	case StatusFinished:
		return "Download completed"
	case StatusError:
		return "Download failed: " + s.Err
	default:
		return "Idle"
	}
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}
