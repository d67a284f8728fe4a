package model

// Status represents the status of a download attempt
type Status string

const (
	// StatusIdle means no download is in flight
	StatusIdle Status = "idle"

	// StatusStarting means the download was submitted but no progress arrived yet
	StatusStarting Status = "starting"

	// StatusDownloading means the transfer is in progress
	StatusDownloading Status = "downloading"

	// StatusFinished means the download completed successfully
	StatusFinished Status = "finished"

	// StatusError means the download failed
	StatusError Status = "error"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsActive returns true while the background unit is still working
func (s Status) IsActive() bool {
	return s == StatusStarting || s == StatusDownloading
}

// IsTerminal returns true once the attempt reached a final state
func (s Status) IsTerminal() bool {
	return s == StatusFinished || s == StatusError
}
