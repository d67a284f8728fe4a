package faults

import (
	"errors"
	"fmt"
)

// Category is the user-facing classification of a failure
type Category string

const (
	// CategoryInvalidInput marks a malformed URL, rejected before any engine call
	CategoryInvalidInput Category = "invalid_input"

	// CategoryPrivateOrUnavailable marks private, removed or otherwise inaccessible videos
	CategoryPrivateOrUnavailable Category = "private_or_unavailable"

	// CategoryCopyrightBlocked marks copyright takedowns
	CategoryCopyrightBlocked Category = "copyright_blocked"

	// CategoryGeoBlocked marks regional restrictions
	CategoryGeoBlocked Category = "geo_blocked"

	// CategoryRateLimited marks server-side throttling (HTTP 429 class)
	CategoryRateLimited Category = "rate_limited"

	// CategoryAccessDenied marks engine-reported rejection (HTTP 403 class)
	CategoryAccessDenied Category = "access_denied"

	// CategoryStreamingUnsupported marks live/segmented content that cannot be downloaded
	CategoryStreamingUnsupported Category = "streaming_unsupported"

	// CategoryExtractionFailed is the generic catch-all for metadata failures
	CategoryExtractionFailed Category = "extraction_failed"

	// CategoryDownloadFailed is the generic catch-all for transfer failures
	CategoryDownloadFailed Category = "download_failed"
)

// Retryable reports whether attempts against this category may be repeated
// with backoff. Everything else is terminal on first sight.
func (c Category) Retryable() bool {
	return c == CategoryRateLimited || c == CategoryAccessDenied
}

// Title returns a short human heading for the category
func (c Category) Title() string {
	switch c {
	case CategoryInvalidInput:
		return "Invalid URL"
	case CategoryPrivateOrUnavailable:
		return "Video Access Issue"
	case CategoryCopyrightBlocked:
		return "Copyright Protected"
	case CategoryGeoBlocked:
		return "Geographic Restriction"
	case CategoryRateLimited:
		return "Rate Limiting Issue"
	case CategoryAccessDenied:
		return "Access Denied"
	case CategoryStreamingUnsupported:
		return "Streaming Format Issue"
	case CategoryDownloadFailed:
		return "Download Failed"
	default:
		return "Extraction Failed"
	}
}

// Fault is a classified failure carrying the raw engine diagnostic. Engine
// errors never cross the orchestrator boundary unclassified.
type Fault struct {
	Category Category
	Raw      string // raw diagnostic text, surfaced to the user
	Err      error
}

func (f *Fault) Error() string {
	if f.Raw == "" {
		return string(f.Category)
	}
	return fmt.Sprintf("%s: %s", f.Category, f.Raw)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// New builds a Fault with a fixed category and diagnostic text
func New(category Category, raw string) *Fault {
	return &Fault{Category: category, Raw: raw}
}

// Wrap classifies err into a Fault, using fallback when no known keyword
// matches. An error that already is a Fault passes through unchanged.
func Wrap(err error, fallback Category) *Fault {
	if err == nil {
		return nil
	}
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	category := ClassifyMessage(err.Error())
	if category == "" {
		category = fallback
	}
	return &Fault{Category: category, Raw: err.Error(), Err: err}
}

// CategoryOf returns the category of err, or fallback for unclassified errors
func CategoryOf(err error, fallback Category) Category {
	if f := Wrap(err, fallback); f != nil {
		return f.Category
	}
	return fallback
}
