package engine

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tubefetch/tubefetch/internal/faults"
	"github.com/tubefetch/tubefetch/internal/model"
	"github.com/tubefetch/tubefetch/internal/platform"
)

// Default metadata probe budget
const DefaultFetchTimeout = 30 * time.Second

// Fetcher wraps the engine's metadata call with URL validation and, for the
// hardened configuration, an attempt loop over an ordered client-identity
// list. With a single profile and one attempt it degrades to a plain fetch.
type Fetcher struct {
	engine   Engine
	profiles []ClientProfile
	attempts int
	timeout  time.Duration
	logger   *log.Logger
}

// NewFetcher builds a Fetcher; attempts below 1 and a zero timeout fall back
// to sane defaults.
func NewFetcher(eng Engine, profiles []ClientProfile, attempts int, timeout time.Duration, logger *log.Logger) *Fetcher {
	if attempts < 1 {
		attempts = 1
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if len(profiles) == 0 {
		profiles = DefaultProfiles()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Fetcher{
		engine:   eng,
		profiles: profiles,
		attempts: attempts,
		timeout:  timeout,
		logger:   logger,
	}
}

// Fetch validates the URL before any network call, then asks the engine for
// metadata. Access-denied class failures fall through to the next client
// identity; terminal classes surface immediately. Exhausting every identity
// across every attempt surfaces the generic extraction failure.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*model.VideoMetadata, error) {
	if !platform.IsValidVideoURL(url) {
		return nil, faults.New(faults.CategoryInvalidInput, "not a recognized video URL: "+url)
	}

	var last *faults.Fault
	for attempt := 0; attempt < f.attempts; attempt++ {
		for _, profile := range f.profiles {
			meta, err := f.engine.FetchMetadata(ctx, url, f.timeout, profile)
			if err == nil {
				return meta, nil
			}
			if ctx.Err() != nil {
				return nil, faults.Wrap(err, faults.CategoryExtractionFailed)
			}

			last = faults.Wrap(err, faults.CategoryExtractionFailed)
			if !last.Category.Retryable() {
				return nil, last
			}
			f.logger.Warnf("metadata fetch denied via %s client (attempt %d): %v", profile.Name, attempt+1, err)
		}
	}

	return nil, &faults.Fault{
		Category: faults.CategoryExtractionFailed,
		Raw:      last.Raw,
		Err:      last,
	}
}
