package download

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tubefetch/tubefetch/internal/engine"
	"github.com/tubefetch/tubefetch/internal/faults"
	"github.com/tubefetch/tubefetch/internal/model"
	"github.com/tubefetch/tubefetch/internal/platform"
)

// Defaults for the monitor loop and the worker pool
const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultResultWait   = 5 * time.Second

	// Two slots so a stray UI action cannot starve the session; the
	// download path described here only ever occupies one.
	workerSlots = 2
)

// Filename template handed to the engine
const outputTemplate = "%(title)s.%(ext)s"

// ProgressFunc receives state snapshots from the monitor loop
type ProgressFunc func(model.DownloadState)

// Config tunes a Service instance. The hardened anti-blocking variant is
// this same Service with HardenedProfiles and a larger fetch attempt count,
// not a separate code path.
type Config struct {
	// Root is the parent directory for the session directory; empty means
	// the system temp directory.
	Root          string
	Profiles      []engine.ClientProfile
	Retry         RetryPolicy
	FetchAttempts int
	FetchTimeout  time.Duration
	PollInterval  time.Duration
	ResultWait    time.Duration
	Logger        *log.Logger
}

// Service is the per-session download orchestrator. It owns a private
// temporary directory and exactly one live DownloadState; the background
// goroutine mutates the state and the poll loop reads snapshots of it.
type Service struct {
	id       string
	eng      engine.Engine
	fetcher  *engine.Fetcher
	profiles []engine.ClientProfile
	retry    RetryPolicy
	dir      *platform.SessionDir
	logger   *log.Logger

	pollInterval time.Duration
	resultWait   time.Duration

	slots chan struct{}

	mu    sync.Mutex
	state model.DownloadState
}

// NewService creates an orchestrator with a fresh session directory
func NewService(eng engine.Engine, cfg Config) (*Service, error) {
	dir, err := platform.NewSessionDir(cfg.Root)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	profiles := cfg.Profiles
	if len(profiles) == 0 {
		profiles = engine.DefaultProfiles()
	}
	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = DefaultRetryPolicy()
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	resultWait := cfg.ResultWait
	if resultWait <= 0 {
		resultWait = DefaultResultWait
	}

	return &Service{
		id:           uuid.NewString(),
		eng:          eng,
		fetcher:      engine.NewFetcher(eng, profiles, cfg.FetchAttempts, cfg.FetchTimeout, logger),
		profiles:     profiles,
		retry:        retry,
		dir:          dir,
		logger:       logger,
		pollInterval: pollInterval,
		resultWait:   resultWait,
		slots:        make(chan struct{}, workerSlots),
		state:        model.NewDownloadState(),
	}, nil
}

// SessionID returns the orchestrator instance identifier
func (s *Service) SessionID() string {
	return s.id
}

// DownloadDir returns the session's temporary directory
func (s *Service) DownloadDir() string {
	return s.dir.Path()
}

// Close tears down the session directory, best effort
func (s *Service) Close() {
	s.dir.Close()
}

// FetchMetadata resolves the URL to projected metadata without transferring
func (s *Service) FetchMetadata(ctx context.Context, url string) (*model.VideoMetadata, error) {
	return s.fetcher.Fetch(ctx, url)
}

// State returns a snapshot of the live download state
func (s *Service) State() model.DownloadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ListFiles enumerates downloaded files, newest first
func (s *Service) ListFiles() ([]platform.DownloadedFile, error) {
	return platform.ListDownloads(s.dir.Path())
}

// ClearDownloads wipes and recreates the session directory
func (s *Service) ClearDownloads() error {
	return s.dir.Clear()
}

// Download validates the request, compiles it and runs the attempt loop.
// Retryable failures (rate-limited, access-denied) rotate the client
// identity and back off exponentially up to the retry cap; terminal
// classes fail on first sight. The call blocks until a terminal outcome;
// onProgress receives a snapshot roughly every poll interval.
func (s *Service) Download(ctx context.Context, req model.DownloadRequest, onProgress ProgressFunc) error {
	if !platform.IsValidVideoURL(req.URL) {
		return faults.New(faults.CategoryInvalidInput, "not a recognized video URL: "+req.URL)
	}
	if err := req.Validate(); err != nil {
		return faults.New(faults.CategoryInvalidInput, err.Error())
	}

	opts := engine.Compile(req)
	opts.OutputTemplate = filepath.Join(s.dir.Path(), outputTemplate)

	var failed int
	for {
		profile := s.profiles[failed%len(s.profiles)]
		err := s.runAttempt(ctx, req.URL, opts, profile, onProgress)
		if err == nil {
			return nil
		}

		fault := faults.Wrap(err, faults.CategoryDownloadFailed)
		if !fault.Category.Retryable() {
			return fault
		}

		failed++
		delay, ok := s.retry.NextDelay(failed)
		if !ok {
			return fault
		}

		s.logger.Warnf("download attempt %d denied (%s), retrying with %s client in %s",
			failed, fault.Category, s.profiles[failed%len(s.profiles)].Name, delay)
		s.setState(model.NewDownloadState())

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return faults.Wrap(ctx.Err(), faults.CategoryDownloadFailed)
		}
	}
}

// runAttempt submits one engine call to the pool and monitors the shared
// state until the background unit reaches a terminal status, then waits a
// bounded time for its final result. The transfer itself is never
// interrupted from here; the engine's socket timeout governs it.
func (s *Service) runAttempt(ctx context.Context, url string, opts engine.Options, profile engine.ClientProfile, onProgress ProgressFunc) error {
	s.setState(model.DownloadState{Status: model.StatusStarting})

	done := make(chan error, 1)
	s.slots <- struct{}{}
	go func() {
		defer func() { <-s.slots }()

		err := s.eng.Download(ctx, url, opts, profile, s.applyProgress)
		if err != nil {
			s.mu.Lock()
			s.state.Status = model.StatusError
			s.state.Err = err.Error()
			s.mu.Unlock()
		} else {
			s.mu.Lock()
			s.state.Status = model.StatusFinished
			s.state.Progress = 100
			s.state.Err = ""
			s.mu.Unlock()
		}
		done <- err
	}()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		snapshot := s.State()
		if onProgress != nil {
			onProgress(snapshot)
		}
		if snapshot.Status.IsTerminal() {
			break
		}
		<-ticker.C
	}

	select {
	case err := <-done:
		return err
	case <-time.After(s.resultWait):
		return faults.New(faults.CategoryDownloadFailed, "timed out waiting for download result")
	}
}

// applyProgress is the engine's progress hook. The whole record is updated
// under one lock so a reader never sees detail fields ahead of the status.
func (s *Service) applyProgress(up engine.ProgressUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Status.IsTerminal() {
		return
	}
	s.state.Status = model.StatusDownloading
	s.state.Progress = up.Percent
	s.state.Speed = up.Speed
	s.state.ETA = up.ETA
	s.state.TotalBytes = up.TotalBytes
	s.state.DownloadedBytes = up.DownloadedBytes
	s.state.Err = ""
}

func (s *Service) setState(state model.DownloadState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
