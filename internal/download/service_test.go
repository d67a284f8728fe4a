package download

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tubefetch/tubefetch/internal/engine"
	"github.com/tubefetch/tubefetch/internal/faults"
	"github.com/tubefetch/tubefetch/internal/model"
)

const validURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

// fakeEngine scripts Download outcomes per submission and can emit progress
type fakeEngine struct {
	mu       sync.Mutex
	outcomes []error
	profiles []engine.ClientProfile
	updates  []engine.ProgressUpdate
}

func (f *fakeEngine) FetchMetadata(context.Context, string, time.Duration, engine.ClientProfile) (*model.VideoMetadata, error) {
	return &model.VideoMetadata{ID: "dQw4w9WgXcQ"}, nil
}

func (f *fakeEngine) Download(_ context.Context, _ string, _ engine.Options, profile engine.ClientProfile, onProgress func(engine.ProgressUpdate)) error {
	f.mu.Lock()
	idx := len(f.profiles)
	f.profiles = append(f.profiles, profile)
	f.mu.Unlock()

	for _, up := range f.updates {
		if onProgress != nil {
			onProgress(up)
		}
	}

	if idx < len(f.outcomes) {
		return f.outcomes[idx]
	}
	return nil
}

func (f *fakeEngine) submissions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.profiles)
}

func newTestService(t *testing.T, fake *fakeEngine) *Service {
	t.Helper()
	svc, err := NewService(fake, Config{
		Profiles:     engine.HardenedProfiles(),
		Retry:        RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2},
		PollInterval: time.Millisecond,
		ResultWait:   time.Second,
	})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	t.Cleanup(svc.Close)
	return svc
}

func request() model.DownloadRequest {
	return model.DownloadRequest{
		URL:       validURL,
		Kind:      model.KindVideoAudio,
		Quality:   "720p",
		Container: "mp4",
	}
}

func TestDownload_InvalidURLFailsBeforeEngine(t *testing.T) {
	fake := &fakeEngine{}
	svc := newTestService(t, fake)

	req := request()
	req.URL = "https://example.com/clip"
	err := svc.Download(context.Background(), req, nil)
	if faults.CategoryOf(err, "") != faults.CategoryInvalidInput {
		t.Fatalf("expected invalid_input, got %v", err)
	}
	if fake.submissions() != 0 {
		t.Errorf("engine saw %d submissions before validation", fake.submissions())
	}
}

func TestDownload_Success(t *testing.T) {
	fake := &fakeEngine{
		updates: []engine.ProgressUpdate{
			{Percent: 40, DownloadedBytes: 400, TotalBytes: 1000, Speed: "1.0MB/s", ETA: "3s"},
		},
	}
	svc := newTestService(t, fake)

	var snapshots []model.DownloadState
	err := svc.Download(context.Background(), request(), func(s model.DownloadState) {
		snapshots = append(snapshots, s)
	})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if fake.submissions() != 1 {
		t.Errorf("submissions = %d, expected 1", fake.submissions())
	}

	final := svc.State()
	if final.Status != model.StatusFinished || final.Progress != 100 {
		t.Errorf("final state = %+v, expected finished/100", final)
	}
	if len(snapshots) == 0 {
		t.Fatal("monitor loop produced no snapshots")
	}
	if last := snapshots[len(snapshots)-1]; last.Status != model.StatusFinished {
		t.Errorf("last snapshot status = %s, expected finished", last.Status)
	}
}

func TestDownload_RetriesAccessDeniedThenSucceeds(t *testing.T) {
	denied := faults.New(faults.CategoryAccessDenied, "HTTP Error 403: Forbidden")
	fake := &fakeEngine{outcomes: []error{denied, denied, nil}}
	svc := newTestService(t, fake)

	err := svc.Download(context.Background(), request(), nil)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	// Two denials below the cap of three: exactly three submissions.
	if fake.submissions() != 3 {
		t.Errorf("submissions = %d, expected 3", fake.submissions())
	}

	// The client identity rotated between attempts.
	if fake.profiles[0].Name == fake.profiles[1].Name {
		t.Errorf("profile did not rotate: %s then %s", fake.profiles[0].Name, fake.profiles[1].Name)
	}

	if svc.State().Status != model.StatusFinished {
		t.Errorf("final state = %s, expected finished", svc.State().Status)
	}
}

func TestDownload_RetryBudgetExhausted(t *testing.T) {
	denied := faults.New(faults.CategoryRateLimited, "HTTP Error 429: Too Many Requests")
	fake := &fakeEngine{outcomes: []error{denied, denied, denied, denied, denied}}
	svc := newTestService(t, fake)

	err := svc.Download(context.Background(), request(), nil)
	if faults.CategoryOf(err, "") != faults.CategoryRateLimited {
		t.Fatalf("expected rate_limited after exhaustion, got %v", err)
	}
	if fake.submissions() != 3 {
		t.Errorf("submissions = %d, expected MaxAttempts worth (3)", fake.submissions())
	}
	if svc.State().Status != model.StatusError {
		t.Errorf("final state = %s, expected error", svc.State().Status)
	}
}

func TestDownload_TerminalErrorShortCircuits(t *testing.T) {
	fake := &fakeEngine{outcomes: []error{faults.New(faults.CategoryCopyrightBlocked, "blocked due to copyright claim")}}
	svc := newTestService(t, fake)

	err := svc.Download(context.Background(), request(), nil)
	if faults.CategoryOf(err, "") != faults.CategoryCopyrightBlocked {
		t.Fatalf("expected copyright_blocked, got %v", err)
	}
	if fake.submissions() != 1 {
		t.Errorf("submissions = %d, expected exactly 1 for a terminal class", fake.submissions())
	}
}

func TestDownload_StateSnapshotsAreCoherent(t *testing.T) {
	fake := &fakeEngine{
		updates: []engine.ProgressUpdate{
			{Percent: 10, DownloadedBytes: 100, TotalBytes: 1000},
			{Percent: 90, DownloadedBytes: 900, TotalBytes: 1000},
		},
	}
	svc := newTestService(t, fake)

	err := svc.Download(context.Background(), request(), func(s model.DownloadState) {
		// A record carrying progress detail must already carry an active
		// or terminal status, never idle.
		if s.DownloadedBytes > 0 && s.Status == model.StatusIdle {
			t.Errorf("observed detail fields ahead of status: %+v", s)
		}
	})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
}

func TestClearDownloads(t *testing.T) {
	svc := newTestService(t, &fakeEngine{})

	if err := svc.ClearDownloads(); err != nil {
		t.Fatalf("ClearDownloads() error = %v", err)
	}
	files, err := svc.ListFiles()
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected empty session after clear, got %d files", len(files))
	}
}
