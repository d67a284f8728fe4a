package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tubefetch/tubefetch/internal/download"
	"github.com/tubefetch/tubefetch/internal/engine"
	"github.com/tubefetch/tubefetch/internal/faults"
	"github.com/tubefetch/tubefetch/internal/model"
)

type fakeEngine struct {
	meta     *model.VideoMetadata
	metaErr  error
	download error
}

func (f *fakeEngine) FetchMetadata(context.Context, string, time.Duration, engine.ClientProfile) (*model.VideoMetadata, error) {
	return f.meta, f.metaErr
}

func (f *fakeEngine) Download(context.Context, string, engine.Options, engine.ClientProfile, func(engine.ProgressUpdate)) error {
	return f.download
}

func newTestServer(t *testing.T, fake *fakeEngine) *Server {
	t.Helper()
	svc, err := download.NewService(fake, download.Config{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	t.Cleanup(svc.Close)
	return NewServer(svc, nil)
}

func TestHandleIndex(t *testing.T) {
	srv := newTestServer(t, &fakeEngine{})

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "tubefetch") {
		t.Error("index page missing title")
	}
}

func TestHandleInfo(t *testing.T) {
	fake := &fakeEngine{meta: &model.VideoMetadata{
		ID:          "dQw4w9WgXcQ",
		Title:       "Test Video",
		Uploader:    "Test Channel",
		DurationSec: 212,
		Formats: []model.FormatDescriptor{
			{FormatID: "22", Ext: "mp4", VideoCodec: "avc1", AudioCodec: "mp4a", Height: 720},
			{FormatID: "140", Ext: "m4a", VideoCodec: model.CodecAbsent, AudioCodec: "mp4a", ABR: 128},
		},
	}}
	srv := newTestServer(t, fake)

	body := strings.NewReader(`{"url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/info", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp infoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Title != "Test Video" || resp.Duration != "03:32" {
		t.Errorf("resp = %+v", resp)
	}
	if len(resp.Combined) != 1 || len(resp.AudioOnly) != 1 {
		t.Errorf("format partition: combined=%d audio=%d", len(resp.Combined), len(resp.AudioOnly))
	}
}

func TestHandleInfo_InvalidURL(t *testing.T) {
	srv := newTestServer(t, &fakeEngine{})

	body := strings.NewReader(`{"url":"https://example.com/x"}`)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/info", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", rec.Code)
	}
	var resp faultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Category != string(faults.CategoryInvalidInput) {
		t.Errorf("category = %s", resp.Category)
	}
}

func TestHandleInfo_FaultStatusMapping(t *testing.T) {
	tests := []struct {
		category faults.Category
		want     int
	}{
		{faults.CategoryRateLimited, http.StatusTooManyRequests},
		{faults.CategoryAccessDenied, http.StatusForbidden},
		{faults.CategoryGeoBlocked, http.StatusForbidden},
		{faults.CategoryExtractionFailed, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			srv := newTestServer(t, &fakeEngine{metaErr: faults.New(tt.category, "boom")})

			body := strings.NewReader(`{"url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)
			rec := httptest.NewRecorder()
			srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/info", body))

			if rec.Code != tt.want {
				t.Errorf("status = %d, expected %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandleDownload_RejectsInvalidRequest(t *testing.T) {
	srv := newTestServer(t, &fakeEngine{})

	body := strings.NewReader(`{"url":"https://example.com/x","kind":"video_audio","quality":"best","container":"mp4"}`)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/download", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", rec.Code)
	}
}

func TestHandleDownload_Accepted(t *testing.T) {
	srv := newTestServer(t, &fakeEngine{})

	body := strings.NewReader(`{"url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ","kind":"audio_only","quality":"best","container":"mp3"}`)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/download", body))

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestHandleProgress_Idle(t *testing.T) {
	srv := newTestServer(t, &fakeEngine{})

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/progress", nil))

	var resp progressResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != model.StatusIdle.String() {
		t.Errorf("status = %s, expected idle", resp.Status)
	}
}

func TestHandleFiles_Empty(t *testing.T) {
	srv := newTestServer(t, &fakeEngine{})

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/files", nil))

	var resp filesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 0 {
		t.Errorf("count = %d, expected 0", resp.Count)
	}
}

func TestHandleExport_RejectsTraversal(t *testing.T) {
	srv := newTestServer(t, &fakeEngine{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/files/..%2Fsecret", nil)
	srv.handleExport(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", rec.Code)
	}
}
