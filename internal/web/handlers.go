package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tubefetch/tubefetch/internal/faults"
	"github.com/tubefetch/tubefetch/internal/format"
	"github.com/tubefetch/tubefetch/internal/model"
	"github.com/tubefetch/tubefetch/internal/platform"
)

type infoRequest struct {
	URL string `json:"url"`
}

type formatView struct {
	FormatID string  `json:"format_id"`
	Ext      string  `json:"ext"`
	Height   int     `json:"height,omitempty"`
	FPS      float64 `json:"fps,omitempty"`
	ABR      float64 `json:"abr,omitempty"`
	Filesize string  `json:"filesize"`
}

type infoResponse struct {
	Title       string `json:"title"`
	Uploader    string `json:"uploader"`
	Duration    string `json:"duration"`
	ViewCount   string `json:"view_count,omitempty"`
	UploadDate  string `json:"upload_date,omitempty"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`

	Combined  []formatView `json:"combined"`
	VideoOnly []formatView `json:"video_only"`
	AudioOnly []formatView `json:"audio_only"`
}

type downloadRequest struct {
	URL         string `json:"url"`
	Kind        string `json:"kind"`
	Quality     string `json:"quality"`
	Container   string `json:"container"`
	Thumbnail   bool   `json:"thumbnail"`
	Description bool   `json:"description"`
	Subtitles   bool   `json:"subtitles"`
}

type progressResponse struct {
	Status          string  `json:"status"`
	Progress        float64 `json:"progress"`
	Speed           string  `json:"speed,omitempty"`
	ETA             string  `json:"eta,omitempty"`
	DownloadedBytes int64   `json:"downloaded_bytes"`
	TotalBytes      int64   `json:"total_bytes"`
	Line            string  `json:"line"`
	Error           string  `json:"error,omitempty"`
}

type fileView struct {
	Name    string `json:"name"`
	Size    string `json:"size"`
	ModTime string `json:"mod_time"`
}

type filesResponse struct {
	Files []fileView `json:"files"`
	Count int        `json:"count"`
	Total string     `json:"total"`
}

type faultResponse struct {
	Error       string   `json:"error"`
	Category    string   `json:"category"`
	Detail      string   `json:"detail,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if err := s.tmpl.Execute(w, map[string]string{"Session": s.svc.SessionID()}); err != nil {
		s.logger.Error("render index", "error", err)
	}
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req infoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, faultResponse{Error: "invalid request body", Category: string(faults.CategoryInvalidInput)})
		return
	}

	meta, err := s.svc.FetchMetadata(r.Context(), req.URL)
	if err != nil {
		writeFault(w, err)
		return
	}

	classified := format.Classify(meta.Formats).ForDisplay()
	resp := infoResponse{
		Title:       meta.Title,
		Uploader:    meta.Uploader,
		Duration:    meta.FormatDuration(),
		UploadDate:  meta.FormatUploadDate(),
		Description: meta.Description,
		Thumbnail:   meta.ThumbnailURL,
		Combined:    toFormatViews(classified.Combined),
		VideoOnly:   toFormatViews(classified.VideoOnly),
		AudioOnly:   toFormatViews(classified.AudioOnly),
	}
	if meta.ViewCount > 0 {
		resp.ViewCount = model.FormatCount(meta.ViewCount)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, faultResponse{Error: "invalid request body", Category: string(faults.CategoryInvalidInput)})
		return
	}

	if s.svc.State().Status.IsActive() {
		writeJSON(w, http.StatusConflict, faultResponse{
			Error:    "a download is already in progress",
			Category: string(faults.CategoryInvalidInput),
		})
		return
	}

	dlReq := model.DownloadRequest{
		URL:       req.URL,
		Kind:      model.Kind(req.Kind),
		Quality:   req.Quality,
		Container: req.Container,
		Sidecars: model.Sidecars{
			Thumbnail:   req.Thumbnail,
			Description: req.Description,
			Subtitles:   req.Subtitles,
		},
	}
	if dlReq.Kind == "" {
		dlReq.Kind = model.KindVideoAudio
	}

	// The request itself is validated synchronously so the client gets an
	// immediate 4xx instead of a failed background task.
	if !platform.IsValidVideoURL(dlReq.URL) {
		writeFault(w, faults.New(faults.CategoryInvalidInput, "not a recognized YouTube video URL"))
		return
	}
	if err := dlReq.Validate(); err != nil {
		writeFault(w, faults.Wrap(err, faults.CategoryInvalidInput))
		return
	}

	go func() {
		if err := s.svc.Download(context.Background(), dlReq, nil); err != nil {
			s.logger.Warn("download failed", "url", dlReq.URL, "error", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	state := s.svc.State()
	resp := progressResponse{
		Status:          state.Status.String(),
		Progress:        state.Progress,
		Speed:           state.Speed,
		ETA:             state.ETA,
		DownloadedBytes: state.DownloadedBytes,
		TotalBytes:      state.TotalBytes,
		Line:            state.ProgressLine(),
	}
	if state.Err != "" {
		resp.Error = state.Err
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.svc.ListFiles()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, faultResponse{Error: err.Error(), Category: string(faults.CategoryDownloadFailed)})
		return
	}

	resp := filesResponse{
		Files: make([]fileView, 0, len(files)),
		Count: len(files),
		Total: model.FormatFilesize(platform.TotalSize(files)),
	}
	for _, f := range files {
		resp.Files = append(resp.Files, fileView{
			Name:    f.Name,
			Size:    model.FormatFilesize(f.Size),
			ModTime: f.ModTime.Format("2006-01-02 15:04:05"),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := s.svc.ClearDownloads(); err != nil {
		writeJSON(w, http.StatusInternalServerError, faultResponse{Error: err.Error(), Category: string(faults.CategoryDownloadFailed)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// handleExport serves a single downloaded file as an attachment. Names are
// restricted to the session directory.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/files/")
	if name == "" || name != filepath.Base(name) {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(s.svc.DownloadDir(), name)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	http.ServeFile(w, r, path)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "session": s.svc.SessionID()})
}

func toFormatViews(formats []model.FormatDescriptor) []formatView {
	views := make([]formatView, 0, len(formats))
	for _, f := range formats {
		views = append(views, formatView{
			FormatID: f.FormatID,
			Ext:      f.Ext,
			Height:   f.Height,
			FPS:      f.FPS,
			ABR:      f.ABR,
			Filesize: model.FormatFilesize(f.Filesize),
		})
	}
	return views
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFault(w http.ResponseWriter, err error) {
	var fault *faults.Fault
	if !errors.As(err, &fault) {
		writeJSON(w, http.StatusInternalServerError, faultResponse{Error: err.Error(), Category: string(faults.CategoryExtractionFailed)})
		return
	}

	status := http.StatusBadGateway
	switch fault.Category {
	case faults.CategoryInvalidInput:
		status = http.StatusBadRequest
	case faults.CategoryRateLimited:
		status = http.StatusTooManyRequests
	case faults.CategoryAccessDenied, faults.CategoryPrivateOrUnavailable,
		faults.CategoryCopyrightBlocked, faults.CategoryGeoBlocked:
		status = http.StatusForbidden
	}

	writeJSON(w, status, faultResponse{
		Error:       fault.Category.Title(),
		Category:    string(fault.Category),
		Detail:      fault.Raw,
		Suggestions: fault.Category.Suggestions(),
	})
}
