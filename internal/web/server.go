package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/tubefetch/tubefetch/internal/download"
)

const shutdownGrace = 10 * time.Second

// Server exposes one download session over HTTP: a form page, JSON endpoints
// for inspection and progress polling, and file export.
type Server struct {
	svc    *download.Service
	logger *log.Logger
	tmpl   *template.Template
}

func NewServer(svc *download.Service, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		svc:    svc,
		logger: logger,
		tmpl:   template.Must(template.New("index").Parse(indexPage)),
	}
}

// Routes builds the request mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/info", s.handleInfo)
	mux.HandleFunc("/api/download", s.handleDownload)
	mux.HandleFunc("/api/progress", s.handleProgress)
	mux.HandleFunc("/api/files", s.handleFiles)
	mux.HandleFunc("/api/clear", s.handleClear)
	mux.HandleFunc("/files/", s.handleExport)
	mux.HandleFunc("/health", s.handleHealth)

	return mux
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
