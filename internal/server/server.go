package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"presyo/internal"
	"presyo/internal/config"
	"presyo/internal/pipeline"
	"presyo/internal/storage"
)

const maxUploadBytes = 20 << 20

// Server exposes the bulletin pipeline over HTTP: trigger a scrape, parse an
// uploaded PDF, and read back stored results.
type Server struct {
	cfg    config.Config
	db     *storage.DB
	svc    *pipeline.ProcessingService
	logger *slog.Logger
	router *chi.Mux
}

func New(cfg config.Config, db *storage.DB, svc *pipeline.ProcessingService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{cfg: cfg, db: db, svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if cfg.APIKey != "" {
			r.Use(s.requireAPIKey)
		}
		r.Post("/scrape", s.handleScrape)
		r.Post("/extract", s.handleExtract)
		r.Get("/bulletins", s.handleListBulletins)
		r.Get("/bulletins/{id}/records", s.handleBulletinRecords)
	})

	s.router = r
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != s.cfg.APIKey {
			s.writeError(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req internal.ScrapeRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	pageURL := req.TargetURL
	if pageURL == "" {
		pageURL = s.cfg.DATargetURL
	}

	result, err := s.svc.ScrapeLatest(r.Context(), pageURL)
	if err != nil {
		s.logger.Error("scrape failed", "url", pageURL, "error", err)
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, result.Payload)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, "expected multipart form with a file field")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	blob, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	result, err := s.svc.ProcessUpload(header.Filename, blob)
	if err != nil {
		s.logger.Error("extract failed", "filename", header.Filename, "error", err)
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, result.Payload)
}

func (s *Server) handleListBulletins(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	bulletins, err := s.db.ListBulletins(limit)
	if err != nil {
		s.logger.Error("list bulletins failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	type bulletinView struct {
		ID          int     `json:"id"`
		URL         string  `json:"url"`
		Filename    string  `json:"filename"`
		PublishedAt *string `json:"published_at"`
		Status      string  `json:"status"`
		FetchedAt   string  `json:"fetched_at"`
	}
	views := make([]bulletinView, 0, len(bulletins))
	for _, b := range bulletins {
		views = append(views, bulletinView{
			ID: b.ID, URL: b.URL, Filename: b.Filename,
			PublishedAt: b.PublishedAt, Status: b.Status, FetchedAt: b.FetchedAt,
		})
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleBulletinRecords(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid bulletin id")
		return
	}

	if _, err := s.db.GetBulletin(id); err != nil {
		s.writeError(w, http.StatusNotFound, "bulletin not found")
		return
	}

	records, err := s.db.GetRecords(id)
	if err != nil {
		s.logger.Error("load records failed", "bulletinId", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
