package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/yugant99/C-UnitSegmentation/internal/evaluate"
	"github.com/yugant99/C-UnitSegmentation/internal/processor"
	"github.com/yugant99/C-UnitSegmentation/internal/store"
	"github.com/yugant99/C-UnitSegmentation/internal/telemetry"
	"github.com/yugant99/C-UnitSegmentation/internal/transcript"
)

const maxBodyBytes = 8 << 20

// Annotator is the pipeline behind the API.
type Annotator interface {
	Process(ctx context.Context, name string, r io.Reader, refine bool) (*processor.Result, error)
	Persist(ctx context.Context, res *processor.Result) error
	Lookup(ctx context.Context, id uuid.UUID) (*store.TranscriptRow, error)
}

type Server struct {
	router    *chi.Mux
	annotator Annotator
	recorder  *telemetry.Recorder
	logger    *slog.Logger
	srv       *http.Server
}

func NewServer(port int, apiToken string, a Annotator, rec *telemetry.Recorder, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:    router,
		annotator: a,
		recorder:  rec,
		logger:    logger,
	}
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	router.Get("/health", s.health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))
		r.Get("/status", s.status)
		r.Post("/annotate", s.annotate)
		r.Post("/evaluate", s.evaluate)
		r.Get("/transcripts/{id}", s.getTranscript)
	})

	return s
}

// Start serves until Shutdown. It returns nil at once if Shutdown already
// ran.
func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server once in-flight requests finish.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"agent":     "cunit",
		"status":    "ok",
		"telemetry": s.recorder.Snapshot(),
	})
}

type annotateRequest struct {
	Name   string `json:"name"`
	Text   string `json:"text"`
	Refine bool   `json:"refine"`
}

type annotateResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Document string            `json:"document"`
	Refined  string            `json:"refined,omitempty"`
	Units    int               `json:"units"`
	Pauses   int               `json:"pauses"`
	Notes    []transcript.Note `json:"notes"`
}

// annotate handles POST /api/v1/annotate
func (s *Server) annotate(w http.ResponseWriter, r *http.Request) {
	var req annotateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err), 0)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required", 0)
		return
	}
	if req.Name == "" {
		req.Name = "request"
	}

	res, err := s.annotator.Process(r.Context(), req.Name, strings.NewReader(req.Text), req.Refine)
	if err != nil {
		if line, ok := transcript.ErrorLine(err); ok {
			writeError(w, http.StatusUnprocessableEntity, err.Error(), line)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error(), 0)
		return
	}

	if err := s.annotator.Persist(r.Context(), res); err != nil {
		s.logger.Error("persist failed", "file", res.Name, "error", err)
	}

	notes := res.Notes
	if notes == nil {
		notes = []transcript.Note{}
	}
	writeJSON(w, http.StatusOK, annotateResponse{
		ID:       res.ID.String(),
		Name:     res.Name,
		Document: res.Document,
		Refined:  res.Refined,
		Units:    res.Units,
		Pauses:   res.Pauses,
		Notes:    notes,
	})
}

type evaluateRequest struct {
	System    string `json:"system"`
	Reference string `json:"reference"`
}

// evaluate handles POST /api/v1/evaluate
func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err), 0)
		return
	}
	writeJSON(w, http.StatusOK, evaluate.Compare(req.System, req.Reference))
}

// getTranscript handles GET /api/v1/transcripts/{id}
func (s *Server) getTranscript(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id", 0)
		return
	}

	row, err := s.annotator.Lookup(r.Context(), id)
	switch {
	case errors.Is(err, processor.ErrNoStore):
		writeError(w, http.StatusServiceUnavailable, err.Error(), 0)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "transcript not found", 0)
	case err != nil:
		s.logger.Error("lookup failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed", 0)
	default:
		writeJSON(w, http.StatusOK, row)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string, line int) {
	body := map[string]any{"error": msg}
	if line > 0 {
		body["line"] = line
	}
	writeJSON(w, code, body)
}
