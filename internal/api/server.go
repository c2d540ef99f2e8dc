// Package api implements the admin console's HTTP surface.
//
// The server is a thin layer over [pipeline.Runner] and [drafts.Store]:
// handlers decode a request, call into the shared packages, and translate
// coded errors to HTTP statuses. All map-building behavior lives in the
// pipeline so the CLI and API cannot drift apart.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/meridian/starchart/pkg/drafts"
	"github.com/meridian/starchart/pkg/errors"
	"github.com/meridian/starchart/pkg/galaxy"
	"github.com/meridian/starchart/pkg/pipeline"
	"github.com/meridian/starchart/pkg/universe"
)

// GalaxyService is the subset of the universe client the API proxies.
type GalaxyService interface {
	Generate(ctx context.Context, cfg galaxy.GenerationConfig) (*universe.GenerateResult, error)
	Status(ctx context.Context) (*universe.Status, error)
}

// Server holds the collaborators shared by all handlers.
type Server struct {
	Runner  *pipeline.Runner
	Galaxy  GalaxyService
	Drafts  drafts.Store
	Logger  *log.Logger
	Version string
}

// Router assembles the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	if s.Logger == nil {
		s.Logger = log.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Post("/galaxy/generate", s.handleGenerate)

		r.Post("/map/build", s.handleMapBuild)
		r.Post("/map/fit", s.handleMapFit)

		r.Post("/allocator/share", s.handleAllocatorShare)

		r.Route("/drafts", func(r chi.Router) {
			r.Get("/", s.handleDraftList)
			r.Post("/", s.handleDraftCreate)
			r.Get("/{id}", s.handleDraftGet)
			r.Put("/{id}", s.handleDraftUpdate)
			r.Delete("/{id}", s.handleDraftDelete)
		})
	})

	return r
}

// requestLogger logs one line per request with method, path, status and
// duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response", "err", err)
	}
}

// writeError maps a coded error onto an HTTP status and the JSON envelope.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= 500 {
		s.Logger.Error("request failed", "code", code, "err", err)
	}

	var body errorBody
	body.Error.Code = string(code)
	if body.Error.Code == "" {
		body.Error.Code = string(errors.ErrCodeInternal)
	}
	body.Error.Message = errors.UserMessage(err)
	s.writeJSON(w, status, body)
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDistribution,
		errors.ErrCodeInvalidViewport, errors.ErrCodeInvalidSectorType,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeShareNotFound,
		errors.ErrCodeDraftNotFound, errors.ErrCodeGalaxyNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decode parses a JSON request body into v.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}
