// Package api exposes the recommendation engine over HTTP. It serves the
// same flow as the CLI minus the interactive review: clients fetch a
// recommendation, collect decisions however they like, and post them back
// for resolution.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	apperrors "github.com/pipwise/pipwise/pkg/errors"
	"github.com/pipwise/pipwise/pkg/recommend"
)

// Server handles HTTP requests for recommendations.
type Server struct {
	agg    *recommend.Aggregator
	logger *log.Logger
}

// NewServer creates an API server around the aggregator.
func NewServer(agg *recommend.Aggregator, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{agg: agg, logger: logger}
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/recommend", s.handleRecommend)
	r.Post("/v1/resolve", s.handleResolve)

	return r
}

// requestID tags every request with a UUID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyRequestID, id)))
	})
}

type ctxKey int

const ctxKeyRequestID ctxKey = 0

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		id, _ := r.Context().Value(ctxKeyRequestID).(string)
		s.logger.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recommendRequest is the body of POST /v1/recommend.
type recommendRequest struct {
	Packages    []string `json:"packages"`
	Description string   `json:"description"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid JSON body"))
		return
	}
	if len(req.Packages) == 0 && req.Description == "" {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "packages or description required"))
		return
	}

	rec := s.agg.Recommend(r.Context(), req.Packages, req.Description)
	writeJSON(w, http.StatusOK, rec)
}

// resolveRequest is the body of POST /v1/resolve: the recommendation as
// previously returned plus the client's decisions.
type resolveRequest struct {
	Recommendation *recommend.Recommendation `json:"recommendation"`
	Decisions      recommend.Decisions       `json:"decisions"`
}

type resolveResponse struct {
	Packages []string `json:"packages"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid JSON body"))
		return
	}
	if req.Recommendation == nil {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "recommendation required"))
		return
	}

	final := recommend.Resolve(req.Recommendation, req.Decisions)
	writeJSON(w, http.StatusOK, resolveResponse{Packages: final})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Error: apperrors.UserMessage(err),
		Code:  string(apperrors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
