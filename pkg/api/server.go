// Package api serves the leaderboard over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/trytobebee/neon_snake/pkg/config"
	"github.com/trytobebee/neon_snake/pkg/leaderboard"
)

// Error types returned in error bodies
const (
	ErrTypeValidation = "validation_error"
	ErrTypeInternal   = "internal_error"
)

// APIError is the JSON body of every failed request
type APIError struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// Server handles leaderboard HTTP requests
type Server struct {
	store     leaderboard.Store
	logger    *log.Logger
	startTime time.Time
}

// NewServer creates a server backed by store. A nil logger logs to stdout.
func NewServer(store leaderboard.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(os.Stdout, "[API] ", log.LstdFlags)
	}
	return &Server{
		store:     store,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Routes sets up the HTTP routes with their middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	s.Mount(r)
	return r
}

// Mount registers middleware and routes on an existing router
func (s *Server) Mount(r chi.Router) {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(config.RequestTimeout))
		r.Get("/highscores", s.handleListHighScores)
		r.Get("/highscores/top", s.handleTopHighScore)
		r.Post("/highscores", s.handleSubmitHighScore)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Printf("%s %s %d %s [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleListHighScores(w http.ResponseWriter, r *http.Request) {
	limit := config.LeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "limit must be an integer")
			return
		}
		limit = clamp(n, 1, config.MaxLeaderboardAPI)
	}

	recs, err := s.store.Top(r.Context(), limit)
	if err != nil {
		s.logger.Printf("Failed to list highscores: %v", err)
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, "failed to load leaderboard")
		return
	}
	if recs == nil {
		recs = []leaderboard.Record{}
	}
	s.writeJSON(w, http.StatusOK, leaderboard.RecordsResponse{Records: recs})
}

func (s *Server) handleTopHighScore(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.Top(r.Context(), 1)
	if err != nil {
		s.logger.Printf("Failed to load top highscore: %v", err)
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, "failed to load high score")
		return
	}
	var resp leaderboard.TopResponse
	if len(recs) > 0 {
		resp.Record = &recs[0]
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitHighScore(w http.ResponseWriter, r *http.Request) {
	var req leaderboard.SubmitRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, 4096))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body")
		return
	}
	if req.Score < 0 {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "score must not be negative")
		return
	}

	rec := &leaderboard.Record{
		PlayerName: leaderboard.SanitizeName(req.PlayerName),
		Score:      req.Score,
	}
	if err := s.store.Append(r.Context(), rec); err != nil {
		s.logger.Printf("Failed to store highscore: %v", err)
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, "failed to store score")
		return
	}
	s.writeJSON(w, http.StatusCreated, rec)
}

// writeJSON writes a JSON response with proper headers
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		s.logger.Printf("Failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string) {
	s.writeJSON(w, status, APIError{
		Type:      errType,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
