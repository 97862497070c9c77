// Package server provides the HTTP REST API for the ATS analyzer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/ats-analyzer/internal/db"
	"github.com/jonathan/ats-analyzer/internal/logger"
	"github.com/jonathan/ats-analyzer/internal/schemas"
	"github.com/jonathan/ats-analyzer/internal/scoring"
	"github.com/jonathan/ats-analyzer/internal/skills"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// Store is the persistence surface the handlers need. *db.DB satisfies it.
type Store interface {
	CreateResume(ctx context.Context, candidateName, parsedText string, skills, education []string, experience string) (*db.Resume, error)
	GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	ListResumeIDs(ctx context.Context) ([]uuid.UUID, error)
	MarkResumeScored(ctx context.Context, id uuid.UUID) error
	DeleteResume(ctx context.Context, id uuid.UUID) error

	CreateJob(ctx context.Context, title, description string, skills []types.Skill, experienceLevel string) (*db.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	ListJobs(ctx context.Context) ([]db.Job, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error

	SaveOrReplace(ctx context.Context, rec *types.ScoreRecord) error
	GetScoreByResumeID(ctx context.Context, resumeID uuid.UUID) (*types.ScoreRecord, error)
	JobRankings(ctx context.Context, jobID uuid.UUID, filters db.RankingFilters) ([]db.RankingEntry, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      Store
	dict       *skills.Dictionary
	engine     *scoring.Engine
	closeDB    func()
}

// Config holds server configuration
type Config struct {
	Port           int
	DatabaseURL    string
	DictionaryPath string // empty means the embedded dictionary
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	dict := skills.Default()
	if cfg.DictionaryPath != "" {
		if err := schemas.ValidateSkillDictionary(cfg.DictionaryPath); err != nil {
			return nil, fmt.Errorf("invalid skill dictionary: %w", err)
		}
		loaded, err := skills.Load(cfg.DictionaryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load skill dictionary: %w", err)
		}
		dict = loaded
	}

	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := newServer(database, dict, cfg.Port)
	s.closeDB = database.Close
	return s, nil
}

// newServer wires the routes around an already-connected store.
func newServer(store Store, dict *skills.Dictionary, port int) *Server {
	s := &Server{
		store:  store,
		dict:   dict,
		engine: scoring.NewEngine(dict, store, store, store),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Resume endpoints
	mux.HandleFunc("POST /resumes", s.handleIngestResume)
	mux.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	mux.HandleFunc("DELETE /resumes/{id}", s.handleDeleteResume)

	// Job endpoints
	mux.HandleFunc("POST /jobs", s.handleCreateJob)
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("DELETE /jobs/{id}", s.handleDeleteJob)
	mux.HandleFunc("GET /jobs/{id}/requirements", s.handleJobRequirements)
	mux.HandleFunc("POST /jobs/{id}/rescore", s.handleRescoreJob)

	// Scoring endpoints
	mux.HandleFunc("POST /resumes/{id}/score", s.handleScoreResume)
	mux.HandleFunc("POST /resumes/{id}/score/description", s.handleScoreDescription)
	mux.HandleFunc("GET /resumes/{id}/score", s.handleGetScore)

	// Ranking endpoints
	mux.HandleFunc("GET /rankings/{job_id}", s.handleRankings)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.closeDB != nil {
		s.closeDB()
	}
	logger.Info().Msg("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Msg("encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// pathID parses the named path value as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}
