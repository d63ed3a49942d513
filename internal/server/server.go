// Package server provides the HTTP REST API for the consumer panel service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mariana/concept-panel/internal/config"
	"github.com/mariana/concept-panel/internal/jobs"
	"github.com/mariana/concept-panel/internal/llm"
	"github.com/mariana/concept-panel/internal/orchestrator"
	"github.com/mariana/concept-panel/internal/server/ratelimit"
)

// Server represents the HTTP server and its owned background machinery.
type Server struct {
	httpServer  *http.Server
	store       jobs.Store
	runner      *jobs.Runner
	client      llm.Client // nil means deterministic fallback data only
	orch        *orchestrator.Orchestrator
	validator   *validator.Validate
	rateLimiter *ratelimit.Limiter

	memStore *jobs.MemoryStore
	pgStore  *jobs.PostgresStore
}

// New creates a server from loaded configuration. With no GEMINI_API_KEY the
// server still runs, serving deterministic panel data; with no DATABASE_URL
// jobs live in memory only.
func New(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		validator:   validator.New(),
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	if cfg.DatabaseURL != "" {
		pg, err := jobs.ConnectPostgres(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to set up job store: %w", err)
		}
		s.pgStore = pg
		s.store = pg
	} else {
		s.memStore = jobs.NewMemoryStore(jobs.MemoryOptions{
			TTL:           cfg.JobTTL,
			SweepInterval: cfg.SweepInterval,
		})
		s.store = s.memStore
	}

	s.runner = jobs.NewRunner(s.store, jobs.RunnerOptions{
		MaxConcurrent: cfg.MaxConcurrentJobs,
		JobDeadline:   cfg.JobDeadline,
	})

	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewClient(context.Background(), &cfg.Models, cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create completion client: %w", err)
		}
		s.client = client
		s.orch = orchestrator.New(client, orchestrator.Config{
			ProfileModel: cfg.Models.ProfileModel,
			Rotation: orchestrator.RotationPolicy{
				Models:   cfg.Models.AnalysisModels,
				Fallback: cfg.Models.FallbackModel,
			},
			InsightsModel:     cfg.Models.InsightsModel,
			ProfileBatchSize:  cfg.ProfileBatchSize,
			AnalysisBatchSize: cfg.AnalysisBatchSize,
		})
	} else {
		log.Println("GEMINI_API_KEY not set, serving deterministic panel data only")
	}

	// The write timeout must outlast a poll response for a large completed
	// payload, not the jobs themselves, which run detached from requests.
	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/profiles/generate", s.handleGenerateProfiles)
	mux.HandleFunc("GET /api/profiles/generate", s.handlePollProfiles)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/analyze", s.handlePollAnalysis)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening and blocks until an interrupt, then shuts down
// gracefully, letting in-flight jobs record their outcome.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.runner.Wait()
	s.rateLimiter.Stop()
	if s.memStore != nil {
		s.memStore.Stop()
	}
	if s.pgStore != nil {
		s.pgStore.Close()
	}
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			log.Printf("Error closing completion client: %v", err)
		}
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
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
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRateLimit rejects clients that exceed their request budget
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method) {
			s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID identifies a client by its IP address.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
