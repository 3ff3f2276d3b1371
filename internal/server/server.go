// Package server provides the HTTP REST API for the screening agent.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/db"
	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/embedding"
	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/extraction"
	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/matching"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	db         *db.DB
	extractor  *extraction.Extractor
	matcher    *matching.Service
	embedder   embedding.Embedder

	// extractSem bounds concurrent OCR and PDF work across uploads.
	extractSem *semaphore.Weighted
	maxUpload  int64
}

// Config holds server configuration
type Config struct {
	Port           int
	DatabaseURL    string
	APIKey         string
	EmbeddingModel string
	OCRLanguages   []string
	MaxUploadMB    int
	ExtractWorkers int
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = embedding.DefaultModel
	}
	embedder, err := embedding.NewGeminiEmbedder(context.Background(), cfg.APIKey, cfg.EmbeddingModel)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}

	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 16
	}
	if cfg.ExtractWorkers <= 0 {
		cfg.ExtractWorkers = 4
	}

	ocr := extraction.NewTesseractEngine(cfg.OCRLanguages...)
	extractor := extraction.New(ocr, extraction.NewFitzRasterizer())

	s := &Server{
		db:         database,
		extractor:  extractor,
		matcher:    matching.NewService(database, database, database, embedder),
		embedder:   embedder,
		extractSem: semaphore.NewWeighted(int64(cfg.ExtractWorkers)),
		maxUpload:  int64(cfg.MaxUploadMB) << 20,
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Candidate endpoints
	mux.HandleFunc("POST /candidates/cv", s.handleUploadCV)
	mux.HandleFunc("GET /candidates/{id}", s.handleGetCandidate)
	mux.HandleFunc("POST /candidates/{id}/cover-letters", s.handleAddCoverLetter)

	// Matching endpoints
	mux.HandleFunc("POST /match", s.handleMatch)
	mux.HandleFunc("GET /matches/{candidate_id}/{job_id}", s.handleGetMatchResult)

	// Job endpoints
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for OCR-heavy uploads
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
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

	if err := s.embedder.Close(); err != nil {
		log.Printf("Error closing embedding client: %v", err)
	}
	s.db.Close()
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
