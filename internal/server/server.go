// Package server provides the HTTP REST API for the CV studio.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jonathan/cv-studio/internal/ats"
	"github.com/jonathan/cv-studio/internal/document"
	"github.com/jonathan/cv-studio/internal/enhance"
	"github.com/jonathan/cv-studio/internal/extraction"
	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/server/ratelimit"
	"github.com/jonathan/cv-studio/internal/storage"
	"github.com/jonathan/cv-studio/internal/types"
)

// Config holds server configuration
type Config struct {
	Port             int
	APIKey           string
	DataPath         string
	DebounceInterval time.Duration

	// LLMClient overrides API-key client construction; used by tests.
	LLMClient llm.Client
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	fileStore  storage.Store
	debouncer  *storage.Debouncer
	llmClient  llm.Client
	analyzer   *ats.Analyzer
	enhancer   *enhance.Enhancer
	extractor  *extraction.Extractor
	limiter    *ratelimit.Limiter

	// mu serializes document mutations; the store itself is single-writer.
	mu    sync.Mutex
	store *document.Store

	// pendingMu guards the snapshot handed to the debounced save.
	pendingMu sync.Mutex
	pending   types.Document
}

// New creates a new server instance. The persisted document is loaded
// immediately; a missing or corrupt data file starts from the template.
func New(cfg Config) (*Server, error) {
	fileStore := storage.NewFileStore(cfg.DataPath)
	doc, err := fileStore.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	s := &Server{
		fileStore: fileStore,
		limiter:   ratelimit.NewLimiter(ratelimit.DefaultModelRule(), ratelimit.DefaultEditRule()),
	}

	interval := cfg.DebounceInterval
	if interval <= 0 {
		interval = 800 * time.Millisecond
	}
	s.debouncer = storage.NewDebouncer(interval, s.savePending)
	s.store = document.NewStore(doc, s.onDocumentChange)
	s.pending = s.store.Document()

	client := cfg.LLMClient
	if client == nil && cfg.APIKey != "" {
		client, err = llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
	}
	s.llmClient = client
	if client != nil {
		s.analyzer = ats.NewAnalyzer(client)
		s.enhancer = enhance.NewEnhancer(client)
		s.extractor = extraction.NewExtractor(client)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Document endpoints
	mux.HandleFunc("GET /document", s.handleGetDocument)
	mux.HandleFunc("PUT /document", s.handleReplaceDocument)
	mux.HandleFunc("POST /document/reset", s.handleResetDocument)
	mux.HandleFunc("PATCH /document/personal", s.handleUpdatePersonal)
	mux.HandleFunc("PUT /document/summary", s.handleUpdateSummary)
	mux.HandleFunc("GET /document/validate", s.handleValidateDocument)

	// Entry endpoints
	mux.HandleFunc("POST /document/{section}/entries", s.handleAddEntry)
	mux.HandleFunc("PUT /document/{section}/entries/{id}", s.handleUpdateEntry)
	mux.HandleFunc("DELETE /document/{section}/entries/{id}", s.handleRemoveEntry)

	// Import pipeline
	mux.HandleFunc("POST /import", s.handleImport)

	// Model-backed operations
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /enhance", s.handleEnhance)

	// Rendering and export
	mux.HandleFunc("GET /preview", s.handlePreview)
	mux.HandleFunc("GET /export/json", s.handleExportJSON)
	mux.HandleFunc("GET /export/pdf", s.handleExportPDF)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF rendering and model calls are slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler exposes the configured routes; used by handler tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// onDocumentChange snapshots the mutated document and schedules the trailing
// save.
func (s *Server) onDocumentChange(doc types.Document) {
	s.pendingMu.Lock()
	s.pending = doc
	s.pendingMu.Unlock()
	s.debouncer.Trigger()
}

func (s *Server) savePending() {
	s.pendingMu.Lock()
	doc := s.pending
	s.pendingMu.Unlock()
	if err := s.fileStore.Save(doc); err != nil {
		slog.Error("failed to persist document", "error", err)
	}
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Flush the last pending edit before exiting.
	s.debouncer.Stop()

	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			slog.Warn("failed to close LLM client", "error", err)
		}
	}

	slog.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
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
		slog.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// clientID extracts the client identifier for rate limiting.
func (s *Server) clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// checkModelLimit enforces the model-call bucket; returns false after writing
// the 429 response.
func (s *Server) checkModelLimit(w http.ResponseWriter, r *http.Request) bool {
	allowed, retryAfter := s.limiter.AllowModel(s.clientID(r))
	if allowed {
		return true
	}
	secs := int(retryAfter.Seconds()) + 1
	w.Header().Set("Retry-After", fmt.Sprintf("%d", secs))
	s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded, please retry later")
	return false
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps a typed error to its HTTP status and writes the response.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	if retryAfter := QuotaRetryAfter(err); retryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())+1))
	}
	s.errorResponse(w, status, err.Error())
}
