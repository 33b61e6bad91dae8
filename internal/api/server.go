// Package api exposes the conversion pipeline and the accession registry
// over HTTP, so lab tooling can preview checklist mappings without writing
// submission files.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/oceanomics/faire2ena/internal/config"
	"github.com/oceanomics/faire2ena/internal/database"
)

// Server represents the HTTP preview server.
type Server struct {
	router *mux.Router
	server *http.Server
	cfg    *config.Config
	db     *database.DB
}

// Options holds server configuration.
type Options struct {
	Host string
	Port int
}

// NewServer creates a server over the given configuration and registry. The
// registry may be nil; accession endpoints then answer 503.
func NewServer(cfg *config.Config, db *database.DB, opts Options) *Server {
	s := &Server{
		router: mux.NewRouter(),
		cfg:    cfg,
		db:     db,
	}

	s.setupRoutes()
	s.router.Use(loggingMiddleware)
	s.router.Use(jsonMiddleware)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/samples/convert", s.handleConvertSample).Methods("POST")
	api.HandleFunc("/runs/convert", s.handleConvertRun).Methods("POST")

	api.HandleFunc("/accessions", s.handleListAccessions).Methods("GET")
	api.HandleFunc("/accessions/{alias}", s.handleGetAccession).Methods("GET")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting preview server on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs each request with its duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// jsonMiddleware sets the JSON content type on every response.
func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
