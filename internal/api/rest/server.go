package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/store"
)

// Server represents the REST API server.
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server. db may be nil when running
// without persistence; history endpoints then answer 503.
func NewServer(port string, db *store.Database, snapshots SnapshotSource, refresher Refresher) *Server {
	handler := NewHandler(db, snapshots, refresher)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Edges
	api.HandleFunc("/edges", handler.GetLatestEdges).Methods("GET")
	api.HandleFunc("/edges/history", handler.GetTeamHistory).Methods("GET")

	// Runs
	api.HandleFunc("/runs", handler.GetRecentRuns).Methods("GET")
	api.HandleFunc("/runs/{runID}", handler.GetRun).Methods("GET")

	// Manual refresh
	api.HandleFunc("/refresh", handler.TriggerRefresh).Methods("POST")

	// Scheduler status
	api.HandleFunc("/status", handler.GetStatus).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
