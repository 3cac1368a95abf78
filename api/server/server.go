package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/api"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/api/middleware"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/config"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/logger"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks/service"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks/store"
)

// Server wraps http.Server with graceful shutdown capabilities
type Server struct {
	httpServer *http.Server
	config     *config.Config
	logger     *logger.Logger
	store      store.TaskStore
}

// dependencies contains all the dependencies needed to create a server
type dependencies struct {
	service service.TaskService
	config  *config.Config
	logger  *logger.Logger
}

// New creates a new server with all HTTP configuration. The store is held so
// its connection can be released during shutdown.
func New(svc service.TaskService, taskStore store.TaskStore, cfg *config.Config, lg *logger.Logger) *Server {
	deps := &dependencies{
		service: svc,
		config:  cfg,
		logger:  lg,
	}

	handler := newRouter(deps)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address(),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		config: cfg,
		logger: lg,
		store:  taskStore,
	}
}

// newRouter creates and configures the HTTP router with all routes and middleware
func newRouter(deps *dependencies) http.Handler {
	mux := http.NewServeMux()

	// Register API routes
	mux.HandleFunc("/api/v1/tasks", api.NewTasksCollectionHandler(deps.service, deps.logger))
	mux.HandleFunc("/api/v1/tasks/", api.NewTaskItemHandler(deps.service, deps.logger))
	mux.HandleFunc("/health", api.NewHealthHandler(deps.config, deps.service, deps.logger))

	return applyMiddleware(mux, deps.config, deps.logger)
}

// applyMiddleware wraps the handler with all necessary middleware
func applyMiddleware(handler http.Handler, cfg *config.Config, lg *logger.Logger) http.Handler {
	// Apply middleware in reverse order (last applied = first executed)
	wrapped := handler

	// CORS stays permissive for the scaffold unless origins are configured.
	wrapped = cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(wrapped)

	// Request logging middleware
	wrapped = middleware.LoggingMiddleware(lg)(wrapped)

	return wrapped
}

// Start starts the server and blocks until shutdown
func (s *Server) Start() error {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		s.logger.Info("Server starting", map[string]any{
			"address": s.config.Address(),
		})

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Server failed to start", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	// Wait for interrupt signal
	<-stop
	s.logger.Info("Shutting down server")

	return s.shutdown()
}

// shutdown gracefully shuts down the server and releases the store connection.
func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := s.store.Close(ctx); err != nil {
		s.logger.Error("Store close failed", map[string]any{
			"error": err.Error(),
		})
	}

	s.logger.Info("Server shutdown complete")
	return nil
}
