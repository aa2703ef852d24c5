// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"qaboard/src/app/http/dto"
	"qaboard/src/app/http/handler"
	"qaboard/src/app/http/response"
	"qaboard/src/app/middleware"
	"qaboard/src/core/domain"
	"qaboard/src/core/ports"
	"qaboard/src/core/usecase"
	"qaboard/src/infra/config"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	router *gin.Engine
	http   *http.Server

	// Handlers
	healthHandler   *handler.HealthHandler
	questionHandler *handler.QuestionHandler
	answerHandler   *handler.AnswerHandler
}

// New creates a new Server with all dependencies wired up.
func New(cfg *config.Config, log *slog.Logger, repo ports.QuestionRepository, moderator ports.Moderator) *Server {
	// Set Gin mode based on log level
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	dto.RegisterValidation()

	// Create router without default middleware
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Create services
	healthService := usecase.NewHealthService(repo, log)
	questionService := usecase.NewQuestionService(repo, moderator, log)
	answerService := usecase.NewAnswerService(repo, log)

	s := &Server{
		cfg:             cfg,
		log:             log,
		router:          router,
		healthHandler:   handler.NewHealthHandler(healthService),
		questionHandler: handler.NewQuestionHandler(questionService, log),
		answerHandler:   handler.NewAnswerHandler(answerService, log),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Order matters: Recovery should be first to catch all panics
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Logging(s.log))
	s.router.Use(middleware.Metrics())
	s.router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	s.router.Use(middleware.CORS(s.cfg.CORS, s.log))

	if s.cfg.RateLimit.RPS > 0 {
		limiter := middleware.NewRateLimiter(s.cfg.RateLimit.RPS, s.cfg.RateLimit.Burst, s.log)
		s.router.Use(limiter.Handler())
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthHandler.Health)
	s.router.GET("/health/detailed", s.healthHandler.DetailedHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/questions", s.questionHandler.List)
	s.router.POST("/questions", s.questionHandler.Create)
	s.router.GET("/questions/:id", s.questionHandler.Get)
	s.router.PUT("/questions/:id", s.questionHandler.Update)
	s.router.DELETE("/questions/:id", s.questionHandler.Delete)

	s.router.POST("/comments", s.answerHandler.Create)

	s.router.NoRoute(func(c *gin.Context) {
		response.FromDomainError(c, s.log, domain.ErrRouteNotFound, middleware.GetRequestID(c))
	})
	s.router.NoMethod(func(c *gin.Context) {
		response.FromDomainError(c, s.log, domain.ErrMethodNotAllowed, middleware.GetRequestID(c))
	})
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown.
// It handles graceful shutdown on SIGINT/SIGTERM.
func (s *Server) Run() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)

	go func() {
		s.log.Info("starting HTTP server",
			"addr", s.cfg.Server.Addr(),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		s.log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}
