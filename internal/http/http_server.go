package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/pagetest.net/internal/config"
	"gitlab.com/pagetest.net/internal/core/ports/primary"
	"gitlab.com/pagetest.net/internal/core/services/testgen"
	"gitlab.com/pagetest.net/internal/handlers"
	"gitlab.com/pagetest.net/internal/handlers/tests"
)

type ServiceProvider struct {
	testService testgen.ITestGenService
	tokens      primary.TokenService
	guarded     bool
}

// NewServiceProvider bundles the services behind the routes. The API is only
// guarded by bearer tokens when guarded is set.
func NewServiceProvider(testService testgen.ITestGenService, tokens primary.TokenService, guarded bool) *ServiceProvider {
	return &ServiceProvider{
		testService: testService,
		tokens:      tokens,
		guarded:     guarded,
	}
}

type Server struct {
	router          *mux.Router
	cfg             *config.ServerConfig
	ServiceProvider ServiceProvider
	logger          primary.Logger
	srv             *http.Server
}

func NewServer(cfg *config.ServerConfig, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		cfg:             cfg,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.testService == nil {
		return errors.New("test service is required")
	}
	middleware := handlers.New(s.ServiceProvider.tokens, s.ServiceProvider.guarded, s.logger)

	r := mux.NewRouter()
	r.Use(middleware.RequestLogger)
	handlers.NewHealthHandler(s.cfg.ServiceName).RegisterRoutes(r)

	api := mux.NewRouter()
	api.Use(middleware.JWTMiddleware)
	tests.NewHandler(s.ServiceProvider.testService, s.logger).RegisterRoutes(api)
	r.PathPrefix("/api/").Handler(api)

	s.router = r
	return nil
}

// Handler exposes the routed handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the listener and serves in the background. A bind failure is
// returned, later serve errors are logged.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}

	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.cfg.ServiceName)
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
