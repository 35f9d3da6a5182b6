package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/logging"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Services bundles the application services behind the HTTP API.
type Services struct {
	Bookings domain.BookingService
	Users    domain.UserService
	Items    domain.ItemService
	Requests domain.ItemRequestService
}

// Pinger reports store health for readiness probes.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HTTPServer struct {
	cfg     config.APIConfig
	exports config.ExportConfig
	svc     Services
	store   Pinger
	server  *http.Server
	logger  *zerolog.Logger
}

func NewHTTPServer(cfg *config.Config, svc Services, store Pinger, limiter domain.RateLimiter, logger *zerolog.Logger) *HTTPServer {
	s := &HTTPServer{
		cfg:     cfg.API,
		exports: cfg.Exports,
		svc:     svc,
		store:   store,
		logger:  logging.Component(logger, "http"),
	}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeStatus(w, http.StatusNotFound, domain.Kind(domain.ErrNotFound), "route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeStatus(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})
	router.Use(requestIDMiddleware, instrument(s.logger))

	router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	router.HandleFunc("/readyz", s.handleReadyz).Methods(http.MethodGet)

	api := router.NewRoute().Subrouter()
	api.Use(NewHTTPAuth(cfg.API.Auth).Wrap, rateLimit(cfg.API.RateLimit, cfg.API.Auth, limiter, s.logger))
	s.registerBookingRoutes(api)
	s.registerUserRoutes(api)
	s.registerItemRoutes(api)
	s.registerRequestRoutes(api)

	readTimeout := time.Duration(cfg.API.HTTP.ReadTimeoutSec) * time.Second
	writeTimeout := time.Duration(cfg.API.HTTP.WriteTimeoutSec) * time.Second
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.API.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
	}
	return s
}

func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		if err := s.store.PingContext(r.Context()); err != nil {
			s.logger.Warn().Err(err).Msg("Readiness check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
