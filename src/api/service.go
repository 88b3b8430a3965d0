// Package api exposes the controller over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 2 * time.Second

// serviceObject adds its own endpoints to the service router.
type serviceObject interface {
	AddEndpoints(router *mux.Router)
}

// Service wraps a domain object with an HTTP server and the common health endpoint.
type Service struct {
	domainObject serviceObject
	httpAddr     string
	serviceName  string
	log          zerolog.Logger
}

func NewService(domainObject serviceObject, httpAddr, serviceName string, log zerolog.Logger) *Service {
	return &Service{
		domainObject: domainObject,
		httpAddr:     httpAddr,
		serviceName:  serviceName,
		log:          log.With().Str("component", "http").Logger(),
	}
}

// Router builds the request router with the common and the domain endpoints.
func (s *Service) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc(fmt.Sprintf("/%s/health", s.serviceName), s.HealthEndpoint).Methods(http.MethodGet)
	s.domainObject.AddEndpoints(router)
	return router
}

// Run serves until ctx is cancelled, then shuts the server down.
func (s *Service) Run(ctx context.Context) error {
	srv := &http.Server{
		Handler:           s.Router(),
		Addr:              s.httpAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpAddr).Msg("Serving http")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http service: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http service: %w", err)
	}
	s.log.Info().Msg("Http service stopped")
	return nil
}

// HealthEndpoint answers "ok" while the service runs.
func (s *Service) HealthEndpoint(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "ok", s.log)
}

func writeJSON(w http.ResponseWriter, code int, v any, log zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Encoding response failed")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}
