/*
Package server implements the application's network transport layer.
It serves the single-page assistant form, a small JSON API and a websocket
endpoint, all backed by the same assistant.
*/
package server

import (
	"fmt"
	"net/http"
	"time"

	"NutriGini/internal/assistant"
	"NutriGini/internal/config"
	"NutriGini/internal/prompts"
	"NutriGini/internal/utility"

	"github.com/gorilla/websocket"
)

// Server defines the configuration and dependencies for the HTTP service.
type Server struct {
	// port specifies the TCP port the server will listen on.
	port int

	cfg       *config.Config
	registry  *prompts.Registry
	assistant *assistant.Assistant

	// limiter throttles query submissions per client IP.
	limiter *utility.RateLimiter

	// hub tracks open websocket clients.
	hub *utility.Hub

	// upgrader rejects websocket handshakes from foreign browser origins.
	upgrader websocket.Upgrader

	startedAt time.Time
}

// New builds a Server from already constructed dependencies.
func New(cfg *config.Config, reg *prompts.Registry, a *assistant.Assistant) (*Server, error) {
	limiter, err := utility.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.Clients)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	return &Server{
		port:      cfg.Port,
		cfg:       cfg,
		registry:  reg,
		assistant: a,
		limiter:   limiter,
		hub:       utility.NewHub(),
		upgrader:  utility.NewUpgrader(cfg.AllowedOrigins),
		startedAt: time.Now(),
	}, nil
}

// HTTPServer wraps the routes in a standard library http.Server with
// timeouts sized for two sequential completion calls.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2*s.cfg.LLM.Timeout + 10*time.Second,
	}
}

// Shutdown closes long-lived websocket clients. The HTTP server itself is
// shut down by the caller.
func (s *Server) Shutdown() {
	s.hub.CloseAll()
}
