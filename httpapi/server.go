// Package httpapi provides the HTTP upload/download surface for the
// signer: a minimal upload page, a sign endpoint that streams back the
// annotated document, and a health check.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lvillar/podsign"
)

// Config holds the HTTP server settings.
type Config struct {
	// Host is the interface to bind to (default: "localhost").
	Host string `yaml:"host"`

	// Port is the port to listen on (default: 8080).
	Port int `yaml:"port"`

	// ReadTimeout/WriteTimeout/IdleTimeout guard slow clients.
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`

	// MaxUploadBytes caps the size of an uploaded document
	// (default: 32 MiB).
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// DefaultConfig returns sensible defaults for the server.
func DefaultConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           8080,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxUploadBytes: 32 << 20,
	}
}

// Server serves the signing UI and API.
type Server struct {
	cfg    Config
	log    *zap.Logger
	signer *podsign.Signer

	httpServer *http.Server
}

// NewServer creates a server around a Signer. A nil logger disables
// logging; zero config values take their defaults.
func NewServer(cfg Config, signer *podsign.Signer, log *zap.Logger) *Server {
	def := DefaultConfig()
	if cfg.Host == "" {
		cfg.Host = def.Host
	}
	if cfg.Port == 0 {
		cfg.Port = def.Port
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = def.ReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = def.MaxUploadBytes
	}
	if log == nil {
		log = zap.NewNop()
	}
	if signer == nil {
		signer = podsign.New()
	}
	return &Server{cfg: cfg, log: log, signer: signer}
}

// Handler returns the server's routes with logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /sign", s.handleSign)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return s.withLogging(mux)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
}

// Start begins serving. It blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}
	s.log.Info("http server listening", zap.String("addr", s.Addr()))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("httpapi: serving: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
