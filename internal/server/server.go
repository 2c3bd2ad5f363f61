// Package server publishes the control record and serves the game's files.
package server

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/ayusman/edgerunner/internal/state"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds the server configuration.
type Config struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"gt=0,lte=65535"`

	// WebDir holds index.html and the static/ tree (game scripts).
	WebDir string `yaml:"web_dir"`
	// AssetDir holds the .png/.jpg images the game requests by name.
	AssetDir string `yaml:"asset_dir"`
	// AudioDir holds the files named by AudioTracks.
	AudioDir    string            `yaml:"audio_dir"`
	AudioTracks map[string]string `yaml:"audio_tracks" validate:"dive,keys,required,endkeys,required"`

	// PushInterval paces /ws/status updates.
	PushInterval time.Duration `yaml:"push_interval" validate:"gt=0"`
}

// DefaultConfig listens on all interfaces at port 5000 and serves files
// relative to the working directory.
func DefaultConfig() Config {
	return Config{
		Host:     "0.0.0.0",
		Port:     5000,
		WebDir:   "web",
		AssetDir: ".",
		AudioDir: ".",
		AudioTracks: map[string]string{
			"bgm":    "I Really Want to Stay at Your House.mp3",
			"laboon": "laboon.mp3",
		},
		PushInterval: 50 * time.Millisecond,
	}
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LocalURL returns the loopback URL of the game page.
func (c Config) LocalURL() string {
	return "http://" + net.JoinHostPort("127.0.0.1", strconv.Itoa(c.Port))
}

// Server represents the HTTP server of the game backend.
type Server struct {
	config  Config
	store   *state.Store
	mux     *http.ServeMux
	start   time.Time
	session string
	status  *StatusHandler

	mu         sync.Mutex
	httpServer *http.Server
}

// New creates a new Server reading snapshots from store.
func New(config Config, store *state.Store) *Server {
	if store == nil {
		store = state.NewStore()
	}
	if config.PushInterval <= 0 {
		config.PushInterval = DefaultConfig().PushInterval
	}

	s := &Server{
		config:  config,
		store:   store,
		mux:     http.NewServeMux(),
		start:   time.Now(),
		session: uuid.NewString(),
	}
	s.status = NewStatusHandler(store, config.PushInterval)
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/status", s.handleStatus)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/ws/status", s.status)
	s.mux.HandleFunc("/audio/", s.handleAudio)

	// Serve game scripts if WebDir is configured
	if s.config.WebDir != "" {
		static := http.Dir(filepath.Join(s.config.WebDir, "static"))
		s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(static)))
	}

	// Index page and images by name
	s.mux.HandleFunc("/", s.handleRoot)
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Session returns the id of this server process.
func (s *Server) Session() string {
	return s.session
}

// ListenAndServe starts the HTTP server on the given address.
// It returns http.ErrServerClosed after Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	return srv.ListenAndServe()
}

// Shutdown stops the listener and the websocket broadcaster.
func (s *Server) Shutdown(ctx context.Context) error {
	s.status.Close()

	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
