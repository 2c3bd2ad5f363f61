package server

import (
	"html/template"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// handleStatus handles GET requests to /api/status. The body is the latest
// published record; the perception loop is never blocked.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, s.store.Snapshot())
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, map[string]any{
		"status":  "ok",
		"uptime":  time.Since(s.start).String(),
		"session": s.session,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// handleRoot serves the index page at "/" and images by file name elsewhere.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if r.URL.Path == "/" {
		s.handleIndex(w, r)
		return
	}

	s.handleImage(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.config.WebDir == "" {
		http.NotFound(w, r)
		return
	}

	tmpl, err := template.ParseFiles(filepath.Join(s.config.WebDir, "index.html"))
	if err != nil {
		log.WithError(err).Debug("Cannot load index page.")
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, map[string]string{"Session": s.session}); err != nil {
		log.WithError(err).Warn("Cannot render index page.")
	}
}

// handleImage serves a top-level image such as /city.jpg from AssetDir.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	contentType, ok := imageTypes[strings.ToLower(path.Ext(name))]
	if !ok || strings.Contains(name, "/") || name != filepath.Base(name) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	s.serveFile(w, r, filepath.Join(s.config.AssetDir, name), contentType, "Not Found")
}

// handleAudio serves /audio/<track> for the tracks named in the config.
func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	track := strings.TrimPrefix(r.URL.Path, "/audio/")
	file, ok := s.config.AudioTracks[track]
	if !ok {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	s.serveFile(w, r, filepath.Join(s.config.AudioDir, filepath.Base(file)), "audio/mpeg", "File not found")
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, name, contentType, missing string) {
	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		http.Error(w, missing, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	http.ServeFile(w, r, name)
}
