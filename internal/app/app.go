// Package app runs the perception loop that feeds the game's control record.
package app

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/ayusman/edgerunner/internal/capture"
	"github.com/ayusman/edgerunner/internal/detector"
	"github.com/ayusman/edgerunner/internal/gesture"
	"github.com/ayusman/edgerunner/internal/state"
)

// Config holds configuration options for the perception loop.
type Config struct {
	Camera   capture.Config
	Detector detector.Config
	Gesture  gesture.Config
	Loop     LoopConfig
}

// LoopConfig holds the loop pacing.
type LoopConfig struct {
	// Interval is the pause after each processed frame (~100Hz best effort).
	Interval time.Duration `yaml:"interval" validate:"gte=0"`
	// RetryInterval is the pause after a failed capture or detection.
	RetryInterval time.Duration `yaml:"retry_interval" validate:"gt=0"`
}

// DefaultLoopConfig returns the loop pacing the game expects.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		Interval:      10 * time.Millisecond,
		RetryInterval: 100 * time.Millisecond,
	}
}

// App owns the camera and detector and publishes one control record per frame.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	engine   *gesture.Engine
	store    *state.Store
	failLog  *rate.Limiter
	now      func() time.Time
	enabled  bool
	mu       sync.RWMutex
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a new App publishing into store.
func New(config Config, store *state.Store) *App {
	if store == nil {
		store = state.NewStore()
	}

	a := &App{
		config:  config,
		camera:  capture.NewCamera(config.Camera),
		engine:  gesture.NewEngine(config.Gesture),
		store:   store,
		failLog: rate.NewLimiter(rate.Every(time.Second), 1),
		now:     time.Now,
		enabled: true,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(config.Detector); err == nil {
		a.detector = mp
		log.Info("Using MediaPipe face and hand detection.")
	} else {
		log.WithError(err).Warn("MediaPipe not available, using mock detector; no landmarks will be produced.")
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled pauses or resumes frame processing. The camera stays open.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether frame processing is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the landmark detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera replaces the capture device. It must be called before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Start opens the camera and begins the perception loop.
// Calling Start on a running App is a no-op.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// A camera set with SetCamera still runs at the configured rate
	a.camera.SetFPS(a.config.Camera.FPS)

	// A camera that cannot be opened yet is retried by the loop
	if err := a.camera.Open(); err != nil {
		log.WithError(err).Warn("Cannot open camera, will retry.")
	}

	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	go a.runPipeline(a.stopCh, a.doneCh)

	log.WithField("device", a.config.Camera.DeviceID).
		WithField("fps", a.camera.FPS()).
		WithField("interval", a.config.Loop.Interval).
		Info("Perception loop started.")
	return nil
}

// Stop halts the perception loop and releases the camera and detector.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, doneCh := a.stopCh, a.doneCh
	a.stopCh, a.doneCh = nil, nil
	a.mu.Unlock()

	if stopCh == nil {
		return
	}

	close(stopCh)
	<-doneCh

	if err := a.camera.Close(); err != nil {
		log.WithError(err).Warn("Cannot close camera.")
	}

	if d := a.Detector(); d != nil {
		if err := d.Close(); err != nil {
			log.WithError(err).Warn("Cannot close detector.")
		}
	}

	log.Info("Perception loop stopped.")
}

// Store returns the state store the loop publishes into.
func (a *App) Store() *state.Store {
	return a.store
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the landmark detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
