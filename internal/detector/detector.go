package detector

import (
	"time"

	"gocv.io/x/gocv"
)

// Detector defines the interface for landmark detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns the detected face and hands.
	// A Result with a nil Face and no Hands means nothing was found.
	Detect(frame *gocv.Mat) (*Result, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for face and hand detection.
type Config struct {
	// MaxFaces is the maximum number of faces to track (default: 1).
	MaxFaces int `yaml:"max_faces" validate:"gte=1"`

	// MaxHands is the maximum number of hands to detect (default: 1).
	MaxHands int `yaml:"max_hands" validate:"gte=1"`

	// RefineLandmarks enables iris refinement on the face mesh.
	RefineLandmarks bool `yaml:"refine_landmarks"`

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64 `yaml:"min_confidence" validate:"gte=0,lte=1"`

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64 `yaml:"min_tracking_confidence" validate:"gte=0,lte=1"`

	// Script overrides the location of perception_service.py.
	Script string `yaml:"script"`

	// Python overrides the interpreter used to run the service.
	Python string `yaml:"python"`

	// IdleTimeout stops the service after this long without frames. Zero keeps it running.
	IdleTimeout time.Duration `yaml:"idle_timeout" validate:"gte=0"`
}

// DefaultConfig returns a Config tuned for frame rate over accuracy.
func DefaultConfig() Config {
	return Config{
		MaxFaces:        1,
		MaxHands:        1,
		RefineLandmarks: true,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
		IdleTimeout:     30 * time.Second,
	}
}
