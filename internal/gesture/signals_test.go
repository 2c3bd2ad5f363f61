package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayusman/edgerunner/internal/detector"
)

func TestHeadTilt(t *testing.T) {
	tests := []struct {
		name    string
		tiltDeg float64
		want    float64
	}{
		{name: "level", tiltDeg: 0, want: 0},
		{name: "half right", tiltDeg: 10, want: 0.5},
		{name: "half left", tiltDeg: -10, want: -0.5},
		{name: "clamped right", tiltDeg: 35, want: 1},
		{name: "clamped left", tiltDeg: -60, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HeadTilt(detector.FaceFixture(tt.tiltDeg, 0.02), 20)
			assert.True(t, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	t.Run("short mesh", func(t *testing.T) {
		_, ok := HeadTilt(&detector.FaceLandmarks{Points: make([]detector.Point3D, 100)}, 20)
		assert.False(t, ok)
	})
}

func TestEyeClosure(t *testing.T) {
	gap, ok := EyeClosure(detector.FaceFixture(0, 0.02))
	assert.True(t, ok)
	assert.InDelta(t, 0.02, gap, 1e-9)

	t.Run("asymmetric eyes average", func(t *testing.T) {
		face := detector.FaceFixture(0, 0.02)
		face.Points[detector.RightEyeLower].Y = face.Points[detector.RightEyeUpper].Y
		gap, ok := EyeClosure(face)
		assert.True(t, ok)
		assert.InDelta(t, 0.01, gap, 1e-9)
	})

	t.Run("short mesh", func(t *testing.T) {
		_, ok := EyeClosure(&detector.FaceLandmarks{Points: make([]detector.Point3D, 200)})
		assert.False(t, ok)
	})

	t.Run("nil face", func(t *testing.T) {
		_, ok := EyeClosure(nil)
		assert.False(t, ok)
	})
}
