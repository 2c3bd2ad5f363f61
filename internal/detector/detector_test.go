package detector

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func TestFaceLandmarks_Point(t *testing.T) {
	face := &FaceLandmarks{Points: []Point3D{{X: 0.1}, {X: 0.2}}}

	tests := []struct {
		name   string
		face   *FaceLandmarks
		index  int
		wantOK bool
		wantX  float64
	}{
		{name: "in range", face: face, index: 1, wantOK: true, wantX: 0.2},
		{name: "past end", face: face, index: 2, wantOK: false},
		{name: "negative", face: face, index: -1, wantOK: false},
		{name: "nil face", face: nil, index: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := tt.face.Point(tt.index)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantX, p.X)
		})
	}
}

func TestResult_PrimaryHand(t *testing.T) {
	t.Run("nil result", func(t *testing.T) {
		var r *Result
		assert.Nil(t, r.PrimaryHand())
	})

	t.Run("no hands", func(t *testing.T) {
		assert.Nil(t, (&Result{}).PrimaryHand())
	})

	t.Run("first hand wins", func(t *testing.T) {
		r := &Result{Hands: []HandLandmarks{
			PointingHandLandmarks(0.3, 0.4),
			PointingHandLandmarks(0.7, 0.8),
		}}
		hand := r.PrimaryHand()
		require.NotNil(t, hand)
		assert.Equal(t, 0.3, hand.Points[IndexTip].X)
	})
}

func TestParseResponse(t *testing.T) {
	t.Run("face and hand", func(t *testing.T) {
		points := `[` + repeatPoint(NumLandmarks) + `]`
		line := []byte(`{"face":{"points":[{"x":0.1,"y":0.2,"z":0}]},"hands":[{"points":` + points + `,"handedness":"Left","score":0.8}]}` + "\n")

		r, err := parseResponse(line)
		require.NoError(t, err)
		require.NotNil(t, r.Face)
		assert.Len(t, r.Face.Points, 1)
		require.Len(t, r.Hands, 1)
		assert.Equal(t, "Left", r.Hands[0].Handedness)
		assert.Equal(t, 0.5, r.Hands[0].Points[IndexTip].X)
	})

	t.Run("empty detection", func(t *testing.T) {
		r, err := parseResponse([]byte(`{"face":null,"hands":[]}`))
		require.NoError(t, err)
		assert.Nil(t, r.Face)
		assert.Empty(t, r.Hands)
	})

	t.Run("partial hand dropped", func(t *testing.T) {
		r, err := parseResponse([]byte(`{"hands":[{"points":[{"x":1,"y":1,"z":0}]}]}`))
		require.NoError(t, err)
		assert.Empty(t, r.Hands)
	})

	t.Run("service error", func(t *testing.T) {
		_, err := parseResponse([]byte(`{"error":"decode failed"}`))
		assert.ErrorContains(t, err, "decode failed")
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := parseResponse([]byte(`not json`))
		assert.Error(t, err)
	})
}

func repeatPoint(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			s += ","
		}
		s += `{"x":0.5,"y":0.5,"z":0}`
	}
	return s
}

func TestNewMediaPipeDetector_MissingScript(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Script = "/nonexistent/perception_service.py"

	_, err := NewMediaPipeDetector(cfg)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestMediaPipeDetector_ServiceArgs(t *testing.T) {
	d := &MediaPipeDetector{config: DefaultConfig(), scriptPath: "svc.py"}

	args := d.serviceArgs()
	assert.Equal(t, "svc.py", args[0])
	assert.Contains(t, args, "--refine-landmarks")
	assert.Contains(t, args, "0.5")
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty result by default", func(t *testing.T) {
		mock := NewMockDetector()

		r, err := mock.Detect(nil)

		require.NoError(t, err)
		assert.Nil(t, r.Face)
		assert.Empty(t, r.Hands)
		assert.Equal(t, 1, mock.Calls())
	})

	t.Run("returns configured result", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetResult(OpenEyesFace(), PointingHandLandmarks(0.2, 0.3))

		r, err := mock.Detect(nil)

		require.NoError(t, err)
		assert.NotNil(t, r.Face)
		assert.Len(t, r.Hands, 1)
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()
		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		r, err := mock.Detect(nil)

		assert.Equal(t, expectedErr, err)
		assert.Nil(t, r)
	})

	t.Run("Close returns nil", func(t *testing.T) {
		assert.NoError(t, NewMockDetector().Close())
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
		var _ Detector = (*MediaPipeDetector)(nil)
	})
}

func TestPointingHandLandmarks(t *testing.T) {
	hand := PointingHandLandmarks(0.4, 0.3)

	assert.Equal(t, 0.4, hand.Points[IndexTip].X)
	assert.Equal(t, 0.3, hand.Points[IndexTip].Y)

	// index is the highest point of the hand
	for i, p := range hand.Points {
		if i == IndexTip {
			continue
		}
		assert.Greater(t, p.Y, hand.Points[IndexTip].Y, "landmark %d", i)
	}
}

func TestFaceFixture(t *testing.T) {
	t.Run("tilt angle", func(t *testing.T) {
		face := FaceFixture(10, 0.02)
		l, _ := face.Point(LeftEyeOuter)
		r, _ := face.Point(RightEyeOuter)

		deg := math.Atan2(r.Y-l.Y, r.X-l.X) * 180 / math.Pi
		assert.InDelta(t, 10, deg, 1e-6)
	})

	t.Run("lid gap", func(t *testing.T) {
		face := FaceFixture(0, 0.02)
		up, _ := face.Point(LeftEyeUpper)
		low, _ := face.Point(LeftEyeLower)
		assert.InDelta(t, 0.02, math.Abs(up.Y-low.Y), epsilon)

		up, _ = face.Point(RightEyeUpper)
		low, _ = face.Point(RightEyeLower)
		assert.InDelta(t, 0.02, math.Abs(up.Y-low.Y), epsilon)
	})

	t.Run("full refined mesh", func(t *testing.T) {
		assert.Len(t, OpenEyesFace().Points, NumFaceLandmarks)
		assert.Len(t, ClosedEyesFace().Points, NumFaceLandmarks)
	})
}
