package detector

import (
	"math"
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu     sync.Mutex
	result *Result
	err    error
	calls  int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetResult sets the face and hands that will be returned by Detect.
func (m *MockDetector) SetResult(face *FaceLandmarks, hands ...HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.result = &Result{Face: face, Hands: hands}
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured result or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &Result{}, nil
	}
	r := *m.result
	return &r, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// PointingHandLandmarks returns a right hand in a finger-gun pose with the
// index fingertip at (x, y).
func PointingHandLandmarks(x, y float64) HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	// Palm sits below and left of the fingertip
	landmarks.Points[Wrist] = Point3D{X: x - 0.05, Y: y + 0.30, Z: 0.0}

	// Thumb cocked upward
	landmarks.Points[ThumbCMC] = Point3D{X: x - 0.02, Y: y + 0.26, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: x, Y: y + 0.22, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: x + 0.01, Y: y + 0.17, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: x + 0.01, Y: y + 0.12, Z: 0.0}

	// Index finger extended to the tip
	landmarks.Points[IndexMCP] = Point3D{X: x - 0.03, Y: y + 0.18, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: x - 0.02, Y: y + 0.12, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: x - 0.01, Y: y + 0.06, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: x, Y: y, Z: 0.0}

	// Remaining fingers curled into the palm
	for i, base := range []int{MiddleMCP, RingMCP, PinkyMCP} {
		dx := -0.06 - float64(i)*0.03
		landmarks.Points[base] = Point3D{X: x + dx, Y: y + 0.20, Z: -0.02}
		landmarks.Points[base+1] = Point3D{X: x + dx, Y: y + 0.18, Z: -0.05}
		landmarks.Points[base+2] = Point3D{X: x + dx + 0.01, Y: y + 0.21, Z: -0.04}
		landmarks.Points[base+3] = Point3D{X: x + dx + 0.02, Y: y + 0.23, Z: -0.02}
	}

	return landmarks
}

// FaceFixture returns a face mesh whose eye corners are rolled by tiltDeg degrees
// (positive rolls the right eye downward in image space) and whose eyelid gap is
// lidGap on both eyes.
func FaceFixture(tiltDeg, lidGap float64) *FaceLandmarks {
	face := &FaceLandmarks{Points: make([]Point3D, NumFaceLandmarks)}

	const halfSpan = 0.08
	cx, cy := 0.5, 0.4
	rad := tiltDeg * math.Pi / 180
	dx := halfSpan * math.Cos(rad)
	dy := halfSpan * math.Sin(rad)

	left := Point3D{X: cx - dx, Y: cy - dy}
	right := Point3D{X: cx + dx, Y: cy + dy}
	face.Points[LeftEyeOuter] = left
	face.Points[RightEyeOuter] = right

	face.Points[LeftEyeUpper] = Point3D{X: left.X + 0.03, Y: left.Y - lidGap/2}
	face.Points[LeftEyeLower] = Point3D{X: left.X + 0.03, Y: left.Y + lidGap/2}
	face.Points[RightEyeUpper] = Point3D{X: right.X - 0.03, Y: right.Y - lidGap/2}
	face.Points[RightEyeLower] = Point3D{X: right.X - 0.03, Y: right.Y + lidGap/2}

	return face
}

// OpenEyesFace returns a level face with both eyes open.
func OpenEyesFace() *FaceLandmarks {
	return FaceFixture(0, 0.025)
}

// ClosedEyesFace returns a level face with both eyes shut.
func ClosedEyesFace() *FaceLandmarks {
	return FaceFixture(0, 0.002)
}
