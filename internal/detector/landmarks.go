// Package detector provides face and hand landmark detection for gesture control.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Face mesh indices used for head pose and eye closure.
// See: https://github.com/google/mediapipe/blob/master/mediapipe/modules/face_geometry/data/canonical_face_model_uv_visualization.png
const (
	LeftEyeOuter  = 33
	LeftEyeUpper  = 159
	LeftEyeLower  = 145
	RightEyeOuter = 263
	RightEyeUpper = 386
	RightEyeLower = 374

	// NumFaceLandmarks is the mesh size with iris refinement enabled.
	NumFaceLandmarks = 478
)

// Point3D represents a 3D point in space with x, y, z coordinates.
// X and Y are normalized to the frame (0.0 - 1.0).
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// FaceLandmarks represents one face mesh. The mesh has 468 points, or 478 with iris refinement.
type FaceLandmarks struct {
	Points []Point3D `json:"points"`
}

// Point returns the landmark at index i and whether the mesh contains it.
func (f *FaceLandmarks) Point(i int) (Point3D, bool) {
	if f == nil || i < 0 || i >= len(f.Points) {
		return Point3D{}, false
	}
	return f.Points[i], true
}

// Result is the output of one detection pass over a frame.
type Result struct {
	Face  *FaceLandmarks  `json:"face,omitempty"`
	Hands []HandLandmarks `json:"hands"`
}

// PrimaryHand returns the first detected hand, or nil when none was found.
func (r *Result) PrimaryHand() *HandLandmarks {
	if r == nil || len(r.Hands) == 0 {
		return nil
	}
	return &r.Hands[0]
}
