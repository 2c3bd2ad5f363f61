package gesture

import (
	"math"

	"github.com/ayusman/edgerunner/internal/detector"
)

// HeadTilt returns the roll of the line through the outer eye corners,
// normalized by divisorDeg and clamped to [-1, 1].
// The second return value is false when the mesh lacks the eye corners.
func HeadTilt(face *detector.FaceLandmarks, divisorDeg float64) (float64, bool) {
	left, ok := face.Point(detector.LeftEyeOuter)
	if !ok {
		return 0, false
	}
	right, ok := face.Point(detector.RightEyeOuter)
	if !ok {
		return 0, false
	}

	deg := math.Atan2(right.Y-left.Y, right.X-left.X) * 180 / math.Pi
	return clamp(deg/divisorDeg, -1, 1), true
}

// EyeClosure returns the mean vertical eyelid gap of both eyes in normalized frame units.
func EyeClosure(face *detector.FaceLandmarks) (float64, bool) {
	pairs := [2][2]int{
		{detector.LeftEyeUpper, detector.LeftEyeLower},
		{detector.RightEyeUpper, detector.RightEyeLower},
	}

	var sum float64
	for _, pair := range pairs {
		upper, ok := face.Point(pair[0])
		if !ok {
			return 0, false
		}
		lower, ok := face.Point(pair[1])
		if !ok {
			return 0, false
		}
		sum += math.Abs(upper.Y - lower.Y)
	}
	return sum / 2, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
