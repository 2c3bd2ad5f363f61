package gesture

import "math"

// FireTrigger detects a flick of the fingertip: a vertical jump larger than
// the threshold between two consecutive hand-present cycles. After a shot the
// trigger stays cold for a fixed number of cycles.
type FireTrigger struct {
	threshold      float64
	cooldownFrames int
	cooldown       int
	lastY          float64
	primed         bool
}

// NewFireTrigger creates a FireTrigger with a pixel threshold and cooldown in cycles.
func NewFireTrigger(threshold float64, cooldownFrames int) *FireTrigger {
	return &FireTrigger{
		threshold:      threshold,
		cooldownFrames: cooldownFrames,
	}
}

// Update feeds the fingertip height in pixels and reports whether a shot fired.
// The first sample after Reset only primes the trigger.
func (f *FireTrigger) Update(y float64) bool {
	fired := false
	if f.primed {
		velocity := y - f.lastY
		if math.Abs(velocity) > f.threshold && f.cooldown <= 0 {
			fired = true
			f.cooldown = f.cooldownFrames
		}
	}
	f.lastY = y
	f.primed = true

	if f.cooldown > 0 {
		f.cooldown--
	}
	return fired
}

// Reset forgets the last fingertip height so a reappearing hand is not read as a jump
// from where it was lost. A pending cooldown is kept.
func (f *FireTrigger) Reset() {
	f.primed = false
}
