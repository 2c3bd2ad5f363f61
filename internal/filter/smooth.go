// Package filter provides scalar smoothing filters for noisy landmark signals.
package filter

// Smooth is an exponential moving average over a single scalar signal.
// It is not safe for concurrent use; each tracked signal owns one instance.
type Smooth struct {
	alpha float64
	value float64
}

// New creates a Smooth filter with the given blend coefficient and starting value.
// Alpha is the weight of each new sample and is clamped into [0, 1].
func New(alpha, initial float64) *Smooth {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return &Smooth{
		alpha: alpha,
		value: initial,
	}
}

// Process blends sample into the filter and returns the new value.
func (s *Smooth) Process(sample float64) float64 {
	s.value = s.value*(1-s.alpha) + sample*s.alpha
	return s.value
}

// Value returns the current filtered value.
func (s *Smooth) Value() float64 {
	return s.value
}
