// Package gesture turns face and hand landmarks into game control signals.
package gesture

import "time"

// Config holds the tunable thresholds for signal derivation.
// All values are fixed per process; there is no per-user calibration.
type Config struct {
	// Smoothing (EMA weight of each new sample)
	AimSmoothing  float64 `yaml:"aim_smoothing" validate:"gt=0,lte=1"`
	TiltSmoothing float64 `yaml:"tilt_smoothing" validate:"gt=0,lte=1"`

	// Head tilt in degrees that maps to a full -1/+1 deflection
	TiltDivisorDeg float64 `yaml:"tilt_divisor_deg" validate:"gt=0"`

	// Reboot skill
	BlinkThreshold    float64       `yaml:"blink_threshold" validate:"gt=0"`     // mean eyelid gap below this counts as closed
	FlushCooldown     time.Duration `yaml:"flush_cooldown" validate:"gt=0"`      // time between reboots
	FlushRequiredTime time.Duration `yaml:"flush_required_time" validate:"gt=0"` // eyes-closed hold needed to fire

	// Fire gesture
	FireVelocity       float64 `yaml:"fire_velocity" validate:"gt=0"`         // fingertip pixels per cycle
	FireCooldownFrames int     `yaml:"fire_cooldown_frames" validate:"gte=1"` // hand-present cycles between shots

	// FrameHeight is assumed when an observation carries no frame size.
	FrameHeight int `yaml:"frame_height" validate:"gt=0"`
}

// DefaultConfig returns the thresholds the game was tuned against (640x480 webcam, ~100Hz loop).
func DefaultConfig() Config {
	return Config{
		AimSmoothing:  0.15,
		TiltSmoothing: 0.1,

		TiltDivisorDeg: 20.0, // ±20° is full tilt

		BlinkThreshold:    0.008,
		FlushCooldown:     15 * time.Second,
		FlushRequiredTime: 1 * time.Second,

		FireVelocity:       10.0,
		FireCooldownFrames: 5,

		FrameHeight: 480,
	}
}
