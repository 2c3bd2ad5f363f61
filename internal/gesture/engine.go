package gesture

import (
	"time"

	"github.com/ayusman/edgerunner/internal/detector"
	"github.com/ayusman/edgerunner/internal/filter"
	"github.com/ayusman/edgerunner/internal/state"
)

// Observation is one perception cycle's input.
type Observation struct {
	Face        *detector.FaceLandmarks // nil when no face was found
	Hand        *detector.HandLandmarks // nil when no hand was found
	FrameHeight int                     // pixels, used for fingertip velocity
	Time        time.Time
}

// Engine derives the control record from landmarks. It keeps the per-session
// filters and timers and is driven by a single goroutine.
type Engine struct {
	config Config
	aimX   *filter.Smooth
	aimY   *filter.Smooth
	tilt   *filter.Smooth
	skill  *Skill
	fire   *FireTrigger
}

// NewEngine creates an Engine whose outputs start at state.Initial().
func NewEngine(config Config) *Engine {
	initial := state.Initial()
	return &Engine{
		config: config,
		aimX:   filter.New(config.AimSmoothing, initial.AimX),
		aimY:   filter.New(config.AimSmoothing, initial.AimY),
		tilt:   filter.New(config.TiltSmoothing, initial.HeadTilt),
		skill:  NewSkill(config.FlushCooldown, config.FlushRequiredTime),
		fire:   NewFireTrigger(config.FireVelocity, config.FireCooldownFrames),
	}
}

// Process runs one cycle and returns the record to publish.
func (e *Engine) Process(obs Observation) state.Status {
	var st state.Status

	// Head: tilt and reboot skill
	tiltSample := 0.0
	var skill SkillState
	if obs.Face != nil {
		if v, ok := HeadTilt(obs.Face, e.config.TiltDivisorDeg); ok {
			tiltSample = v
		}
		if gap, ok := EyeClosure(obs.Face); ok {
			skill = e.skill.Update(gap < e.config.BlinkThreshold, obs.Time)
		} else {
			skill = e.skill.Skip(obs.Time)
		}
	} else {
		skill = e.skill.Skip(obs.Time)
	}

	st.HeadTilt = clamp(e.tilt.Process(tiltSample), -1, 1)
	st.FlushCDProgress = skill.Progress
	st.IsCharging = skill.Charging
	st.FlushTrigger = skill.Triggered

	// Hand: aim and fire
	if obs.Hand != nil {
		tip := obs.Hand.Points[detector.IndexTip]
		st.AimX = clamp(e.aimX.Process(clamp(tip.X, 0, 1)), 0, 1)
		st.AimY = clamp(e.aimY.Process(clamp(tip.Y, 0, 1)), 0, 1)
		st.HasGun = true

		height := obs.FrameHeight
		if height <= 0 {
			height = e.config.FrameHeight
		}
		st.IsFiring = e.fire.Update(tip.Y * float64(height))
	} else {
		st.AimX = e.aimX.Value()
		st.AimY = e.aimY.Value()
		e.fire.Reset()
	}

	return st
}

// SkillPhase returns the reboot skill phase after the last cycle.
func (e *Engine) SkillPhase() Phase {
	return e.skill.Phase()
}
