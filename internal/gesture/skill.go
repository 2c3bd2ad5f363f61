package gesture

import "time"

// Phase is the state of the blink-charged reboot skill.
type Phase int

const (
	// PhaseIdle means no charge is in progress.
	PhaseIdle Phase = iota
	// PhaseCharging means the eyes are held closed with the cooldown ready.
	PhaseCharging
	// PhaseTriggered lasts exactly one cycle, when the skill fires.
	PhaseTriggered
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCharging:
		return "charging"
	case PhaseTriggered:
		return "triggered"
	default:
		return "unknown"
	}
}

// SkillState is the outcome of one skill update.
type SkillState struct {
	Phase     Phase
	Progress  float64 // cooldown progress, 0.0 - 1.0
	Charging  bool
	Triggered bool
}

// Skill is the reboot skill: hold the eyes closed for the required time while
// the cooldown is ready and it fires once, restarting the cooldown.
type Skill struct {
	cooldown    time.Duration
	required    time.Duration
	lastTrigger time.Time // zero until the first trigger
	holdStart   time.Time
	phase       Phase
}

// NewSkill creates a Skill that starts ready.
func NewSkill(cooldown, required time.Duration) *Skill {
	return &Skill{
		cooldown: cooldown,
		required: required,
	}
}

// Progress returns the elapsed cooldown fraction at now, clamped to [0, 1].
func (s *Skill) Progress(now time.Time) float64 {
	if s.lastTrigger.IsZero() || s.cooldown <= 0 {
		return 1
	}
	return clamp(float64(now.Sub(s.lastTrigger))/float64(s.cooldown), 0, 1)
}

// Phase returns the phase reached by the last update.
func (s *Skill) Phase() Phase {
	return s.phase
}

// Update advances the skill with this cycle's eye state.
func (s *Skill) Update(eyesClosed bool, now time.Time) SkillState {
	progress := s.Progress(now)

	if !eyesClosed || progress < 1 {
		return s.reset(progress)
	}

	if s.phase != PhaseCharging {
		s.phase = PhaseCharging
		s.holdStart = now
	}

	if now.Sub(s.holdStart) >= s.required {
		s.phase = PhaseTriggered
		s.lastTrigger = now
		s.holdStart = time.Time{}
		return SkillState{Phase: PhaseTriggered, Progress: progress, Charging: true, Triggered: true}
	}

	return SkillState{Phase: PhaseCharging, Progress: progress, Charging: true}
}

// Skip reports the state for a cycle without eye data, as when the face mesh
// drops a frame. A charge in progress keeps its hold start; a trigger is never
// reported twice.
func (s *Skill) Skip(now time.Time) SkillState {
	if s.phase == PhaseTriggered {
		s.phase = PhaseIdle
	}
	return SkillState{
		Phase:    s.phase,
		Progress: s.Progress(now),
		Charging: s.phase == PhaseCharging,
	}
}

func (s *Skill) reset(progress float64) SkillState {
	s.phase = PhaseIdle
	s.holdStart = time.Time{}
	return SkillState{Phase: PhaseIdle, Progress: progress}
}
