// Package state holds the control record shared between the perception loop and the web layer.
package state

import "sync/atomic"

// Status is the control record consumed by the browser game.
// The JSON keys are part of the game's polling contract.
type Status struct {
	AimX            float64 `json:"aim_x"`             // 0.0 - 1.0
	AimY            float64 `json:"aim_y"`             // 0.0 - 1.0
	HeadTilt        float64 `json:"head_tilt"`         // -1.0 - 1.0
	IsFiring        bool    `json:"is_firing"`         // shooting gesture seen this cycle
	FlushTrigger    bool    `json:"flush_trigger"`     // reboot skill fired this cycle
	FlushCDProgress float64 `json:"flush_cd_progress"` // 0.0 - 1.0, 1.0 means ready
	IsCharging      bool    `json:"is_charging"`       // eyes held closed toward a reboot
	HasGun          bool    `json:"has_gun"`           // a hand is tracked
}

// Initial returns the record published before the first perception cycle.
func Initial() Status {
	return Status{
		AimX:            0.5,
		AimY:            0.5,
		FlushCDProgress: 1.0,
	}
}

// Store publishes whole Status snapshots. Writers replace the record atomically,
// so readers always observe a single cycle's values.
type Store struct {
	current atomic.Pointer[Status]
}

// NewStore creates a Store holding the initial record.
func NewStore() *Store {
	s := &Store{}
	initial := Initial()
	s.current.Store(&initial)
	return s
}

// Publish replaces the current record.
func (s *Store) Publish(st Status) {
	s.current.Store(&st)
}

// Snapshot returns a copy of the current record.
func (s *Store) Snapshot() Status {
	return *s.current.Load()
}
