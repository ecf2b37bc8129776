package system

import (
	"time"

	coresys "github.com/buildsys/server/internal/core/system"
)

// Stepper integrates queued movement input.
type Stepper interface {
	Step(dt time.Duration)
}

// LocomotionSystem moves the character by the input queued this tick.
// Phase 2 (Update).
type LocomotionSystem struct {
	walker Stepper
}

func NewLocomotionSystem(walker Stepper) *LocomotionSystem {
	return &LocomotionSystem{walker: walker}
}

func (s *LocomotionSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *LocomotionSystem) Update(dt time.Duration) {
	s.walker.Step(dt)
}
