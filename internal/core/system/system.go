package system

import "time"

// Phase orders systems within a tick.
type Phase int

const (
	PhaseInput     Phase = iota // 0: drain queued input events
	PhasePreUpdate              // 1: dispatch last tick's bus events
	PhaseUpdate                 // 2: locomotion
	PhasePreview                // 3: build preview tracking, HUD ageing
	PhaseCleanup                // 4: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePreview:
		return "preview"
	case PhaseCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
