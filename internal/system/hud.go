package system

import (
	"time"

	coresys "github.com/buildsys/server/internal/core/system"
	"github.com/buildsys/server/internal/hud"
)

// HUDSystem ages on-screen messages and hands new ones to the front end.
// Phase 3 (Preview), registered after PreviewSystem.
type HUDSystem struct {
	messages *hud.Messages
	show     func(lines []string)
}

// NewHUDSystem returns a system that ticks messages and passes every newly
// added line to show. show may be nil.
func NewHUDSystem(messages *hud.Messages, show func(lines []string)) *HUDSystem {
	return &HUDSystem{messages: messages, show: show}
}

func (s *HUDSystem) Phase() coresys.Phase { return coresys.PhasePreview }

func (s *HUDSystem) Update(dt time.Duration) {
	s.messages.Tick(dt)
	if lines := s.messages.Drain(); len(lines) > 0 && s.show != nil {
		s.show(lines)
	}
}
