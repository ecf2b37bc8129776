package system

import (
	"time"

	coresys "github.com/buildsys/server/internal/core/system"
)

// PreviewUpdater is the per-tick half of the placement controller.
type PreviewUpdater interface {
	UpdatePreview()
}

// PreviewSystem keeps the build preview under the crosshair. It runs after
// locomotion so the trace uses this tick's camera. Phase 3 (Preview).
type PreviewSystem struct {
	builder PreviewUpdater
}

func NewPreviewSystem(builder PreviewUpdater) *PreviewSystem {
	return &PreviewSystem{builder: builder}
}

func (s *PreviewSystem) Phase() coresys.Phase { return coresys.PhasePreview }

func (s *PreviewSystem) Update(_ time.Duration) {
	s.builder.UpdatePreview()
}
