package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/buildsys/server/internal/core/ecs"
	coresys "github.com/buildsys/server/internal/core/system"
)

// CleanupSystem releases the entities destroyed during the tick: discarded
// previews and removed structures. Phase 4 (Cleanup).
type CleanupSystem struct {
	world *ecs.World
	log   *zap.Logger
}

func NewCleanupSystem(world *ecs.World, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: world, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	n := s.world.PendingDestruction()
	if n == 0 {
		return
	}
	s.world.FlushDestroyQueue()
	s.log.Debug("entities released", zap.Int("count", n))
}
