package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/buildsys/server/internal/core/system"
	"github.com/buildsys/server/internal/input"
)

// InputSystem drains the console input queue and dispatches each event
// through the input registry. Phase 0 (Input).
type InputSystem struct {
	queue      <-chan input.Event
	registry   *input.Registry
	maxPerTick int
	log        *zap.Logger
}

func NewInputSystem(queue <-chan input.Event, registry *input.Registry, maxPerTick int, log *zap.Logger) *InputSystem {
	return &InputSystem{
		queue:      queue,
		registry:   registry,
		maxPerTick: maxPerTick,
		log:        log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

// Update dispatches at most maxPerTick events; the rest wait for the next
// tick so a flood of input cannot stall the loop.
func (s *InputSystem) Update(_ time.Duration) {
	for i := 0; i < s.maxPerTick; i++ {
		select {
		case evt, ok := <-s.queue:
			if !ok {
				return
			}
			if err := s.registry.Dispatch(evt); err != nil {
				s.log.Debug("input dispatch error",
					zap.Stringer("event", evt),
					zap.Error(err),
				)
			}
		default:
			return
		}
	}
}
