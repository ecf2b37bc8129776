package input

import (
	"fmt"

	"go.uber.org/zap"
)

// HandlerFunc handles one input event.
type HandlerFunc func(evt Event)

// Registry maps actions to handlers.
type Registry struct {
	handlers map[Action]HandlerFunc
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[Action]HandlerFunc),
		log:      log,
	}
}

// Register binds fn to action, replacing any earlier binding.
func (reg *Registry) Register(action Action, fn HandlerFunc) {
	reg.handlers[action] = fn
}

// Has reports whether action is bound.
func (reg *Registry) Has(action Action) bool {
	_, ok := reg.handlers[action]
	return ok
}

// Dispatch calls the handler bound to evt.Action.
func (reg *Registry) Dispatch(evt Event) error {
	reg.log.Debug("input event", zap.Stringer("event", evt))

	fn, ok := reg.handlers[evt.Action]
	if !ok {
		return fmt.Errorf("no handler for action %q", evt.Action)
	}
	return reg.safeCall(fn, evt)
}

// safeCall runs a handler with panic recovery so one bad event cannot take
// down the tick loop.
func (reg *Registry) safeCall(fn HandlerFunc, evt Event) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reg.log.Error("input handler panic recovered",
				zap.String("action", string(evt.Action)),
				zap.Any("panic", rec),
			)
			err = fmt.Errorf("handler panic for action %s: %v", evt.Action, rec)
		}
	}()
	fn(evt)
	return nil
}
