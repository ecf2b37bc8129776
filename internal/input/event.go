package input

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Action names a discrete input event.
type Action string

const (
	ActionStartBuild Action = "start_build"
	ActionStopBuild  Action = "stop_build"
	ActionPlace      Action = "place"
	ActionRotate     Action = "rotate" // carries Scalar
	ActionMove       Action = "move"   // carries Axis
	ActionLook       Action = "look"   // carries Axis

	// Console-only verbs.
	ActionSelect      Action = "select" // carries Arg
	ActionToggleBuild Action = "toggle_build"
	ActionList        Action = "list"
	ActionQuit        Action = "quit"
)

// Event is one delivered input action with its payload.
type Event struct {
	Action Action
	Scalar float64
	Axis   mgl64.Vec2
	Arg    string
}

func (e Event) String() string {
	switch e.Action {
	case ActionRotate:
		return fmt.Sprintf("%s %g", e.Action, e.Scalar)
	case ActionMove, ActionLook:
		return fmt.Sprintf("%s %g %g", e.Action, e.Axis.X(), e.Axis.Y())
	case ActionSelect:
		return fmt.Sprintf("%s %s", e.Action, e.Arg)
	default:
		return string(e.Action)
	}
}

// ParseEvent reads one console line, e.g. "rotate 1.5" or "move 0 1".
func ParseEvent(line string) (Event, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Event{}, fmt.Errorf("empty input")
	}
	evt := Event{Action: Action(strings.ToLower(fields[0]))}
	args := fields[1:]

	switch evt.Action {
	case ActionStartBuild, ActionStopBuild, ActionPlace, ActionToggleBuild, ActionList, ActionQuit:
		if len(args) != 0 {
			return Event{}, fmt.Errorf("%s takes no arguments", evt.Action)
		}
	case ActionRotate:
		if len(args) != 1 {
			return Event{}, fmt.Errorf("rotate takes one value")
		}
		v, err := parseFinite(args[0])
		if err != nil {
			return Event{}, fmt.Errorf("rotate value: %w", err)
		}
		evt.Scalar = v
	case ActionMove, ActionLook:
		if len(args) != 2 {
			return Event{}, fmt.Errorf("%s takes two values", evt.Action)
		}
		x, err := parseFinite(args[0])
		if err != nil {
			return Event{}, fmt.Errorf("%s x: %w", evt.Action, err)
		}
		y, err := parseFinite(args[1])
		if err != nil {
			return Event{}, fmt.Errorf("%s y: %w", evt.Action, err)
		}
		evt.Axis = mgl64.Vec2{x, y}
	case ActionSelect:
		if len(args) != 1 {
			return Event{}, fmt.Errorf("select takes one structure name")
		}
		evt.Arg = args[0]
	default:
		return Event{}, fmt.Errorf("unknown action %q", fields[0])
	}
	return evt, nil
}

// parseFinite parses a float and rejects NaN and ±Inf.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}
