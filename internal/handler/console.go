package handler

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/buildsys/server/internal/input"
)

// HandleSelect changes the structure kind used by the next start_build.
// A preview already on screen keeps its kind.
func HandleSelect(evt input.Event, deps *Deps) {
	if _, ok := deps.Catalog.Get(evt.Arg); !ok {
		deps.Log.Warn("select: unknown structure", zap.String("kind", evt.Arg))
		notify(deps, fmt.Sprintf("Unknown structure %q (have: %s)", evt.Arg, strings.Join(deps.Catalog.Names(), ", ")))
		return
	}
	deps.Builder.SetSelectedKind(evt.Arg)
	notify(deps, fmt.Sprintf("Selected %s", evt.Arg))
}

// HandleList shows the catalog, the build state and the structures placed
// so far.
func HandleList(_ input.Event, deps *Deps) {
	selected := deps.Builder.SelectedKind()
	if selected == "" {
		selected = "none"
	}
	notify(deps, fmt.Sprintf("Kinds: %s | selected: %s | mode: %s",
		strings.Join(deps.Catalog.Names(), ", "), selected, deps.Builder.State()))

	if deps.World == nil {
		return
	}
	for _, st := range deps.World.Structures() {
		if !st.Placed() {
			continue
		}
		notify(deps, fmt.Sprintf("#%d %s at %s", st.ID().Index(), st.Kind(), st.Pose()))
	}
	notify(deps, fmt.Sprintf("%d structure(s) placed", deps.World.PlacedCount()))
}

func HandleQuit(_ input.Event, deps *Deps) {
	deps.Log.Info("quit requested")
	if deps.Quit != nil {
		deps.Quit()
	}
}
