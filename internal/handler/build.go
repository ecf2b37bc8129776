package handler

import (
	"go.uber.org/zap"

	"github.com/buildsys/server/internal/input"
)

// Refusals (no selection, already building, nothing to place) are reported
// by the controller's diagnostics sink; handlers only trace them.

func HandleStartBuild(_ input.Event, deps *Deps) {
	if err := deps.Builder.StartBuild(); err != nil {
		deps.Log.Debug("start_build ignored", zap.Error(err))
	}
}

func HandleStopBuild(_ input.Event, deps *Deps) {
	deps.Builder.StopBuild()
}

func HandlePlace(_ input.Event, deps *Deps) {
	placed, err := deps.Builder.PlaceStructure()
	if err != nil {
		deps.Log.Debug("place ignored", zap.Error(err))
		return
	}
	deps.Log.Debug("structure committed",
		zap.Uint64("entity", uint64(placed.ID())),
		zap.String("kind", placed.Kind()),
	)
}

func HandleRotate(evt input.Event, deps *Deps) {
	deps.Builder.RotatePreview(evt.Scalar)
}

// HandleToggleBuild starts build mode when idle and leaves it otherwise,
// for front ends that bind both to one key.
func HandleToggleBuild(evt input.Event, deps *Deps) {
	if deps.Builder.Building() {
		HandleStopBuild(evt, deps)
		return
	}
	HandleStartBuild(evt, deps)
}
