package handler

import (
	"github.com/buildsys/server/internal/build"
	"github.com/buildsys/server/internal/character"
	"github.com/buildsys/server/internal/config"
	"github.com/buildsys/server/internal/data"
	"github.com/buildsys/server/internal/hud"
	"github.com/buildsys/server/internal/input"
	"github.com/buildsys/server/internal/world"
	"go.uber.org/zap"
)

// Deps holds shared dependencies injected into all input handlers.
type Deps struct {
	Config    *config.Config
	Log       *zap.Logger
	Character *character.Character
	Builder   *build.Controller
	World     *world.State
	Catalog   *data.StructureCatalog
	HUD       *hud.Messages
	Quit      func() // optional; called by the quit verb
}

// RegisterAll registers all input handlers into the registry.
func RegisterAll(reg *input.Registry, deps *Deps) {
	// Character controls
	reg.Register(input.ActionMove, func(evt input.Event) {
		HandleMove(evt, deps)
	})
	reg.Register(input.ActionLook, func(evt input.Event) {
		HandleLook(evt, deps)
	})

	// Build mode
	reg.Register(input.ActionStartBuild, func(evt input.Event) {
		HandleStartBuild(evt, deps)
	})
	reg.Register(input.ActionStopBuild, func(evt input.Event) {
		HandleStopBuild(evt, deps)
	})
	reg.Register(input.ActionPlace, func(evt input.Event) {
		HandlePlace(evt, deps)
	})
	reg.Register(input.ActionRotate, func(evt input.Event) {
		HandleRotate(evt, deps)
	})
	reg.Register(input.ActionToggleBuild, func(evt input.Event) {
		HandleToggleBuild(evt, deps)
	})

	// Console verbs
	reg.Register(input.ActionSelect, func(evt input.Event) {
		HandleSelect(evt, deps)
	})
	reg.Register(input.ActionList, func(evt input.Event) {
		HandleList(evt, deps)
	})
	reg.Register(input.ActionQuit, func(evt input.Event) {
		HandleQuit(evt, deps)
	})
}

// notify shows text on the HUD for the configured notice time.
func notify(deps *Deps, text string) {
	if deps.HUD == nil {
		return
	}
	ttl := config.Defaults().Build.NoticeTTL
	if deps.Config != nil {
		ttl = deps.Config.Build.NoticeTTL
	}
	deps.HUD.Add(text, ttl)
}
