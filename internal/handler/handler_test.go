package handler

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/buildsys/server/internal/build"
	"github.com/buildsys/server/internal/character"
	"github.com/buildsys/server/internal/config"
	"github.com/buildsys/server/internal/core/ecs"
	"github.com/buildsys/server/internal/core/event"
	"github.com/buildsys/server/internal/data"
	"github.com/buildsys/server/internal/hud"
	"github.com/buildsys/server/internal/input"
	"github.com/buildsys/server/internal/world"
)

const testCatalog = `
structures:
  - {name: Wall, mesh: meshes/wall, extents: [4, 1, 3]}
  - {name: Crate, mesh: meshes/crate, extents: [1, 1, 1]}
`

type harness struct {
	reg   *input.Registry
	deps  *Deps
	logs  *observer.ObservedLogs
	ecs   *ecs.World
	quits int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	cfg := config.Defaults()
	catalog, err := data.ParseStructureCatalog([]byte(testCatalog))
	require.NoError(t, err)

	w := ecs.NewWorld()
	terrain := world.NewTerrain(32, 32, 16)
	terrain.FillGround(1)
	ws := world.NewState(w, terrain, catalog, event.NewBus(), cfg.Build.TraceDistance, log)

	player := character.New(w.CreateEntity(), character.Config{
		Spawn:           mgl64.Vec3{16, 16, 0},
		WalkSpeed:       4,
		EyeHeight:       1.5,
		LookSensitivity: 1,
		MaxPitch:        89,
	}, ws)

	messages := hud.NewMessages(0)
	builder := build.NewController(build.Collaborators{
		Owner:     player,
		Spawner:   ws,
		Tracer:    ws,
		Viewpoint: player.Camera(),
		Diag:      build.NewLogDiagnostics(log, messages, cfg.Build.NoticeTTL),
	}, cfg.Build.RotationScale)

	h := &harness{logs: logs, ecs: w}
	h.deps = &Deps{
		Config:    cfg,
		Log:       log,
		Character: player,
		Builder:   builder,
		World:     ws,
		Catalog:   catalog,
		HUD:       messages,
		Quit:      func() { h.quits++ },
	}
	h.reg = input.NewRegistry(log)
	RegisterAll(h.reg, h.deps)
	return h
}

func (h *harness) send(t *testing.T, line string) {
	t.Helper()
	evt, err := input.ParseEvent(line)
	require.NoError(t, err)
	require.NoError(t, h.reg.Dispatch(evt))
}

func TestRegisterAllBindsEveryAction(t *testing.T) {
	h := newHarness(t)
	for _, a := range []input.Action{
		input.ActionStartBuild, input.ActionStopBuild, input.ActionPlace,
		input.ActionRotate, input.ActionMove, input.ActionLook,
		input.ActionSelect, input.ActionToggleBuild, input.ActionList, input.ActionQuit,
	} {
		assert.True(t, h.reg.Has(a), "action %s", a)
	}
}

func TestStartBuildWithoutSelectionIsRefused(t *testing.T) {
	h := newHarness(t)

	h.send(t, "start_build")

	assert.False(t, h.deps.Builder.Building())
	assert.Nil(t, h.deps.Builder.Preview())
	assert.Equal(t, 1, h.logs.FilterMessage("build request refused").Len())
	assert.Contains(t, h.deps.HUD.Drain(), build.ErrNoSelection.Error())
}

func TestBuildAndPlace(t *testing.T) {
	h := newHarness(t)

	h.send(t, "select Wall")
	h.send(t, "look 0 -45")
	h.send(t, "start_build")
	require.True(t, h.deps.Builder.Building())

	h.deps.Builder.UpdatePreview()
	pos, ok := h.deps.Builder.PreviewPosition()
	require.True(t, ok)
	assert.InDelta(t, 1.0, pos.Z(), 1e-6, "preview rests on the ground")

	h.send(t, "rotate 2")
	assert.InDelta(t, 20.0, h.deps.Builder.Preview().Pose().Rotation.Yaw, 1e-9)

	h.send(t, "place")

	assert.False(t, h.deps.Builder.Building())
	assert.Equal(t, 1, h.deps.World.PlacedCount())
	placed := h.deps.World.StructuresOwnedBy(h.deps.Character.Entity())
	require.Len(t, placed, 1)
	assert.True(t, placed[0].Placed())
	assert.InDelta(t, 20.0, placed[0].Pose().Rotation.Yaw, 1e-9)
	assert.InDelta(t, pos.X(), placed[0].Pose().Position.X(), 1e-9)
}

func TestPlaceWhenIdleIsRefused(t *testing.T) {
	h := newHarness(t)

	h.send(t, "place")

	assert.Equal(t, 0, h.deps.World.PlacedCount())
	assert.Contains(t, h.deps.HUD.Drain(), build.ErrNothingToPlace.Error())
}

func TestToggleBuild(t *testing.T) {
	h := newHarness(t)
	h.send(t, "select Crate")

	h.send(t, "toggle_build")
	require.True(t, h.deps.Builder.Building())
	preview := h.deps.Builder.Preview()

	h.send(t, "toggle_build")
	assert.False(t, h.deps.Builder.Building())
	assert.True(t, preview.Destroyed())
	assert.Empty(t, h.deps.World.Structures())
}

func TestSelectUnknownKeepsSelection(t *testing.T) {
	h := newHarness(t)
	h.send(t, "select Crate")

	h.send(t, "select Tower")

	assert.Equal(t, "Crate", h.deps.Builder.SelectedKind())
	assert.Equal(t, 1, h.logs.FilterMessage("select: unknown structure").Len())
}

func TestMoveAndLookReachCharacter(t *testing.T) {
	h := newHarness(t)
	start := h.deps.Character.Location()

	h.send(t, "look 90 0")
	h.send(t, "move 0 1")
	h.deps.Character.Step(time.Second)

	got := h.deps.Character.Location()
	assert.InDelta(t, start.X(), got.X(), 1e-6)
	assert.InDelta(t, start.Y()+4, got.Y(), 1e-6)
}

func TestListShowsPlacedStructures(t *testing.T) {
	h := newHarness(t)
	h.send(t, "select Crate")
	h.send(t, "start_build")
	h.send(t, "place")
	h.deps.HUD.Drain()

	h.send(t, "list")

	lines := h.deps.HUD.Drain()
	require.Len(t, lines, 3)
	assert.Equal(t, "Kinds: Crate, Wall | selected: Crate | mode: Idle", lines[0])
	assert.Contains(t, lines[1], "Crate at ")
	assert.Equal(t, "1 structure(s) placed", lines[2])
}

func TestQuit(t *testing.T) {
	h := newHarness(t)

	h.send(t, "quit")

	assert.Equal(t, 1, h.quits)
}
