package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/buildsys/server/internal/build"
	"github.com/buildsys/server/internal/component"
	"github.com/buildsys/server/internal/core/ecs"
	"github.com/buildsys/server/internal/core/event"
	"github.com/buildsys/server/internal/data"
)

const testCatalog = `
structures:
  - {name: Wall, mesh: meshes/wall, extents: [4, 1, 3], grid: 1}
  - {name: Crate, mesh: meshes/crate, extents: [1, 1, 1]}
`

func newTestState(t *testing.T) (*State, *ecs.World, *event.Bus) {
	t.Helper()
	catalog, err := data.ParseStructureCatalog([]byte(testCatalog))
	require.NoError(t, err)
	terrain := NewTerrain(32, 32, 16)
	terrain.FillGround(1)
	w := ecs.NewWorld()
	bus := event.NewBus()
	return NewState(w, terrain, catalog, bus, 64, zap.NewNop()), w, bus
}

var owner = ecs.NewEntityID(99, 0)

func TestSpawnResolvesVisual(t *testing.T) {
	s, _, _ := newTestState(t)

	st, err := s.Spawn("Wall", component.NewTransform(mgl64.Vec3{5, 5, 1}, component.ZeroRotator), false, owner)
	require.NoError(t, err)

	assert.Equal(t, "Wall", st.Kind())
	assert.Equal(t, "meshes/wall", string(st.Visual()))
	assert.False(t, st.Placed())
	assert.False(t, st.Solid())

	got, ok := s.Get(st.ID())
	require.True(t, ok)
	assert.Same(t, st, got)
	assert.Equal(t, []*build.Structure{st}, s.StructuresOwnedBy(owner))
}

func TestSpawnUnknownKind(t *testing.T) {
	s, _, _ := newTestState(t)

	st, err := s.Spawn("Tower", component.Transform{}, false, owner)

	assert.Nil(t, st)
	assert.ErrorContains(t, err, `unknown structure kind "Tower"`)
	assert.Empty(t, s.Structures())
}

func TestDestroyRemovesAtOnceAndReleasesAtCleanup(t *testing.T) {
	s, w, bus := newTestState(t)
	st, err := s.Spawn("Crate", component.Transform{}, true, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, s.PlacedCount())

	st.Destroy()

	_, ok := s.Get(st.ID())
	assert.False(t, ok)
	assert.Empty(t, s.Structures())
	assert.Zero(t, s.PlacedCount())
	assert.Equal(t, 1, w.PendingDestruction())
	assert.Equal(t, 1, bus.Pending())

	// a second removal through the scene is ignored
	s.Remove(st)
	assert.Equal(t, 1, w.PendingDestruction())
	assert.Equal(t, 1, bus.Pending())

	w.FlushDestroyQueue()
	assert.False(t, w.Pool().Alive(st.ID()))
	assert.Zero(t, w.PendingDestruction())
}

func TestTraceHitsGround(t *testing.T) {
	s, _, _ := newTestState(t)

	hit, ok := s.TraceForward(mgl64.Vec3{10.5, 10.5, 5}, mgl64.Vec3{0, 0, -1})

	require.True(t, ok)
	assert.True(t, hit.ApproxEqualThreshold(mgl64.Vec3{10.5, 10.5, 1}, 1e-9), "hit %v", hit)
}

func TestTraceMissesSky(t *testing.T) {
	s, _, _ := newTestState(t)

	_, ok := s.TraceForward(mgl64.Vec3{10.5, 10.5, 5}, mgl64.Vec3{0, 0, 1})
	assert.False(t, ok)

	_, ok = s.TraceForward(mgl64.Vec3{10.5, 10.5, 5}, mgl64.Vec3{})
	assert.False(t, ok, "zero direction")
}

func TestTraceHitsPlacedButNotPreview(t *testing.T) {
	s, _, _ := newTestState(t)
	eye := mgl64.Vec3{2, 10, 2}
	forward := mgl64.Vec3{1, 0, 0}

	preview, err := s.Spawn("Wall", component.NewTransform(mgl64.Vec3{8, 10, 1}, component.Rotator{Yaw: 90}), false, owner)
	require.NoError(t, err)
	_, ok := s.TraceForward(eye, forward)
	assert.False(t, ok, "previews never block traces")

	preview.Destroy()
	_, err = s.Spawn("Wall", component.NewTransform(mgl64.Vec3{8, 10, 1}, component.Rotator{Yaw: 90}), true, owner)
	require.NoError(t, err)

	hit, ok := s.TraceForward(eye, forward)
	require.True(t, ok)
	// turned 90°, the wall is 1 unit deep along X: faces at 7.5 and 8.5
	assert.InDelta(t, 7.5, hit.X(), 1e-9)
	assert.InDelta(t, 10.0, hit.Y(), 1e-9)
}

func TestPlaceAfterSpawnBlocksTraces(t *testing.T) {
	s, _, _ := newTestState(t)
	eye := mgl64.Vec3{2, 5.5, 1.5}
	forward := mgl64.Vec3{1, 0, 0}

	st, err := s.Spawn("Crate", component.NewTransform(mgl64.Vec3{10.5, 5.5, 1}, component.ZeroRotator), false, owner)
	require.NoError(t, err)
	_, ok := s.TraceForward(eye, forward)
	require.False(t, ok)

	st.Place()

	hit, ok := s.TraceForward(eye, forward)
	require.True(t, ok)
	assert.InDelta(t, 10.0, hit.X(), 1e-9)
	assert.Equal(t, 1, s.PlacedCount())

	st.Destroy()
	_, ok = s.TraceForward(eye, forward)
	assert.False(t, ok, "destroyed structures stop blocking")
}

func TestTraceTakesNearest(t *testing.T) {
	s, _, _ := newTestState(t)
	s.Terrain().SetSolid(20, 10, 2, true)
	_, err := s.Spawn("Crate", component.NewTransform(mgl64.Vec3{12, 10.5, 2}, component.ZeroRotator), true, owner)
	require.NoError(t, err)

	hit, ok := s.TraceForward(mgl64.Vec3{2, 10.5, 2.5}, mgl64.Vec3{1, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, 11.5, hit.X(), 1e-9)
}

func TestStructuresOwnedBy(t *testing.T) {
	s, _, _ := newTestState(t)
	other := ecs.NewEntityID(100, 0)
	a, _ := s.Spawn("Crate", component.Transform{}, true, owner)
	_, _ = s.Spawn("Crate", component.Transform{}, true, other)
	c, _ := s.Spawn("Wall", component.Transform{}, true, owner)

	assert.Equal(t, []*build.Structure{a, c}, s.StructuresOwnedBy(owner))
	assert.Len(t, s.Structures(), 3)
	assert.Equal(t, 3, s.PlacedCount())
}
