package build

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/buildsys/server/internal/component"
	"github.com/buildsys/server/internal/core/ecs"
)

type countingScene struct{ placed, removed int }

func (r *countingScene) Placed(*Structure) { r.placed++ }
func (r *countingScene) Remove(*Structure) { r.removed++ }

func newPreview(r Scene) *Structure {
	return NewStructure(ecs.NewEntityID(1, 0), "Wall", "mesh/wall",
		component.NewTransform(mgl64.Vec3{1, 2, 3}, component.ZeroRotator), false, r)
}

func TestPlaceIsIdempotent(t *testing.T) {
	s := newPreview(nil)
	assert.False(t, s.Placed())
	assert.False(t, s.Solid())

	s.Place()
	assert.True(t, s.Placed())
	assert.True(t, s.Solid())

	s.Place()
	assert.True(t, s.Placed())
	assert.True(t, s.Solid())
}

func TestPoseFrozenOncePlaced(t *testing.T) {
	s := newPreview(nil)
	assert.True(t, s.SetPosition(mgl64.Vec3{5, 5, 5}))
	assert.True(t, s.AddYaw(15))

	s.Place()

	assert.False(t, s.SetPosition(mgl64.Vec3{9, 9, 9}))
	assert.False(t, s.AddYaw(15))
	assert.Equal(t, mgl64.Vec3{5, 5, 5}, s.Pose().Position)
	assert.Equal(t, 15.0, s.Pose().Rotation.Yaw)
}

func TestCreatedPlacedIsSolid(t *testing.T) {
	s := NewStructure(ecs.NewEntityID(2, 0), "Wall", "mesh/wall", component.Transform{}, true, nil)
	assert.True(t, s.Solid())
	assert.Equal(t, Visual("mesh/wall"), s.Visual())
}

func TestPlaceNotifiesSceneOnce(t *testing.T) {
	r := &countingScene{}
	s := newPreview(r)

	s.Place()
	s.Place()

	assert.Equal(t, 1, r.placed)
	assert.Equal(t, 0, r.removed)
}

func TestDestroyCallsSceneOnce(t *testing.T) {
	r := &countingScene{}
	s := newPreview(r)

	s.Destroy()

	assert.Equal(t, 1, r.removed)
	assert.True(t, s.Destroyed())
	assert.Panics(t, func() { s.Destroy() })
	assert.Panics(t, func() { s.Place() })
	assert.Panics(t, func() { s.SetPosition(mgl64.Vec3{}) })
	assert.Equal(t, 1, r.removed)
	assert.Equal(t, 0, r.placed)
}

func TestStructureString(t *testing.T) {
	s := newPreview(nil)
	assert.Contains(t, s.String(), "Wall#1 preview")
	s.Place()
	assert.Contains(t, s.String(), "placed")
}
