package build

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/buildsys/server/internal/component"
	"github.com/buildsys/server/internal/core/ecs"
)

// Visual is an opaque handle to a structure's renderable mesh.
type Visual string

// Scene is the world a structure lives in. Implemented by the spawner:
// Placed lets it start colliding with the structure, Remove takes the
// structure out.
type Scene interface {
	Placed(s *Structure)
	Remove(s *Structure)
}

// Structure is a spawned placeable: either an ephemeral build preview or a
// committed, collidable structure. Its pose may change only while it is
// unplaced. Every method except the read accessors panics after Destroy.
type Structure struct {
	id        ecs.EntityID
	kind      string
	visual    Visual
	pose      component.Transform
	placed    bool
	solid     bool
	destroyed bool
	scene     Scene
}

// NewStructure builds a structure for a spawner. A structure created
// already placed starts out solid, matching what Place would do.
func NewStructure(id ecs.EntityID, kind string, visual Visual, pose component.Transform, placed bool, scene Scene) *Structure {
	return &Structure{
		id:      id,
		kind:    kind,
		visual:  visual,
		pose:    pose,
		placed:  placed,
		solid:   placed,
		scene:   scene,
	}
}

func (s *Structure) ID() ecs.EntityID { return s.id }
func (s *Structure) Kind() string     { return s.kind }
func (s *Structure) Visual() Visual   { return s.visual }

func (s *Structure) Pose() component.Transform { return s.pose }
func (s *Structure) Placed() bool              { return s.placed }

// Solid reports whether the structure blocks traces and collision.
func (s *Structure) Solid() bool     { return s.solid }
func (s *Structure) Destroyed() bool { return s.destroyed }

// Place commits the structure and turns on collision. Idempotent.
func (s *Structure) Place() {
	s.mustBeLive("Place")
	if s.placed {
		return
	}
	s.placed = true
	s.solid = true
	if s.scene != nil {
		s.scene.Placed(s)
	}
}

// SetPosition moves an unplaced structure and reports whether it moved.
func (s *Structure) SetPosition(pos mgl64.Vec3) bool {
	s.mustBeLive("SetPosition")
	if s.placed {
		return false
	}
	s.pose.Position = pos
	return true
}

// AddYaw turns an unplaced structure about +Z and reports whether it turned.
func (s *Structure) AddYaw(deg float64) bool {
	s.mustBeLive("AddYaw")
	if s.placed {
		return false
	}
	s.pose.Rotation.Yaw += deg
	return true
}

// Destroy removes the structure from the world. No further mutation is valid.
func (s *Structure) Destroy() {
	s.mustBeLive("Destroy")
	s.destroyed = true
	if s.scene != nil {
		s.scene.Remove(s)
	}
}

func (s *Structure) String() string {
	state := "preview"
	if s.placed {
		state = "placed"
	}
	return fmt.Sprintf("%s#%d %s %s", s.kind, s.id.Index(), state, s.pose)
}

func (s *Structure) mustBeLive(op string) {
	if s.destroyed {
		panic(fmt.Sprintf("build: %s on destroyed structure %s#%d", op, s.kind, s.id.Index()))
	}
}
