package build

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/buildsys/server/internal/component"
	"github.com/buildsys/server/internal/core/ecs"
)

// Spawner creates structures in the world on behalf of an owner.
type Spawner interface {
	Spawn(kind string, pose component.Transform, placed bool, owner ecs.EntityID) (*Structure, error)
}

// Tracer casts a ray from origin along forward. A miss is not an error.
type Tracer interface {
	TraceForward(origin, forward mgl64.Vec3) (mgl64.Vec3, bool)
}

// Viewpoint is the active camera.
type Viewpoint interface {
	Position() mgl64.Vec3
	Forward() mgl64.Vec3
}

// Owner is the entity the controller builds for.
type Owner interface {
	Entity() ecs.EntityID
	Location() mgl64.Vec3
}

// Snapper adjusts a traced preview position, e.g. to a placement grid.
type Snapper interface {
	SnapPreview(kind string, pos mgl64.Vec3) mgl64.Vec3
}

// Diagnostics receives developer/player feedback from the controller.
type Diagnostics interface {
	Notice(msg string)
	Problem(err error)
}
