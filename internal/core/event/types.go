package event

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/buildsys/server/internal/core/ecs"
)

// BuildModeStarted fires when a preview has been spawned for Owner.
type BuildModeStarted struct {
	Owner   ecs.EntityID
	Preview ecs.EntityID
	Kind    string
}

// BuildModeStopped fires when Owner leaves build mode, by cancel or by placement.
type BuildModeStopped struct {
	Owner ecs.EntityID
}

type StructurePlaced struct {
	Owner    ecs.EntityID
	Entity   ecs.EntityID
	Kind     string
	Position mgl64.Vec3
	Yaw      float64
}

type StructureDestroyed struct {
	Entity ecs.EntityID
	Kind   string
	Placed bool
}
