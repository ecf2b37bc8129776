package component

import "github.com/buildsys/server/internal/core/ecs"

// Owner records which entity spawned a structure.
type Owner struct {
	Entity ecs.EntityID
}
