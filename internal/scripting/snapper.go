package scripting

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/buildsys/server/internal/data"
)

// CatalogSnapper feeds each kind's grid step from the catalog into the
// engine's snap_preview hook.
type CatalogSnapper struct {
	Engine  *Engine
	Catalog *data.StructureCatalog
}

func (s CatalogSnapper) SnapPreview(kind string, pos mgl64.Vec3) mgl64.Vec3 {
	grid := 0.0
	if k, ok := s.Catalog.Get(kind); ok {
		grid = k.Grid
	}
	return s.Engine.SnapPreview(kind, grid, pos)
}
