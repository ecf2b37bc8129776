package world

import (
	"math"

	"github.com/buildsys/server/internal/core/ecs"
)

const cellSize = 8.0

type cellKey struct {
	cx, cy int32
}

func toCell(v float64) int32 {
	return int32(math.Floor(v / cellSize))
}

// SolidGrid is a planar cell index of solid structures, used as the
// broad phase for preview traces. Only committed structures are indexed;
// they never move, so there is no Move.
// Accessed only from the tick goroutine.
type SolidGrid struct {
	cells map[cellKey]map[ecs.EntityID]struct{}
}

func NewSolidGrid() *SolidGrid {
	return &SolidGrid{
		cells: make(map[cellKey]map[ecs.EntityID]struct{}),
	}
}

// Add indexes id in every cell its box overlaps.
func (g *SolidGrid) Add(id ecs.EntityID, box AABB) {
	g.eachCell(box.Min.X(), box.Min.Y(), box.Max.X(), box.Max.Y(), func(k cellKey) {
		cell := g.cells[k]
		if cell == nil {
			cell = make(map[ecs.EntityID]struct{})
			g.cells[k] = cell
		}
		cell[id] = struct{}{}
	})
}

// Remove drops id from the cells its box overlaps.
func (g *SolidGrid) Remove(id ecs.EntityID, box AABB) {
	g.eachCell(box.Min.X(), box.Min.Y(), box.Max.X(), box.Max.Y(), func(k cellKey) {
		if cell := g.cells[k]; cell != nil {
			delete(cell, id)
			if len(cell) == 0 {
				delete(g.cells, k)
			}
		}
	})
}

// Query returns the IDs indexed in cells overlapping the planar rectangle.
// Callers do the exact intersection test.
func (g *SolidGrid) Query(minX, minY, maxX, maxY float64) []ecs.EntityID {
	seen := make(map[ecs.EntityID]struct{})
	var result []ecs.EntityID
	g.eachCell(minX, minY, maxX, maxY, func(k cellKey) {
		for id := range g.cells[k] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			result = append(result, id)
		}
	})
	return result
}

func (g *SolidGrid) eachCell(minX, minY, maxX, maxY float64, fn func(cellKey)) {
	for cx := toCell(minX); cx <= toCell(maxX); cx++ {
		for cy := toCell(minY); cy <= toCell(maxY); cy++ {
			fn(cellKey{cx: cx, cy: cy})
		}
	}
}
