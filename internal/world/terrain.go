package world

import "math"

// Terrain is a dense voxel grid. Voxel (x, y, z) fills the unit cube
// [x, x+1) × [y, y+1) × [z, z+1); Z is up. Out-of-bounds voxels are empty.
type Terrain struct {
	sizeX, sizeY, sizeZ int
	solid               []bool
}

func NewTerrain(sizeX, sizeY, sizeZ int) *Terrain {
	return &Terrain{
		sizeX: sizeX,
		sizeY: sizeY,
		sizeZ: sizeZ,
		solid: make([]bool, sizeX*sizeY*sizeZ),
	}
}

func (t *Terrain) Size() (int, int, int) { return t.sizeX, t.sizeY, t.sizeZ }

func (t *Terrain) index(x, y, z int32) (int, bool) {
	if x < 0 || y < 0 || z < 0 || int(x) >= t.sizeX || int(y) >= t.sizeY || int(z) >= t.sizeZ {
		return 0, false
	}
	return (int(z)*t.sizeY+int(y))*t.sizeX + int(x), true
}

func (t *Terrain) IsSolid(x, y, z int32) bool {
	i, ok := t.index(x, y, z)
	return ok && t.solid[i]
}

// SetSolid sets one voxel. Out-of-bounds writes are ignored.
func (t *Terrain) SetSolid(x, y, z int32, solid bool) {
	if i, ok := t.index(x, y, z); ok {
		t.solid[i] = solid
	}
}

// FillGround makes every voxel below height solid.
func (t *Terrain) FillGround(height int) {
	for z := 0; z < height && z < t.sizeZ; z++ {
		for y := 0; y < t.sizeY; y++ {
			for x := 0; x < t.sizeX; x++ {
				t.SetSolid(int32(x), int32(y), int32(z), true)
			}
		}
	}
}

// GroundHeight returns the top surface of the highest solid voxel in the
// column containing (x, y).
func (t *Terrain) GroundHeight(x, y float64) (float64, bool) {
	ix := int32(math.Floor(x))
	iy := int32(math.Floor(y))
	for z := int32(t.sizeZ) - 1; z >= 0; z-- {
		if t.IsSolid(ix, iy, z) {
			return float64(z + 1), true
		}
	}
	return 0, false
}
