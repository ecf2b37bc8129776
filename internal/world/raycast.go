package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Int3 is a voxel coordinate.
type Int3 struct {
	X, Y, Z int32
}

// Hit is the result of a voxel raycast.
type Hit struct {
	Hit      bool
	Distance float64    // along the ray from start
	Point    mgl64.Vec3 // where the ray entered the voxel
	Voxel    Int3       // the voxel that stopped the ray
	Previous Int3       // the last empty voxel before it
}

// Raycast walks the voxels between start and end (3D DDA, after
// fenomas/fast-voxel-raycast) and stops at the first voxel for which
// isSolid is true. A ray starting inside a solid voxel hits at distance 0.
func Raycast(start, end mgl64.Vec3, isSolid func(x, y, z int32) bool) Hit {
	ray := end.Sub(start)
	maxLen := ray.Len()
	if maxLen == 0 {
		return Hit{}
	}
	dir := ray.Mul(1 / maxLen)

	cell := [3]int32{
		int32(math.Floor(start.X())),
		int32(math.Floor(start.Y())),
		int32(math.Floor(start.Z())),
	}
	var step [3]int32
	var tDelta, tMax [3]float64
	for axis := 0; axis < 3; axis++ {
		d := dir[axis]
		switch {
		case d > 0:
			step[axis] = 1
			tDelta[axis] = 1 / d
			tMax[axis] = (float64(cell[axis]+1) - start[axis]) * tDelta[axis]
		case d < 0:
			step[axis] = -1
			tDelta[axis] = -1 / d
			tMax[axis] = (start[axis] - float64(cell[axis])) * tDelta[axis]
		default:
			tDelta[axis] = math.Inf(1)
			tMax[axis] = math.Inf(1)
		}
	}

	t := 0.0
	prev := cell
	for t <= maxLen {
		if isSolid(cell[0], cell[1], cell[2]) {
			return Hit{
				Hit:      true,
				Distance: t,
				Point:    start.Add(dir.Mul(t)),
				Voxel:    Int3{cell[0], cell[1], cell[2]},
				Previous: Int3{prev[0], prev[1], prev[2]},
			}
		}
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		prev = cell
		cell[axis] += step[axis]
		t = tMax[axis]
		tMax[axis] += tDelta[axis]
	}
	return Hit{}
}

// AABB is an axis-aligned box.
type AABB struct {
	Min, Max mgl64.Vec3
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// IntersectRay returns the distance along dir (unit length) at which a ray
// from origin enters the box, if it does so within maxDist.
func (b AABB) IntersectRay(origin, dir mgl64.Vec3, maxDist float64) (float64, bool) {
	tMin, tMax := 0.0, maxDist
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (b.Min[i] - origin[i]) * inv
		t2 := (b.Max[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// FootprintAABB returns the box of a structure with the given extents whose
// pivot sits at the centre of its base, turned by yaw degrees about +Z.
func FootprintAABB(pivot mgl64.Vec3, extents mgl64.Vec3, yaw float64) AABB {
	rad := mgl64.DegToRad(yaw)
	c, s := math.Abs(math.Cos(rad)), math.Abs(math.Sin(rad))
	hx := (c*extents.X() + s*extents.Y()) / 2
	hy := (s*extents.X() + c*extents.Y()) / 2
	return AABB{
		Min: mgl64.Vec3{pivot.X() - hx, pivot.Y() - hy, pivot.Z()},
		Max: mgl64.Vec3{pivot.X() + hx, pivot.Y() + hy, pivot.Z() + extents.Z()},
	}
}
