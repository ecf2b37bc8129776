package component

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotator is an orientation in degrees. The world is Z-up: yaw turns about
// +Z starting from +X, pitch tilts the forward axis towards +Z.
type Rotator struct {
	Pitch float64
	Yaw   float64
	Roll  float64
}

// ZeroRotator is the identity orientation.
var ZeroRotator = Rotator{}

// Forward returns the unit vector the rotator faces.
func (r Rotator) Forward() mgl64.Vec3 {
	pitch := mgl64.DegToRad(r.Pitch)
	yaw := mgl64.DegToRad(r.Yaw)
	return mgl64.Vec3{
		math.Cos(pitch) * math.Cos(yaw),
		math.Cos(pitch) * math.Sin(yaw),
		math.Sin(pitch),
	}
}

// Right returns the planar unit vector to the right of the yaw: +Y when
// facing +X (left-handed, Z-up).
func (r Rotator) Right() mgl64.Vec3 {
	yaw := mgl64.DegToRad(r.Yaw + 90)
	return mgl64.Vec3{math.Cos(yaw), math.Sin(yaw), 0}
}

// YawOnly drops pitch and roll.
func (r Rotator) YawOnly() Rotator {
	return Rotator{Yaw: r.Yaw}
}

func (r Rotator) String() string {
	return fmt.Sprintf("P=%.2f Y=%.2f R=%.2f", r.Pitch, r.Yaw, r.Roll)
}

// Transform is a world-space pose.
type Transform struct {
	Position mgl64.Vec3
	Rotation Rotator
}

func NewTransform(pos mgl64.Vec3, rot Rotator) Transform {
	return Transform{Position: pos, Rotation: rot}
}

func (t Transform) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f) [%s]", t.Position.X(), t.Position.Y(), t.Position.Z(), t.Rotation)
}
