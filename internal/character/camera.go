package character

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/buildsys/server/internal/component"
)

// Camera is a first-person camera mounted at a fixed height above its
// holder's feet. Yaw and pitch are in degrees; pitch is clamped so the view
// never flips over the poles.
type Camera struct {
	position    mgl64.Vec3
	yaw         float64
	pitch       float64
	maxPitch    float64
	sensitivity float64
}

func NewCamera(sensitivity, maxPitch float64) *Camera {
	return &Camera{sensitivity: sensitivity, maxPitch: maxPitch}
}

func (c *Camera) Position() mgl64.Vec3 { return c.position }

// Forward returns the unit view direction.
func (c *Camera) Forward() mgl64.Vec3 {
	return c.Rotation().Forward()
}

func (c *Camera) Rotation() component.Rotator {
	return component.Rotator{Pitch: c.pitch, Yaw: c.yaw}
}

// AddLook turns the camera by dx (yaw) and dy (pitch) input units.
func (c *Camera) AddLook(dx, dy float64) {
	c.yaw += dx * c.sensitivity
	c.pitch = mgl64.Clamp(c.pitch+dy*c.sensitivity, -c.maxPitch, c.maxPitch)
}

func (c *Camera) MoveTo(pos mgl64.Vec3) {
	c.position = pos
}
