package character

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/buildsys/server/internal/core/ecs"
)

// GroundProbe reports the walkable surface under a planar position.
type GroundProbe interface {
	GroundHeight(x, y float64) (float64, bool)
}

type Config struct {
	Spawn           mgl64.Vec3
	WalkSpeed       float64 // units per second at full input
	EyeHeight       float64
	LookSensitivity float64
	MaxPitch        float64
}

// Character is the player-controlled entity. Move and Look input is
// accumulated between ticks and applied by Step; the camera follows the
// character's eye point.
type Character struct {
	id        ecs.EntityID
	location  mgl64.Vec3
	camera    *Camera
	ground    GroundProbe
	walkSpeed float64
	eyeHeight float64
	pending   mgl64.Vec2 // x = right, y = forward
}

func New(id ecs.EntityID, cfg Config, ground GroundProbe) *Character {
	c := &Character{
		id:        id,
		location:  cfg.Spawn,
		camera:    NewCamera(cfg.LookSensitivity, cfg.MaxPitch),
		ground:    ground,
		walkSpeed: cfg.WalkSpeed,
		eyeHeight: cfg.EyeHeight,
	}
	c.settle()
	return c
}

func (c *Character) Entity() ecs.EntityID  { return c.id }
func (c *Character) Location() mgl64.Vec3 { return c.location }
func (c *Character) Camera() *Camera       { return c.camera }

// Move queues planar movement relative to the camera yaw: v.Y() forward,
// v.X() to the right. Non-finite input is dropped.
func (c *Character) Move(v mgl64.Vec2) {
	if !finite(v) {
		return
	}
	c.pending = c.pending.Add(v)
}

// Look turns the camera: v.X() yaw, v.Y() pitch. Non-finite input is dropped.
func (c *Character) Look(v mgl64.Vec2) {
	if !finite(v) {
		return
	}
	c.camera.AddLook(v.X(), v.Y())
}

func finite(v mgl64.Vec2) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Step applies the movement queued since the last tick. Input longer than
// one unit is clamped so diagonal or repeated events cannot exceed walk speed.
func (c *Character) Step(dt time.Duration) {
	input := c.pending
	c.pending = mgl64.Vec2{}
	if l := input.Len(); l > 1 {
		input = input.Mul(1 / l)
	}
	if input.Len() == 0 {
		return
	}
	yaw := c.camera.Rotation().YawOnly()
	delta := yaw.Forward().Mul(input.Y()).Add(yaw.Right().Mul(input.X()))
	c.location = c.location.Add(delta.Mul(c.walkSpeed * dt.Seconds()))
	c.settle()
}

// settle puts the feet on the ground below, when there is any, and moves
// the camera to eye height.
func (c *Character) settle() {
	if c.ground != nil {
		if z, ok := c.ground.GroundHeight(c.location.X(), c.location.Y()); ok {
			c.location[2] = z
		}
	}
	c.camera.MoveTo(c.location.Add(mgl64.Vec3{0, 0, c.eyeHeight}))
}
