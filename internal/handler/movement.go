package handler

import (
	"github.com/buildsys/server/internal/input"
)

// HandleMove queues planar movement: Axis.Y forward, Axis.X right.
// Applied by the locomotion system on the next update.
func HandleMove(evt input.Event, deps *Deps) {
	deps.Character.Move(evt.Axis)
}

// HandleLook turns the camera: Axis.X yaw, Axis.Y pitch.
func HandleLook(evt input.Event, deps *Deps) {
	deps.Character.Look(evt.Axis)
}
