package build

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/buildsys/server/internal/component"
	"github.com/buildsys/server/internal/core/event"
)

// DefaultRotationScale is the yaw, in degrees, applied per unit of rotate input.
const DefaultRotationScale = 10.0

// State is the placement state machine's state.
type State int

const (
	Idle State = iota
	Building
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Building:
		return "Building"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Collaborators are the controller's injected dependencies. Snapper and Bus
// are optional.
type Collaborators struct {
	Owner     Owner
	Spawner   Spawner
	Tracer    Tracer
	Viewpoint Viewpoint
	Diag      Diagnostics
	Snapper   Snapper
	Bus       *event.Bus
}

// Controller drives build mode for one owner: it spawns and owns the live
// preview, moves it with the viewpoint trace every tick, rotates it on
// demand and commits it as a new placed structure.
//
// Not safe for concurrent use; every call comes from the tick goroutine.
// The preview is non-nil exactly while the state is Building.
type Controller struct {
	c             Collaborators
	rotationScale float64
	selectedKind  string
	state         State
	preview       *Structure
}

func NewController(c Collaborators, rotationScale float64) *Controller {
	if rotationScale == 0 {
		rotationScale = DefaultRotationScale
	}
	return &Controller{c: c, rotationScale: rotationScale}
}

func (c *Controller) SetSelectedKind(kind string) { c.selectedKind = kind }
func (c *Controller) SelectedKind() string        { return c.selectedKind }
func (c *Controller) State() State                { return c.state }
func (c *Controller) Building() bool              { return c.state == Building }
func (c *Controller) RotationScale() float64      { return c.rotationScale }

// Preview returns the live preview, nil when Idle.
func (c *Controller) Preview() *Structure { return c.preview }

// StartBuild spawns a preview of the selected kind at the owner's location
// and enters Building. It returns ErrNoSelection or ErrAlreadyBuilding
// without side effects when its preconditions do not hold.
func (c *Controller) StartBuild() error {
	if c.selectedKind == "" {
		return c.refuse(ErrNoSelection)
	}
	if c.state == Building {
		return c.refuse(ErrAlreadyBuilding)
	}

	pose := component.NewTransform(c.c.Owner.Location(), component.ZeroRotator)
	preview, err := c.c.Spawner.Spawn(c.selectedKind, pose, false, c.c.Owner.Entity())
	if err != nil {
		return c.refuse(fmt.Errorf("spawn preview %q: %w", c.selectedKind, err))
	}

	c.preview = preview
	c.state = Building
	c.c.Diag.Notice(fmt.Sprintf("Start Building Mode Activated (%s at %s)", c.selectedKind, pose))
	event.Emit(c.c.Bus, event.BuildModeStarted{
		Owner:   c.c.Owner.Entity(),
		Preview: preview.ID(),
		Kind:    c.selectedKind,
	})
	return nil
}

// StopBuild discards the preview and returns to Idle. No-op when Idle.
func (c *Controller) StopBuild() {
	if c.state != Building {
		return
	}
	c.preview.Destroy()
	c.preview = nil
	c.state = Idle
	event.Emit(c.c.Bus, event.BuildModeStopped{Owner: c.c.Owner.Entity()})
}

// UpdatePreview moves the preview to where the viewpoint's forward ray hits
// the world. Orientation is left alone; a miss leaves the pose unchanged.
// No-op when Idle.
func (c *Controller) UpdatePreview() {
	if c.state != Building {
		return
	}
	hit, ok := c.c.Tracer.TraceForward(c.c.Viewpoint.Position(), c.c.Viewpoint.Forward())
	if !ok {
		return
	}
	if c.c.Snapper != nil {
		hit = c.c.Snapper.SnapPreview(c.preview.Kind(), hit)
	}
	c.preview.SetPosition(hit)
}

// RotatePreview adds delta*rotationScale degrees of yaw to the preview.
// No-op when Idle.
func (c *Controller) RotatePreview(delta float64) {
	if c.state != Building {
		return
	}
	c.preview.AddYaw(delta * c.rotationScale)
}

// PlaceStructure ends build mode and spawns a committed structure where the
// preview stood. The preview itself is always discarded, never converted.
// Returns ErrNothingToPlace without side effects when Idle.
func (c *Controller) PlaceStructure() (*Structure, error) {
	if c.state != Building || c.preview == nil {
		return nil, c.refuse(ErrNothingToPlace)
	}

	kind := c.preview.Kind()
	pose := c.preview.Pose()
	c.StopBuild()

	placed, err := c.c.Spawner.Spawn(kind, pose, true, c.c.Owner.Entity())
	if err != nil {
		return nil, c.refuse(fmt.Errorf("spawn %q at %s: %w", kind, pose, err))
	}

	c.c.Diag.Notice(fmt.Sprintf("Structure Placed (%s at %s)", kind, pose))
	event.Emit(c.c.Bus, event.StructurePlaced{
		Owner:    c.c.Owner.Entity(),
		Entity:   placed.ID(),
		Kind:     kind,
		Position: pose.Position,
		Yaw:      pose.Rotation.Yaw,
	})
	return placed, nil
}

// PreviewPosition returns the preview's position, false when Idle.
func (c *Controller) PreviewPosition() (mgl64.Vec3, bool) {
	if c.preview == nil {
		return mgl64.Vec3{}, false
	}
	return c.preview.Pose().Position, true
}

func (c *Controller) refuse(err error) error {
	c.c.Diag.Problem(err)
	return err
}
