// Package drag owns the press/drag/release lifecycle for stage dancers.
// One controller serves the whole editor; at most one drag session exists
// at any instant, enforced by the state machine itself rather than locks.
// All transitions run to completion on the event loop goroutine.
package drag

import (
	"errors"

	"github.com/larkwold/choreo/stage"
	"github.com/larkwold/choreo/viewport"
)

// State identifies the controller's lifecycle phase
type State uint8

const (
	StateIdle     State = iota // No active session
	StateDragging              // Exactly one dancer follows the pointer
)

// String returns a human-readable state name
func (s State) String() string {
	switch s {
	case StateDragging:
		return "Dragging"
	default:
		return "Idle"
	}
}

// Transition errors. All are recoverable: the offending event is skipped
// and the machine stays in a valid state
var (
	ErrDancerNotFound = errors.New("dancer not found")
	ErrActiveSession  = errors.New("drag session already active")
	ErrNoSession      = errors.New("no drag session")
)

// Session records which dancer is held and where it was grabbed.
// GrabX/GrabY is the vector from the dancer's center to the stage point
// under the pointer at press time, captured once and constant for the
// session; it keeps the clicked point glued to the pointer so the dancer
// never jumps to center itself under the cursor on the first move
type Session struct {
	DancerID     string
	GrabX, GrabY float64
}

// Controller is the drag state machine plus the dancer position writer
type Controller struct {
	size    stage.Size
	roster  *stage.Roster
	state   State
	session Session
}

// NewController creates an idle controller over the given roster
func NewController(size stage.Size, roster *stage.Roster) *Controller {
	return &Controller{
		size:   size,
		roster: roster,
	}
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	return c.state
}

// Dragging returns the held dancer's id, or "" when idle
func (c *Controller) Dragging() string {
	if c.state != StateDragging {
		return ""
	}
	return c.session.DancerID
}

// Press starts a drag session for the dancer with the given id.
// device is the pointer position in cell coordinates; tf is the live
// viewport transform as of this event.
// Rejected without state change when a session is already active, the id
// is unknown, or the transform is degenerate
func (c *Controller) Press(id string, device stage.Point, tf viewport.Transform) error {
	if c.state != StateIdle {
		return ErrActiveSession
	}
	d, ok := c.roster.Get(id)
	if !ok {
		return ErrDancerNotFound
	}
	p, err := tf.ToStage(device)
	if err != nil {
		return err
	}
	c.session = Session{
		DancerID: id,
		GrabX:    p.X - d.X,
		GrabY:    p.Y - d.Y,
	}
	c.state = StateDragging
	return nil
}

// Move repositions the held dancer to follow the pointer.
// No-op when idle (stale or duplicate events are safe). The target is the
// stage point minus the grab offset, clamped per axis so the dancer's full
// circle stays on stage. clamped reports whether either axis hit the
// boundary, so callers can surface the collision (sound cue) without
// re-deriving the pre-clamp target. Runs on every pointer-move event;
// allocates nothing
func (c *Controller) Move(device stage.Point, tf viewport.Transform) (clamped bool, err error) {
	if c.state != StateDragging {
		return false, ErrNoSession
	}
	d, ok := c.roster.Get(c.session.DancerID)
	if !ok {
		// Dancer removed mid-drag; end the session
		c.Release()
		return false, ErrDancerNotFound
	}
	p, err := tf.ToStage(device)
	if err != nil {
		return false, err
	}
	tx := p.X - c.session.GrabX
	ty := p.Y - c.session.GrabY
	d.X = stage.Clamp(tx, d.Radius, c.size.Width-d.Radius)
	d.Y = stage.Clamp(ty, d.Radius, c.size.Height-d.Radius)
	return d.X != tx || d.Y != ty, nil
}

// Release ends any active session. Valid from any state and idempotent;
// positions are left where the last Move put them
func (c *Controller) Release() {
	c.state = StateIdle
	c.session = Session{}
}
