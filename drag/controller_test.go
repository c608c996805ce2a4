package drag

import (
	"errors"
	"testing"

	"github.com/larkwold/choreo/stage"
	"github.com/larkwold/choreo/viewport"
)

// identity transform keeps device and stage coordinates equal so test
// inputs read directly in stage units
var ident = viewport.Transform{ScaleX: 1, ScaleY: 1}

func testRoster(t *testing.T) *stage.Roster {
	t.Helper()
	r := stage.NewRoster()
	if err := r.Add(&stage.Dancer{ID: "d1", X: 250, Y: 220, Radius: 22}); err != nil {
		t.Fatal(err)
	}
	if err := r.Add(&stage.Dancer{ID: "d2", X: 700, Y: 400, Radius: 22}); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestPressMoveReleaseScenario(t *testing.T) {
	// The full walk-through: grab off-center, drag, slam into the corner,
	// drop
	r := testRoster(t)
	c := NewController(stage.DefaultSize(), r)

	if err := c.Press("d1", stage.Point{X: 260, Y: 225}, ident); err != nil {
		t.Fatalf("Press failed: %v", err)
	}
	if c.State() != StateDragging || c.Dragging() != "d1" {
		t.Fatalf("state after press = %v/%q", c.State(), c.Dragging())
	}

	if _, err := c.Move(stage.Point{X: 300, Y: 300}, ident); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	d, _ := r.Get("d1")
	if d.X != 290 || d.Y != 295 {
		t.Errorf("after move, dancer at (%v, %v), want (290, 295)", d.X, d.Y)
	}

	if _, err := c.Move(stage.Point{X: -50, Y: -50}, ident); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if d.X != 22 || d.Y != 22 {
		t.Errorf("after corner move, dancer at (%v, %v), want (22, 22)", d.X, d.Y)
	}

	c.Release()
	if c.State() != StateIdle {
		t.Errorf("state after release = %v, want Idle", c.State())
	}
	if d.X != 22 || d.Y != 22 {
		t.Errorf("release moved the dancer to (%v, %v)", d.X, d.Y)
	}
}

func TestNoJumpOnFirstMove(t *testing.T) {
	r := testRoster(t)
	c := NewController(stage.DefaultSize(), r)

	press := stage.Point{X: 260, Y: 225} // off-center within d1's circle
	if err := c.Press("d1", press, ident); err != nil {
		t.Fatal(err)
	}
	// First move at the exact press point must leave the dancer in place
	if _, err := c.Move(press, ident); err != nil {
		t.Fatal(err)
	}
	d, _ := r.Get("d1")
	if d.X != 250 || d.Y != 220 {
		t.Errorf("dancer jumped to (%v, %v) on first move", d.X, d.Y)
	}
}

func TestClampFarOutside(t *testing.T) {
	r := testRoster(t)
	s := stage.DefaultSize()
	c := NewController(s, r)

	if err := c.Press("d1", stage.Point{X: 250, Y: 220}, ident); err != nil {
		t.Fatal(err)
	}

	if _, err := c.Move(stage.Point{X: -500, Y: -500}, ident); err != nil {
		t.Fatal(err)
	}
	d, _ := r.Get("d1")
	if d.X != 22 || d.Y != 22 {
		t.Errorf("clamped to (%v, %v), want (22, 22)", d.X, d.Y)
	}

	if _, err := c.Move(stage.Point{X: s.Width + 500, Y: s.Height + 500}, ident); err != nil {
		t.Fatal(err)
	}
	if d.X != s.Width-22 || d.Y != s.Height-22 {
		t.Errorf("clamped to (%v, %v), want (%v, %v)", d.X, d.Y, s.Width-22, s.Height-22)
	}
}

func TestMoveReportsClamp(t *testing.T) {
	r := testRoster(t)
	s := stage.DefaultSize()
	c := NewController(s, r)

	if err := c.Press("d1", stage.Point{X: 250, Y: 220}, ident); err != nil {
		t.Fatal(err)
	}

	// In-bounds move: no boundary contact
	clamped, err := c.Move(stage.Point{X: 300, Y: 300}, ident)
	if err != nil {
		t.Fatal(err)
	}
	if clamped {
		t.Error("in-bounds move reported clamped")
	}

	// Far outside the corner: both axes pinned
	clamped, err = c.Move(stage.Point{X: -500, Y: -500}, ident)
	if err != nil {
		t.Fatal(err)
	}
	if !clamped {
		t.Error("corner move did not report clamped")
	}
	d, _ := r.Get("d1")
	if d.X != 22 || d.Y != 22 {
		t.Errorf("dancer at (%v, %v), want (22, 22)", d.X, d.Y)
	}

	// Single-axis contact still reports
	clamped, err = c.Move(stage.Point{X: 500, Y: -500}, ident)
	if err != nil {
		t.Fatal(err)
	}
	if !clamped {
		t.Error("edge slide did not report clamped")
	}

	// Failed move never reports clamped
	clamped, err = c.Move(stage.Point{X: -500, Y: -500}, viewport.Transform{})
	if err == nil || clamped {
		t.Errorf("degenerate transform move = (%v, %v)", clamped, err)
	}
}

func TestContainmentUnderRandomishMoves(t *testing.T) {
	r := testRoster(t)
	s := stage.DefaultSize()
	c := NewController(s, r)

	if err := c.Press("d2", stage.Point{X: 700, Y: 400}, ident); err != nil {
		t.Fatal(err)
	}
	points := []stage.Point{
		{X: 1e6, Y: -1e6}, {X: -3, Y: 599}, {X: 500, Y: 300},
		{X: 999.9, Y: 0.1}, {X: -0.0001, Y: 1e9}, {X: 22, Y: 578},
	}
	d, _ := r.Get("d2")
	for _, p := range points {
		if _, err := c.Move(p, ident); err != nil {
			t.Fatal(err)
		}
		if !s.Contains(d.Center(), d.Radius) {
			t.Fatalf("dancer escaped bounds at (%v, %v) after move to %+v", d.X, d.Y, p)
		}
	}
}

func TestExclusiveSession(t *testing.T) {
	r := testRoster(t)
	c := NewController(stage.DefaultSize(), r)

	if err := c.Press("d1", stage.Point{X: 250, Y: 220}, ident); err != nil {
		t.Fatal(err)
	}

	// Press on another dancer while dragging is rejected, session intact
	err := c.Press("d2", stage.Point{X: 700, Y: 400}, ident)
	if !errors.Is(err, ErrActiveSession) {
		t.Errorf("second press returned %v, want ErrActiveSession", err)
	}
	if c.Dragging() != "d1" {
		t.Errorf("session switched to %q", c.Dragging())
	}

	// Re-entrant press on the held dancer is rejected too
	if err := c.Press("d1", stage.Point{X: 255, Y: 221}, ident); !errors.Is(err, ErrActiveSession) {
		t.Errorf("re-entrant press returned %v, want ErrActiveSession", err)
	}
}

func TestPressUnknownDancer(t *testing.T) {
	r := testRoster(t)
	c := NewController(stage.DefaultSize(), r)

	err := c.Press("ghost", stage.Point{X: 10, Y: 10}, ident)
	if !errors.Is(err, ErrDancerNotFound) {
		t.Errorf("Press returned %v, want ErrDancerNotFound", err)
	}
	if c.State() != StateIdle {
		t.Errorf("failed press left state %v", c.State())
	}
}

func TestMoveWhileIdle(t *testing.T) {
	r := testRoster(t)
	c := NewController(stage.DefaultSize(), r)

	_, err := c.Move(stage.Point{X: 100, Y: 100}, ident)
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("Move returned %v, want ErrNoSession", err)
	}
	d, _ := r.Get("d1")
	if d.X != 250 || d.Y != 220 {
		t.Errorf("idle Move displaced dancer to (%v, %v)", d.X, d.Y)
	}
}

func TestReleaseIdempotent(t *testing.T) {
	r := testRoster(t)
	c := NewController(stage.DefaultSize(), r)

	c.Release()
	c.Release()
	if c.State() != StateIdle {
		t.Errorf("state = %v after idle releases", c.State())
	}

	if err := c.Press("d1", stage.Point{X: 250, Y: 220}, ident); err != nil {
		t.Fatal(err)
	}
	c.Release()
	c.Release()
	if c.State() != StateIdle || c.Dragging() != "" {
		t.Errorf("state = %v/%q after double release", c.State(), c.Dragging())
	}
}

func TestDegenerateTransformSkipsEvent(t *testing.T) {
	r := testRoster(t)
	c := NewController(stage.DefaultSize(), r)
	var broken viewport.Transform

	// Press through a degenerate transform does not start a session
	if err := c.Press("d1", stage.Point{X: 250, Y: 220}, broken); !errors.Is(err, viewport.ErrUnavailable) {
		t.Errorf("Press returned %v, want ErrUnavailable", err)
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v after failed press", c.State())
	}

	// Move through a degenerate transform leaves position untouched
	if err := c.Press("d1", stage.Point{X: 250, Y: 220}, ident); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Move(stage.Point{X: 400, Y: 400}, broken); !errors.Is(err, viewport.ErrUnavailable) {
		t.Errorf("Move returned %v, want ErrUnavailable", err)
	}
	d, _ := r.Get("d1")
	if d.X != 250 || d.Y != 220 {
		t.Errorf("failed move displaced dancer to (%v, %v)", d.X, d.Y)
	}
	if c.State() != StateDragging {
		t.Errorf("failed move changed state to %v", c.State())
	}
}

func TestDancerRemovedMidDrag(t *testing.T) {
	r := testRoster(t)
	c := NewController(stage.DefaultSize(), r)

	if err := c.Press("d1", stage.Point{X: 250, Y: 220}, ident); err != nil {
		t.Fatal(err)
	}
	r.Remove("d1")

	_, err := c.Move(stage.Point{X: 300, Y: 300}, ident)
	if !errors.Is(err, ErrDancerNotFound) {
		t.Errorf("Move returned %v, want ErrDancerNotFound", err)
	}
	if c.State() != StateIdle {
		t.Errorf("session not cleared after dancer removal, state = %v", c.State())
	}
}

func TestDragThroughLetterboxTransform(t *testing.T) {
	// Same semantics through a realistic letterboxed viewport: the dancer
	// lands where the cell-space pointer says, not on a cell grid artifact
	r := testRoster(t)
	s := stage.DefaultSize()
	c := NewController(s, r)
	tf := viewport.Fit(s, 160, 48, 2.0)

	d, _ := r.Get("d1")
	press := tf.FromStage(stage.Point{X: 260, Y: 225})
	if err := c.Press("d1", press, tf); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Move(tf.FromStage(stage.Point{X: 300, Y: 300}), tf); err != nil {
		t.Fatal(err)
	}
	if d.X < 289.999 || d.X > 290.001 || d.Y < 294.999 || d.Y > 295.001 {
		t.Errorf("dancer at (%v, %v), want about (290, 295)", d.X, d.Y)
	}
}
