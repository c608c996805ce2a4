package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/larkwold/choreo/audio"
	"github.com/larkwold/choreo/drag"
	"github.com/larkwold/choreo/input"
	"github.com/larkwold/choreo/render"
	"github.com/larkwold/choreo/stage"
)

// nudgeStep is the stage-unit distance of one keyboard nudge
const nudgeStep = 5.0

// app wires the input machine, drag controller, and renderer together.
// Everything runs on the event loop goroutine; transitions are strictly
// serialized in terminal delivery order
type app struct {
	screen   tcell.Screen
	machine  *input.Machine
	size     stage.Size
	radius   float64
	roster   *stage.Roster
	ctl      *drag.Controller
	renderer *render.Renderer
	sound    *audio.Engine

	active string // Last grabbed or added dancer, target of nudges
	nextID int
}

// run drives the editor until quit
func (a *app) run() {
	a.renderer.Draw(a.roster, a.ctl, a.sound.Muted())

	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		intent := a.machine.Process(ev)
		if intent == nil {
			continue
		}
		if intent.Type == input.IntentQuit {
			return
		}
		a.dispatch(intent)
		a.renderer.Draw(a.roster, a.ctl, a.sound.Muted())
	}
}

// dispatch applies one intent. Core errors (no hit, degenerate
// transform, stale events) degrade to skipping the event; nothing here
// is fatal
func (a *app) dispatch(in *input.Intent) {
	switch in.Type {
	case input.IntentResize:
		a.screen.Sync()

	case input.IntentPointerPress:
		a.press(in.X, in.Y)

	case input.IntentPointerDrag:
		clamped, err := a.ctl.Move(cellPoint(in.X, in.Y), a.renderer.Transform())
		if err == nil && clamped {
			a.sound.Play(audio.CueClamp)
		}

	case input.IntentPointerRelease:
		if a.ctl.State() == drag.StateDragging {
			a.sound.Play(audio.CueDrop)
		}
		a.ctl.Release()

	case input.IntentAddDancer:
		a.addDancer(in.X, in.Y)

	case input.IntentRemoveDancer:
		a.removeDancer(in.X, in.Y)

	case input.IntentNudge:
		a.nudge(in.DX, in.DY)

	case input.IntentToggleGrid:
		a.renderer.ToggleGrid()

	case input.IntentToggleMute:
		a.sound.ToggleMute()
	}
}

// cellPoint treats the center of a terminal cell as the device point, so
// coarse cell coordinates bias toward the middle of the cell instead of
// its top-left corner
func cellPoint(x, y int) stage.Point {
	return stage.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

// press hit-tests the pointer and starts a drag session on the topmost
// dancer under it
func (a *app) press(x, y int) {
	tf := a.renderer.Transform()
	device := cellPoint(x, y)
	p, err := tf.ToStage(device)
	if err != nil {
		return
	}
	id, ok := a.roster.HitTest(p)
	if !ok {
		return
	}
	if err := a.ctl.Press(id, device, tf); err != nil {
		return
	}
	a.active = id
	a.sound.Play(audio.CueGrab)
}

// addDancer creates a dancer at the hover cell, clamped onto the stage
func (a *app) addDancer(x, y int) {
	tf := a.renderer.Transform()
	p, err := tf.ToStage(cellPoint(x, y))
	if err != nil {
		return
	}
	p = a.size.ClampInside(p, a.radius)

	id := a.freshID()
	d := &stage.Dancer{ID: id, X: p.X, Y: p.Y, Radius: a.radius}
	if err := a.roster.Add(d); err != nil {
		return
	}
	a.active = id
	a.sound.Play(audio.CueAdd)
}

// removeDancer deletes the dancer under the hover cell, ending its drag
// session first if it is the one being held
func (a *app) removeDancer(x, y int) {
	tf := a.renderer.Transform()
	p, err := tf.ToStage(cellPoint(x, y))
	if err != nil {
		return
	}
	id, ok := a.roster.HitTest(p)
	if !ok {
		return
	}
	if a.ctl.Dragging() == id {
		a.ctl.Release()
	}
	if a.roster.Remove(id) {
		if a.active == id {
			a.active = ""
		}
		a.sound.Play(audio.CueRemove)
	}
}

// nudge moves the active dancer one step in stage space, clamped to
// bounds. Suppressed while a drag session holds the dancer: the pointer
// owns its position for the session's duration
func (a *app) nudge(dx, dy int) {
	if a.active == "" || a.ctl.State() == drag.StateDragging {
		return
	}
	d, ok := a.roster.Get(a.active)
	if !ok {
		a.active = ""
		return
	}
	p := a.size.ClampInside(stage.Point{
		X: d.X + float64(dx)*nudgeStep,
		Y: d.Y + float64(dy)*nudgeStep,
	}, d.Radius)
	d.X, d.Y = p.X, p.Y
}

// freshID generates an unused dancer id
func (a *app) freshID() string {
	for {
		a.nextID++
		id := fmt.Sprintf("d%d", a.nextID)
		if _, exists := a.roster.Get(id); !exists {
			return id
		}
	}
}
