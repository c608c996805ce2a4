package input

import (
	"github.com/gdamore/tcell/v2"
)

// Machine parses tcell events into semantic Intents.
// tcell reports mouse buttons as level state on every event; the machine
// edge-detects the primary button to produce press/drag/release, so the
// downstream drag controller only ever sees lifecycle transitions.
// Single consumer, driven from the event loop
type Machine struct {
	held         bool // primary button currently down
	hoverX       int
	hoverY       int
	hoverTracked bool
}

// NewMachine creates an idle input machine
func NewMachine() *Machine {
	return &Machine{}
}

// Hover returns the last observed pointer cell
// ok is false until the first mouse event arrives
func (m *Machine) Hover() (x, y int, ok bool) {
	return m.hoverX, m.hoverY, m.hoverTracked
}

// Process parses one terminal event
// Returns nil for events with no semantic action (plain hover motion,
// unmapped keys)
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventMouse:
		return m.processMouse(ev)
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventFocus:
		return m.processFocus(ev)
	}
	return nil
}

// processFocus ends any drag when the terminal loses focus; release
// events stop arriving once another window owns the pointer, so holding
// the session would strand it
func (m *Machine) processFocus(ev *tcell.EventFocus) *Intent {
	if ev.Focused {
		return nil
	}
	m.held = false
	return &Intent{Type: IntentPointerRelease, X: m.hoverX, Y: m.hoverY}
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	x, y := ev.Position()
	m.hoverX, m.hoverY = x, y
	m.hoverTracked = true

	down := ev.Buttons()&tcell.Button1 != 0
	wasHeld := m.held
	m.held = down

	switch {
	case down && !wasHeld:
		return &Intent{Type: IntentPointerPress, X: x, Y: y}
	case down && wasHeld:
		return &Intent{Type: IntentPointerDrag, X: x, Y: y}
	case !down && wasHeld:
		return &Intent{Type: IntentPointerRelease, X: x, Y: y}
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return &Intent{Type: IntentQuit}
	case tcell.KeyEscape:
		// Cancel any drag; harmless when idle
		m.held = false
		return &Intent{Type: IntentPointerRelease, X: m.hoverX, Y: m.hoverY}
	case tcell.KeyUp:
		return &Intent{Type: IntentNudge, DY: -1}
	case tcell.KeyDown:
		return &Intent{Type: IntentNudge, DY: 1}
	case tcell.KeyLeft:
		return &Intent{Type: IntentNudge, DX: -1}
	case tcell.KeyRight:
		return &Intent{Type: IntentNudge, DX: 1}
	case tcell.KeyRune:
		return m.processRune(ev.Rune())
	}
	return nil
}

func (m *Machine) processRune(r rune) *Intent {
	switch r {
	case 'q':
		return &Intent{Type: IntentQuit}
	case 'h':
		return &Intent{Type: IntentNudge, DX: -1}
	case 'j':
		return &Intent{Type: IntentNudge, DY: 1}
	case 'k':
		return &Intent{Type: IntentNudge, DY: -1}
	case 'l':
		return &Intent{Type: IntentNudge, DX: 1}
	case 'a':
		return &Intent{Type: IntentAddDancer, X: m.hoverX, Y: m.hoverY}
	case 'x':
		return &Intent{Type: IntentRemoveDancer, X: m.hoverX, Y: m.hoverY}
	case 'g':
		return &Intent{Type: IntentToggleGrid}
	case 'm':
		return &Intent{Type: IntentToggleMute}
	}
	return nil
}
