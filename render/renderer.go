// Package render draws the stage onto a tcell screen.
// Strictly pull-based: it reads the roster and drag state after each
// transition and never calls back into the core.
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/larkwold/choreo/drag"
	"github.com/larkwold/choreo/stage"
	"github.com/larkwold/choreo/viewport"
)

// statusRows is the screen height reserved for the status bar
const statusRows = 1

var (
	styleDefault = tcell.StyleDefault.
			Foreground(tcell.ColorWhite).
			Background(tcell.ColorBlack)
	styleFrame  = styleDefault.Foreground(tcell.ColorGray)
	styleGrid   = styleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleStatus = styleDefault.Reverse(true)
)

// Renderer owns screen layout and drawing for the formation editor
type Renderer struct {
	screen     tcell.Screen
	size       stage.Size
	cellAspect float64
	showGrid   bool
}

// NewRenderer creates a renderer for the given stage geometry
func NewRenderer(screen tcell.Screen, size stage.Size, cellAspect float64) *Renderer {
	return &Renderer{
		screen:     screen,
		size:       size,
		cellAspect: cellAspect,
		showGrid:   true,
	}
}

// ToggleGrid flips grid visibility
func (r *Renderer) ToggleGrid() {
	r.showGrid = !r.showGrid
}

// Transform returns the live device-to-stage transform for the current
// screen size. Queried per input event so resizes apply immediately;
// degenerate when the terminal is too small, which input handling treats
// as skip-this-event
func (r *Renderer) Transform() viewport.Transform {
	cols, rows := r.screen.Size()
	return viewport.Fit(r.size, cols, rows-statusRows, r.cellAspect)
}

// Draw repaints the whole screen from current state
func (r *Renderer) Draw(roster *stage.Roster, ctl *drag.Controller, muted bool) {
	r.screen.Fill(' ', styleDefault)

	tf := r.Transform()
	if tf.Valid() {
		r.drawFrame(tf)
		if r.showGrid {
			r.drawGrid(tf)
		}
		r.drawDancers(tf, roster, ctl)
	} else {
		r.drawCentered("terminal too small")
	}
	r.drawStatus(roster, ctl, muted)

	r.screen.Show()
}

// drawFrame draws the stage boundary box
func (r *Renderer) drawFrame(tf viewport.Transform) {
	tl := tf.FromStage(stage.Point{})
	br := tf.FromStage(stage.Point{X: r.size.Width, Y: r.size.Height})
	x0, y0 := int(math.Floor(tl.X)), int(math.Floor(tl.Y))
	x1, y1 := int(math.Ceil(br.X))-1, int(math.Ceil(br.Y))-1
	if x1 <= x0 || y1 <= y0 {
		return
	}

	for x := x0 + 1; x < x1; x++ {
		r.screen.SetContent(x, y0, tcell.RuneHLine, nil, styleFrame)
		r.screen.SetContent(x, y1, tcell.RuneHLine, nil, styleFrame)
	}
	for y := y0 + 1; y < y1; y++ {
		r.screen.SetContent(x0, y, tcell.RuneVLine, nil, styleFrame)
		r.screen.SetContent(x1, y, tcell.RuneVLine, nil, styleFrame)
	}
	r.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, styleFrame)
	r.screen.SetContent(x1, y0, tcell.RuneURCorner, nil, styleFrame)
	r.screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, styleFrame)
	r.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, styleFrame)
}

// drawGrid marks grid intersections at the stage pitch
func (r *Renderer) drawGrid(tf viewport.Transform) {
	if r.size.Pitch <= 0 {
		return
	}
	for gy := r.size.Pitch; gy < r.size.Height; gy += r.size.Pitch {
		for gx := r.size.Pitch; gx < r.size.Width; gx += r.size.Pitch {
			d := tf.FromStage(stage.Point{X: gx, Y: gy})
			r.screen.SetContent(int(math.Round(d.X)), int(math.Round(d.Y)), tcell.RuneBullet, nil, styleGrid)
		}
	}
}

// drawDancers paints each dancer as a filled disc with its id tag.
// Cells are filled by mapping each candidate cell center back to stage
// space and testing it against the dancer's circle, so the disc shape
// follows the letterbox scale instead of assuming square cells
func (r *Renderer) drawDancers(tf viewport.Transform, roster *stage.Roster, ctl *drag.Controller) {
	held := ctl.Dragging()

	for i, d := range roster.All() {
		color := DancerColor(i)
		body := styleDefault.Foreground(color)
		if d.ID == held {
			body = body.Bold(true)
		}

		center := tf.FromStage(d.Center())
		rx := d.Radius * tf.ScaleX
		ry := d.Radius * tf.ScaleY

		x0 := int(math.Floor(center.X - rx))
		x1 := int(math.Ceil(center.X + rx))
		y0 := int(math.Floor(center.Y - ry))
		y1 := int(math.Ceil(center.Y + ry))
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				p, err := tf.ToStage(stage.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
				if err != nil {
					return
				}
				dx, dy := p.X-d.X, p.Y-d.Y
				if dx*dx+dy*dy <= d.Radius*d.Radius {
					r.screen.SetContent(x, y, tcell.RuneBlock, nil, body)
				}
			}
		}

		// Id tag over the disc center
		label := d.ID
		lx := int(math.Round(center.X)) - len(label)/2
		ly := int(math.Round(center.Y))
		tag := styleDefault.Foreground(tcell.ColorBlack).Background(color)
		if d.ID == held {
			tag = tag.Bold(true)
		}
		for j, ch := range label {
			r.screen.SetContent(lx+j, ly, ch, nil, tag)
		}
	}
}

// drawStatus paints the bottom status bar
func (r *Renderer) drawStatus(roster *stage.Roster, ctl *drag.Controller, muted bool) {
	cols, rows := r.screen.Size()
	if rows < 1 {
		return
	}
	y := rows - 1

	state := "IDLE"
	if id := ctl.Dragging(); id != "" {
		if d, ok := roster.Get(id); ok {
			state = fmt.Sprintf("DRAG %s (%.0f,%.0f)", id, d.X, d.Y)
		} else {
			state = "DRAG " + id
		}
	}
	sound := "sound"
	if muted {
		sound = "muted"
	}
	noun := "dancers"
	if roster.Len() == 1 {
		noun = "dancer"
	}
	text := fmt.Sprintf(" %s | %d %s | %s | a:add x:del g:grid m:mute q:quit", state, roster.Len(), noun, sound)

	for x := 0; x < cols; x++ {
		ch := ' '
		if x < len(text) {
			ch = rune(text[x])
		}
		r.screen.SetContent(x, y, ch, nil, styleStatus)
	}
}

// drawCentered prints a message in the middle of the screen, used when
// the viewport is too small to lay out the stage
func (r *Renderer) drawCentered(msg string) {
	cols, rows := r.screen.Size()
	x := (cols - len(msg)) / 2
	y := rows / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	for i, ch := range msg {
		r.screen.SetContent(x+i, y, ch, nil, styleDefault)
	}
}
