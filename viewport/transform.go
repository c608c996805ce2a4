// Package viewport maps terminal cell coordinates to stage coordinates.
// The transform is owned by whoever lays out the screen (the renderer);
// the drag core receives it as a parameter on every query, so resize and
// re-layout take effect on the next event with no extra plumbing.
package viewport

import (
	"errors"
	"math"

	"github.com/larkwold/choreo/stage"
)

// ErrUnavailable is returned when the viewport geometry cannot be
// resolved (zero-sized render area, non-finite scale). Callers skip the
// event instead of propagating NaN positions
var ErrUnavailable = errors.New("viewport transform unavailable")

// Transform is an invertible affine stage-to-device map with independent
// axis scales. Terminal cells are roughly twice as tall as wide, so the
// axes scale differently to keep the stage visually proportional
type Transform struct {
	ScaleX, ScaleY   float64
	OffsetX, OffsetY float64
}

// Valid reports whether the transform can be inverted
func (t Transform) Valid() bool {
	return t.ScaleX != 0 && t.ScaleY != 0 &&
		!math.IsNaN(t.ScaleX) && !math.IsInf(t.ScaleX, 0) &&
		!math.IsNaN(t.ScaleY) && !math.IsInf(t.ScaleY, 0)
}

// FromStage maps a stage point to device (cell) coordinates
func (t Transform) FromStage(p stage.Point) stage.Point {
	return stage.Point{
		X: t.OffsetX + p.X*t.ScaleX,
		Y: t.OffsetY + p.Y*t.ScaleY,
	}
}

// ToStage maps a device point back to stage coordinates
// Exact two-sided inverse of FromStage up to float64 precision.
// Fails with ErrUnavailable on a degenerate transform; no side effects
func (t Transform) ToStage(device stage.Point) (stage.Point, error) {
	if !t.Valid() {
		return stage.Point{}, ErrUnavailable
	}
	return stage.Point{
		X: (device.X - t.OffsetX) / t.ScaleX,
		Y: (device.Y - t.OffsetY) / t.ScaleY,
	}, nil
}

// Fit computes the letterbox transform that centers the stage inside a
// cols x rows cell area. cellAspect is the height/width ratio of one
// terminal cell (about 2.0 for most fonts); the Y scale is divided by it
// so a stage square renders square on screen.
// A too-small or empty area yields a degenerate transform, which ToStage
// reports as ErrUnavailable on the next query
func Fit(s stage.Size, cols, rows int, cellAspect float64) Transform {
	if cols <= 0 || rows <= 0 || s.Width <= 0 || s.Height <= 0 || cellAspect <= 0 {
		return Transform{}
	}

	// Candidate uniform scale per axis, in cells per stage unit
	sx := float64(cols) / s.Width
	sy := float64(rows) * cellAspect / s.Height
	scale := math.Min(sx, sy)
	if scale <= 0 || math.IsInf(scale, 0) {
		return Transform{}
	}

	t := Transform{
		ScaleX: scale,
		ScaleY: scale / cellAspect,
	}

	// Center the unused margin on both axes
	usedW := s.Width * t.ScaleX
	usedH := s.Height * t.ScaleY
	t.OffsetX = (float64(cols) - usedW) / 2
	t.OffsetY = (float64(rows) - usedH) / 2
	return t
}
