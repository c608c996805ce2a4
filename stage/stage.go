package stage

// Default stage geometry, overridable via config
const (
	DefaultWidth  = 1000.0
	DefaultHeight = 600.0
	DefaultPitch  = 50.0
)

// Point is a location in stage coordinates
type Point struct {
	X, Y float64
}

// Size describes the fixed stage coordinate space
// Pitch is the uniform grid spacing, used by rendering only
type Size struct {
	Width  float64
	Height float64
	Pitch  float64
}

// DefaultSize returns the standard 1000x600 stage
func DefaultSize() Size {
	return Size{Width: DefaultWidth, Height: DefaultHeight, Pitch: DefaultPitch}
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInside returns p constrained so a circle of the given radius
// centered at the result lies fully inside the stage
func (s Size) ClampInside(p Point, radius float64) Point {
	return Point{
		X: Clamp(p.X, radius, s.Width-radius),
		Y: Clamp(p.Y, radius, s.Height-radius),
	}
}

// Contains reports whether a circle at center p with the given radius
// lies fully inside the stage
func (s Size) Contains(p Point, radius float64) bool {
	return p.X >= radius && p.X <= s.Width-radius &&
		p.Y >= radius && p.Y <= s.Height-radius
}
