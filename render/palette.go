package render

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Golden-angle hue step keeps neighboring roster indices visually far
// apart without precomputing a palette of fixed size
const hueStep = 137.508

// DancerColor returns a stable, perceptually distinct color for the
// dancer at the given roster index. HCL keeps chroma and lightness
// constant so every dancer reads equally bright against the stage
func DancerColor(index int) tcell.Color {
	if index < 0 {
		index = 0
	}
	h := float64(index) * hueStep
	for h >= 360 {
		h -= 360
	}
	c := colorful.Hcl(h, 0.6, 0.65).Clamped()
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
