// Package export bakes the live annotation list and the page operation log
// into a new PDF.
package export

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// PageSpace converts editor screen coordinates (top-left origin, pixels at
// the display scale) into document coordinates (bottom-left origin, points)
// for one page.
type PageSpace struct {
	// Scale is the display zoom the annotations were placed at.
	Scale float64
	// Height is the page height in document points.
	Height float64
}

// ToDoc maps a screen point into document space: x' = x/s, y' = H - y/s.
func (ps PageSpace) ToDoc(x, y float64) (float64, float64) {
	return x / ps.Scale, ps.Height - y/ps.Scale
}

// Len divides a screen distance down to document units.
func (ps PageSpace) Len(v float64) float64 {
	return v / ps.Scale
}

// hexRGB parses a #rrggbb color into PDF rg operands. Unparseable colors
// fall back to black rather than failing a whole export.
func hexRGB(hex string) (float64, float64, float64) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0
	}
	return c.R, c.G, c.B
}
