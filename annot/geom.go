package annot

import "github.com/golang/geo/r2"

// Rough glyph advance as a fraction of the font size, used for screen-space
// hit boxes around text. Export does not depend on it.
const glyphAdvance = 0.6

func textBounds(x, y float64, text string, size float64) r2.Rect {
	w := float64(len([]rune(text))) * size * glyphAdvance
	if w < size {
		w = size
	}
	return rect(x, y, w, size*1.2)
}

// NormalizedRect converts two drag corners into a top-left origin plus
// non-negative dimensions.
func NormalizedRect(a, b r2.Point) (x, y, w, h float64) {
	x = a.X
	if b.X < x {
		x = b.X
	}
	y = a.Y
	if b.Y < y {
		y = b.Y
	}
	w = a.X - b.X
	if w < 0 {
		w = -w
	}
	h = a.Y - b.Y
	if h < 0 {
		h = -h
	}
	return x, y, w, h
}

// PathBounds is the min/max extent of a point sequence.
func PathBounds(pts []r2.Point) r2.Rect {
	if len(pts) == 0 {
		return r2.EmptyRect()
	}
	return r2.RectFromPoints(pts...)
}

func translate(pts []r2.Point, dx, dy float64) []r2.Point {
	for i := range pts {
		pts[i].X += dx
		pts[i].Y += dy
	}
	return pts
}
