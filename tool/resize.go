package tool

import (
	"github.com/golang/geo/r2"

	"github.com/MahmoudHassan77/toolzy-sub001/annot"
)

// Resize handles, clockwise from the top-left corner.
const (
	HandleNW = iota
	HandleN
	HandleNE
	HandleW
	HandleE
	HandleSW
	HandleS
	HandleSE
)

// MinResizeSize is the smallest width or height a resize may produce.
const MinResizeSize = 10.0

// handleHitSize is the clickable square around each handle, screen units.
const handleHitSize = 8.0

// HandlePoints returns the eight handle centers for a box, indexed
// NW,N,NE,W,E,SW,S,SE.
func HandlePoints(x, y, w, h float64) [8]r2.Point {
	return [8]r2.Point{
		{X: x, Y: y},
		{X: x + w/2, Y: y},
		{X: x + w, Y: y},
		{X: x, Y: y + h/2},
		{X: x + w, Y: y + h/2},
		{X: x, Y: y + h},
		{X: x + w/2, Y: y + h},
		{X: x + w, Y: y + h},
	}
}

// handleAt reports which handle of the selected annotation p falls on, or
// -1. Only Boxed variants expose handles.
func (e *Engine) handleAt(page int, p r2.Point) int {
	if e.selected == "" {
		return -1
	}
	a := e.store.Get(e.selected)
	b, ok := a.(annot.Boxed)
	if !ok || b.Page() != page {
		return -1
	}
	o := b.Origin()
	w, h := b.Size()
	for i, c := range HandlePoints(o.X, o.Y, w, h) {
		half := handleHitSize / 2
		if p.X >= c.X-half && p.X <= c.X+half && p.Y >= c.Y-half && p.Y <= c.Y+half {
			return i
		}
	}
	return -1
}

// resizeRect applies a pointer delta to the gesture's starting box
// according to which edges the handle controls, clamping each dimension to
// MinResizeSize. Clamping pins the edge opposite the one being dragged.
func resizeRect(handle int, x, y, w, h, dx, dy float64) (float64, float64, float64, float64) {
	left := handle == HandleNW || handle == HandleW || handle == HandleSW
	right := handle == HandleNE || handle == HandleE || handle == HandleSE
	top := handle == HandleNW || handle == HandleN || handle == HandleNE
	bottom := handle == HandleSW || handle == HandleS || handle == HandleSE

	nx, ny, nw, nh := x, y, w, h

	if left {
		nx, nw = x+dx, w-dx
	} else if right {
		nw = w + dx
	}
	if top {
		ny, nh = y+dy, h-dy
	} else if bottom {
		nh = h + dy
	}

	if nw < MinResizeSize {
		if left {
			nx = x + w - MinResizeSize
		}
		nw = MinResizeSize
	}
	if nh < MinResizeSize {
		if top {
			ny = y + h - MinResizeSize
		}
		nh = MinResizeSize
	}
	return nx, ny, nw, nh
}
