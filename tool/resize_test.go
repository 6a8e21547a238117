package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResizeRectPerHandle(t *testing.T) {
	// Start box (100, 100, 80, 60), pointer delta (+10, +20).
	tests := []struct {
		name       string
		handle     int
		x, y, w, h float64
	}{
		{"NW", HandleNW, 110, 120, 70, 40},
		{"N", HandleN, 100, 120, 80, 40},
		{"NE", HandleNE, 100, 120, 90, 40},
		{"W", HandleW, 110, 100, 70, 60},
		{"E", HandleE, 100, 100, 90, 60},
		{"SW", HandleSW, 110, 100, 70, 80},
		{"S", HandleS, 100, 100, 80, 80},
		{"SE", HandleSE, 100, 100, 90, 80},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, w, h := resizeRect(tc.handle, 100, 100, 80, 60, 10, 20)
			assert.Equal(t, [4]float64{tc.x, tc.y, tc.w, tc.h}, [4]float64{x, y, w, h})
		})
	}
}

func TestResizeRectClampPinsOppositeEdge(t *testing.T) {
	// Dragging the W handle far right collapses the width; the right edge
	// must stay at x+w = 180.
	x, y, w, h := resizeRect(HandleW, 100, 100, 80, 60, 200, 0)
	assert.Equal(t, 180-MinResizeSize, x)
	assert.Equal(t, MinResizeSize, w)
	assert.Equal(t, 100.0, y)
	assert.Equal(t, 60.0, h)

	// Dragging the N handle far down pins the bottom edge at y+h = 160.
	_, y, _, h = resizeRect(HandleN, 100, 100, 80, 60, 0, 300)
	assert.Equal(t, 160-MinResizeSize, y)
	assert.Equal(t, MinResizeSize, h)

	// From the E side the origin never moves.
	x, _, w, _ = resizeRect(HandleE, 100, 100, 80, 60, -500, 0)
	assert.Equal(t, 100.0, x)
	assert.Equal(t, MinResizeSize, w)
}

func TestHandlePointsLayout(t *testing.T) {
	pts := HandlePoints(0, 0, 100, 50)
	assert.Equal(t, 0.0, pts[HandleNW].X)
	assert.Equal(t, 0.0, pts[HandleNW].Y)
	assert.Equal(t, 50.0, pts[HandleN].X)
	assert.Equal(t, 100.0, pts[HandleE].X)
	assert.Equal(t, 25.0, pts[HandleE].Y)
	assert.Equal(t, 50.0, pts[HandleS].Y)
	assert.Equal(t, 100.0, pts[HandleSE].X)
	assert.Equal(t, 50.0, pts[HandleSE].Y)
}
