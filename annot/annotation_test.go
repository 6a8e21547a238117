package annot

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizedRect(t *testing.T) {
	tests := []struct {
		name       string
		a, b       r2.Point
		x, y, w, h float64
	}{
		{"down-right", r2.Point{X: 10, Y: 20}, r2.Point{X: 30, Y: 50}, 10, 20, 20, 30},
		{"up-left", r2.Point{X: 30, Y: 50}, r2.Point{X: 10, Y: 20}, 10, 20, 20, 30},
		{"down-left", r2.Point{X: 30, Y: 20}, r2.Point{X: 10, Y: 50}, 10, 20, 20, 30},
		{"degenerate", r2.Point{X: 5, Y: 5}, r2.Point{X: 5, Y: 5}, 5, 5, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, w, h := NormalizedRect(tc.a, tc.b)
			assert.Equal(t, [4]float64{tc.x, tc.y, tc.w, tc.h}, [4]float64{x, y, w, h})
		})
	}
}

func TestPathBounds(t *testing.T) {
	box := PathBounds([]r2.Point{{X: 5, Y: 40}, {X: -3, Y: 7}, {X: 12, Y: 9}})
	assert.Equal(t, -3.0, box.X.Lo)
	assert.Equal(t, 12.0, box.X.Hi)
	assert.Equal(t, 7.0, box.Y.Lo)
	assert.Equal(t, 40.0, box.Y.Hi)

	assert.True(t, PathBounds(nil).IsEmpty())
}

func TestDrawMoveTranslatesPath(t *testing.T) {
	pts := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 5}}
	d := &Draw{Base: NewBase(0, 0, 0), Path: pts, Box: PathBounds(pts)}

	d.MoveTo(20, 30)
	assert.Equal(t, r2.Point{X: 20, Y: 30}, d.Path[0])
	assert.Equal(t, r2.Point{X: 30, Y: 35}, d.Path[1])
	assert.Equal(t, 20.0, d.Box.X.Lo)
	assert.Equal(t, 30.0, d.Box.Y.Lo)
}

func TestCalloutMoveCarriesTail(t *testing.T) {
	c := &Callout{Base: NewBase(0, 10, 10), TailX: 50, TailY: 90}
	c.Resize(80, 50)

	c.MoveTo(30, 20)
	assert.Equal(t, 70.0, c.TailX)
	assert.Equal(t, 100.0, c.TailY)
}

func TestCloneIsDeep(t *testing.T) {
	pts := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}
	p := &Polygon{Base: NewBase(2, 0, 0), Points: pts, Box: PathBounds(pts)}

	c := p.Clone().(*Polygon)
	c.Points[0].X = 99

	assert.Equal(t, 0.0, p.Points[0].X, "clone must not share the vertex slice")
	assert.Equal(t, p.ID(), c.ID())
	assert.Equal(t, 2, c.Page())
}

func TestFreshIDsAreUnique(t *testing.T) {
	a := NewBase(0, 0, 0)
	b := NewBase(0, 0, 0)
	require.NotEmpty(t, a.Id)
	assert.NotEqual(t, a.Id, b.Id)
}

func TestTextBounds(t *testing.T) {
	a := &Text{Base: NewBase(0, 10, 20), Text: "hello", FontSize: 14}
	b := a.Bounds()
	assert.Equal(t, 10.0, b.X.Lo)
	assert.Equal(t, 20.0, b.Y.Lo)
	assert.InDelta(t, 5*14*glyphAdvance, b.X.Length(), 1e-9)
	assert.InDelta(t, 14*1.2, b.Y.Length(), 1e-9)

	// A single short glyph still gets a grabbable box.
	s := &Stamp{Base: NewBase(0, 0, 0), Text: "✓", FontSize: 14}
	assert.Equal(t, 14.0, s.Bounds().X.Length())
}

func TestStickyNoteBounds(t *testing.T) {
	n := &StickyNote{Base: NewBase(0, 10, 10)}
	assert.Equal(t, NoteIconSize, n.Bounds().Size().X)

	n.Expanded = true
	assert.Equal(t, NoteExpandedWidth, n.Bounds().Size().X)
	assert.Equal(t, NoteExpandedHeight, n.Bounds().Size().Y)
}
