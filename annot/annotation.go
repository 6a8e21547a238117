// Package annot holds the annotation data model and the undoable store.
package annot

import (
	"github.com/golang/geo/r2"
	"github.com/google/uuid"
)

// Kind identifies an annotation variant.
type Kind string

const (
	KindHighlight  Kind = "highlight"
	KindWhiteout   Kind = "whiteout"
	KindText       Kind = "text"
	KindStamp      Kind = "stamp"
	KindStickyNote Kind = "sticky-note"
	KindDraw       Kind = "draw"
	KindShape      Kind = "shape"
	KindPolygon    Kind = "polygon"
	KindCallout    Kind = "callout"
	KindSignature  Kind = "signature"
)

// Annotation is the interface shared by every placed object. Positions are
// in editor screen space: top-left origin, document-relative pixels at the
// page's current display scale.
type Annotation interface {
	ID() string
	Page() int
	Origin() r2.Point
	MoveTo(x, y float64)
	Type() Kind
	Bounds() r2.Rect
	Clone() Annotation

	// setPage is reserved for page-operation remapping; nothing else may
	// touch the page index after creation.
	setPage(i int)
}

// Base carries the fields common to all variants.
type Base struct {
	Id        string
	PageIndex int
	X, Y      float64
}

// NewBase mints a base with a fresh opaque id.
func NewBase(page int, x, y float64) Base {
	return Base{Id: uuid.NewString(), PageIndex: page, X: x, Y: y}
}

func (b *Base) ID() string          { return b.Id }
func (b *Base) Page() int           { return b.PageIndex }
func (b *Base) Origin() r2.Point    { return r2.Point{X: b.X, Y: b.Y} }
func (b *Base) MoveTo(x, y float64) { b.X, b.Y = x, y }
func (b *Base) setPage(i int)       { b.PageIndex = i }

// Boxed is implemented by variants that carry an explicit width and height
// and can therefore be resized.
type Boxed interface {
	Annotation
	Size() (w, h float64)
	Resize(w, h float64)
}

// box is the embeddable width/height pair behind Boxed.
type box struct {
	Width, Height float64
}

func (b *box) Size() (float64, float64) { return b.Width, b.Height }
func (b *box) Resize(w, h float64)      { b.Width, b.Height = w, h }

func rect(x, y, w, h float64) r2.Rect {
	return r2.RectFromPoints(r2.Point{X: x, Y: y}, r2.Point{X: x + w, Y: y + h})
}

// HighlightStyle selects how a text-marking highlight renders.
type HighlightStyle string

const (
	StyleHighlight     HighlightStyle = "highlight"
	StyleUnderline     HighlightStyle = "underline"
	StyleStrikethrough HighlightStyle = "strikethrough"
)

// Highlight marks a rectangular text region: a translucent fill, an
// underline or a strikethrough depending on Style.
type Highlight struct {
	Base
	box
	Color   string
	Style   HighlightStyle
	Opacity float64
}

func (a *Highlight) Type() Kind        { return KindHighlight }
func (a *Highlight) Bounds() r2.Rect   { return rect(a.X, a.Y, a.Width, a.Height) }
func (a *Highlight) Clone() Annotation { c := *a; return &c }

// Whiteout is an opaque white rectangle covering page content.
type Whiteout struct {
	Base
	box
}

func (a *Whiteout) Type() Kind        { return KindWhiteout }
func (a *Whiteout) Bounds() r2.Rect   { return rect(a.X, a.Y, a.Width, a.Height) }
func (a *Whiteout) Clone() Annotation { c := *a; return &c }

// Text is free text placed on the page.
type Text struct {
	Base
	Text     string
	FontSize float64
	Color    string
}

func (a *Text) Type() Kind        { return KindText }
func (a *Text) Bounds() r2.Rect   { return textBounds(a.X, a.Y, a.Text, a.FontSize) }
func (a *Text) Clone() Annotation { c := *a; return &c }

// Stamp is a symbol or formatted date placed as text.
type Stamp struct {
	Base
	Text     string
	FontSize float64
	Color    string
}

func (a *Stamp) Type() Kind        { return KindStamp }
func (a *Stamp) Bounds() r2.Rect   { return textBounds(a.X, a.Y, a.Text, a.FontSize) }
func (a *Stamp) Clone() Annotation { c := *a; return &c }

// Sticky note marker dimensions in screen units.
const (
	NoteIconSize       = 24.0
	NoteExpandedWidth  = 160.0
	NoteExpandedHeight = 120.0
)

// StickyNote is a collapsible note marker.
type StickyNote struct {
	Base
	Text     string
	Color    string
	Expanded bool
	Opacity  float64
}

func (a *StickyNote) Type() Kind { return KindStickyNote }

func (a *StickyNote) Bounds() r2.Rect {
	if a.Expanded {
		return rect(a.X, a.Y, NoteExpandedWidth, NoteExpandedHeight)
	}
	return rect(a.X, a.Y, NoteIconSize, NoteIconSize)
}

func (a *StickyNote) Clone() Annotation { c := *a; return &c }

// Draw is a freehand stroke. Points are absolute screen coordinates; Box is
// their min/max extent and the base origin tracks the box corner.
type Draw struct {
	Base
	Path        []r2.Point
	Color       string
	StrokeWidth float64
	Opacity     float64
	Box         r2.Rect
}

func (a *Draw) Type() Kind      { return KindDraw }
func (a *Draw) Bounds() r2.Rect { return a.Box }

func (a *Draw) MoveTo(x, y float64) {
	dx, dy := x-a.X, y-a.Y
	a.Path = translate(a.Path, dx, dy)
	a.Box = PathBounds(a.Path)
	a.Base.MoveTo(x, y)
}

func (a *Draw) Clone() Annotation {
	c := *a
	c.Path = append([]r2.Point(nil), a.Path...)
	return &c
}

// ShapeKind selects the geometric primitive a Shape draws.
type ShapeKind string

const (
	ShapeRect    ShapeKind = "rect"
	ShapeEllipse ShapeKind = "ellipse"
	ShapeLine    ShapeKind = "line"
	ShapeArrow   ShapeKind = "arrow"
)

// Shape is a stroked rectangle, ellipse, line segment or arrow, all
// described by the bounding rectangle of the drag that placed them.
type Shape struct {
	Base
	box
	Kind        ShapeKind
	Color       string
	StrokeWidth float64
	Opacity     float64
}

func (a *Shape) Type() Kind        { return KindShape }
func (a *Shape) Bounds() r2.Rect   { return rect(a.X, a.Y, a.Width, a.Height) }
func (a *Shape) Clone() Annotation { c := *a; return &c }

// Polygon is a closed loop of at least three vertices.
type Polygon struct {
	Base
	Points      []r2.Point
	Color       string
	StrokeWidth float64
	Opacity     float64
	Box         r2.Rect
}

func (a *Polygon) Type() Kind      { return KindPolygon }
func (a *Polygon) Bounds() r2.Rect { return a.Box }

func (a *Polygon) MoveTo(x, y float64) {
	dx, dy := x-a.X, y-a.Y
	a.Points = translate(a.Points, dx, dy)
	a.Box = PathBounds(a.Points)
	a.Base.MoveTo(x, y)
}

func (a *Polygon) Clone() Annotation {
	c := *a
	c.Points = append([]r2.Point(nil), a.Points...)
	return &c
}

// Tail offset below a fresh callout's bottom edge, in screen units.
const CalloutTailDrop = 30.0

// Callout is a rounded text box with a triangular tail.
type Callout struct {
	Base
	box
	TailX, TailY float64
	Text         string
	FontSize     float64
	Color        string
	Opacity      float64
}

func (a *Callout) Type() Kind      { return KindCallout }
func (a *Callout) Bounds() r2.Rect { return rect(a.X, a.Y, a.Width, a.Height) }

func (a *Callout) MoveTo(x, y float64) {
	dx, dy := x-a.X, y-a.Y
	a.TailX += dx
	a.TailY += dy
	a.Base.MoveTo(x, y)
}

func (a *Callout) Clone() Annotation { c := *a; return &c }

// Signature is a placed bitmap. The payload is an opaque encoded image; it
// is decoded only at export time and shared between clones.
type Signature struct {
	Base
	box
	Bitmap []byte
}

func (a *Signature) Type() Kind        { return KindSignature }
func (a *Signature) Bounds() r2.Rect   { return rect(a.X, a.Y, a.Width, a.Height) }
func (a *Signature) Clone() Annotation { c := *a; return &c }
