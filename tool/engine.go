// Package tool translates pointer events into annotation store mutations.
package tool

import (
	"time"

	"github.com/golang/geo/r2"

	"github.com/MahmoudHassan77/toolzy-sub001/annot"
)

// Tool is the active markup tool.
type Tool string

const (
	Select        Tool = "select"
	Eraser        Tool = "eraser"
	Highlight     Tool = "highlight"
	Underline     Tool = "underline"
	Strikethrough Tool = "strikethrough"
	Whiteout      Tool = "whiteout"
	Text          Tool = "text"
	Stamp         Tool = "stamp"
	StickyNote    Tool = "sticky-note"
	Freehand      Tool = "freehand-draw"
	Rectangle     Tool = "rectangle"
	Ellipse       Tool = "ellipse"
	Line          Tool = "line"
	Arrow         Tool = "arrow"
	Polygon       Tool = "polygon"
	Callout       Tool = "callout"
	Signature     Tool = "signature"
)

// MinCommitSize is the threshold below which a rectangle gesture is
// silently discarded instead of committed.
const MinCommitSize = 4.0

type state int

const (
	stateIdle state = iota
	stateRectDragging
	stateFreehand
	statePolygon
	stateTextPending
	stateDragging
	stateResizing
)

// Engine is the per-tool pointer state machine. It is single-threaded by
// contract: one pointer event is fully processed before the next arrives.
type Engine struct {
	store *annot.Store
	sig   SignatureSource
	opts  annot.ToolOptions
	tool  Tool

	st     state
	page   int
	origin r2.Point

	points  []r2.Point // freehand samples or polygon vertices
	textPos r2.Point

	dragID    string
	dragStart r2.Point

	handle                         int
	startX, startY, startW, startH float64

	selected string
	pending  *SignatureRequest

	now func() time.Time
}

// NewEngine wires the state machine to a store and a signature collaborator.
// sig may be nil when the signature tool is never activated.
func NewEngine(store *annot.Store, sig SignatureSource) *Engine {
	return &Engine{
		store: store,
		sig:   sig,
		opts:  annot.DefaultOptions(),
		tool:  Select,
		now:   time.Now,
	}
}

func (e *Engine) Tool() Tool { return e.tool }

// SetTool switches the active tool, discarding any unfinished gesture:
// pending polygon vertices, a pending text entry and the selection are all
// dropped. A pending signature request stays live; it belongs to the
// external collaborator, not to the active tool.
func (e *Engine) SetTool(t Tool) {
	e.tool = t
	e.st = stateIdle
	e.points = nil
	e.selected = ""
}

func (e *Engine) Options() annot.ToolOptions { return e.opts }

// SetOptions replaces the paint style used for future annotations. Already
// placed annotations keep the style they were created with.
func (e *Engine) SetOptions(o annot.ToolOptions) error {
	if err := o.Validate(); err != nil {
		return err
	}
	e.opts = o
	return nil
}

// Selected is the id of the annotation the select tool last hit, or "".
func (e *Engine) Selected() string { return e.selected }

// PointerDown feeds a pointer press at p on the given page.
func (e *Engine) PointerDown(page int, p r2.Point) {
	switch e.tool {
	case Highlight, Underline, Strikethrough, Whiteout, Rectangle, Ellipse, Line, Arrow, Callout:
		e.st = stateRectDragging
		e.page = page
		e.origin = p

	case Freehand:
		e.st = stateFreehand
		e.page = page
		e.points = []r2.Point{p}

	case Polygon:
		if e.st != statePolygon {
			e.points = nil
		}
		e.st = statePolygon
		e.page = page
		e.points = append(e.points, p)

	case Text:
		e.st = stateTextPending
		e.page = page
		e.textPos = p

	case Stamp:
		e.store.Add(&annot.Stamp{
			Base:     annot.NewBase(page, p.X, p.Y),
			Text:     e.stampText(),
			FontSize: e.opts.FontSize,
			Color:    e.opts.Color,
		})

	case StickyNote:
		e.store.Add(&annot.StickyNote{
			Base:    annot.NewBase(page, p.X, p.Y),
			Color:   e.opts.Color,
			Opacity: e.opts.Opacity,
		})

	case Signature:
		e.requestSignature(page, p)

	case Select:
		e.selectDown(page, p)

	case Eraser:
		if a := e.hit(page, p); a != nil {
			e.store.Remove(a.ID())
		}
	}
}

// PointerMove feeds a pointer movement sample.
func (e *Engine) PointerMove(p r2.Point) {
	switch e.st {
	case stateFreehand:
		e.points = append(e.points, p)

	case stateDragging:
		id, x, y := e.dragID, e.dragStart.X+p.X-e.origin.X, e.dragStart.Y+p.Y-e.origin.Y
		e.store.Update(id, func(a annot.Annotation) {
			a.MoveTo(x, y)
		})

	case stateResizing:
		x, y, w, h := resizeRect(e.handle, e.startX, e.startY, e.startW, e.startH, p.X-e.origin.X, p.Y-e.origin.Y)
		e.store.Update(e.dragID, func(a annot.Annotation) {
			if b, ok := a.(annot.Boxed); ok {
				b.MoveTo(x, y)
				b.Resize(w, h)
			}
		})
	}
}

// PointerUp feeds a pointer release at p.
func (e *Engine) PointerUp(p r2.Point) {
	switch e.st {
	case stateRectDragging:
		e.st = stateIdle
		x, y, w, h := annot.NormalizedRect(e.origin, p)
		if w > MinCommitSize && h > MinCommitSize {
			e.commitRect(x, y, w, h)
		}

	case stateFreehand:
		e.st = stateIdle
		pts := e.points
		e.points = nil
		if len(pts) >= 2 {
			e.commitDraw(pts)
		}

	case stateDragging, stateResizing:
		e.st = stateIdle
	}
}

// DoubleClick closes an in-progress polygon. Other tools ignore it.
func (e *Engine) DoubleClick(page int, p r2.Point) {
	if e.tool == Polygon {
		e.ClosePolygon()
	}
}

// ClosePolygon commits the accumulated vertices if at least three exist,
// then clears the in-progress list either way.
func (e *Engine) ClosePolygon() {
	pts := e.points
	e.points = nil
	if e.st != statePolygon {
		return
	}
	e.st = stateIdle
	if len(pts) < 3 {
		return
	}
	box := annot.PathBounds(pts)
	a := &annot.Polygon{
		Base:        annot.NewBase(e.page, box.X.Lo, box.Y.Lo),
		Points:      pts,
		Color:       e.opts.Color,
		StrokeWidth: e.opts.StrokeWidth,
		Opacity:     e.opts.Opacity,
		Box:         box,
	}
	e.store.Add(a)
}

// PendingText reports whether a text placement awaits confirmation.
func (e *Engine) PendingText() bool { return e.st == stateTextPending }

// ConfirmText commits the pending text entry. Empty text is discarded, the
// same as CancelText.
func (e *Engine) ConfirmText(text string) {
	if e.st != stateTextPending {
		return
	}
	e.st = stateIdle
	if text == "" {
		return
	}
	e.store.Add(&annot.Text{
		Base:     annot.NewBase(e.page, e.textPos.X, e.textPos.Y),
		Text:     text,
		FontSize: e.opts.FontSize,
		Color:    e.opts.Color,
	})
}

// CancelText abandons the pending text entry.
func (e *Engine) CancelText() {
	if e.st == stateTextPending {
		e.st = stateIdle
	}
}

// ToggleNote flips a sticky note between collapsed and expanded, as a
// discrete undoable step.
func (e *Engine) ToggleNote(id string) {
	a := e.store.Get(id)
	n, ok := a.(*annot.StickyNote)
	if !ok {
		return
	}
	expanded := !n.Expanded
	e.store.BeginTransaction()
	e.store.Update(id, func(a annot.Annotation) {
		if n, ok := a.(*annot.StickyNote); ok {
			n.Expanded = expanded
		}
	})
}

func (e *Engine) selectDown(page int, p r2.Point) {
	if h := e.handleAt(page, p); h >= 0 {
		b := e.store.Get(e.selected).(annot.Boxed)
		o := b.Origin()
		w, hh := b.Size()
		e.st = stateResizing
		e.page = page
		e.origin = p
		e.dragID = e.selected
		e.handle = h
		e.startX, e.startY, e.startW, e.startH = o.X, o.Y, w, hh
		e.store.BeginTransaction()
		return
	}

	a := e.hit(page, p)
	if a == nil {
		e.selected = ""
		return
	}
	e.selected = a.ID()
	e.st = stateDragging
	e.page = page
	e.origin = p
	e.dragID = a.ID()
	e.dragStart = a.Origin()
	e.store.BeginTransaction()
}

func (e *Engine) commitRect(x, y, w, h float64) {
	base := annot.NewBase(e.page, x, y)

	switch e.tool {
	case Highlight, Underline, Strikethrough:
		a := &annot.Highlight{
			Base:    base,
			Color:   e.opts.Color,
			Style:   highlightStyle(e.tool),
			Opacity: e.opts.Opacity,
		}
		a.Resize(w, h)
		e.store.Add(a)

	case Whiteout:
		a := &annot.Whiteout{Base: base}
		a.Resize(w, h)
		e.store.Add(a)

	case Rectangle, Ellipse, Line, Arrow:
		a := &annot.Shape{
			Base:        base,
			Kind:        shapeKind(e.tool),
			Color:       e.opts.Color,
			StrokeWidth: e.opts.StrokeWidth,
			Opacity:     e.opts.Opacity,
		}
		a.Resize(w, h)
		e.store.Add(a)

	case Callout:
		a := &annot.Callout{
			Base:     base,
			TailX:    x + w/2,
			TailY:    y + h + annot.CalloutTailDrop,
			FontSize: e.opts.FontSize,
			Color:    e.opts.Color,
			Opacity:  e.opts.Opacity,
		}
		a.Resize(w, h)
		e.store.Add(a)
	}
}

func (e *Engine) commitDraw(pts []r2.Point) {
	box := annot.PathBounds(pts)
	e.store.Add(&annot.Draw{
		Base:        annot.NewBase(e.page, box.X.Lo, box.Y.Lo),
		Path:        pts,
		Color:       e.opts.Color,
		StrokeWidth: e.opts.StrokeWidth,
		Opacity:     e.opts.Opacity,
		Box:         box,
	})
}

func (e *Engine) stampText() string {
	if e.opts.StampSymbol == annot.DateStamp {
		return e.now().Format("Jan 2, 2006")
	}
	return e.opts.StampSymbol
}

// AnnotationAt returns the topmost annotation under p on the page, or nil.
// The select and eraser tools use the same lookup.
func (e *Engine) AnnotationAt(page int, p r2.Point) annot.Annotation {
	return e.hit(page, p)
}

// hit returns the topmost annotation under p on the page, or nil.
func (e *Engine) hit(page int, p r2.Point) annot.Annotation {
	list := e.store.All()
	for i := len(list) - 1; i >= 0; i-- {
		a := list[i]
		if a.Page() == page && a.Bounds().ContainsPoint(p) {
			return a
		}
	}
	return nil
}

func highlightStyle(t Tool) annot.HighlightStyle {
	switch t {
	case Underline:
		return annot.StyleUnderline
	case Strikethrough:
		return annot.StyleStrikethrough
	default:
		return annot.StyleHighlight
	}
}

func shapeKind(t Tool) annot.ShapeKind {
	switch t {
	case Ellipse:
		return annot.ShapeEllipse
	case Line:
		return annot.ShapeLine
	case Arrow:
		return annot.ShapeArrow
	default:
		return annot.ShapeRect
	}
}
