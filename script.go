package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/golang/geo/r2"

	"github.com/MahmoudHassan77/toolzy-sub001/annot"
	"github.com/MahmoudHassan77/toolzy-sub001/editor"
	"github.com/MahmoudHassan77/toolzy-sub001/tool"
)

// markupScript is the JSON description of a markup session: annotations are
// replayed through the tool engine as synthetic gestures, then page
// operations are applied in order.
type markupScript struct {
	Scale       float64        `json:"scale,omitempty"`
	Annotations []scriptAnnot  `json:"annotations"`
	PageOps     []scriptPageOp `json:"pageOps"`
}

type scriptAnnot struct {
	Tool string  `json:"tool"`
	Page int     `json:"page"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`

	Width  float64      `json:"width,omitempty"`
	Height float64      `json:"height,omitempty"`
	Path   [][2]float64 `json:"path,omitempty"`

	Text     string `json:"text,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Expanded bool   `json:"expanded,omitempty"`
	Image    string `json:"image,omitempty"`

	Color       string  `json:"color,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
}

type scriptPageOp struct {
	Op      string `json:"op"`
	Page    int    `json:"page"`
	Degrees int    `json:"degrees,omitempty"`
	From    int    `json:"from"`
	To      int    `json:"to"`
}

func loadScript(path string) (*markupScript, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s markupScript
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse markup script: %w", err)
	}
	return &s, nil
}

func (s *markupScript) apply(ed *editor.Editor, sig *fileSignatureSource) error {
	eng := ed.Engine()

	for i, a := range s.Annotations {
		if err := applyAnnot(eng, sig, a, ed); err != nil {
			return fmt.Errorf("annotation %d (%s): %w", i, a.Tool, err)
		}
	}

	for i, op := range s.PageOps {
		var err error
		switch op.Op {
		case "rotate":
			err = ed.RotatePage(op.Page, op.Degrees)
		case "delete":
			err = ed.DeletePage(op.Page)
		case "move":
			err = ed.MovePage(op.From, op.To)
		default:
			err = fmt.Errorf("unknown op %q", op.Op)
		}
		if err != nil {
			return fmt.Errorf("page op %d: %w", i, err)
		}
	}
	return nil
}

func applyAnnot(eng *tool.Engine, sig *fileSignatureSource, a scriptAnnot, ed *editor.Editor) error {
	opts := eng.Options()
	if a.Color != "" {
		opts.Color = a.Color
	}
	if a.StrokeWidth > 0 {
		opts.StrokeWidth = a.StrokeWidth
	}
	if a.FontSize > 0 {
		opts.FontSize = a.FontSize
	}
	if a.Opacity > 0 {
		opts.Opacity = a.Opacity
	}
	if a.Symbol != "" {
		opts.StampSymbol = a.Symbol
	}
	if err := eng.SetOptions(opts); err != nil {
		return err
	}

	t := tool.Tool(a.Tool)
	eng.SetTool(t)
	at := r2.Point{X: a.X, Y: a.Y}

	switch t {
	case tool.Highlight, tool.Underline, tool.Strikethrough, tool.Whiteout,
		tool.Rectangle, tool.Ellipse, tool.Line, tool.Arrow, tool.Callout:
		eng.PointerDown(a.Page, at)
		eng.PointerUp(r2.Point{X: a.X + a.Width, Y: a.Y + a.Height})
		if t == tool.Callout && a.Text != "" {
			setCalloutText(ed, a.Text)
		}

	case tool.Freehand:
		if len(a.Path) < 2 {
			return fmt.Errorf("freehand path needs at least 2 points, got %d", len(a.Path))
		}
		eng.PointerDown(a.Page, pathPoint(a.Path[0]))
		for _, p := range a.Path[1:] {
			eng.PointerMove(pathPoint(p))
		}
		eng.PointerUp(pathPoint(a.Path[len(a.Path)-1]))

	case tool.Polygon:
		for _, p := range a.Path {
			eng.PointerDown(a.Page, pathPoint(p))
		}
		eng.ClosePolygon()

	case tool.Text:
		eng.PointerDown(a.Page, at)
		eng.ConfirmText(a.Text)

	case tool.Stamp, tool.StickyNote:
		eng.PointerDown(a.Page, at)
		if t == tool.StickyNote {
			if a.Text != "" {
				setNoteText(ed, a.Text)
			}
			if a.Expanded {
				eng.ToggleNote(lastID(ed))
			}
		}

	case tool.Signature:
		payload, err := os.ReadFile(a.Image)
		if err != nil {
			return fmt.Errorf("signature image: %w", err)
		}
		sig.arm(payload, a.Width, a.Height)
		eng.PointerDown(a.Page, at)

	default:
		return fmt.Errorf("unknown tool %q", a.Tool)
	}
	return nil
}

func pathPoint(p [2]float64) r2.Point {
	return r2.Point{X: p[0], Y: p[1]}
}

func lastID(ed *editor.Editor) string {
	all := ed.Store().All()
	if len(all) == 0 {
		return ""
	}
	return all[len(all)-1].ID()
}

func setCalloutText(ed *editor.Editor, text string) {
	ed.Store().Update(lastID(ed), func(a annot.Annotation) {
		if c, ok := a.(*annot.Callout); ok {
			c.Text = text
		}
	})
}

func setNoteText(ed *editor.Editor, text string) {
	ed.Store().Update(lastID(ed), func(a annot.Annotation) {
		if n, ok := a.(*annot.StickyNote); ok {
			n.Text = text
		}
	})
}

// fileSignatureSource resolves each signature request immediately with the
// bitmap armed for the current script entry. The interactive app hands the
// request to a drawing surface instead.
type fileSignatureSource struct {
	payload []byte
	w, h    float64
}

func (s *fileSignatureSource) arm(payload []byte, w, h float64) {
	s.payload = payload
	if w <= 0 {
		w = 120
	}
	if h <= 0 {
		h = 60
	}
	s.w, s.h = w, h
}

func (s *fileSignatureSource) Request(r *tool.SignatureRequest) {
	if s.payload == nil {
		r.Cancel()
		return
	}
	r.Resolve(s.payload, s.w, s.h)
	s.payload = nil
}
