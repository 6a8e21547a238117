// Package editor wires the annotation store, tool engine, page operation
// log and page renderer around one loaded document.
package editor

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/sirupsen/logrus"

	"github.com/MahmoudHassan77/toolzy-sub001/annot"
	"github.com/MahmoudHassan77/toolzy-sub001/export"
	"github.com/MahmoudHassan77/toolzy-sub001/pageops"
	"github.com/MahmoudHassan77/toolzy-sub001/render"
	"github.com/MahmoudHassan77/toolzy-sub001/tool"
)

// ErrBadDocument is returned when the source document cannot be parsed; no
// partial editor state is exposed.
var ErrBadDocument = errors.New("document cannot be parsed")

// Editor is one open document plus its markup state. It is single-threaded
// like the rest of the core: callers feed it one event at a time.
type Editor struct {
	original []byte
	doc      *render.Document
	store    *annot.Store
	ops      *pageops.Log
	engine   *tool.Engine
	scale    float64
	log      *logrus.Logger
}

// Option adjusts a freshly loaded editor.
type Option func(*Editor)

// WithScale sets the initial display zoom.
func WithScale(scale float64) Option {
	return func(e *Editor) {
		if scale > 0 {
			e.scale = scale
		}
	}
}

// WithLogger routes skip notices somewhere other than the standard logger.
func WithLogger(log *logrus.Logger) Option {
	return func(e *Editor) { e.log = log }
}

// Load parses the original document bytes and builds an empty markup state
// over them. sig may be nil if the signature tool is never used.
func Load(pdf []byte, sig tool.SignatureSource, opts ...Option) (*Editor, error) {
	reader, err := model.NewPdfReader(bytes.NewReader(pdf))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}
	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}
	if numPages == 0 {
		return nil, fmt.Errorf("%w: no pages", ErrBadDocument)
	}

	doc, err := render.Open(pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}

	store := annot.NewStore()
	e := &Editor{
		original: append([]byte(nil), pdf...),
		doc:      doc,
		store:    store,
		ops:      pageops.NewLog(numPages, store),
		engine:   tool.NewEngine(store, sig),
		scale:    1,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Store exposes the annotation store for direct mutations and undo/redo.
func (e *Editor) Store() *annot.Store { return e.store }

// Engine exposes the pointer state machine.
func (e *Editor) Engine() *tool.Engine { return e.engine }

// Renderer exposes the page metadata source.
func (e *Editor) Renderer() *render.Document { return e.doc }

// PageCount is the live page count after recorded page operations.
func (e *Editor) PageCount() int { return e.ops.PageCount() }

// Scale is the current display zoom.
func (e *Editor) Scale() float64 { return e.scale }

// SetScale changes the display zoom for subsequent metadata queries.
func (e *Editor) SetScale(scale float64) {
	if scale > 0 {
		e.scale = scale
	}
}

// RotatePage records a page rotation for export.
func (e *Editor) RotatePage(page, degrees int) error {
	return e.ops.Rotate(page, degrees)
}

// DeletePage removes a page and its annotations. Deleting the last
// remaining page is refused with pageops.ErrLastPage.
func (e *Editor) DeletePage(page int) error {
	return e.ops.Delete(page)
}

// MovePage reorders a page and remaps annotation indices.
func (e *Editor) MovePage(from, to int) error {
	return e.ops.Move(from, to)
}

// Export bakes the current annotations into a new document. It runs on a
// snapshot of the store taken now; edits made while it runs are neither
// lost nor included.
func (e *Editor) Export() (*export.Result, error) {
	return export.Bake(e.original, e.store.Snapshot(), e.ops.Operations(), export.Options{
		Scale:    e.scale,
		Renderer: e.doc,
		Log:      e.log,
	})
}

// Close releases rendering resources. The editor is unusable afterwards.
func (e *Editor) Close() error {
	return e.doc.Close()
}
