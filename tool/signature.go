package tool

import (
	"github.com/golang/geo/r2"

	"github.com/MahmoudHassan77/toolzy-sub001/annot"
)

// SignatureSource is the external drawing surface that captures a signature
// bitmap. Request must not block; the source resolves or cancels the
// request later, from the same event loop.
type SignatureSource interface {
	Request(r *SignatureRequest)
}

// SignatureRequest is a pending signature placement. Exactly one request is
// live at a time: a newer placement supersedes the old one, whose Resolve
// then does nothing.
type SignatureRequest struct {
	engine  *Engine
	page    int
	pos     r2.Point
	settled bool
}

// Page is the page the signature will land on.
func (r *SignatureRequest) Page() int { return r.page }

// Pos is the screen position the signature will anchor at.
func (r *SignatureRequest) Pos() r2.Point { return r.pos }

// Resolve commits the signature annotation with the captured bitmap and its
// placed size in screen units. A settled or superseded request is a no-op.
func (r *SignatureRequest) Resolve(bitmap []byte, width, height float64) {
	if r.settled || r.engine.pending != r {
		return
	}
	r.settled = true
	r.engine.pending = nil

	a := &annot.Signature{
		Base:   annot.NewBase(r.page, r.pos.X, r.pos.Y),
		Bitmap: bitmap,
	}
	a.Resize(width, height)
	r.engine.store.Add(a)
}

// Cancel abandons the request; no annotation is created.
func (r *SignatureRequest) Cancel() {
	r.settled = true
	if r.engine.pending == r {
		r.engine.pending = nil
	}
}

func (e *Engine) requestSignature(page int, p r2.Point) {
	if e.sig == nil {
		return
	}
	if e.pending != nil {
		e.pending.Cancel()
	}
	r := &SignatureRequest{engine: e, page: page, pos: p}
	e.pending = r
	e.sig.Request(r)
}

// PendingSignature reports whether a signature capture is outstanding.
func (e *Engine) PendingSignature() bool { return e.pending != nil }
