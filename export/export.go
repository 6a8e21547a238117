package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/sirupsen/logrus"

	"github.com/MahmoudHassan77/toolzy-sub001/annot"
	"github.com/MahmoudHassan77/toolzy-sub001/pageops"
	"github.com/MahmoudHassan77/toolzy-sub001/render"
)

// Options configures a bake.
type Options struct {
	// Scale is the display zoom annotations were placed at. Zero means 1.
	Scale float64
	// Renderer supplies per-page pixel metrics, indexed by source page.
	Renderer render.Renderer
	// Log receives skip notices. Defaults to the standard logger.
	Log *logrus.Logger
}

// Result is a finished bake.
type Result struct {
	PDF     []byte
	Baked   int
	Skipped int
}

// Bake rebuilds the original document with the page operation log replayed
// and every annotation converted into native draw commands. It works on the
// caller's snapshot: later edits to the live store are not reflected.
//
// A bitmap that fails to decode skips that one annotation (logged); the
// bake still completes.
func Bake(original []byte, annots []annot.Annotation, ops []pageops.Op, opts Options) (*Result, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Renderer == nil {
		return nil, errors.New("export: no page renderer supplied")
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	reader, err := model.NewPdfReader(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("parse source document: %w", err)
	}
	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, fmt.Errorf("read page count: %w", err)
	}

	pages := make([]*model.PdfPage, 0, numPages)
	// srcIdx maps the output page position back to the source page, so the
	// renderer is always asked about the page that actually ends up there.
	srcIdx := make([]int, 0, numPages)
	for i := 0; i < numPages; i++ {
		page, err := reader.GetPage(i + 1)
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", i, err)
		}
		pages = append(pages, page)
		srcIdx = append(srcIdx, i)
	}

	pages, srcIdx = replay(pages, srcIdx, ops)

	byPage := make(map[int][]annot.Annotation)
	res := &Result{}
	for _, a := range annots {
		p := a.Page()
		if p < 0 || p >= len(pages) {
			log.Warnf("export: annotation %s references page %d of %d, skipping", a.ID(), p, len(pages))
			res.Skipped++
			continue
		}
		byPage[p] = append(byPage[p], a)
	}

	for pi, page := range pages {
		list := byPage[pi]
		if len(list) == 0 {
			continue
		}
		metrics, err := opts.Renderer.PageSize(srcIdx[pi], opts.Scale)
		if err != nil {
			return nil, fmt.Errorf("page %d metrics: %w", pi, err)
		}
		em := newEmitter(page, metrics, opts.Scale, log)
		for _, a := range list {
			em.emit(a)
		}
		if err := em.flush(); err != nil {
			return nil, fmt.Errorf("page %d content: %w", pi, err)
		}
		res.Baked += em.baked
		res.Skipped += em.skipped
	}

	writer := model.NewPdfWriter()
	for pi, page := range pages {
		if err := writer.AddPage(page); err != nil {
			return nil, fmt.Errorf("assemble page %d: %w", pi, err)
		}
	}
	var buf bytes.Buffer
	if err := writer.Write(&buf); err != nil {
		return nil, fmt.Errorf("write output document: %w", err)
	}
	res.PDF = buf.Bytes()
	return res, nil
}

// replay applies the operation log, in record order, to the output page
// list. Annotation indices were already remapped when each op was issued,
// so only the page structure moves here. Ops were range-checked at issue
// time; stale ones are ignored rather than corrupting the list.
func replay(pages []*model.PdfPage, srcIdx []int, ops []pageops.Op) ([]*model.PdfPage, []int) {
	for _, op := range ops {
		switch o := op.(type) {
		case pageops.Rotate:
			if o.Page < 0 || o.Page >= len(pages) {
				continue
			}
			rotatePage(pages[o.Page], o.Degrees)

		case pageops.Delete:
			if o.Page < 0 || o.Page >= len(pages) || len(pages) <= 1 {
				continue
			}
			pages = append(pages[:o.Page], pages[o.Page+1:]...)
			srcIdx = append(srcIdx[:o.Page], srcIdx[o.Page+1:]...)

		case pageops.Move:
			if o.From < 0 || o.From >= len(pages) || o.To < 0 || o.To >= len(pages) {
				continue
			}
			page, src := pages[o.From], srcIdx[o.From]
			pages = append(pages[:o.From], pages[o.From+1:]...)
			srcIdx = append(srcIdx[:o.From], srcIdx[o.From+1:]...)
			pages = append(pages[:o.To], append([]*model.PdfPage{page}, pages[o.To:]...)...)
			srcIdx = append(srcIdx[:o.To], append([]int{src}, srcIdx[o.To:]...)...)
		}
	}
	return pages, srcIdx
}

func rotatePage(page *model.PdfPage, degrees int) {
	current := int64(0)
	if page.Rotate != nil {
		current = *page.Rotate
	}
	v := ((current+int64(degrees))%360 + 360) % 360
	page.Rotate = &v
}
