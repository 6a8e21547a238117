// Package render supplies per-page display metadata from the original
// document bytes, backed by go-fitz.
package render

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// PageMetrics is the pixel size of a page at a given display scale.
type PageMetrics struct {
	Width, Height float64
}

// Renderer answers page-size queries for the export transform. The editor
// asks once per page per scale and results are cached behind it.
type Renderer interface {
	PageSize(page int, scale float64) (PageMetrics, error)
}

// fitz renders at 72 DPI for a scale of 1, so a PDF point maps to one
// screen unit before zoom.
const baseDPI = 72.0

// Document wraps a fitz document with a metrics cache.
type Document struct {
	doc   *fitz.Document
	pages int
	// base holds the unscaled point size of each measured page. fitz has
	// no size query, so the page is rendered once at the base DPI, where
	// one pixel equals one point.
	base map[int]PageMetrics
}

// Open parses the original document bytes for display queries.
func Open(pdf []byte) (*Document, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("open document for rendering: %w", err)
	}
	return &Document{
		doc:   doc,
		pages: doc.NumPage(),
		base:  map[int]PageMetrics{},
	}, nil
}

// NumPages is the page count of the source document.
func (d *Document) NumPages() int { return d.pages }

// PageSize returns the pixel dimensions of a page at the given scale.
func (d *Document) PageSize(page int, scale float64) (PageMetrics, error) {
	if page < 0 || page >= d.pages {
		return PageMetrics{}, fmt.Errorf("render page %d: out of range [0,%d)", page, d.pages)
	}
	m, ok := d.base[page]
	if !ok {
		img, err := d.doc.ImageDPI(page, baseDPI)
		if err != nil {
			return PageMetrics{}, fmt.Errorf("measure page %d: %w", page, err)
		}
		b := img.Bounds()
		m = PageMetrics{Width: float64(b.Dx()), Height: float64(b.Dy())}
		d.base[page] = m
	}
	return PageMetrics{Width: m.Width * scale, Height: m.Height * scale}, nil
}

// Image rasterizes a page at the given scale, for previews.
func (d *Document) Image(page int, scale float64) (image.Image, error) {
	if page < 0 || page >= d.pages {
		return nil, fmt.Errorf("render page %d: out of range [0,%d)", page, d.pages)
	}
	img, err := d.doc.ImageDPI(page, baseDPI*scale)
	if err != nil {
		return nil, fmt.Errorf("rasterize page %d: %w", page, err)
	}
	return img, nil
}

// Close releases the underlying fitz document.
func (d *Document) Close() error {
	return d.doc.Close()
}
