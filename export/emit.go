package export

import (
	"fmt"
	"image"
	"math"

	"github.com/mgmeyers/unipdf/v3/contentstream"
	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/sirupsen/logrus"

	"github.com/MahmoudHassan77/toolzy-sub001/annot"
	"github.com/MahmoudHassan77/toolzy-sub001/render"
)

const (
	// markLineWidth is the stroke, in screen units, of underlines and
	// strikethroughs (the annotation carries no width of its own).
	markLineWidth = 1.5
	// calloutRadius is the rounded-corner radius of callout boxes,
	// screen units.
	calloutRadius = 6.0
	// calloutTailHalf is half the width of the tail triangle base.
	calloutTailHalf = 6.0
	// noteFontSize is the type size of an expanded sticky note's text.
	noteFontSize = 11.0
	notePadding  = 8.0
	// kappa approximates a quarter circle with one cubic bezier.
	kappa = 0.5522847498
)

const (
	fontResource = core.PdfObjectName("TzF1")
	// symFontResource is the ZapfDingbats fallback for strings the Latin
	// font cannot encode, stamp symbols mostly.
	symFontResource = core.PdfObjectName("TzF2")
)

// emitter turns one page's annotations into a content stream appended to
// that page.
type emitter struct {
	page *model.PdfPage
	cc   *contentstream.ContentCreator
	ps   PageSpace
	m    render.PageMetrics
	log  *logrus.Logger

	gsSeq    int
	imSeq    int
	font     *model.PdfFont
	symFont  *model.PdfFont
	regFonts map[core.PdfObjectName]bool

	baked   int
	skipped int
}

func newEmitter(page *model.PdfPage, m render.PageMetrics, scale float64, log *logrus.Logger) *emitter {
	if page.Resources == nil {
		page.Resources = model.NewPdfPageResources()
	}
	return &emitter{
		page:     page,
		cc:       contentstream.NewContentCreator(),
		ps:       PageSpace{Scale: scale, Height: m.Height / scale},
		m:        m,
		log:      log,
		regFonts: map[core.PdfObjectName]bool{},
	}
}

func (e *emitter) flush() error {
	ops := e.cc.Bytes()
	if len(ops) == 0 {
		return nil
	}
	return e.page.AddContentStreamByString(string(ops))
}

func (e *emitter) emit(a annot.Annotation) {
	var err error
	switch v := a.(type) {
	case *annot.Highlight:
		err = e.highlight(v)
	case *annot.Whiteout:
		err = e.whiteout(v)
	case *annot.Text:
		err = e.text(v.X, v.Y, v.Text, v.FontSize, v.Color, 1)
	case *annot.Stamp:
		err = e.text(v.X, v.Y, v.Text, v.FontSize, v.Color, 1)
	case *annot.StickyNote:
		err = e.note(v)
	case *annot.Draw:
		err = e.freehand(v)
	case *annot.Shape:
		err = e.shape(v)
	case *annot.Polygon:
		err = e.polygon(v)
	case *annot.Callout:
		err = e.callout(v)
	case *annot.Signature:
		err = e.signature(v)
	default:
		err = fmt.Errorf("unknown annotation kind %q", a.Type())
	}

	if err != nil {
		e.log.Warnf("export: skipping %s annotation %s: %v", a.Type(), a.ID(), err)
		e.skipped++
		return
	}
	e.baked++
}

func (e *emitter) highlight(a *annot.Highlight) error {
	switch a.Style {
	case annot.StyleUnderline:
		return e.line(a.X, a.Y+a.Height, a.X+a.Width, a.Y+a.Height, a.Color, markLineWidth, a.Opacity)
	case annot.StyleStrikethrough:
		return e.line(a.X, a.Y+a.Height/2, a.X+a.Width, a.Y+a.Height/2, a.Color, markLineWidth, a.Opacity)
	}

	gs, err := e.alpha(a.Opacity)
	if err != nil {
		return err
	}
	r, g, b := hexRGB(a.Color)
	dx, dy := e.ps.ToDoc(a.X, a.Y+a.Height)
	e.cc.Add_q().
		Add_gs(gs).
		Add_rg(r, g, b).
		Add_re(dx, dy, e.ps.Len(a.Width), e.ps.Len(a.Height)).
		Add_f().
		Add_Q()
	return nil
}

func (e *emitter) whiteout(a *annot.Whiteout) error {
	dx, dy := e.ps.ToDoc(a.X, a.Y+a.Height)
	e.cc.Add_q().
		Add_rg(1, 1, 1).
		Add_re(dx, dy, e.ps.Len(a.Width), e.ps.Len(a.Height)).
		Add_f().
		Add_Q()
	return nil
}

func (e *emitter) shape(a *annot.Shape) error {
	gs, err := e.alpha(a.Opacity)
	if err != nil {
		return err
	}
	r, g, b := hexRGB(a.Color)
	e.cc.Add_q().
		Add_gs(gs).
		Add_RG(r, g, b).
		Add_w(e.ps.Len(a.StrokeWidth))

	switch a.Kind {
	case annot.ShapeEllipse:
		e.ellipsePath(a.X, a.Y, a.Width, a.Height)
	case annot.ShapeLine:
		e.movelineTo(a.X, a.Y, a.X+a.Width, a.Y+a.Height)
	case annot.ShapeArrow:
		e.movelineTo(a.X, a.Y, a.X+a.Width, a.Y+a.Height)
		e.arrowHead(a.X, a.Y, a.X+a.Width, a.Y+a.Height, a.StrokeWidth)
	default:
		dx, dy := e.ps.ToDoc(a.X, a.Y+a.Height)
		e.cc.Add_re(dx, dy, e.ps.Len(a.Width), e.ps.Len(a.Height))
	}

	e.cc.Add_S().Add_Q()
	return nil
}

func (e *emitter) polygon(a *annot.Polygon) error {
	gs, err := e.alpha(a.Opacity)
	if err != nil {
		return err
	}
	r, g, b := hexRGB(a.Color)
	e.cc.Add_q().
		Add_gs(gs).
		Add_RG(r, g, b).
		Add_w(e.ps.Len(a.StrokeWidth))
	for i, p := range a.Points {
		dx, dy := e.ps.ToDoc(p.X, p.Y)
		if i == 0 {
			e.cc.Add_m(dx, dy)
		} else {
			e.cc.Add_l(dx, dy)
		}
	}
	e.cc.Add_h().Add_S().Add_Q()
	return nil
}

func (e *emitter) freehand(a *annot.Draw) error {
	w := int(math.Ceil(e.m.Width))
	h := int(math.Ceil(e.m.Height))
	img := rasterizeStroke(w, h, a.Path, a.Color, a.StrokeWidth, a.Opacity)
	return e.placeImage(img, 0, 0, e.m.Width, e.m.Height)
}

func (e *emitter) callout(a *annot.Callout) error {
	gs, err := e.alpha(a.Opacity)
	if err != nil {
		return err
	}
	r, g, b := hexRGB(a.Color)

	// Body: white rounded box with a stroked border.
	e.cc.Add_q().
		Add_gs(gs).
		Add_rg(1, 1, 1).
		Add_RG(r, g, b).
		Add_w(e.ps.Len(markLineWidth))
	e.roundedRectPath(a.X, a.Y, a.Width, a.Height, calloutRadius)
	e.cc.Add_B()

	// Tail: open triangle from the bottom edge down to the tail point.
	baseX := a.X + a.Width/2
	e.movelineTo(baseX-calloutTailHalf, a.Y+a.Height, a.TailX, a.TailY)
	tx, ty := e.ps.ToDoc(baseX+calloutTailHalf, a.Y+a.Height)
	e.cc.Add_l(tx, ty).Add_S().Add_Q()

	if a.Text == "" {
		return nil
	}
	textW := float64(len([]rune(a.Text))) * a.FontSize * 0.6
	cx := a.X + a.Width/2 - textW/2
	cy := a.Y + a.Height/2 - a.FontSize*0.7
	return e.text(cx, cy, a.Text, a.FontSize, a.Color, 1)
}

func (e *emitter) note(a *annot.StickyNote) error {
	w, h := annot.NoteIconSize, annot.NoteIconSize
	if a.Expanded {
		w, h = annot.NoteExpandedWidth, annot.NoteExpandedHeight
	}

	gs, err := e.alpha(a.Opacity)
	if err != nil {
		return err
	}
	r, g, b := hexRGB(a.Color)
	dx, dy := e.ps.ToDoc(a.X, a.Y+h)
	e.cc.Add_q().
		Add_gs(gs).
		Add_rg(r, g, b).
		Add_RG(r*0.6, g*0.6, b*0.6).
		Add_w(e.ps.Len(1)).
		Add_re(dx, dy, e.ps.Len(w), e.ps.Len(h)).
		Add_B().
		Add_Q()

	if !a.Expanded || a.Text == "" {
		return nil
	}
	return e.text(a.X+notePadding, a.Y+notePadding, a.Text, noteFontSize, "#000000", 1)
}

func (e *emitter) signature(a *annot.Signature) error {
	// The placed box is already in page pixels at the display scale; a 2x
	// cap keeps some headroom for sharper output.
	img, err := decodeBitmap(a.Bitmap, int(a.Width*2), int(a.Height*2))
	if err != nil {
		return err
	}
	return e.placeImage(img, a.X, a.Y, a.Width, a.Height)
}

// text draws a single line anchored at screen (x, y) being the top of the
// glyph box, the way the editor positions text.
func (e *emitter) text(x, y float64, str string, size float64, hex string, opacity float64) error {
	res, raw, err := e.encodeText(str)
	if err != nil {
		return err
	}
	gs, err := e.alpha(opacity)
	if err != nil {
		return err
	}
	r, g, b := hexRGB(hex)
	dx, dy := e.ps.ToDoc(x, y+size)
	e.cc.Add_q().
		Add_gs(gs).
		Add_BT().
		Add_Tf(res, e.ps.Len(size)).
		Add_rg(r, g, b).
		Add_Td(dx, dy).
		Add_Tj(*core.MakeStringFromBytes(raw)).
		Add_ET().
		Add_Q()
	return nil
}

// encodeText maps the string to charcodes of a font able to show it and
// registers that font on the page. Helvetica handles the Latin range;
// whole-string symbols fall back to ZapfDingbats. Runes neither font
// covers are dropped with a notice.
func (e *emitter) encodeText(str string) (core.PdfObjectName, []byte, error) {
	font, err := e.latinFont()
	if err != nil {
		return "", nil, err
	}
	if encodesAll(font, str) {
		if err := e.useFont(fontResource, font); err != nil {
			return "", nil, err
		}
		return fontResource, font.Encoder().Encode(str), nil
	}

	sym, err := e.symbolFont()
	if err != nil {
		return "", nil, err
	}
	if encodesAll(sym, str) {
		if err := e.useFont(symFontResource, sym); err != nil {
			return "", nil, err
		}
		return symFontResource, sym.Encoder().Encode(str), nil
	}

	enc := font.Encoder()
	kept := make([]rune, 0, len(str))
	for _, r := range str {
		if _, ok := enc.RuneToCharcode(r); ok {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return "", nil, fmt.Errorf("no encodable characters in %q", str)
	}
	e.log.Warnf("export: dropping %d unencodable characters from %q", len([]rune(str))-len(kept), str)
	if err := e.useFont(fontResource, font); err != nil {
		return "", nil, err
	}
	return fontResource, enc.Encode(string(kept)), nil
}

func encodesAll(font *model.PdfFont, str string) bool {
	enc := font.Encoder()
	for _, r := range str {
		if _, ok := enc.RuneToCharcode(r); !ok {
			return false
		}
	}
	return true
}

func (e *emitter) line(x1, y1, x2, y2 float64, hex string, width, opacity float64) error {
	gs, err := e.alpha(opacity)
	if err != nil {
		return err
	}
	r, g, b := hexRGB(hex)
	e.cc.Add_q().
		Add_gs(gs).
		Add_RG(r, g, b).
		Add_w(e.ps.Len(width))
	e.movelineTo(x1, y1, x2, y2)
	e.cc.Add_S().Add_Q()
	return nil
}

// movelineTo appends a screen-space segment to the current path.
func (e *emitter) movelineTo(x1, y1, x2, y2 float64) {
	mx, my := e.ps.ToDoc(x1, y1)
	lx, ly := e.ps.ToDoc(x2, y2)
	e.cc.Add_m(mx, my).Add_l(lx, ly)
}

func (e *emitter) arrowHead(x1, y1, x2, y2, strokeWidth float64) {
	length := 10.0
	if l := strokeWidth * 3; l > length {
		length = l
	}
	theta := math.Atan2(y2-y1, x2-x1)
	for _, da := range []float64{-math.Pi / 6, math.Pi / 6} {
		hx := x2 - length*math.Cos(theta+da)
		hy := y2 - length*math.Sin(theta+da)
		e.movelineTo(x2, y2, hx, hy)
	}
}

// ellipsePath approximates the ellipse inscribed in the screen rect with
// four beziers.
func (e *emitter) ellipsePath(x, y, w, h float64) {
	cx, cy := e.ps.ToDoc(x+w/2, y+h/2)
	rx, ry := e.ps.Len(w/2), e.ps.Len(h/2)
	kx, ky := rx*kappa, ry*kappa

	e.cc.Add_m(cx+rx, cy).
		Add_c(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry).
		Add_c(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy).
		Add_c(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry).
		Add_c(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
}

// roundedRectPath builds the callout body path from the screen rect.
func (e *emitter) roundedRectPath(x, y, w, h, radius float64) {
	r := radius
	if half := math.Min(w, h) / 2; r > half {
		r = half
	}

	// Work in doc space with (bx, by) the bottom-left corner.
	bx, by := e.ps.ToDoc(x, y+h)
	dw, dh, dr := e.ps.Len(w), e.ps.Len(h), e.ps.Len(r)
	k := dr * kappa

	e.cc.Add_m(bx+dr, by).
		Add_l(bx+dw-dr, by).
		Add_c(bx+dw-dr+k, by, bx+dw, by+dr-k, bx+dw, by+dr).
		Add_l(bx+dw, by+dh-dr).
		Add_c(bx+dw, by+dh-dr+k, bx+dw-dr+k, by+dh, bx+dw-dr, by+dh).
		Add_l(bx+dr, by+dh).
		Add_c(bx+dr-k, by+dh, bx, by+dh-dr+k, bx, by+dh-dr).
		Add_l(bx, by+dr).
		Add_c(bx, by+dr-k, bx+dr-k, by, bx+dr, by).
		Add_h()
}

// placeImage registers the image as a page XObject and maps it onto the
// screen rect (x, y, w, h).
func (e *emitter) placeImage(img image.Image, x, y, w, h float64) error {
	pimg, err := model.ImageHandling.NewImageFromGoImage(img)
	if err != nil {
		return fmt.Errorf("convert bitmap: %w", err)
	}
	ximg, err := model.NewXObjectImageFromImage(pimg, nil, core.NewFlateEncoder())
	if err != nil {
		return fmt.Errorf("embed bitmap: %w", err)
	}

	e.imSeq++
	name := core.PdfObjectName(fmt.Sprintf("TzIm%d", e.imSeq))
	if err := e.page.Resources.SetXObjectImageByName(name, ximg); err != nil {
		return fmt.Errorf("register bitmap: %w", err)
	}

	dx, dy := e.ps.ToDoc(x, y+h)
	e.cc.Add_q().
		Add_cm(e.ps.Len(w), 0, 0, e.ps.Len(h), dx, dy).
		Add_Do(name).
		Add_Q()
	return nil
}

// alpha registers an ExtGState carrying the fill and stroke alpha and
// returns its resource name.
func (e *emitter) alpha(opacity float64) (core.PdfObjectName, error) {
	v := clamp01(opacity)
	dict := core.MakeDict()
	dict.Set("Type", core.MakeName("ExtGState"))
	dict.Set("ca", core.MakeFloat(v))
	dict.Set("CA", core.MakeFloat(v))

	e.gsSeq++
	name := core.PdfObjectName(fmt.Sprintf("TzGs%d", e.gsSeq))
	if err := e.page.Resources.AddExtGState(name, core.MakeIndirectObject(dict)); err != nil {
		return "", fmt.Errorf("register graphics state: %w", err)
	}
	return name, nil
}

// latinFont is the Helvetica font used for regular baked text, loaded on
// first use.
func (e *emitter) latinFont() (*model.PdfFont, error) {
	if e.font == nil {
		font, err := model.NewStandard14Font("Helvetica")
		if err != nil {
			return nil, fmt.Errorf("load standard font: %w", err)
		}
		e.font = font
	}
	return e.font, nil
}

// symbolFont is the ZapfDingbats fallback, loaded on first use.
func (e *emitter) symbolFont() (*model.PdfFont, error) {
	if e.symFont == nil {
		font, err := model.NewStandard14Font("ZapfDingbats")
		if err != nil {
			return nil, fmt.Errorf("load standard font: %w", err)
		}
		e.symFont = font
	}
	return e.symFont, nil
}

// useFont registers the font resource on the page once.
func (e *emitter) useFont(res core.PdfObjectName, font *model.PdfFont) error {
	if e.regFonts[res] {
		return nil
	}
	if err := e.page.Resources.SetFontByName(res, font.ToPdfObject()); err != nil {
		return fmt.Errorf("register font: %w", err)
	}
	e.regFonts[res] = true
	return nil
}
