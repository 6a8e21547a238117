package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/golang/geo/r2"
	colorful "github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
)

// rasterizeStroke plots a freehand path onto a transparent full-page canvas
// of w×h pixels. Coordinates and the stroke width are already in page
// pixels at the display scale, so no rescaling happens here.
func rasterizeStroke(w, h int, path []r2.Point, hex string, strokeWidth, opacity float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	col := color.NRGBA{A: uint8(clamp01(opacity) * 255)}
	if c, err := colorful.Hex(hex); err == nil {
		col.R = uint8(c.R * 255)
		col.G = uint8(c.G * 255)
		col.B = uint8(c.B * 255)
	}

	radius := strokeWidth / 2
	if radius < 0.5 {
		radius = 0.5
	}

	for i := 0; i+1 < len(path); i++ {
		plotSegment(img, path[i], path[i+1], radius, col)
	}
	return img
}

// plotSegment stamps a round brush along the segment at sub-pixel steps.
func plotSegment(img *image.NRGBA, a, b r2.Point, radius float64, col color.NRGBA) {
	dx, dy := b.X-a.X, b.Y-a.Y
	dist := math.Hypot(dx, dy)
	steps := int(dist*2) + 1

	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		stampBrush(img, a.X+dx*t, a.Y+dy*t, radius, col)
	}
}

func stampBrush(img *image.NRGBA, cx, cy, radius float64, col color.NRGBA) {
	x0, x1 := int(math.Floor(cx-radius)), int(math.Ceil(cx+radius))
	y0, y1 := int(math.Floor(cy-radius)), int(math.Ceil(cy+radius))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			fx, fy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if fx*fx+fy*fy <= radius*radius {
				img.SetNRGBA(x, y, col)
			}
		}
	}
}

// decodeBitmap decodes an opaque image payload and scales it down to at
// most maxW×maxH pixels so a high-resolution capture does not bloat the
// output document. Upscaling is never done; placement handles stretching.
func decodeBitmap(payload []byte, maxW, maxH int) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("decode bitmap payload: %w", err)
	}

	b := img.Bounds()
	if maxW <= 0 || maxH <= 0 || (b.Dx() <= maxW && b.Dy() <= maxH) {
		return img, nil
	}

	ratio := math.Min(float64(maxW)/float64(b.Dx()), float64(maxH)/float64(b.Dy()))
	dst := image.NewNRGBA(image.Rect(0, 0,
		int(math.Round(float64(b.Dx())*ratio)),
		int(math.Round(float64(b.Dy())*ratio))))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
