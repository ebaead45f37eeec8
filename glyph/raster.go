package glyph

import (
	"errors"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Canvas margin, max(2, Size/8), so ink spilling past the advance box is
// not clipped before centering
const pad = 2

// Luminance below this is ink
const threshold = 128

var errNoFace = errors.New("glyph: no font face")

// Rasterizer renders runes from a font face into Bitmaps. It reuses its
// canvas so it must not be shared between goroutines.
type Rasterizer struct {
	face   font.Face
	canvas *image.Gray
}

// NewRasterizer returns a Rasterizer drawing with face. The face should be
// sized so that one em is Size pixels.
func NewRasterizer(face font.Face) *Rasterizer {
	return &Rasterizer{
		face:   face,
		canvas: image.NewGray(image.Rect(0, 0, Size+2*pad, Size+2*pad)),
	}
}

// floorDiv divides rounding towards negative infinity so that glyphs wider
// than the cell are offset the same way as narrow ones
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// inkBounds returns the pixel bounding box of r relative to the drawing
// origin on the baseline
func (r *Rasterizer) inkBounds(c rune) (image.Rectangle, bool) {
	b, _, ok := r.face.GlyphBounds(c)
	return image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil()), ok
}

// Rasterize draws c centered in a Size by Size cell and thresholds it into a
// Bitmap. Missing glyphs are drawn using whatever default glyph the face
// provides and flagged as a fallback.
func (r *Rasterizer) Rasterize(c rune) (Glyph, error) {
	if r.face == nil {
		return Glyph{}, errNoFace
	}

	bbox, ok := r.inkBounds(c)

	// Center the ink box in the cell, correcting for its own origin
	x := pad + floorDiv(Size-bbox.Dx(), 2) - bbox.Min.X
	y := pad + floorDiv(Size-bbox.Dy(), 2) - bbox.Min.Y

	draw.Draw(r.canvas, r.canvas.Bounds(), image.White, image.Point{}, draw.Src)

	dr, mask, maskp, _, _ := r.face.Glyph(fixed.P(x, y), c)
	if !dr.Empty() && mask != nil {
		draw.DrawMask(r.canvas, dr, image.Black, image.Point{}, mask, maskp, draw.Over)
	}

	g := Glyph{
		Rune:     c,
		Fallback: !ok,
	}
	for row := 0; row < Size; row++ {
		var v uint16
		for col := 0; col < Size; col++ {
			if r.canvas.GrayAt(pad+col, pad+row).Y < threshold {
				v |= 1 << uint(Size-1-col)
			}
		}
		g.Bitmap[row] = v
	}

	return g, nil
}
