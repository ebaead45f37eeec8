/*
Package glyph implements the 16 by 16 monochrome glyph bitmap used by the
kernel console font, and a rasterizer producing it from a TrueType face.

A bitmap is stored as sixteen 16-bit rows. Bit 15-col of a row is set when
the pixel in that column is ink, so the most significant bit is the leftmost
pixel. Serialized, each row is written big-endian which makes a glyph exactly
32 bytes.
*/
package glyph

import (
	"errors"
	"strings"
)

const (
	// Size is the width and height of every glyph in pixels
	Size = 16

	// First and Last bound the codepoints present in a font table
	First = 32
	Last  = 127

	// Count is the number of glyphs in a complete font table
	Count = Last - First + 1

	// Bytes is the serialized size of a single glyph
	Bytes = Size * 2
)

// Bitmap is a single 16 by 16 glyph. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Bitmap [Size]uint16

// At reports whether the pixel at (x, y) is ink
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return false
	}
	return b[y]&(1<<uint(Size-1-x)) != 0
}

// Set marks the pixel at (x, y) as ink
func (b *Bitmap) Set(x, y int) {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return
	}
	b[y] |= 1 << uint(Size-1-x)
}

// Empty reports whether the glyph has no ink at all
func (b *Bitmap) Empty() bool {
	for _, row := range b {
		if row != 0 {
			return false
		}
	}
	return true
}

// MarshalBinary returns the rows as big-endian byte pairs
func (b *Bitmap) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, Bytes)
	for _, row := range b {
		out = append(out, byte(row>>8), byte(row&0xff))
	}
	return out, nil
}

// UnmarshalBinary decodes exactly 32 bytes of big-endian rows
func (b *Bitmap) UnmarshalBinary(data []byte) error {
	if len(data) != Bytes {
		return errors.New("glyph: incorrect length")
	}
	for i := range b {
		b[i] = uint16(data[i<<1])<<8 | uint16(data[i<<1+1])
	}
	return nil
}

// String draws the glyph as text, one line per row
func (b *Bitmap) String() string {
	var sb strings.Builder
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b.At(x, y) {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Glyph is the result of rasterizing a single rune
type Glyph struct {
	Rune   rune
	Bitmap Bitmap

	// Fallback is set when the face has no glyph for Rune and its
	// default glyph was drawn instead
	Fallback bool
}

// Printable reports whether r is drawn with visible ink in a sane font, that
// is everything in the table except space and DEL
func Printable(r rune) bool {
	return r > First && r < Last
}
