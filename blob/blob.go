/*
Package blob implements the packed byte form of the kernel font, the array
the kernel embeds as read-only data.

Every row of every glyph is written as two bytes, high byte first, in glyph
order then row order. A complete font of 96 glyphs of 16 rows is therefore
exactly 3072 bytes, and the row value at flattened index k is
byte[2k]<<8 | byte[2k+1]. There is no header, padding or compression.
*/
package blob

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tiny64/fontconv/glyph"
)

const (
	// Size is the length in bytes of a complete font
	Size = glyph.Count * glyph.Bytes

	// DefaultInclude is the kernel header included by generated files
	DefaultInclude = "../include/kernel.h"

	// DefaultArray names the byte array
	DefaultArray = "inter_font_data"

	// DefaultSize names the size constant
	DefaultSize = "inter_font_size"
)

var (
	errGlyphCount = fmt.Errorf("blob: font must hold exactly %d glyphs", glyph.Count)
	errLength     = fmt.Errorf("blob: font data must be exactly %d bytes", Size)
	errOdd        = errors.New("blob: odd number of bytes")
)

// Pack serializes glyphs into the flat big-endian form
func Pack(glyphs []glyph.Bitmap) ([]byte, error) {
	if len(glyphs) != glyph.Count {
		return nil, errGlyphCount
	}

	b := new(bytes.Buffer)
	b.Grow(Size)
	for i := range glyphs {
		data, err := glyphs[i].MarshalBinary()
		if err != nil {
			return nil, err
		}
		if _, err := b.Write(data); err != nil {
			return nil, err
		}
	}

	if b.Len() != Size {
		return nil, errLength
	}

	return b.Bytes(), nil
}

// Unpack reverses Pack
func Unpack(data []byte) ([]glyph.Bitmap, error) {
	if len(data)%2 != 0 {
		return nil, errOdd
	}
	if len(data) != Size {
		return nil, errLength
	}

	glyphs := make([]glyph.Bitmap, glyph.Count)
	for i := range glyphs {
		if err := glyphs[i].UnmarshalBinary(data[i*glyph.Bytes : (i+1)*glyph.Bytes]); err != nil {
			return nil, err
		}
	}
	return glyphs, nil
}

// Options control the names used in the generated source
type Options struct {
	Include  string
	Array    string
	SizeName string
}

// DefaultOptions returns the names the kernel expects
func DefaultOptions() Options {
	return Options{
		Include:  DefaultInclude,
		Array:    DefaultArray,
		SizeName: DefaultSize,
	}
}

func (o Options) withDefaults() Options {
	if o.Include == "" {
		o.Include = DefaultInclude
	}
	if o.Array == "" {
		o.Array = DefaultArray
	}
	if o.SizeName == "" {
		o.SizeName = DefaultSize
	}
	return o
}
