package fontconv

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/tiny64/fontconv/glyph"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// ErrFontNotFound is returned when the font file does not exist
var ErrFontNotFound = errors.New("font not found")

// Font is a TrueType or OpenType font sized so that one em is one glyph cell
type Font struct {
	// SHA1 identifies the font file contents
	SHA1 string

	face font.Face
}

// OpenFont reads and parses the font in file
func OpenFont(file string) (*Font, error) {
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFontNotFound, file)
		}
		return nil, err
	}
	defer f.Close()

	h := sha1.New()
	b, err := ioutil.ReadAll(io.TeeReader(f, h))
	if err != nil {
		return nil, err
	}

	otf, err := opentype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    glyph.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}

	return &Font{
		SHA1: fmt.Sprintf("%X", h.Sum(nil)),
		face: face,
	}, nil
}

// Close releases the font face
func (f *Font) Close() error {
	return f.face.Close()
}
