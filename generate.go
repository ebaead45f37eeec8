package fontconv

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/tiny64/fontconv/glyph"
	"github.com/tiny64/fontconv/table"
)

// GenerateOptions control the first conversion stage
type GenerateOptions struct {
	Table table.Options

	// Strict rejects the font if any printable character had to be drawn
	// with its fallback glyph
	Strict bool

	// Refresh discards any cached glyphs for the font first
	Refresh bool
}

// FallbackError lists the printable characters missing from a font
type FallbackError struct {
	Runes []rune
}

func (e *FallbackError) Error() string {
	s := make([]string, 0, len(e.Runes))
	for _, r := range e.Runes {
		s = append(s, fmt.Sprintf("%d (%q)", r, r))
	}
	return fmt.Sprintf("font has no glyph for %s", strings.Join(s, ", "))
}

func (c *Converter) glyph(f *Font, r *glyph.Rasterizer, cp rune) (glyph.Glyph, error) {
	if c.db != nil {
		g, ok, err := c.db.FindGlyph(f.SHA1, glyph.Size, cp)
		if err != nil {
			return glyph.Glyph{}, err
		}
		if ok {
			return g, nil
		}
	}

	g, err := r.Rasterize(cp)
	if err != nil {
		return glyph.Glyph{}, err
	}

	if c.db != nil {
		if err := c.db.AddGlyph(f.SHA1, glyph.Size, g); err != nil {
			return glyph.Glyph{}, err
		}
	}

	return g, nil
}

func (c *Converter) rasterize(f *Font, strict bool) (table.Table, error) {
	r := glyph.NewRasterizer(f.face)
	t := make(table.Table, 0, glyph.Count)

	var missing []rune
	for cp := rune(glyph.First); cp <= glyph.Last; cp++ {
		g, err := c.glyph(f, r, cp)
		if err != nil {
			return nil, err
		}
		if g.Fallback {
			c.logger.Printf("No glyph for %d (%q), using the font's default glyph\n", cp, cp)
			if strict && glyph.Printable(cp) {
				missing = append(missing, cp)
			}
		}
		if err := t.Append(g.Bitmap); err != nil {
			return nil, err
		}
	}

	if len(missing) > 0 {
		return nil, &FallbackError{Runes: missing}
	}

	return t, nil
}

// Generate rasterizes every codepoint from the font in fontFile and writes
// the resulting table as C source to output. Nothing is written unless every
// glyph was rasterized.
func (c *Converter) Generate(fontFile, output string, opts GenerateOptions) error {
	f, err := OpenFont(fontFile)
	if err != nil {
		return err
	}
	defer f.Close()

	c.logger.Printf("Loaded \"%s\", SHA1 %s\n", fontFile, f.SHA1)

	if opts.Refresh && c.db != nil {
		n, err := c.db.Forget(f.SHA1)
		if err != nil {
			return err
		}
		c.logger.Printf("Discarded %d cached glyphs\n", n)
	}

	t, err := c.rasterize(f, opts.Strict)
	if err != nil {
		return err
	}

	b := new(bytes.Buffer)
	if err := table.Encode(b, t, opts.Table); err != nil {
		return err
	}

	return writeFile(output, b.Bytes())
}

func writeFile(file string, b []byte) (err error) {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = f.Write(b)
	return err
}
