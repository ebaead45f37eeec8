package fontconv

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tiny64/fontconv/blob"
	"github.com/tiny64/fontconv/glyph"
	"github.com/tiny64/fontconv/table"
)

// Preview reads the byte array called array from the packed font in input
// and draws the glyphs for chars to w. An empty chars draws every glyph.
func (c *Converter) Preview(input, array, chars string, w io.Writer) error {
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := blob.Decode(f, array)
	if err != nil {
		return err
	}

	glyphs, err := blob.Unpack(data)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	if chars == "" {
		var sb strings.Builder
		for r := rune(glyph.First); r <= glyph.Last; r++ {
			sb.WriteRune(r)
		}
		chars = sb.String()
	}

	for _, r := range chars {
		i := table.Index(r)
		if i < 0 {
			return fmt.Errorf("%q is not in the font", r)
		}
		fmt.Fprintf(w, "%3d %q\n", r, r)
		for _, line := range strings.SplitAfter(glyphs[i].String(), "\n") {
			if line != "" {
				fmt.Fprintf(w, "    %s", line)
			}
		}
	}

	return nil
}
