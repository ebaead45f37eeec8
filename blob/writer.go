package blob

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tiny64/fontconv/glyph"
)

const bytesPerLine = 16

// Encode writes data to w as a C byte array followed by a size constant
// defined as the array's storage size
func Encode(w io.Writer, data []byte, opts Options) error {
	if len(data)%2 != 0 {
		return errOdd
	}

	opts = opts.withDefaults()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "#include \"%s\"\n\n", opts.Include)
	fmt.Fprintf(bw, "// Embedded bitmap font data (%dx%d pixels, %d characters, %d bytes each)\n", glyph.Size, glyph.Size, glyph.Count, glyph.Bytes)
	fmt.Fprintf(bw, "// Characters %d-%d (space to delete)\n", glyph.First, glyph.Last)
	fmt.Fprintf(bw, "const unsigned char %s[] = {\n", opts.Array)

	line := make([]string, 0, bytesPerLine)
	for i := 0; i < len(data); i += bytesPerLine {
		line = line[:0]
		end := i + bytesPerLine
		if end > len(data) {
			end = len(data)
		}
		for _, b := range data[i:end] {
			line = append(line, fmt.Sprintf("0x%02X", b))
		}
		fmt.Fprintf(bw, "    %s,\n", strings.Join(line, ", "))
	}

	fmt.Fprint(bw, "};\n\n")
	fmt.Fprintf(bw, "const size_t %s = sizeof(%s);\n", opts.SizeName, opts.Array)

	return bw.Flush()
}
