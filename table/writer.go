package table

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tiny64/fontconv/glyph"
)

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `'`, `\'`)

// label is the comment identifying a glyph, e.g. /*  65 ('A') */
func label(r rune) string {
	return fmt.Sprintf("/* %3d ('%s') */", r, escaper.Replace(string(r)))
}

type encoder struct {
	w    *bufio.Writer
	opts Options
}

func (e *encoder) glyph(i int, b *glyph.Bitmap) {
	r := Rune(i)
	fmt.Fprintln(e.w, label(r))
	fmt.Fprintf(e.w, "static const uint16_t %s%d[] = {\n", e.opts.Prefix, r)
	for _, row := range b {
		fmt.Fprintf(e.w, "    0x%04X,\n", row)
	}
	fmt.Fprint(e.w, "};\n\n")
}

func (e *encoder) encode(t Table) error {
	fmt.Fprintf(e.w, "#include \"%s\"\n\n", e.opts.Include)
	fmt.Fprintf(e.w, "/* %dx%d font generated from TTF for printable ASCII %d..%d */\n\n", glyph.Size, glyph.Size, glyph.First, glyph.Last)

	for i := range t {
		e.glyph(i, &t[i])
	}

	fmt.Fprintln(e.w, "/* Main font table: index 0 = space, index 95 = DEL */")
	fmt.Fprintf(e.w, "const uint16_t* %s[%d] = {\n", e.opts.Name, glyph.Count)
	for i := range t {
		sep := ","
		if i == len(t)-1 {
			sep = ""
		}
		fmt.Fprintf(e.w, "    %s%d%s\n", e.opts.Prefix, Rune(i), sep)
	}
	fmt.Fprintln(e.w, "};")

	return e.w.Flush()
}

// Encode writes t to w as C source. Only complete tables are written.
func Encode(w io.Writer, t Table, opts Options) error {
	if !t.Complete() {
		return ErrIncomplete
	}

	e := encoder{
		w:    bufio.NewWriter(w),
		opts: opts.withDefaults(),
	}

	return e.encode(t)
}
