package table

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/tiny64/fontconv/csource"
	"github.com/tiny64/fontconv/glyph"
)

// ErrNotFound is returned when the top-level table is not declared
var ErrNotFound = errors.New("table: top-level table not found")

// Source is a parsed table file whose top-level table has been located but
// whose sub-tables have not yet been resolved
type Source struct {
	Name string

	// Refs are the sub-table names in the order the top-level table
	// lists them
	Refs []string

	file *csource.File
}

// Parse tokenizes src and locates the top-level table called name
func Parse(src []byte, name string) (*Source, error) {
	if name == "" {
		name = DefaultName
	}

	f, err := csource.Parse(src)
	if err != nil {
		return nil, err
	}

	d, ok := f.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if len(d.Refs) == 0 {
		return nil, fmt.Errorf("table: %s on line %d does not reference any sub-tables", name, d.Line)
	}

	return &Source{
		Name: name,
		Refs: d.Refs,
		file: f,
	}, nil
}

func (s *Source) bitmap(d *csource.Decl) (glyph.Bitmap, error) {
	var b glyph.Bitmap
	if len(d.Values) != glyph.Size {
		return b, &RowsError{Name: d.Name, Line: d.Line, Rows: len(d.Values)}
	}
	for i, v := range d.Values {
		if v > 0xffff {
			return b, fmt.Errorf("table: %s row %d value %#x does not fit in 16 bits", d.Name, i, v)
		}
		b[i] = uint16(v)
	}
	return b, nil
}

// Table resolves every referenced sub-table. All unresolvable names are
// reported together and nothing is returned unless the result holds exactly
// one bitmap per codepoint.
func (s *Source) Table() (Table, error) {
	var missing []string
	t := make(Table, 0, len(s.Refs))

	for _, ref := range s.Refs {
		d, ok := s.file.Lookup(ref)
		if !ok {
			missing = append(missing, ref)
			continue
		}
		b, err := s.bitmap(d)
		if err != nil {
			return nil, err
		}
		t = append(t, b)
	}

	if len(missing) > 0 {
		return nil, &MissingError{Names: missing}
	}

	if rows := len(t) * glyph.Size; rows != Rows {
		return nil, fmt.Errorf("%w: %s holds %d rows, expected %d", ErrIncomplete, s.Name, rows, Rows)
	}

	return t, nil
}

// Decode reads a table written by Encode
func Decode(r io.Reader, name string) (Table, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	s, err := Parse(b, name)
	if err != nil {
		return nil, err
	}

	return s.Table()
}
