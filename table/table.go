// Package table implements the intermediate C source form of the kernel font.
//
// A table is written as one static array of sixteen 16-bit rows per codepoint
// from 32 to 127, each preceded by a comment naming the character, followed by
// a 96 entry array of pointers to them in codepoint order:
//
//	#include "../include/kernel.h"
//
//	/*  65 ('A') */
//	static const uint16_t inter_font_65[] = {
//	    0x0000,
//	    ...
//	};
//
//	/* Main font table: index 0 = space, index 95 = DEL */
//	const uint16_t* font16x16[96] = {
//	    inter_font_32,
//	    ...
//	    inter_font_127
//	};
//
// Decode reads this form back, failing on anything missing rather than
// producing a short table.
package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tiny64/fontconv/glyph"
)

const (
	// DefaultInclude is the kernel header included by generated files
	DefaultInclude = "../include/kernel.h"

	// DefaultPrefix names each per-glyph array, suffixed by codepoint
	DefaultPrefix = "inter_font_"

	// DefaultName is the name of the top-level table
	DefaultName = "font16x16"

	// Rows is the number of row values in a complete table
	Rows = glyph.Count * glyph.Size
)

// ErrIncomplete is returned when a table does not hold exactly one glyph per
// codepoint
var ErrIncomplete = fmt.Errorf("table: table must hold exactly %d glyphs", glyph.Count)

var errFull = errors.New("table: table is full")

// Table holds the glyph bitmaps in codepoint order, index 0 being space
type Table []glyph.Bitmap

// Append adds the next glyph in codepoint order
func (t *Table) Append(b glyph.Bitmap) error {
	if len(*t) >= glyph.Count {
		return errFull
	}
	*t = append(*t, b)
	return nil
}

// Complete reports whether every codepoint has a glyph
func (t Table) Complete() bool {
	return len(t) == glyph.Count
}

// Rune returns the codepoint of the glyph at index i
func Rune(i int) rune {
	return rune(glyph.First + i)
}

// Index returns the table index of r, or -1 when r is outside the table
func Index(r rune) int {
	if r < glyph.First || r > glyph.Last {
		return -1
	}
	return int(r - glyph.First)
}

// Options control the names used in the generated source
type Options struct {
	Include string
	Prefix  string
	Name    string
}

// DefaultOptions returns the names the kernel expects
func DefaultOptions() Options {
	return Options{
		Include: DefaultInclude,
		Prefix:  DefaultPrefix,
		Name:    DefaultName,
	}
}

func (o Options) withDefaults() Options {
	if o.Include == "" {
		o.Include = DefaultInclude
	}
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if o.Name == "" {
		o.Name = DefaultName
	}
	return o
}

// MissingError lists the sub-tables referenced by the top-level table that
// are not declared anywhere
type MissingError struct {
	Names []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("table: %d missing sub-table(s): %s", len(e.Names), strings.Join(e.Names, ", "))
}

// RowsError is returned when a sub-table does not hold exactly one value per
// glyph row
type RowsError struct {
	Name string
	Line int
	Rows int
}

func (e *RowsError) Error() string {
	return fmt.Sprintf("table: %s on line %d has %d rows, expected %d", e.Name, e.Line, e.Rows, glyph.Size)
}
