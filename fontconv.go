/*
Package fontconv converts TrueType fonts into the 16 by 16 monochrome bitmap
font embedded by the kernel.

Conversion happens in two stages. Generate rasterizes codepoints 32 to 127
and writes them as a C source table, Pack re-reads such a table and writes the
flat big-endian byte array the kernel links against.
*/
package fontconv

import (
	"io/ioutil"
	"log"
)

// Converter runs both conversion stages
type Converter struct {
	db     *GlyphDB
	logger *log.Logger
}

// New returns a Converter. If dbFile is not empty, rasterized glyphs are
// cached in the SQLite database at that path.
func New(dbFile string, logger *log.Logger) (*Converter, error) {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}

	c := &Converter{
		logger: logger,
	}

	if dbFile != "" {
		db, err := NewGlyphDB(dbFile)
		if err != nil {
			return nil, err
		}
		c.db = db
	}

	return c, nil
}

// Close releases the glyph cache, if any
func (c *Converter) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
