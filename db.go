package fontconv

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tiny64/fontconv/glyph"
)

// GlyphDB caches rasterized glyphs keyed by font contents, pixel size and
// codepoint
type GlyphDB struct {
	db *sql.DB
}

// NewGlyphDB opens or creates the cache database in file
func NewGlyphDB(file string) (*GlyphDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS font (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS glyph (font_id INTEGER NOT NULL, size INTEGER NOT NULL, codepoint INTEGER NOT NULL, bitmap BLOB NOT NULL, fallback INTEGER NOT NULL, UNIQUE(font_id, size, codepoint), FOREIGN KEY(font_id) REFERENCES font(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &GlyphDB{
		db: db,
	}, nil
}

// Close closes the database
func (db *GlyphDB) Close() error {
	return db.db.Close()
}

func (db *GlyphDB) addFont(sha string) (int64, error) {
	var id int64
	switch err := db.db.QueryRow("SELECT id FROM font WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := db.db.Exec("INSERT INTO font (sha1) VALUES (?)", sha)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// AddGlyph stores g as rendered from the font identified by sha at size
// pixels
func (db *GlyphDB) AddGlyph(sha string, size int, g glyph.Glyph) error {
	font, err := db.addFont(sha)
	if err != nil {
		return err
	}

	b, err := g.Bitmap.MarshalBinary()
	if err != nil {
		return err
	}

	if _, err := db.db.Exec("INSERT OR REPLACE INTO glyph (font_id, size, codepoint, bitmap, fallback) VALUES (?, ?, ?, ?, ?)", font, size, int64(g.Rune), b, g.Fallback); err != nil {
		return err
	}
	return nil
}

// FindGlyph returns the cached glyph for r, if any
func (db *GlyphDB) FindGlyph(sha string, size int, r rune) (glyph.Glyph, bool, error) {
	var b []byte
	var fallback bool
	switch err := db.db.QueryRow("SELECT g.bitmap, g.fallback FROM glyph AS g JOIN font AS f ON g.font_id = f.id WHERE f.sha1 = ? AND g.size = ? AND g.codepoint = ?", sha, size, int64(r)).Scan(&b, &fallback); err {
	case sql.ErrNoRows:
		return glyph.Glyph{}, false, nil
	case nil:
		g := glyph.Glyph{
			Rune:     r,
			Fallback: fallback,
		}
		if err := g.Bitmap.UnmarshalBinary(b); err != nil {
			return glyph.Glyph{}, false, fmt.Errorf("cached glyph %d: %w", r, err)
		}
		return g, true, nil
	default:
		return glyph.Glyph{}, false, err
	}
}

// Forget removes every cached glyph rendered from the font identified by sha
// and returns how many there were
func (db *GlyphDB) Forget(sha string) (int64, error) {
	result, err := db.db.Exec("DELETE FROM glyph WHERE font_id IN (SELECT id FROM font WHERE sha1 = ?)", sha)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
