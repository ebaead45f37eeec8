package fontconv

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/tiny64/fontconv/blob"
	"github.com/tiny64/fontconv/table"
)

const (
	// DefaultPackInput is the table written by the first stage
	DefaultPackInput = "kernel/font.c"

	// DefaultPackOutput is the byte array the kernel links against
	DefaultPackOutput = "kernel/inter_font_data.c"
)

// PackConfig controls the second conversion stage
type PackConfig struct {
	Input  string
	Output string

	// Table is the name of the top-level table in Input
	Table string

	Blob blob.Options
}

// DefaultPackConfig returns the paths and names used by the kernel build
func DefaultPackConfig() PackConfig {
	return PackConfig{
		Input:  DefaultPackInput,
		Output: DefaultPackOutput,
		Table:  table.DefaultName,
		Blob:   blob.DefaultOptions(),
	}
}

// PackResult summarizes a successful Pack
type PackResult struct {
	// Entries is the number of sub-tables the top-level table references
	Entries int

	// Bytes is the length of the array written
	Bytes int
}

// Pack re-reads the table in cfg.Input and writes it to cfg.Output as a flat
// byte array. Progress is reported to progress. Nothing is written unless
// the table is complete.
func (c *Converter) Pack(cfg PackConfig, progress io.Writer) (PackResult, error) {
	if progress == nil {
		progress = ioutil.Discard
	}
	if cfg.Input == "" {
		cfg.Input = DefaultPackInput
	}
	if cfg.Output == "" {
		cfg.Output = DefaultPackOutput
	}

	src, err := ioutil.ReadFile(cfg.Input)
	if err != nil {
		return PackResult{}, err
	}

	s, err := table.Parse(src, cfg.Table)
	if err != nil {
		return PackResult{}, fmt.Errorf("%s: %w", cfg.Input, err)
	}

	var result PackResult
	result.Entries = len(s.Refs)
	fmt.Fprintf(progress, "Found %d font entries\n", result.Entries)

	t, err := s.Table()
	if err != nil {
		return result, fmt.Errorf("%s: %w", cfg.Input, err)
	}

	data, err := blob.Pack(t)
	if err != nil {
		return result, err
	}
	result.Bytes = len(data)
	fmt.Fprintf(progress, "Total bytes collected: %d\n", result.Bytes)

	b := new(bytes.Buffer)
	if err := blob.Encode(b, data, cfg.Blob); err != nil {
		return result, err
	}

	c.logger.Printf("Writing %d bytes to \"%s\"\n", result.Bytes, cfg.Output)

	if err := writeFile(cfg.Output, b.Bytes()); err != nil {
		return result, err
	}

	return result, nil
}
