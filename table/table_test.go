package table

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiny64/fontconv/glyph"
)

func testTable() Table {
	t := make(Table, 0, glyph.Count)
	for i := 0; i < glyph.Count; i++ {
		var b glyph.Bitmap
		for row := range b {
			b[row] = uint16(i*glyph.Size+row) * 0x9e37
		}
		t = append(t, b)
	}
	return t
}

func encode(t *testing.T, tbl Table) string {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, tbl, Options{}))
	return b.String()
}

func TestAppend(t *testing.T) {
	var tbl Table
	for i := 0; i < glyph.Count; i++ {
		require.NoError(t, tbl.Append(glyph.Bitmap{}))
	}
	assert.True(t, tbl.Complete())
	assert.Error(t, tbl.Append(glyph.Bitmap{}))
}

func TestIndex(t *testing.T) {
	assert.Equal(t, 0, Index(' '))
	assert.Equal(t, 95, Index(0x7f))
	assert.Equal(t, -1, Index(0x80))
	assert.Equal(t, -1, Index('\n'))
	assert.Equal(t, 'A', Rune(Index('A')))
}

func TestLabel(t *testing.T) {
	tests := []struct {
		r    rune
		want string
	}{
		{' ', `/*  32 (' ') */`},
		{'"', `/*  34 ('\"') */`},
		{'\'', `/*  39 ('\'') */`},
		{'A', `/*  65 ('A') */`},
		{'\\', `/*  92 ('\\') */`},
		{'~', `/* 126 ('~') */`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, label(tt.r))
	}
}

func TestEncode(t *testing.T) {
	src := encode(t, testTable())

	assert.True(t, strings.HasPrefix(src, "#include \"../include/kernel.h\"\n\n"))
	assert.Contains(t, src, "/*  34 ('\\\"') */\nstatic const uint16_t inter_font_34[] = {\n")
	assert.Contains(t, src, "/* Main font table: index 0 = space, index 95 = DEL */\nconst uint16_t* font16x16[96] = {\n    inter_font_32,\n")
	assert.True(t, strings.HasSuffix(src, "    inter_font_126,\n    inter_font_127\n};\n"))
	assert.Equal(t, glyph.Count, strings.Count(src, "static const uint16_t "))
	assert.Equal(t, Rows, strings.Count(src, "    0x"))

	// Row values are upper-case and zero padded
	assert.Contains(t, src, "    0x0000,\n    0x9E37,\n")
}

func TestEncodeOptions(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, testTable(), Options{Include: "font.h", Prefix: "g", Name: "tbl"}))
	src := b.String()

	assert.Contains(t, src, "#include \"font.h\"")
	assert.Contains(t, src, "static const uint16_t g65[] = {")
	assert.Contains(t, src, "const uint16_t* tbl[96] = {")

	got, err := Decode(strings.NewReader(src), "tbl")
	require.NoError(t, err)
	assert.Equal(t, testTable(), got)
}

func TestEncodeIncomplete(t *testing.T) {
	b := new(bytes.Buffer)
	assert.Equal(t, ErrIncomplete, Encode(b, testTable()[:95], Options{}))
	assert.Zero(t, b.Len())
}

func TestRoundTrip(t *testing.T) {
	want := testTable()
	got, err := Decode(strings.NewReader(encode(t, want)), "")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeMissing(t *testing.T) {
	src := encode(t, testTable())
	src = strings.Replace(src, "inter_font_65[]", "renamed_65[]", 1)
	src = strings.Replace(src, "inter_font_66[]", "renamed_66[]", 1)

	_, err := Decode(strings.NewReader(src), DefaultName)
	require.Error(t, err)

	var missing *MissingError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"inter_font_65", "inter_font_66"}, missing.Names)
	assert.Contains(t, err.Error(), "inter_font_65, inter_font_66")
}

func TestDecodeShortGlyph(t *testing.T) {
	src := encode(t, testTable())
	src = strings.Replace(src, "static const uint16_t inter_font_32[] = {\n    0x0000,\n", "static const uint16_t inter_font_32[] = {\n", 1)

	_, err := Decode(strings.NewReader(src), DefaultName)
	var rows *RowsError
	require.True(t, errors.As(err, &rows))
	assert.Equal(t, "inter_font_32", rows.Name)
	assert.Equal(t, 15, rows.Rows)
}

func TestDecodeShortTable(t *testing.T) {
	src := encode(t, testTable())
	src = strings.Replace(src, "    inter_font_126,\n    inter_font_127\n", "    inter_font_126\n", 1)

	_, err := Decode(strings.NewReader(src), DefaultName)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncomplete))
}

func TestDecodeNotFound(t *testing.T) {
	_, err := Decode(strings.NewReader(encode(t, testTable())), "font8x8")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "font8x8")
}

func TestDecodeWideValue(t *testing.T) {
	src := encode(t, testTable())
	src = strings.Replace(src, "    0x9E37,\n", "    0x19E37,\n", 1)

	_, err := Decode(strings.NewReader(src), DefaultName)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "16 bits")
}

func TestParseRefs(t *testing.T) {
	s, err := Parse([]byte(encode(t, testTable())), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultName, s.Name)
	require.Len(t, s.Refs, glyph.Count)
	assert.Equal(t, "inter_font_32", s.Refs[0])
	assert.Equal(t, "inter_font_127", s.Refs[95])
}
