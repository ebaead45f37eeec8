package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func run(t *testing.T, args ...string) (string, int, error) {
	code := 0
	exiter, errWriter := cli.OsExiter, cli.ErrWriter
	cli.OsExiter = func(c int) { code = c }
	cli.ErrWriter = ioutil.Discard
	defer func() {
		cli.OsExiter, cli.ErrWriter = exiter, errWriter
	}()

	out := new(bytes.Buffer)
	app := newApp()
	app.Writer = out
	app.ErrWriter = ioutil.Discard

	err := app.Run(append([]string{"fontconv"}, args...))
	return out.String(), code, err
}

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "fontconv")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func exitCode(t *testing.T, err error) int {
	require.Error(t, err)
	ec, ok := err.(cli.ExitCoder)
	require.True(t, ok, "%T", err)
	return ec.ExitCode()
}

func TestGenerateUsage(t *testing.T) {
	dir := tempDir(t)
	output := filepath.Join(dir, "font.c")

	for _, args := range [][]string{
		{"generate"},
		{"generate", filepath.Join(dir, "font.ttf")},
		{"generate", "a", "b", output},
	} {
		_, code, err := run(t, args...)
		assert.Equal(t, 1, exitCode(t, err))
		assert.Equal(t, 1, code)
	}

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateMissingFont(t *testing.T) {
	dir := tempDir(t)
	output := filepath.Join(dir, "font.c")

	_, code, err := run(t, "generate", filepath.Join(dir, "missing.ttf"), output)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Equal(t, 1, code)
	assert.Contains(t, err.Error(), "not found")

	_, err = os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateAndPack(t *testing.T) {
	dir := tempDir(t)
	fontFile := filepath.Join(dir, "Go-Regular.ttf")
	require.NoError(t, ioutil.WriteFile(fontFile, goregular.TTF, 0644))
	table := filepath.Join(dir, "font.c")
	packed := filepath.Join(dir, "inter_font_data.c")

	out, code, err := run(t, "generate", fontFile, table)
	require.NoError(t, err)
	assert.Zero(t, code)
	assert.Equal(t, "Font generation complete: "+table+"\n", out)

	out, code, err = run(t, "--db", filepath.Join(dir, "glyphs.db"), "pack", "--input", table, "--output", packed)
	require.NoError(t, err)
	assert.Zero(t, code)
	assert.Equal(t, "Found 96 font entries\nTotal bytes collected: 3072\nConversion complete\n", out)

	out, _, err = run(t, "preview", "--input", packed, "A")
	require.NoError(t, err)
	assert.Contains(t, out, " 65 'A'\n")
}

func TestPackMissingInput(t *testing.T) {
	dir := tempDir(t)

	_, code, err := run(t, "pack", "--input", filepath.Join(dir, "font.c"), "--output", filepath.Join(dir, "out.c"))
	assert.Equal(t, 1, exitCode(t, err))
	assert.Equal(t, 1, code)
}
