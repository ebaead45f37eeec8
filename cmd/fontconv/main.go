package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/tiny64/fontconv"
	"github.com/tiny64/fontconv/blob"
	"github.com/tiny64/fontconv/table"
	"github.com/urfave/cli/v2"
)

const envFile = ".env"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// loadEnv seeds the environment from a .env file in the working directory,
// without overriding variables that are already set
func loadEnv() {
	if _, err := os.Stat(envFile); err != nil {
		return
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("Unable to load %s: %v\n", envFile, err)
	}
}

func newConverter(c *cli.Context) (*fontconv.Converter, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	return fontconv.New(c.String("db"), logger)
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "fontconv"
	app.Usage = "TrueType to kernel bitmap font converter"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"FONTCONV_DB"},
			Usage:   "path to glyph cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			EnvVars: []string{"FONTCONV_VERBOSE"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "generate",
			Usage:       "Rasterize a TrueType font into a 16x16 C font table",
			Description: "Renders codepoints 32 to 127 into 16x16 monochrome bitmaps.",
			ArgsUsage:   "FONT OUTPUT",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "include",
					Value: table.DefaultInclude,
					Usage: "kernel header to include",
				},
				&cli.StringFlag{
					Name:  "prefix",
					Value: table.DefaultPrefix,
					Usage: "name prefix of each glyph array",
				},
				&cli.StringFlag{
					Name:  "table",
					Value: table.DefaultName,
					Usage: "name of the font table",
				},
				&cli.BoolFlag{
					Name:  "strict",
					Usage: "fail if a printable character is missing from the font",
				},
				&cli.BoolFlag{
					Name:  "refresh",
					Usage: "ignore any cached glyphs for the font",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() != 2 {
					cli.ShowCommandHelp(c, c.Command.Name)
					return cli.NewExitError("Usage: fontconv generate <input.ttf> <output.c>", 1)
				}

				font, output := c.Args().Get(0), c.Args().Get(1)
				if _, err := os.Stat(font); err != nil {
					return cli.NewExitError(fmt.Sprintf("Error: %s not found", font), 1)
				}

				m, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				opts := fontconv.GenerateOptions{
					Table: table.Options{
						Include: c.String("include"),
						Prefix:  c.String("prefix"),
						Name:    c.String("table"),
					},
					Strict:  c.Bool("strict"),
					Refresh: c.Bool("refresh"),
				}
				if err := m.Generate(font, output, opts); err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Fprintf(c.App.Writer, "Font generation complete: %s\n", output)

				return nil
			},
		},
		{
			Name:        "pack",
			Usage:       "Pack a generated font table into a flat byte array",
			Description: "Every 16-bit row is written as two bytes, high byte first.",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "input",
					EnvVars: []string{"FONTCONV_PACK_INPUT"},
					Value:   fontconv.DefaultPackInput,
					Usage:   "font table to read",
				},
				&cli.StringFlag{
					Name:    "output",
					EnvVars: []string{"FONTCONV_PACK_OUTPUT"},
					Value:   fontconv.DefaultPackOutput,
					Usage:   "byte array source to write",
				},
				&cli.StringFlag{
					Name:  "table",
					Value: table.DefaultName,
					Usage: "name of the font table",
				},
				&cli.StringFlag{
					Name:  "include",
					Value: blob.DefaultInclude,
					Usage: "kernel header to include",
				},
				&cli.StringFlag{
					Name:  "array",
					Value: blob.DefaultArray,
					Usage: "name of the byte array",
				},
				&cli.StringFlag{
					Name:  "size-name",
					Value: blob.DefaultSize,
					Usage: "name of the size constant",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() != 0 {
					cli.ShowCommandHelp(c, c.Command.Name)
					return cli.NewExitError("Usage: fontconv pack [--input FILE] [--output FILE]", 1)
				}

				m, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				cfg := fontconv.PackConfig{
					Input:  c.String("input"),
					Output: c.String("output"),
					Table:  c.String("table"),
					Blob: blob.Options{
						Include:  c.String("include"),
						Array:    c.String("array"),
						SizeName: c.String("size-name"),
					},
				}
				if _, err := m.Pack(cfg, c.App.Writer); err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Fprintln(c.App.Writer, "Conversion complete")

				return nil
			},
		},
		{
			Name:        "preview",
			Usage:       "Draw glyphs from a packed byte array",
			Description: "Draws every glyph, or only those in CHARS, as text.",
			ArgsUsage:   "[CHARS]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "input",
					Value: fontconv.DefaultPackOutput,
					Usage: "byte array source to read",
				},
				&cli.StringFlag{
					Name:  "array",
					Value: blob.DefaultArray,
					Usage: "name of the byte array",
				},
			},
			Action: func(c *cli.Context) error {
				m, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.Preview(c.String("input"), c.String("array"), c.Args().First(), c.App.Writer); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	loadEnv()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
