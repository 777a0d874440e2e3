// Copyright 2021, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Command ods2pdf prints a sheet of a spreadsheet (or a CSV file) as a PDF table.
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/odf"
	"github.com/UNO-SOFT/odf/ods"
	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		logger.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

func Main() error {
	alternateColor := Color{Color: props.Color{Red: 230, Green: 230, Blue: 230}}

	fs := flag.NewFlagSet("ods2pdf", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	flagEnc := fs.String("charset", odf.EncName, "csv charset name")
	flagSheet := fs.String("sheet", "", "name of the sheet to print (default: the first)")
	flagOut := fs.String("o", "", "output file name (default input file + .pdf)")
	flagColor := fs.String("alternate-color", alternateColor.String(), "alternate color")
	flagLandscape := fs.Bool("L", false, "landscape orientation (default: portrait)")
	flagFontSize := fs.Float64("f", 8, "font size")

	app := ffcli.Command{Name: "ods2pdf", FlagSet: fs,
		ShortUsage: "ods2pdf [flags] <input.ods|input.csv|->",
		Options:    []ff.Option{ff.WithEnvVarPrefix("ODF")},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return flag.ErrHelp
			}
			if err := alternateColor.Parse(*flagColor); err != nil {
				return fmt.Errorf("alternate-color %q: %w", *flagColor, err)
			}
			headers, contents, err := readTable(args[0], *flagSheet, *flagEnc)
			if err != nil {
				return err
			}
			gridSize := gridSizes(headers, contents)
			logger.Debug("grid", "headers", headers, "sizes", gridSize)

			var maxGrid int
			for _, s := range gridSize {
				maxGrid += s
			}
			if maxGrid == 0 {
				return fmt.Errorf("%s: no columns", args[0])
			}
			orient := orientation.Vertical
			if *flagLandscape {
				orient = orientation.Horizontal
			}
			m := maroto.New(config.NewBuilder().
				WithOrientation(orient).
				WithPageSize(pagesize.A4).
				WithMaxGridSize(maxGrid).
				Build())

			headerProp := props.Text{Family: fontfamily.Arial, Style: fontstyle.Bold,
				Size: *flagFontSize * 1.375, Align: align.Center}
			contentProp := props.Text{Family: fontfamily.Courier, Style: fontstyle.Normal,
				Size: *flagFontSize, Align: align.Center}
			if err := m.RegisterHeader(tableRow(headers, gridSize, *flagFontSize*2, headerProp)); err != nil {
				return err
			}
			rows := make([]core.Row, 0, len(contents))
			for i, rec := range contents {
				r := tableRow(rec, gridSize, *flagFontSize*0.6, contentProp)
				if i%2 == 1 {
					r.WithStyle(&props.Cell{BackgroundColor: &alternateColor.Color})
				}
				rows = append(rows, r)
			}
			m.AddRows(rows...)

			doc, err := m.Generate()
			if err != nil {
				return err
			}
			out := *flagOut
			if out == "" && args[0] != "" && args[0] != "-" {
				out = args[0] + ".pdf"
			}
			logger.Info("write", "rows", len(contents), "file", out)
			if out == "" || out == "-" {
				_, err = os.Stdout.Write(doc.GetBytes())
				return err
			}
			return doc.Save(out)
		},
	}

	args := make([]string, 0, len(os.Args))
	for _, a := range os.Args[1:] {
		if strings.HasPrefix(a, "-f") && len(a) > 2 && '0' <= a[2] && a[2] <= '9' {
			args = append(args, "-f", a[2:])
		} else {
			args = append(args, a)
		}
	}
	logger.Debug("args", "original", os.Args[1:], "fixed", args)
	if err := app.Parse(args); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.Run(ctx)
}

func tableRow(values []string, gridSize []int, height float64, prop props.Text) core.Row {
	r := row.New(height)
	for i, s := range values {
		if i >= len(gridSize) {
			break
		}
		r.Add(text.NewCol(gridSize[i], s, prop))
	}
	return r
}

// gridSizes of the columns, proportional to the average length of their texts.
func gridSizes(headers []string, contents [][]string) []int {
	widths := make([]float64, len(headers))
	var avg float64
	for i, s := range headers {
		widths[i] = float64(len(s))
	}
	for _, rec := range contents {
		for i, s := range rec {
			if i < len(widths) {
				widths[i] += float64(len(s))
			}
		}
	}
	for _, w := range widths {
		avg += w
	}
	gridSize := make([]int, len(headers))
	if len(widths) == 0 {
		return gridSize
	}
	avg /= float64(len(widths))
	for i, w := range widths {
		if avg > 0 {
			gridSize[i] = int(math.Round(4 * w / avg))
		}
		if gridSize[i] == 0 {
			gridSize[i] = 1
		}
	}
	return gridSize
}

// readTable reads the header and the rest of the rows from a spreadsheet
// (by the .ods suffix) or a CSV file.
func readTable(fn, sheet, encName string) ([]string, [][]string, error) {
	if strings.HasSuffix(strings.ToLower(fn), ".ods") {
		tables, err := ods.Open(fn)
		if err != nil {
			return nil, nil, err
		}
		for _, t := range tables {
			if sheet != "" && t.Name != sheet {
				continue
			}
			if len(t.Rows) == 0 {
				return nil, nil, fmt.Errorf("%s: sheet %q is empty", fn, t.Name)
			}
			records := make([][]string, len(t.Rows))
			for i, vals := range t.Rows {
				records[i] = make([]string, len(vals))
				for j, v := range vals {
					records[i][j] = v.String()
				}
			}
			return records[0], records[1:], nil
		}
		return nil, nil, fmt.Errorf("%s: no sheet %q", fn, sheet)
	}

	cr, err := odf.OpenCsv(fn, encName)
	if err != nil {
		return nil, nil, err
	}
	defer cr.Close()
	cr.FieldsPerRecord = -1
	headers, err := cr.Read()
	if err != nil {
		return nil, nil, err
	}
	contents, err := cr.ReadAll()
	return headers, contents, err
}

type Color struct {
	props.Color
}

func (c *Color) String() string {
	return fmt.Sprintf("%02x%02x%02x", c.Red, c.Green, c.Blue)
}
func (c *Color) Parse(s string) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(b) != 3 {
		return errors.New("wanted 3 bytes (RRGGBB)")
	}
	c.Red, c.Green, c.Blue = int(b[0]), int(b[1]), int(b[2])
	return nil
}
