// Command csv2ods converts CSV files into the sheets of a spreadsheet
// (.ods, or .xlsx by the output file name).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/odf"
	"github.com/UNO-SOFT/odf/cell"
	"github.com/UNO-SOFT/odf/ods"
	"github.com/UNO-SOFT/odf/xlsx"
	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
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
	fs := flag.NewFlagSet("csv2ods", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	flagEnc := fs.String("charset", odf.EncName, "csv charset name")
	flagTyped := fs.Bool("typed", false, "guess the type of the fields (numbers, dates, booleans, formulas)")
	flagStore := fs.Bool("store", false, "do not compress the .ods entries")
	flagVersion := fs.String("odf-version", odf.DefaultVersion, "OpenDocument version of the .ods output")

	app := ffcli.Command{Name: "csv2ods", FlagSet: fs,
		ShortUsage: "csv2ods [flags] <output.ods|output.xlsx|-> [[sheet:]input.csv...]",
		Options:    []ff.Option{ff.WithEnvVarPrefix("ODF")},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return flag.ErrHelp
			}
			fn := args[0]
			fh := os.Stdout
			if !(fn == "" || fn == "-") {
				var err error
				if fh, err = os.Create(fn); err != nil {
					return err
				}
			}
			defer fh.Close()

			var w odf.Writer
			if strings.HasSuffix(fn, ".xlsx") {
				w = xlsx.NewWriter(fh)
			} else {
				var err error
				if w, err = ods.NewWriter(fh,
					ods.WithLogger(logger),
					ods.WithVersion(*flagVersion),
					ods.WithCompression(!*flagStore),
				); err != nil {
					return err
				}
			}

			inputs := args[1:]
			if len(inputs) == 0 {
				inputs = []string{"-"}
			}
			for i, fn := range inputs {
				if err := ctx.Err(); err != nil {
					w.Close()
					return err
				}
				sheetName := fmt.Sprintf("Sheet%d", i+1)
				if i := strings.IndexByte(fn, ':'); i >= 0 {
					sheetName, fn = fn[:i], fn[i+1:]
				} else if fn != "" && fn != "-" {
					sheetName = strings.TrimSuffix(filepath.Base(fn), ".csv")
				}
				if err := copyFile(w, sheetName, *flagEnc, fn, *flagTyped); err != nil {
					w.Close()
					return fmt.Errorf("%q: %w", fn, err)
				}
			}

			if err := w.Close(); err != nil {
				return err
			}
			if fh == os.Stdout {
				return nil
			}
			return fh.Close()
		},
	}

	if err := app.Parse(os.Args[1:]); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.Run(ctx)
}

func copyFile(w odf.Writer, sheetName, encName, fn string, typed bool) error {
	cr, err := odf.OpenCsv(fn, encName)
	if err != nil {
		return err
	}
	defer cr.Close()
	cr.FieldsPerRecord = -1

	row, err := cr.Read()
	if err != nil {
		return err
	}
	cols := make([]odf.Column, len(row))
	for i, r := range row {
		cols[i].Name = r
		cols[i].Header.FontBold = true
	}
	sheet, err := w.NewSheet(sheetName, cols)
	if err != nil {
		return err
	}

	var n int
	var rowI []any
	for {
		if row, err = cr.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		rowI = rowI[:0]
		for _, s := range row {
			if typed {
				rowI = append(rowI, cell.Guess(s))
			} else {
				rowI = append(rowI, s)
			}
		}
		if err = sheet.AppendRow(rowI...); err != nil {
			return err
		}
		n++
	}
	logger.Debug("copied", "sheet", sheetName, "file", fn, "rows", n)
	return sheet.Close()
}
