// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Command odfcat prints the sheets of a spreadsheet as CSV,
// or the text of a text document; or converts a spreadsheet to xlsx.
package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"github.com/UNO-SOFT/odf"
	"github.com/UNO-SOFT/odf/container"
	"github.com/UNO-SOFT/odf/ods"
	"github.com/UNO-SOFT/odf/odt"
	"github.com/UNO-SOFT/odf/xlsx"
	"github.com/UNO-SOFT/zlog/v2"
	"github.com/beevik/etree"
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

type catConfig struct {
	Sheet, Sep, Charset, XLSX string
	Lenient                   bool
}

func Main() error {
	var cfg catConfig
	fs := flag.NewFlagSet("odfcat", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	fs.StringVar(&cfg.Sheet, "sheet", "", "print only this sheet")
	fs.StringVar(&cfg.Sep, "sep", ",", "CSV field separator")
	fs.StringVar(&cfg.Charset, "charset", "utf-8", "output charset")
	fs.StringVar(&cfg.XLSX, "xlsx", "", "convert the spreadsheet into this xlsx file")
	fs.BoolVar(&cfg.Lenient, "lenient", false, "read the text inside lists, links and tables, too")

	app := ffcli.Command{Name: "odfcat", FlagSet: fs,
		ShortUsage: "odfcat [flags] <file.ods|file.odt>",
		Options:    []ff.Option{ff.WithEnvVarPrefix("ODF")},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return flag.ErrHelp
			}
			w := io.Writer(os.Stdout)
			enc, err := odf.GetEncoding(cfg.Charset)
			if err != nil {
				return err
			}
			if enc != nil {
				w = enc.NewEncoder().Writer(w)
			}
			bw := bufio.NewWriter(w)
			for _, fn := range args {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := cat(bw, fn, cfg); err != nil {
					return fmt.Errorf("%s: %w", fn, err)
				}
			}
			return bw.Flush()
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

func cat(w io.Writer, fn string, cfg catConfig) error {
	kind, doc, err := container.ReadFile(fn)
	if err != nil {
		return err
	}
	logger.Debug("read", "file", fn, "kind", kind)
	switch kind {
	case container.Text:
		nodes, err := odt.Reader{SkipUnknown: cfg.Lenient}.Read(doc)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, odt.PlainText(nodes))
		return err
	case container.Spreadsheet, "":
		return catTables(w, doc, cfg)
	default:
		return fmt.Errorf("unknown mimetype %q", kind)
	}
}

func catTables(w io.Writer, doc *etree.Document, cfg catConfig) error {
	tables, err := ods.ReadTables(doc)
	if err != nil {
		return err
	}
	if cfg.Sheet != "" {
		filtered := tables[:0]
		for _, t := range tables {
			if t.Name == cfg.Sheet {
				filtered = append(filtered, t)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("no sheet %q", cfg.Sheet)
		}
		tables = filtered
	}
	if cfg.XLSX != "" {
		return toXLSX(cfg.XLSX, tables)
	}

	cw := csv.NewWriter(w)
	if r, _ := utf8.DecodeRuneInString(cfg.Sep); r != utf8.RuneError {
		cw.Comma = r
	}
	var record []string
	for _, t := range tables {
		if len(tables) > 1 {
			logger.Info("sheet", "name", t.Name, "rows", len(t.Rows))
		}
		for _, row := range t.Rows {
			record = record[:0]
			for _, v := range row {
				record = append(record, v.String())
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func toXLSX(fn string, tables []ods.Table) error {
	fh, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer fh.Close()
	w := xlsx.NewWriter(fh)
	for _, t := range tables {
		sh, err := w.NewSheet(t.Name, nil)
		if err != nil {
			return err
		}
		for i, row := range t.Rows {
			if err := sh.(*xlsx.Sheet).AppendValues(row...); err != nil {
				return fmt.Errorf("%s[%d]: %w", t.Name, i, err)
			}
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	logger.Info("written", "file", fn, "sheets", len(tables))
	return fh.Close()
}
