// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package ods writes and reads OpenDocument spreadsheets.
package ods

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/UNO-SOFT/odf"
	"github.com/UNO-SOFT/odf/cell"
	"github.com/UNO-SOFT/odf/container"
	"github.com/UNO-SOFT/odf/xmlw"
)

var _ = (odf.Writer)((*Writer)(nil))

// MaxRowCount is the number of maximum rows.
const MaxRowCount = 1_048_576

const (
	tagTable  = "table:table"
	tagColumn = "table:table-column"
	tagRow    = "table:table-row"
	attrName  = "table:name"
)

type config struct {
	container.Options
	Encoder cell.Encoder
}

// Option of the Writer.
type Option func(*config)

// WithVersion sets the OpenDocument version ("1.1" or "1.2").
func WithVersion(version string) Option { return func(c *config) { c.Version = version } }

// WithCompression deflates the archive entries (the default) or stores them.
func WithCompression(compress bool) Option { return func(c *config) { c.Store = !compress } }

// WithLogger sets the logger for debug messages.
func WithLogger(logger *slog.Logger) Option { return func(c *config) { c.Logger = logger } }

// WithTempDir sets the directory of the temporary content file.
func WithTempDir(dir string) Option { return func(c *config) { c.TempDir = dir } }

// WithStringValueAttr writes texts into office:string-value instead of paragraphs.
func WithStringValueAttr() Option {
	return func(c *config) { c.Encoder.StringValueAttr = true }
}

// Writer writes an OpenDocument spreadsheet.
//
// This writer does NOT allow concurrent writes to separate sheets:
// the sheets are written in sequence, and NewSheet finishes the previous one.
type Writer struct {
	session *container.Session
	current *Sheet
	logger  *slog.Logger
	enc     cell.Encoder
	mu      sync.Mutex
	closed  bool
}

// NewWriter returns a new spreadsheet writer. The fixed parts of the archive
// are written to w at once, the content when Close is called.
//
// w is not closed.
func NewWriter(w io.Writer, options ...Option) (*Writer, error) {
	var c config
	for _, o := range options {
		o(&c)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	s, err := container.NewSession(w, container.Spreadsheet, c.Options)
	if err != nil {
		return nil, err
	}
	return &Writer{session: s, enc: c.Encoder, logger: c.Logger}, nil
}

// NewSheet starts a new table. Columns with a Name produce a header row.
//
// Column styles are not written.
func (w *Writer) NewSheet(name string, cols []odf.Column) (odf.Sheet, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	sh, err := w.newSheet(name, cols)
	if err != nil {
		return nil, err
	}
	return sh, nil
}

func (w *Writer) newSheet(name string, cols []odf.Column) (*Sheet, error) {
	if w.closed {
		return nil, odf.ErrClosed
	}
	if err := w.finishSheet(); err != nil {
		return nil, err
	}
	e, err := w.session.Emitter()
	if err != nil {
		return nil, err
	}
	e.StartTag(tagTable, xmlw.Attrs{attrName: name})
	e.SimpleTag(tagColumn, nil)
	sh := &Sheet{w: w, Name: name}
	w.current = sh
	w.logger.Debug("sheet started", "name", name)

	var hasHeader bool
	header := make([]cell.Value, len(cols))
	for i, c := range cols {
		if c.Name != "" {
			hasHeader = true
			header[i] = cell.String(c.Name)
		}
	}
	if hasHeader {
		if err := sh.appendRow(header); err != nil {
			return nil, err
		}
	}
	return sh, e.Err()
}

// AppendTable writes a whole table.
func (w *Writer) AppendTable(name string, rows ...[]cell.Value) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	sh, err := w.newSheet(name, nil)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if err := sh.appendRow(row); err != nil {
			return fmt.Errorf("%s[%d]: %w", name, i, err)
		}
	}
	return w.finishSheet()
}

func (w *Writer) finishSheet() error {
	sh := w.current
	if sh == nil {
		return nil
	}
	w.current = nil
	sh.closed = true
	e, err := w.session.Emitter()
	if err != nil {
		return err
	}
	e.EndTag(tagTable)
	w.logger.Debug("sheet finished", "name", sh.Name, "rows", sh.rows)
	return e.Err()
}

// Close finishes the last sheet and writes the archive.
// Calling Close again is a no-op.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.finishSheet(); err != nil {
		w.session.Abort()
		return err
	}
	return w.session.Close()
}

// Sheet is one table of the spreadsheet.
type Sheet struct {
	w      *Writer
	Name   string
	rows   int
	closed bool
}

// AppendRow appends the values as a row, converted by cell.FromAny.
func (sh *Sheet) AppendRow(values ...any) error {
	row := make([]cell.Value, len(values))
	for i, v := range values {
		row[i] = cell.FromAny(v)
	}
	return sh.AppendValues(row...)
}

// AppendValues appends a row.
func (sh *Sheet) AppendValues(values ...cell.Value) error {
	sh.w.mu.Lock()
	defer sh.w.mu.Unlock()
	return sh.appendRow(values)
}

func (sh *Sheet) appendRow(values []cell.Value) error {
	if sh.closed {
		return fmt.Errorf("sheet %q: %w", sh.Name, odf.ErrClosed)
	}
	if sh.rows >= MaxRowCount {
		return odf.ErrTooManyRows
	}
	e, err := sh.w.session.Emitter()
	if err != nil {
		return err
	}
	sh.rows++
	e.StartTag(tagRow, nil)
	for _, r := range sh.w.enc.EncodeRow(values) {
		r.Write(e)
	}
	e.EndTag(tagRow)
	if err := e.Err(); err != nil {
		return fmt.Errorf("%s[%d]: %w", sh.Name, sh.rows, err)
	}
	return nil
}

// Close finishes the sheet. Writing another sheet closes this one, too.
func (sh *Sheet) Close() error {
	sh.w.mu.Lock()
	defer sh.w.mu.Unlock()
	if sh.closed || sh.w.current != sh {
		return nil
	}
	return sh.w.finishSheet()
}
