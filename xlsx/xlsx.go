// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package xlsx writes the same rows as package ods, into an Excel workbook.
package xlsx

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/UNO-SOFT/odf"
	"github.com/UNO-SOFT/odf/cell"
	"github.com/xuri/excelize/v2"
)

var _ = (odf.Writer)((*Writer)(nil))

// MaxRowCount is the number of maximum rows.
const MaxRowCount = 1_048_576

// Writer of an Excel workbook.
type Writer struct {
	w      io.Writer
	xl     *excelize.File
	styles map[string]int
	sheets []string
	mu     sync.Mutex
}

// Sheet of the workbook.
type Sheet struct {
	xl   *excelize.File
	Name string
	row  int
	mu   sync.Mutex
}

// NewWriter returns a new odf.Writer producing xlsx.
//
// This writer allows concurrent writes to separate sheets.
//
// This writer collects everything in memory, so big sheets may impose problems.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, xl: excelize.NewFile()}
}

// Close writes the workbook. w is not closed.
func (xlw *Writer) Close() error {
	if xlw == nil {
		return nil
	}
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	xl, w := xlw.xl, xlw.w
	xlw.xl, xlw.w = nil, nil
	if xl == nil || w == nil {
		return nil
	}
	_, err := xl.WriteTo(w)
	return err
}

// NewSheet adds a sheet. Named columns produce a header row,
// and column styles are applied.
func (xlw *Writer) NewSheet(name string, columns []odf.Column) (odf.Sheet, error) {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	if xlw.xl == nil {
		return nil, odf.ErrClosed
	}
	xlw.sheets = append(xlw.sheets, name)
	if len(xlw.sheets) == 1 { // first
		if err := xlw.xl.SetSheetName("Sheet1", name); err != nil {
			return nil, err
		}
	} else if _, err := xlw.xl.NewSheet(name); err != nil {
		return nil, err
	}
	var hasHeader bool
	for i, c := range columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		s, err := xlw.getStyle(c.Column)
		if err != nil {
			return nil, err
		}
		if s != 0 {
			if err = xlw.xl.SetColStyle(name, col, s); err != nil {
				return nil, err
			}
		}
		if s, err = xlw.getStyle(c.Header); err != nil {
			return nil, err
		} else if s != 0 {
			if err = xlw.xl.SetCellStyle(name, col+"1", col+"1", s); err != nil {
				return nil, err
			}
		}
		if c.Name != "" {
			hasHeader = true
			if err = xlw.xl.SetCellStr(name, col+"1", c.Name); err != nil {
				return nil, err
			}
		}
	}
	xls := &Sheet{xl: xlw.xl, Name: name}
	if hasHeader {
		xls.row++
	}
	return xls, nil
}

func (xlw *Writer) getStyle(style odf.Style) (int, error) {
	if !style.FontBold && style.Format == "" {
		return 0, nil
	}
	k := fmt.Sprintf("%t\t%s", style.FontBold, style.Format)
	if s, ok := xlw.styles[k]; ok {
		return s, nil
	}
	var st excelize.Style
	if style.FontBold {
		st.Font = &excelize.Font{Bold: true}
	}
	if style.Format != "" {
		st.CustomNumFmt = &style.Format
	}
	s, err := xlw.xl.NewStyle(&st)
	if err != nil {
		return 0, fmt.Errorf("style %q: %w", k, err)
	}
	if xlw.styles == nil {
		xlw.styles = make(map[string]int)
	}
	xlw.styles[k] = s
	return s, nil
}

// Close is a no-op: the sheets are written by Writer.Close.
func (xls *Sheet) Close() error { return nil }

// AppendRow appends the values, converted by cell.FromAny.
func (xls *Sheet) AppendRow(values ...any) error {
	row := make([]cell.Value, len(values))
	for i, v := range values {
		row[i] = cell.FromAny(v)
	}
	return xls.AppendValues(row...)
}

// AppendValues appends a row.
func (xls *Sheet) AppendValues(values ...cell.Value) error {
	xls.mu.Lock()
	defer xls.mu.Unlock()
	if xls.row >= MaxRowCount {
		return odf.ErrTooManyRows
	}
	xls.row++
	for i, v := range values {
		if v.IsEmpty() {
			continue
		}
		axis, err := excelize.CoordinatesToCellName(i+1, xls.row)
		if err != nil {
			return fmt.Errorf("%d/%d: %w", i, xls.row, err)
		}
		if err = xls.setCell(axis, v); err != nil {
			return fmt.Errorf("%s[%s]: %w", xls.Name, axis, err)
		}
	}
	return nil
}

func (xls *Sheet) setCell(axis string, v cell.Value) error {
	switch v.Kind() {
	case cell.KindBoolean:
		return xls.xl.SetCellBool(xls.Name, axis, v.Bool())
	case cell.KindNumber:
		s := v.Number().String()
		if i, err := strconv.ParseInt(s, 10, 0); err == nil {
			return xls.xl.SetCellInt(xls.Name, axis, i)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return xls.xl.SetCellFloat(xls.Name, axis, f, -1, 64)
		}
		return xls.xl.SetCellStr(xls.Name, axis, s)
	case cell.KindDateTime:
		t := v.Time()
		layout := "2006-01-02"
		if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 {
			layout = "2006-01-02 15:04:05"
		}
		return xls.xl.SetCellStr(xls.Name, axis, t.Format(layout))
	case cell.KindFormula:
		return xls.xl.SetCellFormula(xls.Name, axis,
			strings.TrimPrefix(v.Formula().String(), "="))
	default:
		return xls.xl.SetCellStr(xls.Name, axis, v.String())
	}
}
