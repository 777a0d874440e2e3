// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package ods

import (
	"fmt"
	"io"

	"github.com/UNO-SOFT/odf"
	"github.com/UNO-SOFT/odf/cell"
	"github.com/UNO-SOFT/odf/container"
	"github.com/beevik/etree"
)

// Table read from a spreadsheet.
type Table struct {
	Name string
	Rows [][]cell.Value
}

// ReadTables reconstructs the tables of a parsed content.xml,
// in document order. Cells are expanded by their repeat count.
//
// The first undecodable cell aborts the whole parse.
func ReadTables(doc *etree.Document) ([]Table, error) {
	body, err := container.Body(doc, container.Spreadsheet)
	if err != nil {
		return nil, err
	}
	var tables []Table
	for _, tbl := range container.Descendants(body, tagTable) {
		t := Table{Name: tbl.SelectAttrValue(attrName, "")}
		for i, rowEl := range container.Descendants(tbl, tagRow) {
			row, err := readRow(rowEl)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]%w", t.Name, i, err)
			}
			t.Rows = append(t.Rows, row)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func readRow(rowEl *etree.Element) ([]cell.Value, error) {
	var row []cell.Value
	for j, c := range rowEl.ChildElements() {
		switch c.FullTag() {
		case cell.TagCell, "table:covered-table-cell":
		default:
			continue
		}
		v, n, err := cell.Decode(c)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", j, err)
		}
		if len(row)+n > cell.MaxColumnCount {
			return nil, fmt.Errorf("[%d]: row wider than %d: %w", j, cell.MaxColumnCount, odf.ErrMalformedRepeatCount)
		}
		for range n {
			row = append(row, v)
		}
	}
	return row, nil
}

// Parse the spreadsheet archive.
func Parse(r io.ReaderAt, size int64) ([]Table, error) {
	_, doc, err := container.ReadContent(r, size)
	if err != nil {
		return nil, err
	}
	return ReadTables(doc)
}

// Open and parse the named spreadsheet file.
func Open(fn string) ([]Table, error) {
	_, doc, err := container.ReadFile(fn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return ReadTables(doc)
}
