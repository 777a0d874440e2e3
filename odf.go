// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package odf contains the contracts shared by the OpenDocument
// spreadsheet (ods) and text (odt) codecs, and the xlsx writer.
package odf

import (
	"fmt"
	"io"
)

// Writer writes the spreadsheet consisting of the sheets created
// with NewSheet. The write finishes when Close is called.
//
// The writer SHOULD allow writing to separate sheets concurrently,
// and document if it does not provide this functionality.
type Writer interface {
	io.Closer
	NewSheet(name string, cols []Column) (Sheet, error)
}

// Sheet should be Closed when finished.
type Sheet interface {
	io.Closer
	AppendRow(values ...any) error
}

// Style is a style for a column/row/cell.
type Style struct {
	// Format is the number format
	Format string
	// FontBold is true if the font is bold
	FontBold bool
}

// Column contains the Name of the column and header's style and column's style.
type Column struct {
	Name           string
	Header, Column Style
}

// Number is a string that contains a number.
//
// It is written verbatim, so decimals keep their precision.
type Number string

func (n Number) String() string { return string(n) }

// Formula is a spreadsheet formula, starting with "=", such as "=SUM(A1:A3)".
type Formula string

func (f Formula) String() string { return string(f) }

// Versions of the OpenDocument boilerplate that can be written.
const (
	Version11 = "1.1"
	Version12 = "1.2"

	DefaultVersion = Version12
)

// CheckVersion returns ErrUnsupportedVersion for unknown version tags.
func CheckVersion(version string) error {
	switch version {
	case Version11, Version12:
		return nil
	}
	return fmt.Errorf("%q: %w", version, ErrUnsupportedVersion)
}
