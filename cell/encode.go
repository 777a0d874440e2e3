// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package cell

import (
	"maps"
	"strconv"
	"strings"

	"github.com/UNO-SOFT/odf/xmlw"
)

// Cell element and attribute names.
const (
	TagCell      = "table:table-cell"
	TagParagraph = "text:p"

	AttrValueType    = "office:value-type"
	AttrValue        = "office:value"
	AttrDateValue    = "office:date-value"
	AttrBooleanValue = "office:boolean-value"
	AttrStringValue  = "office:string-value"
	AttrFormula      = "table:formula"
	AttrRepeated     = "table:number-columns-repeated"
	AttrStyleName    = "table:style-name"

	// DateStyleName is the automatic cell style of date cells.
	DateStyleName = "cell_date"

	// FormulaPrefix is the OpenFormula namespace prefix of table:formula.
	FormulaPrefix = "of:"
)

// Encoded cell: its attributes and the optional text paragraph content.
type Encoded struct {
	Attrs      xmlw.Attrs
	Content    string
	HasContent bool
}

// Equal reports whether the two encoded cells would be written the same way.
func (e Encoded) Equal(f Encoded) bool {
	return e.HasContent == f.HasContent && e.Content == f.Content &&
		maps.Equal(e.Attrs, f.Attrs)
}

// Encoder of cell values.
type Encoder struct {
	// StringValueAttr writes text cells into office:string-value
	// instead of a text paragraph.
	StringValueAttr bool
}

// Encode with the default Encoder.
func Encode(v Value) Encoded { return Encoder{}.Encode(v) }

// Encode the value into cell attributes and content.
//
// Text that would not read back the same from the paragraph content
// (lines with surrounding whitespace, carriage returns)
// gets office:string-value besides the content.
func (enc Encoder) Encode(v Value) Encoded {
	var e Encoded
	switch v.kind {
	case KindEmpty:
	case KindText:
		e.Attrs = xmlw.Attrs{AttrValueType: "string"}
		if enc.StringValueAttr {
			e.Attrs[AttrStringValue] = v.str
			break
		}
		e.Content, e.HasContent = v.str, true
		if !survivesParagraph(v.str) {
			e.Attrs[AttrStringValue] = v.str
		}
	case KindBoolean:
		e.Attrs = xmlw.Attrs{
			AttrValueType:    "boolean",
			AttrBooleanValue: strconv.FormatBool(v.b),
		}
	case KindNumber:
		e.Attrs = xmlw.Attrs{AttrValueType: "float", AttrValue: v.str}
	case KindDateTime:
		e.Attrs = xmlw.Attrs{
			AttrValueType: "date",
			AttrDateValue: v.t.Format(DateLayout),
			AttrStyleName: DateStyleName,
		}
	case KindFormula:
		e.Attrs = xmlw.Attrs{AttrFormula: FormulaPrefix + v.str}
	case KindOpaque:
		e.Attrs = xmlw.Attrs{AttrValueType: "string", AttrStringValue: v.str}
	}
	return e
}

// Run is an encoded cell repeated Count times.
type Run struct {
	Encoded
	Count int
}

// Attrs returns the attributes to be written, with the repeat count if
// the run is longer than one cell.
func (r Run) Attrs() xmlw.Attrs {
	if r.Count <= 1 {
		return r.Encoded.Attrs
	}
	a := r.Encoded.Attrs.Clone()
	a[AttrRepeated] = strconv.Itoa(r.Count)
	return a
}

// Runs merges the adjacent equal cells.
func Runs(cells []Encoded) []Run {
	runs := make([]Run, 0, len(cells))
	for _, c := range cells {
		if n := len(runs); n != 0 && runs[n-1].Encoded.Equal(c) {
			runs[n-1].Count++
			continue
		}
		runs = append(runs, Run{Encoded: c, Count: 1})
	}
	return runs
}

// EncodeRow encodes the values and merges the adjacent equal cells.
func (enc Encoder) EncodeRow(values []Value) []Run {
	cells := make([]Encoded, len(values))
	for i, v := range values {
		cells[i] = enc.Encode(v)
	}
	return Runs(cells)
}

// Write the run as one table cell.
func (r Run) Write(e *xmlw.Emitter) {
	attrs := r.Attrs()
	if !r.HasContent {
		e.SimpleTag(TagCell, attrs)
		return
	}
	e.StartTag(TagCell, attrs)
	e.ContentTag(TagParagraph, nil, r.Content)
	e.EndTag(TagCell)
}

func survivesParagraph(s string) bool {
	lines := xmlw.SplitLines(s)
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n") == s
}
