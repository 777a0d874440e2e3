// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package cell_test

import (
	"database/sql"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/UNO-SOFT/odf"
	"github.com/UNO-SOFT/odf/cell"
	"github.com/UNO-SOFT/odf/xmlw"
	"github.com/beevik/etree"
)

func parseElement(t *testing.T, s string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		t.Fatalf("parse %q: %+v", s, err)
	}
	return doc.Root()
}

// roundTrip writes the row with the emitter and decodes it back.
func roundTrip(t *testing.T, enc cell.Encoder, values []cell.Value) ([]cell.Value, string) {
	t.Helper()
	var buf strings.Builder
	e := xmlw.New(&buf)
	e.StartTag("table:table-row", nil)
	for _, r := range enc.EncodeRow(values) {
		r.Write(e)
	}
	e.EndTag("table:table-row")
	if err := e.Flush(); err != nil {
		t.Fatal(err)
	}
	row := parseElement(t, buf.String())
	var got []cell.Value
	for _, el := range row.ChildElements() {
		v, n, err := cell.Decode(el)
		if err != nil {
			t.Fatalf("decode %s: %+v", buf.String(), err)
		}
		for range n {
			got = append(got, v)
		}
	}
	return got, buf.String()
}

func TestRoundTrip(t *testing.T) {
	plan := time.Date(2015, 6, 30, 16, 38, 0, 0, time.UTC)
	for name, v := range map[string]cell.Value{
		"empty":     {},
		"text":      cell.String("veni, vidi, vici"),
		"special":   cell.String(`<a & "b">`),
		"padded":    cell.String("  hello world  "),
		"multiline": cell.String("one\n\ntwo"),
		"crlf":      cell.String("one\r\ntwo"),
		"true":      cell.Bool(true),
		"false":     cell.Bool(false),
		"float":     cell.Float(0.3),
		"int":       cell.Int(5),
		"negative":  cell.Int(-42),
		"date":      cell.Date(plan),
		"formula":   cell.NewFormula("=SUM(A1:A3)"),
	} {
		t.Run(name, func(t *testing.T) {
			got, xml := roundTrip(t, cell.Encoder{}, []cell.Value{v})
			if len(got) != 1 || !got[0].Equal(v) {
				t.Errorf("got %#v, wanted %#v (%s)", got, v, xml)
			}
		})
	}
}

func TestDecimalPrecision(t *testing.T) {
	v, err := cell.Decimal("0.1000000000000000000000000001")
	if err != nil {
		t.Fatal(err)
	}
	enc := cell.Encode(v)
	if got := enc.Attrs[cell.AttrValue]; got != "0.1000000000000000000000000001" {
		t.Errorf("got %q", got)
	}
	if _, err := cell.Decimal("1,5"); !errors.Is(err, odf.ErrMalformedNumber) {
		t.Errorf("got %v, wanted %v", err, odf.ErrMalformedNumber)
	}
}

func TestNumberEqual(t *testing.T) {
	five, _ := cell.Decimal("5.0")
	if !cell.Int(5).Equal(five) {
		t.Error("5 != 5.0")
	}
	if cell.Int(5).Equal(cell.Float(5.1)) {
		t.Error("5 == 5.1")
	}
}

func TestEncode(t *testing.T) {
	for name, tc := range map[string]struct {
		Value   cell.Value
		Attrs   string
		Content string
	}{
		"bool":    {cell.Bool(true), ` office:boolean-value="true" office:value-type="boolean"`, ""},
		"float":   {cell.Float(0.3), ` office:value="0.3" office:value-type="float"`, ""},
		"date":    {cell.Date(time.Date(2015, 6, 30, 16, 38, 0, 999, time.UTC)), ` office:date-value="2015-06-30T16:38:00" office:value-type="date" table:style-name="cell_date"`, ""},
		"string":  {cell.String("x"), ` office:value-type="string"`, "x"},
		"opaque":  {cell.NewOpaque("{1 2}"), ` office:string-value="{1 2}" office:value-type="string"`, ""},
		"formula": {cell.NewFormula("=SUM(A1:A3)"), ` table:formula="of:=SUM(A1:A3)"`, ""},
		"empty":   {cell.Value{}, "", ""},
	} {
		e := cell.Encode(tc.Value)
		if got := e.Attrs.String(); got != tc.Attrs {
			t.Errorf("%s: got %s, wanted %s", name, got, tc.Attrs)
		}
		if e.Content != tc.Content {
			t.Errorf("%s: content %q, wanted %q", name, e.Content, tc.Content)
		}
	}

	e := cell.Encoder{StringValueAttr: true}.Encode(cell.String("x"))
	if e.HasContent || e.Attrs[cell.AttrStringValue] != "x" {
		t.Errorf("attribute form: %#v", e)
	}
}

func TestRuns(t *testing.T) {
	row := []cell.Value{
		cell.String("a"), cell.String("a"), cell.String("a"),
		cell.String("b"),
		{}, {},
		cell.Int(1), cell.Float(1),
	}
	runs := cell.Encoder{}.EncodeRow(row)
	var counts []int
	for _, r := range runs {
		counts = append(counts, r.Count)
	}
	if want := []int{3, 1, 2, 2}; !equalInts(counts, want) {
		t.Errorf("got %v, wanted %v", counts, want)
	}
	if got := runs[0].Attrs()[cell.AttrRepeated]; got != "3" {
		t.Errorf("repeat attribute: %q", got)
	}
	if _, ok := runs[1].Attrs()[cell.AttrRepeated]; ok {
		t.Error("single cell has repeat attribute")
	}
	if _, ok := runs[0].Encoded.Attrs[cell.AttrRepeated]; ok {
		t.Error("Attrs modified the encoded attributes")
	}

	// Different attributes never merge, even for the same text.
	runs = cell.Runs([]cell.Encoded{
		cell.Encode(cell.String("x")),
		cell.Encoder{StringValueAttr: true}.Encode(cell.String("x")),
	})
	if len(runs) != 2 {
		t.Errorf("got %d runs, wanted 2", len(runs))
	}
}

func TestRunLengthRoundTrip(t *testing.T) {
	for _, k := range []int{1, 2, 7, 100} {
		row := make([]cell.Value, k)
		for i := range row {
			row[i] = cell.Float(0.5)
		}
		got, xml := roundTrip(t, cell.Encoder{}, row)
		if len(got) != k {
			t.Fatalf("%d: got %d values (%s)", k, len(got), xml)
		}
		if k > 1 && strings.Count(xml, "<table:table-cell") != 1 {
			t.Errorf("%d: not merged: %s", k, xml)
		}
		for i, v := range got {
			if !v.Equal(row[i]) {
				t.Errorf("%d. got %v", i, v)
			}
		}
	}
}

func TestDecode(t *testing.T) {
	for name, tc := range map[string]struct {
		XML   string
		Want  cell.Value
		Count int
	}{
		"formula": {`<table:table-cell table:formula="of:=SUM(A1:A3)" office:value-type="float" office:value="6"/>`,
			cell.NewFormula("=SUM(A1:A3)"), 1},
		"oooc": {`<table:table-cell table:formula="oooc:=A1+1"/>`, cell.NewFormula("=A1+1"), 1},
		"string-value": {`<table:table-cell office:value-type="string" office:string-value="attr"><text:p>content</text:p></table:table-cell>`,
			cell.String("attr"), 1},
		"nested": {`<table:table-cell office:value-type="string"><text:p> veni, <text:span>vidi</text:span>,<text:s text:c="2"/>vici </text:p></table:table-cell>`,
			cell.String("veni,vidi,  vici"), 1},
		"paragraphs": {`<table:table-cell office:value-type="string"><text:p>a</text:p><text:p>b</text:p></table:table-cell>`,
			cell.String("a\nb"), 1},
		"repeated": {`<table:table-cell office:value-type="boolean" office:boolean-value="false" table:number-columns-repeated="3"/>`,
			cell.Bool(false), 3},
		"empty":      {`<table:table-cell table:number-columns-repeated="1024"/>`, cell.Value{}, 1024},
		"date-only":  {`<table:table-cell office:value-type="date" office:date-value="2015-06-30"/>`, cell.Date(time.Date(2015, 6, 30, 0, 0, 0, 0, time.UTC)), 1},
		"percentage": {`<table:table-cell office:value-type="percentage" office:value="0.25"/>`, cell.Float(0.25), 1},
	} {
		v, n, err := cell.Decode(parseElement(t, tc.XML))
		if err != nil {
			t.Errorf("%s: %+v", name, err)
			continue
		}
		if n != tc.Count || !v.Equal(tc.Want) {
			t.Errorf("%s: got %v×%d, wanted %v×%d", name, v, n, tc.Want, tc.Count)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	for name, tc := range map[string]struct {
		XML  string
		Want error
	}{
		"type":    {`<table:table-cell office:value-type="time" office:time-value="PT12H"/>`, odf.ErrUnsupportedCellType},
		"repeat":  {`<table:table-cell table:number-columns-repeated="x"/>`, odf.ErrMalformedRepeatCount},
		"zero":    {`<table:table-cell table:number-columns-repeated="0"/>`, odf.ErrMalformedRepeatCount},
		"huge":    {`<table:table-cell office:value-type="float" office:value="1" table:number-columns-repeated="400000000"/>`, odf.ErrMalformedRepeatCount},
		"wide":    {`<table:table-cell table:number-columns-repeated="16385"/>`, odf.ErrMalformedRepeatCount},
		"number":  {`<table:table-cell office:value-type="float" office:value="1,5"/>`, odf.ErrMalformedNumber},
		"date":    {`<table:table-cell office:value-type="date" office:date-value="30/06/2015"/>`, odf.ErrMalformedTimestamp},
		"formula": {`<table:table-cell table:formula="of:SUM(A1)"/>`, odf.ErrMalformedFormula},
	} {
		if _, _, err := cell.Decode(parseElement(t, tc.XML)); !errors.Is(err, tc.Want) {
			t.Errorf("%s: got %v, wanted %v", name, err, tc.Want)
		}
	}
}

func TestDecodeLimits(t *testing.T) {
	_, n, err := cell.Decode(parseElement(t, `<table:table-cell table:number-columns-repeated="16384"/>`))
	if err != nil || n != cell.MaxColumnCount {
		t.Errorf("full width: got %d, %v", n, err)
	}
	v, _, err := cell.Decode(parseElement(t,
		`<table:table-cell office:value-type="string"><text:p>a<text:s text:c="999999999"/>b</text:p></table:table-cell>`))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(v.String()), cell.MaxColumnCount+2; got != want {
		t.Errorf("got %d long text, wanted %d", got, want)
	}
}

func TestDecodeExactNumber(t *testing.T) {
	for _, s := range []string{"1e400", "-0.1000000000000000000000000001", "5.", ".5E-3"} {
		want, err := cell.Decimal(s)
		if err != nil {
			t.Fatalf("%s: %+v", s, err)
		}
		got, xml := roundTrip(t, cell.Encoder{}, []cell.Value{want})
		if len(got) != 1 || got[0].Number() != want.Number() {
			t.Errorf("%s: got %v (%s)", s, got, xml)
		}
	}
}

type stringer struct{ s string }

func (s stringer) String() string { return "<" + s.s + ">" }

func TestFromAny(t *testing.T) {
	plan := time.Date(2015, 6, 30, 16, 38, 0, 0, time.UTC)
	for i, tc := range []struct {
		In   any
		Want cell.Value
	}{
		{nil, cell.Value{}},
		{"s", cell.String("s")},
		{true, cell.Bool(true)},
		{5, cell.Int(5)},
		{uint64(18446744073709551615), func() cell.Value { v, _ := cell.Decimal("18446744073709551615"); return v }()},
		{0.3, cell.Float(0.3)},
		{float32(0.3), cell.Float(0.3)},
		{odf.Number("1.25"), cell.Float(1.25)},
		{odf.Number("n/a"), cell.NewOpaque("n/a")},
		{big.NewInt(7), cell.Int(7)},
		{plan, cell.Date(plan)},
		{time.Time{}, cell.Value{}},
		{odf.Formula("A1*2"), cell.NewFormula("=A1*2")},
		{sql.NullString{}, cell.Value{}},
		{sql.NullInt64{Int64: 3, Valid: true}, cell.Int(3)},
		{sql.NullTime{Time: plan, Valid: true}, cell.Date(plan)},
		{stringer{"x"}, cell.NewOpaque("<x>")},
		{[]int{1, 2}, cell.NewOpaque("[1 2]")},
	} {
		if got := cell.FromAny(tc.In); !got.Equal(tc.Want) {
			t.Errorf("%d. FromAny(%#v)=%#v, wanted %#v", i, tc.In, got, tc.Want)
		}
	}
}

func TestGuess(t *testing.T) {
	for in, want := range map[string]cell.Value{
		"":           {},
		"abc":        cell.String("abc"),
		"TRUE":       cell.Bool(true),
		"3.14":       cell.Float(3.14),
		"-1e3":       cell.Int(-1000),
		"=A1+B1":     cell.NewFormula("=A1+B1"),
		"2015-06-30": cell.Date(time.Date(2015, 6, 30, 0, 0, 0, 0, time.UTC)),
		"=":          cell.String("="),
	} {
		if got := cell.Guess(in); !got.Equal(want) {
			t.Errorf("Guess(%q)=%#v, wanted %#v", in, got, want)
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
