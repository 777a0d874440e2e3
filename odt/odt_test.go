// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package odt_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/UNO-SOFT/odf"
	"github.com/UNO-SOFT/odf/container"
	"github.com/UNO-SOFT/odf/odt"
	"github.com/beevik/etree"
)

func roundTrip(t *testing.T, nodes ...*odt.Node) ([]*odt.Node, []byte) {
	t.Helper()
	var buf bytes.Buffer
	w, err := odt.NewWriter(&buf, odt.WithCompression(false))
	if err != nil {
		t.Fatal(err)
	}
	if err = w.Append(nodes...); err != nil {
		t.Fatal(err)
	}
	if err = w.Close(); err != nil {
		t.Fatal(err)
	}
	got, err := odt.Parse(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	return got, buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	title := odt.H(1, odt.Text("Title"))
	styled, err := odt.P(odt.Text("before "), odt.Span(odt.Text("bold")), odt.Text(" after")).
		WithAttrs(map[string]string{"text_style_name": "Body"})
	if err != nil {
		t.Fatal(err)
	}
	want := []*odt.Node{
		title,
		styled,
		odt.P(odt.Text("first\nsecond")),
		odt.P(),
		odt.P(odt.Span(odt.Span(odt.Text("deep")))),
	}
	got, _ := roundTrip(t, want...)
	if len(got) != len(want) {
		t.Fatalf("got %d nodes, wanted %d", len(got), len(want))
	}
	for i, w := range want {
		if !got[i].Equal(w) {
			t.Errorf("%d. got %#v, wanted %#v", i, got[i], w)
		}
	}
	if got[1].Attr(odt.AttrStyleName) != "Body" {
		t.Errorf("style: %v", got[1].Attrs)
	}
	if got[0].Attr("text_outline_level") != "1" {
		t.Errorf("outline level: %v", got[0].Attrs)
	}
}

func TestWhitespace(t *testing.T) {
	got, raw := roundTrip(t,
		odt.P(odt.Text("  hello world  ")),
		odt.P(odt.Text("a"), odt.Text(" \n\t "), odt.Text("b")),
		odt.P(odt.Text("x\n\ny")),
	)
	if !bytes.Contains(raw, []byte("<text:p> hello world </text:p>")) {
		t.Errorf("boundary whitespace is not collapsed")
	}
	for i, want := range []string{" hello world ", "ab", "x\n\ny"} {
		if s := got[i].PlainText(); s != want {
			t.Errorf("%d. got %q, wanted %q", i, s, want)
		}
	}
	if len(got[1].Children) != 1 {
		t.Errorf("texts are not merged: %#v", got[1].Children)
	}
}

func TestCollapse(t *testing.T) {
	for in, want := range map[string]string{
		"":            "",
		" \n ":        "",
		"a":           "a",
		"  a b  ":     " a b ",
		"\na":         " a",
		"a\t":         "a ",
		"a\nb":        "a\nb",
		" line\n  x ": " line\n  x ",
	} {
		if got := odt.Collapse(in); got != want {
			t.Errorf("%q: got %q, wanted %q", in, got, want)
		}
	}
}

func TestAttrKeys(t *testing.T) {
	for ext, qual := range map[string]string{
		"text_style_name":    "text:style-name",
		"xml_id":             "xml:id",
		"text_outline_level": "text:outline-level",
		"text:class-names":   "text:class-names",
	} {
		if got := odt.QualifiedKey(ext); got != qual {
			t.Errorf("%q: got %q, wanted %q", ext, got, qual)
		}
	}
	if got := odt.ExternalKey("text:cond-style-name"); got != "text_cond_style_name" {
		t.Errorf("got %q", got)
	}

	n := odt.Span()
	if err := n.SetAttr("text_style_name", "A"); err != nil {
		t.Fatal(err)
	}
	if err := n.SetAttr("text:style-name", "B"); err != nil {
		t.Fatal(err)
	}
	if len(n.Attrs) != 1 || n.Attr("text_style_name") != "B" {
		t.Errorf("last write should win: %v", n.Attrs)
	}
	if ext := n.ExternalAttrs(); ext["text_style_name"] != "B" {
		t.Errorf("external: %v", ext)
	}
	for _, key := range []string{"style", ":x", "a:b c"} {
		if err := n.SetAttr(key, "v"); !errors.Is(err, odt.ErrInvalidAttribute) {
			t.Errorf("%q: got %v, wanted %v", key, err, odt.ErrInvalidAttribute)
		}
	}
	if err := odt.H(0).SetAttr(odt.AttrOutlineLevel, "zero"); !errors.Is(err, odt.ErrInvalidAttribute) {
		t.Errorf("outline level: %v", err)
	}
	if !odt.IsKnownAttr(odt.KindHeading, odt.AttrOutlineLevel) || odt.IsKnownAttr(odt.KindSpan, odt.AttrOutlineLevel) {
		t.Error("IsKnownAttr")
	}
}

const contentHead = `<?xml version="1.0" encoding="utf-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
<office:body><office:text>
`
const contentTail = `
</office:text></office:body></office:document-content>`

func readString(t *testing.T, r odt.Reader, body string) ([]*odt.Node, error) {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(contentHead + body + contentTail); err != nil {
		t.Fatal(err)
	}
	return r.Read(doc)
}

func TestReadStrict(t *testing.T) {
	for _, body := range []string{
		`<text:p>a</text:p><text:list><text:list-item><text:p>b</text:p></text:list-item></text:list>`,
		`<text:p>see <text:a>link</text:a></text:p>`,
		`stray text`,
	} {
		nodes, err := readString(t, odt.Reader{}, body)
		if !errors.Is(err, odf.ErrUnsupportedNodeKind) {
			t.Errorf("%s: got %v, wanted %v", body, err, odf.ErrUnsupportedNodeKind)
		}
		if nodes != nil {
			t.Errorf("%s: partial result %v", body, nodes)
		}
	}
}

func TestReadMarkers(t *testing.T) {
	nodes, err := readString(t, odt.Reader{}, `<!-- comment -->
<text:p text:style-name="P1">one<text:line-break/>two<text:tab/>three<text:s text:c="2"/>four<!-- c --></text:p>
<text:h text:outline-level="2">  Heading <text:span>x</text:span></text:h>`)
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes", len(nodes))
	}
	if got, want := nodes[0].PlainText(), "one\ntwo\tthree  four"; got != want {
		t.Errorf("got %q, wanted %q", got, want)
	}
	if len(nodes[0].Children) != 1 {
		t.Errorf("texts are not merged: %#v", nodes[0].Children)
	}
	want := odt.H(2, odt.Text(" Heading "), odt.Span(odt.Text("x")))
	if !nodes[1].Equal(want) {
		t.Errorf("got %#v, wanted %#v", nodes[1], want)
	}
}

func TestReadSkipUnknown(t *testing.T) {
	nodes, err := readString(t, odt.Reader{SkipUnknown: true},
		`<text:sequence-decls/><text:list><text:list-item><text:p>item</text:p></text:list-item></text:list>
<text:p>see <text:a>link</text:a></text:p>`)
	if err != nil {
		t.Fatal(err)
	}
	if got := odt.PlainText(nodes); got != "item\nsee link\n" {
		t.Errorf("got %q", got)
	}
}

func TestTextDocument(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "a.odt")
	fh, err := os.Create(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	w, err := odt.NewWriter(fh, odt.WithVersion(odf.Version11), odt.WithTempDir(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}
	if err = w.Append(odt.P(odt.Text("x"))); err != nil {
		t.Fatal(err)
	}
	if err = w.Close(); err != nil {
		t.Fatal(err)
	}
	if err = w.Append(odt.P()); !errors.Is(err, odf.ErrClosed) {
		t.Errorf("Append after Close: %v", err)
	}
	if err = fh.Close(); err != nil {
		t.Fatal(err)
	}

	kind, doc, err := container.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	if kind != container.Text {
		t.Errorf("kind=%q", kind)
	}
	if container.Child(doc.Root(), container.TagScripts) != nil {
		t.Error("text document has office:scripts")
	}
	nodes, err := odt.Open(fn)
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 || nodes[0].PlainText() != "x" {
		t.Errorf("got %v", nodes)
	}
}

func TestUnknownKind(t *testing.T) {
	w, err := odt.NewWriter(&bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err = w.Append(&odt.Node{Kind: 42}); !errors.Is(err, odf.ErrUnsupportedNodeKind) {
		t.Errorf("got %v, wanted %v", err, odf.ErrUnsupportedNodeKind)
	}
}

func TestLiteralAttrKeys(t *testing.T) {
	got, raw := roundTrip(t, &odt.Node{
		Kind:     odt.KindParagraph,
		Attrs:    map[string]string{"text_style_name": "Body"},
		Children: []odt.Child{odt.Text("styled")},
	})
	if len(got) != 1 || got[0].Attrs["text:style-name"] != "Body" {
		t.Fatalf("got %+v", got)
	}
	if _, ok := got[0].Attrs["text_style_name"]; ok {
		t.Errorf("external key written as is: %v", got[0].Attrs)
	}
	if bytes.Contains(raw, []byte("text_style_name")) {
		t.Error("external key in the archive")
	}

	w, err := odt.NewWriter(&bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	bad := &odt.Node{Kind: odt.KindSpan, Attrs: map[string]string{"a b": "c"}}
	if err = w.Append(odt.P(bad)); !errors.Is(err, odt.ErrInvalidAttribute) {
		t.Errorf("got %v, wanted %v", err, odt.ErrInvalidAttribute)
	}
}

func TestInvalidTreeWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	w, err := odt.NewWriter(&buf, odt.WithCompression(false))
	if err != nil {
		t.Fatal(err)
	}
	nested := odt.P(odt.Text("a"), odt.Span(odt.Text("b"), &odt.Node{Kind: 9}))
	if err = w.Append(nested); !errors.Is(err, odf.ErrUnsupportedNodeKind) {
		t.Fatalf("got %v, wanted %v", err, odf.ErrUnsupportedNodeKind)
	}
	if err = w.Append(odt.P(odt.Text("ok"))); err != nil {
		t.Fatalf("append after rejected tree: %+v", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("close: %+v", err)
	}
	got, err := odt.Parse(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].PlainText() != "ok" {
		t.Errorf("got %q, wanted only the ok paragraph", odt.PlainText(got))
	}
}
