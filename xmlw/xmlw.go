// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package xmlw is a small streaming XML writer producing indented,
// deterministic output (attributes are sorted by name).
//
// It knows nothing about OpenDocument semantics except for the set of
// text elements where line breaks must be written as <text:line-break/>.
package xmlw

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/UNO-SOFT/odf"
)

// Header is written at the start of every document.
const Header = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// LineBreak replaces the line boundaries in text elements.
const LineBreak = "<text:line-break/>"

// Attrs of an element, keyed by the qualified attribute name.
type Attrs map[string]string

// Clone returns a copy of the attributes, never nil.
func (a Attrs) Clone() Attrs {
	b := make(Attrs, len(a)+1)
	for k, v := range a {
		b[k] = v
	}
	return b
}

// String returns the attributes as written into a tag, with a leading space.
func (a Attrs) String() string {
	if len(a) == 0 {
		return ""
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var buf strings.Builder
	for _, k := range keys {
		buf.WriteByte(' ')
		buf.WriteString(k)
		buf.WriteByte('=')
		buf.WriteString(QuoteAttr(a[k]))
	}
	return buf.String()
}

// textElements are those whose content gets <text:line-break/> for newlines.
var textElements = map[string]struct{}{
	"text:a": {}, "text:h": {}, "text:meta": {}, "text:meta-field": {},
	"text:p": {}, "text:ruby-base": {}, "text:span": {},
}

// IsTextElement reports whether newlines in the content of the named element
// are replaced by line break markers.
func IsTextElement(name string) bool {
	_, ok := textElements[name]
	return ok
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var attrEscaper = strings.NewReplacer("\r", "&#13;", "\n", "&#10;", "\t", "&#9;")

// Escape the XML special characters &, < and >.
func Escape(s string) string { return escaper.Replace(s) }

// QuoteAttr escapes and quotes an attribute value.
//
// Values containing only double quotes are delimited by single quotes,
// and double quotes are escaped only when both quote kinds appear.
// Carriage returns, newlines and tabs are written as character references,
// as parsers normalize them in attribute values.
func QuoteAttr(s string) string {
	s = attrEscaper.Replace(Escape(s))
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	return `"` + strings.ReplaceAll(s, `"`, "&quot;") + `"`
}

// SplitLines splits at \n, \r\n and \r. A final line terminator does not
// produce an empty line.
func SplitLines(s string) []string {
	var lines []string
	for len(s) != 0 {
		i := strings.IndexAny(s, "\r\n")
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i])
		if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			i++
		}
		s = s[i+1:]
	}
	return lines
}

// Emitter writes XML to the underlying writer as the calls come.
//
// Start and end calls must be balanced; an EndTag not matching
// the last StartTag is recorded as ErrUnbalancedMarkup.
// The first error is sticky: every later call is a no-op, and
// Err and Flush return it.
type Emitter struct {
	w      *bufio.Writer
	stack  []string
	inline int
	err    error
}

// New returns an Emitter writing to w, starting with the XML declaration.
func New(w io.Writer) *Emitter {
	e := &Emitter{w: bufio.NewWriter(w)}
	e.write(Header)
	return e
}

// Depth is the number of open elements.
func (e *Emitter) Depth() int { return len(e.stack) }

// Err returns the first error.
func (e *Emitter) Err() error { return e.err }

// Flush the buffered output.
func (e *Emitter) Flush() error {
	if e.err != nil {
		return e.err
	}
	if err := e.w.Flush(); err != nil {
		e.err = err
	}
	return e.err
}

func (e *Emitter) write(s string) {
	if e.err != nil {
		return
	}
	if _, err := e.w.WriteString(s); err != nil {
		e.err = err
	}
}

func (e *Emitter) indent() {
	if e.inline == 0 {
		e.write(strings.Repeat("  ", len(e.stack)))
	}
}

func (e *Emitter) newline() {
	if e.inline == 0 {
		e.write("\n")
	}
}

func (e *Emitter) pop(name string) bool {
	if e.err != nil {
		return false
	}
	if n := len(e.stack); n == 0 || e.stack[n-1] != name {
		open := "nothing"
		if n != 0 {
			open = e.stack[n-1]
		}
		e.err = fmt.Errorf("end %q while %s is open: %w", name, open, odf.ErrUnbalancedMarkup)
		return false
	}
	e.stack = e.stack[:len(e.stack)-1]
	return true
}

// StartTag opens an element on its own line and increments the indentation.
func (e *Emitter) StartTag(name string, attrs Attrs) {
	e.indent()
	e.write("<" + name + attrs.String() + ">")
	e.newline()
	e.stack = append(e.stack, name)
}

// EndTag closes the most recently opened element.
func (e *Emitter) EndTag(name string) {
	if !e.pop(name) {
		return
	}
	e.indent()
	e.write("</" + name + ">")
	e.newline()
}

// SimpleTag writes a self-closing element.
func (e *Emitter) SimpleTag(name string, attrs Attrs) {
	e.indent()
	e.write("<" + name + attrs.String() + "/>")
	e.newline()
}

// ContentTag writes an element with escaped text content.
func (e *Emitter) ContentTag(name string, attrs Attrs, content string) {
	e.indent()
	e.write("<" + name + attrs.String() + ">")
	e.write(escapeContent(name, content))
	e.write("</" + name + ">")
	e.newline()
}

// StartInline opens an element whose content is mixed text and elements.
// Until the matching EndInline, everything is written on the same line.
func (e *Emitter) StartInline(name string, attrs Attrs) {
	e.indent()
	e.write("<" + name + attrs.String() + ">")
	e.stack = append(e.stack, name)
	e.inline++
}

// Text writes escaped text into the innermost inline element.
func (e *Emitter) Text(s string) {
	var parent string
	if n := len(e.stack); n != 0 {
		parent = e.stack[n-1]
	}
	e.write(escapeContent(parent, s))
}

// EndInline closes an element opened by StartInline.
func (e *Emitter) EndInline(name string) {
	if !e.pop(name) {
		return
	}
	e.write("</" + name + ">")
	if e.inline > 0 {
		e.inline--
	}
	e.newline()
}

func escapeContent(name, s string) string {
	s = Escape(s)
	if IsTextElement(name) {
		s = strings.Join(SplitLines(s), LineBreak)
	}
	return s
}
