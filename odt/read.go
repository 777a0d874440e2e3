// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package odt

import (
	"fmt"
	"io"
	"strings"

	"github.com/UNO-SOFT/odf"
	"github.com/UNO-SOFT/odf/cell"
	"github.com/UNO-SOFT/odf/container"
	"github.com/beevik/etree"
)

const (
	tagLineBreak = "text:line-break"
	tagTab       = "text:tab"
	tagSpace     = "text:s"
)

// Reader reconstructs the node tree of a text document.
type Reader struct {
	// SkipUnknown unwraps the elements which are not paragraphs, headings
	// or spans (lists, links, tables...), keeping what is inside them,
	// instead of failing with ErrUnsupportedNodeKind.
	SkipUnknown bool
}

// ReadNodes returns the top-level nodes of the body, failing on any
// element which is not a paragraph, heading, span or line break.
//
// Text runs are trimmed, keeping a single space on the sides which had
// whitespace; all-whitespace runs are dropped. Line breaks read as "\n".
func ReadNodes(doc *etree.Document) ([]*Node, error) { return Reader{}.Read(doc) }

// Read the nodes of the parsed content.xml.
func (r Reader) Read(doc *etree.Document) ([]*Node, error) {
	body, err := container.Body(doc, container.Text)
	if err != nil {
		return nil, err
	}
	var root Node
	if err := r.readChildren(&root, body, true); err != nil {
		return nil, err
	}
	nodes := make([]*Node, 0, len(root.Children))
	for _, c := range root.Children {
		if n, ok := c.(*Node); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

func (r Reader) readChildren(n *Node, el *etree.Element, top bool) error {
	for _, tok := range el.Child {
		switch x := tok.(type) {
		case *etree.CharData:
			s := Collapse(x.Data)
			if s == "" {
				continue
			}
			if top {
				if r.SkipUnknown {
					continue
				}
				return fmt.Errorf("text %q outside of paragraph: %w", s, odf.ErrUnsupportedNodeKind)
			}
			n.appendText(s)

		case *etree.Element:
			tag := x.FullTag()
			if kind, ok := KindOf(tag); ok {
				c := &Node{Kind: kind, Attrs: readAttrs(x)}
				if err := r.readChildren(c, x, false); err != nil {
					return err
				}
				n.Children = append(n.Children, c)
				continue
			}
			if !top {
				switch tag {
				case tagLineBreak:
					n.appendText("\n")
					continue
				case tagTab:
					n.appendText("\t")
					continue
				case tagSpace:
					n.appendText(strings.Repeat(" ", cell.SpaceCount(x)))
					continue
				}
			}
			if !r.SkipUnknown {
				return fmt.Errorf("%s: %w", tag, odf.ErrUnsupportedNodeKind)
			}
			if err := r.readChildren(n, x, top); err != nil {
				return err
			}
		}
	}
	return nil
}

// appendText merges s into the last child if that is a Text.
func (n *Node) appendText(s string) {
	if s == "" {
		return
	}
	if k := len(n.Children); k != 0 {
		if t, ok := n.Children[k-1].(Text); ok {
			n.Children[k-1] = t + Text(s)
			return
		}
	}
	n.Children = append(n.Children, Text(s))
}

func readAttrs(el *etree.Element) map[string]string {
	var m map[string]string
	for _, a := range el.Attr {
		if a.Space == "xmlns" || a.Space == "" && a.Key == "xmlns" {
			continue
		}
		if m == nil {
			m = make(map[string]string, len(el.Attr))
		}
		m[a.FullKey()] = a.Value
	}
	return m
}

// PlainText returns the text of the nodes, one line each.
func PlainText(nodes []*Node) string {
	var buf strings.Builder
	for _, n := range nodes {
		buf.WriteString(n.PlainText())
		buf.WriteByte('\n')
	}
	return buf.String()
}

// Parse the text document archive.
func Parse(r io.ReaderAt, size int64) ([]*Node, error) {
	_, doc, err := container.ReadContent(r, size)
	if err != nil {
		return nil, err
	}
	return ReadNodes(doc)
}

// Open and parse the named text document.
func Open(fn string) ([]*Node, error) {
	_, doc, err := container.ReadFile(fn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return ReadNodes(doc)
}
