// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package odt writes and reads the paragraphs, headings and spans
// of OpenDocument text documents.
package odt

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Kind of a node.
type Kind uint8

const (
	KindParagraph Kind = iota + 1
	KindHeading
	KindSpan
)

var kindTags = [...]string{
	KindParagraph: "text:p",
	KindHeading:   "text:h",
	KindSpan:      "text:span",
}

// Tag returns the element name of the kind.
func (k Kind) Tag() string {
	if 0 < k && int(k) < len(kindTags) {
		return kindTags[k]
	}
	return ""
}

func (k Kind) String() string {
	if t := k.Tag(); t != "" {
		return t
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// KindOf returns the Kind of the element name.
func KindOf(tag string) (Kind, bool) {
	for k, t := range kindTags {
		if t != "" && t == tag {
			return Kind(k), true
		}
	}
	return 0, false
}

// Attribute keys understood by the nodes.
const (
	AttrStyleName        = "text:style-name"
	AttrClassNames       = "text:class-names"
	AttrCondStyleName    = "text:cond-style-name"
	AttrID               = "xml:id"
	AttrOutlineLevel     = "text:outline-level"
	AttrIsListHeader     = "text:is-list-header"
	AttrRestartNumbering = "text:restart-numbering"
	AttrStartValue       = "text:start-value"
)

var knownAttrs = map[Kind][]string{
	KindParagraph: {AttrStyleName, AttrClassNames, AttrCondStyleName, AttrID},
	KindHeading: {AttrStyleName, AttrClassNames, AttrCondStyleName, AttrID,
		AttrOutlineLevel, AttrIsListHeader, AttrRestartNumbering, AttrStartValue},
	KindSpan: {AttrStyleName, AttrClassNames},
}

// IsKnownAttr reports whether the qualified key is defined for the kind.
// Unknown keys are kept and written all the same.
func IsKnownAttr(kind Kind, key string) bool {
	return slices.Contains(knownAttrs[kind], key)
}

// ErrInvalidAttribute is returned for attribute keys which are not
// qualified names, and for invalid values of known attributes.
var ErrInvalidAttribute = errors.New("invalid attribute")

var rxQName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*:[A-Za-z_][A-Za-z0-9_.-]*$`)

// QualifiedKey returns the namespace qualified form of an attribute key.
//
// Keys in the external form use "_" for both separators: the first one
// stands for the namespace separator, the rest for "-",
// thus "text_style_name" is "text:style-name".
func QualifiedKey(key string) string {
	if strings.IndexByte(key, ':') >= 0 {
		return key
	}
	prefix, local, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	return prefix + ":" + strings.ReplaceAll(local, "_", "-")
}

// ExternalKey returns the external form of a qualified attribute key.
func ExternalKey(key string) string {
	return strings.NewReplacer(":", "_", "-", "_").Replace(key)
}

// Child of a node: a *Node or a Text.
type Child interface {
	isChild()
}

// Text is a run of text.
type Text string

func (Text) isChild() {}

// Node is a paragraph, heading or span.
type Node struct {
	// Attrs are keyed by the qualified name.
	Attrs    map[string]string
	Children []Child
	Kind     Kind
}

func (*Node) isChild() {}

// P returns a paragraph.
func P(children ...Child) *Node { return &Node{Kind: KindParagraph, Children: children} }

// H returns a heading of the given outline level (if positive).
func H(level int, children ...Child) *Node {
	n := &Node{Kind: KindHeading, Children: children}
	if level > 0 {
		n.Attrs = map[string]string{AttrOutlineLevel: strconv.Itoa(level)}
	}
	return n
}

// Span returns a span.
func Span(children ...Child) *Node { return &Node{Kind: KindSpan, Children: children} }

// Append children to the node.
func (n *Node) Append(children ...Child) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// SetAttr sets the attribute, given either in qualified or external form.
// Setting the same key again overwrites the previous value.
func (n *Node) SetAttr(key, value string) error {
	key = QualifiedKey(key)
	if !rxQName.MatchString(key) {
		return fmt.Errorf("%q: %w", key, ErrInvalidAttribute)
	}
	if key == AttrOutlineLevel {
		if i, err := strconv.Atoi(value); err != nil || i < 1 {
			return fmt.Errorf("%s=%q: %w", key, value, ErrInvalidAttribute)
		}
	}
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
	return nil
}

// WithAttrs sets the attributes and returns the node, or the first error.
func (n *Node) WithAttrs(attrs map[string]string) (*Node, error) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := n.SetAttr(k, attrs[k]); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Attr returns the value of the attribute, given in either form.
func (n *Node) Attr(key string) string { return n.Attrs[QualifiedKey(key)] }

// ExternalAttrs returns the attributes keyed by their external form.
func (n *Node) ExternalAttrs() map[string]string {
	m := make(map[string]string, len(n.Attrs))
	for k, v := range n.Attrs {
		m[ExternalKey(k)] = v
	}
	return m
}

// PlainText returns the concatenated text of the node and its descendants.
func (n *Node) PlainText() string {
	var buf strings.Builder
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			switch x := c.(type) {
			case Text:
				buf.WriteString(string(x))
			case *Node:
				walk(x)
			}
		}
	}
	walk(n)
	return buf.String()
}

// Equal reports whether the two trees are the same.
func (n *Node) Equal(m *Node) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.Kind != m.Kind || len(n.Attrs) != len(m.Attrs) || len(n.Children) != len(m.Children) {
		return false
	}
	for k, v := range n.Attrs {
		if w, ok := m.Attrs[k]; !ok || w != v {
			return false
		}
	}
	for i, c := range n.Children {
		switch x := c.(type) {
		case Text:
			if y, ok := m.Children[i].(Text); !ok || x != y {
				return false
			}
		case *Node:
			if y, ok := m.Children[i].(*Node); !ok || !x.Equal(y) {
				return false
			}
		}
	}
	return true
}

// Collapse the surrounding whitespace of a text run: it is trimmed, and
// a single space is kept on each side which had whitespace.
// An all-whitespace run collapses to nothing.
func Collapse(s string) string {
	core := strings.TrimSpace(s)
	if core == "" {
		return ""
	}
	if strings.TrimLeftFunc(s, unicode.IsSpace) != s {
		core = " " + core
	}
	if strings.TrimRightFunc(s, unicode.IsSpace) != s {
		core += " "
	}
	return core
}
