// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package odt

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/UNO-SOFT/odf"
	"github.com/UNO-SOFT/odf/container"
	"github.com/UNO-SOFT/odf/xmlw"
)

// Option of the Writer.
type Option func(*container.Options)

// WithVersion sets the OpenDocument version ("1.1" or "1.2").
func WithVersion(version string) Option { return func(o *container.Options) { o.Version = version } }

// WithCompression deflates the archive entries (the default) or stores them.
func WithCompression(compress bool) Option {
	return func(o *container.Options) { o.Store = !compress }
}

// WithLogger sets the logger for debug messages.
func WithLogger(logger *slog.Logger) Option { return func(o *container.Options) { o.Logger = logger } }

// WithTempDir sets the directory of the temporary content file.
func WithTempDir(dir string) Option { return func(o *container.Options) { o.TempDir = dir } }

// Writer writes an OpenDocument text document.
type Writer struct {
	session *container.Session
	logger  *slog.Logger
	nodes   int
	mu      sync.Mutex
	closed  bool
}

// NewWriter starts a text document on w. w is not closed.
func NewWriter(w io.Writer, options ...Option) (*Writer, error) {
	var o container.Options
	for _, f := range options {
		f(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	s, err := container.NewSession(w, container.Text, o)
	if err != nil {
		return nil, err
	}
	return &Writer{session: s, logger: o.Logger}, nil
}

// Append the nodes to the body of the document.
// The nodes are checked first, so an invalid tree writes nothing.
func (w *Writer) Append(nodes ...*Node) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return odf.ErrClosed
	}
	for i, n := range nodes {
		if err := n.check(); err != nil {
			return fmt.Errorf("node %d: %w", w.nodes+i, err)
		}
	}
	e, err := w.session.Emitter()
	if err != nil {
		return err
	}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		writeNode(e, n)
		w.nodes++
	}
	return e.Err()
}

// Close writes the archive. Calling Close again is a no-op.
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
	w.logger.Debug("close", "nodes", w.nodes)
	return w.session.Close()
}

// check the kinds and attribute keys of the tree.
func (n *Node) check() error {
	if n == nil {
		return nil
	}
	if n.Kind.Tag() == "" {
		return fmt.Errorf("%s: %w", n.Kind, odf.ErrUnsupportedNodeKind)
	}
	for k := range n.Attrs {
		if q := QualifiedKey(k); !rxQName.MatchString(q) {
			return fmt.Errorf("%s %q: %w", n.Kind, k, ErrInvalidAttribute)
		}
	}
	for _, c := range n.Children {
		if x, ok := c.(*Node); ok {
			if err := x.check(); err != nil {
				return err
			}
		}
	}
	return nil
}

// qualifiedAttrs returns the attributes keyed by their qualified form.
func (n *Node) qualifiedAttrs() xmlw.Attrs {
	if len(n.Attrs) == 0 {
		return nil
	}
	attrs := make(xmlw.Attrs, len(n.Attrs))
	for k, v := range n.Attrs {
		attrs[QualifiedKey(k)] = v
	}
	return attrs
}

// writeNode writes the node with its children on one line,
// as whitespace between inline elements is significant.
// The tree must have passed check.
func writeNode(e *xmlw.Emitter, n *Node) {
	tag, attrs := n.Kind.Tag(), n.qualifiedAttrs()
	if len(n.Children) == 0 {
		e.SimpleTag(tag, attrs)
		return
	}
	e.StartInline(tag, attrs)
	for _, c := range n.Children {
		switch x := c.(type) {
		case Text:
			e.Text(Collapse(string(x)))
		case *Node:
			if x != nil {
				writeNode(e, x)
			}
		}
	}
	e.EndInline(tag)
}
