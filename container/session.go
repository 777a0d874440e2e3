// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/UNO-SOFT/odf"
	"github.com/UNO-SOFT/odf/cell"
	"github.com/UNO-SOFT/odf/xmlw"
)

// Options of a writer session.
type Options struct {
	Logger *slog.Logger
	// Version is the OpenDocument version tag, DefaultVersion when empty.
	Version string
	// TempDir for the content buffer, os.TempDir when empty.
	TempDir string
	// Store the entries without compression.
	Store bool
}

// Namespaces declared on the content root.
var Namespaces = map[string]string{
	"office":       "urn:oasis:names:tc:opendocument:xmlns:office:1.0",
	"style":        "urn:oasis:names:tc:opendocument:xmlns:style:1.0",
	"text":         "urn:oasis:names:tc:opendocument:xmlns:text:1.0",
	"table":        "urn:oasis:names:tc:opendocument:xmlns:table:1.0",
	"draw":         "urn:oasis:names:tc:opendocument:xmlns:drawing:1.0",
	"fo":           "urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0",
	"xlink":        "http://www.w3.org/1999/xlink",
	"dc":           "http://purl.org/dc/elements/1.1/",
	"meta":         "urn:oasis:names:tc:opendocument:xmlns:meta:1.0",
	"number":       "urn:oasis:names:tc:opendocument:xmlns:datastyle:1.0",
	"presentation": "urn:oasis:names:tc:opendocument:xmlns:presentation:1.0",
	"svg":          "urn:oasis:names:tc:opendocument:xmlns:svg-compatible:1.0",
	"chart":        "urn:oasis:names:tc:opendocument:xmlns:chart:1.0",
	"dr3d":         "urn:oasis:names:tc:opendocument:xmlns:dr3d:1.0",
	"math":         "http://www.w3.org/1998/Math/MathML",
	"form":         "urn:oasis:names:tc:opendocument:xmlns:form:1.0",
	"script":       "urn:oasis:names:tc:opendocument:xmlns:script:1.0",
	"dom":          "http://www.w3.org/2001/xml-events",
	"xforms":       "http://www.w3.org/2002/xforms",
	"xsd":          "http://www.w3.org/2001/XMLSchema",
	"xsi":          "http://www.w3.org/2001/XMLSchema-instance",
	"of":           "urn:oasis:names:tc:opendocument:xmlns:of:1.2",
	"xhtml":        "http://www.w3.org/1999/xhtml",
	"css3t":        "http://www.w3.org/TR/css3-text/",
}

// Content elements.
const (
	TagDocumentContent = "office:document-content"
	TagScripts         = "office:scripts"
	TagAutomaticStyles = "office:automatic-styles"
	TagBody            = "office:body"
	TagSpreadsheet     = "office:spreadsheet"
	TagText            = "office:text"
)

// BodyTag returns the element under office:body holding the document.
func (k Kind) BodyTag() string {
	if k == Text {
		return TagText
	}
	return TagSpreadsheet
}

// Session writes the content of one document into a temporary file,
// and assembles the archive on Close.
//
// Created -> (writes through Emitter)* -> Closed.
type Session struct {
	archive *Archive
	tmp     *os.File
	emitter *xmlw.Emitter
	logger  *slog.Logger
	kind    Kind
	mu      sync.Mutex
	closed  bool
}

// NewSession starts a document of the given kind on w.
// w is not closed by the Session.
func NewSession(w io.Writer, kind Kind, opts Options) (*Session, error) {
	if opts.Version == "" {
		opts.Version = odf.DefaultVersion
	}
	if err := odf.CheckVersion(opts.Version); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	tmp, err := os.CreateTemp(opts.TempDir, "odf-content-*.xml")
	if err != nil {
		return nil, err
	}
	s := &Session{tmp: tmp, kind: kind, logger: opts.Logger}
	if s.archive, err = NewArchive(w, kind, opts.Version, opts.Store); err != nil {
		s.release()
		return nil, err
	}
	s.emitter = xmlw.New(tmp)
	s.writeProlog(opts.Version)
	if err = s.emitter.Err(); err != nil {
		s.release()
		return nil, fmt.Errorf("write prolog: %w", err)
	}
	s.logger.Debug("session started", "kind", kind, "version", opts.Version, "tmp", tmp.Name())
	return s, nil
}

// ContentAttrs returns the attributes of the content root element.
func ContentAttrs(version string) xmlw.Attrs {
	attrs := make(xmlw.Attrs, len(Namespaces)+1)
	for k, v := range Namespaces {
		attrs["xmlns:"+k] = v
	}
	attrs["office:version"] = version
	return attrs
}

func (s *Session) writeProlog(version string) {
	e := s.emitter
	e.StartTag(TagDocumentContent, ContentAttrs(version))
	if s.kind != Text {
		e.SimpleTag(TagScripts, nil)
	}
	WriteAutomaticStyles(e)
	e.StartTag(TagBody, nil)
	e.StartTag(s.kind.BodyTag(), nil)
}

// WriteAutomaticStyles writes the date style used by date cells.
func WriteAutomaticStyles(e *xmlw.Emitter) {
	long := xmlw.Attrs{"number:style": "long"}
	e.StartTag(TagAutomaticStyles, nil)
	e.StartTag("number:date-style", xmlw.Attrs{"style:name": "date"})
	e.SimpleTag("number:year", long)
	e.ContentTag("number:text", nil, "-")
	e.SimpleTag("number:month", long)
	e.ContentTag("number:text", nil, "-")
	e.SimpleTag("number:day", long)
	e.ContentTag("number:text", nil, " ")
	e.SimpleTag("number:hours", long)
	e.ContentTag("number:text", nil, ":")
	e.SimpleTag("number:minutes", long)
	e.EndTag("number:date-style")
	e.SimpleTag("style:style", xmlw.Attrs{
		"style:name":              cell.DateStyleName,
		"style:family":            "table-cell",
		"style:parent-style-name": "Default",
		"style:data-style-name":   "date",
	})
	e.EndTag(TagAutomaticStyles)
}

// Kind of the document.
func (s *Session) Kind() Kind { return s.kind }

// Emitter returns the content emitter, positioned inside the body element.
func (s *Session) Emitter() (*xmlw.Emitter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, odf.ErrClosed
	}
	return s.emitter, nil
}

// Close finishes the content and writes it into the archive.
// The temporary file is removed on every path; the second Close is a no-op.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	defer s.release()

	e := s.emitter
	e.EndTag(s.kind.BodyTag())
	e.EndTag(TagBody)
	e.EndTag(TagDocumentContent)
	if err := e.Flush(); err != nil {
		if errors.Is(err, odf.ErrUnbalancedMarkup) {
			return err
		}
		return fmt.Errorf("content: %w: %w", odf.ErrArchive, err)
	}
	if _, err := s.tmp.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind content: %w: %w", odf.ErrArchive, err)
	}
	w, err := s.archive.Create(EntryContent)
	if err != nil {
		return err
	}
	n, err := io.Copy(w, s.tmp)
	if err != nil {
		return fmt.Errorf("copy content: %w: %w", odf.ErrArchive, err)
	}
	if err = s.archive.Close(); err != nil {
		return err
	}
	s.logger.Debug("session closed", "kind", s.kind, "content", n)
	return nil
}

// Abort releases the resources without finishing the archive.
func (s *Session) Abort() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.release()
}

func (s *Session) release() {
	if s.tmp == nil {
		return
	}
	name := s.tmp.Name()
	if err := errors.Join(s.tmp.Close(), os.Remove(name)); err != nil {
		s.logger.Warn("release content buffer", "file", name, "error", err)
	}
	s.tmp = nil
}
