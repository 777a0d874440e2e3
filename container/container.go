// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package container writes and reads the zip archive of an OpenDocument file:
// the mimetype marker, the fixed manifest, meta, settings and styles parts,
// and the generated content.xml.
package container

//go:generate qtc -file=parts.qtpl

import (
	"fmt"
	"io"
	"time"

	"github.com/UNO-SOFT/odf"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// Kind of the document, its mimetype.
type Kind string

const (
	Spreadsheet = Kind("application/vnd.oasis.opendocument.spreadsheet")
	Text        = Kind("application/vnd.oasis.opendocument.text")
)

// Entry names of the archive, in the order they are written.
const (
	EntryMimetype = "mimetype"
	EntryManifest = "META-INF/manifest.xml"
	EntryMeta     = "meta.xml"
	EntrySettings = "settings.xml"
	EntryStyles   = "styles.xml"
	EntryContent  = "content.xml"
)

// Generator is written into meta.xml.
var Generator = "github.com/UNO-SOFT/odf"

// Archive is the zip container of one document.
type Archive struct {
	zw       *zip.Writer
	modified time.Time
	method   uint16
}

// NewArchive starts the archive on w, writing every fixed part.
// content.xml must be added with Create before Close.
//
// Entries are deflated unless store is true; mimetype is always stored.
func NewArchive(w io.Writer, kind Kind, version string, store bool) (*Archive, error) {
	if err := odf.CheckVersion(version); err != nil {
		return nil, err
	}
	a := &Archive{zw: zip.NewWriter(w), method: zip.Deflate, modified: time.Now()}
	if store {
		a.method = zip.Store
	} else {
		a.zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(out, flate.BestCompression)
		})
	}
	if err := a.writeEntry(EntryMimetype, zip.Store, func(w io.Writer) {
		io.WriteString(w, string(kind))
	}); err != nil {
		return nil, err
	}
	for _, part := range []struct {
		Name  string
		Write func(io.Writer)
	}{
		{EntryManifest, func(w io.Writer) { WriteManifest(w, string(kind), version) }},
		{EntryMeta, func(w io.Writer) { WriteMeta(w, version, Generator) }},
		{EntrySettings, func(w io.Writer) { WriteSettings(w, version) }},
		{EntryStyles, func(w io.Writer) { WriteStyles(w, version) }},
	} {
		if err := a.writeEntry(part.Name, a.method, part.Write); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Archive) writeEntry(name string, method uint16, write func(io.Writer)) error {
	ew := &errWriter{}
	var err error
	if ew.w, err = a.create(name, method); err != nil {
		return err
	}
	write(ew)
	if ew.err != nil {
		return fmt.Errorf("write %s: %w: %w", name, odf.ErrArchive, ew.err)
	}
	return nil
}

func (a *Archive) create(name string, method uint16) (io.Writer, error) {
	fh := &zip.FileHeader{Name: name, Method: method}
	if name != EntryMimetype {
		// the timestamp extra field would separate mimetype from its name
		fh.Modified = a.modified
	}
	w, err := a.zw.CreateHeader(fh)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w: %w", name, odf.ErrArchive, err)
	}
	return w, nil
}

// Create a new entry. The previous entry is finished.
func (a *Archive) Create(name string) (io.Writer, error) {
	return a.create(name, a.method)
}

// Close writes the central directory. It does not close the underlying writer.
func (a *Archive) Close() error {
	if err := a.zw.Close(); err != nil {
		return fmt.Errorf("close: %w: %w", odf.ErrArchive, err)
	}
	return nil
}

// errWriter remembers the first write error, as the templates do not return it.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
