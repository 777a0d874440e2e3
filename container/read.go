// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/UNO-SOFT/odf"
	"github.com/beevik/etree"
	"github.com/klauspost/compress/zip"
)

// ReadContent extracts and parses content.xml from the archive.
// The Kind comes from the mimetype entry, and is empty when that is missing.
func ReadContent(r io.ReaderAt, size int64) (Kind, *etree.Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return "", nil, fmt.Errorf("open: %w: %w", odf.ErrArchive, err)
	}
	var kind Kind
	var content *zip.File
	for _, f := range zr.File {
		switch f.Name {
		case EntryMimetype:
			b, err := readEntry(f)
			if err != nil {
				return "", nil, err
			}
			kind = Kind(strings.TrimSpace(string(b)))
		case EntryContent:
			content = f
		}
	}
	if content == nil {
		return kind, nil, fmt.Errorf("%s not found: %w", EntryContent, odf.ErrArchive)
	}
	rc, err := content.Open()
	if err != nil {
		return kind, nil, fmt.Errorf("open %s: %w: %w", EntryContent, odf.ErrArchive, err)
	}
	defer rc.Close()
	doc := etree.NewDocument()
	if _, err = doc.ReadFrom(rc); err != nil {
		return kind, nil, fmt.Errorf("parse %s: %w", EntryContent, err)
	}
	return kind, doc, nil
}

// ReadFile is ReadContent of the named file.
func ReadFile(fn string) (Kind, *etree.Document, error) {
	fh, err := os.Open(fn)
	if err != nil {
		return "", nil, err
	}
	defer fh.Close()
	fi, err := fh.Stat()
	if err != nil {
		return "", nil, err
	}
	return ReadContent(fh, fi.Size())
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", f.Name, odf.ErrArchive, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", f.Name, odf.ErrArchive, err)
	}
	return b, nil
}

// Child returns the first child element of el with the qualified name.
func Child(el *etree.Element, fullTag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if c.FullTag() == fullTag {
			return c
		}
	}
	return nil
}

// Body returns the office:body/office:spreadsheet or office:body/office:text
// element of the content.
func Body(doc *etree.Document, kind Kind) (*etree.Element, error) {
	root := doc.Root()
	if root == nil || root.FullTag() != TagDocumentContent {
		return nil, fmt.Errorf("no %s root", TagDocumentContent)
	}
	body := Child(Child(root, TagBody), kind.BodyTag())
	if body == nil {
		return nil, fmt.Errorf("no %s/%s", TagBody, kind.BodyTag())
	}
	return body, nil
}

// Descendants returns the elements under el with the qualified name,
// in document order.
func Descendants(el *etree.Element, fullTag string) []*etree.Element {
	var found []*etree.Element
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, c := range el.ChildElements() {
			if c.FullTag() == fullTag {
				found = append(found, c)
			}
			walk(c)
		}
	}
	walk(el)
	return found
}
