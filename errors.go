// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package odf

import "errors"

var (
	ErrTooManyRows = errors.New("too many rows")

	// ErrClosed is returned when a closed writer or sheet is used.
	ErrClosed = errors.New("already closed")

	// ErrUnsupportedVersion is returned for an unknown OpenDocument version tag.
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrUnbalancedMarkup is a misuse of the XML emitter: an end tag that
	// does not close the most recently opened element.
	ErrUnbalancedMarkup = errors.New("unbalanced markup")

	// ErrUnsupportedNodeKind is returned when a text document body contains
	// an element that is not a paragraph, heading or span.
	ErrUnsupportedNodeKind = errors.New("unsupported node kind")

	ErrUnsupportedCellType  = errors.New("unsupported cell type")
	ErrMalformedRepeatCount = errors.New("malformed repeat count")
	ErrMalformedNumber      = errors.New("malformed numeric literal")
	ErrMalformedTimestamp   = errors.New("malformed timestamp")
	ErrMalformedFormula     = errors.New("malformed formula")

	// ErrArchive wraps every failure of the underlying zip container.
	ErrArchive = errors.New("archive i/o")
)
