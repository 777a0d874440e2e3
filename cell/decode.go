// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package cell

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/UNO-SOFT/odf"
	"github.com/beevik/etree"
)

// MaxColumnCount is the widest row a sheet may have,
// it bounds the repeat counts as well.
const MaxColumnCount = 16384

// Decode a table:table-cell element. It returns the value and how many
// times it is repeated.
func Decode(el *etree.Element) (Value, int, error) {
	count := 1
	if a := el.SelectAttr(AttrRepeated); a != nil {
		n, err := strconv.Atoi(strings.TrimSpace(a.Value))
		if err != nil || n < 1 || n > MaxColumnCount {
			return Value{}, 0, fmt.Errorf("%s=%q: %w", AttrRepeated, a.Value, odf.ErrMalformedRepeatCount)
		}
		count = n
	}
	v, err := decodeValue(el)
	return v, count, err
}

func decodeValue(el *etree.Element) (Value, error) {
	if a := el.SelectAttr(AttrFormula); a != nil {
		i := strings.IndexByte(a.Value, '=')
		if i < 0 {
			return Value{}, fmt.Errorf("%s=%q: %w", AttrFormula, a.Value, odf.ErrMalformedFormula)
		}
		return Value{kind: KindFormula, str: a.Value[i:]}, nil
	}
	a := el.SelectAttr(AttrValueType)
	if a == nil {
		return Value{}, nil
	}
	switch a.Value {
	case "date":
		s := el.SelectAttrValue(AttrDateValue, "")
		t, err := ParseDate(s)
		if err != nil {
			return Value{}, fmt.Errorf("%s=%q: %w", AttrDateValue, s, err)
		}
		return Value{kind: KindDateTime, t: t}, nil

	case "string":
		if sv := el.SelectAttr(AttrStringValue); sv != nil {
			return String(sv.Value), nil
		}
		return String(Text(el)), nil

	case "float", "percentage", "currency":
		s := strings.TrimSpace(el.SelectAttrValue(AttrValue, ""))
		if !rxNumber.MatchString(s) {
			return Value{}, fmt.Errorf("%s=%q: %w", AttrValue, s, odf.ErrMalformedNumber)
		}
		return Value{kind: KindNumber, str: s}, nil

	case "boolean":
		return Bool(el.SelectAttrValue(AttrBooleanValue, "") == "true"), nil
	}
	return Value{}, fmt.Errorf("%s=%q: %w", AttrValueType, a.Value, odf.ErrUnsupportedCellType)
}

// ParseDate parses an office:date-value, with or without the time part.
// The result is in UTC, truncated to seconds.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{
		DateLayout, "2006-01-02T15:04:05.999999999", "2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Truncate(time.Second), nil
		}
	}
	return time.Time{}, odf.ErrMalformedTimestamp
}

// Text concatenates the text under the element, each text node trimmed.
//
// Line breaks, tabs and space runs are restored; consecutive paragraphs
// are separated by a newline.
func Text(el *etree.Element) string {
	var buf strings.Builder
	appendText(&buf, el)
	return buf.String()
}

func appendText(buf *strings.Builder, el *etree.Element) {
	var paragraphs int
	for _, tok := range el.Child {
		switch x := tok.(type) {
		case *etree.CharData:
			buf.WriteString(strings.TrimSpace(x.Data))
		case *etree.Element:
			switch x.FullTag() {
			case "text:line-break":
				buf.WriteByte('\n')
			case "text:tab":
				buf.WriteByte('\t')
			case "text:s":
				buf.WriteString(strings.Repeat(" ", SpaceCount(x)))
			case "text:p", "text:h":
				if paragraphs != 0 {
					buf.WriteByte('\n')
				}
				paragraphs++
				appendText(buf, x)
			default:
				appendText(buf, x)
			}
		}
	}
}

// SpaceCount returns the text:c count of a text:s element,
// at least 1 and at most MaxColumnCount.
func SpaceCount(el *etree.Element) int {
	n, err := strconv.Atoi(strings.TrimSpace(el.SelectAttrValue("text:c", "1")))
	if err != nil || n < 1 {
		return 1
	}
	return min(n, MaxColumnCount)
}
