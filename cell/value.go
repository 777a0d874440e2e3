// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package cell maps between native values and the attributes
// of an OpenDocument table cell.
package cell

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/UNO-SOFT/odf"
)

// Kind of a Value.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindText
	KindBoolean
	KindNumber
	KindDateTime
	KindFormula
	KindOpaque
)

var kindNames = [...]string{
	KindEmpty:    "empty",
	KindText:     "text",
	KindBoolean:  "boolean",
	KindNumber:   "number",
	KindDateTime: "datetime",
	KindFormula:  "formula",
	KindOpaque:   "opaque",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// DateLayout is the format of office:date-value.
const DateLayout = "2006-01-02T15:04:05"

// Value of a cell. The zero Value is empty.
type Value struct {
	t    time.Time
	str  string
	kind Kind
	b    bool
}

// String returns a text cell.
func String(s string) Value { return Value{kind: KindText, str: s} }

// Bool returns a boolean cell.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Int returns a number cell.
func Int(i int64) Value { return Value{kind: KindNumber, str: strconv.FormatInt(i, 10)} }

// Float returns a number cell holding the shortest decimal representation of f.
func Float(f float64) Value {
	return Value{kind: KindNumber, str: strconv.FormatFloat(f, 'f', -1, 64)}
}

var rxNumber = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// Decimal returns a number cell holding the decimal literal s verbatim,
// so no precision is lost.
func Decimal(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if !rxNumber.MatchString(s) {
		return Value{}, fmt.Errorf("%q: %w", s, odf.ErrMalformedNumber)
	}
	return Value{kind: KindNumber, str: s}, nil
}

// Date returns a date cell, truncated to seconds.
func Date(t time.Time) Value {
	return Value{kind: KindDateTime, t: t.Truncate(time.Second)}
}

// NewFormula returns a formula cell. The expression starts with "=",
// which is prepended when missing.
func NewFormula(expr string) Value {
	if !strings.HasPrefix(expr, "=") {
		expr = "=" + expr
	}
	return Value{kind: KindFormula, str: expr}
}

// NewOpaque returns a cell holding the string form of an unknown value.
func NewOpaque(s string) Value { return Value{kind: KindOpaque, str: s} }

func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether the cell has no value.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

func (v Value) Bool() bool { return v.b }

// Time of a date cell.
func (v Value) Time() time.Time { return v.t }

// Number returns the decimal literal of a number cell.
func (v Value) Number() odf.Number {
	if v.kind != KindNumber {
		return ""
	}
	return odf.Number(v.str)
}

// Float64 parses the number literal.
func (v Value) Float64() (float64, error) {
	if v.kind != KindNumber {
		return 0, fmt.Errorf("%s is not a number", v.kind)
	}
	return strconv.ParseFloat(v.str, 64)
}

// Formula returns the expression of a formula cell, with the leading "=".
func (v Value) Formula() odf.Formula {
	if v.kind != KindFormula {
		return ""
	}
	return odf.Formula(v.str)
}

// String returns the displayable form of the value.
func (v Value) String() string {
	switch v.kind {
	case KindEmpty:
		return ""
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindDateTime:
		return v.t.Format(DateLayout)
	default:
		return v.str
	}
}

// Native returns the value as a plain Go value: nil, string, bool,
// odf.Number, time.Time or odf.Formula.
func (v Value) Native() any {
	switch v.kind {
	case KindEmpty:
		return nil
	case KindBoolean:
		return v.b
	case KindNumber:
		return odf.Number(v.str)
	case KindDateTime:
		return v.t
	case KindFormula:
		return odf.Formula(v.str)
	default:
		return v.str
	}
}

// Equal reports whether the two values are the same.
// Numbers are compared numerically, timestamps by their wall clock
// at second precision.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindEmpty:
		return true
	case KindBoolean:
		return v.b == w.b
	case KindNumber:
		if v.str == w.str {
			return true
		}
		a, _, errA := big.ParseFloat(v.str, 10, 256, big.ToNearestEven)
		b, _, errB := big.ParseFloat(w.str, 10, 256, big.ToNearestEven)
		return errA == nil && errB == nil && a.Cmp(b) == 0
	case KindDateTime:
		return v.t.Format(DateLayout) == w.t.Format(DateLayout)
	default:
		return v.str == w.str
	}
}

// FromAny converts a native Go value into a Value.
//
// database/sql null types are empty when not Valid, zero time.Time is empty,
// and anything unknown becomes an opaque string.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{}
	case Value:
		return x
	case string:
		return String(x)
	case []byte:
		return String(string(x))
	case bool:
		return Bool(x)
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return Value{kind: KindNumber, str: strconv.FormatUint(uint64(x), 10)}
	case uint8:
		return Int(int64(x))
	case uint16:
		return Int(int64(x))
	case uint32:
		return Int(int64(x))
	case uint64:
		return Value{kind: KindNumber, str: strconv.FormatUint(x, 10)}
	case float32:
		return Value{kind: KindNumber, str: strconv.FormatFloat(float64(x), 'f', -1, 32)}
	case float64:
		return Float(x)
	case odf.Number:
		return numberOrOpaque(string(x))
	case json.Number:
		return numberOrOpaque(string(x))
	case *big.Int:
		if x == nil {
			return Value{}
		}
		return Value{kind: KindNumber, str: x.String()}
	case *big.Float:
		if x == nil {
			return Value{}
		}
		return numberOrOpaque(x.Text('f', -1))
	case time.Time:
		if x.IsZero() {
			return Value{}
		}
		return Date(x)
	case odf.Formula:
		return NewFormula(string(x))
	case sql.NullString:
		if !x.Valid {
			return Value{}
		}
		return String(x.String)
	case sql.NullBool:
		if !x.Valid {
			return Value{}
		}
		return Bool(x.Bool)
	case sql.NullInt64:
		if !x.Valid {
			return Value{}
		}
		return Int(x.Int64)
	case sql.NullInt32:
		if !x.Valid {
			return Value{}
		}
		return Int(int64(x.Int32))
	case sql.NullFloat64:
		if !x.Valid {
			return Value{}
		}
		return Float(x.Float64)
	case sql.NullTime:
		if !x.Valid {
			return Value{}
		}
		return FromAny(x.Time)
	case driver.Valuer:
		vv, err := x.Value()
		if err != nil {
			return NewOpaque(fmt.Sprint(v))
		}
		if _, ok := vv.(driver.Valuer); ok {
			return NewOpaque(fmt.Sprint(vv))
		}
		return FromAny(vv)
	case fmt.Stringer:
		return NewOpaque(x.String())
	}
	return NewOpaque(fmt.Sprint(v))
}

func numberOrOpaque(s string) Value {
	if v, err := Decimal(s); err == nil {
		return v
	}
	return NewOpaque(s)
}

var dateLayouts = []string{DateLayout, "2006-01-02 15:04:05", "2006-01-02"}

// Guess the type of a textual value, such as a CSV field:
// booleans, decimal numbers, ISO dates and "=" formulas are recognized,
// the empty string is Empty and everything else is text.
func Guess(s string) Value {
	if s == "" {
		return Value{}
	}
	if strings.HasPrefix(s, "=") && len(s) > 1 {
		return NewFormula(s)
	}
	switch strings.ToLower(s) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if rxNumber.MatchString(s) {
		return Value{kind: KindNumber, str: s}
	}
	if len(s) >= len("2006-01-02") && '0' <= s[0] && s[0] <= '9' {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return Date(t)
			}
		}
	}
	return String(s)
}
