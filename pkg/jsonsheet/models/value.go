// Package models defines the data structures shared by the jsonsheet engine.
package models

import (
	"math"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindNull is an absent or empty value.
	KindNull Kind = iota
	// KindBool is a boolean value.
	KindBool
	// KindNumber is a numeric value with float64 precision.
	KindNumber
	// KindText is a text value.
	KindText
)

// Value is a closed tagged variant over the cell value types.
// The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
}

// Null returns the null Value.
func Null() Value {
	return Value{}
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number returns a numeric Value.
func Number(n float64) Value {
	return Value{kind: KindNumber, n: n}
}

// Text returns a text Value.
func Text(s string) Value {
	return Value{kind: KindText, s: s}
}

// Kind returns the variant held by the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bool returns the boolean payload. Valid only for KindBool.
func (v Value) Bool() bool {
	return v.b
}

// Number returns the numeric payload. Valid only for KindNumber.
func (v Value) Number() float64 {
	return v.n
}

// Text returns the text payload. Valid only for KindText.
func (v Value) Text() string {
	return v.s
}

// Display returns the value rendered as display text.
// Null renders empty; integral numbers drop their decimal part,
// so 3.0 renders as "3".
func (v Value) Display() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		if v.n == math.Trunc(v.n) && math.Abs(v.n) < 1e15 {
			return strconv.FormatInt(int64(v.n), 10)
		}
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindText:
		return v.s
	default:
		return ""
	}
}
