/*
NAME
  value.go

DESCRIPTION
  value.go provides the scalar value model backing a decoded C3D
  parameter: a tagged union over the four element kinds the format
  defines, plus typed accessors that refuse to coerce between kinds.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package c3d

// Kind identifies the scalar element type backing a parameter payload.
// It is numerically equal to the C3D data_length byte that encodes it.
type Kind int8

const (
	KindChar Kind = -1 // ASCII character, 1 byte.
	KindByte Kind = 1  // Unsigned byte.
	KindI16  Kind = 2  // Signed 16-bit little-endian integer.
	KindF32  Kind = 4  // IEEE 754 little-endian 32-bit float.
)

func (k Kind) String() string {
	switch k {
	case KindChar:
		return "char"
	case KindByte:
		return "byte"
	case KindI16:
		return "i16"
	case KindF32:
		return "f32"
	default:
		return "unknown"
	}
}

// width returns the byte width of one element of kind k, or 0 if k is
// not one of the four recognised kinds.
func (k Kind) width() int {
	switch k {
	case KindChar, KindByte:
		return 1
	case KindI16:
		return 2
	case KindF32:
		return 4
	default:
		return 0
	}
}

// Value is a single scalar element drawn from a parameter's payload.
// It carries its own kind tag; the As* accessors return ok=false on a
// kind mismatch rather than silently coercing.
type Value struct {
	kind Kind
	b    byte
	i16  int16
	f32  float32
}

func charValue(b byte) Value  { return Value{kind: KindChar, b: b} }
func byteValue(b byte) Value  { return Value{kind: KindByte, b: b} }
func i16Value(v int16) Value  { return Value{kind: KindI16, i16: v} }
func f32Value(v float32) Value { return Value{kind: KindF32, f32: v} }

// Kind reports the scalar kind of v.
func (v Value) Kind() Kind { return v.kind }

// AsChar returns v's value if it is a char element.
func (v Value) AsChar() (byte, bool) {
	if v.kind != KindChar {
		return 0, false
	}
	return v.b, true
}

// AsByte returns v's value if it is a byte element.
func (v Value) AsByte() (byte, bool) {
	if v.kind != KindByte {
		return 0, false
	}
	return v.b, true
}

// AsI16 returns v's value if it is an i16 element.
func (v Value) AsI16() (int16, bool) {
	if v.kind != KindI16 {
		return 0, false
	}
	return v.i16, true
}

// AsF32 returns v's value if it is an f32 element.
func (v Value) AsF32() (float32, bool) {
	if v.kind != KindF32 {
		return 0, false
	}
	return v.f32, true
}
