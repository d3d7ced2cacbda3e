// Package schema defines the declaration-time data model a caller uses
// to describe a binary wire layout: FieldDescriptor, AggregateDescriptor,
// and EnumerationDescriptor (design §3.1), the declared-type variants a
// field can take (§3.2), and the normalized directives a field or
// enclosing declaration can carry (§3.3).
//
// Building a schema is the Go-idiomatic replacement for a procedural
// derive macro: a caller assembles an *Aggregate once, usually in a
// package-level var initializer, and hands it to layout.Compile, which
// runs the Type Classifier, Attribute Parser, and Layout Analyzer over
// it exactly once.
package schema

import "fmt"

// Kind identifies the declared-type variant of a field (§3.2).
type Kind uint8

const (
	// KindInvalid is the zero value; a Field left with this Kind is a
	// construction bug, never a valid schema element.
	KindInvalid Kind = iota

	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUint128
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt128

	KindFloat32
	KindFloat64
	KindBool
	KindChar // Unicode scalar value, 4 bytes wire width

	KindFixedArray // fixed-length array of bytes, compile-time length N
	KindSequence   // variable sequence of bytes or nested aggregates
	KindText       // owned text, validated UTF-8 at decode
	KindNested     // nested aggregate
	KindOptional   // optional-of-primitive
	KindEnum       // ordinary enumeration reference
	KindFlagEnum   // flag enumeration reference
)

// String implements fmt.Stringer, returning the kind's name.
func (k Kind) String() string {
	switch k {
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindUint128:
		return "uint128"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindInt128:
		return "int128"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindFixedArray:
		return "fixed-array"
	case KindSequence:
		return "sequence"
	case KindText:
		return "text"
	case KindNested:
		return "nested"
	case KindOptional:
		return "optional"
	case KindEnum:
		return "enum"
	case KindFlagEnum:
		return "flag-enum"
	default:
		return "invalid"
	}
}

// IsInteger reports whether k is one of the nine supported fixed-width
// integer variants.
func (k Kind) IsInteger() bool {
	switch k {
	case KindUint8, KindUint16, KindUint32, KindUint64, KindUint128,
		KindInt8, KindInt16, KindInt32, KindInt64, KindInt128:
		return true
	default:
		return false
	}
}

// IsSigned reports whether k is a signed integer variant. Panics if k
// is not an integer kind; callers must check IsInteger first.
func (k Kind) IsSigned() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64, KindInt128:
		return true
	case KindUint8, KindUint16, KindUint32, KindUint64, KindUint128:
		return false
	default:
		panic(fmt.Sprintf("schema: IsSigned called on non-integer kind %s", k))
	}
}

// IsPrimitive reports whether k is eligible as the payload of an
// Optional field or a fixed-width wire primitive: integers, floats,
// bool, and char.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindUint8, KindUint16, KindUint32, KindUint64, KindUint128,
		KindInt8, KindInt16, KindInt32, KindInt64, KindInt128,
		KindFloat32, KindFloat64, KindBool, KindChar:
		return true
	default:
		return false
	}
}

// StorageWidthBits returns the in-memory bit width of a primitive kind
// (§3.6 "storage width", distinct from a field's wire bit width). It
// panics for non-primitive kinds.
func (k Kind) StorageWidthBits() int {
	switch k {
	case KindUint8, KindInt8, KindBool:
		return 8
	case KindUint16, KindInt16:
		return 16
	case KindUint32, KindInt32, KindFloat32, KindChar:
		return 32
	case KindUint64, KindInt64, KindFloat64:
		return 64
	case KindUint128, KindInt128:
		return 128
	default:
		panic(fmt.Sprintf("schema: StorageWidthBits called on non-primitive kind %s", k))
	}
}
