package schema

import "fmt"

// Field describes one declared field of an Aggregate (§3.1
// FieldDescriptor). It pairs a name, a Kind, the normalized Directives
// that apply to it, and for nested/enum/optional kinds a reference to
// the thing being nested or wrapped.
type Field struct {
	Name string
	Kind Kind

	Directives Directives

	// ElemKind is the element kind for KindFixedArray/KindSequence when
	// the element is itself a primitive (not a nested aggregate).
	ElemKind Kind

	// FixedArrayLen is the compile-time element count for KindFixedArray.
	FixedArrayLen int

	// OptionalElemKind is the wrapped primitive kind for KindOptional.
	OptionalElemKind Kind

	// Nested is the referenced aggregate for KindNested and for a
	// KindSequence whose elements are aggregates rather than bytes.
	Nested *Aggregate

	// Enum is the referenced enumeration for KindEnum/KindFlagEnum.
	Enum *Enumeration

	buildErr error
}

// apply runs every option against f.Directives, recording the first
// failure (construction is fail-fast but the error surfaces at
// schema-build time through Aggregate.Err, not via a panic, so a
// caller assembling a schema in a var initializer gets a normal error
// return from layout.Compile).
func (f *Field) apply(opts []FieldOption) {
	for _, opt := range opts {
		if err := opt(&f.Directives); err != nil {
			f.buildErr = fmt.Errorf("field %q: %w", f.Name, err)
			return
		}
	}
}

// NewField declares a field of a primitive kind (integer, float, bool,
// or char). Use WithBitWidth to bit-pack it; an unpacked primitive
// occupies its full storage width on the wire.
func NewField(name string, kind Kind, opts ...FieldOption) *Field {
	if !kind.IsPrimitive() {
		return &Field{Name: name, Kind: kind, buildErr: fmt.Errorf("field %q: kind %s is not a primitive", name, kind)}
	}

	f := &Field{Name: name, Kind: kind}
	f.apply(opts)

	return f
}

// FixedArray declares a fixed-length array of n raw bytes.
func FixedArray(name string, n int, opts ...FieldOption) *Field {
	f := &Field{Name: name, Kind: KindFixedArray, ElemKind: KindUint8, FixedArrayLen: n}
	if n < 0 {
		f.buildErr = fmt.Errorf("field %q: fixed array length must be >= 0, got %d", name, n)
		return f
	}

	f.apply(opts)

	return f
}

// Sequence declares a variable-length sequence of raw bytes, whose
// length is resolved by exactly one size directive among opts
// (fixed-size, size-from, size-expr, marker-until, marker-after).
func Sequence(name string, opts ...FieldOption) *Field {
	f := &Field{Name: name, Kind: KindSequence, ElemKind: KindUint8}
	f.apply(opts)

	if f.buildErr == nil && f.Directives.SizeMode == SizeNone {
		f.buildErr = fmt.Errorf("field %q: sequence requires a size directive", name)
	}

	return f
}

// SequenceOfAggregate declares a variable-length sequence whose
// elements are instances of elem, with the same size-directive
// requirements as Sequence.
func SequenceOfAggregate(name string, elem *Aggregate, opts ...FieldOption) *Field {
	f := &Field{Name: name, Kind: KindSequence, Nested: elem}
	if elem == nil {
		f.buildErr = fmt.Errorf("field %q: nested aggregate must not be nil", name)
		return f
	}

	f.apply(opts)

	if f.buildErr == nil && f.Directives.SizeMode == SizeNone {
		f.buildErr = fmt.Errorf("field %q: sequence requires a size directive", name)
	}

	return f
}

// Text declares owned, UTF-8-validated text, with the same
// size-directive requirements as Sequence.
func Text(name string, opts ...FieldOption) *Field {
	f := &Field{Name: name, Kind: KindText}
	f.apply(opts)

	if f.buildErr == nil && f.Directives.SizeMode == SizeNone {
		f.buildErr = fmt.Errorf("field %q: text requires a size directive", name)
	}

	return f
}

// Nested declares a field whose value is an instance of agg, decoded
// and encoded recursively through agg's own plan.
func Nested(name string, agg *Aggregate, opts ...FieldOption) *Field {
	f := &Field{Name: name, Kind: KindNested, Nested: agg}
	if agg == nil {
		f.buildErr = fmt.Errorf("field %q: nested aggregate must not be nil", name)
		return f
	}

	f.apply(opts)

	return f
}

// Optional declares a field that is present or absent, signaled by a
// one-byte discriminant (0x00 absent, 0x01 present) ahead of elem.
func Optional(name string, elem Kind, opts ...FieldOption) *Field {
	if !elem.IsPrimitive() {
		return &Field{Name: name, Kind: KindOptional, buildErr: fmt.Errorf("field %q: optional payload kind %s is not a primitive", name, elem)}
	}

	f := &Field{Name: name, Kind: KindOptional, OptionalElemKind: elem}
	f.apply(opts)

	return f
}

// EnumField declares a field whose value is a discriminant of e,
// stored either at its natural byte width or bit-packed via
// WithBitWidth/WithAutoBitWidth.
func EnumField(name string, e *Enumeration, opts ...FieldOption) *Field {
	kind := KindEnum
	if e != nil && e.IsFlags {
		kind = KindFlagEnum
	}

	f := &Field{Name: name, Kind: kind, Enum: e}
	if e == nil {
		f.buildErr = fmt.Errorf("field %q: enumeration must not be nil", name)
		return f
	}
	if err := e.Err(); err != nil {
		f.buildErr = fmt.Errorf("field %q: %w", name, err)
		return f
	}

	f.apply(opts)

	return f
}

// Err returns the first construction error recorded against f, if any.
func (f *Field) Err() error {
	return f.buildErr
}
