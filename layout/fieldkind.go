package layout

// FieldKind is the operation plan the Analyzer decides for one field
// (§3.4 FieldPlan.kind) — the thing the Bit Codec Generator and
// Container Codec Generator dispatch on.
type FieldKind uint8

const (
	KindInvalid FieldKind = iota
	KindBitPacked
	KindPrimitiveAligned
	KindFixedArray
	KindSequenceFixed
	KindSequenceFromField
	KindSequenceExpr
	KindSequenceMarkerUntil
	KindSequenceMarkerAfter
	KindSequenceMultiSegment
	KindTextFixed
	KindTextFromField
	KindTextExpr
	KindTextMarkerUntil
	KindTextMarkerAfter
	KindNested
	KindOptionalPrimitive
	KindEnumerationByte
	KindEnumerationBits
	KindFlagEnumerationByte
)

func (k FieldKind) String() string {
	switch k {
	case KindBitPacked:
		return "bit-packed"
	case KindPrimitiveAligned:
		return "primitive-aligned"
	case KindFixedArray:
		return "fixed-array"
	case KindSequenceFixed:
		return "sequence-fixed"
	case KindSequenceFromField:
		return "sequence-from-field"
	case KindSequenceExpr:
		return "sequence-expr"
	case KindSequenceMarkerUntil:
		return "sequence-marker-until"
	case KindSequenceMarkerAfter:
		return "sequence-marker-after"
	case KindSequenceMultiSegment:
		return "sequence-multi-segment"
	case KindTextFixed:
		return "text-fixed"
	case KindTextFromField:
		return "text-from-field"
	case KindTextExpr:
		return "text-expr"
	case KindTextMarkerUntil:
		return "text-marker-until"
	case KindTextMarkerAfter:
		return "text-marker-after"
	case KindNested:
		return "nested"
	case KindOptionalPrimitive:
		return "optional-primitive"
	case KindEnumerationByte:
		return "enumeration-byte"
	case KindEnumerationBits:
		return "enumeration-bits"
	case KindFlagEnumerationByte:
		return "flag-enumeration-byte"
	default:
		return "invalid"
	}
}

// IsVariableSize reports whether a field of this kind has a
// compile-time-unknown encoded length (§4.3 step 3: "variable kinds of
// unknown compile-time size advance the cursor symbolically").
func (k FieldKind) IsVariableSize() bool {
	switch k {
	case KindSequenceFromField, KindSequenceExpr, KindSequenceMarkerUntil,
		KindSequenceMarkerAfter, KindSequenceMultiSegment,
		KindTextFromField, KindTextExpr, KindTextMarkerUntil, KindTextMarkerAfter,
		KindNested:
		return true
	default:
		return false
	}
}

// IsUnboundedTail reports whether a field of this kind only terminates
// by consuming to end-of-input or to a marker that may be absent at the
// true end of the aggregate (I3's "unbounded trailing sequence
// contract").
func (k FieldKind) IsUnboundedTail() bool {
	switch k {
	case KindSequenceMarkerUntil, KindTextMarkerUntil,
		KindSequenceMarkerAfter, KindTextMarkerAfter:
		return true
	default:
		return false
	}
}
