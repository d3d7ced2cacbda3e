package layout

import (
	"fmt"

	"github.com/wirebind/wirebind/schema"
)

// FieldPlan is the per-field output of the Analyzer (§3.4). It pairs
// the declared schema.Field with the position the Analyzer resolved
// for it and the operation kind downstream codec packages dispatch on.
type FieldPlan struct {
	Field *schema.Field
	Name  string

	StartBit uint64
	// EndBit is only meaningful for fixed-width fields (BitWidth>0 or a
	// byte-aligned primitive/fixed-array); variable-length fields leave
	// it at 0 since their true end is only known at decode time.
	EndBit uint64

	Kind             FieldKind
	ByteOrder        schema.ByteOrder
	BitWidth         int
	StorageWidthBits int
	Signed           bool

	// SuspendedAlignment is true once this or any earlier field in the
	// same aggregate carried an auto bit-width (I8): later fields must
	// not assume a compile-time-known byte offset even when one is in
	// fact computable, and decode/encode fall back to cursor
	// arithmetic for the remainder of the aggregate.
	SuspendedAlignment bool
}

// Plan is the immutable, resolved layout for one schema.Aggregate —
// the run-time artifact that stands in for what a macro-based
// generator would emit at compile time (see package doc, DESIGN.md
// OQ-1). A Plan never changes after Compile returns it; concurrent
// decode/encode calls over the same Plan require no coordination
// (design §5).
type Plan struct {
	AggregateName string
	Fields        []*FieldPlan

	// MinSizeBytes is a lower bound on the encoded size (§4.6 artifact
	// 1): exact when IsFixedSize, otherwise the sum of every field's
	// minimum contribution (0 for variable fields).
	MinSizeBytes int
	IsFixedSize  bool

	// FastPathEligible mirrors §4.4.5: true iff no field is bit-packed,
	// no field is variable-length, no auto bit-width field has suspended
	// alignment, the aggregate is <= 256 bytes, and every field is a
	// byte-aligned primitive, a fixed array, or a byte-width (flag)
	// enumeration.
	FastPathEligible bool

	fingerprint uint64
}

// Compile runs the Layout Analyzer over agg: it resolves each field's
// FieldKind and bit position, enforces invariants I1-I8, and returns
// an immutable Plan. Compile is meant to run once per distinct
// Aggregate value, typically from a package-level var initializer; see
// Registry for a cache keyed by Fingerprint when an Aggregate's shape
// is only known at run time.
func Compile(agg *schema.Aggregate) (*Plan, error) {
	if agg == nil {
		return nil, fmt.Errorf("layout: cannot compile a nil aggregate")
	}

	if err := agg.Err(); err != nil {
		return nil, err
	}

	an := &analyzer{agg: agg, seen: make(map[string]*FieldPlan, len(agg.Fields))}

	for _, f := range agg.Fields {
		an.analyzeField(f)
		if !an.diags.Empty() {
			break
		}
	}

	if !an.diags.Empty() {
		return nil, an.diags.First()
	}

	if !an.cursor.ByteAligned() {
		an.diags.add(agg.Name, an.lastField, "I1", "aggregate ends mid-byte: a bit-packed run never closed on a byte boundary")
		return nil, an.diags.First()
	}

	plan := &Plan{
		AggregateName: agg.Name,
		Fields:        an.plans,
		MinSizeBytes:  int(an.cursor.Byte()),
		IsFixedSize:   !an.sawVariable,
	}
	plan.FastPathEligible = computeFastPathEligible(plan, an)
	plan.fingerprint = fingerprintAggregate(agg)

	return plan, nil
}

// Fingerprint returns the plan's content-derived identifier (§12/§13),
// stable across repeated Compile calls on an equal schema shape.
func (p *Plan) Fingerprint() uint64 {
	return p.fingerprint
}

// FieldByName returns the resolved plan for the named field, or nil.
func (p *Plan) FieldByName(name string) *FieldPlan {
	for _, fp := range p.Fields {
		if fp.Name == name {
			return fp
		}
	}

	return nil
}

// analyzer carries the Analyzer's running state (§4.3) across the
// fields of a single aggregate.
type analyzer struct {
	agg   *schema.Aggregate
	diags Diagnostics

	cursor     BitCursor
	plans      []*FieldPlan
	seen       map[string]*FieldPlan
	lastField  string
	sawTail    bool // an unbounded-tail field has already been placed (I3)
	suspended  bool // I8: an auto bit-width field has been seen
	sawVariable bool
}

func (an *analyzer) fail(field, invariant, reason string) {
	an.diags.add(an.agg.Name, field, invariant, reason)
}

func (an *analyzer) analyzeField(f *schema.Field) {
	an.lastField = f.Name

	if an.sawTail {
		an.fail(f.Name, "I3", "no field may follow the aggregate's unbounded tail field")
		return
	}

	kind, bitWidth, storageWidth, signed := an.classify(f)
	if !an.diags.Empty() {
		return
	}

	if err := an.checkBackwardRefs(f); err != nil {
		an.fail(f.Name, "I4", err.Error())
		return
	}

	bitPacked := kind == KindBitPacked || kind == KindEnumerationBits

	if bitPacked {
		if bitWidth < 1 || bitWidth > storageWidth {
			an.fail(f.Name, "I2", fmt.Sprintf("bit width %d out of range for storage width %d", bitWidth, storageWidth))
			return
		}
	} else {
		if !an.cursor.ByteAligned() {
			an.fail(f.Name, "I1", "field must begin on a byte boundary; the preceding bit-packed run did not close on one")
			return
		}
	}

	fp := &FieldPlan{
		Field:              f,
		Name:               f.Name,
		StartBit:           uint64(an.cursor),
		Kind:               kind,
		ByteOrder:          f.Directives.ByteOrderPin,
		BitWidth:           bitWidth,
		StorageWidthBits:   storageWidth,
		Signed:             signed,
		SuspendedAlignment: an.suspended,
	}

	if kind.IsUnboundedTail() {
		an.sawTail = true
	}

	// A nested aggregate whose own last field is an unbounded tail
	// carries that tail into this aggregate, so I3 applies to it too.
	for inner := f.Nested; kind == KindNested && inner != nil && len(inner.Fields) > 0; {
		last := inner.Fields[len(inner.Fields)-1]
		if last.Kind == schema.KindNested {
			inner = last.Nested
			continue
		}
		mode := last.Directives.SizeMode
		if (last.Kind == schema.KindSequence || last.Kind == schema.KindText) &&
			((mode == schema.SizeMarkerUntil && last.Nested == nil) || mode == schema.SizeMarkerAfter) {
			an.sawTail = true
		}
		break
	}

	if f.Directives.BitWidthAuto {
		an.suspended = true
	}

	if kind.IsVariableSize() {
		an.sawVariable = true
		fp.EndBit = 0
	} else {
		width := uint64(bitWidth)
		if !bitPacked {
			width = uint64(storageWidth)
		}
		an.cursor = an.cursor.Advance(width)
		fp.EndBit = uint64(an.cursor)
	}

	an.plans = append(an.plans, fp)
	an.seen[f.Name] = fp
}

// classify resolves a field's FieldKind, effective bit width, storage
// width, and signedness (Type Classifier §4.1 feeding the Analyzer).
func (an *analyzer) classify(f *schema.Field) (kind FieldKind, bitWidth, storageWidth int, signed bool) {
	d := &f.Directives

	switch f.Kind {
	case schema.KindFixedArray:
		return KindFixedArray, 0, f.FixedArrayLen * 8, false

	case schema.KindSequence:
		return an.classifySize(f, sizeKindSequence)

	case schema.KindText:
		return an.classifySize(f, sizeKindText)

	case schema.KindNested:
		return KindNested, 0, 0, false

	case schema.KindOptional:
		storageWidth = 8 + f.OptionalElemKind.StorageWidthBits()
		return KindOptionalPrimitive, 0, storageWidth, false

	case schema.KindEnum:
		return an.classifyEnum(f, false)

	case schema.KindFlagEnum:
		return an.classifyEnum(f, true)

	default:
		if !f.Kind.IsPrimitive() {
			an.fail(f.Name, "classify", fmt.Sprintf("unsupported declared kind %s", f.Kind))
			return KindInvalid, 0, 0, false
		}

		storageWidth = f.Kind.StorageWidthBits()
		signed = f.Kind.IsInteger() && f.Kind.IsSigned()

		if d.BitWidth > 0 {
			return KindBitPacked, d.BitWidth, storageWidth, signed
		}
		if d.BitWidthAuto {
			an.fail(f.Name, "I2", "bit-width(auto) is only legal on an enumeration reference")
			return KindInvalid, 0, 0, false
		}

		return KindPrimitiveAligned, storageWidth, storageWidth, signed
	}
}

func (an *analyzer) classifyEnum(f *schema.Field, flags bool) (kind FieldKind, bitWidth, storageWidth int, signed bool) {
	e := f.Enum
	if e == nil {
		an.fail(f.Name, "classify", "enumeration reference has no Enumeration bound")
		return KindInvalid, 0, 0, false
	}

	storageWidth = enumStorageWidth(e.MaxDiscriminant())

	if storageWidth < 64 && e.MaxDiscriminant() >= uint64(1)<<uint(storageWidth) {
		an.fail(f.Name, "I7", "a declared discriminant does not fit the enumeration's storage width")
		return KindInvalid, 0, 0, false
	}

	if flags {
		if f.Directives.BitWidth > 0 || f.Directives.BitWidthAuto {
			an.fail(f.Name, "classify", "flag enumerations are always stored at their natural width, not bit-packed")
			return KindInvalid, 0, 0, false
		}

		return KindFlagEnumerationByte, 0, storageWidth, false
	}

	if f.Directives.BitWidthAuto {
		return KindEnumerationBits, e.BitsNeeded(), storageWidth, false
	}

	if f.Directives.BitWidth > 0 {
		return KindEnumerationBits, f.Directives.BitWidth, storageWidth, false
	}

	return KindEnumerationByte, 0, storageWidth, false
}

// enumStorageWidth picks the smallest standard storage width (8, 16,
// 32, or 64 bits) that can hold max.
func enumStorageWidth(max uint64) int {
	switch {
	case max <= 0xFF:
		return 8
	case max <= 0xFFFF:
		return 16
	case max <= 0xFFFFFFFF:
		return 32
	default:
		return 64
	}
}

type sizeKindGroup uint8

const (
	sizeKindSequence sizeKindGroup = iota
	sizeKindText
)

// classifySize maps a Sequence/Text field's SizeMode to the
// corresponding FieldKind.
func (an *analyzer) classifySize(f *schema.Field, group sizeKindGroup) (kind FieldKind, bitWidth, storageWidth int, signed bool) {
	sequence := group == sizeKindSequence

	switch f.Directives.SizeMode {
	case schema.SizeFixed:
		if sequence {
			return KindSequenceFixed, 0, f.Directives.FixedSize * 8, false
		}

		return KindTextFixed, 0, f.Directives.FixedSize * 8, false

	case schema.SizeFromField:
		if sequence {
			return KindSequenceFromField, 0, 0, false
		}

		return KindTextFromField, 0, 0, false

	case schema.SizeExpr:
		if sequence {
			return KindSequenceExpr, 0, 0, false
		}

		return KindTextExpr, 0, 0, false

	case schema.SizeMarkerUntil:
		if f.Nested != nil {
			if f.Directives.SegmentCountMode == schema.SizeNone {
				an.fail(f.Name, "I5", "a multi-segment (sequence-of-sequences) field requires a segment-count directive")
				return KindInvalid, 0, 0, false
			}

			return KindSequenceMultiSegment, 0, 0, false
		}

		if sequence {
			return KindSequenceMarkerUntil, 0, 0, false
		}

		return KindTextMarkerUntil, 0, 0, false

	case schema.SizeMarkerAfter:
		if sequence {
			return KindSequenceMarkerAfter, 0, 0, false
		}

		return KindTextMarkerAfter, 0, 0, false

	default:
		an.fail(f.Name, "classify", "sequence/text field has no size directive")
		return KindInvalid, 0, 0, false
	}
}

// checkBackwardRefs enforces I4: a size-from/size-expr/segment-count-from
// dependency only names a field declared strictly earlier in the same
// aggregate.
func (an *analyzer) checkBackwardRefs(f *schema.Field) error {
	d := &f.Directives

	check := func(path string) error {
		if path == "" {
			return nil
		}

		root := firstPathSegment(path)
		if _, ok := an.seen[root]; !ok {
			return fmt.Errorf("references field %q which is not declared earlier", path)
		}

		return nil
	}

	if err := check(d.SizeFromPath); err != nil {
		return err
	}

	if d.SizeMode == schema.SizeExpr && d.SizeExpr() != nil {
		for _, ref := range d.SizeExpr().Refs(nil) {
			if err := check(ref); err != nil {
				return err
			}
		}
	}

	return check(d.SegmentCountFromPath)
}

func firstPathSegment(path string) string {
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			return path[:i]
		}
	}

	return path
}

func computeFastPathEligible(p *Plan, an *analyzer) bool {
	if an.sawVariable || an.suspended {
		return false
	}

	if !p.IsFixedSize || p.MinSizeBytes > 256 {
		return false
	}

	for _, fp := range p.Fields {
		switch fp.Kind {
		case KindPrimitiveAligned, KindFixedArray, KindEnumerationByte, KindFlagEnumerationByte:
		default:
			return false
		}
	}

	return true
}
