package codec

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/wirebind/wirebind/bitcodec"
	"github.com/wirebind/wirebind/container"
	"github.com/wirebind/wirebind/errs"
	"github.com/wirebind/wirebind/layout"
	"github.com/wirebind/wirebind/schema"
	"github.com/wirebind/wirebind/uint128"
)

// encode walks c's bindings in order, writing v (a reflect.Value of
// c.typ) into st.sink starting at st.sinkBase.
func (c *core) encode(v reflect.Value, st *encodeState) error {
	for i, b := range c.bindings {
		if err := c.encodeField(v, st, b, i == len(c.bindings)-1); err != nil {
			return err
		}
	}

	return nil
}

func (c *core) encodeField(v reflect.Value, st *encodeState, b *fieldBinding, isLast bool) error {
	fp := b.fp
	src := v.Field(b.index)

	switch fp.Kind {
	case layout.KindPrimitiveAligned:
		width := primitiveByteWidth(fp.Field.Kind)
		off := st.sinkOffset()
		buf := st.sink.ensureLen(off + width)
		val, n64, err := writePrimitiveFromReflect(buf, off, fieldOrder(st.order, fp), fp, src)
		if err != nil {
			return err
		}
		_ = val
		st.record(fp.Name, n64)
		st.advanceBytes(width)

	case layout.KindBitPacked:
		bit := uint64(st.sinkBase)*8 + st.absBit()
		bitsNeeded := int(bit) + fp.BitWidth
		buf := st.sink.ensureLen((bitsNeeded + 7) / 8)
		raw, n64 := reflectToUint128(src, fp.Signed, fp.BitWidth)
		if err := bitcodec.WriteBits(buf, bit, fp.BitWidth, raw, fp.Name); err != nil {
			return err
		}
		st.record(fp.Name, n64)
		st.advanceBits(fp.BitWidth)

	case layout.KindFixedArray:
		n := fp.Field.FixedArrayLen
		off := st.sinkOffset()
		buf := st.sink.ensureLen(off + n)
		if err := container.WriteFixedArray(buf, off, src.Interface().([]byte), n, fp.Name); err != nil {
			return err
		}
		st.advanceBytes(n)

	case layout.KindSequenceFixed, layout.KindSequenceFromField, layout.KindSequenceExpr:
		if fp.Field.Nested != nil {
			n, err := c.resolveEncodedCount(st, fp, src.Len())
			if err != nil {
				return err
			}
			if n != src.Len() {
				return errs.NewFieldError(errs.ErrValueOutOfRange, fp.Name).WithCounts(n, src.Len())
			}
			return c.encodeAggregateSequence(st, src, b)
		}

		payload := src.Interface().([]byte)
		n, err := c.resolveEncodedCount(st, fp, len(payload))
		if err != nil {
			return err
		}
		off := st.sinkOffset()
		buf := st.sink.ensureLen(off + n)
		if err := container.WriteSequenceFixed(buf, off, payload, n, fp.Name); err != nil {
			return err
		}
		st.advanceBytes(n)

	case layout.KindSequenceMarkerUntil:
		payload := src.Interface().([]byte)
		off := st.sinkOffset()
		n := len(payload)
		if !isLast {
			n++
		}
		buf := st.sink.ensureLen(off + n)
		written, err := container.WriteMarkerUntil(buf, off, payload, fp.Field.Directives.Marker, isLast, fp.Name)
		if err != nil {
			return err
		}
		st.advanceBytes(written)

	case layout.KindSequenceMarkerAfter:
		payload := src.Interface().([]byte)
		off := st.sinkOffset()
		buf := st.sink.ensureLen(off + len(payload) + 1)
		written, err := container.WriteMarkerAfter(buf, off, payload, fp.Field.Directives.Marker, fp.Name)
		if err != nil {
			return err
		}
		st.advanceBytes(written)

	case layout.KindSequenceMultiSegment:
		marker := fp.Field.Directives.Marker
		if fp.Field.Nested != nil {
			return c.encodeAggregateMultiSegment(st, src, b, marker)
		}

		segs := src.Interface().([][]byte)
		total := 0
		for _, seg := range segs {
			total += len(seg) + 1
		}
		off := st.sinkOffset()
		buf := st.sink.ensureLen(off + total)
		written, err := container.WriteMultiSegment(buf, off, segs, marker, fp.Name)
		if err != nil {
			return err
		}
		st.advanceBytes(written)

	case layout.KindTextFixed, layout.KindTextFromField, layout.KindTextExpr:
		s := src.String()
		n, err := c.resolveEncodedCount(st, fp, len(s))
		if err != nil {
			return err
		}
		if n != len(s) {
			return errs.NewFieldError(errs.ErrValueOutOfRange, fp.Name).WithCounts(n, len(s))
		}
		off := st.sinkOffset()
		buf := st.sink.ensureLen(off + n)
		if err := container.WriteText(buf, off, s, fp.Name); err != nil {
			return err
		}
		st.advanceBytes(n)

	case layout.KindTextMarkerUntil:
		s := src.String()
		off := st.sinkOffset()
		n := len(s)
		if !isLast {
			n++
		}
		buf := st.sink.ensureLen(off + n)
		written, err := container.WriteMarkerUntil(buf, off, []byte(s), fp.Field.Directives.Marker, isLast, fp.Name)
		if err != nil {
			return err
		}
		st.advanceBytes(written)

	case layout.KindTextMarkerAfter:
		s := src.String()
		off := st.sinkOffset()
		buf := st.sink.ensureLen(off + len(s) + 1)
		written, err := container.WriteMarkerAfter(buf, off, []byte(s), fp.Field.Directives.Marker, fp.Name)
		if err != nil {
			return err
		}
		st.advanceBytes(written)

	case layout.KindNested:
		nst := newEncodeState(st.sink, st.sinkOffset(), st.order)
		if err := b.nested.encode(src, nst); err != nil {
			return err
		}
		st.advanceBytes(nst.byteOff)

	case layout.KindOptionalPrimitive:
		width := fp.Field.OptionalElemKind.StorageWidthBits() / 8
		off := st.sinkOffset()
		buf := st.sink.ensureLen(off + 1 + width)

		present := !src.IsNil()
		if err := container.WriteOptionalTag(buf, off, present, fp.Name); err != nil {
			return err
		}

		if present {
			if _, _, err := writePrimitiveFromReflect(buf, off+1, fieldOrder(st.order, fp), fp, src.Elem()); err != nil {
				return err
			}
		} else if err := container.ZeroPayload(buf, off+1, width, fp.Name); err != nil {
			return err
		}
		st.advanceBytes(1 + width)

	case layout.KindEnumerationByte:
		disc := reflectToDiscriminant(src)
		width := fp.StorageWidthBits / 8
		off := st.sinkOffset()
		buf := st.sink.ensureLen(off + width)
		if err := container.WriteEnumerationByte(buf, off, fieldOrder(st.order, fp), fp.Field.Enum, disc, fp.Name); err != nil {
			return err
		}
		st.record(fp.Name, int64(disc))
		st.advanceBytes(width)

	case layout.KindEnumerationBits:
		disc := reflectToDiscriminant(src)
		bit := uint64(st.sinkBase)*8 + st.absBit()
		bitsNeeded := int(bit) + fp.BitWidth
		buf := st.sink.ensureLen((bitsNeeded + 7) / 8)
		if !fp.Field.Enum.Contains(disc) {
			return errs.NewFieldError(errs.ErrInvalidDiscriminant, fp.Name).WithValue(disc)
		}
		if err := bitcodec.WriteBits(buf, bit, fp.BitWidth, uint128.FromUint64(disc), fp.Name); err != nil {
			return err
		}
		st.record(fp.Name, int64(disc))
		st.advanceBits(fp.BitWidth)

	case layout.KindFlagEnumerationByte:
		disc := reflectToDiscriminant(src)
		width := fp.StorageWidthBits / 8
		off := st.sinkOffset()
		buf := st.sink.ensureLen(off + width)
		if err := container.WriteFlagEnumerationByte(buf, off, fieldOrder(st.order, fp), fp.Field.Enum, disc, fp.Name); err != nil {
			return err
		}
		st.record(fp.Name, int64(disc))
		st.advanceBytes(width)

	default:
		return fmt.Errorf("codec: field %q has unhandled kind %s", fp.Name, fp.Kind)
	}

	return nil
}

// resolveEncodedCount returns the wire length to use for a sequence/
// text field being encoded: the directive's fixed size, or the value
// already recorded for the referenced from-field/expr field (written
// by its own earlier primitive field in st.scalars). The caller then
// checks this against the actual length of the data being written, so
// a struct whose length field disagrees with its payload's real
// length fails rather than silently encoding an inconsistent buffer.
func (c *core) resolveEncodedCount(st *encodeState, fp *layout.FieldPlan, actual int) (int, error) {
	d := &fp.Field.Directives

	switch d.SizeMode {
	case schema.SizeFixed:
		return d.FixedSize, nil
	case schema.SizeFromField:
		v, err := st.lookup(d.SizeFromPath)
		if err != nil {
			return 0, err
		}
		return checkNonNegative(v, fp.Name)
	case schema.SizeExpr:
		v, err := d.SizeExpr().Eval(st.lookup)
		if err != nil || v < 0 {
			return 0, errs.NewFieldError(errs.ErrSizeExprInvalid, fp.Name)
		}
		return int(v), nil
	default:
		return actual, nil
	}
}

func (c *core) encodeAggregateSequence(st *encodeState, src reflect.Value, b *fieldBinding) error {
	n := src.Len()
	off := st.byteOff

	for i := 0; i < n; i++ {
		nst := newEncodeState(st.sink, st.sinkBase+off, st.order)
		if err := b.nested.encode(src.Index(i), nst); err != nil {
			return err
		}
		off += nst.byteOff
	}

	st.advanceBytes(off - st.byteOff)

	return nil
}

func (c *core) encodeAggregateMultiSegment(st *encodeState, src reflect.Value, b *fieldBinding, marker byte) error {
	n := src.Len()
	off := st.byteOff

	for i := 0; i < n; i++ {
		inner := NewBufferSink()
		nst := newEncodeState(inner, 0, st.order)
		if err := b.nested.encode(src.Index(i), nst); err != nil {
			return err
		}

		segBuf := st.sink.ensureLen(st.sinkBase + off + len(inner.Bytes()) + 1)
		written, err := container.WriteMarkerUntil(segBuf, st.sinkBase+off, inner.Bytes(), marker, false, b.fp.Name)
		if err != nil {
			return err
		}
		off += written
	}

	st.advanceBytes(off - st.byteOff)

	return nil
}

// writePrimitiveFromReflect converts src (a reflect.Value bound to a
// primitive-kind struct field) to its Go-native wire type and writes
// it at offset, returning the int64 projection used for size lookups.
func writePrimitiveFromReflect(buf []byte, offset int, order binary.ByteOrder, fp *layout.FieldPlan, src reflect.Value) (any, int64, error) {
	val := reflectToPrimitiveValue(fp.Field.Kind, src)
	if err := writePrimitive(buf, offset, order, fp.Field.Kind, val, fp.Name); err != nil {
		return nil, 0, err
	}

	return val, reflectToInt64(fp.Field.Kind, src), nil
}

// reflectToPrimitiveValue converts src (whose Go type may be a named
// type over the expected underlying kind) to the exact Go-native value
// writePrimitive expects for kind k.
func reflectToPrimitiveValue(k schema.Kind, src reflect.Value) any {
	switch k {
	case schema.KindUint8:
		return uint8(src.Uint())
	case schema.KindUint16:
		return uint16(src.Uint())
	case schema.KindUint32:
		return uint32(src.Uint())
	case schema.KindUint64:
		return src.Uint()
	case schema.KindUint128:
		return src.Interface().(uint128.Uint128)
	case schema.KindInt8:
		return int8(src.Int())
	case schema.KindInt16:
		return int16(src.Int())
	case schema.KindInt32:
		return int32(src.Int())
	case schema.KindInt64:
		return src.Int()
	case schema.KindInt128:
		return src.Interface().(uint128.Uint128)
	case schema.KindFloat32:
		return float32(src.Float())
	case schema.KindFloat64:
		return src.Float()
	case schema.KindBool:
		return src.Bool()
	case schema.KindChar:
		return rune(src.Int())
	default:
		return nil
	}
}

// reflectToInt64 projects src to an int64 for size-reference
// bookkeeping, matching readPrimitive's projection for the same kind.
func reflectToInt64(k schema.Kind, src reflect.Value) int64 {
	switch k {
	case schema.KindUint8, schema.KindUint16, schema.KindUint32, schema.KindUint64:
		return int64(src.Uint())
	case schema.KindInt8, schema.KindInt16, schema.KindInt32, schema.KindInt64, schema.KindChar:
		return src.Int()
	case schema.KindBool:
		if src.Bool() {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// reflectToUint128 converts src to the raw (two's-complement, for a
// signed field) bit pattern bitcodec.WriteBits expects, along with its
// int64 projection for size-reference bookkeeping.
func reflectToUint128(src reflect.Value, signed bool, width int) (uint128.Uint128, int64) {
	if src.Type() == reflect.TypeOf(uint128.Uint128{}) {
		v := src.Interface().(uint128.Uint128)
		proj := int64(0)
		if v.IsUint64() {
			proj = int64(v.Lo)
		}
		return v, proj
	}

	if signed {
		n := src.Int()
		raw := uint128.FromUint64(uint64(n)).And(uint128.Mask1s(uint(width)))
		return raw, n
	}

	n := src.Uint()
	return uint128.FromUint64(n), int64(n)
}

// reflectToDiscriminant reads an enumeration field's declared
// discriminant value out of src, whatever unsigned width it is bound
// to in the caller's struct.
func reflectToDiscriminant(src reflect.Value) uint64 {
	return src.Uint()
}
