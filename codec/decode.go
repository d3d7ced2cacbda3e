package codec

import (
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/wirebind/wirebind/bitcodec"
	"github.com/wirebind/wirebind/container"
	"github.com/wirebind/wirebind/errs"
	"github.com/wirebind/wirebind/layout"
	"github.com/wirebind/wirebind/schema"
	"github.com/wirebind/wirebind/uint128"
)

// decode walks c's bindings in order, producing an addressable
// reflect.Value of c.typ. It is the untyped engine Codec[T].DecodeBE/
// DecodeLE call into.
func (c *core) decode(buf []byte, st *decodeState) (reflect.Value, error) {
	out := reflect.New(c.typ).Elem()

	for i, b := range c.bindings {
		if err := c.decodeField(buf, st, out, b, i == len(c.bindings)-1); err != nil {
			return reflect.Value{}, err
		}
	}

	return out, nil
}

func (c *core) decodeField(buf []byte, st *decodeState, out reflect.Value, b *fieldBinding, isLast bool) error {
	fp := b.fp
	dst := out.Field(b.index)

	switch fp.Kind {
	case layout.KindPrimitiveAligned:
		val, n64, err := readPrimitive(buf, st.byteOff, fieldOrder(st.order, fp), fp.Field.Kind, fp.Name)
		if err != nil {
			return err
		}
		setReflect(dst, val)
		st.record(fp.Name, n64)
		st.advanceBytes(primitiveByteWidth(fp.Field.Kind))

	case layout.KindBitPacked:
		raw, err := bitcodec.ReadBits(buf, st.absBit(), fp.BitWidth, fp.Name)
		if err != nil {
			return err
		}
		v := raw
		if fp.Signed {
			v = v.SignExtend(uint(fp.BitWidth))
		}
		setIntegerLike(dst, v)
		st.record(fp.Name, int64(v.Lo))
		st.advanceBits(fp.BitWidth)

	case layout.KindFixedArray:
		n := fp.Field.FixedArrayLen
		raw, err := container.ReadFixedArray(buf, st.byteOff, n, fp.Name)
		if err != nil {
			return err
		}
		setReflect(dst, raw)
		st.advanceBytes(n)

	case layout.KindSequenceFixed, layout.KindSequenceFromField, layout.KindSequenceExpr:
		n, err := c.resolveCount(st, fp)
		if err != nil {
			return err
		}

		if fp.Field.Nested != nil {
			return c.decodeAggregateSequence(buf, st, dst, b, n)
		}

		raw, err := container.ReadSequenceFixed(buf, st.byteOff, n, fp.Name)
		if err != nil {
			return err
		}
		setReflect(dst, raw)
		st.advanceBytes(n)

	case layout.KindSequenceMarkerUntil:
		raw, n, err := container.ReadMarkerUntil(buf, st.byteOff, fp.Field.Directives.Marker, isLast, fp.Name)
		if err != nil {
			return err
		}
		setReflect(dst, raw)
		st.advanceBytes(n)

	case layout.KindSequenceMarkerAfter:
		raw, n, err := container.ReadMarkerAfter(buf, st.byteOff, fp.Field.Directives.Marker, fp.Name)
		if err != nil {
			return err
		}
		setReflect(dst, raw)
		st.advanceBytes(n)

	case layout.KindSequenceMultiSegment:
		count, err := c.resolveSegmentCount(st, fp)
		if err != nil {
			return err
		}

		marker := fp.Field.Directives.Marker
		if fp.Field.Nested != nil {
			return c.decodeAggregateMultiSegment(buf, st, dst, b, marker, count)
		}

		segs, n, err := container.ReadMultiSegment(buf, st.byteOff, marker, count, fp.Name)
		if err != nil {
			return err
		}
		setReflect(dst, segs)
		st.advanceBytes(n)

	case layout.KindTextFixed, layout.KindTextFromField, layout.KindTextExpr:
		n, err := c.resolveCount(st, fp)
		if err != nil {
			return err
		}
		raw, err := container.ReadText(buf, st.byteOff, n, fp.Name)
		if err != nil {
			return err
		}
		setReflect(dst, raw)
		st.advanceBytes(n)

	case layout.KindTextMarkerUntil:
		raw, n, err := container.ReadMarkerUntil(buf, st.byteOff, fp.Field.Directives.Marker, isLast, fp.Name)
		if err != nil {
			return err
		}
		if err := validateUTF8(raw, fp.Name); err != nil {
			return err
		}
		setReflect(dst, string(raw))
		st.advanceBytes(n)

	case layout.KindTextMarkerAfter:
		raw, n, err := container.ReadMarkerAfter(buf, st.byteOff, fp.Field.Directives.Marker, fp.Name)
		if err != nil {
			return err
		}
		if err := validateUTF8(raw, fp.Name); err != nil {
			return err
		}
		setReflect(dst, string(raw))
		st.advanceBytes(n)

	case layout.KindNested:
		nst := newDecodeState(st.order)
		v, err := b.nested.decode(buf[st.byteOff:], nst)
		if err != nil {
			return err
		}
		dst.Set(v)
		st.advanceBytes(nst.byteOff)

	case layout.KindOptionalPrimitive:
		present, err := container.ReadOptionalTag(buf, st.byteOff, fp.Name)
		if err != nil {
			return err
		}
		payloadOff := st.byteOff + 1
		width := fp.Field.OptionalElemKind.StorageWidthBits() / 8

		if present {
			val, _, err := readPrimitive(buf, payloadOff, fieldOrder(st.order, fp), fp.Field.OptionalElemKind, fp.Name)
			if err != nil {
				return err
			}
			ptr := reflect.New(b.elemType)
			setReflect(ptr.Elem(), val)
			dst.Set(ptr)
		} else {
			dst.Set(reflect.Zero(dst.Type()))
		}
		st.advanceBytes(1 + width)

	case layout.KindEnumerationByte, layout.KindEnumerationBits:
		disc, width, err := c.decodeEnum(buf, st, fp, false)
		if err != nil {
			return err
		}
		setIntegerLike(dst, uint128.FromUint64(disc))
		st.record(fp.Name, int64(disc))
		if fp.Kind == layout.KindEnumerationBits {
			st.advanceBits(fp.BitWidth)
		} else {
			st.advanceBytes(width)
		}

	case layout.KindFlagEnumerationByte:
		disc, width, err := c.decodeEnum(buf, st, fp, true)
		if err != nil {
			return err
		}
		setIntegerLike(dst, uint128.FromUint64(disc))
		st.record(fp.Name, int64(disc))
		st.advanceBytes(width)

	default:
		return fmt.Errorf("codec: field %q has unhandled kind %s", fp.Name, fp.Kind)
	}

	return nil
}

func (c *core) decodeEnum(buf []byte, st *decodeState, fp *layout.FieldPlan, flags bool) (disc uint64, byteWidth int, err error) {
	e := fp.Field.Enum

	if fp.Kind == layout.KindEnumerationBits {
		raw, err := bitcodec.ReadBits(buf, st.absBit(), fp.BitWidth, fp.Name)
		if err != nil {
			return 0, 0, err
		}
		d := raw.Uint64()
		if !e.Contains(d) {
			return 0, 0, errs.NewFieldError(errs.ErrInvalidDiscriminant, fp.Name).WithValue(d)
		}
		return d, 0, nil
	}

	width := fp.StorageWidthBits / 8
	order := fieldOrder(st.order, fp)
	if flags {
		d, err := container.ReadFlagEnumerationByte(buf, st.byteOff, order, e, fp.Name)
		return d, width, err
	}

	d, err := container.ReadEnumerationByte(buf, st.byteOff, order, e, fp.Name)
	return d, width, err
}

// resolveCount returns a sequence/text field's byte (or, for a
// sequence-of-aggregate field, element) count from its size directive.
func (c *core) resolveCount(st *decodeState, fp *layout.FieldPlan) (int, error) {
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
		return 0, fmt.Errorf("codec: field %q has no resolvable size", fp.Name)
	}
}

func (c *core) resolveSegmentCount(st *decodeState, fp *layout.FieldPlan) (int, error) {
	d := &fp.Field.Directives

	switch d.SegmentCountMode {
	case schema.SizeFixed:
		return d.SegmentCountFixed, nil
	case schema.SizeFromField:
		v, err := st.lookup(d.SegmentCountFromPath)
		if err != nil {
			return 0, err
		}
		return checkNonNegative(v, fp.Name)
	default:
		return 0, fmt.Errorf("codec: field %q has no resolvable segment count", fp.Name)
	}
}

func checkNonNegative(v int64, field string) (int, error) {
	if v < 0 {
		return 0, errs.NewFieldError(errs.ErrValueOutOfRange, field).WithValue(uint64(v))
	}

	return int(v), nil
}

func (c *core) decodeAggregateSequence(buf []byte, st *decodeState, dst reflect.Value, b *fieldBinding, count int) error {
	slice := reflect.MakeSlice(dst.Type(), count, count)

	off := st.byteOff
	for i := 0; i < count; i++ {
		nst := newDecodeState(st.order)
		v, err := b.nested.decode(buf[off:], nst)
		if err != nil {
			return err
		}
		slice.Index(i).Set(v)
		off += nst.byteOff
	}

	dst.Set(slice)
	st.advanceBytes(off - st.byteOff)

	return nil
}

func (c *core) decodeAggregateMultiSegment(buf []byte, st *decodeState, dst reflect.Value, b *fieldBinding, marker byte, count int) error {
	slice := reflect.MakeSlice(dst.Type(), 0, count)

	off := st.byteOff
	for i := 0; i < count; i++ {
		segBuf, n, err := container.ReadMarkerUntil(buf, off, marker, false, b.fp.Name)
		if err != nil {
			return err
		}

		nst := newDecodeState(st.order)
		v, err := b.nested.decode(segBuf, nst)
		if err != nil {
			return err
		}

		slice = reflect.Append(slice, v)
		off += n
	}

	dst.Set(slice)
	st.advanceBytes(off - st.byteOff)

	return nil
}

// setReflect assigns val into dst, converting to dst's exact type so a
// caller-declared named type (type Permissions uint8) works the same
// as its underlying type.
func setReflect(dst reflect.Value, val any) {
	dst.Set(reflect.ValueOf(val).Convert(dst.Type()))
}

// setIntegerLike assigns a uint128.Uint128 bit pattern into dst,
// narrowing to dst's underlying integer width (or setting the full
// Uint128 when dst's type is uint128.Uint128 itself).
func setIntegerLike(dst reflect.Value, v uint128.Uint128) {
	if dst.Type() == reflect.TypeOf(uint128.Uint128{}) {
		dst.Set(reflect.ValueOf(v))
		return
	}

	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.SetInt(int64(v.Lo))
	default:
		dst.SetUint(v.Lo)
	}
}

func validateUTF8(raw []byte, field string) error {
	if !utf8.Valid(raw) {
		return errs.NewFieldError(errs.ErrInvalidUTF8, field)
	}

	return nil
}
