package codec

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/wirebind/wirebind/container"
	"github.com/wirebind/wirebind/layout"
)

// MaxFixedSize bounds the raw fixed-layout path (§4.4.5): an aggregate
// is only FastPathEligible up to this many bytes, so it is large enough
// to back every eligible EncodeBEFixed/EncodeLEFixed call.
const MaxFixedSize = 256

// FixedSizeConstant returns an eligible aggregate's exact encoded size
// and true; false if c is not FastPathEligible, mirroring §6.2's
// "if eligible" generated members.
func (c *Codec[T]) FixedSizeConstant() (int, bool) {
	if !c.core.plan.FastPathEligible {
		return 0, false
	}

	return c.core.plan.MinSizeBytes, true
}

// EncodeBEFixed writes v at compile-time-known field offsets into a
// stack array sized to the fast path's own MaxFixedSize bound, skipping
// BufferSink's growth bookkeeping entirely (§4.6 item 4's "raw
// fixed-layout" encoder). It returns an error if c is not
// FastPathEligible; check FixedSizeConstant first.
func (c *Codec[T]) EncodeBEFixed(v T) ([MaxFixedSize]byte, int, error) {
	return c.encodeFixedArray(v, binary.BigEndian)
}

// EncodeLEFixed is EncodeBEFixed with little-endian byte order.
func (c *Codec[T]) EncodeLEFixed(v T) ([MaxFixedSize]byte, int, error) {
	return c.encodeFixedArray(v, binary.LittleEndian)
}

func (c *Codec[T]) encodeFixedArray(v T, order binary.ByteOrder) ([MaxFixedSize]byte, int, error) {
	var buf [MaxFixedSize]byte
	n, err := c.encodeFixedInto(v, buf[:], order)

	return buf, n, err
}

// EncodeBEFixedInto writes v directly into the caller-supplied buf at
// compile-time-known offsets, the unsafe direct-to-buffer variant of
// §6.2: it bypasses the growable-sink abstraction that EncodeBEInto
// uses, trusting the caller to pass a buf at least FixedSizeConstant()
// bytes long.
func (c *Codec[T]) EncodeBEFixedInto(v T, buf []byte) error {
	_, err := c.encodeFixedInto(v, buf, binary.BigEndian)
	return err
}

// EncodeLEFixedInto is EncodeBEFixedInto with little-endian byte order.
func (c *Codec[T]) EncodeLEFixedInto(v T, buf []byte) error {
	_, err := c.encodeFixedInto(v, buf, binary.LittleEndian)
	return err
}

func (c *Codec[T]) encodeFixedInto(v T, buf []byte, order binary.ByteOrder) (int, error) {
	if !c.core.plan.FastPathEligible {
		return 0, fmt.Errorf("codec: %s is not fast-path eligible (§4.4.5)", c.core.plan.AggregateName)
	}

	return c.core.encodeFixed(reflect.ValueOf(v), buf, order)
}

// encodeFixed writes every binding directly at its FieldPlan.StartBit
// byte offset, with no runtime cursor and no intermediate sink growth.
// Valid only when the plan is FastPathEligible, so every field here is
// byte-aligned and its width is known without looking at any other
// field's value.
func (c *core) encodeFixed(v reflect.Value, buf []byte, order binary.ByteOrder) (int, error) {
	for _, b := range c.bindings {
		fp := b.fp
		off := int(fp.StartBit / 8)
		src := v.Field(b.index)

		switch fp.Kind {
		case layout.KindPrimitiveAligned:
			if _, _, err := writePrimitiveFromReflect(buf, off, fieldOrder(order, fp), fp, src); err != nil {
				return 0, err
			}

		case layout.KindFixedArray:
			if err := container.WriteFixedArray(buf, off, src.Interface().([]byte), fp.Field.FixedArrayLen, fp.Name); err != nil {
				return 0, err
			}

		case layout.KindEnumerationByte:
			disc := reflectToDiscriminant(src)
			if err := container.WriteEnumerationByte(buf, off, fieldOrder(order, fp), fp.Field.Enum, disc, fp.Name); err != nil {
				return 0, err
			}

		case layout.KindFlagEnumerationByte:
			disc := reflectToDiscriminant(src)
			if err := container.WriteFlagEnumerationByte(buf, off, fieldOrder(order, fp), fp.Field.Enum, disc, fp.Name); err != nil {
				return 0, err
			}

		default:
			return 0, fmt.Errorf("codec: field %q has kind %s, not eligible for the fixed-layout path", fp.Name, fp.Kind)
		}
	}

	return c.plan.MinSizeBytes, nil
}
