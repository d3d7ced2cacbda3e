// Package container implements the Container Codec Generator (design
// §4.5): read/write routines for the byte-aligned field shapes —
// primitives, fixed arrays, sequences, text, optional-of-primitive,
// and enumerations. Nested aggregates have no routine here; codec
// walks them field by field. Every function here is a
// pure, allocation-lean routine operating on caller-provided byte
// slices and an explicit byte offset; none of them know about bit
// packing (that is bitcodec's job) or about assembling a whole
// aggregate (that is codec's job, the Assembler).
package container

import (
	"encoding/binary"
	"math"

	"github.com/wirebind/wirebind/errs"
	"github.com/wirebind/wirebind/uint128"
)

// ReadUint8 through ReadUint64/WriteUint64 read/write whole-byte
// unsigned integers at a byte offset using the given byte order.

func ReadUint8(buf []byte, offset int, field string) (uint8, error) {
	if err := requireBytes(buf, offset, 1, field); err != nil {
		return 0, err
	}

	return buf[offset], nil
}

func WriteUint8(buf []byte, offset int, v uint8, field string) error {
	if err := requireBytes(buf, offset, 1, field); err != nil {
		return err
	}

	buf[offset] = v

	return nil
}

func ReadUint16(buf []byte, offset int, order binary.ByteOrder, field string) (uint16, error) {
	if err := requireBytes(buf, offset, 2, field); err != nil {
		return 0, err
	}

	return order.Uint16(buf[offset:]), nil
}

func WriteUint16(buf []byte, offset int, v uint16, order binary.ByteOrder, field string) error {
	if err := requireBytes(buf, offset, 2, field); err != nil {
		return err
	}

	order.PutUint16(buf[offset:], v)

	return nil
}

func ReadUint32(buf []byte, offset int, order binary.ByteOrder, field string) (uint32, error) {
	if err := requireBytes(buf, offset, 4, field); err != nil {
		return 0, err
	}

	return order.Uint32(buf[offset:]), nil
}

func WriteUint32(buf []byte, offset int, v uint32, order binary.ByteOrder, field string) error {
	if err := requireBytes(buf, offset, 4, field); err != nil {
		return err
	}

	order.PutUint32(buf[offset:], v)

	return nil
}

func ReadUint64(buf []byte, offset int, order binary.ByteOrder, field string) (uint64, error) {
	if err := requireBytes(buf, offset, 8, field); err != nil {
		return 0, err
	}

	return order.Uint64(buf[offset:]), nil
}

func WriteUint64(buf []byte, offset int, v uint64, order binary.ByteOrder, field string) error {
	if err := requireBytes(buf, offset, 8, field); err != nil {
		return err
	}

	order.PutUint64(buf[offset:], v)

	return nil
}

// ReadUint128/WriteUint128 read/write a 16-byte unsigned integer. For
// big-endian the first 8 bytes are the high half; for little-endian
// the layout is the mirror image (the whole 16-byte run is treated as
// one little-endian integer), matching how ReadUint64/WriteUint64
// already treat order.
func ReadUint128(buf []byte, offset int, order binary.ByteOrder, field string) (uint128.Uint128, error) {
	if err := requireBytes(buf, offset, 16, field); err != nil {
		return uint128.Uint128{}, err
	}

	if isBigEndian(order) {
		return uint128.Uint128{
			Hi: binary.BigEndian.Uint64(buf[offset:]),
			Lo: binary.BigEndian.Uint64(buf[offset+8:]),
		}, nil
	}

	return uint128.Uint128{
		Lo: binary.LittleEndian.Uint64(buf[offset:]),
		Hi: binary.LittleEndian.Uint64(buf[offset+8:]),
	}, nil
}

func WriteUint128(buf []byte, offset int, v uint128.Uint128, order binary.ByteOrder, field string) error {
	if err := requireBytes(buf, offset, 16, field); err != nil {
		return err
	}

	if isBigEndian(order) {
		binary.BigEndian.PutUint64(buf[offset:], v.Hi)
		binary.BigEndian.PutUint64(buf[offset+8:], v.Lo)
		return nil
	}

	binary.LittleEndian.PutUint64(buf[offset:], v.Lo)
	binary.LittleEndian.PutUint64(buf[offset+8:], v.Hi)

	return nil
}

// isBigEndian distinguishes binary.BigEndian from binary.LittleEndian
// by probing a known 2-byte pattern, since both satisfy the same
// interface with no exported marker.
func isBigEndian(order binary.ByteOrder) bool {
	var probe [2]byte
	order.PutUint16(probe[:], 0x0102)
	return probe[0] == 0x01
}

func ReadFloat32(buf []byte, offset int, order binary.ByteOrder, field string) (float32, error) {
	bits, err := ReadUint32(buf, offset, order, field)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(bits), nil
}

func WriteFloat32(buf []byte, offset int, v float32, order binary.ByteOrder, field string) error {
	return WriteUint32(buf, offset, math.Float32bits(v), order, field)
}

func ReadFloat64(buf []byte, offset int, order binary.ByteOrder, field string) (float64, error) {
	bits, err := ReadUint64(buf, offset, order, field)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(bits), nil
}

func WriteFloat64(buf []byte, offset int, v float64, order binary.ByteOrder, field string) error {
	return WriteUint64(buf, offset, math.Float64bits(v), order, field)
}

// ReadBool decodes a boolean field: exactly 0x00 or 0x01 (§6.1).
func ReadBool(buf []byte, offset int, field string) (bool, error) {
	b, err := ReadUint8(buf, offset, field)
	if err != nil {
		return false, err
	}

	switch b {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, errs.NewFieldError(errs.ErrInvalidBoolean, field).WithValue(uint64(b))
	}
}

func WriteBool(buf []byte, offset int, v bool, field string) error {
	var b uint8
	if v {
		b = 0x01
	}

	return WriteUint8(buf, offset, b, field)
}

const (
	surrogateLow  = 0xD800
	surrogateHigh = 0xDFFF
	maxCodePoint  = 0x10FFFF
)

// ReadChar decodes a Unicode scalar value: a 32-bit integer that must
// be <= 0x10FFFF and outside the surrogate range (§6.1).
func ReadChar(buf []byte, offset int, order binary.ByteOrder, field string) (rune, error) {
	v, err := ReadUint32(buf, offset, order, field)
	if err != nil {
		return 0, err
	}

	if v > maxCodePoint || (v >= surrogateLow && v <= surrogateHigh) {
		return 0, errs.NewFieldError(errs.ErrInvalidChar, field).WithValue(uint64(v))
	}

	return rune(v), nil
}

func WriteChar(buf []byte, offset int, v rune, order binary.ByteOrder, field string) error {
	u := uint32(v)
	if u > maxCodePoint || (u >= surrogateLow && u <= surrogateHigh) {
		return errs.NewFieldError(errs.ErrValueOutOfRange, field).WithValue(uint64(u)).WithMax(maxCodePoint)
	}

	return WriteUint32(buf, offset, u, order, field)
}

// requireBytes checks that n bytes are available at offset in buf.
func requireBytes(buf []byte, offset, n int, field string) error {
	if offset < 0 || offset+n > len(buf) {
		return errs.NewFieldError(errs.ErrInsufficientData, field).WithCounts(offset+n, len(buf))
	}

	return nil
}
