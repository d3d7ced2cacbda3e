// Package bitcodec implements the Bit Codec Generator (design §4.4),
// the part of the system responsible for packing and unpacking integer
// fields of arbitrary bit width (1..=128) at arbitrary bit offsets,
// including fields that span several bytes. Bit ordering is
// MSB-first within each byte (§4.4.1) regardless of the selected byte
// order; byte order only ever affects whole-byte-aligned primitives,
// which this package does not touch.
//
// The accumulator in §4.4.2/§4.4.3 is, in the general case, wider than
// 128 bits: a 128-bit field starting at a non-zero bit offset can span
// up to 17 bytes. ReadBits and WriteBits therefore operate on a plain
// big-endian byte window sized to the field's actual span and only
// narrow to uint128.Uint128 after masking — never the other way
// around, so the 128-bit storage width never clips a value that
// genuinely needs every byte of its span.
package bitcodec

import (
	"encoding/binary"
	"fmt"

	"github.com/wirebind/wirebind/errs"
	"github.com/wirebind/wirebind/uint128"
)

// ReadBits decodes the width-bit field starting at startBit (both in
// bits, §4.4.2) out of buf, returning its raw unsigned value (the
// caller sign-extends via uint128.Uint128.SignExtend when the field is
// signed). field names the offending field in any returned error.
func ReadBits(buf []byte, startBit uint64, width int, field string) (uint128.Uint128, error) {
	if width < 1 || width > 128 {
		return uint128.Uint128{}, fmt.Errorf("bitcodec: width %d out of range for field %q", width, field)
	}

	first := startBit / 8
	last := (startBit + uint64(width) - 1) / 8

	if last >= uint64(len(buf)) {
		return uint128.Uint128{}, errs.NewFieldError(errs.ErrInsufficientData, field).
			WithCounts(int(last+1), len(buf))
	}

	headSkip := int(startBit % 8)
	nbytes := int(last-first+1)

	acc := make([]byte, nbytes)
	copy(acc, buf[first:last+1])

	shiftAmount := nbytes*8 - headSkip - width
	shifted := shiftRightBytes(acc, shiftAmount)
	maskLowBitsInPlace(shifted, width)

	return bytesToUint128(shifted), nil
}

// WriteBits packs value's low width bits into buf starting at startBit
// (§4.4.3), OR-merging into any bits of buf[first] that precede
// startBit within the same byte and zeroing the remainder of the
// field's byte span first. It is the caller's responsibility to have
// already written (or zeroed) any bytes entirely before first; WriteBits
// never touches bytes outside [first, last].
func WriteBits(buf []byte, startBit uint64, width int, value uint128.Uint128, field string) error {
	if width < 1 || width > 128 {
		return fmt.Errorf("bitcodec: width %d out of range for field %q", width, field)
	}

	first := startBit / 8
	last := (startBit + uint64(width) - 1) / 8

	if last >= uint64(len(buf)) {
		return errs.NewFieldError(errs.ErrInsufficientData, field).WithCounts(int(last+1), len(buf))
	}

	mask := uint128.Mask1s(uint(width))
	masked := value.And(mask)
	if masked.Cmp(value) != 0 {
		return errs.NewFieldError(errs.ErrInvalidBitField, field).
			WithValue(value.Uint64()).WithMax(mask.Uint64())
	}

	headSkip := int(startBit % 8)
	nbytes := int(last - first + 1)

	wide := uint128ToBytes(masked, nbytes)
	shiftAmount := nbytes*8 - headSkip - width
	shifted := shiftLeftBytes(wide, shiftAmount)

	for i := first + 1; i <= last; i++ {
		buf[i] = 0
	}

	if headSkip > 0 {
		buf[first] &= byte(0xFF << uint(8-headSkip))
	} else {
		buf[first] = 0
	}

	for i := 0; i < nbytes; i++ {
		buf[first+uint64(i)] |= shifted[i]
	}

	return nil
}

// shiftRightBytes returns data (big-endian, data[0] most significant)
// logically shifted right by shift bits, same length, high-order bits
// filled with zero.
func shiftRightBytes(data []byte, shift int) []byte {
	n := len(data)
	out := make([]byte, n)

	if shift <= 0 {
		copy(out, data)
		return out
	}

	byteShift := shift / 8
	bitShift := uint(shift % 8)

	for i := n - 1; i >= 0; i-- {
		srcIdx := i - byteShift
		if srcIdx < 0 {
			out[i] = 0
			continue
		}

		v := data[srcIdx] >> bitShift
		if bitShift > 0 && srcIdx-1 >= 0 {
			v |= data[srcIdx-1] << (8 - bitShift)
		}
		out[i] = v
	}

	return out
}

// shiftLeftBytes returns data (big-endian) logically shifted left by
// shift bits, same length, low-order bits filled with zero.
func shiftLeftBytes(data []byte, shift int) []byte {
	n := len(data)
	out := make([]byte, n)

	if shift <= 0 {
		copy(out, data)
		return out
	}

	byteShift := shift / 8
	bitShift := uint(shift % 8)

	for i := 0; i < n; i++ {
		srcIdx := i + byteShift
		if srcIdx >= n {
			out[i] = 0
			continue
		}

		v := data[srcIdx] << bitShift
		if bitShift > 0 && srcIdx+1 < n {
			v |= data[srcIdx+1] >> (8 - bitShift)
		}
		out[i] = v
	}

	return out
}

// maskLowBitsInPlace clears every bit above the low width bits of data
// (big-endian, data[0] most significant).
func maskLowBitsInPlace(data []byte, width int) {
	n := len(data)
	totalBits := n * 8
	clearBits := totalBits - width

	fullClearBytes := clearBits / 8
	remainingClearBits := uint(clearBits % 8)

	for i := 0; i < fullClearBytes && i < n; i++ {
		data[i] = 0
	}

	if remainingClearBits > 0 && fullClearBytes < n {
		data[fullClearBytes] &= byte(0xFF >> remainingClearBits)
	}
}

// bytesToUint128 interprets data (big-endian, arbitrary length) as an
// unsigned integer and narrows it to a Uint128, keeping only its low
// 128 bits (callers only ever pass data already masked to <= 128
// significant bits).
func bytesToUint128(data []byte) uint128.Uint128 {
	var tail [16]byte

	n := len(data)
	if n >= 16 {
		copy(tail[:], data[n-16:])
	} else {
		copy(tail[16-n:], data)
	}

	return uint128.Uint128{
		Hi: binary.BigEndian.Uint64(tail[0:8]),
		Lo: binary.BigEndian.Uint64(tail[8:16]),
	}
}

// uint128ToBytes widens v into a big-endian byte slice of length n
// (n may exceed 16; the extra leading bytes are zero).
func uint128ToBytes(v uint128.Uint128, n int) []byte {
	var full [16]byte
	binary.BigEndian.PutUint64(full[0:8], v.Hi)
	binary.BigEndian.PutUint64(full[8:16], v.Lo)

	out := make([]byte, n)
	if n >= 16 {
		copy(out[n-16:], full[:])
	} else {
		copy(out, full[16-n:])
	}

	return out
}
