// Package endian provides the byte order abstraction used to select
// between the two wire-level byte orders a compiled layout plan
// supports.
//
// It extends the standard encoding/binary package by combining
// ByteOrder and AppendByteOrder into a single EndianEngine interface,
// so callers can both read/write at a known offset and append to a
// growing buffer without juggling two interfaces.
//
// # Basic usage
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, 0x01020304)
//
// A per-field byte-order pin (schema directive byte-order) bypasses
// whichever engine the call site selected and always uses one fixed
// engine instead; see the codec package for how that override is
// threaded through a compiled plan.
//
// # Thread safety
//
// All functions here are safe for concurrent use; the returned
// EndianEngine values are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into one interface. binary.LittleEndian and binary.BigEndian both
// satisfy it already.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's
// native byte order. wirebind never depends on host endianness for wire
// correctness — every wire field picks its byte order explicitly — and
// only this package's own tests call it.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// IsNativeBigEndian reports whether the host is big-endian.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host's native
// byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
