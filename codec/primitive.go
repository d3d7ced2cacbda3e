package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/wirebind/wirebind/container"
	"github.com/wirebind/wirebind/schema"
	"github.com/wirebind/wirebind/uint128"
)

// readPrimitive decodes one byte-aligned primitive of kind k at offset,
// returning its Go-native value (uint8, int32, float64, bool, rune,
// uint128.Uint128, ...) and, for integer/bool/char kinds, its int64
// projection for size-reference bookkeeping.
func readPrimitive(buf []byte, offset int, order binary.ByteOrder, k schema.Kind, field string) (val any, asInt64 int64, err error) {
	switch k {
	case schema.KindUint8:
		v, err := container.ReadUint8(buf, offset, field)
		return v, int64(v), err
	case schema.KindUint16:
		v, err := container.ReadUint16(buf, offset, order, field)
		return v, int64(v), err
	case schema.KindUint32:
		v, err := container.ReadUint32(buf, offset, order, field)
		return v, int64(v), err
	case schema.KindUint64:
		v, err := container.ReadUint64(buf, offset, order, field)
		return v, int64(v), err
	case schema.KindUint128:
		v, err := container.ReadUint128(buf, offset, order, field)
		var proj int64
		if v.IsUint64() {
			proj = int64(v.Lo)
		}
		return v, proj, err
	case schema.KindInt8:
		v, err := container.ReadUint8(buf, offset, field)
		return int8(v), int64(int8(v)), err
	case schema.KindInt16:
		v, err := container.ReadUint16(buf, offset, order, field)
		return int16(v), int64(int16(v)), err
	case schema.KindInt32:
		v, err := container.ReadUint32(buf, offset, order, field)
		return int32(v), int64(int32(v)), err
	case schema.KindInt64:
		v, err := container.ReadUint64(buf, offset, order, field)
		return int64(v), int64(v), err
	case schema.KindInt128:
		v, err := container.ReadUint128(buf, offset, order, field)
		var proj int64
		if v.IsUint64() {
			proj = int64(v.Lo)
		}
		return v, proj, err
	case schema.KindFloat32:
		v, err := container.ReadFloat32(buf, offset, order, field)
		return v, 0, err
	case schema.KindFloat64:
		v, err := container.ReadFloat64(buf, offset, order, field)
		return v, 0, err
	case schema.KindBool:
		v, err := container.ReadBool(buf, offset, field)
		b := int64(0)
		if v {
			b = 1
		}
		return v, b, err
	case schema.KindChar:
		v, err := container.ReadChar(buf, offset, order, field)
		return v, int64(v), err
	default:
		return nil, 0, fmt.Errorf("codec: unsupported primitive kind %s", k)
	}
}

// writePrimitive encodes val (of the Go type readPrimitive would have
// produced for kind k) at offset.
func writePrimitive(buf []byte, offset int, order binary.ByteOrder, k schema.Kind, val any, field string) error {
	switch k {
	case schema.KindUint8:
		return container.WriteUint8(buf, offset, val.(uint8), field)
	case schema.KindUint16:
		return container.WriteUint16(buf, offset, val.(uint16), order, field)
	case schema.KindUint32:
		return container.WriteUint32(buf, offset, val.(uint32), order, field)
	case schema.KindUint64:
		return container.WriteUint64(buf, offset, val.(uint64), order, field)
	case schema.KindUint128:
		return container.WriteUint128(buf, offset, val.(uint128.Uint128), order, field)
	case schema.KindInt8:
		return container.WriteUint8(buf, offset, uint8(val.(int8)), field)
	case schema.KindInt16:
		return container.WriteUint16(buf, offset, uint16(val.(int16)), order, field)
	case schema.KindInt32:
		return container.WriteUint32(buf, offset, uint32(val.(int32)), order, field)
	case schema.KindInt64:
		return container.WriteUint64(buf, offset, uint64(val.(int64)), order, field)
	case schema.KindInt128:
		return container.WriteUint128(buf, offset, val.(uint128.Uint128), order, field)
	case schema.KindFloat32:
		return container.WriteFloat32(buf, offset, val.(float32), order, field)
	case schema.KindFloat64:
		return container.WriteFloat64(buf, offset, val.(float64), order, field)
	case schema.KindBool:
		return container.WriteBool(buf, offset, val.(bool), field)
	case schema.KindChar:
		return container.WriteChar(buf, offset, val.(rune), order, field)
	default:
		return fmt.Errorf("codec: unsupported primitive kind %s", k)
	}
}

// primitiveByteWidth returns the whole-byte wire width of kind k.
func primitiveByteWidth(k schema.Kind) int {
	return k.StorageWidthBits() / 8
}
