package codec

import (
	"encoding/binary"

	"github.com/wirebind/wirebind/endian"
	"github.com/wirebind/wirebind/layout"
	"github.com/wirebind/wirebind/schema"
)

// fieldOrder resolves the effective byte order for a byte-aligned
// primitive/enum field: its own byte-order pin (schema.WithByteOrder)
// when set, which always wins over whichever order the call-wide
// DecodeBE/DecodeLE/EncodeBE/EncodeLE selected.
func fieldOrder(callOrder binary.ByteOrder, fp *layout.FieldPlan) binary.ByteOrder {
	switch fp.ByteOrder {
	case schema.BigEndian:
		return endian.GetBigEndianEngine()
	case schema.LittleEndian:
		return endian.GetLittleEndianEngine()
	default:
		return callOrder
	}
}
