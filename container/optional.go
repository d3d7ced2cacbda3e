package container

import "github.com/wirebind/wirebind/errs"

// ReadOptionalTag decodes the 1-byte presence tag of an optional-of-
// primitive field (§4.5): 0x00 means absent, 0x01 means present. The
// payload slot always occupies its full declared width on the wire
// regardless of presence (§6.1); callers advance past it unconditionally
// and only interpret its bytes when present is true.
func ReadOptionalTag(buf []byte, offset int, field string) (present bool, err error) {
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

// WriteOptionalTag encodes the 1-byte presence tag.
func WriteOptionalTag(buf []byte, offset int, present bool, field string) error {
	var b uint8
	if present {
		b = 0x01
	}

	return WriteUint8(buf, offset, b, field)
}

// ZeroPayload zeroes the n-byte payload slot of an absent optional
// field, so the wire bytes are deterministic rather than leftover
// buffer garbage.
func ZeroPayload(buf []byte, offset, n int, field string) error {
	if err := requireBytes(buf, offset, n, field); err != nil {
		return err
	}

	for i := offset; i < offset+n; i++ {
		buf[i] = 0
	}

	return nil
}
