package container

import "github.com/wirebind/wirebind/errs"

// ReadSequenceFixed copies the n bytes at offset out of buf.
func ReadSequenceFixed(buf []byte, offset, n int, field string) ([]byte, error) {
	if err := requireBytes(buf, offset, n, field); err != nil {
		return nil, err
	}

	out := make([]byte, n)
	copy(out, buf[offset:offset+n])

	return out, nil
}

// WriteSequenceFixed writes payload at offset, which must be exactly n
// bytes long (the declared fixed size, or the already-resolved
// size-from/size-expr length for those sequence kinds).
func WriteSequenceFixed(buf []byte, offset int, payload []byte, n int, field string) error {
	if len(payload) != n {
		return errs.NewFieldError(errs.ErrValueOutOfRange, field).WithCounts(n, len(payload))
	}

	if err := requireBytes(buf, offset, n, field); err != nil {
		return err
	}

	copy(buf[offset:], payload)

	return nil
}

// ReadFixedArray copies the n bytes of a KindFixedArray field out of
// buf at offset; it is ReadSequenceFixed under a distinct name because
// the two kinds have distinct compile-time size provenance (a fixed
// array's length is part of the declared type, not a directive).
func ReadFixedArray(buf []byte, offset, n int, field string) ([]byte, error) {
	return ReadSequenceFixed(buf, offset, n, field)
}

// WriteFixedArray writes the n-byte payload of a KindFixedArray field.
func WriteFixedArray(buf []byte, offset int, payload []byte, n int, field string) error {
	return WriteSequenceFixed(buf, offset, payload, n, field)
}
