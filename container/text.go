package container

import (
	"unicode/utf8"

	"github.com/wirebind/wirebind/errs"
)

// ReadText copies the n bytes at offset out of buf and validates them
// as UTF-8 (§6.1); it returns the decoded string only if valid.
func ReadText(buf []byte, offset, n int, field string) (string, error) {
	if err := requireBytes(buf, offset, n, field); err != nil {
		return "", err
	}

	raw := buf[offset : offset+n]
	if !utf8.Valid(raw) {
		return "", errs.NewFieldError(errs.ErrInvalidUTF8, field)
	}

	return string(raw), nil
}

// WriteText writes s's UTF-8 bytes at offset. s must already be valid
// UTF-8, which every Go string is by construction unless built from
// raw byte conversions; WriteText re-validates defensively since the
// caller may have round-tripped through []byte(s) with arbitrary
// bytes.
func WriteText(buf []byte, offset int, s string, field string) error {
	if !utf8.ValidString(s) {
		return errs.NewFieldError(errs.ErrInvalidUTF8, field)
	}

	n := len(s)
	if err := requireBytes(buf, offset, n, field); err != nil {
		return err
	}

	copy(buf[offset:], s)

	return nil
}
