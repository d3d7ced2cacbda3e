package container

import (
	"encoding/binary"
	"sort"

	"github.com/wirebind/wirebind/errs"
	"github.com/wirebind/wirebind/schema"
)

// enumStorageBytes returns the whole-byte width an ordinary or flag
// enumeration occupies when it is not bit-packed: the smallest of
// 1/2/4/8 bytes that can hold MaxDiscriminant.
func enumStorageBytes(e *schema.Enumeration) int {
	switch {
	case e.MaxDiscriminant() <= 0xFF:
		return 1
	case e.MaxDiscriminant() <= 0xFFFF:
		return 2
	case e.MaxDiscriminant() <= 0xFFFFFFFF:
		return 4
	default:
		return 8
	}
}

// ReadEnumerationByte decodes a byte-aligned ordinary enumeration
// discriminant, rejecting a value with no matching declared variant
// (errs.ErrInvalidDiscriminant, §6.2).
func ReadEnumerationByte(buf []byte, offset int, order binary.ByteOrder, e *schema.Enumeration, field string) (uint64, error) {
	disc, err := readDiscriminantBytes(buf, offset, enumStorageBytes(e), order, field)
	if err != nil {
		return 0, err
	}

	if !e.Contains(disc) {
		return 0, errs.NewFieldError(errs.ErrInvalidDiscriminant, field).WithValue(disc)
	}

	return disc, nil
}

// WriteEnumerationByte encodes disc as a byte-aligned ordinary
// enumeration discriminant. The caller is expected to have already
// validated disc against e (e.g. via e.Contains); WriteEnumerationByte
// only checks that disc fits the storage width.
func WriteEnumerationByte(buf []byte, offset int, order binary.ByteOrder, e *schema.Enumeration, disc uint64, field string) error {
	return writeDiscriminantBytes(buf, offset, enumStorageBytes(e), order, disc, field)
}

// ReadFlagEnumerationByte decodes a byte-aligned flag enumeration wire
// value, rejecting any bit outside the declared variants' union
// (errs.ErrInvalidDiscriminant, §6.2).
func ReadFlagEnumerationByte(buf []byte, offset int, order binary.ByteOrder, e *schema.Enumeration, field string) (uint64, error) {
	disc, err := readDiscriminantBytes(buf, offset, enumStorageBytes(e), order, field)
	if err != nil {
		return 0, err
	}

	if disc&^e.KnownBitsMask() != 0 {
		return 0, errs.NewFieldError(errs.ErrInvalidDiscriminant, field).WithValue(disc)
	}

	return disc, nil
}

// WriteFlagEnumerationByte encodes bits as a byte-aligned flag
// enumeration wire value.
func WriteFlagEnumerationByte(buf []byte, offset int, order binary.ByteOrder, e *schema.Enumeration, bits uint64, field string) error {
	return writeDiscriminantBytes(buf, offset, enumStorageBytes(e), order, bits, field)
}

func readDiscriminantBytes(buf []byte, offset, n int, order binary.ByteOrder, field string) (uint64, error) {
	switch n {
	case 1:
		v, err := ReadUint8(buf, offset, field)
		return uint64(v), err
	case 2:
		v, err := ReadUint16(buf, offset, order, field)
		return uint64(v), err
	case 4:
		v, err := ReadUint32(buf, offset, order, field)
		return uint64(v), err
	default:
		return ReadUint64(buf, offset, order, field)
	}
}

func writeDiscriminantBytes(buf []byte, offset, n int, order binary.ByteOrder, v uint64, field string) error {
	switch n {
	case 1:
		return WriteUint8(buf, offset, uint8(v), field)
	case 2:
		return WriteUint16(buf, offset, uint16(v), order, field)
	case 4:
		return WriteUint32(buf, offset, uint32(v), order, field)
	default:
		return WriteUint64(buf, offset, v, order, field)
	}
}

// ComposeFlags ORs together the discriminants of the named variants,
// used by callers building a flag enumeration value from a set of
// variant names.
func ComposeFlags(e *schema.Enumeration, names ...string) uint64 {
	var bits uint64
	for _, name := range names {
		for _, v := range e.Variants {
			if v.Name == name {
				bits |= v.Discriminant
			}
		}
	}

	return bits
}

// ascendingFlagVariants returns e's non-zero variants sorted by
// ascending discriminant, regardless of declaration order.
func ascendingFlagVariants(e *schema.Enumeration) []schema.Variant {
	sorted := make([]schema.Variant, 0, len(e.Variants))
	for _, v := range e.Variants {
		if v.Discriminant != 0 {
			sorted = append(sorted, v)
		}
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Discriminant < sorted[j].Discriminant
	})

	return sorted
}

// DecomposeFlags returns the names of every declared flag variant set
// in bits, in ascending discriminant order. The zero variant
// (discriminant 0), if declared, is only returned when bits itself is
// zero.
func DecomposeFlags(e *schema.Enumeration, bits uint64) []string {
	var names []string

	for _, v := range ascendingFlagVariants(e) {
		if bits&v.Discriminant == v.Discriminant {
			names = append(names, v.Name)
		}
	}

	if bits == 0 {
		for _, v := range e.Variants {
			if v.Discriminant == 0 {
				return []string{v.Name}
			}
		}
	}

	return names
}

// IterFlags calls fn with each declared non-zero variant set in bits,
// in ascending discriminant order, stopping early if fn returns false.
func IterFlags(e *schema.Enumeration, bits uint64, fn func(v schema.Variant) bool) {
	for _, v := range ascendingFlagVariants(e) {
		if bits&v.Discriminant == v.Discriminant {
			if !fn(v) {
				return
			}
		}
	}
}
