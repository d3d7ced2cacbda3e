package schema

import "fmt"

// ByteOrder is a per-field byte-order pin (directive "byte-order pin",
// §3.3). ByteOrderUnspecified means the field follows whichever byte
// order the call site (decode_be/decode_le/encode_be/encode_le) selects.
type ByteOrder uint8

const (
	ByteOrderUnspecified ByteOrder = iota
	BigEndian
	LittleEndian
)

func (o ByteOrder) String() string {
	switch o {
	case BigEndian:
		return "big-endian"
	case LittleEndian:
		return "little-endian"
	default:
		return "unspecified"
	}
}

// SizeMode identifies how a variable-length field's size is resolved
// (directive table, §3.3).
type SizeMode uint8

const (
	SizeNone SizeMode = iota
	SizeFixed
	SizeFromField
	SizeExpr
	SizeMarkerUntil
	SizeMarkerAfter
)

func (m SizeMode) String() string {
	switch m {
	case SizeFixed:
		return "fixed-size"
	case SizeFromField:
		return "size-from"
	case SizeExpr:
		return "size-expr"
	case SizeMarkerUntil:
		return "marker-until"
	case SizeMarkerAfter:
		return "marker-after"
	default:
		return "none"
	}
}

// Directives holds the normalized, parsed form of every annotation that
// can apply to a single field (§3.3). The Attribute Parser is realized
// as the FieldOption constructors below: each one validates its own
// argument immediately (mirrors §4.2's "rules it enforces locally") and
// reports a field-local error through the Field it is applied to, while
// directives that need another field's position to validate (I1-I8) are
// left for the Layout Analyzer.
type Directives struct {
	BitWidth     int // 0 = not bit-packed
	BitWidthAuto bool

	SizeMode     SizeMode
	FixedSize    int
	SizeFromPath string
	SizeExprSrc  string
	sizeExpr     *exprNode // compiled form of SizeExprSrc, nil until compiled

	Marker    byte
	HasMarker bool

	// SegmentCountMode/SegmentCount* describe how many segments a
	// sequence-of-sequences (multi-segment marker-until, I5) field has.
	// Zero value (SizeNone) means this field is not a multi-segment
	// sequence.
	SegmentCountMode     SizeMode
	SegmentCountFixed    int
	SegmentCountFromPath string

	ByteOrderPin ByteOrder
}

// FieldOption mutates a Directives value and reports a local validation
// failure, if any. It is the unit of composition for Field/FixedArray/
// Sequence/Text/Optional/EnumField below.
type FieldOption func(*Directives) error

// WithBitWidth declares the field occupies exactly n bits (1<=n<=128).
func WithBitWidth(n int) FieldOption {
	return func(d *Directives) error {
		if n < 1 || n > 128 {
			return fmt.Errorf("bit-width(%d): must satisfy 1 <= n <= 128", n)
		}
		if d.BitWidthAuto {
			return fmt.Errorf("bit-width(%d): conflicts with bit-width(auto)", n)
		}
		d.BitWidth = n

		return nil
	}
}

// WithAutoBitWidth declares the field (which must be an enumeration
// reference) occupies ceil(log2(max_discriminant+1)) bits.
func WithAutoBitWidth() FieldOption {
	return func(d *Directives) error {
		if d.BitWidth != 0 {
			return fmt.Errorf("bit-width(auto): conflicts with bit-width(%d)", d.BitWidth)
		}
		d.BitWidthAuto = true

		return nil
	}
}

// WithFixedSize declares a sequence/text field is exactly k bytes.
func WithFixedSize(k int) FieldOption {
	return func(d *Directives) error {
		if k < 0 {
			return fmt.Errorf("fixed-size(%d): must be >= 0", k)
		}
		if err := d.claimSizeMode(SizeFixed); err != nil {
			return err
		}
		d.FixedSize = k

		return nil
	}
}

// WithSizeFrom declares a sequence/text field's length comes from a
// previously declared numeric field, identified by a (possibly dotted)
// path.
func WithSizeFrom(path string) FieldOption {
	return func(d *Directives) error {
		if path == "" {
			return fmt.Errorf("size-from(\"\"): path must be non-empty")
		}
		if err := d.claimSizeMode(SizeFromField); err != nil {
			return err
		}
		d.SizeFromPath = path

		return nil
	}
}

// WithSizeExpr declares a sequence/text field's length as an arithmetic
// expression over previously declared fields (grammar: +, -, *, /, %,
// parentheses, integer literals, dotted field references).
func WithSizeExpr(expr string) FieldOption {
	return func(d *Directives) error {
		node, err := parseSizeExpr(expr)
		if err != nil {
			return fmt.Errorf("size-expr(%q): %w", expr, err)
		}
		if err := d.claimSizeMode(SizeExpr); err != nil {
			return err
		}
		d.SizeExprSrc = expr
		d.sizeExpr = node

		return nil
	}
}

// WithMarkerUntil declares a sequence is consumed byte-by-byte up to
// (and excluding) marker, which is then consumed.
func WithMarkerUntil(marker byte) FieldOption {
	return func(d *Directives) error {
		if err := d.claimSizeMode(SizeMarkerUntil); err != nil {
			return err
		}
		d.Marker = marker
		d.HasMarker = true

		return nil
	}
}

// WithMarkerAfter declares that input is skipped up to and including
// marker, then the remainder is consumed.
func WithMarkerAfter(marker byte) FieldOption {
	return func(d *Directives) error {
		if err := d.claimSizeMode(SizeMarkerAfter); err != nil {
			return err
		}
		d.Marker = marker
		d.HasMarker = true

		return nil
	}
}

// markerFromRune converts an ASCII scalar marker to its byte value;
// a negative or non-ASCII scalar is rejected with an error.
func markerFromRune(r rune) (byte, error) {
	if r < 0 || r > 127 {
		return 0, fmt.Errorf("marker %q: only ASCII scalars (0..=127) are permitted", r)
	}

	return byte(r), nil
}

// WithMarkerUntilRune is WithMarkerUntil taking an ASCII rune literal.
func WithMarkerUntilRune(r rune) FieldOption {
	return func(d *Directives) error {
		b, err := markerFromRune(r)
		if err != nil {
			return err
		}

		return WithMarkerUntil(b)(d)
	}
}

// WithMarkerAfterRune is WithMarkerAfter taking an ASCII rune literal.
func WithMarkerAfterRune(r rune) FieldOption {
	return func(d *Directives) error {
		b, err := markerFromRune(r)
		if err != nil {
			return err
		}

		return WithMarkerAfter(b)(d)
	}
}

// WithSegmentCountFixed declares the segment count of a multi-segment
// marker-delimited sequence (I5) as a compile-time constant.
func WithSegmentCountFixed(n int) FieldOption {
	return func(d *Directives) error {
		if n < 0 {
			return fmt.Errorf("segment count %d must be >= 0", n)
		}
		d.SegmentCountMode = SizeFixed
		d.SegmentCountFixed = n

		return nil
	}
}

// WithSegmentCountFrom declares the segment count of a multi-segment
// marker-delimited sequence (I5) comes from a previously declared field.
func WithSegmentCountFrom(path string) FieldOption {
	return func(d *Directives) error {
		if path == "" {
			return fmt.Errorf("segment count path must be non-empty")
		}
		d.SegmentCountMode = SizeFromField
		d.SegmentCountFromPath = path

		return nil
	}
}

// WithByteOrder pins the field to a fixed byte order, overriding the
// call site's choice.
func WithByteOrder(o ByteOrder) FieldOption {
	return func(d *Directives) error {
		if d.ByteOrderPin != ByteOrderUnspecified && d.ByteOrderPin != o {
			return fmt.Errorf("byte-order pin %s conflicts with previously set pin %s", o, d.ByteOrderPin)
		}
		d.ByteOrderPin = o

		return nil
	}
}

// claimSizeMode records that the field's size is resolved by mode,
// rejecting a second, conflicting size directive (§4.2 mutual
// exclusivity).
func (d *Directives) claimSizeMode(mode SizeMode) error {
	if d.SizeMode != SizeNone && d.SizeMode != mode {
		return fmt.Errorf("%s conflicts with previously set %s", mode, d.SizeMode)
	}
	d.SizeMode = mode

	return nil
}

// SizeExpr returns the compiled size expression, or nil if none was set.
func (d *Directives) SizeExpr() *exprNode {
	return d.sizeExpr
}
