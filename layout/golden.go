package layout

import "github.com/wirebind/wirebind/schema"

// Golden holds the literal seed scenarios from design §8 as
// ready-to-compile schema.Aggregates, so both this package's own
// invariant tests and the codec package's round-trip tests exercise
// the exact same shapes rather than two independently hand-typed
// copies drifting apart.
var Golden = struct {
	// S1BitRunThenU32: #[bits(1)] a; #[bits(4)] b; #[bits(3)] c; d: u32.
	S1BitRunThenU32 *schema.Aggregate

	// S2FourteenBitCrossByte: #[bits(1)] f; #[bits(14)] v: u16; #[bits(1)] g.
	S2FourteenBitCrossByte *schema.Aggregate

	// S3OptionalU16: x: Option<u16>.
	S3OptionalU16 *schema.Aggregate

	// S4LengthPrefixedText: len: u8; #[FromField(len)] s: String.
	S4LengthPrefixedText *schema.Aggregate

	// S5NullTerminatedSequences: kind: u8; two UntilMarker(0x00) byte
	// sequences; n: u16; a FromField(n) payload.
	S5NullTerminatedSequences *schema.Aggregate

	// S6FlagEnumeration: {None=0, Read=1, Write=2, Execute=4, Delete=8}.
	S6FlagEnumeration *schema.Enumeration

	// S7IllFormed holds one single-field aggregate per rejection case
	// in design §8 S7, keyed by the errs sentinel it is expected to
	// trigger on decode.
	S7IllFormed map[string]*schema.Aggregate
}{
	S1BitRunThenU32: schema.NewAggregate("S1BitRunThenU32",
		schema.NewField("a", schema.KindUint8, schema.WithBitWidth(1)),
		schema.NewField("b", schema.KindUint8, schema.WithBitWidth(4)),
		schema.NewField("c", schema.KindUint8, schema.WithBitWidth(3)),
		schema.NewField("d", schema.KindUint32),
	),

	S2FourteenBitCrossByte: schema.NewAggregate("S2FourteenBitCrossByte",
		schema.NewField("f", schema.KindUint8, schema.WithBitWidth(1)),
		schema.NewField("v", schema.KindUint16, schema.WithBitWidth(14)),
		schema.NewField("g", schema.KindUint8, schema.WithBitWidth(1)),
	),

	S3OptionalU16: schema.NewAggregate("S3OptionalU16",
		schema.Optional("x", schema.KindUint16),
	),

	S4LengthPrefixedText: schema.NewAggregate("S4LengthPrefixedText",
		schema.NewField("len", schema.KindUint8),
		schema.Text("s", schema.WithSizeFrom("len")),
	),

	S5NullTerminatedSequences: schema.NewAggregate("S5NullTerminatedSequences",
		schema.NewField("kind", schema.KindUint8),
		schema.Sequence("a", schema.WithMarkerUntil(0x00)),
		schema.Sequence("b", schema.WithMarkerUntil(0x00)),
		schema.NewField("n", schema.KindUint16),
		schema.Sequence("payload", schema.WithSizeFrom("n")),
	),

	S6FlagEnumeration: schema.NewFlagEnumeration("S6FlagEnumeration",
		schema.Variant{Name: "None", Discriminant: 0},
		schema.Variant{Name: "Read", Discriminant: 1},
		schema.Variant{Name: "Write", Discriminant: 2},
		schema.Variant{Name: "Execute", Discriminant: 4},
		schema.Variant{Name: "Delete", Discriminant: 8},
	),

	S7IllFormed: map[string]*schema.Aggregate{
		"InvalidBoolean": schema.NewAggregate("S7InvalidBoolean",
			schema.NewField("flag", schema.KindBool),
		),
		"InvalidChar": schema.NewAggregate("S7InvalidChar",
			schema.NewField("scalar", schema.KindChar),
		),
		"InvalidDiscriminant": schema.NewAggregate("S7InvalidDiscriminant",
			schema.EnumField("status", schema.NewEnumeration("Status",
				schema.Variant{Name: "Ok", Discriminant: 0},
				schema.Variant{Name: "Err", Discriminant: 1},
			)),
		),
		"InvalidUtf8": schema.NewAggregate("S7InvalidUtf8",
			schema.Text("s", schema.WithFixedSize(1)),
		),
	},
}
