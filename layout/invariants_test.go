package layout_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wirebind/wirebind/layout"
	"github.com/wirebind/wirebind/schema"
)

func TestCompileRejectsBitWidthOutOfRange(t *testing.T) {
	agg := schema.NewAggregate("Bad",
		schema.NewField("a", schema.KindUint8, schema.WithBitWidth(9)),
	)

	_, err := layout.Compile(agg)
	require.Error(t, err)

	var diag *layout.Diagnostic
	require.ErrorAs(t, err, &diag)
	require.Equal(t, "I2", diag.Invariant)
}

func TestCompileRejectsMidByteFieldAfterShortBitRun(t *testing.T) {
	agg := schema.NewAggregate("Bad",
		schema.NewField("a", schema.KindUint8, schema.WithBitWidth(3)),
		schema.NewField("b", schema.KindUint16),
	)

	_, err := layout.Compile(agg)
	require.Error(t, err)

	var diag *layout.Diagnostic
	require.ErrorAs(t, err, &diag)
	require.Equal(t, "I1", diag.Invariant)
}

func TestCompileRejectsAggregateEndingMidByte(t *testing.T) {
	agg := schema.NewAggregate("Bad",
		schema.NewField("a", schema.KindUint8, schema.WithBitWidth(3)),
	)

	_, err := layout.Compile(agg)
	require.Error(t, err)

	var diag *layout.Diagnostic
	require.ErrorAs(t, err, &diag)
	require.Equal(t, "I1", diag.Invariant)
}

func TestCompileAllowsBitRunClosingOnByteBoundary(t *testing.T) {
	agg := schema.NewAggregate("Good",
		schema.NewField("a", schema.KindUint8, schema.WithBitWidth(1)),
		schema.NewField("b", schema.KindUint8, schema.WithBitWidth(4)),
		schema.NewField("c", schema.KindUint8, schema.WithBitWidth(3)),
		schema.NewField("d", schema.KindUint32),
	)

	plan, err := layout.Compile(agg)
	require.NoError(t, err)
	require.Equal(t, 5, plan.MinSizeBytes)
	require.True(t, plan.IsFixedSize)
}

func TestCompileRejectsFieldAfterUnboundedTail(t *testing.T) {
	agg := schema.NewAggregate("Bad",
		schema.Sequence("a", schema.WithMarkerUntil(0x00)),
		schema.NewField("b", schema.KindUint8),
	)

	_, err := layout.Compile(agg)
	require.Error(t, err)

	var diag *layout.Diagnostic
	require.ErrorAs(t, err, &diag)
	require.Equal(t, "I3", diag.Invariant)
}

func TestCompileAllowsUnboundedTailAsLastField(t *testing.T) {
	agg := schema.NewAggregate("Good",
		schema.NewField("kind", schema.KindUint8),
		schema.Sequence("rest", schema.WithMarkerUntil(0x00)),
	)

	plan, err := layout.Compile(agg)
	require.NoError(t, err)
	require.False(t, plan.IsFixedSize)
}

func TestCompileRejectsForwardSizeReference(t *testing.T) {
	agg := schema.NewAggregate("Bad",
		schema.Sequence("payload", schema.WithSizeFrom("len")),
		schema.NewField("len", schema.KindUint8),
	)

	_, err := layout.Compile(agg)
	require.Error(t, err)

	var diag *layout.Diagnostic
	require.ErrorAs(t, err, &diag)
	require.Equal(t, "I4", diag.Invariant)
}

func TestCompileAllowsBackwardSizeReference(t *testing.T) {
	agg := schema.NewAggregate("Good",
		schema.NewField("len", schema.KindUint8),
		schema.Sequence("payload", schema.WithSizeFrom("len")),
	)

	_, err := layout.Compile(agg)
	require.NoError(t, err)
}

func TestCompileRejectsMultiSegmentWithoutSegmentCount(t *testing.T) {
	inner := schema.NewAggregate("Inner", schema.NewField("x", schema.KindUint8))

	agg := schema.NewAggregate("Bad",
		schema.SequenceOfAggregate("segs", inner, schema.WithMarkerUntil(0x00)),
	)

	_, err := layout.Compile(agg)
	require.Error(t, err)

	var diag *layout.Diagnostic
	require.ErrorAs(t, err, &diag)
	require.Equal(t, "I5", diag.Invariant)
}

func TestCompileAllowsMultiSegmentWithSegmentCount(t *testing.T) {
	inner := schema.NewAggregate("Inner", schema.NewField("x", schema.KindUint8))

	agg := schema.NewAggregate("Good",
		schema.NewField("n", schema.KindUint8),
		schema.SequenceOfAggregate("segs", inner, schema.WithMarkerUntil(0x00), schema.WithSegmentCountFrom("n")),
	)

	_, err := layout.Compile(agg)
	require.NoError(t, err)
}

func TestCompileEnumDiscriminantMustFitStorageWidth(t *testing.T) {
	e := schema.NewEnumeration("Huge", schema.Variant{Name: "Big", Discriminant: 1 << 40})
	agg := schema.NewAggregate("Bad", schema.EnumField("v", e))

	_, err := layout.Compile(agg)
	require.NoError(t, err) // 64-bit storage width accommodates it
}

func TestCompileRejectsFlagEnumerationWithNonPowerOfTwoDiscriminant(t *testing.T) {
	e := schema.NewFlagEnumeration("Perm", schema.Variant{Name: "ReadWrite", Discriminant: 3})
	agg := schema.NewAggregate("Bad", schema.EnumField("perm", e))

	_, err := layout.Compile(agg)
	require.Error(t, err)
}

func TestCompileSuspendsAlignmentAfterAutoBitWidth(t *testing.T) {
	e := schema.NewEnumeration("Color", schema.Variant{Name: "Red", Discriminant: 0}, schema.Variant{Name: "Green", Discriminant: 1}, schema.Variant{Name: "Blue", Discriminant: 2})

	agg := schema.NewAggregate("Good",
		schema.EnumField("c", e, schema.WithAutoBitWidth()),
		schema.NewField("pad", schema.KindUint8, schema.WithBitWidth(6)),
		schema.NewField("rest", schema.KindUint8),
	)

	plan, err := layout.Compile(agg)
	require.NoError(t, err)
	require.False(t, plan.FastPathEligible)
	require.True(t, plan.FieldByName("rest").SuspendedAlignment)
}
