package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wirebind/wirebind/codec"
	"github.com/wirebind/wirebind/layout"
	"github.com/wirebind/wirebind/schema"
)

type header struct {
	Magic   []byte
	Version uint16
	Flags   uint8
}

func headerAggregate() *schema.Aggregate {
	return schema.NewAggregate("Header",
		schema.FixedArray("magic", 4),
		schema.NewField("version", schema.KindUint16),
		schema.NewField("flags", schema.KindUint8),
	)
}

func TestFixedSizeConstantReportsEligibility(t *testing.T) {
	c, err := codec.New[header](headerAggregate())
	require.NoError(t, err)

	size, ok := c.FixedSizeConstant()
	require.True(t, ok)
	require.Equal(t, 7, size)

	bitPacked, err := codec.New[s1](layout.Golden.S1BitRunThenU32)
	require.NoError(t, err)
	_, ok = bitPacked.FixedSizeConstant()
	require.False(t, ok)
}

func TestEncodeFixedRoundTrips(t *testing.T) {
	c, err := codec.New[header](headerAggregate())
	require.NoError(t, err)

	in := header{Magic: []byte{0x7F, 'E', 'L', 'F'}, Version: 2, Flags: 0x01}

	buf, n, err := c.EncodeBEFixed(in)
	require.NoError(t, err)
	require.Equal(t, 7, n)

	want, err := c.EncodeBE(in)
	require.NoError(t, err)
	require.Equal(t, want, buf[:n])

	out, _, err := c.DecodeBE(buf[:n])
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestEncodeFixedIntoWritesCallerBuffer(t *testing.T) {
	c, err := codec.New[header](headerAggregate())
	require.NoError(t, err)

	in := header{Magic: []byte{'C', 'A', 'F', 'E'}, Version: 9, Flags: 0xFF}

	buf := make([]byte, 7)
	require.NoError(t, c.EncodeBEFixedInto(in, buf))

	want, err := c.EncodeBE(in)
	require.NoError(t, err)
	require.Equal(t, want, buf)
}

func TestEncodeFixedRejectsIneligibleAggregate(t *testing.T) {
	c, err := codec.New[s1](layout.Golden.S1BitRunThenU32)
	require.NoError(t, err)

	_, _, err = c.EncodeBEFixed(s1{})
	require.Error(t, err)

	err = c.EncodeBEFixedInto(s1{}, make([]byte, codec.MaxFixedSize))
	require.Error(t, err)
}
