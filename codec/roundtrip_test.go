package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wirebind/wirebind/codec"
	"github.com/wirebind/wirebind/layout"
	"github.com/wirebind/wirebind/schema"
)

// P1: decode(encode(v)) == v for every Golden scenario.
// P2: the number of bytes Encode produces equals the number of bytes
// Decode reports consuming.
// P6: a Codec[T] is safe to reuse across many independent calls.

type s1 struct {
	A uint8
	B uint8
	C uint8
	D uint32
}

func TestRoundTripS1BitRunThenU32(t *testing.T) {
	c, err := codec.New[s1](layout.Golden.S1BitRunThenU32)
	require.NoError(t, err)

	in := s1{A: 1, B: 9, C: 5, D: 0xCAFEF00D}

	buf, err := c.EncodeBE(in)
	require.NoError(t, err)

	out, n, err := c.DecodeBE(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, in, out)
}

type s2 struct {
	F uint8
	V uint16
	G uint8
}

func TestRoundTripS2FourteenBitCrossByte(t *testing.T) {
	c, err := codec.New[s2](layout.Golden.S2FourteenBitCrossByte)
	require.NoError(t, err)

	in := s2{F: 1, V: 0x2AA5 & 0x3FFF, G: 0}

	buf, err := c.EncodeLE(in)
	require.NoError(t, err)
	require.Len(t, buf, 2)

	out, n, err := c.DecodeLE(buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, in, out)
}

type s3 struct {
	X *uint16
}

func TestRoundTripS3OptionalU16(t *testing.T) {
	c, err := codec.New[s3](layout.Golden.S3OptionalU16)
	require.NoError(t, err)

	v := uint16(4242)
	present := s3{X: &v}
	absent := s3{}

	for _, in := range []s3{present, absent} {
		buf, err := c.EncodeBE(in)
		require.NoError(t, err)

		out, n, err := c.DecodeBE(buf)
		require.NoError(t, err)
		require.Equal(t, len(buf), n)

		if in.X == nil {
			require.Nil(t, out.X)
		} else {
			require.NotNil(t, out.X)
			require.Equal(t, *in.X, *out.X)
		}
	}
}

type s4 struct {
	Len uint8
	S   string
}

func TestRoundTripS4LengthPrefixedText(t *testing.T) {
	c, err := codec.New[s4](layout.Golden.S4LengthPrefixedText)
	require.NoError(t, err)

	in := s4{Len: 5, S: "hello"}

	buf, err := c.EncodeBE(in)
	require.NoError(t, err)
	require.Equal(t, 1+5, len(buf))

	out, n, err := c.DecodeBE(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, in, out)
}

type s5 struct {
	Kind    uint8
	A       []byte
	B       []byte
	N       uint16
	Payload []byte
}

func TestRoundTripS5NullTerminatedSequences(t *testing.T) {
	c, err := codec.New[s5](layout.Golden.S5NullTerminatedSequences)
	require.NoError(t, err)

	in := s5{Kind: 7, A: []byte("foo"), B: []byte("bar"), N: 4, Payload: []byte{1, 2, 3, 4}}

	buf, err := c.EncodeBE(in)
	require.NoError(t, err)

	out, n, err := c.DecodeBE(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, in, out)
}

type s6 struct {
	Perm uint8
}

func TestRoundTripFlagEnumeration(t *testing.T) {
	agg := schema.NewAggregate("S6Wrap",
		schema.EnumField("perm", layout.Golden.S6FlagEnumeration),
	)

	c, err := codec.New[s6](agg)
	require.NoError(t, err)

	in := s6{Perm: 1 | 2 | 8} // Read | Write | Delete

	buf, err := c.EncodeBE(in)
	require.NoError(t, err)

	out, _, err := c.DecodeBE(buf)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

type s8 struct {
	Preamble uint8
	Rest     []byte
}

// A marker-after field is an unbounded tail: the preceding bytes up to
// and including the marker are discarded on decode, and the marker is
// prefixed with no terminator on encode.
func TestRoundTripMarkerAfterSequence(t *testing.T) {
	agg := schema.NewAggregate("S8MarkerAfter",
		schema.NewField("preamble", schema.KindUint8),
		schema.Sequence("rest", schema.WithMarkerAfter(0xFF)),
	)

	c, err := codec.New[s8](agg)
	require.NoError(t, err)

	in := s8{Preamble: 7, Rest: []byte{0xAA, 0xBB, 0xCC}}

	buf, err := c.EncodeBE(in)
	require.NoError(t, err)
	require.Equal(t, []byte{7, 0xFF, 0xAA, 0xBB, 0xCC}, buf)

	out, n, err := c.DecodeBE(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, in, out)
}

func TestCodecReusedAcrossCalls(t *testing.T) {
	c, err := codec.New[s1](layout.Golden.S1BitRunThenU32)
	require.NoError(t, err)

	for i := 0; i < 32; i++ {
		in := s1{A: uint8(i % 2), B: uint8(i % 16), C: uint8(i % 8), D: uint32(i * 1000)}

		buf, err := c.EncodeBE(in)
		require.NoError(t, err)

		out, _, err := c.DecodeBE(buf)
		require.NoError(t, err)
		require.Equal(t, in, out)
	}
}

func TestSizeInBytes(t *testing.T) {
	c, err := codec.New[s1](layout.Golden.S1BitRunThenU32)
	require.NoError(t, err)

	in := s1{A: 1, B: 2, C: 3, D: 4}
	require.Equal(t, 5, c.SizeInBytes(in))

	ct, err := codec.New[s4](layout.Golden.S4LengthPrefixedText)
	require.NoError(t, err)

	ins4 := s4{Len: 3, S: "abc"}
	require.Equal(t, 1+3, ct.SizeInBytes(ins4))
}
