package bitcodec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wirebind/wirebind/bitcodec"
	"github.com/wirebind/wirebind/uint128"
)

func TestReadWriteBitsRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		startBit uint64
		width    int
		value    uint64
	}{
		{"byte-aligned-1-bit", 0, 1, 1},
		{"mid-byte-4-bit", 1, 4, 7},
		{"tail-3-bit", 5, 3, 4},
		{"cross-byte-14-bit", 1, 14, 0x1FFF},
		{"full-byte", 0, 8, 0xAB},
		{"wide-33-bit", 3, 33, 0x1_FFFF_FFFF >> 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, 8)
			err := bitcodec.WriteBits(buf, tc.startBit, tc.width, uint128.FromUint64(tc.value), tc.name)
			require.NoError(t, err)

			got, err := bitcodec.ReadBits(buf, tc.startBit, tc.width, tc.name)
			require.NoError(t, err)
			require.Equal(t, tc.value, got.Uint64())
		})
	}
}

func TestWriteBitsPreservesAdjacentBitsInSameByte(t *testing.T) {
	buf := make([]byte, 1)

	require.NoError(t, bitcodec.WriteBits(buf, 0, 1, uint128.FromUint64(1), "a"))
	require.NoError(t, bitcodec.WriteBits(buf, 1, 4, uint128.FromUint64(7), "b"))
	require.NoError(t, bitcodec.WriteBits(buf, 5, 3, uint128.FromUint64(4), "c"))

	// a=1 | b=0111 | c=100 -> 1011_1100 = 0xBC
	require.Equal(t, byte(0xBC), buf[0])

	a, err := bitcodec.ReadBits(buf, 0, 1, "a")
	require.NoError(t, err)
	require.Equal(t, uint64(1), a.Uint64())

	b, err := bitcodec.ReadBits(buf, 1, 4, "b")
	require.NoError(t, err)
	require.Equal(t, uint64(7), b.Uint64())

	c, err := bitcodec.ReadBits(buf, 5, 3, "c")
	require.NoError(t, err)
	require.Equal(t, uint64(4), c.Uint64())
}

func TestGoldenS2FourteenBitCrossByte(t *testing.T) {
	// f=1 (1 bit), v=0x1FFF (14 bits), g=1 (1 bit) -> all-ones, 2 bytes.
	buf := make([]byte, 2)

	require.NoError(t, bitcodec.WriteBits(buf, 0, 1, uint128.FromUint64(1), "f"))
	require.NoError(t, bitcodec.WriteBits(buf, 1, 14, uint128.FromUint64(0x1FFF), "v"))
	require.NoError(t, bitcodec.WriteBits(buf, 15, 1, uint128.FromUint64(1), "g"))

	require.Equal(t, []byte{0xFF, 0xFF}, buf)
}

func TestWriteBitsRejectsOutOfRangeValue(t *testing.T) {
	buf := make([]byte, 1)
	err := bitcodec.WriteBits(buf, 0, 3, uint128.FromUint64(8), "c")
	require.Error(t, err)
}

func TestReadWriteBitsInsufficientData(t *testing.T) {
	buf := make([]byte, 1)
	_, err := bitcodec.ReadBits(buf, 0, 16, "x")
	require.Error(t, err)

	err = bitcodec.WriteBits(buf, 0, 16, uint128.FromUint64(1), "x")
	require.Error(t, err)
}

func Test128BitFieldAtNonZeroOffsetRoundTrips(t *testing.T) {
	buf := make([]byte, 17)
	v := uint128.Uint128{Hi: 0x0123456789ABCDEF, Lo: 0xFEDCBA9876543210}

	require.NoError(t, bitcodec.WriteBits(buf, 4, 128, v, "wide"))

	got, err := bitcodec.ReadBits(buf, 4, 128, "wide")
	require.NoError(t, err)
	require.Equal(t, v, got)
}

func TestSignExtendAfterRead(t *testing.T) {
	buf := make([]byte, 1)
	// -1 in 4-bit two's complement is 0b1111.
	require.NoError(t, bitcodec.WriteBits(buf, 0, 4, uint128.FromUint64(0b1111), "n"))

	raw, err := bitcodec.ReadBits(buf, 0, 4, "n")
	require.NoError(t, err)

	signed := raw.SignExtend(4)
	require.Equal(t, int64(-1), int64(signed.Lo))
}
