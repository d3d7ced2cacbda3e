package container_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wirebind/wirebind/container"
	"github.com/wirebind/wirebind/uint128"
)

func TestPrimitiveRoundTrip(t *testing.T) {
	buf := make([]byte, 8)

	require.NoError(t, container.WriteUint32(buf, 0, 0xDEADBEEF, binary.BigEndian, "x"))
	got, err := container.ReadUint32(buf, 0, binary.BigEndian, "x")
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), got)

	require.NoError(t, container.WriteUint32(buf, 0, 0xDEADBEEF, binary.LittleEndian, "x"))
	got, err = container.ReadUint32(buf, 0, binary.LittleEndian, "x")
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), got)
}

func TestUint128RoundTripBothOrders(t *testing.T) {
	v := uint128.Uint128{Hi: 0x0102030405060708, Lo: 0x090A0B0C0D0E0F10}
	buf := make([]byte, 16)

	require.NoError(t, container.WriteUint128(buf, 0, v, binary.BigEndian, "x"))
	got, err := container.ReadUint128(buf, 0, binary.BigEndian, "x")
	require.NoError(t, err)
	require.Equal(t, v, got)
	require.Equal(t, byte(0x01), buf[0])

	require.NoError(t, container.WriteUint128(buf, 0, v, binary.LittleEndian, "x"))
	got, err = container.ReadUint128(buf, 0, binary.LittleEndian, "x")
	require.NoError(t, err)
	require.Equal(t, v, got)
	require.Equal(t, byte(0x10), buf[0])
}

func TestFloatRoundTrip(t *testing.T) {
	buf := make([]byte, 8)

	require.NoError(t, container.WriteFloat32(buf, 0, 3.5, binary.BigEndian, "f"))
	f, err := container.ReadFloat32(buf, 0, binary.BigEndian, "f")
	require.NoError(t, err)
	require.Equal(t, float32(3.5), f)

	require.NoError(t, container.WriteFloat64(buf, 0, -2.25, binary.LittleEndian, "d"))
	d, err := container.ReadFloat64(buf, 0, binary.LittleEndian, "d")
	require.NoError(t, err)
	require.Equal(t, -2.25, d)
}

func TestReadBoolRejectsNonCanonical(t *testing.T) {
	buf := []byte{0x02}
	_, err := container.ReadBool(buf, 0, "flag")
	require.Error(t, err)

	buf[0] = 0x01
	v, err := container.ReadBool(buf, 0, "flag")
	require.NoError(t, err)
	require.True(t, v)
}

func TestCharRejectsSurrogateAndOutOfRange(t *testing.T) {
	buf := make([]byte, 4)

	require.NoError(t, container.WriteUint32(buf, 0, 0xD800, binary.BigEndian, "c"))
	_, err := container.ReadChar(buf, 0, binary.BigEndian, "c")
	require.Error(t, err)

	require.NoError(t, container.WriteUint32(buf, 0, 0x110000, binary.BigEndian, "c"))
	_, err = container.ReadChar(buf, 0, binary.BigEndian, "c")
	require.Error(t, err)

	require.NoError(t, container.WriteChar(buf, 0, '日', binary.BigEndian, "c"))
	r, err := container.ReadChar(buf, 0, binary.BigEndian, "c")
	require.NoError(t, err)
	require.Equal(t, '日', r)
}

func TestPrimitiveInsufficientData(t *testing.T) {
	buf := make([]byte, 1)
	_, err := container.ReadUint64(buf, 0, binary.BigEndian, "x")
	require.Error(t, err)
}
