package codec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wirebind/wirebind/codec"
	"github.com/wirebind/wirebind/errs"
	"github.com/wirebind/wirebind/layout"
)

// P7: a malformed wire buffer produces the specific sentinel error for
// its failure mode rather than a panic or a silently wrong value.

func TestInvalidBooleanByte(t *testing.T) {
	type flagStruct struct {
		Flag bool
	}

	c, err := codec.New[flagStruct](layout.Golden.S7IllFormed["InvalidBoolean"])
	require.NoError(t, err)

	_, _, err = c.DecodeBE([]byte{0x02})
	require.ErrorIs(t, err, errs.ErrInvalidBoolean)
}

func TestInvalidCharScalar(t *testing.T) {
	type scalarStruct struct {
		Scalar rune
	}

	c, err := codec.New[scalarStruct](layout.Golden.S7IllFormed["InvalidChar"])
	require.NoError(t, err)

	// 0xD800 is a UTF-16 surrogate half, never a valid scalar value.
	_, _, err = c.DecodeBE([]byte{0x00, 0x00, 0xD8, 0x00})
	require.True(t, errors.Is(err, errs.ErrInvalidChar) || errors.Is(err, errs.ErrValueOutOfRange))
}

func TestInvalidDiscriminant(t *testing.T) {
	type statusStruct struct {
		Status uint8
	}

	c, err := codec.New[statusStruct](layout.Golden.S7IllFormed["InvalidDiscriminant"])
	require.NoError(t, err)

	_, _, err = c.DecodeBE([]byte{0x07})
	require.ErrorIs(t, err, errs.ErrInvalidDiscriminant)
}

func TestInvalidUTF8(t *testing.T) {
	type textStruct struct {
		S string
	}

	c, err := codec.New[textStruct](layout.Golden.S7IllFormed["InvalidUtf8"])
	require.NoError(t, err)

	_, _, err = c.DecodeBE([]byte{0xFF})
	require.ErrorIs(t, err, errs.ErrInvalidUTF8)
}

func TestEmptyBufferRejected(t *testing.T) {
	c, err := codec.New[s1](layout.Golden.S1BitRunThenU32)
	require.NoError(t, err)

	_, _, err = c.DecodeBE(nil)
	require.ErrorIs(t, err, errs.ErrEmptyBuffer)
}

func TestStrictRejectsTrailingData(t *testing.T) {
	lenient, err := codec.New[s1](layout.Golden.S1BitRunThenU32)
	require.NoError(t, err)

	strict, err := codec.New[s1](layout.Golden.S1BitRunThenU32, codec.Strict())
	require.NoError(t, err)

	in := s1{A: 1, B: 2, C: 3, D: 4}

	buf, err := lenient.EncodeBE(in)
	require.NoError(t, err)
	buf = append(buf, 0xFF) // trailing garbage past the aggregate's last field

	out, n, err := lenient.DecodeBE(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf)-1, n)
	require.Equal(t, in, out)

	_, _, err = strict.DecodeBE(buf)
	require.ErrorIs(t, err, errs.ErrTrailingData)
}

func TestWrongLengthSequenceOnEncode(t *testing.T) {
	c, err := codec.New[s4](layout.Golden.S4LengthPrefixedText)
	require.NoError(t, err)

	// Len says 5 but S is only 3 bytes long: the declared size and the
	// actual payload disagree, which must fail rather than silently
	// truncate or pad.
	_, err = c.EncodeBE(s4{Len: 5, S: "abc"})
	require.Error(t, err)
}
