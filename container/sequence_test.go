package container_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wirebind/wirebind/container"
)

func TestSequenceFixedRoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	payload := []byte{0xDE, 0xAD, 0xBE}

	require.NoError(t, container.WriteSequenceFixed(buf, 1, payload, 3, "s"))
	got, err := container.ReadSequenceFixed(buf, 1, 3, "s")
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestSequenceFixedRejectsWrongLength(t *testing.T) {
	buf := make([]byte, 4)
	err := container.WriteSequenceFixed(buf, 0, []byte{1, 2}, 3, "s")
	require.Error(t, err)
}

func TestFixedArrayRoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	payload := []byte{1, 2, 3, 4}

	require.NoError(t, container.WriteFixedArray(buf, 0, payload, 4, "arr"))
	got, err := container.ReadFixedArray(buf, 0, 4, "arr")
	require.NoError(t, err)
	require.Equal(t, payload, got)
}
