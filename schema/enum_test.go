package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEnumerationDuplicateName(t *testing.T) {
	e := NewEnumeration("Color", Variant{"Red", 0}, Variant{"Red", 1})
	require.Error(t, e.Err())
}

func TestNewEnumerationDuplicateDiscriminant(t *testing.T) {
	e := NewEnumeration("Color", Variant{"Red", 0}, Variant{"Green", 0})
	require.Error(t, e.Err())
}

func TestNewFlagEnumerationRejectsNonPowerOfTwo(t *testing.T) {
	e := NewFlagEnumeration("Perm", Variant{"ReadWrite", 3})
	require.Error(t, e.Err())
}

func TestBitsNeeded(t *testing.T) {
	e := NewEnumeration("Small", Variant{"A", 0}, Variant{"B", 1}, Variant{"C", 2})
	require.NoError(t, e.Err())
	require.Equal(t, 2, e.BitsNeeded())

	empty := NewEnumeration("Empty")
	require.Equal(t, 0, empty.BitsNeeded())
}

func TestContainsAndVariantName(t *testing.T) {
	e := NewEnumeration("Color", Variant{"Red", 0}, Variant{"Green", 1})
	require.True(t, e.Contains(1))
	require.False(t, e.Contains(5))
	require.Equal(t, "Green", e.VariantName(1))
	require.Equal(t, "", e.VariantName(5))
}

func TestKnownBitsMask(t *testing.T) {
	e := NewFlagEnumeration("Perm", Variant{"Read", 1}, Variant{"Write", 2}, Variant{"Exec", 4})
	require.NoError(t, e.Err())
	require.Equal(t, uint64(7), e.KnownBitsMask())
}
