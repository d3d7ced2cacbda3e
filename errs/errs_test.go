package errs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wirebind/wirebind/errs"
)

func TestFieldError_Unwrap(t *testing.T) {
	err := errs.NewFieldError(errs.ErrInsufficientData, "payload").WithCounts(10, 3)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInsufficientData)
	require.Contains(t, err.Error(), "payload")
	require.Contains(t, err.Error(), "expected 10")
	require.Contains(t, err.Error(), "got 3")
}

func TestFieldError_WithValue(t *testing.T) {
	err := errs.NewFieldError(errs.ErrInvalidDiscriminant, "kind").WithValue(7).WithMax(3)

	require.ErrorIs(t, err, errs.ErrInvalidDiscriminant)
	require.Contains(t, err.Error(), "value 7")
	require.Contains(t, err.Error(), "max 3")
}

func TestFieldError_PlainMessage(t *testing.T) {
	err := errs.NewFieldError(errs.ErrEmptyBuffer, "root")

	require.Equal(t, "root: "+errs.ErrEmptyBuffer.Error(), err.Error())
}

func TestSentinelsAreDistinct(t *testing.T) {
	all := []error{
		errs.ErrEmptyBuffer,
		errs.ErrInsufficientData,
		errs.ErrInvalidDiscriminant,
		errs.ErrInvalidBitField,
		errs.ErrInvalidUTF8,
		errs.ErrInvalidBoolean,
		errs.ErrInvalidChar,
		errs.ErrMarkerNotFound,
		errs.ErrSizeExprInvalid,
		errs.ErrValueOutOfRange,
		errs.ErrUnboundedTailNotLast,
	}

	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}

			require.False(t, errors.Is(a, b), "sentinel %d should not match sentinel %d", i, j)
		}
	}
}
