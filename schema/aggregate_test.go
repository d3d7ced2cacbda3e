package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAggregateBasic(t *testing.T) {
	a := NewAggregate("Header",
		NewField("version", KindUint8),
		NewField("length", KindUint16),
	)
	require.NoError(t, a.Err())
	require.Len(t, a.Fields, 2)
	require.Equal(t, 1, a.IndexOf("length"))
	require.Nil(t, a.FieldByName("missing"))
}

func TestNewAggregatePropagatesFieldError(t *testing.T) {
	a := NewAggregate("Bad", Sequence("payload"))
	require.Error(t, a.Err())
}

func TestNewAggregateDuplicateName(t *testing.T) {
	a := NewAggregate("Dup",
		NewField("x", KindUint8),
		NewField("x", KindUint8),
	)
	require.Error(t, a.Err())
}
