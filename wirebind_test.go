package wirebind_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wirebind/wirebind"
	"github.com/wirebind/wirebind/schema"
)

type header struct {
	Version uint8
	Len     uint16
	Name    string
}

func testAggregate() *schema.Aggregate {
	return schema.NewAggregate("Header",
		schema.NewField("version", schema.KindUint8),
		schema.NewField("len", schema.KindUint16),
		schema.Text("name", schema.WithSizeFrom("len")),
	)
}

func TestNewAndRoundTrip(t *testing.T) {
	c, err := wirebind.New[header](testAggregate())
	require.NoError(t, err)

	in := header{Version: 1, Len: 4, Name: "ping"}

	buf, err := c.EncodeBE(in)
	require.NoError(t, err)

	out, n, err := c.DecodeBE(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, in, out)
}

func TestNewWithStrict(t *testing.T) {
	c, err := wirebind.New[header](testAggregate(), wirebind.Strict())
	require.NoError(t, err)

	buf, err := c.EncodeBE(header{Version: 1, Len: 4, Name: "ping"})
	require.NoError(t, err)

	_, _, err = c.DecodeBE(append(buf, 0x00))
	require.Error(t, err)
}

func TestCompile(t *testing.T) {
	plan, err := wirebind.Compile(testAggregate())
	require.NoError(t, err)
	require.Equal(t, "Header", plan.AggregateName)
	require.NotEmpty(t, plan.Describe())
}
