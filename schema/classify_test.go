package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wirebind/wirebind/uint128"
)

func TestClassifyGoTypePrimitives(t *testing.T) {
	k, err := ClassifyGoType(reflect.TypeOf(uint32(0)))
	require.NoError(t, err)
	require.Equal(t, KindUint32, k)

	k, err = ClassifyGoType(reflect.TypeOf(float64(0)))
	require.NoError(t, err)
	require.Equal(t, KindFloat64, k)

	k, err = ClassifyGoType(reflect.TypeOf(true))
	require.NoError(t, err)
	require.Equal(t, KindBool, k)
}

func TestClassifyGoTypeUint128(t *testing.T) {
	k, err := ClassifyGoType(reflect.TypeOf(uint128.Uint128{}))
	require.NoError(t, err)
	require.Equal(t, KindUint128, k)
}

func TestClassifyGoTypeContainers(t *testing.T) {
	k, err := ClassifyGoType(reflect.TypeOf(""))
	require.NoError(t, err)
	require.Equal(t, KindText, k)

	k, err = ClassifyGoType(reflect.TypeOf([]byte(nil)))
	require.NoError(t, err)
	require.Equal(t, KindSequence, k)

	k, err = ClassifyGoType(reflect.TypeOf([4]byte{}))
	require.NoError(t, err)
	require.Equal(t, KindFixedArray, k)

	var p *uint16
	k, err = ClassifyGoType(reflect.TypeOf(p).Elem())
	require.NoError(t, err)
	require.Equal(t, KindUint16, k)

	k, err = ClassifyGoType(reflect.TypeOf(p))
	require.NoError(t, err)
	require.Equal(t, KindOptional, k)
}

func TestClassifyGoTypeRejectsUnsupported(t *testing.T) {
	_, err := ClassifyGoType(reflect.TypeOf([3]uint32{}))
	require.Error(t, err)

	_, err = ClassifyGoType(reflect.TypeOf(map[string]int{}))
	require.Error(t, err)

	_, err = ClassifyGoType(nil)
	require.Error(t, err)
}

type sampleStruct struct {
	A uint32
}

func TestClassifyGoTypeNestedStruct(t *testing.T) {
	k, err := ClassifyGoType(reflect.TypeOf(sampleStruct{}))
	require.NoError(t, err)
	require.Equal(t, KindNested, k)
}
