package schema

import (
	"fmt"
	"reflect"

	"github.com/wirebind/wirebind/uint128"
)

// ClassifyGoType is the Type Classifier (§4.1): it maps a Go type to
// the Kind a field declared against it would carry, when a caller
// prefers to derive a schema from existing Go types (via reflection)
// rather than spell out NewField/FixedArray/... calls by hand. Most of
// this codebase's own schemas use the explicit builder functions; this
// entry point exists for callers who already have Go struct types they
// want to bind a wire layout onto.
//
// ClassifyGoType only classifies primitive and container shapes; it
// does not walk struct fields (that job belongs to a caller building
// an Aggregate, which supplies per-field directives ClassifyGoType has
// no way to infer from a bare reflect.Type).
func ClassifyGoType(t reflect.Type) (Kind, error) {
	if t == nil {
		return KindInvalid, fmt.Errorf("schema: cannot classify nil type")
	}

	switch t.Kind() {
	case reflect.Uint8:
		return KindUint8, nil
	case reflect.Uint16:
		return KindUint16, nil
	case reflect.Uint32:
		return KindUint32, nil
	case reflect.Uint64:
		return KindUint64, nil
	case reflect.Int8:
		return KindInt8, nil
	case reflect.Int16:
		return KindInt16, nil
	case reflect.Int32:
		return KindInt32, nil
	case reflect.Int64:
		return KindInt64, nil
	case reflect.Float32:
		return KindFloat32, nil
	case reflect.Float64:
		return KindFloat64, nil
	case reflect.Bool:
		return KindBool, nil
	case reflect.Struct:
		if t == reflect.TypeOf(uint128.Uint128{}) {
			return KindUint128, nil
		}

		return KindNested, nil
	case reflect.String:
		return KindText, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return KindSequence, nil
		}

		return KindSequence, nil
	case reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return KindFixedArray, nil
		}

		return KindInvalid, fmt.Errorf("schema: cannot classify array of %s, only [N]byte is supported", t.Elem())
	case reflect.Ptr:
		elemKind, err := ClassifyGoType(t.Elem())
		if err != nil {
			return KindInvalid, err
		}

		if !elemKind.IsPrimitive() {
			return KindInvalid, fmt.Errorf("schema: optional payload %s is not a primitive kind", t.Elem())
		}

		return KindOptional, nil
	default:
		return KindInvalid, fmt.Errorf("schema: cannot classify Go type %s (kind %s)", t, t.Kind())
	}
}
