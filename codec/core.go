// Package codec implements the Assembler (design §4.6): the layer
// that walks a compiled layout.Plan field by field, calling into
// bitcodec for bit-packed runs and container for everything
// byte-aligned, and binds the result to a caller's own Go struct type
// via reflection rather than generated source (design notes, OQ-1 in
// DESIGN.md: a schema is a Go value compiled once, not a macro
// expansion). Codec[T] is the public, generic-typed handle; core does
// the untyped reflection work underneath it so a nested aggregate's
// codec can be built without knowing its Go type at the call site that
// triggers the recursion.
package codec

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/wirebind/wirebind/layout"
	"github.com/wirebind/wirebind/schema"
)

// fieldBinding pairs one resolved FieldPlan with the reflect field
// index it is bound to in a caller's Go struct, plus whatever extra
// metadata its particular Kind needs (a nested core for KindNested and
// sequence-of-aggregate fields).
type fieldBinding struct {
	fp    *layout.FieldPlan
	index int // index into typ's direct fields

	nested    *core         // set for KindNested and sequence-of-aggregate
	elemType  reflect.Type  // Go element type for sequence/optional fields
	fieldType reflect.Type
}

// core is the untyped engine behind Codec[T]: built once from a
// schema.Aggregate and a reflect.Type, reused across every Decode/
// Encode call.
type core struct {
	plan     *layout.Plan
	agg      *schema.Aggregate
	typ      reflect.Type
	bindings []*fieldBinding
}

// buildCore compiles agg and binds every resolved field to a field of
// typ, which must be a struct type.
func buildCore(agg *schema.Aggregate, typ reflect.Type) (*core, error) {
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("codec: type %s is not a struct", typ)
	}

	plan, err := layout.Compile(agg)
	if err != nil {
		return nil, err
	}

	c := &core{plan: plan, agg: agg, typ: typ}

	for _, fp := range plan.Fields {
		b, err := c.bindField(fp)
		if err != nil {
			return nil, err
		}

		c.bindings = append(c.bindings, b)
	}

	return c, nil
}

// bindField locates the Go struct field bound to fp and, for
// nested/sequence-of-aggregate fields, recursively builds the nested
// core.
func (c *core) bindField(fp *layout.FieldPlan) (*fieldBinding, error) {
	idx, sf, ok := findStructField(c.typ, fp.Name)
	if !ok {
		return nil, fmt.Errorf("codec: struct %s has no field bound to %q (add a `wire:%q` tag or an exported field named %q)",
			c.typ, fp.Name, fp.Name, exportedName(fp.Name))
	}

	b := &fieldBinding{fp: fp, index: idx, fieldType: sf.Type}

	switch {
	case fp.Field.Kind == schema.KindNested:
		elemTyp := sf.Type
		nested, err := buildCore(fp.Field.Nested, elemTyp)
		if err != nil {
			return nil, fmt.Errorf("codec: field %q: %w", fp.Name, err)
		}
		b.nested = nested

	case fp.Field.Kind == schema.KindSequence && fp.Field.Nested != nil:
		if sf.Type.Kind() != reflect.Slice {
			return nil, fmt.Errorf("codec: field %q must bind to a slice, got %s", fp.Name, sf.Type)
		}
		elemTyp := sf.Type.Elem()
		nested, err := buildCore(fp.Field.Nested, elemTyp)
		if err != nil {
			return nil, fmt.Errorf("codec: field %q: %w", fp.Name, err)
		}
		b.nested = nested
		b.elemType = elemTyp

	case fp.Field.Kind == schema.KindOptional:
		if sf.Type.Kind() != reflect.Ptr {
			return nil, fmt.Errorf("codec: optional field %q must bind to a pointer type, got %s", fp.Name, sf.Type)
		}
		b.elemType = sf.Type.Elem()
	}

	return b, nil
}

// findStructField looks up the direct (non-embedded, non-promoted)
// field of typ bound to the schema field named name: an exported field
// carrying a `wire:"name"` tag equal to name, or failing that an
// exported field whose name equals name with its first rune upper-cased.
func findStructField(typ reflect.Type, name string) (int, reflect.StructField, bool) {
	want := exportedName(name)

	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}

		if tag, ok := sf.Tag.Lookup("wire"); ok {
			if tag == name {
				return i, sf, true
			}
			continue
		}

		if sf.Name == want {
			return i, sf, true
		}
	}

	return 0, reflect.StructField{}, false
}

// exportedName upper-cases the first rune of name, the default
// exported-field spelling a schema field name maps to absent a `wire`
// tag override.
func exportedName(name string) string {
	if name == "" {
		return name
	}

	return strings.ToUpper(name[:1]) + name[1:]
}
