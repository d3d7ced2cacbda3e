package schema

import "fmt"

// Aggregate describes a named, ordered collection of fields (§3.1
// AggregateDescriptor) — the schema analog of a struct. Field order is
// significant: it is the wire order, and it is also the order the
// Layout Analyzer walks when checking forward-reference invariants
// (a size-from/size-expr/segment-count-from directive may only name a
// field declared earlier in the same Aggregate).
type Aggregate struct {
	Name   string
	Fields []*Field

	buildErr error
}

// NewAggregate builds an Aggregate from fields constructed with
// NewField, FixedArray, Sequence, SequenceOfAggregate, Text, Nested,
// Optional, and EnumField. The first field construction error (if any)
// and the first duplicate-name error are recorded on the Aggregate and
// surface through layout.Compile, not as a panic.
func NewAggregate(name string, fields ...*Field) *Aggregate {
	a := &Aggregate{Name: name, Fields: fields}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f == nil {
			a.buildErr = fmt.Errorf("aggregate %q: nil field", name)
			return a
		}

		if f.buildErr != nil && a.buildErr == nil {
			a.buildErr = fmt.Errorf("aggregate %q: %w", name, f.buildErr)
		}

		if seen[f.Name] {
			if a.buildErr == nil {
				a.buildErr = fmt.Errorf("aggregate %q: duplicate field name %q", name, f.Name)
			}

			continue
		}

		seen[f.Name] = true
	}

	return a
}

// Err returns the first construction error recorded against a, if any.
func (a *Aggregate) Err() error {
	return a.buildErr
}

// FieldByName returns the field named n, or nil if no such field
// exists.
func (a *Aggregate) FieldByName(n string) *Field {
	for _, f := range a.Fields {
		if f.Name == n {
			return f
		}
	}

	return nil
}

// IndexOf returns the position of the field named n within a.Fields,
// or -1 if not found.
func (a *Aggregate) IndexOf(n string) int {
	for i, f := range a.Fields {
		if f.Name == n {
			return i
		}
	}

	return -1
}
