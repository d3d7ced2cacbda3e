package layout

import "fmt"

// Diagnostic is a compile-time (i.e. Compile-time, not build-time)
// rejection produced by the Analyzer (§2 Diagnostics, §9 "Diagnostic
// locality"): every rejection names the offending field. Diagnostics
// are distinct from the run-time errs sentinel errors in the errs
// package — those abort a single decode/encode call; a Diagnostic
// means the schema itself never produces a usable Plan.
type Diagnostic struct {
	Aggregate string
	Field     string
	Invariant string
	Reason    string
}

func (d *Diagnostic) Error() string {
	if d.Field == "" {
		return fmt.Sprintf("layout: %s: %s: %s", d.Aggregate, d.Invariant, d.Reason)
	}

	return fmt.Sprintf("layout: %s.%s: %s: %s", d.Aggregate, d.Field, d.Invariant, d.Reason)
}

// Diagnostics collects the Diagnostics found while compiling one
// aggregate. Compile stops at the first violation and returns that
// Diagnostic itself as its error; the collection stays internal to the
// analyzer and is not handed to callers.
type Diagnostics struct {
	items []*Diagnostic
}

func (d *Diagnostics) add(aggregate, field, invariant, reason string) {
	d.items = append(d.items, &Diagnostic{Aggregate: aggregate, Field: field, Invariant: invariant, Reason: reason})
}

// Empty reports whether no diagnostics were recorded.
func (d *Diagnostics) Empty() bool {
	return len(d.items) == 0
}

// All returns every recorded diagnostic, in the order encountered.
func (d *Diagnostics) All() []*Diagnostic {
	return d.items
}

// First returns the first recorded diagnostic, or nil if none.
func (d *Diagnostics) First() *Diagnostic {
	if len(d.items) == 0 {
		return nil
	}

	return d.items[0]
}
