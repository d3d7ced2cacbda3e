package layout

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/wirebind/wirebind/schema"
)

// fingerprintAggregate derives a content hash from an Aggregate's
// declared shape (field names, kinds, and directives relevant to
// layout, in declaration order) using xxhash — the same library
// mebo's internal/hash package uses to identify a value
// deterministically and cheaply, applied here to a schema shape
// instead of a metric name. It depends only on what's already present
// on the schema.Field values, so it can be computed both before and
// after running Compile and agree either way; CompileCached relies on
// that to check its cache without paying for a full Analyze pass.
func fingerprintAggregate(agg *schema.Aggregate) uint64 {
	h := xxhash.New()
	fmt.Fprintf(h, "%s|%d|", agg.Name, len(agg.Fields))

	for _, f := range agg.Fields {
		d := &f.Directives
		fmt.Fprintf(h, "%s:%s:%d:%t:%d;", f.Name, f.Kind, d.BitWidth, d.BitWidthAuto, d.ByteOrderPin)
		fmt.Fprintf(h, "%d:%d:%q:%q:%d:%t:%d:%d:%q:%d:%d;", d.SizeMode, d.FixedSize, d.SizeFromPath, d.SizeExprSrc,
			d.Marker, d.HasMarker, d.SegmentCountMode, d.SegmentCountFixed, d.SegmentCountFromPath, f.FixedArrayLen, f.OptionalElemKind)
		if f.Nested != nil {
			fmt.Fprintf(h, "nested=%x;", fingerprintAggregate(f.Nested))
		}
		if f.Enum != nil {
			fmt.Fprintf(h, "enum=%s:%t:%v;", f.Enum.Name, f.Enum.IsFlags, f.Enum.Variants)
		}
	}

	return h.Sum64()
}

// Registry memoizes Plans by the Fingerprint of the schema.Aggregate
// they were compiled from, avoiding a redundant Analyze pass when the
// same logical shape is compiled repeatedly — e.g. a server decoding
// many distinct message types whose schemas are only assembled at
// start-up from configuration rather than fixed package-level vars.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	plans map[uint64]*Plan
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{plans: make(map[uint64]*Plan)}
}

// CompileCached behaves like Compile, but returns a cached Plan when
// one with an equal structural Fingerprint has already been compiled
// by this Registry. The fingerprint is computed from agg's shape
// before the (possibly skipped) Analyze pass, so a no-op schema change
// that alters the fingerprint always triggers a fresh compile.
func (r *Registry) CompileCached(agg *schema.Aggregate) (*Plan, error) {
	if agg == nil {
		return nil, fmt.Errorf("layout: cannot compile a nil aggregate")
	}

	if agg.Err() == nil {
		key := fingerprintAggregate(agg)

		r.mu.RLock()
		cached, ok := r.plans[key]
		r.mu.RUnlock()

		if ok {
			return cached, nil
		}
	}

	plan, err := Compile(agg)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.plans[plan.Fingerprint()] = plan
	r.mu.Unlock()

	return plan, nil
}

// Len returns the number of distinct plans currently cached.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.plans)
}
