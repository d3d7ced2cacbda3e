package layout

import (
	"fmt"
	"strings"
)

// Describe renders a human-readable summary of p's resolved layout —
// one line per field naming its bit range and operation kind. It is a
// debugging/documentation aid (the Layout visualization entry in
// SPEC_FULL's supplemented-features list), never consulted by
// decode/encode.
func (p *Plan) Describe() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (min %d bytes, fixed=%t, fast-path=%t)\n", p.AggregateName, p.MinSizeBytes, p.IsFixedSize, p.FastPathEligible)

	for _, fp := range p.Fields {
		if fp.Kind.IsVariableSize() {
			fmt.Fprintf(&b, "  %-20s start=bit %-6d %s\n", fp.Name, fp.StartBit, fp.Kind)
			continue
		}

		fmt.Fprintf(&b, "  %-20s bits [%d,%d) %s", fp.Name, fp.StartBit, fp.EndBit, fp.Kind)
		if fp.BitWidth > 0 && fp.Kind != KindPrimitiveAligned {
			fmt.Fprintf(&b, " width=%d", fp.BitWidth)
		}
		if fp.SuspendedAlignment {
			b.WriteString(" [suspended-alignment]")
		}
		b.WriteString("\n")
	}

	return b.String()
}
