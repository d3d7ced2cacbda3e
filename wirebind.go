// Package wirebind implements a reflection-driven binary struct codec:
// declare a wire layout as a schema.Aggregate, compile it once, and
// bind it to any Go struct to get byte-exact, bit-packed encode/decode
// without a code generation step.
//
// # Basic usage
//
// Declaring a layout and binding it to a struct:
//
//	agg := schema.NewAggregate("Header",
//	    schema.NewField("version", schema.KindUint8),
//	    schema.NewField("len", schema.KindUint16),
//	    schema.Text("name", schema.WithSizeFrom("len")),
//	)
//
//	type Header struct {
//	    Version uint8
//	    Len     uint16
//	    Name    string
//	}
//
//	c, err := wirebind.New[Header](agg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	buf, err := c.EncodeBE(Header{Version: 1, Len: 4, Name: "ping"})
//	hdr, _, err := c.DecodeBE(buf)
//
// This package provides convenient top-level wrappers around the
// layout and codec packages. For compile-time diagnostics or a shared
// plan cache across many aggregates, use those packages directly.
package wirebind

import (
	"github.com/wirebind/wirebind/codec"
	"github.com/wirebind/wirebind/layout"
	"github.com/wirebind/wirebind/schema"
)

// Option configures a Codec at New time (see codec.Option).
type Option = codec.Option

// Strict makes a Codec's Decode calls fail when the input buffer has
// bytes left over past the aggregate's last field.
func Strict() Option {
	return codec.Strict()
}

// New compiles agg and binds it to T, returning a reusable Codec.
func New[T any](agg *schema.Aggregate, opts ...Option) (*codec.Codec[T], error) {
	return codec.New[T](agg, opts...)
}

// Compile resolves agg's field layout without binding it to a Go
// type, for diagnostics or to inspect Plan.Describe() before
// committing to a struct shape.
func Compile(agg *schema.Aggregate) (*layout.Plan, error) {
	return layout.Compile(agg)
}
