package codec

import (
	"encoding/binary"
	"reflect"

	"github.com/wirebind/wirebind/errs"
	"github.com/wirebind/wirebind/internal/options"
	"github.com/wirebind/wirebind/layout"
	"github.com/wirebind/wirebind/schema"
)

// Codec is the Assembler's public, generic-typed handle (§4.6). A
// Codec[T] is built once from a schema.Aggregate and reused across
// every subsequent Decode/Encode call; T must be a struct whose
// exported fields are bound to the aggregate's declared fields, either
// by an exported field named like the schema field with its first
// rune upper-cased, or by a `wire:"name"` struct tag.
type Codec[T any] struct {
	core   *core
	strict bool
}

// New compiles agg and binds it to T.
func New[T any](agg *schema.Aggregate, opts ...Option) (*Codec[T], error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	c, err := buildCore(agg, typ)
	if err != nil {
		return nil, err
	}

	cfg := &config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Codec[T]{core: c, strict: cfg.strict}, nil
}

// Plan returns the compiled layout backing c, useful for Describe() or
// Fingerprint()-based diagnostics.
func (c *Codec[T]) Plan() *layout.Plan {
	return c.core.plan
}

// DecodeBE decodes a big-endian encoded T from buf, returning the
// value and the number of bytes consumed.
func (c *Codec[T]) DecodeBE(buf []byte) (T, int, error) {
	return c.decode(buf, binary.BigEndian)
}

// DecodeLE decodes a little-endian encoded T from buf.
func (c *Codec[T]) DecodeLE(buf []byte) (T, int, error) {
	return c.decode(buf, binary.LittleEndian)
}

func (c *Codec[T]) decode(buf []byte, order binary.ByteOrder) (T, int, error) {
	var zero T

	if len(buf) == 0 && c.core.plan.MinSizeBytes > 0 {
		return zero, 0, errs.ErrEmptyBuffer
	}

	st := newDecodeState(order)

	v, err := c.core.decode(buf, st)
	if err != nil {
		return zero, 0, err
	}

	if c.strict && st.byteOff != len(buf) {
		return zero, 0, errs.NewFieldError(errs.ErrTrailingData, c.core.plan.AggregateName).
			WithCounts(st.byteOff, len(buf))
	}

	return v.Interface().(T), st.byteOff, nil
}

// EncodeBE encodes v as a freshly allocated big-endian byte slice.
func (c *Codec[T]) EncodeBE(v T) ([]byte, error) {
	sink := NewBufferSink()
	if err := c.EncodeBEInto(v, sink); err != nil {
		return nil, err
	}

	out := make([]byte, len(sink.Bytes()))
	copy(out, sink.Bytes())

	return out, nil
}

// EncodeLE encodes v as a freshly allocated little-endian byte slice.
func (c *Codec[T]) EncodeLE(v T) ([]byte, error) {
	sink := NewBufferSink()
	if err := c.EncodeLEInto(v, sink); err != nil {
		return nil, err
	}

	out := make([]byte, len(sink.Bytes()))
	copy(out, sink.Bytes())

	return out, nil
}

// EncodeBEInto appends v's big-endian encoding to sink, starting at
// sink's current length, letting a caller reuse one growable buffer
// across many calls.
func (c *Codec[T]) EncodeBEInto(v T, sink *BufferSink) error {
	return c.encodeInto(v, sink, binary.BigEndian)
}

// EncodeLEInto is EncodeBEInto's little-endian counterpart.
func (c *Codec[T]) EncodeLEInto(v T, sink *BufferSink) error {
	return c.encodeInto(v, sink, binary.LittleEndian)
}

func (c *Codec[T]) encodeInto(v T, sink *BufferSink, order binary.ByteOrder) error {
	base := len(sink.Bytes())
	st := newEncodeState(sink, base, order)

	return c.core.encode(reflect.ValueOf(v), st)
}

// SizeInBytes returns the exact encoded size of v. For a fixed-size
// aggregate (plan.FastPathEligible) this is a direct lookup; otherwise
// v is encoded into a scratch sink and discarded, since a field whose
// size comes from a size-expr directive has no cheaper way to learn
// its encoded length than evaluating the same write path that would
// produce it.
func (c *Codec[T]) SizeInBytes(v T) int {
	if c.core.plan.FastPathEligible {
		return c.core.plan.MinSizeBytes
	}

	sink := NewBufferSink()
	st := newEncodeState(sink, 0, binary.BigEndian)
	if err := c.core.encode(reflect.ValueOf(v), st); err != nil {
		return -1
	}

	return len(sink.Bytes())
}
