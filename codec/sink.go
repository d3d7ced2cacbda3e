package codec

import "bytes"

// BufferSink is the growable byte sink EncodeBEInto/EncodeLEInto write
// into, letting a caller reuse one buffer across many Encode calls
// instead of allocating a fresh []byte every time (§4.6 artifact: the
// owned-vs-into split). It is a thin wrapper over *bytes.Buffer rather
// than a vendored pool, since amortized growth is exactly what
// bytes.Buffer already gives for free.
type BufferSink struct {
	buf bytes.Buffer
}

// NewBufferSink returns an empty BufferSink.
func NewBufferSink() *BufferSink {
	return &BufferSink{}
}

// Reset empties s for reuse, keeping its underlying storage.
func (s *BufferSink) Reset() {
	s.buf.Reset()
}

// Bytes returns the bytes written to s so far. The slice is only valid
// until the next write to s.
func (s *BufferSink) Bytes() []byte {
	return s.buf.Bytes()
}

// Grow ensures at least n more bytes can be written without another
// allocation, mirroring ByteBuffer.Grow's amortized-growth role.
func (s *BufferSink) Grow(n int) {
	s.buf.Grow(n)
}

// writeAt copies p into s at offset, zero-padding first if s is
// shorter than offset+len(p), so writes can target an absolute byte
// position the way writing directly into a pre-sized []byte would.
func (s *BufferSink) writeAt(offset int, p []byte) {
	s.ensureLen(offset + len(p))
	copy(s.buf.Bytes()[offset:], p)
}

// ensureLen grows s, zero-filling, until it holds at least n bytes,
// and returns s's full backing slice for direct in-place writes (e.g.
// container.WriteUint32(sink.ensureLen(off+4), off, ...)).
func (s *BufferSink) ensureLen(n int) []byte {
	if need := n - s.buf.Len(); need > 0 {
		s.buf.Write(make([]byte, need))
	}

	return s.buf.Bytes()
}
