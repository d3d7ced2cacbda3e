package codec

import (
	"encoding/binary"
	"fmt"
)

// decodeState carries the Assembler's per-call cursor (design §4.6:
// RESUMABLE_ALIGNED / IN_BIT_RUN / UNBOUNDED_TAIL) across the fields of
// one aggregate. byteOff/bitOff together are the absolute read
// position; bitOff is non-zero only while inside a bit-packed run and
// invariant I1 guarantees it returns to zero before the next
// byte-aligned field (layout.Compile already enforced this at compile
// time, so decode never needs to re-check it).
type decodeState struct {
	order   binary.ByteOrder
	byteOff int
	bitOff  int

	scalars map[string]int64
}

func newDecodeState(order binary.ByteOrder) *decodeState {
	return &decodeState{order: order, scalars: make(map[string]int64)}
}

func (s *decodeState) absBit() uint64 {
	return uint64(s.byteOff)*8 + uint64(s.bitOff)
}

func (s *decodeState) advanceBits(n int) {
	total := s.bitOff + n
	s.byteOff += total / 8
	s.bitOff = total % 8
}

func (s *decodeState) advanceBytes(n int) {
	s.byteOff += n
}

func (s *decodeState) record(name string, v int64) {
	s.scalars[name] = v
}

func (s *decodeState) lookup(path string) (int64, error) {
	if v, ok := s.scalars[path]; ok {
		return v, nil
	}

	return 0, fmt.Errorf("codec: field %q is not available for a size reference", path)
}

// encodeState mirrors decodeState for Encode, growing sink on demand
// instead of bounds-checking an input buffer. byteOff/bitOff are
// relative to the start of the aggregate currently being written, not
// an absolute sink offset; encodeField adds sinkBase before every
// sink write so a nested aggregate's own state starts back at zero.
type encodeState struct {
	sink     *BufferSink
	sinkBase int
	order    binary.ByteOrder
	byteOff  int
	bitOff   int

	scalars map[string]int64
}

func newEncodeState(sink *BufferSink, sinkBase int, order binary.ByteOrder) *encodeState {
	return &encodeState{sink: sink, sinkBase: sinkBase, order: order, scalars: make(map[string]int64)}
}

// sinkOffset returns the absolute sink byte position for the current
// cursor.
func (s *encodeState) sinkOffset() int {
	return s.sinkBase + s.byteOff
}

func (s *encodeState) absBit() uint64 {
	return uint64(s.byteOff)*8 + uint64(s.bitOff)
}

func (s *encodeState) advanceBits(n int) {
	total := s.bitOff + n
	s.byteOff += total / 8
	s.bitOff = total % 8
}

func (s *encodeState) advanceBytes(n int) {
	s.byteOff += n
}

func (s *encodeState) record(name string, v int64) {
	s.scalars[name] = v
}

func (s *encodeState) lookup(path string) (int64, error) {
	if v, ok := s.scalars[path]; ok {
		return v, nil
	}

	return 0, fmt.Errorf("codec: field %q is not available for a size reference", path)
}
