package container

import "github.com/wirebind/wirebind/errs"

// scanMarker finds the first occurrence of marker in buf[offset:],
// returning its index relative to offset. found is false if no such
// byte exists before the end of buf.
func scanMarker(buf []byte, offset int, marker byte) (idx int, found bool) {
	for i := offset; i < len(buf); i++ {
		if buf[i] == marker {
			return i - offset, true
		}
	}

	return 0, false
}

// ReadMarkerUntil scans buf[offset:] for marker and returns the bytes
// strictly before it (excluding the marker itself) along with the
// total number of bytes consumed, including the marker. If isTail is
// true and marker is never found, the rest of the buffer is returned
// as the payload with no marker consumed (§4.5 unbounded trailing
// marker-delimited field); otherwise a missing marker is an error.
func ReadMarkerUntil(buf []byte, offset int, marker byte, isTail bool, field string) ([]byte, int, error) {
	idx, found := scanMarker(buf, offset, marker)
	if !found {
		if isTail {
			payload := make([]byte, len(buf)-offset)
			copy(payload, buf[offset:])
			return payload, len(payload), nil
		}

		return nil, 0, errs.NewFieldError(errs.ErrMarkerNotFound, field)
	}

	payload := make([]byte, idx)
	copy(payload, buf[offset:offset+idx])

	return payload, idx + 1, nil
}

// WriteMarkerUntil appends payload followed by marker (unless isTail
// is true, in which case no marker is written) starting at offset,
// returning the number of bytes written. A payload that contains
// marker is rejected with ErrValueOutOfRange.
func WriteMarkerUntil(buf []byte, offset int, payload []byte, marker byte, isTail bool, field string) (int, error) {
	for _, b := range payload {
		if b == marker {
			return 0, errs.NewFieldError(errs.ErrValueOutOfRange, field).WithValue(uint64(b))
		}
	}

	n := len(payload)
	if !isTail {
		n++
	}

	if err := requireBytes(buf, offset, n, field); err != nil {
		return 0, err
	}

	copy(buf[offset:], payload)
	if !isTail {
		buf[offset+len(payload)] = marker
	}

	return n, nil
}

// ReadMarkerAfter scans buf[offset:] for marker, discards everything up
// to and including it, and returns the remainder of buf as payload
// (§4.5: "scan forward; if marker found, discard bytes up to and
// including the marker, then consume the remainder"). Like
// ReadMarkerUntil's isTail case, it is an unbounded trailing field: the
// payload runs to the end of buf rather than to a second marker.
func ReadMarkerAfter(buf []byte, offset int, marker byte, field string) ([]byte, int, error) {
	idx, found := scanMarker(buf, offset, marker)
	if !found {
		return nil, 0, errs.NewFieldError(errs.ErrMarkerNotFound, field)
	}

	start := offset + idx + 1
	payload := make([]byte, len(buf)-start)
	copy(payload, buf[start:])

	return payload, len(buf) - offset, nil
}

// WriteMarkerAfter writes a leading marker byte followed by payload,
// with no terminating marker (§6.1: "the marker is prefixed to the
// content").
func WriteMarkerAfter(buf []byte, offset int, payload []byte, marker byte, field string) (int, error) {
	n := 1 + len(payload)
	if err := requireBytes(buf, offset, n, field); err != nil {
		return 0, err
	}

	buf[offset] = marker
	copy(buf[offset+1:], payload)

	return n, nil
}

// ReadMultiSegment reads segmentCount marker-delimited segments in a
// row out of buf[offset:], each terminated by marker (§4.5 multi-
// segment marker sequences, guarded at compile time by invariant I5).
func ReadMultiSegment(buf []byte, offset int, marker byte, segmentCount int, field string) ([][]byte, int, error) {
	segments := make([][]byte, 0, segmentCount)
	total := 0

	for i := 0; i < segmentCount; i++ {
		seg, n, err := ReadMarkerUntil(buf, offset+total, marker, false, field)
		if err != nil {
			return nil, 0, err
		}

		segments = append(segments, seg)
		total += n
	}

	return segments, total, nil
}

// WriteMultiSegment writes each of segments in order, each terminated
// by marker.
func WriteMultiSegment(buf []byte, offset int, segments [][]byte, marker byte, field string) (int, error) {
	total := 0

	for _, seg := range segments {
		n, err := WriteMarkerUntil(buf, offset+total, seg, marker, false, field)
		if err != nil {
			return 0, err
		}

		total += n
	}

	return total, nil
}
