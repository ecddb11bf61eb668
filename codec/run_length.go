package codec

import (
	"fmt"

	"github.com/arloliu/podcodec/endian"
	"github.com/arloliu/podcodec/errs"
	"github.com/arloliu/podcodec/format"
	"github.com/arloliu/podcodec/internal/pod"
)

// runCountSize is the width of the fixed run count field.
const runCountSize = 8

// RunLength encodes runs of equal consecutive elements with a fixed 8-byte count.
//
// Layout, repeated once per run:
//
//	+----------------+------------------+
//	| count (8 byte) | element (size)   |
//	+----------------+------------------+
//
// The compressed size is runs * (8 + element size); a constant input of any
// length compresses to a single run.
type RunLength[T any] struct{}

var _ Codec[int64] = RunLength[int64]{}

// NewRunLength creates a fixed-count run-length codec.
func NewRunLength[T any]() RunLength[T] {
	return RunLength[T]{}
}

// Type returns format.CodecRunLength.
func (RunLength[T]) Type() format.CodecType {
	return format.CodecRunLength
}

// AppendCompressed appends one (count, element) record per run of src to dst.
//
// Empty input appends nothing.
func (RunLength[T]) AppendCompressed(dst []byte, src []T) ([]byte, error) {
	size, err := elementSize[T]()
	if err != nil {
		return dst, err
	}

	engine := endian.NativeEngine()
	b := pod.AsBytes(src)
	forEachRun(b, size, func(offset, count int) {
		dst = engine.AppendUint64(dst, uint64(count)) //nolint: gosec
		dst = append(dst, b[offset:offset+size]...)
	})

	return dst, nil
}

// AppendDecompressed expands every run record in data and appends the elements to dst.
//
// Returns errs.ErrMalformedInput if a record is truncated or carries a zero count.
// Counts that together expand past MaxRunDecodeBytes fail the same way.
func (RunLength[T]) AppendDecompressed(dst []T, data []byte) ([]T, error) {
	size, err := elementSize[T]()
	if err != nil {
		return dst, err
	}

	engine := endian.NativeEngine()
	record := runCountSize + size
	remaining := maxRunDecodeElements(size)

	for pos := 0; pos < len(data); pos += record {
		if len(data)-pos < record {
			return dst, fmt.Errorf("%w: run record at offset %d needs %d bytes, have %d",
				errs.ErrMalformedInput, pos, record, len(data)-pos)
		}

		count := engine.Uint64(data[pos:])
		if count == 0 || count > remaining {
			return dst, fmt.Errorf("%w: invalid run count %d at offset %d", errs.ErrMalformedInput, count, pos)
		}

		remaining -= count

		dst = pod.AppendRepeat(dst, data[pos+runCountSize:pos+record], int(count))
	}

	return dst, nil
}
