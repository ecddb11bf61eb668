package codec

import (
	"fmt"

	"github.com/arloliu/podcodec/encoding"
	"github.com/arloliu/podcodec/errs"
	"github.com/arloliu/podcodec/format"
	"github.com/arloliu/podcodec/internal/pod"
)

// VariableRunLength encodes runs like RunLength but stores each count as a
// variable-width count field (see encoding.AppendCount).
//
// Counts below 255 cost 2 bytes instead of 8, which pays off when most runs
// are short; very long runs cost 9 bytes instead of 8.
type VariableRunLength[T any] struct{}

var _ Codec[int64] = VariableRunLength[int64]{}

// NewVariableRunLength creates a variable-count run-length codec.
func NewVariableRunLength[T any]() VariableRunLength[T] {
	return VariableRunLength[T]{}
}

// Type returns format.CodecVariableRunLength.
func (VariableRunLength[T]) Type() format.CodecType {
	return format.CodecVariableRunLength
}

// AppendCompressed appends one (count field, element) record per run of src to dst.
func (VariableRunLength[T]) AppendCompressed(dst []byte, src []T) ([]byte, error) {
	size, err := elementSize[T]()
	if err != nil {
		return dst, err
	}

	b := pod.AsBytes(src)
	forEachRun(b, size, func(offset, count int) {
		dst = encoding.AppendCount(dst, uint64(count)) //nolint: gosec
		dst = append(dst, b[offset:offset+size]...)
	})

	return dst, nil
}

// AppendDecompressed expands every run record in data and appends the elements to dst.
//
// Like RunLength, the total expansion is bounded by MaxRunDecodeBytes.
func (VariableRunLength[T]) AppendDecompressed(dst []T, data []byte) ([]T, error) {
	size, err := elementSize[T]()
	if err != nil {
		return dst, err
	}

	remaining := maxRunDecodeElements(size)

	for pos := 0; pos < len(data); {
		count, n, err := encoding.ReadCount(data[pos:])
		if err != nil {
			return dst, fmt.Errorf("run at offset %d: %w", pos, err)
		}
		if count == 0 || count > remaining {
			return dst, fmt.Errorf("%w: invalid run count %d at offset %d", errs.ErrMalformedInput, count, pos)
		}
		pos += n

		if len(data)-pos < size {
			return dst, fmt.Errorf("%w: run element at offset %d needs %d bytes, have %d",
				errs.ErrMalformedInput, pos, size, len(data)-pos)
		}

		remaining -= count

		dst = pod.AppendRepeat(dst, data[pos:pos+size], int(count))
		pos += size
	}

	return dst, nil
}
