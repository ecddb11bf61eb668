package codec

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/podcodec/errs"
	"github.com/arloliu/podcodec/format"
	"github.com/arloliu/podcodec/internal/pod"
)

// Delta stores the first element followed by the difference of each element
// from its predecessor.
//
// Differences use wrapping integer arithmetic, so every input round-trips
// including sequences that cross the type's range. On its own the output has
// the same size as the input; Delta is meant to feed a run-length codec or a
// byte compressor (see Staged), where slowly changing sequences become runs
// of small, equal differences.
type Delta[T constraints.Integer] struct{}

var _ Codec[int64] = Delta[int64]{}

// NewDelta creates a delta codec.
func NewDelta[T constraints.Integer]() Delta[T] {
	return Delta[T]{}
}

// Type returns format.CodecDelta.
func (Delta[T]) Type() format.CodecType {
	return format.CodecDelta
}

// AppendCompressed appends the delta-coded form of src to dst. Empty input appends nothing.
func (Delta[T]) AppendCompressed(dst []byte, src []T) ([]byte, error) {
	if _, err := elementSize[T](); err != nil {
		return dst, err
	}

	if len(src) == 0 {
		return dst, nil
	}

	deltas := make([]T, len(src))
	deltas[0] = src[0]
	for i := 1; i < len(src); i++ {
		deltas[i] = src[i] - src[i-1]
	}

	return append(dst, pod.AsBytes(deltas)...), nil
}

// AppendDecompressed restores the elements by a running sum over the stored differences.
func (Delta[T]) AppendDecompressed(dst []T, data []byte) ([]T, error) {
	size, err := elementSize[T]()
	if err != nil {
		return dst, err
	}

	if len(data)%size != 0 {
		return dst, fmt.Errorf("%w: %d bytes is not a multiple of element size %d",
			errs.ErrMalformedInput, len(data), size)
	}

	start := len(dst)
	dst = pod.AppendBytes(dst, data)

	values := dst[start:]
	for i := 1; i < len(values); i++ {
		values[i] += values[i-1]
	}

	return dst, nil
}
