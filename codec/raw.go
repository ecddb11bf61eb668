package codec

import (
	"fmt"

	"github.com/arloliu/podcodec/errs"
	"github.com/arloliu/podcodec/format"
	"github.com/arloliu/podcodec/internal/pod"
)

// Raw stores element bytes verbatim.
//
// It never compresses, which makes it the baseline candidate of a Hybrid codec:
// with Raw in the candidate list the hybrid output is never larger than the
// input plus the one byte tag.
type Raw[T any] struct{}

var _ Codec[int64] = Raw[int64]{}

// NewRaw creates a Raw codec.
func NewRaw[T any]() Raw[T] {
	return Raw[T]{}
}

// Type returns format.CodecRaw.
func (Raw[T]) Type() format.CodecType {
	return format.CodecRaw
}

// AppendCompressed appends the bytes of src to dst.
func (Raw[T]) AppendCompressed(dst []byte, src []T) ([]byte, error) {
	if _, err := elementSize[T](); err != nil {
		return dst, err
	}

	return append(dst, pod.AsBytes(src)...), nil
}

// AppendDecompressed appends the elements stored in data to dst.
//
// Returns errs.ErrMalformedInput if len(data) is not a multiple of the element size.
func (Raw[T]) AppendDecompressed(dst []T, data []byte) ([]T, error) {
	size, err := elementSize[T]()
	if err != nil {
		return dst, err
	}

	if len(data)%size != 0 {
		return dst, fmt.Errorf("%w: %d bytes is not a multiple of element size %d",
			errs.ErrMalformedInput, len(data), size)
	}

	return pod.AppendBytes(dst, data), nil
}
