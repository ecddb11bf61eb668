// Package codec provides block codecs for arrays of fixed-width elements.
//
// An element is any fixed-size value type without pointers: integers, floats,
// fixed arrays and structs of those. Most codecs treat an element as an opaque
// byte pattern and compare elements by their bytes, so NaN payloads and
// padding round-trip unchanged. Only Delta interprets elements as integers.
//
// Codecs fall into two layers:
//   - Element codecs that define a binary layout: Raw, RunLength,
//     VariableRunLength, Dictionary and Delta.
//   - Structural codecs that compose other codecs: Hybrid picks the smallest of
//     several candidates, ParallelChunked splits the input into independently
//     coded chunks, and Staged pipes an element codec's output through a byte
//     compressor.
//
// Compressed buffers carry no type or version tag and use the host byte order.
// The caller must decompress with a codec configured exactly like the one that
// compressed.
//
// Example:
//
//	rle := codec.NewVariableRunLength[uint32]()
//	data, err := codec.Compress(rle, values)
//	if err != nil {
//		return err
//	}
//	restored, err := codec.Decompress(rle, data)
package codec

import (
	"math"

	"github.com/arloliu/podcodec/format"
	"github.com/arloliu/podcodec/internal/pod"
)

// Compressor encodes element slices.
type Compressor[T any] interface {
	// AppendCompressed appends the encoded form of src to dst and returns the
	// extended buffer. src is never modified.
	AppendCompressed(dst []byte, src []T) ([]byte, error)
}

// Decompressor decodes buffers produced by the matching Compressor.
type Decompressor[T any] interface {
	// AppendDecompressed decodes data and appends the elements to dst.
	//
	// Buffers that are truncated or were not produced by the same codec
	// configuration fail with an error wrapping errs.ErrMalformedInput or a
	// more specific sentinel; decoding never panics on bad input.
	AppendDecompressed(dst []T, data []byte) ([]T, error)
}

// Codec is a Compressor and Decompressor pair.
//
// Implementations hold only their own configuration and are safe for
// concurrent use.
type Codec[T any] interface {
	Compressor[T]
	Decompressor[T]

	// Type identifies the codec's binary layout.
	Type() format.CodecType
}

// Compress encodes src into a newly allocated buffer.
//
// Parameters:
//   - c: Codec used to encode
//   - src: Elements to encode
//
// Returns:
//   - []byte: Encoded bytes
//   - error: Encoding error, including errs.ErrUnsupportedElement for invalid element types
func Compress[T any](c Compressor[T], src []T) ([]byte, error) {
	return c.AppendCompressed(nil, src)
}

// Decompress decodes data into a newly allocated element slice.
//
// Parameters:
//   - c: Codec used to decode, configured like the one that encoded data
//   - data: Encoded bytes
//
// Returns:
//   - []T: Decoded elements
//   - error: Decoding error
func Decompress[T any](c Decompressor[T], data []byte) ([]T, error) {
	return c.AppendDecompressed(nil, data)
}

// MaxRunDecodeBytes bounds the element bytes a single run-length decode call
// may expand to. Buffers whose run counts add up to more fail with
// errs.ErrMalformedInput instead of allocating.
const MaxRunDecodeBytes = 1 << 32 // 4GiB

// maxRunDecodeElements returns how many elements of the given size a single
// run-length decode call may produce.
func maxRunDecodeElements(size int) uint64 {
	return min(uint64(MaxRunDecodeBytes)/uint64(size), uint64(math.MaxInt/size)) //nolint: gosec
}

// elementSize resolves the byte size of T, failing for types that cannot be
// treated as a plain byte pattern.
func elementSize[T any]() (int, error) {
	return pod.Size[T]()
}
