// Package podcodec provides block compression for arrays of fixed-width elements.
//
// The codecs live in the codec package; this package wires them into ready-made
// configurations for the common case.
//
// # Codecs
//
//   - Raw: element bytes verbatim
//   - RunLength / VariableRunLength: runs of equal elements with fixed or variable-width counts
//   - Dictionary: repeating windows replaced by dictionary indices
//   - Delta: first element plus successive differences (integers only)
//   - Staged: an element codec followed by a byte compressor (Zstd, S2, LZ4)
//   - Hybrid: the smallest output among several candidates, tagged with one byte
//   - ParallelChunked: independently coded chunks, compressed and decompressed in parallel
//
// # Basic Usage
//
//	values := []uint32{1, 1, 1, 2, 2, 3}
//
//	data, err := podcodec.Compress(values)
//	if err != nil {
//	    return err
//	}
//
//	restored, err := podcodec.Decompress[uint32](data)
//
// Compressed buffers are not self-describing: they carry no codec identifier,
// no version and no checksum, and multi-byte fields use the host byte order.
// Decompress with the same codec configuration on a machine of the same
// endianness.
package podcodec

import (
	"github.com/arloliu/podcodec/codec"
	"github.com/arloliu/podcodec/format"
)

// adaptiveMaxWindowSize bounds the dictionary search inside NewAdaptive; the
// search cost grows with the square of the window size.
const adaptiveMaxWindowSize = 8

// NewAdaptive creates the general-purpose codec used by Compress and Decompress.
//
// The input is split into chunks coded in parallel. Each chunk goes to a hybrid
// of Raw, VariableRunLength, RunLength, Dictionary and VariableRunLength+Zstd,
// so every chunk independently picks the layout that suits its data.
//
// Parameters:
//   - opts: Chunking options (WithChunkSize, WithExecutor)
//
// Returns:
//   - *codec.ParallelChunked[T]: The composed codec
//   - error: Option validation error
func NewAdaptive[T any](opts ...codec.ChunkedOption) (*codec.ParallelChunked[T], error) {
	dict, err := codec.NewDictionary[T](codec.WithMaxWindowSize(adaptiveMaxWindowSize))
	if err != nil {
		return nil, err
	}

	staged, err := codec.NewStagedWith[T](codec.NewVariableRunLength[T](), format.CompressionZstd)
	if err != nil {
		return nil, err
	}

	hybrid, err := codec.NewHybrid([]codec.Codec[T]{
		codec.NewRaw[T](),
		codec.NewVariableRunLength[T](),
		codec.NewRunLength[T](),
		dict,
		staged,
	})
	if err != nil {
		return nil, err
	}

	return codec.NewParallelChunked[T](hybrid, opts...)
}

// NewChunked creates a parallel chunked codec over variable run-length coding.
//
// It is the fast choice for data dominated by runs, such as sensor readings
// that rarely change.
func NewChunked[T any](opts ...codec.ChunkedOption) (*codec.ParallelChunked[T], error) {
	return codec.NewParallelChunked[T](codec.NewVariableRunLength[T](), opts...)
}

// Compress compresses src with the adaptive codec.
//
// Parameters:
//   - src: Elements to compress; T must be a fixed-size type without pointers
//
// Returns:
//   - []byte: Compressed buffer, decodable with Decompress[T]
//   - error: errs.ErrUnsupportedElement for invalid element types
func Compress[T any](src []T) ([]byte, error) {
	c, err := NewAdaptive[T]()
	if err != nil {
		return nil, err
	}

	return codec.Compress[T](c, src)
}

// Decompress decompresses a buffer produced by Compress with the same element type.
func Decompress[T any](data []byte) ([]T, error) {
	c, err := NewAdaptive[T]()
	if err != nil {
		return nil, err
	}

	return codec.Decompress[T](c, data)
}
