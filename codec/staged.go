package codec

import (
	"fmt"

	"github.com/arloliu/podcodec/compress"
	"github.com/arloliu/podcodec/errs"
	"github.com/arloliu/podcodec/format"
	"github.com/arloliu/podcodec/internal/pool"
)

// Staged runs a byte compressor over the output of an element codec.
//
// Element codecs remove structure the byte compressor cannot see (runs of
// wide elements, repeating windows); the byte compressor then removes what is
// left, such as the redundancy among run counts. The compressed buffer is
// exactly the stage's output, with no extra framing.
type Staged[T any] struct {
	inner Codec[T]
	stage compress.Codec
}

var _ Codec[int64] = (*Staged[int64])(nil)

// NewStaged creates a codec that compresses with inner, then with stage.
//
// Parameters:
//   - inner: Element codec applied first
//   - stage: Byte compressor applied to inner's output
//
// Returns:
//   - *Staged[T]: New codec
//   - error: ErrNilCodec if either argument is nil
func NewStaged[T any](inner Codec[T], stage compress.Codec) (*Staged[T], error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: staged inner codec", errs.ErrNilCodec)
	}
	if stage == nil {
		return nil, fmt.Errorf("%w: staged byte compressor", errs.ErrNilCodec)
	}

	return &Staged[T]{inner: inner, stage: stage}, nil
}

// NewStagedWith creates a staged codec using the built-in compressor for compressionType.
func NewStagedWith[T any](inner Codec[T], compressionType format.CompressionType) (*Staged[T], error) {
	stage, err := compress.GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	return NewStaged(inner, stage)
}

// Type returns format.CodecStaged.
func (s *Staged[T]) Type() format.CodecType {
	return format.CodecStaged
}

// Stage returns the compression type of the byte compressor.
func (s *Staged[T]) Stage() format.CompressionType {
	return s.stage.Type()
}

// AppendCompressed encodes src with the inner codec, compresses the result and appends it to dst.
func (s *Staged[T]) AppendCompressed(dst []byte, src []T) ([]byte, error) {
	bb := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(bb)

	encoded, err := s.inner.AppendCompressed(bb.B, src)
	bb.B = encoded
	if err != nil {
		return dst, err
	}

	// The compressor may return its input (NoOp), which aliases the pooled buffer;
	// copy into dst before the buffer is released.
	compressed, err := s.stage.Compress(encoded)
	if err != nil {
		return dst, fmt.Errorf("%s stage: %w", s.stage.Type(), err)
	}

	return append(dst, compressed...), nil
}

// AppendDecompressed decompresses data with the byte compressor, then decodes it with the inner codec.
func (s *Staged[T]) AppendDecompressed(dst []T, data []byte) ([]T, error) {
	encoded, err := s.stage.Decompress(data)
	if err != nil {
		return dst, fmt.Errorf("%s stage: %w", s.stage.Type(), err)
	}

	return s.inner.AppendDecompressed(dst, encoded)
}
