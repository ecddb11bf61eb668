package codec

import (
	"fmt"
	"slices"

	"github.com/arloliu/podcodec/endian"
	"github.com/arloliu/podcodec/errs"
	"github.com/arloliu/podcodec/format"
	"github.com/arloliu/podcodec/internal/options"
	"github.com/arloliu/podcodec/internal/pool"
	"github.com/arloliu/podcodec/parallel"
	"github.com/arloliu/podcodec/section"
)

// ParallelChunked splits the input into chunks and codes each chunk
// independently with the inner codec, in parallel.
//
// Layout:
//
//	+------------------------+
//	| chunk count (8 byte)   |  section.ChunkTable
//	| (offset, count) * N    |  16 bytes per chunk
//	+------------------------+
//	| chunk 0 bytes          |
//	| ...                    |
//	| chunk N-1 bytes        |
//	+------------------------+
//
// Offsets are relative to the start of the chunk data. Runs and dictionary
// windows never span chunks because each chunk is a complete inner-codec
// buffer. Output bytes depend only on the input, the inner codec and the
// chunk size, never on worker scheduling.
type ParallelChunked[T any] struct {
	inner     Codec[T]
	chunkSize int
	executor  parallel.Executor
}

var _ Codec[int64] = (*ParallelChunked[int64])(nil)

// NewParallelChunked wraps inner in a chunk-parallel codec.
//
// Parameters:
//   - inner: Codec applied to every chunk
//   - opts: WithChunkSize and WithExecutor
//
// Returns:
//   - *ParallelChunked[T]: New codec
//   - error: ErrNilCodec if inner is nil, or option validation error
func NewParallelChunked[T any](inner Codec[T], opts ...ChunkedOption) (*ParallelChunked[T], error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: parallel chunked inner codec", errs.ErrNilCodec)
	}

	cfg := &ChunkedConfig{executor: parallel.Default()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &ParallelChunked[T]{
		inner:     inner,
		chunkSize: cfg.chunkSize,
		executor:  cfg.executor,
	}, nil
}

// NewParallelChunkedDefault creates a chunk-parallel codec around a RunLength inner codec.
func NewParallelChunkedDefault[T any](opts ...ChunkedOption) (*ParallelChunked[T], error) {
	return NewParallelChunked[T](NewRunLength[T](), opts...)
}

// Type returns format.CodecParallelChunked.
func (c *ParallelChunked[T]) Type() format.CodecType {
	return format.CodecParallelChunked
}

// Inner returns the wrapped codec.
func (c *ParallelChunked[T]) Inner() Codec[T] {
	return c.inner
}

// ChunkSize returns the number of elements per chunk used for an input of n elements.
func (c *ParallelChunked[T]) ChunkSize(n int) int {
	if c.chunkSize > 0 {
		return c.chunkSize
	}

	if n == 0 {
		return 1
	}

	parts := max(1, c.executor.Workers()/2)

	return (n + parts - 1) / parts
}

// AppendCompressed splits src into chunks, compresses them in parallel and
// appends the chunk table followed by the chunk bytes to dst.
//
// Empty input produces a table with zero chunks.
func (c *ParallelChunked[T]) AppendCompressed(dst []byte, src []T) ([]byte, error) {
	chunkSize := c.ChunkSize(len(src))
	chunkCount := (len(src) + chunkSize - 1) / chunkSize

	outputs := make([]*pool.ByteBuffer, chunkCount)
	defer func() {
		for _, bb := range outputs {
			pool.PutChunkBuffer(bb)
		}
	}()

	err := c.executor.Run(chunkCount, func(i int) error {
		bb := pool.GetChunkBuffer()
		outputs[i] = bb

		start := i * chunkSize
		end := min(start+chunkSize, len(src))
		out, err := c.inner.AppendCompressed(bb.B, src[start:end])
		bb.B = out
		if err != nil {
			return fmt.Errorf("chunk %d: %w", i, err)
		}

		return nil
	})
	if err != nil {
		return dst, err
	}

	sizes := make([]int, chunkCount)
	for i, bb := range outputs {
		sizes[i] = bb.Len()
	}

	table := section.NewChunkTable(sizes)
	dst = table.AppendTo(dst, endian.NativeEngine())
	for _, bb := range outputs {
		dst = append(dst, bb.Bytes()...)
	}

	return dst, nil
}

// AppendDecompressed decodes every chunk in parallel and appends the elements
// to dst in chunk table order.
func (c *ParallelChunked[T]) AppendDecompressed(dst []T, data []byte) ([]T, error) {
	table, region, err := section.ParseChunkTable(data, endian.NativeEngine())
	if err != nil {
		return dst, err
	}

	chunks := make([][]T, table.Len())
	err = c.executor.Run(table.Len(), func(i int) error {
		out, err := c.inner.AppendDecompressed(nil, table.Chunk(region, i))
		if err != nil {
			return fmt.Errorf("chunk %d: %w", i, err)
		}
		chunks[i] = out

		return nil
	})
	if err != nil {
		return dst, err
	}

	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}

	dst = slices.Grow(dst, total)
	for _, chunk := range chunks {
		dst = append(dst, chunk...)
	}

	return dst, nil
}
