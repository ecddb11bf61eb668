package compress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/podcodec/encoding"
	"github.com/arloliu/podcodec/errs"
	"github.com/arloliu/podcodec/format"
)

// LZ4 block frames are prefixed with the original length as a count field and
// a one byte payload kind.
const (
	lz4KindBlock  byte = 0
	lz4KindStored byte = 1
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
//
// Returns:
//   - LZ4Compressor: New LZ4 compressor instance
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Type returns format.CompressionLZ4.
func (c LZ4Compressor) Type() format.CompressionType {
	return format.CompressionLZ4
}

// Compress compresses the input data using LZ4 block compression.
//
// The raw LZ4 block format does not record the decompressed size, so the
// output starts with the original length. Element codec output is often
// highly compressible, and knowing the exact size lets Decompress allocate
// once instead of guessing. Blocks LZ4 cannot shrink are stored verbatim.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	header := encoding.AppendCount(make([]byte, 0, encoding.MaxCountFieldSize+1), uint64(len(data)))
	headerLen := len(header) + 1

	dst := make([]byte, headerLen+lz4.CompressBlockBound(len(data)))
	copy(dst, header)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[headerLen:])
	if err != nil {
		return nil, err
	}

	if n == 0 || n >= len(data) {
		dst = append(dst[:headerLen-1], lz4KindStored)
		return append(dst, data...), nil
	}

	dst[headerLen-1] = lz4KindBlock

	return dst[:headerLen+n], nil
}

// Decompress decompresses data produced by Compress.
//
// Parameters:
//   - data: Compressed data to decompress
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: ErrMalformedInput if the frame header is damaged, or LZ4 decoding errors
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, n, err := encoding.ReadCount(data)
	if err != nil {
		return nil, err
	}

	if n >= len(data) {
		return nil, fmt.Errorf("%w: lz4 frame missing payload kind", errs.ErrMalformedInput)
	}

	kind := data[n]
	payload := data[n+1:]

	switch kind {
	case lz4KindStored:
		if uint64(len(payload)) != size {
			return nil, fmt.Errorf("%w: stored lz4 payload has %d bytes, header says %d",
				errs.ErrMalformedInput, len(payload), size)
		}

		return append([]byte(nil), payload...), nil
	case lz4KindBlock:
		// An LZ4 block expands at most ~255x; reject sizes no payload could produce.
		if size > uint64(len(payload))*255+16 {
			return nil, fmt.Errorf("%w: lz4 size %d implausible for %d payload bytes",
				errs.ErrMalformedInput, size, len(payload))
		}

		buf := make([]byte, size)
		written, err := lz4.UncompressBlock(payload, buf)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}

		if uint64(written) != size {
			return nil, fmt.Errorf("%w: lz4 produced %d bytes, header says %d",
				errs.ErrMalformedInput, written, size)
		}

		return buf, nil
	default:
		return nil, fmt.Errorf("%w: unknown lz4 payload kind %d", errs.ErrMalformedInput, kind)
	}
}
