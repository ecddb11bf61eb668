package compress

import "github.com/arloliu/podcodec/format"

// ZstdCompressor provides Zstandard compression.
//
// The default build uses the pure Go klauspost/compress implementation. Building
// with cgo and the gozstd tag switches to the libzstd binding from valyala/gozstd.
// Both produce standard zstd frames, so the two builds read each other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Type returns format.CompressionZstd.
func (c ZstdCompressor) Type() format.CompressionType {
	return format.CompressionZstd
}
