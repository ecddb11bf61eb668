// Package compress provides byte-level block compressors that can be stacked
// after an element codec.
//
// Element codecs (run-length, dictionary, delta) exploit structure in fixed-width
// elements. Their output often still carries redundancy that a general-purpose
// compressor removes, so the staged codec pipes it through one of these:
//   - None: passthrough
//   - Zstd: best ratio, moderate speed
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression
package compress

import (
	"fmt"

	"github.com/arloliu/podcodec/format"
)

// Compressor compresses a complete byte block.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result owned by the caller.
	// The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// Implementations must be safe for concurrent use: parallel codecs decompress
// many chunks through one shared instance.
type Decompressor interface {
	// Decompress returns the original block. It fails if data is corrupted or
	// was produced by a different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions and reports the algorithm.
type Codec interface {
	Compressor
	Decompressor
	Type() format.CompressionType
}

// CreateCodec creates a Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//
// Returns:
//   - Codec: Compressor instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for the given compression type.
//
// Built-in codecs are stateless, so one instance serves every caller.
//
// Parameters:
//   - compressionType: Type of compression
//
// Returns:
//   - Codec: Shared codec instance
//   - error: Error if the compression type is unknown
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if c, ok := builtinCodecs[compressionType]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
