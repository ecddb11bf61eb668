package codec

import (
	"bytes"
	"fmt"
	"time"

	"github.com/arloliu/podcodec/errs"
	"github.com/arloliu/podcodec/format"
	"github.com/arloliu/podcodec/internal/pod"
)

// Stats describes one measured compress/decompress round trip.
//
// This is useful for choosing codecs and candidate lists for a given dataset.
type Stats struct {
	// Codec identifies the measured codec.
	Codec format.CodecType

	// Elements is the number of input elements.
	Elements int

	// OriginalSize is the size of the input in bytes.
	OriginalSize int64

	// CompressedSize is the size of the compressed buffer in bytes.
	CompressedSize int64

	// CompressionTime is the time taken to compress the input.
	CompressionTime time.Duration

	// DecompressionTime is the time taken to decompress the buffer.
	DecompressionTime time.Duration
}

// Ratio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression.
// Values greater than 1.0 indicate overhead, which happens for header-carrying
// codecs on tiny or incompressible inputs.
//
// Returns:
//   - float64: Compression ratio (0.0 if original size is zero)
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
//
// Returns:
//   - float64: Space savings percentage, negative when the output is larger than the input
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.Ratio()) * 100.0
}

func (s Stats) String() string {
	return fmt.Sprintf("%s: %d -> %d bytes (ratio %.4f, %.2f%% saved, compress %v, decompress %v)",
		s.Codec, s.OriginalSize, s.CompressedSize, s.Ratio(), s.SpaceSavings(),
		s.CompressionTime, s.DecompressionTime)
}

// Measure compresses src with c, decompresses the result and verifies the round trip.
//
// Parameters:
//   - c: Codec to measure
//   - src: Input elements
//
// Returns:
//   - Stats: Sizes and timings of the round trip
//   - error: Codec error, or errs.ErrRoundTripMismatch if the decoded elements differ from src
func Measure[T any](c Codec[T], src []T) (Stats, error) {
	stats := Stats{
		Codec:        c.Type(),
		Elements:     len(src),
		OriginalSize: int64(len(pod.AsBytes(src))),
	}

	start := time.Now()
	compressed, err := c.AppendCompressed(nil, src)
	stats.CompressionTime = time.Since(start)
	if err != nil {
		return stats, err
	}
	stats.CompressedSize = int64(len(compressed))

	start = time.Now()
	restored, err := c.AppendDecompressed(make([]T, 0, len(src)), compressed)
	stats.DecompressionTime = time.Since(start)
	if err != nil {
		return stats, err
	}

	if len(restored) != len(src) {
		return stats, fmt.Errorf("%w: decoded %d elements, want %d", errs.ErrRoundTripMismatch, len(restored), len(src))
	}
	if !bytes.Equal(pod.AsBytes(restored), pod.AsBytes(src)) {
		return stats, fmt.Errorf("%w: decoded bytes differ", errs.ErrRoundTripMismatch)
	}

	return stats, nil
}
