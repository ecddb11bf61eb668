// Package errs defines the sentinel errors returned by podcodec codecs.
//
// Errors returned by codecs wrap one of these sentinels with additional
// context, so callers should compare with errors.Is:
//
//	if errors.Is(err, errs.ErrMalformedInput) {
//	    // buffer was truncated or was not produced by this codec
//	}
package errs

import "errors"

// Input format errors.
var (
	// ErrMalformedInput is returned when a compressed buffer is shorter than its
	// header declares, or its payload does not line up with element boundaries.
	ErrMalformedInput = errors.New("malformed compressed input")

	// ErrInvalidCountMode is returned when a count field carries a mode byte outside 0-3.
	ErrInvalidCountMode = errors.New("invalid count encoding mode")

	// ErrInvalidCodecIndex is returned when a hybrid tag byte does not name a configured candidate.
	ErrInvalidCodecIndex = errors.New("invalid hybrid codec index")

	// ErrChunkTableMismatch is returned when chunk table entries do not tile the chunk data region.
	ErrChunkTableMismatch = errors.New("chunk table does not match chunk data")
)

// Configuration errors.
var (
	ErrNoCandidates       = errors.New("hybrid codec requires at least one candidate")
	ErrTooManyCandidates  = errors.New("hybrid codec supports at most 254 candidates")
	ErrInvalidChunkSize   = errors.New("chunk size must be positive")
	ErrInvalidWindowSize  = errors.New("dictionary window size out of range")
	ErrNilCodec           = errors.New("codec must not be nil")
	ErrInvalidWorkerCount = errors.New("worker count must be positive")
)

// Element type errors.
var (
	// ErrUnsupportedElement is returned when the element type is not a fixed-size,
	// pointer-free value type.
	ErrUnsupportedElement = errors.New("unsupported element type")
)

// ErrRoundTripMismatch is returned by codec.Measure when decompressed output differs from the input.
var ErrRoundTripMismatch = errors.New("round-trip mismatch")
