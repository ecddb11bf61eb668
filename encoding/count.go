package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/podcodec/endian"
	"github.com/arloliu/podcodec/errs"
)

// CountMode selects the byte width used to store a count.
type CountMode uint8

const (
	CountMode8  CountMode = 0 // CountMode8 stores the value in 1 byte.
	CountMode16 CountMode = 1 // CountMode16 stores the value in 2 bytes.
	CountMode32 CountMode = 2 // CountMode32 stores the value in 4 bytes.
	CountMode64 CountMode = 3 // CountMode64 stores the value in 8 bytes.
)

// MaxCountFieldSize is the largest encoded size of a count field (mode byte + 8 value bytes).
const MaxCountFieldSize = 9

// Width returns the number of value bytes for the mode, or 0 for an invalid mode.
func (m CountMode) Width() int {
	switch m {
	case CountMode8:
		return 1
	case CountMode16:
		return 2
	case CountMode32:
		return 4
	case CountMode64:
		return 8
	default:
		return 0
	}
}

// Valid reports whether m is one of the four defined modes.
func (m CountMode) Valid() bool {
	return m <= CountMode64
}

func (m CountMode) String() string {
	switch m {
	case CountMode8:
		return "u8"
	case CountMode16:
		return "u16"
	case CountMode32:
		return "u32"
	case CountMode64:
		return "u64"
	default:
		return fmt.Sprintf("CountMode(%d)", uint8(m))
	}
}

// CountModeOf returns the smallest mode for v.
//
// The boundaries are exclusive: a value equal to math.MaxUint8, math.MaxUint16
// or math.MaxUint32 selects the next wider mode.
func CountModeOf(v uint64) CountMode {
	switch {
	case v < math.MaxUint8:
		return CountMode8
	case v < math.MaxUint16:
		return CountMode16
	case v < math.MaxUint32:
		return CountMode32
	default:
		return CountMode64
	}
}

// CountSize returns the encoded size of v as written by AppendCount: 2, 3, 5 or 9 bytes.
func CountSize(v uint64) int {
	return 1 + CountModeOf(v).Width()
}

// AppendCount appends v as a count field: one mode byte followed by the value
// in the smallest width, in native byte order.
//
// Parameters:
//   - dst: Buffer to append to
//   - v: Count value
//
// Returns:
//   - []byte: The extended buffer
func AppendCount(dst []byte, v uint64) []byte {
	mode := CountModeOf(v)
	dst = append(dst, byte(mode))

	return AppendCountWithMode(dst, v, mode)
}

// AppendCountWithMode appends v using a caller-fixed width and no mode byte.
//
// The caller persists the mode separately and must make sure v fits the width;
// wider values are truncated. An invalid mode is treated as CountMode64.
func AppendCountWithMode(dst []byte, v uint64, mode CountMode) []byte {
	engine := endian.NativeEngine()

	switch mode {
	case CountMode8:
		return append(dst, byte(v))
	case CountMode16:
		return engine.AppendUint16(dst, uint16(v)) //nolint: gosec
	case CountMode32:
		return engine.AppendUint32(dst, uint32(v)) //nolint: gosec
	default:
		return engine.AppendUint64(dst, v)
	}
}

// ReadCount decodes a count field written by AppendCount.
//
// Parameters:
//   - buf: Buffer starting at a count field
//
// Returns:
//   - uint64: Decoded value
//   - int: Bytes consumed, including the mode byte
//   - error: ErrMalformedInput if buf is too short, ErrInvalidCountMode for an unknown mode byte
func ReadCount(buf []byte) (uint64, int, error) {
	if len(buf) == 0 {
		return 0, 0, fmt.Errorf("%w: missing count mode byte", errs.ErrMalformedInput)
	}

	mode := CountMode(buf[0])
	if !mode.Valid() {
		return 0, 0, fmt.Errorf("%w: %d", errs.ErrInvalidCountMode, buf[0])
	}

	v, n, err := ReadCountWithMode(buf[1:], mode)
	if err != nil {
		return 0, 0, err
	}

	return v, n + 1, nil
}

// ReadCountWithMode decodes a value written by AppendCountWithMode with the same mode.
//
// Returns:
//   - uint64: Decoded value
//   - int: Bytes consumed (the mode width)
//   - error: ErrInvalidCountMode or ErrMalformedInput
func ReadCountWithMode(buf []byte, mode CountMode) (uint64, int, error) {
	width := mode.Width()
	if width == 0 {
		return 0, 0, fmt.Errorf("%w: %d", errs.ErrInvalidCountMode, uint8(mode))
	}

	if len(buf) < width {
		return 0, 0, fmt.Errorf("%w: count needs %d bytes, have %d", errs.ErrMalformedInput, width, len(buf))
	}

	engine := endian.NativeEngine()

	switch mode {
	case CountMode8:
		return uint64(buf[0]), 1, nil
	case CountMode16:
		return uint64(engine.Uint16(buf)), 2, nil
	case CountMode32:
		return uint64(engine.Uint32(buf)), 4, nil
	default:
		return engine.Uint64(buf), 8, nil
	}
}
