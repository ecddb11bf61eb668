package section

import (
	"fmt"

	"github.com/arloliu/podcodec/endian"
	"github.com/arloliu/podcodec/errs"
)

// LookupHeader is the fixed-size header at the start of a dictionary-coded buffer.
type LookupHeader struct {
	// WindowSize is the number of elements per dictionary window.
	// Zero marks an empty input with an empty dictionary.
	WindowSize uint64 // byte offset 0-7
	// Phase is the number of leading elements stored verbatim before the first window.
	Phase uint64 // byte offset 8-15
	// EntryCount is the number of dictionary entries.
	EntryCount uint64 // byte offset 16-23
	// TailLength is the element count of the trailing short window, 0 if the
	// windowed range divides evenly. The short window is always the last entry.
	TailLength uint64 // byte offset 24-31
}

// AppendTo appends the 32-byte header to dst.
func (h LookupHeader) AppendTo(dst []byte, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint64(dst, h.WindowSize)
	dst = engine.AppendUint64(dst, h.Phase)
	dst = engine.AppendUint64(dst, h.EntryCount)

	return engine.AppendUint64(dst, h.TailLength)
}

// Validate checks the header fields against each other.
//
// Returns:
//   - error: ErrMalformedInput describing the first inconsistency, nil if valid
func (h LookupHeader) Validate() error {
	if h.WindowSize == 0 {
		if h.Phase != 0 || h.EntryCount != 0 || h.TailLength != 0 {
			return fmt.Errorf("%w: empty dictionary header carries data", errs.ErrMalformedInput)
		}

		return nil
	}

	switch {
	case h.WindowSize > MaxLookupWindowSize:
		return fmt.Errorf("%w: window size %d exceeds %d", errs.ErrMalformedInput, h.WindowSize, MaxLookupWindowSize)
	case h.Phase >= h.WindowSize:
		return fmt.Errorf("%w: phase %d not below window size %d", errs.ErrMalformedInput, h.Phase, h.WindowSize)
	case h.TailLength >= h.WindowSize:
		return fmt.Errorf("%w: tail length %d not below window size %d", errs.ErrMalformedInput, h.TailLength, h.WindowSize)
	case h.EntryCount == 0:
		return fmt.Errorf("%w: non-empty input with empty dictionary", errs.ErrMalformedInput)
	}

	return nil
}

// EntryLength returns the element count of dictionary entry i.
func (h LookupHeader) EntryLength(i uint64) uint64 {
	if h.TailLength > 0 && i == h.EntryCount-1 {
		return h.TailLength
	}

	return h.WindowSize
}

// DictionaryLength returns the total number of elements stored in the dictionary.
//
// The header must be valid and EntryCount must already be bounded by the
// buffer length, so the product cannot overflow.
func (h LookupHeader) DictionaryLength() uint64 {
	if h.EntryCount == 0 {
		return 0
	}

	if h.TailLength > 0 {
		return (h.EntryCount-1)*h.WindowSize + h.TailLength
	}

	return h.EntryCount * h.WindowSize
}

// ParseLookupHeader parses and validates a LookupHeader from the start of data.
//
// Returns:
//   - LookupHeader: Parsed header
//   - error: ErrMalformedInput if data is shorter than LookupHeaderSize or the fields are inconsistent
func ParseLookupHeader(data []byte, engine endian.EndianEngine) (LookupHeader, error) {
	if len(data) < LookupHeaderSize {
		return LookupHeader{}, fmt.Errorf("%w: lookup header needs %d bytes, have %d",
			errs.ErrMalformedInput, LookupHeaderSize, len(data))
	}

	h := LookupHeader{
		WindowSize: engine.Uint64(data[0:8]),
		Phase:      engine.Uint64(data[8:16]),
		EntryCount: engine.Uint64(data[16:24]),
		TailLength: engine.Uint64(data[24:32]),
	}

	if err := h.Validate(); err != nil {
		return LookupHeader{}, err
	}

	return h, nil
}
