package codec

import (
	"fmt"

	"github.com/arloliu/podcodec/encoding"
	"github.com/arloliu/podcodec/endian"
	"github.com/arloliu/podcodec/errs"
	"github.com/arloliu/podcodec/format"
	"github.com/arloliu/podcodec/internal/options"
	"github.com/arloliu/podcodec/internal/pod"
	"github.com/arloliu/podcodec/internal/window"
	"github.com/arloliu/podcodec/parallel"
	"github.com/arloliu/podcodec/section"
)

// Dictionary replaces repeating windows of elements with dictionary indices.
//
// Compression searches every window size w in [1, max] and every phase
// p in [0, w). For each pair the input after the first p elements is cut into
// consecutive windows of w elements (the last one may be shorter) and the
// occurrences of each distinct window are counted. The pair whose most
// frequent window occurs most often wins; ties go to the smallest window size,
// then the smallest phase.
//
// Layout:
//
//	+----------------------+  section.LookupHeader (32 bytes)
//	| window size          |
//	| phase                |
//	| entry count          |
//	| tail length          |
//	+----------------------+
//	| dictionary entries   |  entry bytes in index order, the short tail window last
//	+----------------------+
//	| index mode (8 byte)  |  encoding.CountModeOf(entry count)
//	+----------------------+
//	| phase elements       |  the leading p elements verbatim
//	+----------------------+
//	| indices              |  one per window, fixed width from the index mode
//	+----------------------+
//
// Indices are assigned in first-occurrence order, so the output is a pure
// function of the input. Empty input produces a header of zeros only.
type Dictionary[T any] struct {
	maxWindowSize int
	executor      parallel.Executor
}

var _ Codec[int64] = (*Dictionary[int64])(nil)

// NewDictionary creates a dictionary codec.
//
// Parameters:
//   - opts: WithMaxWindowSize and WithDictionaryExecutor
//
// Returns:
//   - *Dictionary[T]: New codec
//   - error: Option validation error
func NewDictionary[T any](opts ...DictionaryOption) (*Dictionary[T], error) {
	cfg := &DictionaryConfig{
		maxWindowSize: section.MaxLookupWindowSize,
		executor:      parallel.Default(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Dictionary[T]{maxWindowSize: cfg.maxWindowSize, executor: cfg.executor}, nil
}

// Type returns format.CodecDictionary.
func (d *Dictionary[T]) Type() format.CodecType {
	return format.CodecDictionary
}

// windowScore is the best phase found for one window size.
type windowScore struct {
	phase    int
	maxCount int
}

// AppendCompressed appends the dictionary-coded form of src to dst.
func (d *Dictionary[T]) AppendCompressed(dst []byte, src []T) ([]byte, error) {
	size, err := elementSize[T]()
	if err != nil {
		return dst, err
	}

	engine := endian.NativeEngine()
	if len(src) == 0 {
		return section.LookupHeader{}.AppendTo(dst, engine), nil
	}

	b := pod.AsBytes(src)
	w, p, err := d.search(b, size, len(src))
	if err != nil {
		return dst, err
	}

	return appendDictionary(dst, b, size, w, p), nil
}

// appendDictionary encodes the n = len(b)/size elements in b with window size w
// and phase p, which must satisfy 1 <= w <= 63 and p < min(w, n).
func appendDictionary(dst, b []byte, size, w, p int) []byte {
	engine := endian.NativeEngine()
	n := len(b) / size

	windowed := n - p
	windowCount := (windowed + w - 1) / w
	table := window.NewTable(b, windowCount)
	indices := make([]int, 0, windowCount)
	for off := p; off < n; off += w {
		length := min(w, n-off)
		idx, _ := table.Track(off*size, length*size)
		indices = append(indices, idx)
	}

	header := section.LookupHeader{
		WindowSize: uint64(w),
		Phase:      uint64(p),
		EntryCount: uint64(table.Len()),
		TailLength: uint64(windowed % w),
	}
	mode := encoding.CountModeOf(header.EntryCount)

	dst = header.AppendTo(dst, engine)
	for i := range table.Len() {
		dst = append(dst, table.Window(i)...)
	}
	dst = engine.AppendUint64(dst, uint64(mode))
	dst = append(dst, b[:p*size]...)
	for _, idx := range indices {
		dst = encoding.AppendCountWithMode(dst, uint64(idx), mode) //nolint: gosec
	}

	return dst
}

// search returns the winning window size and phase for b, which holds n elements.
//
// Window sizes are scored in parallel; each task owns its own table and keeps
// the lowest phase among equal scores. The reduction then keeps the lowest
// window size among equal scores.
func (d *Dictionary[T]) search(b []byte, size, n int) (int, int, error) {
	maxWindow := min(d.maxWindowSize, n)
	scores := make([]windowScore, maxWindow)

	err := d.executor.Run(maxWindow, func(i int) error {
		w := i + 1
		table := window.NewTable(b, 0)
		best := windowScore{}
		for p := range w {
			table.Reset(b)
			for off := p; off < n; off += w {
				table.Track(off*size, min(w, n-off)*size)
			}
			if table.MaxCount() > best.maxCount {
				best = windowScore{phase: p, maxCount: table.MaxCount()}
			}
		}
		scores[i] = best

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	bestWindow := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].maxCount > scores[bestWindow].maxCount {
			bestWindow = i
		}
	}

	return bestWindow + 1, scores[bestWindow].phase, nil
}

// AppendDecompressed rebuilds the elements from the dictionary and index stream and appends them to dst.
func (d *Dictionary[T]) AppendDecompressed(dst []T, data []byte) ([]T, error) {
	size, err := elementSize[T]()
	if err != nil {
		return dst, err
	}

	engine := endian.NativeEngine()
	header, err := section.ParseLookupHeader(data, engine)
	if err != nil {
		return dst, err
	}

	rest := data[section.LookupHeaderSize:]
	if header.WindowSize == 0 {
		if len(rest) != 0 {
			return dst, fmt.Errorf("%w: %d bytes after empty dictionary header", errs.ErrMalformedInput, len(rest))
		}

		return dst, nil
	}

	// Every entry holds at least one element; bound the count before multiplying.
	if header.EntryCount > uint64(len(rest)/size) {
		return dst, fmt.Errorf("%w: %d dictionary entries do not fit in %d bytes",
			errs.ErrMalformedInput, header.EntryCount, len(rest))
	}

	dictSize := int(header.DictionaryLength()) * size //nolint: gosec
	phaseSize := int(header.Phase) * size             //nolint: gosec
	if len(rest) < dictSize+section.LookupModeSize+phaseSize {
		return dst, fmt.Errorf("%w: dictionary body needs %d bytes, have %d",
			errs.ErrMalformedInput, dictSize+section.LookupModeSize+phaseSize, len(rest))
	}

	dict := rest[:dictSize]
	rawMode := engine.Uint64(rest[dictSize:])
	if rawMode > uint64(encoding.CountMode64) {
		return dst, fmt.Errorf("%w: index mode %d", errs.ErrInvalidCountMode, rawMode)
	}
	mode := encoding.CountMode(rawMode)

	prefix := rest[dictSize+section.LookupModeSize : dictSize+section.LookupModeSize+phaseSize]
	stream := rest[dictSize+section.LookupModeSize+phaseSize:]

	width := mode.Width()
	if len(stream)%width != 0 {
		return dst, fmt.Errorf("%w: index stream of %d bytes is not a multiple of %d",
			errs.ErrMalformedInput, len(stream), width)
	}

	dst = pod.AppendBytes(dst, prefix)

	entryStride := int(header.WindowSize) * size //nolint: gosec
	for pos := 0; pos < len(stream); pos += width {
		idx, _, err := encoding.ReadCountWithMode(stream[pos:], mode)
		if err != nil {
			return dst, err
		}
		if idx >= header.EntryCount {
			return dst, fmt.Errorf("%w: dictionary index %d out of %d entries",
				errs.ErrMalformedInput, idx, header.EntryCount)
		}

		start := int(idx) * entryStride
		length := int(header.EntryLength(idx)) * size
		dst = pod.AppendBytes(dst, dict[start:start+length])
	}

	return dst, nil
}
