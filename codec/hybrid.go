package codec

import (
	"fmt"

	"github.com/arloliu/podcodec/errs"
	"github.com/arloliu/podcodec/format"
	"github.com/arloliu/podcodec/internal/options"
	"github.com/arloliu/podcodec/internal/pool"
	"github.com/arloliu/podcodec/parallel"
)

// MaxHybridCandidates is the largest number of candidates a Hybrid codec accepts.
const MaxHybridCandidates = 254

// Hybrid compresses with every candidate codec and keeps the smallest output.
//
// Layout:
//
//	+-------------+-----------------------------+
//	| tag (1 byte)| winning candidate's output  |
//	+-------------+-----------------------------+
//
// The tag is the winner's position in the candidate list; among equally small
// outputs the lowest position wins, so the output is deterministic. The
// decoder must be built with the same candidates in the same order.
type Hybrid[T any] struct {
	candidates []Codec[T]
	executor   parallel.Executor
}

var _ Codec[int64] = (*Hybrid[int64])(nil)

// NewHybrid creates a hybrid codec over candidates.
//
// Parameters:
//   - candidates: Between 1 and MaxHybridCandidates codecs, in tag order
//   - opts: WithHybridExecutor
//
// Returns:
//   - *Hybrid[T]: New codec
//   - error: ErrNoCandidates, ErrTooManyCandidates, ErrNilCodec or option validation error
func NewHybrid[T any](candidates []Codec[T], opts ...HybridOption) (*Hybrid[T], error) {
	switch {
	case len(candidates) == 0:
		return nil, errs.ErrNoCandidates
	case len(candidates) > MaxHybridCandidates:
		return nil, fmt.Errorf("%w: got %d", errs.ErrTooManyCandidates, len(candidates))
	}

	for i, c := range candidates {
		if c == nil {
			return nil, fmt.Errorf("%w: hybrid candidate %d", errs.ErrNilCodec, i)
		}
	}

	cfg := &HybridConfig{executor: parallel.Default()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Hybrid[T]{
		candidates: append([]Codec[T](nil), candidates...),
		executor:   cfg.executor,
	}, nil
}

// Type returns format.CodecHybrid.
func (h *Hybrid[T]) Type() format.CodecType {
	return format.CodecHybrid
}

// Candidates returns the candidate codecs in tag order.
func (h *Hybrid[T]) Candidates() []Codec[T] {
	return h.candidates
}

// AppendCompressed runs every candidate on src and appends the tagged smallest output to dst.
func (h *Hybrid[T]) AppendCompressed(dst []byte, src []T) ([]byte, error) {
	outputs := make([]*pool.ByteBuffer, len(h.candidates))
	defer func() {
		for _, bb := range outputs {
			pool.PutChunkBuffer(bb)
		}
	}()

	err := h.executor.Run(len(h.candidates), func(i int) error {
		bb := pool.GetChunkBuffer()
		outputs[i] = bb

		out, err := h.candidates[i].AppendCompressed(bb.B, src)
		bb.B = out
		if err != nil {
			return fmt.Errorf("hybrid candidate %d (%s): %w", i, h.candidates[i].Type(), err)
		}

		return nil
	})
	if err != nil {
		return dst, err
	}

	winner := 0
	for i := 1; i < len(outputs); i++ {
		if outputs[i].Len() < outputs[winner].Len() {
			winner = i
		}
	}

	dst = append(dst, byte(winner))

	return append(dst, outputs[winner].Bytes()...), nil
}

// AppendDecompressed dispatches data to the candidate named by its tag byte.
//
// Returns errs.ErrMalformedInput for an empty buffer and errs.ErrInvalidCodecIndex
// if the tag does not name a candidate.
func (h *Hybrid[T]) AppendDecompressed(dst []T, data []byte) ([]T, error) {
	if len(data) == 0 {
		return dst, fmt.Errorf("%w: missing hybrid tag", errs.ErrMalformedInput)
	}

	tag := int(data[0])
	if tag >= len(h.candidates) {
		return dst, fmt.Errorf("%w: tag %d with %d candidates", errs.ErrInvalidCodecIndex, tag, len(h.candidates))
	}

	return h.candidates[tag].AppendDecompressed(dst, data[1:])
}
