package codec

import (
	"fmt"

	"github.com/arloliu/podcodec/errs"
	"github.com/arloliu/podcodec/internal/options"
	"github.com/arloliu/podcodec/parallel"
	"github.com/arloliu/podcodec/section"
)

// ChunkedConfig holds the configuration of a ParallelChunked codec.
type ChunkedConfig struct {
	// chunkSize is the number of elements per chunk, 0 derives it from the executor.
	chunkSize int
	executor  parallel.Executor
}

// ChunkedOption configures a ParallelChunked codec.
type ChunkedOption = options.Option[*ChunkedConfig]

// WithChunkSize fixes the number of elements per chunk.
//
// The last chunk may be shorter. Without this option the chunk size is
// ceil(len / max(1, workers/2)), so the chunk count tracks half the executor's
// worker count.
//
// Returns an option that fails with errs.ErrInvalidChunkSize if n < 1.
func WithChunkSize(n int) ChunkedOption {
	return options.New(func(c *ChunkedConfig) error {
		if n < 1 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidChunkSize, n)
		}
		c.chunkSize = n

		return nil
	})
}

// WithExecutor sets the executor used to compress and decompress chunks.
func WithExecutor(e parallel.Executor) ChunkedOption {
	return options.New(func(c *ChunkedConfig) error {
		if e == nil {
			return fmt.Errorf("%w: executor", errs.ErrNilCodec)
		}
		c.executor = e

		return nil
	})
}

// HybridConfig holds the configuration of a Hybrid codec.
type HybridConfig struct {
	executor parallel.Executor
}

// HybridOption configures a Hybrid codec.
type HybridOption = options.Option[*HybridConfig]

// WithHybridExecutor sets the executor used to run the candidates concurrently.
// parallel.Sequential() runs them one after another on the caller's goroutine.
func WithHybridExecutor(e parallel.Executor) HybridOption {
	return options.New(func(c *HybridConfig) error {
		if e == nil {
			return fmt.Errorf("%w: executor", errs.ErrNilCodec)
		}
		c.executor = e

		return nil
	})
}

// DictionaryConfig holds the configuration of a Dictionary codec.
type DictionaryConfig struct {
	maxWindowSize int
	executor      parallel.Executor
}

// DictionaryOption configures a Dictionary codec.
type DictionaryOption = options.Option[*DictionaryConfig]

// WithMaxWindowSize bounds the window sizes searched by the dictionary codec.
//
// The search cost grows with the square of the bound; 63 is both the default
// and the maximum.
//
// Returns an option that fails with errs.ErrInvalidWindowSize if n is outside [1, 63].
func WithMaxWindowSize(n int) DictionaryOption {
	return options.New(func(c *DictionaryConfig) error {
		if n < 1 || n > section.MaxLookupWindowSize {
			return fmt.Errorf("%w: %d not in [1, %d]", errs.ErrInvalidWindowSize, n, section.MaxLookupWindowSize)
		}
		c.maxWindowSize = n

		return nil
	})
}

// WithDictionaryExecutor sets the executor used for the window size search.
func WithDictionaryExecutor(e parallel.Executor) DictionaryOption {
	return options.New(func(c *DictionaryConfig) error {
		if e == nil {
			return fmt.Errorf("%w: executor", errs.ErrNilCodec)
		}
		c.executor = e

		return nil
	})
}
