package codec

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/podcodec/endian"
	"github.com/arloliu/podcodec/errs"
	"github.com/arloliu/podcodec/format"
	"github.com/arloliu/podcodec/parallel"
	"github.com/arloliu/podcodec/section"
)

func newTestPool(t *testing.T, workers int) *parallel.Pool {
	t.Helper()

	p, err := parallel.NewPool(workers)
	require.NoError(t, err)

	return p
}

// requireTableConsistent checks that the chunk table plus the chunk bytes make up the whole buffer.
func requireTableConsistent(t *testing.T, data []byte) section.ChunkTable {
	t.Helper()

	table, region, err := section.ParseChunkTable(data, endian.NativeEngine())
	require.NoError(t, err)
	require.Equal(t, len(data), int(table.DataSize())+section.ChunkCountSize+table.Len()*section.ChunkEntrySize)
	require.Len(t, region, int(table.DataSize()))

	return table
}

func TestParallelChunked_MillionConstant(t *testing.T) {
	c, err := NewParallelChunked[uint64](NewRunLength[uint64](), WithExecutor(newTestPool(t, 8)))
	require.NoError(t, err)
	require.Equal(t, format.CodecParallelChunked, c.Type())

	src := make([]uint64, 1_000_000)
	for i := range src {
		src[i] = 0x0123456789ABCDEF
	}

	require.Equal(t, 250_000, c.ChunkSize(len(src)))

	data := requireRoundTrip[uint64](t, c, src)
	table := requireTableConsistent(t, data)
	require.Equal(t, 4, table.Len())
	for _, e := range table.Entries {
		require.Equal(t, uint64(8+8), e.Count)
	}
	require.Len(t, data, 8+4*16+4*16)
}

func TestParallelChunked_ChunkSize(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		fixed   int
		n       int
		want    int
	}{
		{"single worker", 1, 0, 100, 100},
		{"two workers", 2, 0, 100, 100},
		{"eight workers", 8, 0, 100, 25},
		{"rounds up", 8, 0, 101, 26},
		{"fixed", 8, 7, 100, 7},
		{"empty", 8, 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := []ChunkedOption{WithExecutor(newTestPool(t, tt.workers))}
			if tt.fixed > 0 {
				opts = append(opts, WithChunkSize(tt.fixed))
			}

			c, err := NewParallelChunked[uint8](NewRaw[uint8](), opts...)
			require.NoError(t, err)
			require.Equal(t, tt.want, c.ChunkSize(tt.n))
		})
	}
}

func TestParallelChunked_FixedChunks(t *testing.T) {
	c, err := NewParallelChunked[uint16](NewRaw[uint16](), WithChunkSize(3), WithExecutor(parallel.Sequential()))
	require.NoError(t, err)

	src := []uint16{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	data := requireRoundTrip[uint16](t, c, src)
	table := requireTableConsistent(t, data)

	require.Equal(t, []section.ChunkEntry{
		{Offset: 0, Count: 6},
		{Offset: 6, Count: 6},
		{Offset: 12, Count: 6},
		{Offset: 18, Count: 2},
	}, table.Entries)
}

func TestParallelChunked_Empty(t *testing.T) {
	c, err := NewParallelChunked[uint32](NewRunLength[uint32](), WithExecutor(newTestPool(t, 4)))
	require.NoError(t, err)

	data := requireRoundTrip[uint32](t, c, nil)
	require.Equal(t, make([]byte, section.ChunkCountSize), data)
}

func TestParallelChunked_ExecutorIndependent(t *testing.T) {
	src := uint32Datasets()["runs"]

	sequential, err := NewParallelChunked[uint32](NewVariableRunLength[uint32](),
		WithChunkSize(64), WithExecutor(parallel.Sequential()))
	require.NoError(t, err)
	concurrent, err := NewParallelChunked[uint32](NewVariableRunLength[uint32](),
		WithChunkSize(64), WithExecutor(newTestPool(t, 8)))
	require.NoError(t, err)

	want := requireRoundTrip[uint32](t, sequential, src)
	for range 5 {
		got := requireRoundTrip[uint32](t, concurrent, src)
		require.Equal(t, want, got)
	}
}

func TestParallelChunked_Nested(t *testing.T) {
	pool := newTestPool(t, 4)

	dict, err := NewDictionary[uint32](WithMaxWindowSize(4), WithDictionaryExecutor(pool))
	require.NoError(t, err)
	hybrid, err := NewHybrid([]Codec[uint32]{
		NewVariableRunLength[uint32](),
		NewRunLength[uint32](),
		dict,
	}, WithHybridExecutor(pool))
	require.NoError(t, err)

	inner, err := NewParallelChunked[uint32](hybrid, WithChunkSize(50), WithExecutor(pool))
	require.NoError(t, err)
	outer, err := NewParallelChunked[uint32](inner, WithExecutor(pool))
	require.NoError(t, err)
	require.Same(t, inner, outer.Inner())

	for name, src := range uint32Datasets() {
		t.Run(name, func(t *testing.T) {
			requireRoundTrip[uint32](t, outer, src)
		})
	}
}

func TestParallelChunked_Malformed(t *testing.T) {
	c, err := NewParallelChunked[uint16](NewRaw[uint16](), WithChunkSize(2), WithExecutor(parallel.Sequential()))
	require.NoError(t, err)

	valid, err := Compress[uint16](c, []uint16{1, 2, 3, 4, 5})
	require.NoError(t, err)

	engine := endian.NativeEngine()

	shifted := append([]byte(nil), valid...)
	engine.PutUint64(shifted[8+16:], 5) // second entry offset

	overCount := append([]byte(nil), valid...)
	engine.PutUint64(overCount[0:8], 100)

	oddChunk := append([]byte(nil), valid...)
	engine.PutUint64(oddChunk[8+8:], 3)  // first entry count
	engine.PutUint64(oddChunk[8+16:], 3) // second entry offset
	engine.PutUint64(oddChunk[8+24:], 5) // second entry count

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"missing count", valid[:4], errs.ErrMalformedInput},
		{"table overruns", overCount, errs.ErrMalformedInput},
		{"truncated data", valid[:len(valid)-1], errs.ErrChunkTableMismatch},
		{"trailing data", append(append([]byte(nil), valid...), 0), errs.ErrChunkTableMismatch},
		{"offset gap", shifted, errs.ErrChunkTableMismatch},
		{"chunk not element aligned", oddChunk, errs.ErrMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompress[uint16](c, tt.data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParallelChunked_HugeRunInChunk(t *testing.T) {
	c, err := NewParallelChunkedDefault[uint64](WithExecutor(parallel.Sequential()))
	require.NoError(t, err)

	engine := endian.NativeEngine()
	chunk := engine.AppendUint64(nil, 1<<59)
	chunk = engine.AppendUint64(chunk, 42)

	data := section.NewChunkTable([]int{len(chunk)}).AppendTo(nil, engine)
	data = append(data, chunk...)

	_, err = Decompress[uint64](c, data)
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestParallelChunked_DefaultExecutor(t *testing.T) {
	c, err := NewParallelChunkedDefault[uint64]()
	require.NoError(t, err)
	require.IsType(t, RunLength[uint64]{}, c.Inner())

	src := make([]uint64, 1_000_000)
	for i := range src {
		src[i] = 0x0123456789ABCDEF
	}

	parts := max(1, runtime.GOMAXPROCS(0)/2)
	require.Equal(t, (len(src)+parts-1)/parts, c.ChunkSize(len(src)))

	data := requireRoundTrip[uint64](t, c, src)
	table := requireTableConsistent(t, data)
	require.Equal(t, parts, table.Len())
	for _, e := range table.Entries {
		require.Equal(t, uint64(8+8), e.Count)
	}
}

func TestParallelChunked_InnerError(t *testing.T) {
	c, err := NewParallelChunked[uint8](failingCodec[uint8]{}, WithChunkSize(1), WithExecutor(newTestPool(t, 2)))
	require.NoError(t, err)

	_, err = Compress[uint8](c, []uint8{1, 2, 3})
	require.ErrorIs(t, err, errFailing)
}

func TestNewParallelChunked_Validation(t *testing.T) {
	_, err := NewParallelChunked[uint8](nil)
	require.ErrorIs(t, err, errs.ErrNilCodec)

	for _, n := range []int{0, -5} {
		_, err = NewParallelChunked[uint8](NewRaw[uint8](), WithChunkSize(n))
		require.ErrorIs(t, err, errs.ErrInvalidChunkSize)
	}

	_, err = NewParallelChunked[uint8](NewRaw[uint8](), WithExecutor(nil))
	require.ErrorIs(t, err, errs.ErrNilCodec)
}
