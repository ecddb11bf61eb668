package codec

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/podcodec/errs"
	"github.com/arloliu/podcodec/format"
	"github.com/arloliu/podcodec/parallel"
)

type point struct {
	X, Y int32
}

type datasets[T any] map[string][]T

func uint32Datasets() datasets[uint32] {
	const n = 2000
	rng := rand.New(rand.NewSource(7))

	sequential := make([]uint32, n)
	constant := make([]uint32, n)
	modulo := make([]uint32, n)
	random := make([]uint32, n)
	runs := make([]uint32, n)
	for i := range n {
		sequential[i] = uint32(i)
		constant[i] = 42
		modulo[i] = uint32(i % 7)
		random[i] = rng.Uint32()
		runs[i] = uint32(i / 100)
	}

	return datasets[uint32]{
		"empty":      {},
		"single":     {math.MaxUint32},
		"sequential": sequential,
		"constant":   constant,
		"modulo":     modulo,
		"random":     random,
		"runs":       runs,
	}
}

func float64Datasets() datasets[float64] {
	sine := make([]float64, 1000)
	for i := range sine {
		sine[i] = math.Round(math.Sin(float64(i)/50)*100) / 100
	}

	return datasets[float64]{
		"sine": sine,
		"nan":  {math.NaN(), math.NaN(), math.Inf(1), -0.0, 0.0, 1.5},
	}
}

func pointDatasets() datasets[point] {
	pts := make([]point, 500)
	for i := range pts {
		pts[i] = point{X: int32(i % 5), Y: int32(i / 50)}
	}

	return datasets[point]{"grid": pts, "empty": nil}
}

// testCodecs returns every codec shape over T, configured to run deterministically.
func testCodecs[T any](t *testing.T) []Codec[T] {
	t.Helper()

	dict, err := NewDictionary[T](WithMaxWindowSize(8), WithDictionaryExecutor(parallel.Sequential()))
	require.NoError(t, err)

	zstdStage, err := NewStagedWith[T](NewVariableRunLength[T](), format.CompressionZstd)
	require.NoError(t, err)

	lz4Stage, err := NewStagedWith[T](NewRaw[T](), format.CompressionLZ4)
	require.NoError(t, err)

	hybrid, err := NewHybrid([]Codec[T]{
		NewRaw[T](),
		NewRunLength[T](),
		NewVariableRunLength[T](),
		dict,
		zstdStage,
	}, WithHybridExecutor(parallel.Sequential()))
	require.NoError(t, err)

	pool, err := parallel.NewPool(4)
	require.NoError(t, err)

	chunked, err := NewParallelChunked[T](NewRunLength[T](), WithChunkSize(37), WithExecutor(pool))
	require.NoError(t, err)

	nested, err := NewParallelChunked[T](hybrid, WithExecutor(pool))
	require.NoError(t, err)

	return []Codec[T]{
		NewRaw[T](),
		NewRunLength[T](),
		NewVariableRunLength[T](),
		dict,
		zstdStage,
		lz4Stage,
		hybrid,
		chunked,
		nested,
	}
}

func requireRoundTrip[T any](t *testing.T, c Codec[T], src []T) []byte {
	t.Helper()

	data, err := Compress[T](c, src)
	require.NoError(t, err)

	out, err := Decompress[T](c, data)
	require.NoError(t, err)

	if len(src) == 0 {
		require.Empty(t, out)
	} else {
		require.Equal(t, src, out)
	}

	return data
}

func runRoundTrips[T any](t *testing.T, codecs []Codec[T], sets datasets[T]) {
	t.Helper()

	for _, c := range codecs {
		for name, src := range sets {
			t.Run(c.Type().String()+"/"+name, func(t *testing.T) {
				requireRoundTrip(t, c, src)
			})
		}
	}
}

func TestCodecs_RoundTrip_Uint32(t *testing.T) {
	codecs := append(testCodecs[uint32](t), NewDelta[uint32]())
	runRoundTrips(t, codecs, uint32Datasets())
}

func TestCodecs_RoundTrip_Float64(t *testing.T) {
	codecs := testCodecs[float64](t)
	for _, c := range codecs {
		for name, src := range float64Datasets() {
			t.Run(c.Type().String()+"/"+name, func(t *testing.T) {
				data, err := Compress[float64](c, src)
				require.NoError(t, err)

				out, err := Decompress[float64](c, data)
				require.NoError(t, err)
				require.Len(t, out, len(src))
				for i := range src {
					// NaN != NaN, so compare bit patterns.
					require.Equal(t, math.Float64bits(src[i]), math.Float64bits(out[i]), "index %d", i)
				}
			})
		}
	}
}

func TestCodecs_RoundTrip_Struct(t *testing.T) {
	runRoundTrips(t, testCodecs[point](t), pointDatasets())
}

func TestCodecs_RoundTrip_Bytes(t *testing.T) {
	src := []byte("aaaabbbcccccccccccccdabcabcabcabc")
	runRoundTrips(t, testCodecs[byte](t), datasets[byte]{"text": src})
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, c := range testCodecs[uint64](t) {
		t.Run(c.Type().String(), func(t *testing.T) {
			data, err := Compress[uint64](c, nil)
			require.NoError(t, err)

			out, err := Decompress[uint64](c, data)
			require.NoError(t, err)
			require.Empty(t, out)
		})
	}
}

func TestCodecs_AppendKeepsPrefix(t *testing.T) {
	src := []uint32{5, 5, 5, 6, 7, 7}

	for _, c := range testCodecs[uint32](t) {
		t.Run(c.Type().String(), func(t *testing.T) {
			prefix := []byte{0xAA, 0xBB}
			data, err := c.AppendCompressed(append([]byte(nil), prefix...), src)
			require.NoError(t, err)
			require.Equal(t, prefix, data[:2])

			out, err := c.AppendDecompressed([]uint32{1, 2}, data[2:])
			require.NoError(t, err)
			require.Equal(t, []uint32{1, 2, 5, 5, 5, 6, 7, 7}, out)
		})
	}
}

func TestCodecs_DoNotModifyInput(t *testing.T) {
	src := uint32Datasets()["modulo"]
	orig := append([]uint32(nil), src...)

	for _, c := range testCodecs[uint32](t) {
		_, err := Compress[uint32](c, src)
		require.NoError(t, err)
		require.Equal(t, orig, src)
	}
}

func TestCodecs_UnsupportedElement(t *testing.T) {
	type withPointer struct {
		ID   int
		Name *string
	}

	_, err := Compress[string](NewRunLength[string](), []string{"a"})
	require.ErrorIs(t, err, errs.ErrUnsupportedElement)

	_, err = Compress[*int](NewRaw[*int](), nil)
	require.ErrorIs(t, err, errs.ErrUnsupportedElement)

	_, err = Compress[withPointer](NewVariableRunLength[withPointer](), []withPointer{{ID: 1}})
	require.ErrorIs(t, err, errs.ErrUnsupportedElement)

	_, err = Decompress[[]byte](NewRaw[[]byte](), []byte{1})
	require.ErrorIs(t, err, errs.ErrUnsupportedElement)

	dict, err := NewDictionary[struct{}]()
	require.NoError(t, err)
	_, err = Compress[struct{}](dict, []struct{}{{}})
	require.ErrorIs(t, err, errs.ErrUnsupportedElement)
}

// failingCodec always fails; used to check error propagation through structural codecs.
type failingCodec[T any] struct{}

var errFailing = errors.New("failing codec")

func (failingCodec[T]) Type() format.CodecType { return format.CodecRaw }

func (failingCodec[T]) AppendCompressed(dst []byte, _ []T) ([]byte, error) {
	return dst, errFailing
}

func (failingCodec[T]) AppendDecompressed(dst []T, _ []byte) ([]T, error) {
	return dst, errFailing
}

// lossyCodec drops the last element on decode.
type lossyCodec[T any] struct {
	Raw[T]
}

func (c lossyCodec[T]) AppendDecompressed(dst []T, data []byte) ([]T, error) {
	out, err := c.Raw.AppendDecompressed(dst, data)
	if err != nil || len(out) == 0 {
		return out, err
	}

	return out[:len(out)-1], nil
}
