package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/podcodec/errs"
	"github.com/arloliu/podcodec/format"
	"github.com/arloliu/podcodec/internal/pod"
)

func TestDelta_StoresDifferences(t *testing.T) {
	c := NewDelta[int32]()
	require.Equal(t, format.CodecDelta, c.Type())

	data := requireRoundTrip[int32](t, c, []int32{10, 11, 13, 10})
	require.Equal(t, pod.AsBytes([]int32{10, 1, 2, -3}), data)
}

func TestDelta_WrapsAround(t *testing.T) {
	requireRoundTrip[uint8](t, NewDelta[uint8](), []uint8{250, 5, 255, 0, 128})
	requireRoundTrip[int64](t, NewDelta[int64](), []int64{math.MaxInt64, math.MinInt64, 0, -1, math.MaxInt64})
}

func TestDelta_Empty(t *testing.T) {
	data := requireRoundTrip[uint64](t, NewDelta[uint64](), nil)
	require.Empty(t, data)
}

func TestDelta_NamedIntegerType(t *testing.T) {
	type timestamp int64

	requireRoundTrip[timestamp](t, NewDelta[timestamp](), []timestamp{1700000000, 1700000010, 1700000020})
}

func TestDelta_Malformed(t *testing.T) {
	_, err := Decompress[uint16](NewDelta[uint16](), []byte{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestDelta_FeedsRunLength(t *testing.T) {
	src := make([]uint32, 1000)
	for i := range src {
		src[i] = uint32(1000 + 3*i)
	}

	deltas, err := Compress[uint32](NewDelta[uint32](), src)
	require.NoError(t, err)

	values, err := Decompress[uint32](NewRaw[uint32](), deltas)
	require.NoError(t, err)

	runs, err := Compress[uint32](NewVariableRunLength[uint32](), values)
	require.NoError(t, err)
	// first value, then one run of 999 threes
	require.Len(t, runs, (2+4)+(3+4))
}
