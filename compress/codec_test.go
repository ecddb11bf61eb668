package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/podcodec/errs"
	"github.com/arloliu/podcodec/format"
)

func testPayloads() map[string][]byte {
	rng := rand.New(rand.NewSource(42))
	random := make([]byte, 4096)
	_, _ = rng.Read(random)

	return map[string][]byte{
		"single":     {0x7f},
		"text":       []byte("the quick brown fox jumps over the lazy dog"),
		"zeros":      make([]byte, 64*1024),
		"repetitive": bytes.Repeat([]byte{1, 2, 3, 4, 5, 6, 7, 8}, 10000),
		"random":     random,
	}
}

func allCodecs(t *testing.T) []Codec {
	t.Helper()

	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	codecs := make([]Codec, 0, len(types))
	for _, ct := range types {
		c, err := CreateCodec(ct)
		require.NoError(t, err)
		require.Equal(t, ct, c.Type())
		codecs = append(codecs, c)
	}

	return codecs
}

func TestCodec_RoundTrip(t *testing.T) {
	for _, c := range allCodecs(t) {
		for name, payload := range testPayloads() {
			t.Run(c.Type().String()+"/"+name, func(t *testing.T) {
				compressed, err := c.Compress(payload)
				require.NoError(t, err)

				decompressed, err := c.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, payload, decompressed)
			})
		}
	}
}

func TestCodec_EmptyData(t *testing.T) {
	for _, c := range allCodecs(t) {
		t.Run(c.Type().String(), func(t *testing.T) {
			compressed, err := c.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, compressed)

			decompressed, err := c.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestCodec_ShrinksRepetitiveData(t *testing.T) {
	payload := testPayloads()["zeros"]

	for _, c := range allCodecs(t) {
		if c.Type() == format.CompressionNone {
			continue
		}

		t.Run(c.Type().String(), func(t *testing.T) {
			compressed, err := c.Compress(payload)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(payload)/10)
		})
	}
}

func TestCreateCodec_Unsupported(t *testing.T) {
	_, err := CreateCodec(format.CompressionType(0x7f))
	require.Error(t, err)
}

func TestNoOpCompressor_SharesMemory(t *testing.T) {
	data := []byte{1, 2, 3}
	c := NewNoOpCompressor()

	out, err := c.Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

func TestLZ4Compressor_StoresIncompressible(t *testing.T) {
	c := NewLZ4Compressor()
	payload := testPayloads()["random"]

	compressed, err := c.Compress(payload)
	require.NoError(t, err)
	// count field (3 bytes for 4096) + kind byte + payload
	require.Len(t, compressed, 3+1+len(payload))
	require.Equal(t, lz4KindStored, compressed[3])

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)
}

func TestLZ4Compressor_Malformed(t *testing.T) {
	c := NewLZ4Compressor()

	// 4000 bytes: the size prefix is a 3 byte count field
	compressed, err := c.Compress(bytes.Repeat([]byte{1, 2, 3, 4}, 1000))
	require.NoError(t, err)
	require.Equal(t, lz4KindBlock, compressed[3])

	tests := []struct {
		name string
		data []byte
	}{
		{"bad count mode", []byte{9, 1, 2}},
		{"missing kind", compressed[:3]},
		{"unknown kind", append(append([]byte(nil), compressed[:3]...), 7, 0)},
		{"stored length mismatch", append(append([]byte(nil), compressed[:3]...), lz4KindStored, 1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decompress(tt.data)
			require.Error(t, err)
		})
	}

	_, err = c.Decompress(compressed[:3])
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestZstdCompressor_Corrupted(t *testing.T) {
	_, err := NewZstdCompressor().Decompress([]byte{0xde, 0xad, 0xbe, 0xef})
	require.Error(t, err)
}

func TestS2Compressor_Corrupted(t *testing.T) {
	_, err := NewS2Compressor().Decompress([]byte{0xff, 0xff, 0xff, 0xff, 0xff})
	require.Error(t, err)
}

func TestCodec_ConcurrentUse(t *testing.T) {
	payload := testPayloads()["repetitive"]

	for _, c := range allCodecs(t) {
		t.Run(c.Type().String(), func(t *testing.T) {
			done := make(chan error, 8)
			for range 8 {
				go func() {
					compressed, err := c.Compress(payload)
					if err != nil {
						done <- err
						return
					}
					out, err := c.Decompress(compressed)
					if err == nil && !bytes.Equal(out, payload) {
						err = errs.ErrRoundTripMismatch
					}
					done <- err
				}()
			}

			for range 8 {
				require.NoError(t, <-done)
			}
		})
	}
}

func TestGetCodec(t *testing.T) {
	c, err := GetCodec(format.CompressionS2)
	require.NoError(t, err)
	require.Equal(t, format.CompressionS2, c.Type())

	_, err = GetCodec(format.CompressionType(0))
	require.Error(t, err)
}
