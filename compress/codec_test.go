package compress

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/stretchr/testify/require"
)

// logLike mimics a telemetry log: short random runs separated by long
// zero-filled FIFO tails.
func logLike(size int) []byte {
	r := rand.New(rand.NewPCG(1, 2)) //nolint:gosec
	b := make([]byte, size)
	for off := 0; off < size; off += 1024 {
		for i := off; i < off+128 && i < size; i++ {
			b[i] = byte(r.Uint32())
		}
	}

	return b
}

func allTypes() []format.CompressionType {
	return []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"log":   logLike(64 * 1024),
		"small": []byte("OCP telemetry"),
		"zeros": make([]byte, 16384),
	}

	for _, ct := range allTypes() {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, data := range inputs {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				packed, err := codec.Compress(data)
				if ct == format.CompressionLZ4 && name == "small" && err != nil {
					require.ErrorIs(t, err, ErrIncompressible)
					return
				}
				require.NoError(t, err)

				out, err := codec.Decompress(packed)
				require.NoError(t, err)
				require.True(t, bytes.Equal(data, out))
			})
		}
	}
}

func TestCodec_Shrinks(t *testing.T) {
	data := logLike(64 * 1024)
	for _, ct := range allTypes()[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		packed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(packed), len(data)/2, ct.String())
	}
}

func TestCodec_Empty(t *testing.T) {
	for _, ct := range allTypes() {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		packed, err := codec.Compress(nil)
		require.NoError(t, err)
		out, err := codec.Decompress(packed)
		require.NoError(t, err)
		require.Empty(t, out)
	}
}

func TestLZ4_Incompressible(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4)) //nolint:gosec
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(r.Uint32())
	}

	_, err := NewLZ4Compressor().Compress(data)
	require.ErrorIs(t, err, ErrIncompressible)
}

func TestCodec_Corrupt(t *testing.T) {
	garbage := []byte{0xFF, 0xFE, 0xFD, 0xFC, 0xFB, 0xFA, 0xF9, 0xF8}
	for _, ct := range allTypes()[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, ct.String())
	}
}

func TestDecompressSize(t *testing.T) {
	data := logLike(64 * 1024)
	for _, ct := range allTypes() {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)
			packed, err := codec.Compress(data)
			require.NoError(t, err)

			out, err := DecompressSize(codec, packed, len(data))
			require.NoError(t, err)
			require.Equal(t, data, out)

			_, err = DecompressSize(codec, packed, len(data)-1)
			require.Error(t, err)

			_, err = DecompressSize(codec, packed, len(data)+1)
			require.ErrorIs(t, err, ErrSizeMismatch)

			_, err = DecompressSize(codec, packed, MaxDecompressedSize+1)
			require.ErrorIs(t, err, ErrSizeMismatch)
		})
	}
}

func TestDecompressSize_Empty(t *testing.T) {
	for _, ct := range allTypes() {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		out, err := DecompressSize(codec, nil, 0)
		require.NoError(t, err, ct.String())
		require.Empty(t, out)

		_, err = DecompressSize(codec, nil, 16)
		require.ErrorIs(t, err, ErrSizeMismatch, ct.String())
	}
}

func TestGetCodec_Unsupported(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x7F))
	require.ErrorIs(t, err, errs.ErrUnsupportedCodec)
}

func BenchmarkCodec_Compress(b *testing.B) {
	data := logLike(256 * 1024)
	for _, ct := range allTypes() {
		codec, _ := GetCodec(ct)
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Compress(data)
			}
		})
	}
}

func BenchmarkCodec_Decompress(b *testing.B) {
	data := logLike(256 * 1024)
	for _, ct := range allTypes() {
		codec, _ := GetCodec(ct)
		packed, _ := codec.Compress(data)
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Decompress(packed)
			}
		})
	}
}
