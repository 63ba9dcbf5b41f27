package compress

import (
	"errors"
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
)

// ErrIncompressible is returned by codecs that cannot represent data that
// does not compress. Callers store such data uncompressed.
var ErrIncompressible = errors.New("data is incompressible")

// ErrSizeMismatch is returned when a payload does not decompress to the
// expected size.
var ErrSizeMismatch = errors.New("decompressed size mismatch")

// MaxDecompressedSize bounds the output of any single decompression.
const MaxDecompressedSize = 128 * 1024 * 1024

// Compressor compresses a payload.
//
// The returned slice is owned by the caller. The input is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// SizedDecompressor is implemented by codecs that can decode straight into
// a buffer of a known decompressed size.
type SizedDecompressor interface {
	DecompressSize(data []byte, size int) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in codec for compressionType.
//
// Returns:
//   - Codec: shared codec instance
//   - error: errs.ErrUnsupportedCodec for an unknown type
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCodec, compressionType)
}

// DecompressSize decompresses data that must expand to exactly size bytes.
//
// Codecs implementing SizedDecompressor allocate the output once. Other
// codecs decompress normally and the result length is checked.
//
// Returns:
//   - []byte: the decompressed payload, len(result) == size
//   - error: ErrSizeMismatch when size is out of range or does not match
func DecompressSize(d Decompressor, data []byte, size int) ([]byte, error) {
	if size < 0 || size > MaxDecompressedSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrSizeMismatch, size, MaxDecompressedSize)
	}
	if sd, ok := d.(SizedDecompressor); ok {
		return sd.DecompressSize(data, size)
	}

	out, err := d.Decompress(data)
	if err != nil {
		return nil, err
	}
	if len(out) != size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(out), size)
	}

	return out, nil
}
