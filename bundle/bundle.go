package bundle

import (
	"errors"
	"fmt"
	"math"

	"github.com/opencomputeproject/ocp-telemetry/compress"
	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/internal/hash"
	"github.com/opencomputeproject/ocp-telemetry/internal/options"
)

// Bundle is an unpacked bundle.
type Bundle struct {
	Header    Header
	Telemetry []byte
	Strings   []byte
}

type packConfig struct {
	compression format.CompressionType
}

// Option configures Pack.
type Option = options.Option[*packConfig]

// WithCompression selects the payload codec. The default is Zstd.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *packConfig) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		c.compression = ct

		return nil
	})
}

// Pack builds a bundle from a telemetry log and its strings log. A payload
// that the selected codec cannot shrink is stored uncompressed and the
// header records CompressionNone.
//
// Returns:
//   - []byte: the bundle
//   - error: errs.ErrUnsupportedCodec for an unknown codec,
//     errs.ErrInvalidBundle when a log does not fit the 32-bit length fields
func Pack(tel, strs []byte, opts ...Option) ([]byte, error) {
	cfg := &packConfig{compression: format.CompressionZstd}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if uint64(len(tel))+uint64(len(strs)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: logs of %d and %d bytes exceed the bundle limit", errs.ErrInvalidBundle, len(tel), len(strs))
	}

	w := encoding.NewLogWriter()
	defer w.Release()
	w.Bytes(tel)
	w.Bytes(strs)
	payload := w.Finish()

	ct := cfg.compression
	packed, err := compressPayload(ct, payload)
	if err != nil {
		return nil, err
	}
	if ct != format.CompressionNone && len(packed) >= len(payload) {
		ct, packed = format.CompressionNone, payload
	}

	hdr := Header{
		Version:         Version,
		Compression:     ct,
		TelemetryLength: uint32(len(tel)),    //nolint:gosec
		StringsLength:   uint32(len(strs)),   //nolint:gosec
		PayloadLength:   uint32(len(packed)), //nolint:gosec
		TelemetrySum:    hash.Sum(tel),
		StringsSum:      hash.Sum(strs),
		PayloadSum:      hash.Sum(packed),
	}

	out := make([]byte, 0, HeaderSize+len(packed))
	out = append(out, hdr.Bytes()...)
	out = append(out, packed...)

	return out, nil
}

func compressPayload(ct format.CompressionType, payload []byte) ([]byte, error) {
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	packed, err := codec.Compress(payload)
	if errors.Is(err, compress.ErrIncompressible) {
		return payload, nil
	}
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	return packed, nil
}

// Unpack verifies a bundle and returns its logs.
//
// Returns:
//   - *Bundle: the header and both logs
//   - error: errs.ErrInvalidHeaderSize, errs.ErrInvalidBundle,
//     errs.ErrUnsupportedCodec or errs.ErrChecksumMismatch
func Unpack(data []byte) (*Bundle, error) {
	b := &Bundle{}
	if err := b.Header.Parse(data); err != nil {
		return nil, err
	}
	h := &b.Header

	packed := data[HeaderSize:]
	if uint64(len(packed)) != uint64(h.PayloadLength) {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", errs.ErrInvalidBundle, len(packed), h.PayloadLength)
	}
	if sum := hash.Sum(packed); sum != h.PayloadSum {
		return nil, fmt.Errorf("%w: payload xxhash 0x%016x, header says 0x%016x", errs.ErrChecksumMismatch, sum, h.PayloadSum)
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, err
	}
	want := uint64(h.TelemetryLength) + uint64(h.StringsLength)
	if want > compress.MaxDecompressedSize {
		return nil, fmt.Errorf("%w: logs total %d bytes, limit is %d", errs.ErrInvalidBundle, want, compress.MaxDecompressedSize)
	}
	payload, err := compress.DecompressSize(codec, packed, int(want)) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidBundle, err)
	}

	b.Telemetry = payload[:h.TelemetryLength:h.TelemetryLength]
	b.Strings = payload[h.TelemetryLength:]
	if sum := hash.Sum(b.Telemetry); sum != h.TelemetrySum {
		return nil, fmt.Errorf("%w: telemetry log xxhash 0x%016x, header says 0x%016x", errs.ErrChecksumMismatch, sum, h.TelemetrySum)
	}
	if sum := hash.Sum(b.Strings); sum != h.StringsSum {
		return nil, fmt.Errorf("%w: strings log xxhash 0x%016x, header says 0x%016x", errs.ErrChecksumMismatch, sum, h.StringsSum)
	}

	return b, nil
}
