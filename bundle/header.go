package bundle

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/endian"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
)

const (
	// HeaderSize is the size of the bundle header in bytes.
	HeaderSize = 48
	// Version is the bundle format version.
	Version = 1
)

// Magic identifies a bundle file.
var Magic = [8]byte{'O', 'C', 'P', 'T', 'B', 'N', 'D', 'L'}

// Header is the fixed bundle header.
type Header struct {
	Version         uint8
	Compression     format.CompressionType
	TelemetryLength uint32
	StringsLength   uint32
	PayloadLength   uint32
	TelemetrySum    uint64
	StringsSum      uint64
	PayloadSum      uint64
}

// Parse parses the header from the first HeaderSize bytes of data.
//
// Returns:
//   - error: errs.ErrInvalidHeaderSize for a short buffer, errs.ErrInvalidBundle
//     for a wrong magic, version or reserved bytes
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: bundle is %d bytes, header needs %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}
	if [8]byte(data[0:8]) != Magic {
		return fmt.Errorf("%w: magic %q", errs.ErrInvalidBundle, data[0:8])
	}
	if data[8] != Version {
		return fmt.Errorf("%w: version %d", errs.ErrInvalidBundle, data[8])
	}
	if !encoding.IsZero(data[10:12]) {
		return fmt.Errorf("%w: reserved bytes 10-11 are not zero", errs.ErrInvalidBundle)
	}

	engine := endian.GetLittleEndianEngine()
	h.Version = data[8]
	h.Compression = format.CompressionType(data[9])
	h.TelemetryLength = engine.Uint32(data[12:16])
	h.StringsLength = engine.Uint32(data[16:20])
	h.PayloadLength = engine.Uint32(data[20:24])
	h.TelemetrySum = engine.Uint64(data[24:32])
	h.StringsSum = engine.Uint64(data[32:40])
	h.PayloadSum = engine.Uint64(data[40:48])

	return nil
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	w := encoding.NewWriter()
	w.Bytes(Magic[:])
	w.Uint8(h.Version)
	w.Uint8(uint8(h.Compression))
	w.Zeros(2)
	w.Uint32(h.TelemetryLength)
	w.Uint32(h.StringsLength)
	w.Uint32(h.PayloadLength)
	w.Uint64(h.TelemetrySum)
	w.Uint64(h.StringsSum)
	w.Uint64(h.PayloadSum)

	return w.Finish()
}
