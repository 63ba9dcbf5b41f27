package section

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/endian"
	"github.com/opencomputeproject/ocp-telemetry/errs"
)

const (
	// TimestampMax is the largest value of the 48-bit millisecond counter.
	TimestampMax = 1<<48 - 1

	TimestampStoppedMask  = 0x01 // controller may have stopped counting
	TimestampOriginMask   = 0x0E
	TimestampReservedMask = 0xF0

	// TimestampOriginSetFeatures marks a timestamp initialised by Set Features.
	TimestampOriginSetFeatures = 0x01
)

// Timestamp is the 8-byte NVMe timestamp.
//
//	Bytes | Field
//	------|--------------------------------
//	0-5   | milliseconds (48-bit)
//	6     | attributes (bit 0 stopped, bits 3:1 origin, bits 7:4 reserved)
//	7     | reserved
type Timestamp struct {
	Millis     uint64
	Attributes uint8
}

// NewTimestamp creates a timestamp initialised through Set Features.
func NewTimestamp(millis uint64) Timestamp {
	return Timestamp{
		Millis:     millis & TimestampMax,
		Attributes: TimestampOriginSetFeatures << 1,
	}
}

// Origin returns the timestamp origin field.
func (ts Timestamp) Origin() uint8 {
	return (ts.Attributes & TimestampOriginMask) >> 1
}

// MayHaveStopped reports whether the controller may have paused the counter.
func (ts Timestamp) MayHaveStopped() bool {
	return ts.Attributes&TimestampStoppedMask != 0
}

// Parse parses a timestamp from exactly TimestampSize bytes.
//
// Returns:
//   - error: errs.ErrStructural on a size mismatch, errs.ErrReservedField if
//     attribute bits 7:4 or byte 7 are set
func (ts *Timestamp) Parse(data []byte) error {
	if len(data) != TimestampSize {
		return fmt.Errorf("%w: timestamp is %d bytes, expected %d", errs.ErrStructural, len(data), TimestampSize)
	}

	attr := data[6]
	if attr&TimestampReservedMask != 0 {
		return fmt.Errorf("%w: timestamp attribute bits 7:4 are 0x%x", errs.ErrReservedField, attr>>4)
	}
	if err := encoding.CheckReserved("timestamp byte 7", data[7:8]); err != nil {
		return err
	}

	ts.Millis = endian.Uint48(data[0:6])
	ts.Attributes = attr

	return nil
}

// Put writes the timestamp into dst, which must hold TimestampSize bytes.
func (ts Timestamp) Put(dst []byte) {
	endian.PutUint48(dst[0:6], ts.Millis)
	dst[6] = ts.Attributes
	dst[7] = 0
}

// Bytes serializes the timestamp.
func (ts Timestamp) Bytes() []byte {
	b := make([]byte, TimestampSize)
	ts.Put(b)

	return b
}

func (ts Timestamp) String() string {
	return fmt.Sprintf("%d ms (origin %d, stopped %t)", ts.Millis, ts.Origin(), ts.MayHaveStopped())
}

// ParseTimestamp parses a Timestamp from data.
func ParseTimestamp(data []byte) (Timestamp, error) {
	var ts Timestamp
	if err := ts.Parse(data); err != nil {
		return Timestamp{}, err
	}

	return ts, nil
}
