package section

import (
	"fmt"
	"math"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/endian"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
)

// TelemetryHeader is block 0 of a Telemetry Host-Initiated (07h) or
// Controller-Initiated (08h) log.
//
//	Bytes   | Field
//	--------|-----------------------------------------------
//	0       | log identifier
//	1-4     | reserved
//	5-7     | IEEE OUI
//	8-9     | Data Area 1 last block
//	10-11   | Data Area 2 last block
//	12-13   | Data Area 3 last block
//	14-15   | reserved
//	16-19   | Data Area 4 last block
//	20-383  | variant bytes (scope, generation numbers, availability)
//	384-511 | reason identifier
//
// Last block values are cumulative: Data Area N spans blocks
// LastBlock[N-2]+1 through LastBlock[N-1].
type TelemetryHeader struct {
	Kind      format.LogKind
	OUI       [3]byte
	LastBlock [4]uint32
	Reason    Reason

	// Scope is the host-initiated scope for 07h logs and the
	// controller-initiated scope for 08h logs.
	Scope format.Scope
	// HostGeneration is only present in 07h logs.
	HostGeneration          uint8
	ControllerDataAvailable uint8
	ControllerGeneration    uint8
}

// NewTelemetryHeader creates a header of the given kind. For a
// controller-initiated log the data available flag is set.
func NewTelemetryHeader(kind format.LogKind) *TelemetryHeader {
	h := &TelemetryHeader{Kind: kind}
	if kind == format.LogControllerInitiated {
		h.ControllerDataAvailable = 1
	}

	return h
}

// SetAreaSizes fills LastBlock from per-area sizes in bytes.
//
// Returns:
//   - error: errs.ErrConfig if a size is not a multiple of BlockSize or a
//     cumulative last block overflows its field
func (h *TelemetryHeader) SetAreaSizes(sizes [4]uint64) error {
	var last uint64
	for i, size := range sizes {
		if size%BlockSize != 0 {
			return fmt.Errorf("%w: data area %d size %d is not a multiple of %d", errs.ErrConfig, i+1, size, BlockSize)
		}
		last += size / BlockSize
		limit := uint64(math.MaxUint16)
		if i == 3 {
			limit = math.MaxUint32
		}
		if last > limit {
			return fmt.Errorf("%w: data area %d last block %d exceeds 0x%x", errs.ErrConfig, i+1, last, limit)
		}
		h.LastBlock[i] = uint32(last) //nolint:gosec
	}

	return nil
}

// AreaRange returns the byte range [start, end) of data area n (1..4).
func (h *TelemetryHeader) AreaRange(n int) (int, int) {
	start := TelemetryHeaderSize
	if n > 1 {
		start += int(h.LastBlock[n-2]) * BlockSize
	}

	return start, TelemetryHeaderSize + int(h.LastBlock[n-1])*BlockSize
}

// LogSize returns the size of the whole log in bytes.
func (h *TelemetryHeader) LogSize() int {
	_, end := h.AreaRange(4)
	return end
}

// Parse parses the header from the first TelemetryHeaderSize bytes of data.
//
// Returns:
//   - error: errs.ErrStructural for a short buffer or unknown log identifier,
//     errs.ErrReservedField for reserved bytes, errs.ErrRange for scope and
//     availability values
func (h *TelemetryHeader) Parse(data []byte) error {
	if len(data) < TelemetryHeaderSize {
		return fmt.Errorf("%w: telemetry log is %d bytes, header needs %d", errs.ErrStructural, len(data), TelemetryHeaderSize)
	}

	kind := format.LogKind(data[0])
	if !kind.IsValid() {
		return fmt.Errorf("%w: telemetry log identifier 0x%02x", errs.ErrStructural, data[0])
	}
	h.Kind = kind

	if err := encoding.CheckReserved("telemetry header bytes 1-4", data[1:5]); err != nil {
		return err
	}
	copy(h.OUI[:], data[5:8])

	engine := endian.GetLittleEndianEngine()
	h.LastBlock[0] = uint32(engine.Uint16(data[8:10]))
	h.LastBlock[1] = uint32(engine.Uint16(data[10:12]))
	h.LastBlock[2] = uint32(engine.Uint16(data[12:14]))
	if err := encoding.CheckReserved("telemetry header bytes 14-15", data[14:16]); err != nil {
		return err
	}
	h.LastBlock[3] = engine.Uint32(data[16:20])

	if err := h.parseVariant(data); err != nil {
		return err
	}

	return h.Reason.Parse(data[ReasonOffset:TelemetryHeaderSize])
}

func (h *TelemetryHeader) parseVariant(data []byte) error {
	if h.Kind == format.LogHostInitiated {
		if err := encoding.CheckReserved("telemetry header bytes 20-379", data[20:380]); err != nil {
			return err
		}
		if data[380] > uint8(format.ScopeSubsystem) {
			return fmt.Errorf("%w: host-initiated scope %d", errs.ErrRange, data[380])
		}
		if data[382] > 1 {
			return fmt.Errorf("%w: controller-initiated data available %d", errs.ErrRange, data[382])
		}
		h.Scope = format.Scope(data[380])
		h.HostGeneration = data[381]
		h.ControllerDataAvailable = data[382]
		h.ControllerGeneration = data[383]

		return nil
	}

	if err := encoding.CheckReserved("telemetry header bytes 20-380", data[20:381]); err != nil {
		return err
	}
	if data[381] > uint8(format.ScopeSubsystem) {
		return fmt.Errorf("%w: controller-initiated scope %d", errs.ErrRange, data[381])
	}
	if data[382] != 1 {
		return fmt.Errorf("%w: controller-initiated data available is %d, expected 1", errs.ErrRange, data[382])
	}
	h.Scope = format.Scope(data[381])
	h.HostGeneration = 0
	h.ControllerDataAvailable = data[382]
	h.ControllerGeneration = data[383]

	return nil
}

// Validate checks the data area geometry against the full log length.
//
// Returns:
//   - error: errs.ErrStructural if an area exceeds the log, last blocks
//     decrease, or Data Area 1 is not DataArea1Blocks long
func (h *TelemetryHeader) Validate(logLen int) error {
	var prev uint32
	for i, last := range h.LastBlock {
		if uint64(TelemetryHeaderSize)+uint64(last)*BlockSize > uint64(logLen) {
			return fmt.Errorf("%w: data area %d last block %d exceeds telemetry log of %d bytes",
				errs.ErrStructural, i+1, last, logLen)
		}
		if last < prev {
			return fmt.Errorf("%w: data area %d last block %d is below data area %d last block %d",
				errs.ErrStructural, i+1, last, i, prev)
		}
		prev = last
	}
	if h.LastBlock[0] != DataArea1Blocks {
		return fmt.Errorf("%w: data area 1 last block is %d, expected %d", errs.ErrStructural, h.LastBlock[0], DataArea1Blocks)
	}

	return nil
}

// Bytes serializes the header.
func (h *TelemetryHeader) Bytes() []byte {
	b := make([]byte, TelemetryHeaderSize)
	engine := endian.GetLittleEndianEngine()

	b[0] = uint8(h.Kind)
	copy(b[5:8], h.OUI[:])
	engine.PutUint16(b[8:10], uint16(h.LastBlock[0]))   //nolint:gosec
	engine.PutUint16(b[10:12], uint16(h.LastBlock[1])) //nolint:gosec
	engine.PutUint16(b[12:14], uint16(h.LastBlock[2])) //nolint:gosec
	engine.PutUint32(b[16:20], h.LastBlock[3])

	if h.Kind == format.LogHostInitiated {
		b[380] = uint8(h.Scope)
		b[381] = h.HostGeneration
	} else {
		b[381] = uint8(h.Scope)
	}
	b[382] = h.ControllerDataAvailable
	b[383] = h.ControllerGeneration
	h.Reason.Put(b[ReasonOffset:TelemetryHeaderSize])

	return b
}

// ParseTelemetryHeader parses a TelemetryHeader from data.
func ParseTelemetryHeader(data []byte) (TelemetryHeader, error) {
	var h TelemetryHeader
	if err := h.Parse(data); err != nil {
		return TelemetryHeader{}, err
	}

	return h, nil
}
