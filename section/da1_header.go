package section

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/endian"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
)

// FirmwareVersionSize is the width of the firmware version field.
const FirmwareVersionSize = 8

// FifoLocation places one event FIFO. Start and Size are in dwords and
// relative to the start of the owning data area. An absent FIFO has Area
// AreaNone and a zero location.
type FifoLocation struct {
	Area format.DataArea
	TableLocation
}

// DataArea1Header is the 512-byte header at the start of Data Area 1.
//
//	Bytes   | Field
//	--------|------------------------------------------------
//	0-1     | major version (3)
//	2-3     | minor version (1)
//	4-7     | reserved
//	8-15    | timestamp
//	16-31   | header GUID
//	32      | number of profiles
//	33      | selected profile
//	34-39   | reserved
//	40-47   | strings log size (dwords)
//	48-55   | reserved
//	56-63   | firmware version (ASCII)
//	64-95   | reserved
//	96-111  | Data Area 1 statistics start/size (dwords, start from log start)
//	112-127 | Data Area 2 statistics start/size (dwords, start from area start)
//	128-159 | reserved
//	160-175 | FIFO 1-16 data area
//	176-431 | FIFO 1-16 start/size (dwords)
//	432-511 | reserved
type DataArea1Header struct {
	MajorVersion    uint16
	MinorVersion    uint16
	Timestamp       Timestamp
	Profiles        uint8
	SelectedProfile uint8
	StringLogSizeDw uint64
	FirmwareVersion string
	DA1Statistics   TableLocation
	DA2Statistics   TableLocation
	Fifos           [FifoCount]FifoLocation
}

// NewDataArea1Header creates a version 3.1 header.
func NewDataArea1Header() *DataArea1Header {
	return &DataArea1Header{
		MajorVersion: DataArea1MajorVersion,
		MinorVersion: DataArea1MinorVersion,
	}
}

// Parse parses the header from the first DataArea1HeaderSize bytes of data.
//
// Returns:
//   - error: errs.ErrStructural for a short buffer, a wrong version or GUID,
//     or a located absent FIFO; errs.ErrReservedField for reserved bytes;
//     errs.ErrRange for the selected profile or a FIFO data area
func (h *DataArea1Header) Parse(data []byte) error {
	if len(data) < DataArea1HeaderSize {
		return fmt.Errorf("%w: data area 1 is %d bytes, header needs %d", errs.ErrStructural, len(data), DataArea1HeaderSize)
	}

	engine := endian.GetLittleEndianEngine()
	h.MajorVersion = engine.Uint16(data[0:2])
	h.MinorVersion = engine.Uint16(data[2:4])
	if h.MajorVersion != DataArea1MajorVersion || h.MinorVersion != DataArea1MinorVersion {
		return fmt.Errorf("%w: data area 1 version %d.%d, expected %d.%d",
			errs.ErrStructural, h.MajorVersion, h.MinorVersion, DataArea1MajorVersion, DataArea1MinorVersion)
	}
	if err := encoding.CheckReserved("data area 1 bytes 4-7", data[4:8]); err != nil {
		return err
	}
	if err := h.Timestamp.Parse(data[8:16]); err != nil {
		return fmt.Errorf("data area 1 timestamp: %w", err)
	}
	if GUID(data[16:32]) != DataArea1GUID {
		return fmt.Errorf("%w: data area 1 GUID %s", errs.ErrStructural, GUID(data[16:32]))
	}

	h.Profiles = data[32]
	h.SelectedProfile = data[33]
	if h.SelectedProfile > h.Profiles {
		return fmt.Errorf("%w: selected profile %d exceeds %d profiles", errs.ErrRange, h.SelectedProfile, h.Profiles)
	}
	if err := encoding.CheckReserved("data area 1 bytes 34-39", data[34:40]); err != nil {
		return err
	}
	h.StringLogSizeDw = engine.Uint64(data[40:48])
	if err := encoding.CheckReserved("data area 1 bytes 48-55", data[48:56]); err != nil {
		return err
	}

	fw, err := encoding.FixedASCII("firmware version", data[56:64])
	if err != nil {
		return err
	}
	h.FirmwareVersion = fw

	if err := encoding.CheckReserved("data area 1 bytes 64-95", data[64:96]); err != nil {
		return err
	}
	h.DA1Statistics = TableLocation{Start: engine.Uint64(data[96:104]), Size: engine.Uint64(data[104:112])}
	h.DA2Statistics = TableLocation{Start: engine.Uint64(data[112:120]), Size: engine.Uint64(data[120:128])}
	if err := encoding.CheckReserved("data area 1 bytes 128-159", data[128:160]); err != nil {
		return err
	}

	if err := h.parseFifos(data); err != nil {
		return err
	}

	return encoding.CheckReserved("data area 1 bytes 432-511", data[432:DataArea1HeaderSize])
}

func (h *DataArea1Header) parseFifos(data []byte) error {
	engine := endian.GetLittleEndianEngine()
	for i := range FifoCount {
		area := format.DataArea(data[160+i])
		if area > format.Area2 {
			return fmt.Errorf("%w: FIFO %d data area %d", errs.ErrRange, i+1, area)
		}

		off := 176 + i*16
		loc := FifoLocation{
			Area: area,
			TableLocation: TableLocation{
				Start: engine.Uint64(data[off : off+8]),
				Size:  engine.Uint64(data[off+8 : off+16]),
			},
		}
		if area == format.AreaNone && (loc.Start != 0 || loc.Size != 0) {
			return fmt.Errorf("%w: absent FIFO %d has start 0x%x size 0x%x",
				errs.ErrStructural, i+1, loc.Start, loc.Size)
		}
		h.Fifos[i] = loc
	}

	return nil
}

// Bytes serializes the header.
//
// Returns:
//   - []byte: DataArea1HeaderSize bytes
//   - error: errs.ErrConfig if the firmware version does not fit
func (h *DataArea1Header) Bytes() ([]byte, error) {
	b := make([]byte, DataArea1HeaderSize)
	engine := endian.GetLittleEndianEngine()

	engine.PutUint16(b[0:2], h.MajorVersion)
	engine.PutUint16(b[2:4], h.MinorVersion)
	h.Timestamp.Put(b[8:16])
	copy(b[16:32], DataArea1GUID[:])
	b[32] = h.Profiles
	b[33] = h.SelectedProfile
	engine.PutUint64(b[40:48], h.StringLogSizeDw)
	if err := encoding.PutFixedASCII(b[56:64], h.FirmwareVersion); err != nil {
		return nil, fmt.Errorf("firmware version: %w", err)
	}
	engine.PutUint64(b[96:104], h.DA1Statistics.Start)
	engine.PutUint64(b[104:112], h.DA1Statistics.Size)
	engine.PutUint64(b[112:120], h.DA2Statistics.Start)
	engine.PutUint64(b[120:128], h.DA2Statistics.Size)

	for i, loc := range h.Fifos {
		b[160+i] = uint8(loc.Area)
		off := 176 + i*16
		engine.PutUint64(b[off:off+8], loc.Start)
		engine.PutUint64(b[off+8:off+16], loc.Size)
	}

	return b, nil
}

// ParseDataArea1Header parses a DataArea1Header from data.
func ParseDataArea1Header(data []byte) (DataArea1Header, error) {
	var h DataArea1Header
	if err := h.Parse(data); err != nil {
		return DataArea1Header{}, err
	}

	return h, nil
}
