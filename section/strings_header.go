package section

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/endian"
	"github.com/opencomputeproject/ocp-telemetry/errs"
)

// StringsHeader is the fixed 432-byte head of an OCP strings log.
//
//	Bytes   | Field
//	--------|------------------------------------------------
//	0       | log page version (1)
//	1-15    | reserved
//	16-31   | log page GUID
//	32-39   | log size in dwords
//	40-63   | reserved
//	64-79   | statistics identifier table start/size (dwords)
//	80-95   | event identifier table start/size (dwords)
//	96-111  | vendor unique event table start/size (dwords)
//	112-127 | ASCII table start/size (dwords)
//	128-383 | 16 FIFO names, 16 bytes each
//	384-431 | reserved
type StringsHeader struct {
	Version    uint8
	SizeDw     uint64
	Statistics TableLocation
	Events     TableLocation
	VuEvents   TableLocation
	ASCII      TableLocation
	FifoNames  [FifoCount]string
}

// NewStringsHeader creates a version 1 header with no tables.
func NewStringsHeader() *StringsHeader {
	return &StringsHeader{Version: StringsLogVersion}
}

// Parse parses the header from the first StringsHeaderSize bytes of data.
//
// Returns:
//   - error: errs.ErrStructural for a short buffer, a wrong version or GUID,
//     errs.ErrReservedField for reserved bytes, errs.ErrPadding for a FIFO
//     name with bytes after its terminator
func (h *StringsHeader) Parse(data []byte) error {
	if len(data) < StringsHeaderSize {
		return fmt.Errorf("%w: strings log is %d bytes, header needs %d", errs.ErrStructural, len(data), StringsHeaderSize)
	}

	if data[0] != StringsLogVersion {
		return fmt.Errorf("%w: strings log version %d, expected %d", errs.ErrStructural, data[0], StringsLogVersion)
	}
	h.Version = data[0]

	if err := encoding.CheckReserved("strings header bytes 1-15", data[1:16]); err != nil {
		return err
	}
	if GUID(data[16:32]) != StringsLogGUID {
		return fmt.Errorf("%w: strings log GUID %s", errs.ErrStructural, GUID(data[16:32]))
	}

	engine := endian.GetLittleEndianEngine()
	h.SizeDw = engine.Uint64(data[32:40])
	if err := encoding.CheckReserved("strings header bytes 40-63", data[40:64]); err != nil {
		return err
	}

	h.Statistics = TableLocation{Start: engine.Uint64(data[64:72]), Size: engine.Uint64(data[72:80])}
	h.Events = TableLocation{Start: engine.Uint64(data[80:88]), Size: engine.Uint64(data[88:96])}
	h.VuEvents = TableLocation{Start: engine.Uint64(data[96:104]), Size: engine.Uint64(data[104:112])}
	h.ASCII = TableLocation{Start: engine.Uint64(data[112:120]), Size: engine.Uint64(data[120:128])}

	for i := range FifoCount {
		off := 128 + i*FifoNameSize
		name, err := encoding.FixedASCII(fmt.Sprintf("FIFO %d name", i+1), data[off:off+FifoNameSize])
		if err != nil {
			return err
		}
		h.FifoNames[i] = name
	}

	return encoding.CheckReserved("strings header bytes 384-431", data[384:StringsHeaderSize])
}

// Validate checks the table geometry against the full log length.
//
// Tables are chained: statistics start right after the header, events
// after statistics, vendor unique events after events, and the ASCII table
// after the vendor unique events. Empty tables skip their start check
// except the ASCII table, whose start is always checked.
//
// Returns:
//   - error: errs.ErrStructural naming the first inconsistent table
func (h *StringsHeader) Validate(logLen int) error {
	if logLen%encoding.DwordSize != 0 || h.SizeDw != uint64(logLen/encoding.DwordSize) { //nolint:gosec
		return fmt.Errorf("%w: strings log size field 0x%x dwords does not match %d bytes",
			errs.ErrStructural, h.SizeDw, logLen)
	}

	tables := []struct {
		label string
		loc   TableLocation
		start uint64
	}{
		{"statistics identifier table", h.Statistics, StringsHeaderSizeDw},
		{"event identifier table", h.Events, h.Statistics.End()},
		{"vendor unique event table", h.VuEvents, h.Events.End()},
	}
	for _, tbl := range tables {
		if tbl.loc.Size == 0 {
			continue
		}
		if tbl.loc.Start != tbl.start {
			return fmt.Errorf("%w: %s start 0x%x, expected 0x%x", errs.ErrStructural, tbl.label, tbl.loc.Start, tbl.start)
		}
		if (tbl.loc.Size*encoding.DwordSize)%StringEntrySize != 0 {
			return fmt.Errorf("%w: %s size 0x%x dwords is not a whole number of entries", errs.ErrStructural, tbl.label, tbl.loc.Size)
		}
		if _, _, err := encoding.CheckDwordRange(tbl.label, logLen, tbl.loc.Start, tbl.loc.Size); err != nil {
			return err
		}
	}

	if h.ASCII.Start != h.VuEvents.End() {
		return fmt.Errorf("%w: ASCII table start 0x%x, expected 0x%x", errs.ErrStructural, h.ASCII.Start, h.VuEvents.End())
	}
	_, _, err := encoding.CheckDwordRange("ASCII table", logLen, h.ASCII.Start, h.ASCII.Size)

	return err
}

// Bytes serializes the header.
//
// Returns:
//   - []byte: StringsHeaderSize bytes
//   - error: errs.ErrConfig if a FIFO name does not fit its 16-byte slot
func (h *StringsHeader) Bytes() ([]byte, error) {
	for i, name := range h.FifoNames {
		if err := encoding.CheckFixedASCII(name, FifoNameSize); err != nil {
			return nil, fmt.Errorf("FIFO %d name: %w", i+1, err)
		}
	}

	w := encoding.NewWriter()
	w.Uint8(h.Version)
	w.PadTo(16)
	w.Bytes(StringsLogGUID[:])
	w.Uint64(h.SizeDw)
	w.PadTo(64)
	for _, loc := range []TableLocation{h.Statistics, h.Events, h.VuEvents, h.ASCII} {
		w.Uint64(loc.Start)
		w.Uint64(loc.Size)
	}
	for _, name := range h.FifoNames {
		w.Fixed([]byte(name), FifoNameSize)
	}
	w.PadTo(StringsHeaderSize)

	return w.Finish(), nil
}

// ParseStringsHeader parses a StringsHeader from data.
func ParseStringsHeader(data []byte) (StringsHeader, error) {
	var h StringsHeader
	if err := h.Parse(data); err != nil {
		return StringsHeader{}, err
	}

	return h, nil
}
