package section

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/endian"
	"github.com/opencomputeproject/ocp-telemetry/errs"
)

// StringEntry is one 16-byte row of a strings log identifier table.
//
// Statistics identifier entries:
//
//	Bytes | Field
//	------|---------------------------
//	0-1   | identifier
//	2     | reserved
//	3     | name length - 1
//	4-11  | name offset in ASCII table (dwords)
//	12-15 | reserved
//
// Event and vendor unique event entries carry the debug class in byte 0
// and the identifier in bytes 1-2.
type StringEntry struct {
	Class    uint8
	ID       uint16
	Length   int
	OffsetDw uint64
}

// ParseStatisticEntry parses a statistics identifier table entry.
//
// Returns:
//   - error: errs.ErrStructural on a size mismatch, errs.ErrReservedField for
//     byte 2 or bytes 12-15
func ParseStatisticEntry(data []byte) (StringEntry, error) {
	if len(data) != StringEntrySize {
		return StringEntry{}, fmt.Errorf("%w: string entry is %d bytes, expected %d", errs.ErrStructural, len(data), StringEntrySize)
	}

	engine := endian.GetLittleEndianEngine()
	e := StringEntry{
		ID:       engine.Uint16(data[0:2]),
		Length:   int(data[3]) + 1,
		OffsetDw: engine.Uint64(data[4:12]),
	}
	if err := encoding.CheckReserved(fmt.Sprintf("statistic entry 0x%04x byte 2", e.ID), data[2:3]); err != nil {
		return StringEntry{}, err
	}
	if err := encoding.CheckReserved(fmt.Sprintf("statistic entry 0x%04x bytes 12-15", e.ID), data[12:16]); err != nil {
		return StringEntry{}, err
	}

	return e, nil
}

// ParseEventEntry parses an event or vendor unique event table entry.
//
// Returns:
//   - error: errs.ErrStructural on a size mismatch, errs.ErrReservedField for
//     bytes 12-15
func ParseEventEntry(data []byte) (StringEntry, error) {
	if len(data) != StringEntrySize {
		return StringEntry{}, fmt.Errorf("%w: string entry is %d bytes, expected %d", errs.ErrStructural, len(data), StringEntrySize)
	}

	engine := endian.GetLittleEndianEngine()
	e := StringEntry{
		Class:    data[0],
		ID:       engine.Uint16(data[1:3]),
		Length:   int(data[3]) + 1,
		OffsetDw: engine.Uint64(data[4:12]),
	}
	if err := encoding.CheckReserved(fmt.Sprintf("event entry 0x%02x/0x%04x bytes 12-15", e.Class, e.ID), data[12:16]); err != nil {
		return StringEntry{}, err
	}

	return e, nil
}

// StatisticBytes serializes the entry in statistics identifier layout.
func (e StringEntry) StatisticBytes() []byte {
	w := encoding.NewWriter()
	w.Uint16(e.ID)
	w.Zeros(1)
	return e.finish(w)
}

// EventBytes serializes the entry in event identifier layout.
func (e StringEntry) EventBytes() []byte {
	w := encoding.NewWriter()
	w.Uint8(e.Class)
	w.Uint16(e.ID)
	return e.finish(w)
}

// finish writes the name length and offset shared by both layouts.
func (e StringEntry) finish(w *encoding.Writer) []byte {
	w.Uint8(uint8(e.Length - 1)) //nolint:gosec
	w.Uint64(e.OffsetDw)
	w.PadTo(StringEntrySize)

	return w.Finish()
}
