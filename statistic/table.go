package statistic

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/errs"
)

// Table is an ordered statistics table as stored in a data area.
type Table []Descriptor

// DecodeTable parses descriptors until fewer than HeaderSize bytes remain.
// The leftover tail must be zero and an identifier may appear only once.
//
// Returns:
//   - Table: descriptors in table order
//   - error: any error of Decode, errs.ErrOrdering for a repeated identifier,
//     errs.ErrPadding for a non-zero tail
func DecodeTable(data []byte, names Names) (Table, error) {
	var t Table
	seen := make(map[uint16]struct{})

	off := 0
	for len(data)-off >= HeaderSize {
		d, n, err := Decode(data[off:], names)
		if err != nil {
			return nil, fmt.Errorf("statistics table offset 0x%x: %w", off, err)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("%w: statistic 0x%04x appears twice", errs.ErrOrdering, d.ID)
		}
		seen[d.ID] = struct{}{}

		t = append(t, d)
		off += n
	}

	if err := encoding.CheckFill("statistics table tail", data[off:], 0); err != nil {
		return nil, err
	}

	return t, nil
}

// Size returns the encoded table size in bytes.
func (t Table) Size() int {
	n := 0
	for i := range t {
		n += t[i].Size()
	}

	return n
}

// Bytes serializes the table.
func (t Table) Bytes() []byte {
	w := encoding.NewWriter()
	for i := range t {
		w.Bytes(t[i].Bytes())
	}

	return w.Finish()
}

// Find returns the descriptor with identifier id.
func (t Table) Find(id uint16) (*Descriptor, bool) {
	for i := range t {
		if t[i].ID == id {
			return &t[i], true
		}
	}

	return nil, false
}
