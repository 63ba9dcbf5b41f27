package fifo

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/event"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/section"
)

// Names resolves event names and FIFO names. *stringslog.Log implements it.
type Names interface {
	event.Names
	FifoName(n int) string
}

// Fifo is one decoded or generated event FIFO.
type Fifo struct {
	Index    int // 1..16
	Area     format.DataArea
	Location section.TableLocation // dwords, relative to the owning data area
	Name     string
	Events   []event.Event
}

// Size returns the FIFO size in bytes.
func (f *Fifo) Size() int {
	return int(f.Location.Size) * encoding.DwordSize //nolint:gosec
}

// Used returns the number of bytes taken by events.
func (f *Fifo) Used() int {
	n := 0
	for _, e := range f.Events {
		n += e.Size()
	}

	return n
}

// Bytes serializes the events and zero-fills the FIFO to its size.
//
// Returns:
//   - []byte: Size() bytes
//   - error: errs.ErrConfig if an event cannot be encoded or the events do
//     not fit
func (f *Fifo) Bytes() ([]byte, error) {
	for i, e := range f.Events {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("FIFO %d event %d: %w", f.Index, i, err)
		}
	}
	if used := f.Used(); used > f.Size() {
		return nil, fmt.Errorf("%w: FIFO %d events take %d bytes, FIFO holds %d", errs.ErrConfig, f.Index, used, f.Size())
	}

	w := encoding.NewWriter()
	defer w.Release()

	for _, e := range f.Events {
		w.Bytes(e.Bytes())
	}
	w.PadTo(f.Size())

	return w.Finish(), nil
}

// Decode parses FIFO index from the data area it lives in.
//
// Parameters:
//   - index: FIFO number, 1..16
//   - loc: the FIFO location from the Data Area 1 header
//   - area: the bytes of the owning data area
//   - names: resolves vendor unique identifiers; nil resolves none
//
// Returns:
//   - *Fifo: the decoded FIFO
//   - error: errs.ErrStructural if the FIFO or an event overruns its region,
//     errs.ErrPadding if bytes after the last event are not zero, or any
//     event decoding error
func Decode(index int, loc section.FifoLocation, area []byte, names Names) (*Fifo, error) {
	label := fmt.Sprintf("FIFO %d", index)
	start, size, err := encoding.CheckDwordRange(label, len(area), loc.Start, loc.Size)
	if err != nil {
		return nil, err
	}

	f := &Fifo{
		Index:    index,
		Area:     loc.Area,
		Location: loc.TableLocation,
		Name:     fifoName(names, index),
	}

	data := area[start : start+size]
	off := 0
	for len(data)-off >= event.PrefixSize && data[off] != 0 {
		e, n, err := event.Decode(data[off:], names)
		if err != nil {
			return nil, fmt.Errorf("%s event %d at byte %d: %w", label, len(f.Events), off, err)
		}
		f.Events = append(f.Events, e)
		off += n
	}

	if err := encoding.CheckFill(label+" tail", data[off:], 0); err != nil {
		return nil, err
	}

	return f, nil
}

// DecodeAll decodes every present FIFO listed in locs. A FIFO is present
// when its area is 1 or 2 and its size is not zero.
func DecodeAll(locs [section.FifoCount]section.FifoLocation, area1, area2 []byte, names Names) ([]*Fifo, error) {
	var fifos []*Fifo
	for i, loc := range locs {
		if loc.Area == format.AreaNone || loc.Size == 0 {
			continue
		}

		area := area1
		if loc.Area == format.Area2 {
			area = area2
		}

		f, err := Decode(i+1, loc, area, names)
		if err != nil {
			return nil, err
		}
		fifos = append(fifos, f)
	}

	return fifos, nil
}

func fifoName(names Names, n int) string {
	if names == nil {
		return fmt.Sprintf("FIFO %d", n)
	}

	return names.FifoName(n)
}
