package stringslog

import (
	"fmt"
	"slices"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/section"
)

type tableID uint8

const (
	statisticTable tableID = iota
	eventTable
	vuEventTable
)

type builderKey struct {
	table tableID
	class format.EventClass
	id    uint16
}

// builderRef locates an added name within its table.
type builderRef struct {
	key builderKey
	idx int
}

// Builder assembles a strings log.
//
// Names are written to the ASCII table in the order they are added, each
// padded with spaces to a dword boundary. Identifier tables are emitted
// sorted by (class, identifier). Adding a key that is already present is a
// no-op and keeps the first name.
type Builder struct {
	tables    [3][]Entry
	seen      map[builderKey]struct{}
	order     []builderRef
	fifoNames [section.FifoCount]string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{seen: make(map[builderKey]struct{})}
}

// AddStatistic adds a vendor unique statistic identifier.
//
// Returns:
//   - error: errs.ErrConfig if id is below 8000h or name is not a valid
//     strings log name
func (b *Builder) AddStatistic(id uint16, name string) error {
	if id < MinVendorStatisticID {
		return fmt.Errorf("%w: statistic identifier 0x%04x is not vendor unique", errs.ErrConfig, id)
	}

	return b.add(builderKey{table: statisticTable, id: id}, name)
}

// AddEvent adds a vendor unique event (class 80h or above).
func (b *Builder) AddEvent(class format.EventClass, id uint16, name string) error {
	if !class.IsVendorUnique() {
		return fmt.Errorf("%w: event class 0x%02x is not vendor unique", errs.ErrConfig, uint8(class))
	}

	return b.add(builderKey{table: eventTable, class: class, id: id}, name)
}

// AddVuEvent adds the vendor unique data identifier of a fixed class event.
func (b *Builder) AddVuEvent(class format.EventClass, id uint16, name string) error {
	if !class.IsFixed() {
		return fmt.Errorf("%w: VU event class 0x%02x is not a fixed event class", errs.ErrConfig, uint8(class))
	}

	return b.add(builderKey{table: vuEventTable, class: class, id: id}, name)
}

func (b *Builder) add(key builderKey, name string) error {
	if err := encoding.ValidateName(name); err != nil {
		return err
	}
	if _, ok := b.seen[key]; ok {
		return nil
	}

	b.seen[key] = struct{}{}
	b.order = append(b.order, builderRef{key: key, idx: len(b.tables[key.table])})
	b.tables[key.table] = append(b.tables[key.table], Entry{Class: key.class, ID: key.id, Length: len(name), Name: name})

	return nil
}

// SetFifoName names FIFO n (1..16). Names are at most 16 ASCII characters.
func (b *Builder) SetFifoName(n int, name string) error {
	if n < 1 || n > section.FifoCount {
		return fmt.Errorf("%w: FIFO number %d", errs.ErrConfig, n)
	}
	if len(name) > section.FifoNameSize {
		return fmt.Errorf("%w: FIFO %d name %q exceeds %d characters", errs.ErrConfig, n, name, section.FifoNameSize)
	}
	b.fifoNames[n-1] = name

	return nil
}

// Build serializes the strings log.
//
// Returns:
//   - []byte: the complete strings log
//   - error: errs.ErrConfig if a FIFO name is not ASCII
func (b *Builder) Build() ([]byte, error) {
	blob := encoding.NewNameBlob()
	defer blob.Release()

	// Names go to the ASCII table in insertion order across all tables.
	offsets := make(map[builderKey]uint64, len(b.order))
	for _, ref := range b.order {
		off, err := blob.Append(b.tables[ref.key.table][ref.idx].Name)
		if err != nil {
			return nil, err
		}
		offsets[ref.key] = off
	}

	hdr := section.NewStringsHeader()
	hdr.FifoNames = b.fifoNames

	w := encoding.NewWriter()
	defer w.Release()
	w.Zeros(section.StringsHeaderSize)

	locs := []*section.TableLocation{&hdr.Statistics, &hdr.Events, &hdr.VuEvents}
	for t, entries := range b.tables {
		sorted := slices.Clone(entries)
		slices.SortFunc(sorted, compareEntry)

		start := uint64(w.Len() / encoding.DwordSize) //nolint:gosec
		for _, e := range sorted {
			raw := section.StringEntry{
				Class:    uint8(e.Class),
				ID:       e.ID,
				Length:   e.Length,
				OffsetDw: offsets[builderKey{table: tableID(t), class: e.Class, id: e.ID}], //nolint:gosec
			}
			if tableID(t) == statisticTable { //nolint:gosec
				w.Bytes(raw.StatisticBytes())
			} else {
				w.Bytes(raw.EventBytes())
			}
		}
		*locs[t] = section.TableLocation{
			Start: start,
			Size:  uint64(w.Len()/encoding.DwordSize) - start, //nolint:gosec
		}
	}

	hdr.ASCII = section.TableLocation{
		Start: uint64(w.Len() / encoding.DwordSize),    //nolint:gosec
		Size:  uint64(blob.Len() / encoding.DwordSize), //nolint:gosec
	}
	w.Bytes(blob.Bytes())
	hdr.SizeDw = uint64(w.Len() / encoding.DwordSize) //nolint:gosec

	head, err := hdr.Bytes()
	if err != nil {
		return nil, err
	}

	out := w.Finish()
	copy(out, head)

	return out, nil
}
