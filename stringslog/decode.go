package stringslog

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/section"
)

// MinVendorStatisticID is the first vendor unique statistic identifier.
const MinVendorStatisticID = 0x8000

type table struct {
	label    string
	loc      section.TableLocation
	parse    func([]byte) (section.StringEntry, error)
	validate func(section.StringEntry) error
}

// Decode parses and validates a strings log.
//
// Parameters:
//   - buf: the whole strings log; its length must match the header size field
//
// Returns:
//   - *Log: decoded log with sorted identifier tables
//   - error: wraps errs.ErrStructural, errs.ErrRange, errs.ErrReservedField,
//     errs.ErrOrdering or errs.ErrPadding
func Decode(buf []byte) (*Log, error) {
	hdr, err := section.ParseStringsHeader(buf)
	if err != nil {
		return nil, err
	}
	if err := hdr.Validate(len(buf)); err != nil {
		return nil, err
	}

	asciiStart, asciiSize, err := encoding.CheckDwordRange("ASCII table", len(buf), hdr.ASCII.Start, hdr.ASCII.Size)
	if err != nil {
		return nil, err
	}
	blob := buf[asciiStart : asciiStart+asciiSize]

	log := &Log{Header: hdr}
	tables := []struct {
		table
		dst *[]Entry
	}{
		{table{"statistic", hdr.Statistics, section.ParseStatisticEntry, validateStatisticEntry}, &log.Statistics},
		{table{"event", hdr.Events, section.ParseEventEntry, validateEventEntry}, &log.Events},
		{table{"VU event", hdr.VuEvents, section.ParseEventEntry, validateVuEventEntry}, &log.VuEvents},
	}
	for _, t := range tables {
		entries, err := decodeTable(buf, blob, t.table)
		if err != nil {
			return nil, err
		}
		*t.dst = entries
	}

	return log, nil
}

func decodeTable(buf, blob []byte, t table) ([]Entry, error) {
	if t.loc.Size == 0 {
		return nil, nil
	}

	start, size, err := encoding.CheckDwordRange(t.label+" table", len(buf), t.loc.Start, t.loc.Size)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, size/section.StringEntrySize)
	for off := start; off < start+size; off += section.StringEntrySize {
		raw, err := t.parse(buf[off : off+section.StringEntrySize])
		if err != nil {
			return nil, err
		}
		if err := t.validate(raw); err != nil {
			return nil, err
		}

		e := Entry{
			Class:    format.EventClass(raw.Class),
			ID:       raw.ID,
			OffsetDw: raw.OffsetDw,
			Length:   raw.Length,
		}
		if n := len(entries); n > 0 && compareEntry(entries[n-1], e) >= 0 {
			prev := entries[n-1]
			return nil, fmt.Errorf("%w: %s table entry 0x%02x/0x%04x follows 0x%02x/0x%04x",
				errs.ErrOrdering, t.label, uint8(e.Class), e.ID, uint8(prev.Class), prev.ID)
		}

		label := fmt.Sprintf("%s 0x%02x/0x%04x", t.label, uint8(e.Class), e.ID)
		if e.Name, err = encoding.ReadName(label, blob, e.OffsetDw, e.Length); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func validateStatisticEntry(e section.StringEntry) error {
	if e.ID < MinVendorStatisticID {
		return fmt.Errorf("%w: statistic table identifier 0x%04x is not vendor unique", errs.ErrRange, e.ID)
	}

	return nil
}

func validateEventEntry(e section.StringEntry) error {
	if !format.EventClass(e.Class).IsVendorUnique() {
		return fmt.Errorf("%w: event table class 0x%02x is not vendor unique", errs.ErrRange, e.Class)
	}

	return nil
}

func validateVuEventEntry(e section.StringEntry) error {
	if !format.EventClass(e.Class).IsFixed() {
		return fmt.Errorf("%w: VU event table class 0x%02x is not a fixed event class", errs.ErrRange, e.Class)
	}

	return nil
}
