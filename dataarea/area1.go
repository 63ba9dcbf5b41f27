package dataarea

import (
	"fmt"
	"slices"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/fifo"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/section"
	"github.com/opencomputeproject/ocp-telemetry/statistic"
)

// Area1 is a decoded or assembled Data Area 1.
type Area1 struct {
	Header        section.DataArea1Header
	SmartHealth   section.SmartHealth
	SmartExtended section.SmartExtended
	Statistics    statistic.Table
	Fifos         []*fifo.Fifo // FIFOs located in Data Area 1, by FIFO number
}

// DecodeArea1 decodes Data Area 1.
//
// Parameters:
//   - data: the DataArea1Size bytes of the area
//   - names: resolves vendor unique identifiers; nil resolves none
//
// Returns:
//   - *Area1: the decoded area
//   - error: errs.ErrStructural for a wrong area size, a statistics table or
//     FIFO outside the area or overlapping another region, or any header,
//     SMART page, statistic or event decoding error
func DecodeArea1(data []byte, names fifo.Names) (*Area1, error) {
	if len(data) != section.DataArea1Size {
		return nil, fmt.Errorf("%w: data area 1 is %d bytes, expected %d", errs.ErrStructural, len(data), section.DataArea1Size)
	}

	a := &Area1{}
	var err error
	if a.Header, err = section.ParseDataArea1Header(data[:section.DataArea1HeaderSize]); err != nil {
		return nil, err
	}
	if a.SmartHealth, err = section.ParseSmartHealth(data[section.SmartHealthOffset : section.SmartHealthOffset+section.SmartPageSize]); err != nil {
		return nil, err
	}
	if a.SmartExtended, err = section.ParseSmartExtended(data[section.SmartExtendedOffset : section.SmartExtendedOffset+section.SmartPageSize]); err != nil {
		return nil, err
	}

	stats, err := area1StatsLocation(a.Header.DA1Statistics)
	if err != nil {
		return nil, err
	}
	regions := append(fifoRegions(&a.Header, format.Area1), region{label: "statistics table", loc: stats})
	if err := checkRegions(format.Area1, area1FloorDw, regions); err != nil {
		return nil, err
	}

	if a.Statistics, err = decodeStatistics("data area 1", data, stats, names); err != nil {
		return nil, err
	}
	if a.Fifos, err = decodeFifos(&a.Header, format.Area1, data, names); err != nil {
		return nil, err
	}

	return a, nil
}

// area1StatsLocation converts the log-relative Data Area 1 statistics
// location to an area-relative one.
func area1StatsLocation(loc section.TableLocation) (section.TableLocation, error) {
	if loc.Size == 0 {
		return section.TableLocation{}, nil
	}
	if loc.Start < area1StatsDw {
		return section.TableLocation{}, fmt.Errorf("%w: data area 1 statistics start at log dword 0x%x, below dword 0x%x",
			errs.ErrStructural, loc.Start, area1StatsDw)
	}

	return section.TableLocation{Start: loc.Start - headerDw, Size: loc.Size}, nil
}

func decodeStatistics(label string, data []byte, loc section.TableLocation, names statistic.Names) (statistic.Table, error) {
	if loc.Size == 0 {
		return nil, nil
	}

	start, size, err := encoding.CheckDwordRange(label+" statistics table", len(data), loc.Start, loc.Size)
	if err != nil {
		return nil, err
	}
	table, err := statistic.DecodeTable(data[start:start+size], names)
	if err != nil {
		return nil, fmt.Errorf("%s statistics: %w", label, err)
	}

	return table, nil
}

func decodeFifos(hdr *section.DataArea1Header, area format.DataArea, data []byte, names fifo.Names) ([]*fifo.Fifo, error) {
	var fifos []*fifo.Fifo
	for i, loc := range hdr.Fifos {
		if loc.Area != area || loc.Size == 0 {
			continue
		}

		f, err := fifo.Decode(i+1, loc, data, names)
		if err != nil {
			return nil, err
		}
		fifos = append(fifos, f)
	}

	return fifos, nil
}

// BuildArea1 lays out and serializes Data Area 1.
//
// The caller fills the header identity fields (timestamp, profiles, strings
// log size, firmware version), the SMART pages, the statistics table and
// the Data Area 1 FIFOs. BuildArea1 places the statistics table and FIFOs,
// records their locations together with those of a2 in the header, and
// returns the DataArea1Size bytes of the area. a2 must already be laid out
// by BuildArea2, or be nil when the log has no Data Area 2.
//
// Returns:
//   - []byte: the serialized area
//   - error: errs.ErrConfig if the content does not fit, a FIFO number is
//     used twice, or a header field cannot be encoded
func BuildArea1(a *Area1, a2 *Area2) ([]byte, error) {
	hdr := &a.Header
	hdr.MajorVersion = section.DataArea1MajorVersion
	hdr.MinorVersion = section.DataArea1MinorVersion
	hdr.Fifos = [section.FifoCount]section.FifoLocation{}
	hdr.DA2Statistics = section.TableLocation{}
	if a2 != nil {
		hdr.DA2Statistics = section.TableLocation{Size: uint64(a2.Statistics.Size() / encoding.DwordSize)} //nolint:gosec
		if err := recordFifos(hdr, a2.Fifos); err != nil {
			return nil, err
		}
	}

	w := encoding.NewWriter()
	defer w.Release()

	w.Zeros(section.DataArea1StatsOffset)
	table := a.Statistics.Bytes()
	w.Bytes(table)
	hdr.DA1Statistics = section.TableLocation{Start: area1StatsDw, Size: uint64(len(table) / encoding.DwordSize)} //nolint:gosec

	if err := placeFifos(w, a.Fifos, format.Area1); err != nil {
		return nil, err
	}
	if err := recordFifos(hdr, a.Fifos); err != nil {
		return nil, err
	}
	if w.Len() > section.DataArea1Size {
		return nil, fmt.Errorf("%w: data area 1 content is %d bytes, area holds %d", errs.ErrConfig, w.Len(), section.DataArea1Size)
	}
	w.PadTo(section.DataArea1Size)

	head, err := hdr.Bytes()
	if err != nil {
		return nil, err
	}

	out := w.Finish()
	copy(out, head)
	copy(out[section.SmartHealthOffset:], a.SmartHealth.Bytes())
	copy(out[section.SmartExtendedOffset:], a.SmartExtended.Bytes())

	return out, nil
}

// placeFifos writes fifos in FIFO number order at the writer position and
// sets their area and start.
func placeFifos(w *encoding.Writer, fifos []*fifo.Fifo, area format.DataArea) error {
	slices.SortFunc(fifos, func(a, b *fifo.Fifo) int { return a.Index - b.Index })

	for _, f := range fifos {
		f.Area = area
		f.Location.Start = uint64(w.Len() / encoding.DwordSize) //nolint:gosec
		data, err := f.Bytes()
		if err != nil {
			return err
		}
		w.Bytes(data)
	}

	return nil
}

func recordFifos(hdr *section.DataArea1Header, fifos []*fifo.Fifo) error {
	for _, f := range fifos {
		if f.Index < 1 || f.Index > section.FifoCount {
			return fmt.Errorf("%w: FIFO number %d", errs.ErrConfig, f.Index)
		}
		if f.Location.Size == 0 {
			continue
		}
		if hdr.Fifos[f.Index-1].Area != format.AreaNone {
			return fmt.Errorf("%w: FIFO %d is placed twice", errs.ErrConfig, f.Index)
		}
		hdr.Fifos[f.Index-1] = section.FifoLocation{Area: f.Area, TableLocation: f.Location}
	}

	return nil
}
