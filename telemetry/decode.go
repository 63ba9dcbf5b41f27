package telemetry

import (
	"fmt"
	"slices"

	"github.com/opencomputeproject/ocp-telemetry/dataarea"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/fifo"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/section"
	"github.com/opencomputeproject/ocp-telemetry/statistic"
	"github.com/opencomputeproject/ocp-telemetry/stringslog"
)

// Log is a decoded telemetry log.
type Log struct {
	Header  section.TelemetryHeader
	Area1   *dataarea.Area1
	Area2   *dataarea.Area2
	Area3   []byte // opaque
	Area4   []byte // opaque
	Strings *stringslog.Log
}

// Fifos returns the FIFOs of both data areas ordered by FIFO number.
func (l *Log) Fifos() []*fifo.Fifo {
	fifos := make([]*fifo.Fifo, 0, len(l.Area1.Fifos)+len(l.Area2.Fifos))
	fifos = append(fifos, l.Area1.Fifos...)
	fifos = append(fifos, l.Area2.Fifos...)
	slices.SortFunc(fifos, func(a, b *fifo.Fifo) int { return a.Index - b.Index })

	return fifos
}

// Statistic looks up a statistic by identifier in both data areas.
func (l *Log) Statistic(id uint16) (*statistic.Descriptor, format.DataArea, bool) {
	if d, ok := l.Area1.Statistics.Find(id); ok {
		return d, format.Area1, true
	}
	if d, ok := l.Area2.Statistics.Find(id); ok {
		return d, format.Area2, true
	}

	return nil, format.AreaNone, false
}

// Decode decodes and validates a telemetry log.
//
// Parameters:
//   - tel: the whole telemetry log
//   - strs: the decoded strings log that names vendor unique identifiers;
//     nil resolves none, so any vendor unique statistic or event fails
//
// Returns:
//   - *Log: the decoded log
//   - error: wraps one of the errs kind sentinels; errs.ErrCrossReference
//     when the Data Area 1 strings log size differs from strs, and
//     errs.ErrOrdering when both data areas report the same statistic
func Decode(tel []byte, strs *stringslog.Log) (*Log, error) {
	hdr, err := section.ParseTelemetryHeader(tel)
	if err != nil {
		return nil, err
	}
	if err := hdr.Validate(len(tel)); err != nil {
		return nil, err
	}

	var names fifo.Names
	if strs != nil {
		names = strs
	}

	l := &Log{Header: hdr, Strings: strs}

	start, end := hdr.AreaRange(1)
	if l.Area1, err = dataarea.DecodeArea1(tel[start:end], names); err != nil {
		return nil, err
	}
	if strs != nil && l.Area1.Header.StringLogSizeDw != strs.Header.SizeDw {
		return nil, fmt.Errorf("%w: data area 1 reports a strings log of %d dwords, strings log has %d",
			errs.ErrCrossReference, l.Area1.Header.StringLogSizeDw, strs.Header.SizeDw)
	}

	start, end = hdr.AreaRange(2)
	if l.Area2, err = dataarea.DecodeArea2(tel[start:end], &l.Area1.Header, names); err != nil {
		return nil, err
	}
	for _, d := range l.Area2.Statistics {
		if _, ok := l.Area1.Statistics.Find(d.ID); ok {
			return nil, fmt.Errorf("%w: statistic 0x%04x is reported in both data areas", errs.ErrOrdering, d.ID)
		}
	}

	start, end = hdr.AreaRange(3)
	l.Area3 = slices.Clone(tel[start:end])
	start, end = hdr.AreaRange(4)
	l.Area4 = slices.Clone(tel[start:end])

	return l, nil
}

// DecodePair decodes a strings log and then the telemetry log it names.
func DecodePair(tel, strs []byte) (*Log, error) {
	s, err := stringslog.Decode(strs)
	if err != nil {
		return nil, fmt.Errorf("strings log: %w", err)
	}

	return Decode(tel, s)
}
