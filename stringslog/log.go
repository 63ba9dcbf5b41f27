package stringslog

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/section"
)

// Entry is one identifier table row together with its resolved name.
// Statistics entries have a zero Class.
type Entry struct {
	Class    format.EventClass
	ID       uint16
	OffsetDw uint64
	Length   int
	Name     string
}

func compareEntry(a, b Entry) int {
	if c := cmp.Compare(a.Class, b.Class); c != 0 {
		return c
	}

	return cmp.Compare(a.ID, b.ID)
}

// Log is a decoded strings log. A Log is immutable once returned by Decode.
type Log struct {
	Header     section.StringsHeader
	Statistics []Entry
	Events     []Entry
	VuEvents   []Entry
}

// Size returns the log size in bytes.
func (l *Log) Size() int {
	return int(l.Header.SizeDw) * encoding.DwordSize //nolint:gosec
}

func lookup(entries []Entry, class format.EventClass, id uint16) (string, bool) {
	i, ok := slices.BinarySearchFunc(entries, Entry{Class: class, ID: id}, compareEntry)
	if !ok {
		return "", false
	}

	return entries[i].Name, true
}

// StatisticName returns the name of a vendor unique statistic identifier.
func (l *Log) StatisticName(id uint16) (string, bool) {
	return lookup(l.Statistics, 0, id)
}

// EventName returns the name of a vendor unique event (class >= 80h).
func (l *Log) EventName(class format.EventClass, id uint16) (string, bool) {
	return lookup(l.Events, class, id)
}

// VuEventName returns the name of the vendor unique data attached to an
// event of a fixed class.
func (l *Log) VuEventName(class format.EventClass, id uint16) (string, bool) {
	return lookup(l.VuEvents, class, id)
}

// FifoName returns the name of FIFO n (1..16), or "FIFO n" when the log
// leaves it blank.
func (l *Log) FifoName(n int) string {
	if n < 1 || n > section.FifoCount {
		return ""
	}
	if name := l.Header.FifoNames[n-1]; name != "" {
		return name
	}

	return fmt.Sprintf("FIFO %d", n)
}
