package stringslog

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/section"
	"github.com/stretchr/testify/require"
)

// statsOffset is the byte offset of the first statistics table entry.
const statsOffset = section.StringsHeaderSize

func buildTestLog(t *testing.T) []byte {
	t.Helper()

	b := NewBuilder()
	require.NoError(t, b.AddStatistic(0x8006, "Vendor ID 2"))
	require.NoError(t, b.AddStatistic(0x8005, "Vendor ID 1"))
	require.NoError(t, b.AddEvent(0x90, 0x0001, "Vendor Unique Event FIFO 1 0x0001"))
	require.NoError(t, b.AddEvent(0x81, 0x0100, "Fan Speed"))
	require.NoError(t, b.AddVuEvent(format.ClassPCIe, 0x8001, "abc"))
	require.NoError(t, b.SetFifoName(1, "Name of FIFO 1"))
	require.NoError(t, b.SetFifoName(16, "Last"))

	data, err := b.Build()
	require.NoError(t, err)

	return data
}

func TestBuilder_RoundTrip(t *testing.T) {
	data := buildTestLog(t)

	log, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, len(data), log.Size())

	require.Len(t, log.Statistics, 2)
	require.Equal(t, uint16(0x8005), log.Statistics[0].ID)
	require.Equal(t, uint16(0x8006), log.Statistics[1].ID)
	require.Len(t, log.Events, 2)
	require.Equal(t, format.EventClass(0x81), log.Events[0].Class)
	require.Len(t, log.VuEvents, 1)

	name, ok := log.StatisticName(0x8005)
	require.True(t, ok)
	require.Equal(t, "Vendor ID 1", name)

	name, ok = log.EventName(0x90, 0x0001)
	require.True(t, ok)
	require.Equal(t, "Vendor Unique Event FIFO 1 0x0001", name)

	name, ok = log.VuEventName(format.ClassPCIe, 0x8001)
	require.True(t, ok)
	require.Equal(t, "abc", name)

	_, ok = log.StatisticName(0x8007)
	require.False(t, ok)
	_, ok = log.EventName(0x91, 0x0001)
	require.False(t, ok)

	require.Equal(t, "Name of FIFO 1", log.FifoName(1))
	require.Equal(t, "FIFO 2", log.FifoName(2))
	require.Equal(t, "Last", log.FifoName(16))
	require.Empty(t, log.FifoName(17))
}

func TestBuilder_Layout(t *testing.T) {
	data := buildTestLog(t)
	log, err := Decode(data)
	require.NoError(t, err)

	hdr := log.Header
	require.Equal(t, uint64(section.StringsHeaderSizeDw), hdr.Statistics.Start)
	require.Equal(t, uint64(8), hdr.Statistics.Size)
	require.Equal(t, hdr.Statistics.End(), hdr.Events.Start)
	require.Equal(t, hdr.Events.End(), hdr.VuEvents.Start)
	require.Equal(t, hdr.VuEvents.End(), hdr.ASCII.Start)

	// Names are laid out in insertion order, not table order.
	require.Greater(t, log.Statistics[0].OffsetDw, log.Statistics[1].OffsetDw)
	require.Greater(t, log.Events[0].OffsetDw, log.Events[1].OffsetDw)

	// "abc" is padded with a single space.
	vu := log.VuEvents[0]
	off := int(hdr.ASCII.Start+vu.OffsetDw) * 4
	require.Equal(t, "abc ", string(data[off:off+4]))
}

func TestBuilder_Dedup(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddStatistic(0x9000, "first"))
	require.NoError(t, b.AddStatistic(0x9000, "second"))
	require.NoError(t, b.AddEvent(0x80, 0x9000, "event"))

	data, err := b.Build()
	require.NoError(t, err)

	log, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, log.Statistics, 1)
	require.Equal(t, "first", log.Statistics[0].Name)
	require.Len(t, log.Events, 1)
}

func TestBuilder_ManyNames(t *testing.T) {
	const n = 2000

	b := NewBuilder()
	for k := n - 1; k >= 0; k-- {
		require.NoError(t, b.AddStatistic(uint16(0x8000+k), fmt.Sprintf("Statistic %04d", k))) //nolint:gosec
		require.NoError(t, b.AddEvent(0x80, uint16(k), fmt.Sprintf("Event     %04d", k)))       //nolint:gosec
	}

	data, err := b.Build()
	require.NoError(t, err)
	log, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, log.Statistics, n)
	require.Len(t, log.Events, n)

	// Each 14 character name takes four dwords; statistics and events alternate.
	for k := range n {
		pos := uint64(n - 1 - k) //nolint:gosec
		require.Equal(t, uint16(0x8000+k), log.Statistics[k].ID) //nolint:gosec
		require.Equal(t, fmt.Sprintf("Statistic %04d", k), log.Statistics[k].Name)
		require.Equal(t, pos*8, log.Statistics[k].OffsetDw)
		require.Equal(t, fmt.Sprintf("Event     %04d", k), log.Events[k].Name)
		require.Equal(t, pos*8+4, log.Events[k].OffsetDw)
	}
}

func TestBuilder_Empty(t *testing.T) {
	data, err := NewBuilder().Build()
	require.NoError(t, err)
	require.Len(t, data, section.StringsHeaderSize)

	log, err := Decode(data)
	require.NoError(t, err)
	require.Empty(t, log.Statistics)
	require.Empty(t, log.Events)
	require.Empty(t, log.VuEvents)
}

func TestBuilder_Errors(t *testing.T) {
	long := make([]byte, 257)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name string
		add  func(b *Builder) error
	}{
		{"ocp statistic", func(b *Builder) error { return b.AddStatistic(0x0005, "x") }},
		{"fixed class event", func(b *Builder) error { return b.AddEvent(format.ClassNVMe, 1, "x") }},
		{"vendor class VU event", func(b *Builder) error { return b.AddVuEvent(0x80, 1, "x") }},
		{"snapshot VU event", func(b *Builder) error { return b.AddVuEvent(format.ClassSnapshot, 1, "x") }},
		{"empty name", func(b *Builder) error { return b.AddStatistic(0x8000, "") }},
		{"long name", func(b *Builder) error { return b.AddStatistic(0x8000, string(long)) }},
		{"non ascii name", func(b *Builder) error { return b.AddStatistic(0x8000, "café") }},
		{"fifo zero", func(b *Builder) error { return b.SetFifoName(0, "x") }},
		{"fifo 17", func(b *Builder) error { return b.SetFifoName(17, "x") }},
		{"fifo name too long", func(b *Builder) error { return b.SetFifoName(1, "Name of FIFO 1234") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.add(NewBuilder()), errs.ErrConfig)
		})
	}

	b := NewBuilder()
	require.NoError(t, b.SetFifoName(3, "fé"))
	_, err := b.Build()
	require.ErrorIs(t, err, errs.ErrConfig)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T, b []byte) []byte
		wantErr error
	}{
		{
			name:    "version 2",
			mutate:  func(_ *testing.T, b []byte) []byte { b[0] = 2; return b },
			wantErr: errs.ErrStructural,
		},
		{
			name:    "guid",
			mutate:  func(_ *testing.T, b []byte) []byte { b[20] ^= 0xFF; return b },
			wantErr: errs.ErrStructural,
		},
		{
			name:    "truncated",
			mutate:  func(_ *testing.T, b []byte) []byte { return b[:len(b)-4] },
			wantErr: errs.ErrStructural,
		},
		{
			name:    "header reserved",
			mutate:  func(_ *testing.T, b []byte) []byte { b[400] = 1; return b },
			wantErr: errs.ErrReservedField,
		},
		{
			name: "duplicate statistic 0x8005",
			mutate: func(_ *testing.T, b []byte) []byte {
				binary.LittleEndian.PutUint16(b[statsOffset+16:], 0x8005)
				return b
			},
			wantErr: errs.ErrOrdering,
		},
		{
			name: "unsorted statistics",
			mutate: func(_ *testing.T, b []byte) []byte {
				binary.LittleEndian.PutUint16(b[statsOffset+16:], 0x8004)
				return b
			},
			wantErr: errs.ErrOrdering,
		},
		{
			name: "statistic below 8000h",
			mutate: func(_ *testing.T, b []byte) []byte {
				binary.LittleEndian.PutUint16(b[statsOffset:], 0x0005)
				return b
			},
			wantErr: errs.ErrRange,
		},
		{
			name: "event class below 80h",
			mutate: func(t *testing.T, b []byte) []byte {
				hdr, err := section.ParseStringsHeader(b)
				require.NoError(t, err)
				b[hdr.Events.Start*4] = 0x7F
				return b
			},
			wantErr: errs.ErrRange,
		},
		{
			name: "VU event snapshot class",
			mutate: func(t *testing.T, b []byte) []byte {
				hdr, err := section.ParseStringsHeader(b)
				require.NoError(t, err)
				b[hdr.VuEvents.Start*4] = byte(format.ClassSnapshot)
				return b
			},
			wantErr: errs.ErrRange,
		},
		{
			name:    "entry reserved",
			mutate:  func(_ *testing.T, b []byte) []byte { b[statsOffset+2] = 1; return b },
			wantErr: errs.ErrReservedField,
		},
		{
			name: "name offset outside ASCII table",
			mutate: func(_ *testing.T, b []byte) []byte {
				binary.LittleEndian.PutUint64(b[statsOffset+4:], 0x1000)
				return b
			},
			wantErr: errs.ErrStructural,
		},
		{
			name: "name length overruns ASCII table",
			mutate: func(t *testing.T, b []byte) []byte {
				hdr, err := section.ParseStringsHeader(b)
				require.NoError(t, err)
				b[hdr.VuEvents.Start*4+3] = 0xFF
				return b
			},
			wantErr: errs.ErrStructural,
		},
		{
			name: "name padding",
			mutate: func(t *testing.T, b []byte) []byte {
				log, err := Decode(b)
				require.NoError(t, err)
				vu := log.VuEvents[0]
				b[int(log.Header.ASCII.Start+vu.OffsetDw)*4+3] = 0
				return b
			},
			wantErr: errs.ErrPadding,
		},
		{
			name: "events table not chained",
			mutate: func(_ *testing.T, b []byte) []byte {
				binary.LittleEndian.PutUint64(b[80:], binary.LittleEndian.Uint64(b[80:])+4)
				return b
			},
			wantErr: errs.ErrStructural,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.mutate(t, buildTestLog(t)))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
