package section

import (
	"testing"

	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/stretchr/testify/require"
)

// newChainedHeader lays out statistics, event and VU event tables of the
// given entry counts followed by an ASCII table of asciiDw dwords.
func newChainedHeader(stats, events, vu, asciiDw uint64) *StringsHeader {
	h := NewStringsHeader()
	entryDw := uint64(StringEntrySize / 4)
	h.Statistics = TableLocation{Start: StringsHeaderSizeDw, Size: stats * entryDw}
	h.Events = TableLocation{Start: h.Statistics.End(), Size: events * entryDw}
	h.VuEvents = TableLocation{Start: h.Events.End(), Size: vu * entryDw}
	h.ASCII = TableLocation{Start: h.VuEvents.End(), Size: asciiDw}
	h.SizeDw = h.ASCII.End()

	return h
}

func TestStringsHeader_RoundTrip(t *testing.T) {
	h := newChainedHeader(2, 1, 3, 20)
	h.FifoNames[0] = "Host FIFO"
	h.FifoNames[15] = "0123456789ABCDEF"

	data, err := h.Bytes()
	require.NoError(t, err)
	require.Len(t, data, StringsHeaderSize)
	require.Equal(t, StringsLogGUID[:], data[16:32])
	require.Equal(t, "Host FIFO\x00", string(data[128:138]))
	require.Equal(t, "0123456789ABCDEF", string(data[368:384]))

	parsed, err := ParseStringsHeader(data)
	require.NoError(t, err)
	require.Equal(t, *h, parsed)
	require.NoError(t, parsed.Validate(int(h.SizeDw)*4))
}

func TestStringsHeader_Parse(t *testing.T) {
	valid := func(t *testing.T) []byte {
		data, err := newChainedHeader(1, 1, 1, 4).Bytes()
		require.NoError(t, err)

		return data
	}

	tests := []struct {
		name    string
		mutate  func(b []byte) []byte
		wantErr error
	}{
		{"short buffer", func(b []byte) []byte { return b[:431] }, errs.ErrStructural},
		{"version 2", func(b []byte) []byte { b[0] = 2; return b }, errs.ErrStructural},
		{"reserved byte 15", func(b []byte) []byte { b[15] = 1; return b }, errs.ErrReservedField},
		{"guid", func(b []byte) []byte { b[16] ^= 0xFF; return b }, errs.ErrStructural},
		{"reserved byte 63", func(b []byte) []byte { b[63] = 1; return b }, errs.ErrReservedField},
		{"fifo name after terminator", func(b []byte) []byte { b[128] = 'A'; b[130] = 'B'; return b }, errs.ErrPadding},
		{"fifo name not ascii", func(b []byte) []byte { b[144] = 0xE9; return b }, errs.ErrRange},
		{"reserved byte 400", func(b []byte) []byte { b[400] = 1; return b }, errs.ErrReservedField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStringsHeader(tt.mutate(valid(t)))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStringsHeader_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		h := newChainedHeader(3, 2, 1, 10)
		require.NoError(t, h.Validate(int(h.SizeDw)*4))
	})

	t.Run("empty tables", func(t *testing.T) {
		h := newChainedHeader(0, 0, 0, 0)
		require.NoError(t, h.Validate(StringsHeaderSize))
	})

	t.Run("size mismatch", func(t *testing.T) {
		h := newChainedHeader(1, 1, 1, 4)
		require.ErrorIs(t, h.Validate(int(h.SizeDw)*4+4), errs.ErrStructural)
	})

	t.Run("statistics start", func(t *testing.T) {
		h := newChainedHeader(1, 0, 0, 4)
		h.Statistics.Start++
		require.ErrorIs(t, h.Validate(int(h.SizeDw)*4), errs.ErrStructural)
	})

	t.Run("events not chained", func(t *testing.T) {
		h := newChainedHeader(1, 1, 0, 4)
		h.Events.Start += 4
		require.ErrorIs(t, h.Validate(int(h.SizeDw)*4), errs.ErrStructural)
	})

	t.Run("partial entry", func(t *testing.T) {
		h := newChainedHeader(1, 0, 0, 4)
		h.Statistics.Size = 5
		h.ASCII.Start = h.Statistics.End()
		h.SizeDw = h.ASCII.End()
		require.ErrorIs(t, h.Validate(int(h.SizeDw)*4), errs.ErrStructural)
	})

	t.Run("ascii start", func(t *testing.T) {
		h := newChainedHeader(1, 1, 1, 4)
		h.ASCII.Start++
		require.ErrorIs(t, h.Validate(int(h.SizeDw)*4), errs.ErrStructural)
	})

	t.Run("ascii overruns", func(t *testing.T) {
		h := newChainedHeader(1, 1, 1, 4)
		h.ASCII.Size += 4
		require.ErrorIs(t, h.Validate(int(h.SizeDw)*4), errs.ErrStructural)
	})
}

func TestStringEntry(t *testing.T) {
	t.Run("statistic", func(t *testing.T) {
		e := StringEntry{ID: 0x8005, Length: 256, OffsetDw: 12}
		b := e.StatisticBytes()
		require.Equal(t, []byte{0x05, 0x80, 0, 0xFF, 12, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, b)

		parsed, err := ParseStatisticEntry(b)
		require.NoError(t, err)
		require.Equal(t, e, parsed)

		b[2] = 1
		_, err = ParseStatisticEntry(b)
		require.ErrorIs(t, err, errs.ErrReservedField)
	})

	t.Run("event", func(t *testing.T) {
		e := StringEntry{Class: 0x80, ID: 0x1234, Length: 1, OffsetDw: 3}
		b := e.EventBytes()
		require.Equal(t, []byte{0x80, 0x34, 0x12, 0x00}, b[0:4])

		parsed, err := ParseEventEntry(b)
		require.NoError(t, err)
		require.Equal(t, e, parsed)

		b[15] = 1
		_, err = ParseEventEntry(b)
		require.ErrorIs(t, err, errs.ErrReservedField)

		_, err = ParseEventEntry(b[:15])
		require.ErrorIs(t, err, errs.ErrStructural)
	})
}
