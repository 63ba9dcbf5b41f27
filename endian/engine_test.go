package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()
	require.Equal(t, binary.LittleEndian, engine)

	buf := engine.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)
	require.Equal(t, uint32(0x01020304), engine.Uint32(buf))
}

func TestUint24(t *testing.T) {
	b := make([]byte, 3)
	PutUint24(b, 0xABCDEF)
	require.Equal(t, []byte{0xEF, 0xCD, 0xAB}, b)
	require.Equal(t, uint32(0xABCDEF), Uint24(b))

	PutUint24(b, 0xFF123456)
	require.Equal(t, uint32(0x123456), Uint24(b))
}

func TestUint48(t *testing.T) {
	tests := []struct {
		name string
		in   uint64
		want uint64
	}{
		{"zero", 0, 0},
		{"small", 0x1234, 0x1234},
		{"max", 1<<48 - 1, 1<<48 - 1},
		{"truncated", 1<<48 | 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := make([]byte, 6)
			PutUint48(b, tt.in)
			require.Equal(t, tt.want, Uint48(b))
		})
	}
}

func TestUintN(t *testing.T) {
	t.Run("widths", func(t *testing.T) {
		for width := 1; width <= 8; width++ {
			b := make([]byte, width)
			v := uint64(0x0102030405060708) >> (8 * (8 - width))
			PutUintN(b, v)
			require.Equal(t, v, UintN(b), "width %d", width)
		}
	})

	t.Run("wide field zero-fills upper bytes", func(t *testing.T) {
		b := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
		PutUintN(b, 7)
		require.Equal(t, []byte{7, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, b)
		require.Equal(t, uint64(7), UintN(b))
	})

	t.Run("empty", func(t *testing.T) {
		require.Equal(t, uint64(0), UintN(nil))
	})
}
