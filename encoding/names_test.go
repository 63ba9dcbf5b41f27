package encoding

import (
	"strings"
	"testing"

	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/stretchr/testify/require"
)

func TestNameBlob(t *testing.T) {
	nb := NewNameBlob()
	defer nb.Release()

	off, err := nb.Append("abc")
	require.NoError(t, err)
	require.Equal(t, uint64(0), off)

	off, err = nb.Append("wxyz")
	require.NoError(t, err)
	require.Equal(t, uint64(1), off)

	off, err = nb.Append("q")
	require.NoError(t, err)
	require.Equal(t, uint64(2), off)

	require.Equal(t, []byte("abc wxyzq   "), nb.Bytes())
	require.Equal(t, 12, nb.Len())

	t.Run("invalid names", func(t *testing.T) {
		_, err := nb.Append("")
		require.ErrorIs(t, err, errs.ErrConfig)

		_, err = nb.Append(strings.Repeat("n", MaxNameLength+1))
		require.ErrorIs(t, err, errs.ErrConfig)

		_, err = nb.Append("café")
		require.ErrorIs(t, err, errs.ErrConfig)
	})

	t.Run("max length accepted", func(t *testing.T) {
		require.NoError(t, ValidateName(strings.Repeat("n", MaxNameLength)))
	})
}

func TestReadName(t *testing.T) {
	blob := []byte("abc wxyzq   ")

	name, err := ReadName("stat", blob, 0, 3)
	require.NoError(t, err)
	require.Equal(t, "abc", name)

	name, err = ReadName("stat", blob, 1, 4)
	require.NoError(t, err)
	require.Equal(t, "wxyz", name)

	name, err = ReadName("stat", blob, 2, 1)
	require.NoError(t, err)
	require.Equal(t, "q", name)

	t.Run("name ending at blob end", func(t *testing.T) {
		name, err := ReadName("stat", []byte("wxyz"), 0, 4)
		require.NoError(t, err)
		require.Equal(t, "wxyz", name)
	})

	t.Run("offset outside blob", func(t *testing.T) {
		_, err := ReadName("stat", blob, 3, 1)
		require.ErrorIs(t, err, errs.ErrStructural)
	})

	t.Run("length outside blob", func(t *testing.T) {
		_, err := ReadName("stat", blob, 2, 5)
		require.ErrorIs(t, err, errs.ErrStructural)
	})

	t.Run("bad padding", func(t *testing.T) {
		bad := []byte("abc\x00")
		_, err := ReadName("stat", bad, 0, 3)
		require.ErrorIs(t, err, errs.ErrPadding)
	})
}

func TestFixedASCII(t *testing.T) {
	dst := make([]byte, 8)
	require.NoError(t, PutFixedASCII(dst, "FIRM"))
	require.Equal(t, []byte{'F', 'I', 'R', 'M', 0, 0, 0, 0}, dst)

	s, err := FixedASCII("fw", dst)
	require.NoError(t, err)
	require.Equal(t, "FIRM", s)

	full := []byte("FIRM: XX")
	s, err = FixedASCII("fw", full)
	require.NoError(t, err)
	require.Equal(t, "FIRM: XX", s)

	_, err = FixedASCII("fw", []byte{'A', 0, 'B', 0})
	require.ErrorIs(t, err, errs.ErrPadding)

	require.ErrorIs(t, PutFixedASCII(make([]byte, 2), "abc"), errs.ErrConfig)
	require.ErrorIs(t, PutFixedASCII(make([]byte, 4), "ÿ"), errs.ErrConfig)
	require.ErrorIs(t, CheckFixedASCII("FIRMWARE1", 8), errs.ErrConfig)
	require.NoError(t, CheckFixedASCII("FIRMWARE", 8))
}

func TestFixedASCII_NonASCII(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"first byte", []byte{0x80, 'B', 0, 0}},
		{"last byte of full field", []byte{'A', 'B', 'C', 0xFF}},
		{"before padding", []byte{'A', 0xC3, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FixedASCII("fw", tt.data)
			require.ErrorIs(t, err, errs.ErrRange)
		})
	}
}
