package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		sum  uint64
	}{
		{"empty", nil, 0xef46db3751d8e999},
		{"short", []byte("test"), 0x4fdcca5ddb678139},
		{"longer", []byte("this is a longer test string to hash"), 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.sum, Sum(tt.data))
		})
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("telemetry"), []byte("strings"))
	require.Equal(t, a, Fingerprint([]byte("telemetry"), []byte("strings")))
	require.NotEqual(t, a, Fingerprint([]byte("telemetr"), []byte("ystrings")))
	require.NotEqual(t, a, Fingerprint([]byte("strings"), []byte("telemetry")))
	require.NotEqual(t, Fingerprint(), Fingerprint(nil))
}
