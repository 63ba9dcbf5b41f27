package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventClass(t *testing.T) {
	tests := []struct {
		class  EventClass
		name   string
		fixed  bool
		valid  bool
		vendor bool
	}{
		{ClassNone, "Reserved", false, false, false},
		{ClassTimestamp, "Timestamp", true, true, false},
		{ClassMedia, "Media", true, true, false},
		{ClassMediaWear, "Media Wear", true, true, false},
		{ClassSnapshot, "Static Snapshot", false, true, false},
		{0x0B, "Invalid 0x0B", false, false, false},
		{0x7F, "Invalid 0x7F", false, false, false},
		{0x80, "Vendor Unique 0x80", false, true, true},
		{0xFF, "Vendor Unique 0xFF", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.name, tt.class.String())
			require.Equal(t, tt.fixed, tt.class.IsFixed())
			require.Equal(t, tt.valid, tt.class.IsValid())
			require.Equal(t, tt.vendor, tt.class.IsVendorUnique())
		})
	}
}

func TestParseCompressionType(t *testing.T) {
	for name, want := range map[string]CompressionType{
		"":     CompressionNone,
		"none": CompressionNone,
		"ZSTD": CompressionZstd,
		"s2":   CompressionS2,
		"lz4":  CompressionLZ4,
	} {
		got, err := ParseCompressionType(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseCompressionType("brotli")
	require.Error(t, err)
}

func TestLogKindAndBehavior(t *testing.T) {
	require.True(t, LogHostInitiated.IsValid())
	require.True(t, LogControllerInitiated.IsValid())
	require.False(t, LogKind(6).IsValid())
	require.Equal(t, "Unknown", LogKind(9).String())

	require.False(t, BehaviorNone.IsValid())
	require.True(t, Behavior6.IsValid())
	require.False(t, BehaviorType(7).IsValid())
	require.Equal(t, "Invalid", BehaviorType(9).String())

	require.Equal(t, "Data Area 2", Area2.String())
	require.Equal(t, "NVM subsystem", ScopeSubsystem.String())
}
