package telemetry

import (
	"math/rand/v2"
	"testing"

	"github.com/opencomputeproject/ocp-telemetry/config"
	"github.com/opencomputeproject/ocp-telemetry/endian"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/section"
	"github.com/opencomputeproject/ocp-telemetry/statistic"
	"github.com/opencomputeproject/ocp-telemetry/stringslog"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, cfg *config.Config, opts ...Option) ([]byte, []byte) {
	t.Helper()

	enc, err := NewEncoder(opts...)
	require.NoError(t, err)
	tel, strs, err := enc.Encode(cfg)
	require.NoError(t, err)

	return tel, strs
}

// activeNamespacesConfig reports one statistic pinned to 1 and one empty
// FIFO.
func activeNamespacesConfig() *config.Config {
	return &config.Config{
		Timestamp:  config.TimestampConfig{StartTime: 1000},
		Profiles:   config.ProfilesConfig{Count: 1, Selected: 1},
		DataAreas:  config.DataAreasConfig{Area1Size: section.DataArea1Size},
		Namespaces: 1,
		Statistics: config.StatisticsConfig{
			OCP: []config.Statistic{{
				Name:         "Active Namespaces",
				Identifier:   statistic.IDActiveNamespaces,
				ValueMin:     1,
				ValueMax:     1,
				DwordSize:    1,
				BehaviorType: uint8(format.Behavior1),
				DataArea:     uint8(format.Area1),
			}},
		},
		Fifos: []config.Fifo{{Number: 1, Name: "Empty", Size: 0}},
	}
}

func TestEncode_ActiveNamespaces(t *testing.T) {
	tel, strs := encode(t, activeNamespacesConfig(), WithSeed(7))
	require.Len(t, tel, section.TelemetryHeaderSize+section.DataArea1Size)

	log, err := DecodePair(tel, strs)
	require.NoError(t, err)

	require.Len(t, log.Area1.Statistics, 1)
	d := log.Area1.Statistics[0]
	require.Equal(t, statistic.IDActiveNamespaces, d.ID)
	require.Equal(t, uint64(1), d.Uint64())
	require.Empty(t, log.Area2.Statistics)

	for i, loc := range log.Area1.Header.Fifos {
		require.Equal(t, format.AreaNone, loc.Area, "FIFO %d", i+1)
	}
	require.Empty(t, log.Fifos())
	require.Equal(t, "Empty", log.Strings.FifoName(1))
	require.Empty(t, log.Area3)
	require.Empty(t, log.Area4)
}

func TestEncode_DefaultRoundTrip(t *testing.T) {
	cfg := config.Default()
	tel, strs := encode(t, cfg, WithSeed(20240601))

	log, err := DecodePair(tel, strs)
	require.NoError(t, err)

	require.Equal(t, len(tel), log.Header.LogSize())
	require.Equal(t, format.LogHostInitiated, log.Header.Kind)
	require.Equal(t, DefaultOUI, log.Header.OUI)
	require.Equal(t, "This is the reason for the host initiated dump", log.Header.Reason.ErrorText())

	h := log.Area1.Header
	require.Equal(t, cfg.Profiles.Count, h.Profiles)
	require.Equal(t, cfg.Profiles.Selected, h.SelectedProfile)
	require.Equal(t, DefaultFirmwareVersion, h.FirmwareVersion)
	require.Equal(t, uint64(len(strs)/4), h.StringLogSizeDw)
	require.Greater(t, h.Timestamp.Millis, cfg.Timestamp.StartTime)

	// Every configured statistic decodes in its area.
	for _, s := range cfg.Specs() {
		d, area, ok := log.Statistic(s.ID)
		require.True(t, ok, "statistic 0x%04x", s.ID)
		require.Equal(t, s.Area, area)
		if !statistic.IsBadBlock(s.ID) {
			require.GreaterOrEqual(t, d.Uint64(), s.Min)
			require.LessOrEqual(t, d.Uint64(), s.Max)
		}
	}
	total := len(log.Area1.Statistics) + len(log.Area2.Statistics)
	require.Equal(t, len(cfg.Specs())+cfg.Statistics.Vendor.RandomFields, total)

	host, _, _ := log.Statistic(statistic.IDHostWriteBandwidth)
	gc, _, _ := log.Statistic(statistic.IDGCWriteBandwidth)
	require.Equal(t, uint64(100), host.Uint64()+gc.Uint64())

	fifos := log.Fifos()
	require.Len(t, fifos, section.FifoCount)
	for i, f := range fifos {
		fc := cfg.Fifos[i]
		require.Equal(t, fc.Number, f.Index)
		require.Equal(t, format.DataArea(fc.DataArea), f.Area)
		require.Equal(t, fc.Name, f.Name)
		require.Equal(t, fc.Size, uint64(f.Size()))
		require.NotEmpty(t, f.Events)
		require.LessOrEqual(t, len(f.Events), fc.MaxEvents)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	cfg := config.Default()

	enc, err := NewEncoder(WithSeed(99))
	require.NoError(t, err)
	require.Equal(t, uint64(99), enc.Seed())

	tel1, strs1, err := enc.Encode(cfg)
	require.NoError(t, err)
	tel2, strs2, err := enc.Encode(cfg)
	require.NoError(t, err)
	require.Equal(t, tel1, tel2)
	require.Equal(t, strs1, strs2)

	tel3, _ := encode(t, cfg, WithSeed(100))
	require.NotEqual(t, tel1, tel3)

	// A shared random source keeps advancing between calls.
	r := rand.New(rand.NewPCG(1, 2)) //nolint:gosec
	tel4, _ := encode(t, cfg, WithRand(r))
	tel5, _ := encode(t, cfg, WithRand(r))
	require.NotEqual(t, tel4, tel5)
}

func TestEncode_Options(t *testing.T) {
	reason := section.NewReason("thermal shutdown")
	reason.Line = 42
	reason.Flags = section.ReasonLineValid | section.ReasonErrorValid

	tel, strs := encode(t, activeNamespacesConfig(),
		WithSeed(3),
		WithLogKind(format.LogControllerInitiated),
		WithOUI([3]byte{0xAA, 0xBB, 0xCC}),
		WithFirmwareVersion("1.2.3"),
		WithReason(reason),
		WithLogger(nil),
	)
	require.Equal(t, byte(format.LogControllerInitiated), tel[0])
	require.Equal(t, byte(1), tel[382])

	log, err := DecodePair(tel, strs)
	require.NoError(t, err)
	require.Equal(t, [3]byte{0xAA, 0xBB, 0xCC}, log.Header.OUI)
	require.Equal(t, "1.2.3", log.Area1.Header.FirmwareVersion)
	require.Equal(t, reason, log.Header.Reason)
	require.Zero(t, log.Header.HostGeneration)

	tests := []struct {
		name string
		opt  Option
	}{
		{"log kind", WithLogKind(format.LogKind(2))},
		{"firmware too long", WithFirmwareVersion("123456789")},
		{"firmware not ASCII", WithFirmwareVersion("v\xe9")},
		{"nil rand", WithRand(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEncoder(tt.opt)
			require.ErrorIs(t, err, errs.ErrConfig)
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"invalid config", func(c *config.Config) { c.Namespaces = -1 }},
		{"data area 2 too small", func(c *config.Config) { c.DataAreas.Area2Size = section.BlockSize }},
		{"data area 1 too small", func(c *config.Config) {
			for i := range c.Fifos {
				c.Fifos[i].DataArea = uint8(format.Area1)
			}
		}},
		{"bandwidth cannot balance", func(c *config.Config) {
			for i := range c.Statistics.OCP {
				if c.Statistics.OCP[i].Identifier == statistic.IDGCWriteBandwidth {
					c.Statistics.OCP[i].ValueMin = 100
					c.Statistics.OCP[i].ValueMax = 100
				}
				if c.Statistics.OCP[i].Identifier == statistic.IDHostWriteBandwidth {
					c.Statistics.OCP[i].ValueMin = 50
				}
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			enc, err := NewEncoder(WithSeed(1))
			require.NoError(t, err)
			_, _, err = enc.Encode(cfg)
			require.ErrorIs(t, err, errs.ErrConfig)
		})
	}
}

// duplicateConfig reports Active Namespaces in Data Area 1 and statistic 1
// in Data Area 2, both one dword long.
func duplicateConfig() *config.Config {
	cfg := activeNamespacesConfig()
	cfg.DataAreas.Area2Size = section.BlockSize
	cfg.Statistics.OCP = append(cfg.Statistics.OCP, config.Statistic{
		Name:         statistic.OCPName(1),
		Identifier:   1,
		ValueMax:     10,
		DwordSize:    1,
		BehaviorType: uint8(format.Behavior1),
		DataArea:     uint8(format.Area2),
	})

	return cfg
}

func TestDecode_Errors(t *testing.T) {
	tel, strs := encode(t, config.Default(), WithSeed(5))
	dupTel, dupStrs := encode(t, duplicateConfig(), WithSeed(5))
	area2 := section.TelemetryHeaderSize + section.DataArea1Size

	emptyStrs, err := stringslog.NewBuilder().Build()
	require.NoError(t, err)

	tests := []struct {
		name    string
		tel     []byte
		strs    []byte
		mutate  func(tel, strs []byte) ([]byte, []byte)
		wantErr error
	}{
		{"short log", tel, strs, func(tl, s []byte) ([]byte, []byte) { return tl[:100], s }, errs.ErrStructural},
		{"truncated data area", tel, strs, func(tl, s []byte) ([]byte, []byte) { return tl[:len(tl)-512], s }, errs.ErrStructural},
		{"log identifier", tel, strs, func(tl, s []byte) ([]byte, []byte) { tl[0] = 6; return tl, s }, errs.ErrStructural},
		{"data area 1 size", tel, strs, func(tl, s []byte) ([]byte, []byte) {
			endian.GetLittleEndianEngine().PutUint16(tl[8:10], 31)
			return tl, s
		}, errs.ErrStructural},
		{"strings log version", tel, strs, func(tl, s []byte) ([]byte, []byte) { s[0] = 2; return tl, s }, errs.ErrStructural},
		{"strings log mismatch", tel, strs, func(tl, _ []byte) ([]byte, []byte) { return tl, emptyStrs }, errs.ErrCrossReference},
		{"statistic in both areas", dupTel, dupStrs, func(tl, s []byte) ([]byte, []byte) {
			endian.GetLittleEndianEngine().PutUint16(tl[area2:area2+2], statistic.IDActiveNamespaces)
			return tl, s
		}, errs.ErrOrdering},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl, s := tt.mutate(append([]byte(nil), tt.tel...), append([]byte(nil), tt.strs...))
			_, err := DecodePair(tl, s)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecode_StringsSizeMismatch(t *testing.T) {
	tel, strs := encode(t, activeNamespacesConfig(), WithSeed(11))

	b := stringslog.NewBuilder()
	require.NoError(t, b.AddStatistic(0x8001, "Unrelated statistic"))
	other, err := b.Build()
	require.NoError(t, err)
	require.NotEqual(t, len(strs), len(other))

	_, err = DecodePair(tel, other)
	require.ErrorIs(t, err, errs.ErrCrossReference)
}

func TestDecode_NilStrings(t *testing.T) {
	tel, _ := encode(t, activeNamespacesConfig(), WithSeed(11))
	log, err := Decode(tel, nil)
	require.NoError(t, err)
	require.Nil(t, log.Strings)

	tel, _ = encode(t, config.Default(), WithSeed(11))
	_, err = Decode(tel, nil)
	require.ErrorIs(t, err, errs.ErrCrossReference)
}

func TestDecode_OpaqueAreas(t *testing.T) {
	cfg := activeNamespacesConfig()
	cfg.DataAreas.Area3Size = 2 * section.BlockSize
	cfg.DataAreas.Area4Size = section.BlockSize

	tel, strs := encode(t, cfg, WithSeed(8))
	log, err := DecodePair(tel, strs)
	require.NoError(t, err)
	require.Equal(t, tel[len(tel)-3*section.BlockSize:len(tel)-section.BlockSize], log.Area3)
	require.Equal(t, tel[len(tel)-section.BlockSize:], log.Area4)
}
