package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/stretchr/testify/require"
)

const smallConfig = `
timestamp:
  start_time: 5000
profiles:
  count: 4
  selected: 1
data_areas:
  area1_size: 16384
  area2_size: 4096
  area3_size: 512
  area4_size: 0
namespaces: 1
statistics:
  ocp:
    - name: Active Namespaces
      identifier: 4
      value_min: 1
      value_max: 1
      dword_size: 1
      behavior_type: 1
      namespace: 0
      data_area: 1
  vendor:
    specific:
      - name: Vendor ID 5
        identifier: 0x8005
        value_min: 0
        value_max: 10
        dword_size: 2
        behavior_type: 4
        namespace: 1
        definition: Vendor defined 5
        data_area: 2
    random_fields: 3
fifos:
  - number: 1
    name: Host Events
    size: 512
    max_events: 10
    data_area: 1
  - number: 9
    name: Media Events
    size: 256
    max_events: 0
    data_area: 2
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(smallConfig), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint64(5000), cfg.Timestamp.StartTime)
	require.Equal(t, ProfilesConfig{Count: 4, Selected: 1}, cfg.Profiles)
	require.Equal(t, [4]uint64{16384, 4096, 512, 0}, cfg.DataAreas.Sizes())
	require.Len(t, cfg.Statistics.OCP, 1)
	require.Equal(t, uint16(0x8005), cfg.Statistics.Vendor.Specific[0].Identifier)
	require.Equal(t, 3, cfg.Statistics.Vendor.RandomFields)
	require.Len(t, cfg.Fifos, 2)
	require.Equal(t, "Media Events", cfg.Fifos[1].Name)

	specs := cfg.Specs()
	require.Len(t, specs, 2)
	require.Equal(t, format.Area2, specs[1].Area)
	require.Equal(t, "Vendor defined 5", specs[1].Definition)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Statistics.OCP, 29)
	require.Len(t, cfg.Statistics.Vendor.Specific, 3)
	require.Len(t, cfg.Fifos, 16)
	require.Equal(t, "Active Namespaces", cfg.Statistics.OCP[3].Name)
	require.Equal(t, uint16(2), cfg.Statistics.OCP[26].DwordSize)
	require.Equal(t, "STATI-30", cfg.Statistics.OCP[28].Requirement)
	require.Equal(t, uint8(format.Area2), cfg.Fifos[1].DataArea)
	require.Equal(t, uint8(format.Area1), cfg.Fifos[15].DataArea)
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := Default()
	data, err := cfg.Marshal()
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, cfg, parsed)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("timestamp:\n  start_time: 1\nbogus: 3\n"))
	require.ErrorIs(t, err, errs.ErrConfig)

	_, err = Parse([]byte("namespaces: [1, 2]\n"))
	require.ErrorIs(t, err, errs.ErrConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"timestamp", func(c *Config) { c.Timestamp.StartTime = 1 << 48 }},
		{"selected profile", func(c *Config) { c.Profiles.Selected = 11 }},
		{"namespaces", func(c *Config) { c.Namespaces = 128 }},
		{"data area 1 size", func(c *Config) { c.DataAreas.Area1Size = 8192 }},
		{"data area 2 alignment", func(c *Config) { c.DataAreas.Area2Size = 1000 }},
		{"data area 4 last block", func(c *Config) { c.DataAreas.Area3Size = 1 << 25 }},
		{"ocp identifier", func(c *Config) { c.Statistics.OCP[0].Identifier = 0x8001 }},
		{"ocp dword size", func(c *Config) { c.Statistics.OCP[0].DwordSize = 2 }},
		{"behavior type", func(c *Config) { c.Statistics.OCP[0].BehaviorType = 7 }},
		{"namespace", func(c *Config) { c.Statistics.OCP[0].Namespace = 3 }},
		{"range", func(c *Config) { c.Statistics.OCP[0].ValueMin = 20000 }},
		{"statistic data area", func(c *Config) { c.Statistics.OCP[0].DataArea = 3 }},
		{"duplicate identifier", func(c *Config) { c.Statistics.Vendor.Specific[1].Identifier = 0x8000 }},
		{"vendor identifier", func(c *Config) { c.Statistics.Vendor.Specific[0].Identifier = 0x20 }},
		{"vendor definition", func(c *Config) { c.Statistics.Vendor.Specific[0].Definition = "" }},
		{"random fields", func(c *Config) { c.Statistics.Vendor.RandomFields = -1 }},
		{"fifo number", func(c *Config) { c.Fifos[0].Number = 17 }},
		{"fifo duplicate", func(c *Config) { c.Fifos[1].Number = 1 }},
		{"fifo name", func(c *Config) { c.Fifos[0].Name = "A FIFO name that is too long" }},
		{"fifo size", func(c *Config) { c.Fifos[0].Size = 1022 }},
		{"fifo max events", func(c *Config) { c.Fifos[0].MaxEvents = -1 }},
		{"fifo data area", func(c *Config) { c.Fifos[0].DataArea = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), errs.ErrConfig)
		})
	}

	cfg := Default()
	cfg.Fifos[0].Size = 0
	cfg.Fifos[0].DataArea = 0
	require.NoError(t, cfg.Validate())
}
