// Package config loads the YAML description of a telemetry log to generate.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/section"
	"github.com/opencomputeproject/ocp-telemetry/statistic"
)

// TimestampConfig seeds the generator clock.
type TimestampConfig struct {
	StartTime uint64 `yaml:"start_time"` // milliseconds, incremented per timestamp
}

// ProfilesConfig is reported in the Data Area 1 header.
type ProfilesConfig struct {
	Count    uint8 `yaml:"count"`
	Selected uint8 `yaml:"selected"`
}

// DataAreasConfig holds the data area sizes in bytes.
type DataAreasConfig struct {
	Area1Size uint64 `yaml:"area1_size"`
	Area2Size uint64 `yaml:"area2_size"`
	Area3Size uint64 `yaml:"area3_size"`
	Area4Size uint64 `yaml:"area4_size"`
}

// Sizes returns the four sizes in area order.
func (d DataAreasConfig) Sizes() [4]uint64 {
	return [4]uint64{d.Area1Size, d.Area2Size, d.Area3Size, d.Area4Size}
}

// Statistic describes one statistic to report. The value is drawn between
// value_min and value_max.
type Statistic struct {
	Name         string `yaml:"name"`
	Identifier   uint16 `yaml:"identifier"`
	ValueMin     uint64 `yaml:"value_min"`
	ValueMax     uint64 `yaml:"value_max"`
	DwordSize    uint16 `yaml:"dword_size"`
	BehaviorType uint8  `yaml:"behavior_type"`
	Namespace    int    `yaml:"namespace"`
	Requirement  string `yaml:"requirement,omitempty"`
	Definition   string `yaml:"definition,omitempty"` // strings log name of a vendor statistic
	DataArea     uint8  `yaml:"data_area"`
}

// Spec converts the entry to a statistic.Spec.
func (s Statistic) Spec() statistic.Spec {
	return statistic.Spec{
		Name:        s.Name,
		ID:          s.Identifier,
		Min:         s.ValueMin,
		Max:         s.ValueMax,
		DwordLength: s.DwordSize,
		Behavior:    format.BehaviorType(s.BehaviorType),
		Namespace:   s.Namespace,
		Area:        format.DataArea(s.DataArea),
		Requirement: s.Requirement,
		Definition:  s.Definition,
	}
}

// VendorConfig lists vendor unique statistics.
type VendorConfig struct {
	Specific     []Statistic `yaml:"specific"`
	RandomFields int         `yaml:"random_fields"` // extra statistics with random identifiers
}

// StatisticsConfig lists the statistics to report.
type StatisticsConfig struct {
	OCP    []Statistic  `yaml:"ocp"`
	Vendor VendorConfig `yaml:"vendor"`
}

// Fifo describes one debug event FIFO. A zero size leaves the FIFO out.
type Fifo struct {
	Number    int    `yaml:"number"`
	Name      string `yaml:"name"`
	Size      uint64 `yaml:"size"` // bytes
	MaxEvents int    `yaml:"max_events"`
	DataArea  uint8  `yaml:"data_area"`
}

// Config describes a telemetry log to generate.
type Config struct {
	Timestamp  TimestampConfig  `yaml:"timestamp"`
	Profiles   ProfilesConfig   `yaml:"profiles"`
	DataAreas  DataAreasConfig  `yaml:"data_areas"`
	Namespaces int              `yaml:"namespaces"`
	Statistics StatisticsConfig `yaml:"statistics"`
	Fifos      []Fifo           `yaml:"fifos"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes and validates a YAML configuration. Unknown keys are
// rejected.
//
// Returns:
//   - *Config: the validated configuration
//   - error: wraps errs.ErrConfig
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: parse YAML: %w", errs.ErrConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return data, nil
}

// Specs returns the configured statistics, OCP entries first.
func (c *Config) Specs() []statistic.Spec {
	specs := make([]statistic.Spec, 0, len(c.Statistics.OCP)+len(c.Statistics.Vendor.Specific))
	for _, s := range c.Statistics.OCP {
		specs = append(specs, s.Spec())
	}
	for _, s := range c.Statistics.Vendor.Specific {
		specs = append(specs, s.Spec())
	}

	return specs
}

// Validate checks the configuration.
//
// Returns:
//   - error: errs.ErrConfig naming the offending entry
func (c *Config) Validate() error {
	if c.Timestamp.StartTime > section.TimestampMax {
		return fmt.Errorf("%w: timestamp start_time %d exceeds 48 bits", errs.ErrConfig, c.Timestamp.StartTime)
	}
	if c.Profiles.Selected > c.Profiles.Count {
		return fmt.Errorf("%w: selected profile %d exceeds %d profiles", errs.ErrConfig, c.Profiles.Selected, c.Profiles.Count)
	}
	if c.Namespaces < 0 || c.Namespaces > statistic.MaxNamespace {
		return fmt.Errorf("%w: namespaces %d not in 0..%d", errs.ErrConfig, c.Namespaces, statistic.MaxNamespace)
	}
	if err := c.validateDataAreas(); err != nil {
		return err
	}
	if err := c.validateStatistics(); err != nil {
		return err
	}

	return c.validateFifos()
}

func (c *Config) validateDataAreas() error {
	if c.DataAreas.Area1Size != section.DataArea1Size {
		return fmt.Errorf("%w: data area 1 size %d, must be %d", errs.ErrConfig, c.DataAreas.Area1Size, section.DataArea1Size)
	}
	for i, size := range c.DataAreas.Sizes() {
		if size%section.BlockSize != 0 {
			return fmt.Errorf("%w: data area %d size %d is not a multiple of %d", errs.ErrConfig, i+1, size, section.BlockSize)
		}
	}

	var h section.TelemetryHeader

	return h.SetAreaSizes(c.DataAreas.Sizes())
}

func (c *Config) validateStatistics() error {
	seen := make(map[uint16]string)
	check := func(kind string, s Statistic, idOK func(uint16) bool) error {
		if !idOK(s.Identifier) {
			return fmt.Errorf("%w: %s statistic %q identifier 0x%04x", errs.ErrConfig, kind, s.Name, s.Identifier)
		}
		if other, dup := seen[s.Identifier]; dup {
			return fmt.Errorf("%w: statistics %q and %q share identifier 0x%04x", errs.ErrConfig, other, s.Name, s.Identifier)
		}
		seen[s.Identifier] = s.Name

		spec := s.Spec()

		return spec.Validate(c.Namespaces)
	}

	for _, s := range c.Statistics.OCP {
		if err := check("OCP", s, statistic.IsOCP); err != nil {
			return err
		}
	}
	for _, s := range c.Statistics.Vendor.Specific {
		if err := check("vendor", s, statistic.IsVendor); err != nil {
			return err
		}
	}

	if n := c.Statistics.Vendor.RandomFields; n < 0 {
		return fmt.Errorf("%w: random_fields %d", errs.ErrConfig, n)
	}

	return nil
}

func (c *Config) validateFifos() error {
	var seen [section.FifoCount]bool
	for _, f := range c.Fifos {
		if f.Number < 1 || f.Number > section.FifoCount {
			return fmt.Errorf("%w: FIFO number %d not in 1..%d", errs.ErrConfig, f.Number, section.FifoCount)
		}
		if seen[f.Number-1] {
			return fmt.Errorf("%w: FIFO %d is listed twice", errs.ErrConfig, f.Number)
		}
		seen[f.Number-1] = true

		var name [section.FifoNameSize]byte
		if err := encoding.PutFixedASCII(name[:], f.Name); err != nil {
			return fmt.Errorf("FIFO %d name: %w", f.Number, err)
		}
		if f.Size%encoding.DwordSize != 0 {
			return fmt.Errorf("%w: FIFO %d size %d is not a multiple of %d", errs.ErrConfig, f.Number, f.Size, encoding.DwordSize)
		}
		if f.MaxEvents < 0 {
			return fmt.Errorf("%w: FIFO %d max_events %d", errs.ErrConfig, f.Number, f.MaxEvents)
		}
		if f.Size > 0 && f.DataArea != uint8(format.Area1) && f.DataArea != uint8(format.Area2) {
			return fmt.Errorf("%w: FIFO %d data area %d", errs.ErrConfig, f.Number, f.DataArea)
		}
	}

	return nil
}
