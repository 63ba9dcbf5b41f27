package config

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/section"
	"github.com/opencomputeproject/ocp-telemetry/statistic"
)

// Sample configuration values.
const (
	DefaultStartTime    = 10203040506
	DefaultProfiles     = 10
	DefaultProfile      = 2
	DefaultArea2Size    = 16384
	DefaultNamespaces   = 2
	DefaultRandomFields = 100
	DefaultFifoSize     = 1024
	DefaultMaxEvents    = 40
)

// ocpDefault is the sample value range and behavior of an OCP statistic.
type ocpDefault struct {
	min, max uint64
	behavior format.BehaviorType
}

var ocpDefaults = [statistic.MaxOCPID + 1]ocpDefault{
	1:  {0, 16384, format.Behavior1},
	2:  {0, 100, format.Behavior1},
	3:  {0, 100, format.Behavior1},
	4:  {1, 128, format.Behavior1},
	5:  {0, 16384, format.Behavior5},
	6:  {0, 16384, format.Behavior5},
	7:  {0, 16384, format.Behavior5},
	8:  {0, 16384, format.Behavior5},
	9:  {0, 16384, format.Behavior5},
	10: {0, 32000, format.Behavior4},
	11: {0, 31, format.Behavior1},
	12: {0, 16384, format.Behavior1},
	13: {0, 16384, format.Behavior4},
	14: {0, 16384, format.Behavior4},
	15: {0, 16384, format.Behavior4},
	16: {0, 16384, format.Behavior4},
	17: {0, 16384, format.Behavior4},
	18: {0, 16384, format.Behavior4},
	19: {0, 16384, format.Behavior1},
	20: {0, 16384, format.Behavior4},
	21: {0, 16384, format.Behavior4},
	22: {0, 16384, format.Behavior4},
	23: {0, 16384, format.Behavior4},
	24: {0, 16384, format.Behavior4},
	25: {0, 16384, format.Behavior4},
	26: {0, 16384, format.Behavior4},
	27: {655370, 655370, format.Behavior4},
	28: {720907, 720907, format.Behavior4},
	29: {786444, 786444, format.Behavior4},
}

// FIFOs of the sample configuration placed in Data Area 2; the rest go to
// Data Area 1.
var defaultArea2Fifos = map[int]bool{2: true, 4: true, 5: true, 6: true, 8: true, 9: true}

// Default returns the sample configuration: every OCP statistic, three
// vendor statistics plus DefaultRandomFields random ones, and sixteen
// FIFOs split across Data Areas 1 and 2.
func Default() *Config {
	cfg := &Config{
		Timestamp: TimestampConfig{StartTime: DefaultStartTime},
		Profiles:  ProfilesConfig{Count: DefaultProfiles, Selected: DefaultProfile},
		DataAreas: DataAreasConfig{
			Area1Size: section.DataArea1Size,
			Area2Size: DefaultArea2Size,
		},
		Namespaces: DefaultNamespaces,
	}

	for id := uint16(1); id <= statistic.MaxOCPID; id++ {
		d := ocpDefaults[id]
		dw, _ := statistic.OCPDwordLength(id)
		cfg.Statistics.OCP = append(cfg.Statistics.OCP, Statistic{
			Name:         statistic.OCPName(id),
			Identifier:   id,
			ValueMin:     d.min,
			ValueMax:     d.max,
			DwordSize:    dw,
			BehaviorType: uint8(d.behavior),
			Requirement:  fmt.Sprintf("STATI-%d", id+1),
			DataArea:     uint8(format.Area1),
		})
	}

	cfg.Statistics.Vendor = VendorConfig{
		Specific: []Statistic{
			vendorDefault(1, 0x8000, 2, 0),
			vendorDefault(2, 0xB000, 2, 1),
			vendorDefault(3, 0xFFFF, 1, 2),
		},
		RandomFields: DefaultRandomFields,
	}

	for n := 1; n <= section.FifoCount; n++ {
		area := format.Area1
		if defaultArea2Fifos[n] {
			area = format.Area2
		}
		cfg.Fifos = append(cfg.Fifos, Fifo{
			Number:    n,
			Name:      fmt.Sprintf("Name of FIFO %d", n),
			Size:      DefaultFifoSize,
			MaxEvents: DefaultMaxEvents,
			DataArea:  uint8(area),
		})
	}

	return cfg
}

func vendorDefault(n int, id, dw uint16, namespace int) Statistic {
	return Statistic{
		Name:         fmt.Sprintf("Vendor ID %d", n),
		Identifier:   id,
		ValueMin:     0,
		ValueMax:     16384,
		DwordSize:    dw,
		BehaviorType: uint8(format.Behavior4),
		Namespace:    namespace,
		Requirement:  statistic.RandomRequirement,
		Definition:   fmt.Sprintf("Vendor defined %d", n),
		DataArea:     uint8(format.Area1),
	}
}
