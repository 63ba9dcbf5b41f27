package format

import (
	"fmt"
	"strings"
)

type (
	CompressionType uint8
	LogKind         uint8
	EventClass      uint8
	BehaviorType    uint8
	DataArea        uint8
	Scope           uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

const (
	LogHostInitiated       LogKind = 0x07 // Telemetry Host-Initiated log (07h).
	LogControllerInitiated LogKind = 0x08 // Telemetry Controller-Initiated log (08h).
)

// Debug event classes. Classes 0x0B..0x7F are unassigned and invalid;
// every class at or above ClassVendorUnique is vendor unique.
const (
	ClassNone           EventClass = 0x00 // terminates a FIFO
	ClassTimestamp      EventClass = 0x01
	ClassPCIe           EventClass = 0x02
	ClassNVMe           EventClass = 0x03
	ClassReset          EventClass = 0x04
	ClassBoot           EventClass = 0x05
	ClassFirmwareAssert EventClass = 0x06
	ClassTemperature    EventClass = 0x07
	ClassMedia          EventClass = 0x08
	ClassMediaWear      EventClass = 0x09
	ClassSnapshot       EventClass = 0x0A
	ClassVendorUnique   EventClass = 0x80
)

const (
	BehaviorNone BehaviorType = iota
	Behavior1
	Behavior2
	Behavior3
	Behavior4
	Behavior5
	Behavior6
)

const (
	AreaNone DataArea = iota
	Area1
	Area2
	Area3
	Area4
)

const (
	ScopeNotReported Scope = iota
	ScopeController
	ScopeSubsystem
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-insensitive name ("none", "zstd", "s2", "lz4")
// to its CompressionType.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}

func (k LogKind) String() string {
	switch k {
	case LogHostInitiated:
		return "Telemetry Host-Initiated"
	case LogControllerInitiated:
		return "Telemetry Controller-Initiated"
	default:
		return "Unknown"
	}
}

// IsValid reports whether k is one of the two telemetry log identifiers.
func (k LogKind) IsValid() bool {
	return k == LogHostInitiated || k == LogControllerInitiated
}

var classNames = [...]string{
	"Reserved",
	"Timestamp",
	"PCIe Debug",
	"NVMe Debug",
	"Reset Debug",
	"Boot Sequence",
	"Firmware Assert",
	"Temperature",
	"Media",
	"Media Wear",
	"Static Snapshot",
}

func (c EventClass) String() string {
	switch {
	case int(c) < len(classNames):
		return classNames[c]
	case c.IsVendorUnique():
		return fmt.Sprintf("Vendor Unique 0x%02X", uint8(c))
	default:
		return fmt.Sprintf("Invalid 0x%02X", uint8(c))
	}
}

// IsVendorUnique reports whether c lies in the vendor unique class range.
func (c EventClass) IsVendorUnique() bool {
	return c >= ClassVendorUnique
}

// IsFixed reports whether c is one of the nine fixed-layout classes that may
// carry a vendor unique suffix.
func (c EventClass) IsFixed() bool {
	return c >= ClassTimestamp && c <= ClassMediaWear
}

// IsValid reports whether c may appear in a FIFO.
func (c EventClass) IsValid() bool {
	return c.IsFixed() || c == ClassSnapshot || c.IsVendorUnique()
}

var behaviorNames = [...]string{
	"Reserved",
	"Saturating Counter - No  Reset Persistent - No  Power Cycle/PERST Persistent - No",
	"Saturating Counter - No  Reset Persistent - Yes Power Cycle/PERST Persistent - Yes",
	"Saturating Counter - Yes Reset Persistent - Yes Power Cycle/PERST Persistent - No",
	"Saturating Counter - Yes Reset Persistent - Yes Power Cycle/PERST Persistent - Yes",
	"Saturating Counter - Yes Reset Persistent - No  Power Cycle/PERST Persistent - No",
	"Saturating Counter - No  Reset Persistent - Yes Power Cycle/PERST Persistent - No",
}

func (b BehaviorType) String() string {
	if int(b) < len(behaviorNames) {
		return behaviorNames[b]
	}

	return "Invalid"
}

// IsValid reports whether b is in 1..6.
func (b BehaviorType) IsValid() bool {
	return b >= Behavior1 && b <= Behavior6
}

func (a DataArea) String() string {
	switch a {
	case AreaNone:
		return "Does not exist"
	case Area1, Area2, Area3, Area4:
		return fmt.Sprintf("Data Area %d", uint8(a))
	default:
		return "Invalid"
	}
}

func (s Scope) String() string {
	switch s {
	case ScopeNotReported:
		return "Not Reported"
	case ScopeController:
		return "Controller"
	case ScopeSubsystem:
		return "NVM subsystem"
	default:
		return "Invalid"
	}
}
