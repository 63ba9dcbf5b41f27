package dataarea

import (
	"github.com/opencomputeproject/ocp-telemetry/gen"
	"github.com/opencomputeproject/ocp-telemetry/section"
)

// Temperatures are drawn between 0 and 90 degrees Fahrenheit, in kelvin.
const (
	minKelvin = 255
	maxKelvin = 305
)

func randomUint128(st *gen.State) section.Uint128 {
	return section.Uint128{Lo: st.Rand().Uint64(), Hi: st.Rand().Uint64()}
}

// RandomSmartHealth draws a SMART / Health Information page whose fields
// pass section.SmartHealth validation.
func RandomSmartHealth(st *gen.State) section.SmartHealth {
	s := section.SmartHealth{
		CriticalWarning:          uint8(st.IntN(0, 0x3F)),               //nolint:gosec
		CompositeTemperature:     uint16(st.IntN(minKelvin, maxKelvin)), //nolint:gosec
		AvailableSpare:           uint8(st.IntN(0, 100)),                //nolint:gosec
		AvailableSpareThreshold:  uint8(st.IntN(0, 100)),                //nolint:gosec
		PercentageUsed:           uint8(st.IntN(0, 100)),                //nolint:gosec
		WarningTemperatureTime:   st.Uint32(),
		CriticalTemperatureTime:  st.Uint32(),
		ThermalMgmtT1Transitions: st.Uint32(),
		ThermalMgmtT2Transitions: st.Uint32(),
		ThermalMgmtT1Time:        st.Uint32(),
		ThermalMgmtT2Time:        st.Uint32(),
	}
	for _, c := range []*section.Uint128{
		&s.DataUnitsRead, &s.DataUnitsWritten, &s.HostReadCommands, &s.HostWriteCommands,
		&s.ControllerBusyTime, &s.PowerCycles, &s.PowerOnHours, &s.UnsafeShutdowns,
		&s.MediaErrors, &s.ErrorLogEntries,
	} {
		*c = randomUint128(st)
	}
	for i := range s.TemperatureSensors {
		s.TemperatureSensors[i] = uint16(st.IntN(minKelvin, maxKelvin)) //nolint:gosec
	}

	return s
}

// RandomSmartExtended draws a SMART / Health Information Extension page
// whose fields pass section.SmartExtended validation.
func RandomSmartExtended(st *gen.State) section.SmartExtended {
	rng := st.Rand()

	return section.SmartExtended{
		PhysicalMediaUnitsWritten: randomUint128(st),
		PhysicalMediaUnitsRead:    randomUint128(st),
		BadUserBlocksRaw:          uint64(st.Uint32()),
		BadUserBlocksNormalized:   uint16(st.IntN(0, 100)), //nolint:gosec
		BadSystemBlocksRaw:        uint64(st.Uint32()),
		BadSystemBlocksNormalized: uint16(st.IntN(0, 100)), //nolint:gosec
		XORRecoveryCount:          rng.Uint64(),
		UncorrectableReadErrors:   rng.Uint64(),
		SoftECCErrors:             rng.Uint64(),
		EndToEndCorrections:       rng.Uint64(),
		SystemDataPercentUsed:     uint8(st.IntN(0, 100)), //nolint:gosec
		RefreshCounts:             rng.Uint64() >> 8,
		MaxUserDataEraseCount:     st.Uint32(),
		MinUserDataEraseCount:     st.Uint32(),
		ThermalThrottlingEvents:   uint8(st.IntN(0, 0xFF)),                      //nolint:gosec
		ThermalThrottlingStatus:   uint8(st.IntN(0, section.MaxThrottleStatus)), //nolint:gosec
		PCIeCorrectableErrors:     rng.Uint64(),
		IncompleteShutdowns:       st.Uint32(),
		PercentFreeBlocks:         uint8(st.IntN(0, 100)), //nolint:gosec
		CapacitorHealth:           st.Uint16(),
		UnalignedIO:               rng.Uint64(),
		SecurityVersion:           rng.Uint64(),
		TotalNUSE:                 rng.Uint64(),
		PLPStartCount:             randomUint128(st),
		EnduranceEstimate:         randomUint128(st),
		PCIeLinkRetrainings:       rng.Uint64(),
		PowerStateChanges:         rng.Uint64(),
		HardwareVersion:           randomUint128(st),
	}
}
