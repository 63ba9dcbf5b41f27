package section

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/endian"
	"github.com/opencomputeproject/ocp-telemetry/errs"
)

const (
	criticalWarningReservedMask  = 0xC0
	enduranceWarningReservedMask = 0xF2
	maxPercent                   = 100
)

// SmartHealth is the SMART / Health Information log page (02h) embedded at
// offset 512 of Data Area 1.
type SmartHealth struct {
	CriticalWarning               uint8
	CompositeTemperature          uint16 // kelvin
	AvailableSpare                uint8
	AvailableSpareThreshold       uint8
	PercentageUsed                uint8
	EnduranceGroupCriticalWarning uint8
	DataUnitsRead                 Uint128
	DataUnitsWritten              Uint128
	HostReadCommands              Uint128
	HostWriteCommands             Uint128
	ControllerBusyTime            Uint128
	PowerCycles                   Uint128
	PowerOnHours                  Uint128
	UnsafeShutdowns               Uint128
	MediaErrors                   Uint128
	ErrorLogEntries               Uint128
	WarningTemperatureTime        uint32
	CriticalTemperatureTime       uint32
	TemperatureSensors            [8]uint16
	ThermalMgmtT1Transitions      uint32
	ThermalMgmtT2Transitions      uint32
	ThermalMgmtT1Time             uint32
	ThermalMgmtT2Time             uint32
}

func (s *SmartHealth) counters() []*Uint128 {
	return []*Uint128{
		&s.DataUnitsRead, &s.DataUnitsWritten, &s.HostReadCommands, &s.HostWriteCommands,
		&s.ControllerBusyTime, &s.PowerCycles, &s.PowerOnHours, &s.UnsafeShutdowns,
		&s.MediaErrors, &s.ErrorLogEntries,
	}
}

// Parse parses the page from exactly SmartPageSize bytes.
//
// Returns:
//   - error: errs.ErrStructural on a size mismatch, errs.ErrReservedField for
//     reserved bits and bytes, errs.ErrRange for spare percentages above 100
func (s *SmartHealth) Parse(data []byte) error {
	if len(data) != SmartPageSize {
		return fmt.Errorf("%w: SMART / Health log page is %d bytes, expected %d", errs.ErrStructural, len(data), SmartPageSize)
	}

	if data[0]&criticalWarningReservedMask != 0 {
		return fmt.Errorf("%w: SMART critical warning bits 7:6 are 0x%x", errs.ErrReservedField, data[0]>>6)
	}
	if data[3] > maxPercent {
		return fmt.Errorf("%w: SMART available spare %d%%", errs.ErrRange, data[3])
	}
	if data[4] > maxPercent {
		return fmt.Errorf("%w: SMART available spare threshold %d%%", errs.ErrRange, data[4])
	}
	if data[6]&enduranceWarningReservedMask != 0 {
		return fmt.Errorf("%w: SMART endurance group critical warning 0x%02x", errs.ErrReservedField, data[6])
	}
	if err := encoding.CheckReserved("SMART bytes 7-31", data[7:32]); err != nil {
		return err
	}
	if err := encoding.CheckReserved("SMART bytes 232-511", data[232:SmartPageSize]); err != nil {
		return err
	}

	engine := endian.GetLittleEndianEngine()
	s.CriticalWarning = data[0]
	s.CompositeTemperature = engine.Uint16(data[1:3])
	s.AvailableSpare = data[3]
	s.AvailableSpareThreshold = data[4]
	s.PercentageUsed = data[5]
	s.EnduranceGroupCriticalWarning = data[6]
	for i, c := range s.counters() {
		off := 32 + i*16
		*c = getUint128(data[off : off+16])
	}
	s.WarningTemperatureTime = engine.Uint32(data[192:196])
	s.CriticalTemperatureTime = engine.Uint32(data[196:200])
	for i := range s.TemperatureSensors {
		off := 200 + i*2
		s.TemperatureSensors[i] = engine.Uint16(data[off : off+2])
	}
	s.ThermalMgmtT1Transitions = engine.Uint32(data[216:220])
	s.ThermalMgmtT2Transitions = engine.Uint32(data[220:224])
	s.ThermalMgmtT1Time = engine.Uint32(data[224:228])
	s.ThermalMgmtT2Time = engine.Uint32(data[228:232])

	return nil
}

// Bytes serializes the page.
func (s *SmartHealth) Bytes() []byte {
	b := make([]byte, SmartPageSize)
	engine := endian.GetLittleEndianEngine()

	b[0] = s.CriticalWarning
	engine.PutUint16(b[1:3], s.CompositeTemperature)
	b[3] = s.AvailableSpare
	b[4] = s.AvailableSpareThreshold
	b[5] = s.PercentageUsed
	b[6] = s.EnduranceGroupCriticalWarning
	for i, c := range s.counters() {
		off := 32 + i*16
		putUint128(b[off:off+16], *c)
	}
	engine.PutUint32(b[192:196], s.WarningTemperatureTime)
	engine.PutUint32(b[196:200], s.CriticalTemperatureTime)
	for i, t := range s.TemperatureSensors {
		off := 200 + i*2
		engine.PutUint16(b[off:off+2], t)
	}
	engine.PutUint32(b[216:220], s.ThermalMgmtT1Transitions)
	engine.PutUint32(b[220:224], s.ThermalMgmtT2Transitions)
	engine.PutUint32(b[224:228], s.ThermalMgmtT1Time)
	engine.PutUint32(b[228:232], s.ThermalMgmtT2Time)

	return b
}

// ParseSmartHealth parses a SmartHealth page from data.
func ParseSmartHealth(data []byte) (SmartHealth, error) {
	var s SmartHealth
	if err := s.Parse(data); err != nil {
		return SmartHealth{}, err
	}

	return s, nil
}
