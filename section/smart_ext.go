package section

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/endian"
	"github.com/opencomputeproject/ocp-telemetry/errs"
)

// MaxThrottleStatus is the highest thermal throttling status (3rd level).
const MaxThrottleStatus = 3

// SmartExtended is the OCP SMART / Health Information Extension log page
// (C0h) embedded at offset 1024 of Data Area 1.
type SmartExtended struct {
	PhysicalMediaUnitsWritten Uint128
	PhysicalMediaUnitsRead    Uint128
	BadUserBlocksRaw          uint64 // 48-bit
	BadUserBlocksNormalized   uint16
	BadSystemBlocksRaw        uint64 // 48-bit
	BadSystemBlocksNormalized uint16
	XORRecoveryCount          uint64
	UncorrectableReadErrors   uint64
	SoftECCErrors             uint64
	EndToEndCorrections       uint64
	SystemDataPercentUsed     uint8
	RefreshCounts             uint64 // 56-bit
	MaxUserDataEraseCount     uint32
	MinUserDataEraseCount     uint32
	ThermalThrottlingEvents   uint8
	ThermalThrottlingStatus   uint8
	PCIeCorrectableErrors     uint64
	IncompleteShutdowns       uint32
	PercentFreeBlocks         uint8
	CapacitorHealth           uint16
	UnalignedIO               uint64
	SecurityVersion           uint64
	TotalNUSE                 uint64
	PLPStartCount             Uint128
	EnduranceEstimate         Uint128
	PCIeLinkRetrainings       uint64
	PowerStateChanges         uint64
	HardwareVersion           Uint128
}

// Parse parses the page from exactly SmartPageSize bytes.
//
// Returns:
//   - error: errs.ErrStructural on a size mismatch, a wrong DSSD version, log
//     page version or GUID; errs.ErrRange for percentages above 100 or a
//     throttling status above MaxThrottleStatus; errs.ErrReservedField for
//     reserved bytes
func (s *SmartExtended) Parse(data []byte) error {
	if len(data) != SmartPageSize {
		return fmt.Errorf("%w: SMART extension log page is %d bytes, expected %d", errs.ErrStructural, len(data), SmartPageSize)
	}

	engine := endian.GetLittleEndianEngine()
	s.BadUserBlocksNormalized = engine.Uint16(data[38:40])
	if s.BadUserBlocksNormalized > maxPercent {
		return fmt.Errorf("%w: bad user NAND blocks normalized value %d%%", errs.ErrRange, s.BadUserBlocksNormalized)
	}
	s.BadSystemBlocksNormalized = engine.Uint16(data[46:48])
	if s.BadSystemBlocksNormalized > maxPercent {
		return fmt.Errorf("%w: bad system NAND blocks normalized value %d%%", errs.ErrRange, s.BadSystemBlocksNormalized)
	}
	if data[97] > MaxThrottleStatus {
		return fmt.Errorf("%w: thermal throttling status %d", errs.ErrRange, data[97])
	}
	if err := checkDSSDVersion(data[98:104]); err != nil {
		return err
	}
	if err := encoding.CheckReserved("SMART extension bytes 116-119", data[116:120]); err != nil {
		return err
	}
	if data[120] > maxPercent {
		return fmt.Errorf("%w: free blocks %d%%", errs.ErrRange, data[120])
	}
	if err := encoding.CheckReserved("SMART extension bytes 121-127", data[121:128]); err != nil {
		return err
	}
	if err := encoding.CheckReserved("SMART extension bytes 131-135", data[131:136]); err != nil {
		return err
	}
	if err := encoding.CheckReserved("SMART extension bytes 224-493", data[224:494]); err != nil {
		return err
	}
	if v := engine.Uint16(data[494:496]); v != SmartExtendedLogPageVersion {
		return fmt.Errorf("%w: SMART extension log page version %d, expected %d", errs.ErrStructural, v, SmartExtendedLogPageVersion)
	}
	if GUID(data[496:512]) != SmartExtendedGUID {
		return fmt.Errorf("%w: SMART extension GUID %s", errs.ErrStructural, GUID(data[496:512]))
	}

	s.PhysicalMediaUnitsWritten = getUint128(data[0:16])
	s.PhysicalMediaUnitsRead = getUint128(data[16:32])
	s.BadUserBlocksRaw = endian.Uint48(data[32:38])
	s.BadSystemBlocksRaw = endian.Uint48(data[40:46])
	s.XORRecoveryCount = engine.Uint64(data[48:56])
	s.UncorrectableReadErrors = engine.Uint64(data[56:64])
	s.SoftECCErrors = engine.Uint64(data[64:72])
	s.EndToEndCorrections = engine.Uint64(data[72:80])
	s.SystemDataPercentUsed = data[80]
	s.RefreshCounts = endian.UintN(data[81:88])
	s.MaxUserDataEraseCount = engine.Uint32(data[88:92])
	s.MinUserDataEraseCount = engine.Uint32(data[92:96])
	s.ThermalThrottlingEvents = data[96]
	s.ThermalThrottlingStatus = data[97]
	s.PCIeCorrectableErrors = engine.Uint64(data[104:112])
	s.IncompleteShutdowns = engine.Uint32(data[112:116])
	s.PercentFreeBlocks = data[120]
	s.CapacitorHealth = engine.Uint16(data[128:130])
	s.UnalignedIO = engine.Uint64(data[136:144])
	s.SecurityVersion = engine.Uint64(data[144:152])
	s.TotalNUSE = engine.Uint64(data[152:160])
	s.PLPStartCount = getUint128(data[160:176])
	s.EnduranceEstimate = getUint128(data[176:192])
	s.PCIeLinkRetrainings = engine.Uint64(data[192:200])
	s.PowerStateChanges = engine.Uint64(data[200:208])
	s.HardwareVersion = getUint128(data[208:224])

	return nil
}

func checkDSSDVersion(b []byte) error {
	engine := endian.GetLittleEndianEngine()
	errata, point, minor, major := b[0], engine.Uint16(b[1:3]), engine.Uint16(b[3:5]), b[5]
	if errata != DSSDErrataVersion || point != DSSDPointVersion || minor != DSSDMinorVersion || major != DSSDMajorVersion {
		return fmt.Errorf("%w: DSSD specification version %d.%d.%d.%d, expected %d.%d.%d.%d",
			errs.ErrStructural, major, minor, point, errata,
			DSSDMajorVersion, DSSDMinorVersion, DSSDPointVersion, DSSDErrataVersion)
	}

	return nil
}

// Bytes serializes the page. Version fields, the NVMe errata byte and the
// GUID are always written with their fixed values.
func (s *SmartExtended) Bytes() []byte {
	w := encoding.NewWriter()

	writeUint128(w, s.PhysicalMediaUnitsWritten)
	writeUint128(w, s.PhysicalMediaUnitsRead)
	w.UintN(s.BadUserBlocksRaw, 6)
	w.Uint16(s.BadUserBlocksNormalized)
	w.UintN(s.BadSystemBlocksRaw, 6)
	w.Uint16(s.BadSystemBlocksNormalized)
	w.Uint64(s.XORRecoveryCount)
	w.Uint64(s.UncorrectableReadErrors)
	w.Uint64(s.SoftECCErrors)
	w.Uint64(s.EndToEndCorrections)
	w.Uint8(s.SystemDataPercentUsed)
	w.UintN(s.RefreshCounts, 7)
	w.Uint32(s.MaxUserDataEraseCount)
	w.Uint32(s.MinUserDataEraseCount)
	w.Uint8(s.ThermalThrottlingEvents)
	w.Uint8(s.ThermalThrottlingStatus)
	w.Uint8(DSSDErrataVersion)
	w.Uint16(DSSDPointVersion)
	w.Uint16(DSSDMinorVersion)
	w.Uint8(DSSDMajorVersion)
	w.Uint64(s.PCIeCorrectableErrors)
	w.Uint32(s.IncompleteShutdowns)
	w.PadTo(120)
	w.Uint8(s.PercentFreeBlocks)
	w.PadTo(128)
	w.Uint16(s.CapacitorHealth)
	w.Uint8(NVMeErrataVersion)
	w.PadTo(136)
	w.Uint64(s.UnalignedIO)
	w.Uint64(s.SecurityVersion)
	w.Uint64(s.TotalNUSE)
	writeUint128(w, s.PLPStartCount)
	writeUint128(w, s.EnduranceEstimate)
	w.Uint64(s.PCIeLinkRetrainings)
	w.Uint64(s.PowerStateChanges)
	writeUint128(w, s.HardwareVersion)
	w.PadTo(494)
	w.Uint16(SmartExtendedLogPageVersion)
	w.Bytes(SmartExtendedGUID[:])

	return w.Finish()
}

func writeUint128(w *encoding.Writer, v Uint128) {
	w.Uint64(v.Lo)
	w.Uint64(v.Hi)
}

// ParseSmartExtended parses a SmartExtended page from data.
func ParseSmartExtended(data []byte) (SmartExtended, error) {
	var s SmartExtended
	if err := s.Parse(data); err != nil {
		return SmartExtended{}, err
	}

	return s, nil
}
