package event

import "github.com/opencomputeproject/ocp-telemetry/format"

var timestampIDNames = []string{
	"Timestamp Host Command Issued",
	"Timestamp Snapshot",
	"Timestamp is Power on Hours",
}

var pcieIDNames = []string{
	"Link Up",
	"Link Down",
	"PCIe Error Detected",
	"PERST Asserted",
	"PERST De-asserted",
	"Refclk Stable",
	"Vmain Stable",
	"Link Speed and Width Negotiated",
}

var nvmeIDNames = []string{
	"CC.EN transitions from 0b to 1b",
	"CC.EN transitions from 1b to 0b",
	"CSTS.RDY transitions from 0b to 1b",
	"CSTS.RDY transitions from 1b to 0b",
	"Reserved",
	"Create I/O Submission Queue Command or Create I/O Completion Queue Command Processed",
	"Other Admin Queue Command Processed",
	"An Admin Command Returned a Non-zero Status Code",
	"An I/O Command Returned a Non-zero Status Code",
	"CSTS.CFS Set to 1b",
	"Admin Submission Queue Base Address (ASQ) or Admin Completion Queue Base Address (ACQ) Written",
	"Controller Configuration Register (CC) Changed",
	"Controller Status Register (CSTS) Changed",
}

var resetIDNames = []string{
	"PCIe Conventional Hot Reset",
	"Main Power Cycle",
	"PERST#",
	"PCIe Function Level Reset",
	"NVM Subsystem Reset",
}

var bootIDNames = []string{
	"Main Firmware Boot Complete",
	"FTL Load from NVM Complete",
	"FTL Rebuild Started",
	"FTL Rebuild Complete",
}

var firmwareAssertIDNames = []string{
	"Assert in NVMe Processing Code",
	"Assert in Media Code",
	"Assert in Security Code",
	"Assert in Background Services Code",
	"FTL Rebuild Failed",
	"FTL Data Mismatch",
	"Assert in Other Code",
}

var temperatureIDNames = []string{
	"Composite Temperature decreases to (WCTEMP - 2)",
	"Composite Temperature increases to WCTEMP",
	"Composite Temperature increases to reach CCTEMP",
}

var mediaIDNames = []string{
	"XOR (or equivalent) Recovery Invoked",
	"Uncorrectable Media Error",
	"Block Marked Bad Due to Program Error",
	"Block Marked Bad Due to Erase Error",
	"Block Marked Bad Due to Read Error",
	"Plane Failure Event",
}

var mediaWearIDNames = []string{
	"Media Wear",
}

var pcieStateNames = []string{
	"Unchanged",
	"Link Speed Changed",
	"Link Width Changed",
}

var pcieSpeedNames = []string{
	"Reserved",
	"PCIe Gen1",
	"PCIe Gen2",
	"PCIe Gen3",
	"PCIe Gen4",
	"PCIe Gen5",
	"PCIe Gen6",
	"PCIe Gen7",
}

var pcieWidthNames = []string{
	"Reserved",
	"x1",
	"x2",
	"x4",
	"x8",
	"x16",
}

// NVMe opcodes drawn for command status events.
var (
	adminOpcodes = []uint8{
		0x00, 0x01, 0x02, 0x04, 0x05, 0x06, 0x08, 0x09, 0x0A, 0x0C,
		0x0D, 0x10, 0x11, 0x14, 0x15, 0x18, 0x19, 0x1A, 0x1C, 0x1D,
		0x1E, 0x20, 0x24, 0x7C, 0x7F, 0x80, 0x81, 0x82, 0x84, 0x86,
	}
	ioOpcodes = []uint8{
		0x00, 0x01, 0x02, 0x04, 0x05, 0x08, 0x09, 0x0C, 0x0D, 0x0E,
		0x11, 0x12, 0x15, 0x18, 0x19, 0x1D,
	}
)

// classInfo describes a fixed layout class: the dwords of its payload
// before any vendor unique suffix, and the names of its OCP identifiers.
type classInfo struct {
	baseDwords int
	idNames    []string
	maxExtra   int // largest vendor unique suffix the generator attaches, in dwords
}

var fixedClasses = map[format.EventClass]classInfo{
	format.ClassTimestamp:      {baseDwords: 2, idNames: timestampIDNames, maxExtra: 4},
	format.ClassPCIe:           {baseDwords: 1, idNames: pcieIDNames, maxExtra: 4},
	format.ClassNVMe:           {baseDwords: 2, idNames: nvmeIDNames, maxExtra: 8},
	format.ClassReset:          {baseDwords: 0, idNames: resetIDNames, maxExtra: 8},
	format.ClassBoot:           {baseDwords: 0, idNames: bootIDNames, maxExtra: 8},
	format.ClassFirmwareAssert: {baseDwords: 0, idNames: firmwareAssertIDNames, maxExtra: 8},
	format.ClassTemperature:    {baseDwords: 0, idNames: temperatureIDNames, maxExtra: 8},
	format.ClassMedia:          {baseDwords: 0, idNames: mediaIDNames, maxExtra: 8},
	format.ClassMediaWear:      {baseDwords: 3, idNames: mediaWearIDNames, maxExtra: 8},
}

// maxID returns the largest OCP identifier of the class.
func (c classInfo) maxID() uint16 {
	return uint16(len(c.idNames) - 1) //nolint:gosec
}

// BaseDwords returns the payload size in dwords of a fixed layout class, not
// counting a vendor unique suffix.
func BaseDwords(class format.EventClass) (int, bool) {
	info, ok := fixedClasses[class]
	return info.baseDwords, ok
}

// IdentifierName returns the OCP name of a fixed class identifier, or
// "Vendor Unique" for identifiers 8000h and above.
func IdentifierName(class format.EventClass, id uint16) string {
	if id >= VendorIDMin {
		return "Vendor Unique"
	}
	info, ok := fixedClasses[class]
	if !ok || int(id) >= len(info.idNames) {
		return "Reserved"
	}

	return info.idNames[id]
}

func lookup(names []string, i uint8) string {
	if int(i) < len(names) {
		return names[i]
	}

	return "Reserved"
}
