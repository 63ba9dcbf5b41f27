package statistic

// OCP defined statistic identifiers.
const (
	IDOutstandingAdminCommands   uint16 = 0x01
	IDHostWriteBandwidth         uint16 = 0x02
	IDGCWriteBandwidth           uint16 = 0x03
	IDActiveNamespaces           uint16 = 0x04
	IDMaxDieBadBlock             uint16 = 0x1B
	IDMaxNANDChannelBadBlock     uint16 = 0x1C
	IDMinimumNANDChannelBadBlock uint16 = 0x1D

	// MaxOCPID is the last identifier assigned by the OCP specification.
	MaxOCPID uint16 = 0x1D
	// MinVendorID is the first vendor unique identifier.
	MinVendorID uint16 = 0x8000
)

var ocpNames = [...]string{
	"",
	"Outstanding Admin Commands",
	"Host Write Bandwidth",
	"GC Write Bandwidth",
	"Active Namespaces",
	"Internal Write Workload",
	"Internal Read Workload",
	"Internal Write Queue Depth",
	"Internal Read Queue Depth",
	"Pending Trim LBA Count",
	"Host Trim LBA Request Count",
	"Current NVMe Power State",
	"Current DSSD Power State",
	"Program Fail Count",
	"Erase Fail Count",
	"Read Disturb Writes",
	"Retention Writes",
	"Wear Leveling Writes",
	"Read Recovery Writes",
	"GC Writes",
	"SRAM Correctable Count",
	"DRAM Correctable Count",
	"SRAM Uncorrectable Count",
	"DRAM Uncorrectable Count",
	"Data Integrity Error Count",
	"Read Retry Error Count",
	"PERST Events Count",
	"Max Die Bad Block",
	"Max NAND Channel Bad Block",
	"Minimum NAND Channel Bad Block",
}

var ocpDwordLengths = [...]uint16{
	0,
	1, 1, 1, 1, 2, 2, 1, 1, 2, 2,
	1, 1, 2, 2, 4, 4, 4, 2, 2, 1,
	1, 1, 1, 1, 1, 1, 2, 2, 2,
}

// IsOCP reports whether id is an OCP defined identifier (1..29).
func IsOCP(id uint16) bool {
	return id >= 1 && id <= MaxOCPID
}

// IsVendor reports whether id is a vendor unique identifier.
func IsVendor(id uint16) bool {
	return id >= MinVendorID
}

// IsBadBlock reports whether id carries the bad block percent/raw count
// value shape instead of a plain integer.
func IsBadBlock(id uint16) bool {
	return id >= IDMaxDieBadBlock && id <= IDMinimumNANDChannelBadBlock
}

// OCPName returns the OCP name of id, or "" if id is not OCP defined.
func OCPName(id uint16) string {
	if !IsOCP(id) {
		return ""
	}

	return ocpNames[id]
}

// OCPDwordLength returns the fixed dword length of an OCP defined
// identifier.
func OCPDwordLength(id uint16) (uint16, bool) {
	if !IsOCP(id) {
		return 0, false
	}

	return ocpDwordLengths[id], true
}
