package section

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/endian"
)

// Telemetry log geometry. Offsets inside Data Area 1 are relative to the
// start of the area.
const (
	BlockSize           = 512 // telemetry log block size in bytes
	TelemetryHeaderSize = 512 // telemetry log header (block 0)
	ReasonOffset        = 384 // reason identifier inside the telemetry header
	ReasonSize          = 128
	TimestampSize       = 8

	DataArea1Blocks       = 32                          // OCP fixes Data Area 1 at 16 KiB
	DataArea1Size         = DataArea1Blocks * BlockSize // 16384
	DataArea1HeaderSize   = 512
	SmartPageSize         = 512
	SmartHealthOffset     = 512  // SMART / Health Information (02h) inside Data Area 1
	SmartExtendedOffset   = 1024 // SMART / Health Information Extension (C0h) inside Data Area 1
	DataArea1StatsOffset  = 1536 // first byte after the two SMART pages
	DataArea1MajorVersion = 3
	DataArea1MinorVersion = 1

	FifoCount    = 16
	FifoNameSize = 16
)

// Strings log geometry.
const (
	StringsHeaderSize   = 432
	StringsHeaderSizeDw = StringsHeaderSize / 4 // 108, first dword after the header
	StringEntrySize     = 16
	StringsLogVersion   = 1
)

// SMART / Health Information Extension constants.
const (
	SmartExtendedLogPageVersion = 3
	DSSDMajorVersion            = 2
	DSSDMinorVersion            = 5
	DSSDPointVersion            = 0
	DSSDErrataVersion           = 0
	NVMeErrataVersion           = 'c'
)

// GUID is a 128-bit identifier stored little-endian.
type GUID [16]byte

// NewGUID builds a GUID from its numeric value split into high and low halves.
func NewGUID(hi, lo uint64) GUID {
	var g GUID
	engine := endian.GetLittleEndianEngine()
	engine.PutUint64(g[0:8], lo)
	engine.PutUint64(g[8:16], hi)

	return g
}

// String returns the GUID as the hexadecimal number it encodes.
func (g GUID) String() string {
	engine := endian.GetLittleEndianEngine()
	return fmt.Sprintf("0x%016X%016X", engine.Uint64(g[8:16]), engine.Uint64(g[0:8]))
}

var (
	// StringsLogGUID identifies an OCP strings log (B13A83691A8F408B9EA495940057AA44h).
	StringsLogGUID = NewGUID(0xB13A83691A8F408B, 0x9EA495940057AA44)
	// DataArea1GUID identifies the OCP telemetry Data Area 1 header (BA560A9C3043424CBC73719D87E64EFAh).
	DataArea1GUID = NewGUID(0xBA560A9C3043424C, 0xBC73719D87E64EFA)
	// SmartExtendedGUID identifies the C0h log page (AFD514C97C6F4F9CA4F2BFEA2810AFC5h).
	SmartExtendedGUID = NewGUID(0xAFD514C97C6F4F9C, 0xA4F2BFEA2810AFC5)
)

// TableLocation is a (start, size) pair in dwords.
type TableLocation struct {
	Start uint64
	Size  uint64
}

// End returns the first dword after the table.
func (l TableLocation) End() uint64 {
	return l.Start + l.Size
}

// Uint128 holds the 16-byte little-endian counters of the SMART pages.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

func getUint128(b []byte) Uint128 {
	engine := endian.GetLittleEndianEngine()
	return Uint128{Lo: engine.Uint64(b[0:8]), Hi: engine.Uint64(b[8:16])}
}

func putUint128(b []byte, v Uint128) {
	engine := endian.GetLittleEndianEngine()
	engine.PutUint64(b[0:8], v.Lo)
	engine.PutUint64(b[8:16], v.Hi)
}

// String formats the counter in decimal when it fits 64 bits and in hex otherwise.
func (v Uint128) String() string {
	if v.Hi == 0 {
		return fmt.Sprintf("%d", v.Lo)
	}

	return fmt.Sprintf("0x%x%016x", v.Hi, v.Lo)
}
