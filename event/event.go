package event

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/endian"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/section"
	"github.com/opencomputeproject/ocp-telemetry/statistic"
)

const (
	// PrefixSize is the size of the class/identifier/size head of every event.
	PrefixSize = 4
	// VendorIDMin is the first vendor unique identifier of a fixed class.
	VendorIDMin = 0x8000
	// MaxDwords is the largest dword size an event prefix can carry.
	MaxDwords = 0xFF
)

// Event is one debug event descriptor in a FIFO.
type Event interface {
	Class() format.EventClass
	ID() uint16
	// DwordSize returns the number of dwords following the 4-byte prefix.
	DwordSize() int
	// Size returns the encoded size in bytes.
	Size() int
	// Bytes serializes the event. The result is only decodable when
	// Validate returns nil.
	Bytes() []byte
	// Validate checks that the event can be encoded: sizes are whole dwords
	// and fit the prefix size byte.
	Validate() error
}

// VuSuffix is vendor unique data appended to a fixed class event.
//
//	Bytes | Field
//	------|----------------------------
//	0-1   | vendor unique identifier
//	2-    | vendor unique data
type VuSuffix struct {
	ID   uint16
	Data []byte
	// Name is the strings log name of (class, ID).
	Name string
}

func (v *VuSuffix) size() int {
	if v == nil {
		return 0
	}

	return 2 + len(v.Data)
}

// Fixed holds the fields shared by the nine fixed layout classes.
type Fixed struct {
	EventClass format.EventClass
	EventID    uint16
	Vu         *VuSuffix
}

// Class returns the event class.
func (f *Fixed) Class() format.EventClass { return f.EventClass }

// ID returns the event identifier.
func (f *Fixed) ID() uint16 { return f.EventID }

// Name returns the OCP name of the identifier.
func (f *Fixed) Name() string { return IdentifierName(f.EventClass, f.EventID) }

// IsVendorID reports whether the identifier is vendor unique.
func (f *Fixed) IsVendorID() bool { return f.EventID >= VendorIDMin }

// DwordSize returns the payload dwords plus the vendor unique suffix dwords.
func (f *Fixed) DwordSize() int {
	base, _ := BaseDwords(f.EventClass)
	return base + f.Vu.size()/encoding.DwordSize
}

// Size returns the encoded size in bytes.
func (f *Fixed) Size() int {
	return PrefixSize + f.DwordSize()*encoding.DwordSize
}

// Validate checks the class and the vendor unique suffix size.
//
// Returns:
//   - error: errs.ErrConfig for a class without a fixed layout, a suffix that
//     does not end on a dword boundary or more than MaxDwords dwords
func (f *Fixed) Validate() error {
	if _, ok := BaseDwords(f.EventClass); !ok {
		return fmt.Errorf("%w: event class 0x%02x has no fixed layout", errs.ErrConfig, uint8(f.EventClass))
	}
	if n := f.Vu.size(); n%encoding.DwordSize != 0 {
		return fmt.Errorf("%w: %s event 0x%04x VU suffix is %d bytes, not a dword multiple",
			errs.ErrConfig, f.EventClass, f.EventID, n)
	}

	return checkDwords(f.EventClass, f.EventID, f.DwordSize())
}

func checkDwords(class format.EventClass, id uint16, dw int) error {
	if dw > MaxDwords {
		return fmt.Errorf("%w: %s event 0x%04x is %d dwords, at most %d fit",
			errs.ErrConfig, class, id, dw, MaxDwords)
	}

	return nil
}

// encode lays out prefix, payload and suffix. payload must hold exactly the
// class base dwords.
func (f *Fixed) encode(payload []byte) []byte {
	b := make([]byte, encoding.AlignDword(PrefixSize+len(payload)+f.Vu.size()))
	engine := endian.GetLittleEndianEngine()

	b[0] = uint8(f.EventClass)
	engine.PutUint16(b[1:3], f.EventID)
	b[3] = uint8(f.DwordSize()) //nolint:gosec
	n := copy(b[PrefixSize:], payload)

	if f.Vu != nil {
		off := PrefixSize + n
		engine.PutUint16(b[off:off+2], f.Vu.ID)
		copy(b[off+2:], f.Vu.Data)
	}

	return b
}

// Timestamp is a class 01h event carrying an NVMe timestamp.
type Timestamp struct {
	Fixed
	Timestamp section.Timestamp
}

func (e *Timestamp) Bytes() []byte { return e.encode(e.Timestamp.Bytes()) }

// PCIeLinkNegotiated is the PCIe identifier carrying a LinkChange.
const PCIeLinkNegotiated uint16 = 0x07

// LinkChange is the payload of PCIe event 0007h.
type LinkChange struct {
	State uint8 // 0 unchanged, 1 speed changed, 2 width changed
	Speed uint8 // 1..7 for Gen1..Gen7
	Width uint8 // 1..5 for x1..x16
}

func (l LinkChange) String() string {
	return fmt.Sprintf("%s, %s %s", lookup(pcieStateNames, l.State), lookup(pcieSpeedNames, l.Speed), lookup(pcieWidthNames, l.Width))
}

// PCIe is a class 02h event.
type PCIe struct {
	Fixed
	// Link is set for identifier 0007h.
	Link *LinkChange
}

func (e *PCIe) Bytes() []byte {
	payload := make([]byte, 4)
	if e.Link != nil {
		payload[0], payload[1], payload[2] = e.Link.State, e.Link.Speed, e.Link.Width
	}

	return e.encode(payload)
}

// NVMe identifiers with a payload.
const (
	NVMeAdminCommandError uint16 = 0x07
	NVMeIOCommandError    uint16 = 0x08
	NVMeCCChanged         uint16 = 0x0B
	NVMeCSTSChanged       uint16 = 0x0C
)

// NVMe is a class 03h event.
type NVMe struct {
	Fixed
	Opcode uint8  // identifiers 0007h and 0008h
	Status uint16 // identifiers 0007h and 0008h, bit 15 clear
	// Register holds CC for 000Bh and CSTS for 000Ch.
	Register uint32
}

func (e *NVMe) Bytes() []byte {
	payload := make([]byte, 8)
	engine := endian.GetLittleEndianEngine()
	switch e.EventID {
	case NVMeAdminCommandError, NVMeIOCommandError:
		payload[0] = e.Opcode
		engine.PutUint16(payload[1:3], e.Status)
	case NVMeCCChanged, NVMeCSTSChanged:
		engine.PutUint32(payload[0:4], e.Register)
	}

	return e.encode(payload)
}

// Reset is a class 04h event.
type Reset struct{ Fixed }

func (e *Reset) Bytes() []byte { return e.encode(nil) }

// Boot is a class 05h boot sequence event.
type Boot struct{ Fixed }

func (e *Boot) Bytes() []byte { return e.encode(nil) }

// FirmwareAssert is a class 06h event.
type FirmwareAssert struct{ Fixed }

func (e *FirmwareAssert) Bytes() []byte { return e.encode(nil) }

// Temperature is a class 07h event.
type Temperature struct{ Fixed }

func (e *Temperature) Bytes() []byte { return e.encode(nil) }

// Media is a class 08h event.
type Media struct{ Fixed }

func (e *Media) Bytes() []byte { return e.encode(nil) }

// MediaWear is a class 09h event. The counters are only meaningful for
// identifier 0000h and are zero otherwise.
type MediaWear struct {
	Fixed
	HostTBWritten  uint32
	MediaTBWritten uint32
	MediaTBErased  uint32
}

func (e *MediaWear) Bytes() []byte {
	payload := make([]byte, 12)
	engine := endian.GetLittleEndianEngine()
	engine.PutUint32(payload[0:4], e.HostTBWritten)
	engine.PutUint32(payload[4:8], e.MediaTBWritten)
	engine.PutUint32(payload[8:12], e.MediaTBErased)

	return e.encode(payload)
}

// Snapshot is a class 0Ah event holding a copy of a statistic descriptor.
//
//	Bytes | Field
//	------|------------------------
//	0     | class (0Ah)
//	1-3   | reserved
//	4-    | statistic descriptor
type Snapshot struct {
	Statistic statistic.Descriptor
}

func (e *Snapshot) Class() format.EventClass { return format.ClassSnapshot }

// ID returns the identifier of the captured statistic.
func (e *Snapshot) ID() uint16 { return e.Statistic.ID }

func (e *Snapshot) DwordSize() int { return (e.Size() - PrefixSize) / encoding.DwordSize }

func (e *Snapshot) Size() int { return PrefixSize + e.Statistic.Size() }

// Validate checks that the statistic value matches its dword length.
func (e *Snapshot) Validate() error {
	d := &e.Statistic
	if d.BadBlock == nil && len(d.Value) != int(d.DwordLength)*encoding.DwordSize {
		return fmt.Errorf("%w: snapshot of statistic 0x%04x holds %d value bytes for %d dwords",
			errs.ErrConfig, d.ID, len(d.Value), d.DwordLength)
	}

	return nil
}

func (e *Snapshot) Bytes() []byte {
	b := make([]byte, PrefixSize, e.Size())
	b[0] = uint8(format.ClassSnapshot)

	return append(b, e.Statistic.Bytes()...)
}

// VendorUnique is an event of class 80h or above. Its payload is opaque.
type VendorUnique struct {
	EventClass format.EventClass
	EventID    uint16
	Data       []byte // DwordSize*4 bytes
	// Name is the strings log name of (class, identifier).
	Name string
}

func (e *VendorUnique) Class() format.EventClass { return e.EventClass }

func (e *VendorUnique) ID() uint16 { return e.EventID }

func (e *VendorUnique) DwordSize() int { return len(e.Data) / encoding.DwordSize }

func (e *VendorUnique) Size() int { return PrefixSize + len(e.Data) }

// Validate checks the class and that the data is whole dwords that fit the
// prefix size byte.
func (e *VendorUnique) Validate() error {
	if !e.EventClass.IsVendorUnique() {
		return fmt.Errorf("%w: event class 0x%02x is not vendor unique", errs.ErrConfig, uint8(e.EventClass))
	}
	if len(e.Data)%encoding.DwordSize != 0 {
		return fmt.Errorf("%w: %s event 0x%04x data is %d bytes, not a dword multiple",
			errs.ErrConfig, e.EventClass, e.EventID, len(e.Data))
	}

	return checkDwords(e.EventClass, e.EventID, e.DwordSize())
}

func (e *VendorUnique) Bytes() []byte {
	b := make([]byte, PrefixSize, e.Size())
	b[0] = uint8(e.EventClass)
	endian.GetLittleEndianEngine().PutUint16(b[1:3], e.EventID)
	b[3] = uint8(e.DwordSize()) //nolint:gosec

	return append(b, e.Data...)
}

var (
	_ Event = (*Timestamp)(nil)
	_ Event = (*PCIe)(nil)
	_ Event = (*NVMe)(nil)
	_ Event = (*Reset)(nil)
	_ Event = (*Boot)(nil)
	_ Event = (*FirmwareAssert)(nil)
	_ Event = (*Temperature)(nil)
	_ Event = (*Media)(nil)
	_ Event = (*MediaWear)(nil)
	_ Event = (*Snapshot)(nil)
	_ Event = (*VendorUnique)(nil)
)

// Suffix returns the vendor unique suffix of a fixed class event, or nil.
func Suffix(e Event) *VuSuffix {
	if f, ok := e.(interface{ fixed() *Fixed }); ok {
		return f.fixed().Vu
	}

	return nil
}

func (f *Fixed) fixed() *Fixed { return f }
