package statistic

import (
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/endian"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
)

const (
	// HeaderSize is the size of the fixed descriptor head preceding the value.
	HeaderSize = 8

	// NamespaceValid flags a specified namespace in the namespace byte.
	NamespaceValid = 0x80
	// MaxNamespace is the largest namespace a descriptor can reference.
	MaxNamespace = 0x7F

	// MaxDwordLength is the largest value a generated descriptor carries.
	MaxDwordLength = 8

	badBlockPercentMax = 100
)

// Names resolves vendor unique statistic identifiers. *stringslog.Log
// implements it.
type Names interface {
	StatisticName(id uint16) (string, bool)
}

// BadBlock is the value shape of identifiers 1Bh, 1Ch and 1Dh.
//
//	Bytes | Field
//	------|---------------------
//	0     | percent of bad blocks
//	1     | reserved
//	2-3   | raw bad block count
//	4-7   | reserved
type BadBlock struct {
	Percent  uint8
	RawCount uint16
}

// Descriptor is one statistic descriptor.
//
//	Bytes | Field
//	------|---------------------------------------
//	0-1   | statistic identifier
//	2     | statistic info (behavior type, bits 3:0)
//	3     | namespace info (bit 7 valid, bits 6:0 namespace)
//	4-5   | statistic data size (dwords)
//	6-7   | reserved
//	8-    | value
type Descriptor struct {
	ID          uint16
	Behavior    format.BehaviorType
	Namespace   uint8 // 0 when unspecified, otherwise 1..127
	DwordLength uint16
	// Value holds the raw little-endian value, DwordLength*4 bytes.
	Value []byte
	// BadBlock is set for identifiers 1Bh..1Dh.
	BadBlock *BadBlock
	// Name is the OCP name or the strings log name of a vendor identifier.
	Name string
}

// Size returns the encoded descriptor size in bytes.
func (d *Descriptor) Size() int {
	return HeaderSize + int(d.DwordLength)*encoding.DwordSize
}

// Uint64 returns the low 64 bits of the value.
func (d *Descriptor) Uint64() uint64 {
	var b [8]byte
	copy(b[:], d.Value)

	return endian.GetLittleEndianEngine().Uint64(b[:])
}

// ValueString formats the value for display: decimal when it fits 64 bits,
// otherwise big-endian hex.
func (d *Descriptor) ValueString() string {
	if d.BadBlock != nil {
		return fmt.Sprintf("%d%% (%d blocks)", d.BadBlock.Percent, d.BadBlock.RawCount)
	}
	if len(d.Value) <= 8 || encoding.IsZero(d.Value[8:]) {
		return strconv.FormatUint(d.Uint64(), 10)
	}

	be := slices.Clone(d.Value)
	slices.Reverse(be)

	return "0x" + strings.TrimLeft(hex.EncodeToString(be), "0")
}

// NamespaceByte returns the encoded namespace info byte.
func (d *Descriptor) NamespaceByte() uint8 {
	if d.Namespace == 0 {
		return 0
	}

	return NamespaceValid | d.Namespace
}

// Bytes serializes the descriptor.
func (d *Descriptor) Bytes() []byte {
	b := make([]byte, d.Size())
	engine := endian.GetLittleEndianEngine()

	engine.PutUint16(b[0:2], d.ID)
	b[2] = uint8(d.Behavior)
	b[3] = d.NamespaceByte()
	engine.PutUint16(b[4:6], d.DwordLength)

	if d.BadBlock != nil && len(b) >= HeaderSize+8 {
		b[8] = d.BadBlock.Percent
		engine.PutUint16(b[10:12], d.BadBlock.RawCount)
	} else {
		copy(b[HeaderSize:], d.Value)
	}

	return b
}

// Decode parses the descriptor at the start of data.
//
// Parameters:
//   - data: bytes from the descriptor start to the end of its table
//   - names: resolves vendor unique identifiers; nil resolves none
//
// Returns:
//   - Descriptor: the parsed descriptor
//   - int: bytes consumed
//   - error: errs.ErrRange, errs.ErrCrossReference, errs.ErrStructural or
//     errs.ErrReservedField
func Decode(data []byte, names Names) (Descriptor, int, error) {
	if len(data) < HeaderSize {
		return Descriptor{}, 0, fmt.Errorf("%w: statistic descriptor needs %d bytes, %d remain",
			errs.ErrStructural, HeaderSize, len(data))
	}

	engine := endian.GetLittleEndianEngine()
	d := Descriptor{
		ID:          engine.Uint16(data[0:2]),
		Behavior:    format.BehaviorType(data[2]),
		DwordLength: engine.Uint16(data[4:6]),
	}

	switch {
	case IsOCP(d.ID):
		d.Name = OCPName(d.ID)
	case IsVendor(d.ID):
		name, ok := lookupName(names, d.ID)
		if !ok {
			return Descriptor{}, 0, fmt.Errorf("%w: statistic 0x%04x has no strings log entry", errs.ErrCrossReference, d.ID)
		}
		d.Name = name
	default:
		return Descriptor{}, 0, fmt.Errorf("%w: statistic identifier 0x%04x", errs.ErrRange, d.ID)
	}

	if !d.Behavior.IsValid() {
		return Descriptor{}, 0, fmt.Errorf("%w: statistic 0x%04x behavior type %d", errs.ErrRange, d.ID, data[2])
	}

	ns := data[3]
	switch {
	case ns == 0:
	case ns&NamespaceValid != 0 && ns&MaxNamespace != 0:
		d.Namespace = ns & MaxNamespace
	default:
		return Descriptor{}, 0, fmt.Errorf("%w: statistic 0x%04x namespace info 0x%02x", errs.ErrRange, d.ID, ns)
	}

	if d.DwordLength == 0 {
		return Descriptor{}, 0, fmt.Errorf("%w: statistic 0x%04x dword length 0", errs.ErrRange, d.ID)
	}
	if want, ok := OCPDwordLength(d.ID); ok && d.DwordLength != want {
		return Descriptor{}, 0, fmt.Errorf("%w: statistic 0x%04x dword length %d, expected %d",
			errs.ErrRange, d.ID, d.DwordLength, want)
	}
	if err := encoding.CheckReserved(fmt.Sprintf("statistic 0x%04x bytes 6-7", d.ID), data[6:8]); err != nil {
		return Descriptor{}, 0, err
	}

	size := d.Size()
	if err := encoding.CheckBounds(fmt.Sprintf("statistic 0x%04x value", d.ID), len(data), HeaderSize, size-HeaderSize); err != nil {
		return Descriptor{}, 0, err
	}
	d.Value = slices.Clone(data[HeaderSize:size])

	if IsBadBlock(d.ID) {
		bb, err := parseBadBlock(d.ID, d.Value)
		if err != nil {
			return Descriptor{}, 0, err
		}
		d.BadBlock = &bb
	}

	return d, size, nil
}

func parseBadBlock(id uint16, v []byte) (BadBlock, error) {
	if v[0] > badBlockPercentMax {
		return BadBlock{}, fmt.Errorf("%w: statistic 0x%04x bad block percent %d", errs.ErrRange, id, v[0])
	}
	if err := encoding.CheckReserved(fmt.Sprintf("statistic 0x%04x value byte 1", id), v[1:2]); err != nil {
		return BadBlock{}, err
	}
	if err := encoding.CheckReserved(fmt.Sprintf("statistic 0x%04x value bytes 4-7", id), v[4:8]); err != nil {
		return BadBlock{}, err
	}

	return BadBlock{
		Percent:  v[0],
		RawCount: endian.GetLittleEndianEngine().Uint16(v[2:4]),
	}, nil
}

func lookupName(names Names, id uint16) (string, bool) {
	if names == nil {
		return "", false
	}

	return names.StatisticName(id)
}
