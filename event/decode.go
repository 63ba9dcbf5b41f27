package event

import (
	"fmt"
	"slices"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/endian"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/section"
	"github.com/opencomputeproject/ocp-telemetry/statistic"
)

// Names resolves the vendor unique identifiers an event can reference.
// *stringslog.Log implements it.
type Names interface {
	statistic.Names
	EventName(class format.EventClass, id uint16) (string, bool)
	VuEventName(class format.EventClass, id uint16) (string, bool)
}

const nvmeStatusReserved = 0x8000

// Decode parses the event at the start of data.
//
// Parameters:
//   - data: bytes from the event start to the end of its FIFO
//   - names: resolves vendor unique identifiers; nil resolves none
//
// Returns:
//   - Event: one of the concrete event types
//   - int: bytes consumed
//   - error: errs.ErrRange for an invalid class, identifier or field value,
//     errs.ErrCrossReference for an unnamed vendor unique identifier,
//     errs.ErrStructural when the event overruns data,
//     errs.ErrReservedField for reserved bytes
func Decode(data []byte, names Names) (Event, int, error) {
	if len(data) < PrefixSize {
		return nil, 0, fmt.Errorf("%w: event needs %d bytes, %d remain", errs.ErrStructural, PrefixSize, len(data))
	}

	class := format.EventClass(data[0])
	switch {
	case class == format.ClassSnapshot:
		return decodeSnapshot(data, names)
	case class.IsVendorUnique():
		return decodeVendorUnique(data, names)
	case class.IsFixed():
		return decodeFixed(data, names)
	default:
		return nil, 0, fmt.Errorf("%w: event class 0x%02x", errs.ErrRange, data[0])
	}
}

func decodeFixed(data []byte, names Names) (Event, int, error) {
	engine := endian.GetLittleEndianEngine()
	class := format.EventClass(data[0])
	info := fixedClasses[class]
	f := Fixed{EventClass: class, EventID: engine.Uint16(data[1:3])}
	dw := int(data[3])

	if f.EventID > info.maxID() && f.EventID < VendorIDMin {
		return nil, 0, fmt.Errorf("%w: %s event identifier 0x%04x", errs.ErrRange, class, f.EventID)
	}
	if dw < info.baseDwords {
		return nil, 0, fmt.Errorf("%w: %s event dword size %d, need at least %d", errs.ErrRange, class, dw, info.baseDwords)
	}

	size := PrefixSize + dw*encoding.DwordSize
	if err := encoding.CheckBounds(fmt.Sprintf("%s event 0x%04x", class, f.EventID), len(data), 0, size); err != nil {
		return nil, 0, err
	}

	payloadEnd := PrefixSize + info.baseDwords*encoding.DwordSize
	payload := data[PrefixSize:payloadEnd]
	if dw > info.baseDwords {
		vu, err := decodeSuffix(class, data[payloadEnd:size], names)
		if err != nil {
			return nil, 0, err
		}
		f.Vu = vu
	}

	e, err := decodePayload(f, payload)
	if err != nil {
		return nil, 0, err
	}

	return e, size, nil
}

func decodeSuffix(class format.EventClass, b []byte, names Names) (*VuSuffix, error) {
	vu := &VuSuffix{
		ID:   endian.GetLittleEndianEngine().Uint16(b[0:2]),
		Data: slices.Clone(b[2:]),
	}

	var ok bool
	if names != nil {
		vu.Name, ok = names.VuEventName(class, vu.ID)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s event VU identifier 0x%04x has no strings log entry", errs.ErrCrossReference, class, vu.ID)
	}

	return vu, nil
}

func decodePayload(f Fixed, p []byte) (Event, error) {
	label := fmt.Sprintf("%s event 0x%04x", f.EventClass, f.EventID)
	engine := endian.GetLittleEndianEngine()

	switch f.EventClass {
	case format.ClassTimestamp:
		ts, err := section.ParseTimestamp(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}

		return &Timestamp{Fixed: f, Timestamp: ts}, nil

	case format.ClassPCIe:
		e := &PCIe{Fixed: f}
		if f.EventID != PCIeLinkNegotiated {
			return e, encoding.CheckReserved(label+" bytes 4-7", p)
		}

		l := LinkChange{State: p[0], Speed: p[1], Width: p[2]}
		switch {
		case int(l.State) >= len(pcieStateNames):
			return nil, fmt.Errorf("%w: %s state change %d", errs.ErrRange, label, l.State)
		case l.Speed == 0 || int(l.Speed) >= len(pcieSpeedNames):
			return nil, fmt.Errorf("%w: %s link speed %d", errs.ErrRange, label, l.Speed)
		case l.Width == 0 || int(l.Width) >= len(pcieWidthNames):
			return nil, fmt.Errorf("%w: %s link width %d", errs.ErrRange, label, l.Width)
		}
		e.Link = &l

		return e, encoding.CheckReserved(label+" byte 7", p[3:4])

	case format.ClassNVMe:
		e := &NVMe{Fixed: f}
		switch f.EventID {
		case NVMeAdminCommandError, NVMeIOCommandError:
			e.Opcode = p[0]
			e.Status = engine.Uint16(p[1:3])
			if e.Status&nvmeStatusReserved != 0 {
				return nil, fmt.Errorf("%w: %s status 0x%04x", errs.ErrRange, label, e.Status)
			}

			return e, encoding.CheckReserved(label+" bytes 7-11", p[3:8])
		case NVMeCCChanged, NVMeCSTSChanged:
			e.Register = engine.Uint32(p[0:4])
			return e, encoding.CheckReserved(label+" bytes 8-11", p[4:8])
		default:
			return e, encoding.CheckReserved(label+" bytes 4-11", p)
		}

	case format.ClassReset:
		return &Reset{Fixed: f}, nil
	case format.ClassBoot:
		return &Boot{Fixed: f}, nil
	case format.ClassFirmwareAssert:
		return &FirmwareAssert{Fixed: f}, nil
	case format.ClassTemperature:
		return &Temperature{Fixed: f}, nil
	case format.ClassMedia:
		return &Media{Fixed: f}, nil

	case format.ClassMediaWear:
		e := &MediaWear{Fixed: f}
		if f.EventID != 0 {
			return e, encoding.CheckReserved(label+" bytes 4-15", p)
		}
		e.HostTBWritten = engine.Uint32(p[0:4])
		e.MediaTBWritten = engine.Uint32(p[4:8])
		e.MediaTBErased = engine.Uint32(p[8:12])

		return e, nil
	}

	return nil, fmt.Errorf("%w: event class 0x%02x", errs.ErrRange, uint8(f.EventClass))
}

func decodeSnapshot(data []byte, names Names) (Event, int, error) {
	if err := encoding.CheckReserved("snapshot event bytes 1-3", data[1:PrefixSize]); err != nil {
		return nil, 0, err
	}

	var statNames statistic.Names
	if names != nil {
		statNames = names
	}
	d, n, err := statistic.Decode(data[PrefixSize:], statNames)
	if err != nil {
		return nil, 0, fmt.Errorf("snapshot event: %w", err)
	}

	return &Snapshot{Statistic: d}, PrefixSize + n, nil
}

func decodeVendorUnique(data []byte, names Names) (Event, int, error) {
	e := &VendorUnique{
		EventClass: format.EventClass(data[0]),
		EventID:    endian.GetLittleEndianEngine().Uint16(data[1:3]),
	}

	var ok bool
	if names != nil {
		e.Name, ok = names.EventName(e.EventClass, e.EventID)
	}
	if !ok {
		return nil, 0, fmt.Errorf("%w: vendor unique event 0x%02x/0x%04x has no strings log entry",
			errs.ErrCrossReference, uint8(e.EventClass), e.EventID)
	}

	size := PrefixSize + int(data[3])*encoding.DwordSize
	if err := encoding.CheckBounds(fmt.Sprintf("vendor unique event 0x%02x/0x%04x", uint8(e.EventClass), e.EventID), len(data), 0, size); err != nil {
		return nil, 0, err
	}
	e.Data = slices.Clone(data[PrefixSize:size])

	return e, size, nil
}
