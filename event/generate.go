package event

import (
	"fmt"
	"slices"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/gen"
	"github.com/opencomputeproject/ocp-telemetry/statistic"
)

const (
	maxVendorDwords = 8
	maxNVMeStatus   = 5
)

// Generator draws random events. Snapshot events copy a descriptor from
// one of the two statistics tables; when both are empty no snapshot events
// are produced.
type Generator struct {
	st     *gen.State
	tables []statistic.Table
	kinds  []func(g *Generator, fifo, n int) Event
}

// NewGenerator creates a Generator drawing from st. area1 and area2 are the
// statistics tables snapshot events copy from.
func NewGenerator(st *gen.State, area1, area2 statistic.Table) *Generator {
	g := &Generator{st: st}
	for _, t := range []statistic.Table{area1, area2} {
		if len(t) > 0 {
			g.tables = append(g.tables, t)
		}
	}

	g.kinds = []func(g *Generator, fifo, n int) Event{
		(*Generator).timestamp,
		(*Generator).pcie,
		(*Generator).nvme,
		fixedOnly(format.ClassReset, func(f Fixed) Event { return &Reset{f} }),
		fixedOnly(format.ClassBoot, func(f Fixed) Event { return &Boot{f} }),
		fixedOnly(format.ClassFirmwareAssert, func(f Fixed) Event { return &FirmwareAssert{f} }),
		fixedOnly(format.ClassTemperature, func(f Fixed) Event { return &Temperature{f} }),
		fixedOnly(format.ClassMedia, func(f Fixed) Event { return &Media{f} }),
		(*Generator).mediaWear,
		(*Generator).vendorUnique,
	}
	if len(g.tables) > 0 {
		g.kinds = append(g.kinds, (*Generator).snapshot)
	}

	return g
}

// Next returns a random event for event number n of FIFO fifo. The numbers
// only feed the names invented for vendor unique identifiers.
func (g *Generator) Next(fifo, n int) Event {
	return gen.Pick(g.st, g.kinds)(g, fifo, n)
}

// fixed picks an identifier (an OCP one or a vendor unique one with equal
// odds) and, on a coin flip, a vendor unique suffix.
func (g *Generator) fixed(class format.EventClass, fifo, n int) Fixed {
	info := fixedClasses[class]
	f := Fixed{EventClass: class}
	if g.st.Coin() {
		f.EventID = uint16(g.st.IntN(0, int(info.maxID()))) //nolint:gosec
	} else {
		f.EventID = uint16(g.st.IntN(VendorIDMin, 0xFFFF)) //nolint:gosec
	}

	if g.st.Coin() {
		extra := g.st.IntN(1, info.maxExtra)
		id := g.st.Uint16()
		name := g.st.VuEvents.Track(gen.Key{Class: class, ID: id},
			fmt.Sprintf("Vendor Unique Identifier %d %d 0x%04X", fifo, n, id))
		f.Vu = &VuSuffix{
			ID:   id,
			Data: g.st.Bytes(extra*encoding.DwordSize - 2),
			Name: name,
		}
	}

	return f
}

func fixedOnly(class format.EventClass, wrap func(Fixed) Event) func(g *Generator, fifo, n int) Event {
	return func(g *Generator, fifo, n int) Event {
		return wrap(g.fixed(class, fifo, n))
	}
}

func (g *Generator) timestamp(fifo, n int) Event {
	f := g.fixed(format.ClassTimestamp, fifo, n)
	return &Timestamp{Fixed: f, Timestamp: g.st.Timestamp()}
}

func (g *Generator) pcie(fifo, n int) Event {
	e := &PCIe{Fixed: g.fixed(format.ClassPCIe, fifo, n)}
	if e.EventID == PCIeLinkNegotiated {
		e.Link = &LinkChange{
			State: uint8(g.st.IntN(0, len(pcieStateNames)-1)), //nolint:gosec
			Speed: uint8(g.st.IntN(1, len(pcieSpeedNames)-1)), //nolint:gosec
			Width: uint8(g.st.IntN(1, len(pcieWidthNames)-1)), //nolint:gosec
		}
	}

	return e
}

func (g *Generator) nvme(fifo, n int) Event {
	e := &NVMe{Fixed: g.fixed(format.ClassNVMe, fifo, n)}
	switch e.EventID {
	case NVMeAdminCommandError:
		e.Opcode = gen.Pick(g.st, adminOpcodes)
		e.Status = uint16(g.st.IntN(1, maxNVMeStatus)) //nolint:gosec
	case NVMeIOCommandError:
		e.Opcode = gen.Pick(g.st, ioOpcodes)
		e.Status = uint16(g.st.IntN(1, maxNVMeStatus)) //nolint:gosec
	case NVMeCCChanged, NVMeCSTSChanged:
		e.Register = g.st.Uint32()
	}

	return e
}

func (g *Generator) mediaWear(fifo, n int) Event {
	f := g.fixed(format.ClassMediaWear, fifo, n)
	e := &MediaWear{Fixed: f}
	if e.EventID == 0 {
		e.HostTBWritten = g.st.Uint32()
		e.MediaTBWritten = g.st.Uint32()
		e.MediaTBErased = g.st.Uint32()
	}

	return e
}

func (g *Generator) vendorUnique(fifo, n int) Event {
	class := format.EventClass(g.st.IntN(int(format.ClassVendorUnique), 0xFF)) //nolint:gosec
	id := g.st.Uint16()
	name := g.st.Events.Track(gen.Key{Class: class, ID: id},
		fmt.Sprintf("Vendor Unique Event %d %d 0x%04X", fifo, n, id))

	return &VendorUnique{
		EventClass: class,
		EventID:    id,
		Data:       g.st.Bytes(g.st.IntN(1, maxVendorDwords) * encoding.DwordSize),
		Name:       name,
	}
}

func (g *Generator) snapshot(_, _ int) Event {
	table := gen.Pick(g.st, g.tables)
	d := gen.Pick(g.st, table)
	d.Value = slices.Clone(d.Value)
	if d.BadBlock != nil {
		bb := *d.BadBlock
		d.BadBlock = &bb
	}

	return &Snapshot{Statistic: d}
}
