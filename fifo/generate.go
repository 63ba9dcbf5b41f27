package fifo

import (
	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/event"
	"github.com/opencomputeproject/ocp-telemetry/section"
)

// Generate fills a FIFO of sizeDw dwords with random events. It stops at
// the first event that would overflow the FIFO or once maxEvents events
// were added; maxEvents <= 0 means no limit. The caller places the result
// by setting Area and Location.Start.
func Generate(g *event.Generator, index int, sizeDw uint64, maxEvents int) *Fifo {
	f := &Fifo{
		Index:    index,
		Location: section.TableLocation{Size: sizeDw},
	}

	free := int(sizeDw) * encoding.DwordSize //nolint:gosec
	for maxEvents <= 0 || len(f.Events) < maxEvents {
		e := g.Next(index, len(f.Events))
		if e.Size() > free {
			break
		}
		f.Events = append(f.Events, e)
		free -= e.Size()
	}

	return f
}
