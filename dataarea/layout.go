package dataarea

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/section"
)

const (
	headerDw     = section.TelemetryHeaderSize / encoding.DwordSize
	area1FloorDw = section.DataArea1StatsOffset / encoding.DwordSize
	area1StatsDw = headerDw + area1FloorDw // DA1 statistics start written by BuildArea1
)

// region is a dword range inside one data area.
type region struct {
	label string
	loc   section.TableLocation
}

// checkRegions verifies that no region starts below floorDw and that no two
// regions overlap. Empty regions are ignored.
func checkRegions(area format.DataArea, floorDw uint64, regions []region) error {
	regions = slices.DeleteFunc(slices.Clone(regions), func(r region) bool { return r.loc.Size == 0 })
	slices.SortFunc(regions, func(a, b region) int { return cmp.Compare(a.loc.Start, b.loc.Start) })

	for i, r := range regions {
		if r.loc.Start < floorDw {
			return fmt.Errorf("%w: %s %s starts at dword 0x%x, below dword 0x%x",
				errs.ErrStructural, area, r.label, r.loc.Start, floorDw)
		}
		if i > 0 && regions[i-1].loc.End() > r.loc.Start {
			return fmt.Errorf("%w: %s %s overlaps %s", errs.ErrStructural, area, r.label, regions[i-1].label)
		}
	}

	return nil
}

// fifoRegions lists the FIFOs of area from a Data Area 1 header.
func fifoRegions(hdr *section.DataArea1Header, area format.DataArea) []region {
	var regions []region
	for i, loc := range hdr.Fifos {
		if loc.Area == area {
			regions = append(regions, region{label: fmt.Sprintf("FIFO %d", i+1), loc: loc.TableLocation})
		}
	}

	return regions
}
