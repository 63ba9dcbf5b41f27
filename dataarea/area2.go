package dataarea

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/fifo"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/section"
	"github.com/opencomputeproject/ocp-telemetry/statistic"
)

// Area2 is a decoded or assembled Data Area 2.
type Area2 struct {
	Statistics statistic.Table
	Fifos      []*fifo.Fifo // FIFOs located in Data Area 2, by FIFO number
}

// DecodeArea2 decodes Data Area 2 using the locations recorded in the Data
// Area 1 header.
//
// Returns:
//   - *Area2: the decoded area
//   - error: errs.ErrStructural for a statistics table or FIFO outside the
//     area or overlapping another region, or any statistic or event
//     decoding error
func DecodeArea2(data []byte, hdr *section.DataArea1Header, names fifo.Names) (*Area2, error) {
	regions := append(fifoRegions(hdr, format.Area2), region{label: "statistics table", loc: hdr.DA2Statistics})
	if err := checkRegions(format.Area2, 0, regions); err != nil {
		return nil, err
	}

	a := &Area2{}
	var err error
	if a.Statistics, err = decodeStatistics("data area 2", data, hdr.DA2Statistics, names); err != nil {
		return nil, err
	}
	if a.Fifos, err = decodeFifos(hdr, format.Area2, data, names); err != nil {
		return nil, err
	}

	return a, nil
}

// BuildArea2 lays out and serializes Data Area 2: the statistics table at
// offset 0, then the FIFOs in FIFO number order, then zeros up to size
// bytes. It sets the area and start of every FIFO.
//
// Returns:
//   - []byte: size bytes
//   - error: errs.ErrConfig if the content does not fit in size bytes
func BuildArea2(a *Area2, size int) ([]byte, error) {
	w := encoding.NewWriter()
	defer w.Release()

	w.Bytes(a.Statistics.Bytes())
	if err := placeFifos(w, a.Fifos, format.Area2); err != nil {
		return nil, err
	}
	if w.Len() > size {
		return nil, fmt.Errorf("%w: data area 2 content is %d bytes, area holds %d", errs.ErrConfig, w.Len(), size)
	}
	w.PadTo(size)

	return w.Finish(), nil
}
