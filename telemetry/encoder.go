package telemetry

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/opencomputeproject/ocp-telemetry/config"
	"github.com/opencomputeproject/ocp-telemetry/dataarea"
	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/event"
	"github.com/opencomputeproject/ocp-telemetry/fifo"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/gen"
	"github.com/opencomputeproject/ocp-telemetry/internal/logging"
	"github.com/opencomputeproject/ocp-telemetry/internal/options"
	"github.com/opencomputeproject/ocp-telemetry/section"
	"github.com/opencomputeproject/ocp-telemetry/statistic"
	"github.com/opencomputeproject/ocp-telemetry/stringslog"
)

// DefaultFirmwareVersion is the Data Area 1 firmware version of generated
// logs.
const DefaultFirmwareVersion = "FIRM: XX"

// DefaultOUI is the IEEE OUI of generated logs.
var DefaultOUI = [3]byte{1, 2, 3}

// Encoder generates telemetry and strings log pairs from a configuration.
// An Encoder is not safe for concurrent use when created WithRand.
type Encoder struct {
	logger   *logging.Logger
	seed     uint64
	rng      *rand.Rand
	kind     format.LogKind
	oui      [3]byte
	firmware string
	reason   *section.Reason
}

// NewEncoder creates an Encoder. Without WithSeed or WithRand the random
// source is seeded from the current time.
//
// Returns:
//   - *Encoder: the configured encoder
//   - error: errs.ErrConfig from an invalid option
func NewEncoder(opts ...Option) (*Encoder, error) {
	e := &Encoder{
		logger:   logging.Discard(),
		seed:     uint64(time.Now().UnixNano()), //nolint:gosec
		kind:     format.LogHostInitiated,
		oui:      DefaultOUI,
		firmware: DefaultFirmwareVersion,
	}
	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Seed returns the seed of the random source. It is meaningless when the
// encoder was created WithRand.
func (e *Encoder) Seed() uint64 {
	return e.seed
}

func (e *Encoder) newState(start uint64) *gen.State {
	if e.rng != nil {
		return gen.NewState(e.rng, start)
	}

	return gen.NewSeededState(e.seed, start)
}

// Encode validates cfg and generates a telemetry log and its strings log.
// Without WithRand every call starts from the same seed, so repeated calls
// return identical logs.
//
// Returns:
//   - []byte: the telemetry log
//   - []byte: the strings log
//   - error: errs.ErrConfig for an invalid configuration or content that
//     does not fit its data area
func (e *Encoder) Encode(cfg *config.Config) ([]byte, []byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	st := e.newState(cfg.Timestamp.StartTime)
	sb := stringslog.NewBuilder()

	area1, area2, err := e.statistics(st, sb, cfg)
	if err != nil {
		return nil, nil, err
	}

	a1 := &dataarea.Area1{Statistics: area1}
	a2 := &dataarea.Area2{Statistics: area2}
	if err := e.fifos(st, sb, cfg, a1, a2); err != nil {
		return nil, nil, err
	}

	strs, err := buildStrings(st, sb)
	if err != nil {
		return nil, nil, err
	}

	sizes := cfg.DataAreas.Sizes()
	data2, err := dataarea.BuildArea2(a2, int(sizes[1])) //nolint:gosec
	if err != nil {
		return nil, nil, err
	}

	a1.Header = section.DataArea1Header{
		Timestamp:       st.Timestamp(),
		Profiles:        cfg.Profiles.Count,
		SelectedProfile: cfg.Profiles.Selected,
		StringLogSizeDw: uint64(len(strs) / encoding.DwordSize), //nolint:gosec
		FirmwareVersion: e.firmware,
	}
	a1.SmartHealth = dataarea.RandomSmartHealth(st)
	a1.SmartExtended = dataarea.RandomSmartExtended(st)
	data1, err := dataarea.BuildArea1(a1, a2)
	if err != nil {
		return nil, nil, err
	}

	hdr, err := e.header(st, sizes)
	if err != nil {
		return nil, nil, err
	}

	w := encoding.NewLogWriter()
	defer w.Release()

	w.Bytes(hdr.Bytes())
	w.Bytes(data1)
	w.Bytes(data2)
	w.Bytes(st.Bytes(int(sizes[2]))) //nolint:gosec
	w.Bytes(st.Bytes(int(sizes[3]))) //nolint:gosec
	tel := w.Finish()

	e.logger.Info("generated %s: %d bytes, strings log: %d bytes", e.kind, len(tel), len(strs))
	e.logger.Verbose("statistics: %d in data area 1, %d in data area 2", len(area1), len(area2))
	e.logger.Verbose("vendor unique names: %d events, %d VU events", st.Events.Count(), st.VuEvents.Count())

	return tel, strs, nil
}

// statistics generates the configured statistics plus the random vendor
// statistics and splits them by data area. Vendor statistic names go to sb.
func (e *Encoder) statistics(st *gen.State, sb *stringslog.Builder, cfg *config.Config) (statistic.Table, statistic.Table, error) {
	specs := cfg.Specs()
	if err := statistic.BalanceBandwidth(st, specs); err != nil {
		return nil, nil, err
	}

	used := make(map[uint16]struct{}, len(specs))
	for _, s := range specs {
		used[s.ID] = struct{}{}
	}
	random, err := statistic.RandomVendorSpecs(st, cfg.Statistics.Vendor.RandomFields, cfg.Namespaces, used)
	if err != nil {
		return nil, nil, err
	}
	specs = append(specs, random...)

	var area1, area2 statistic.Table
	for i := range specs {
		s := &specs[i]
		d, err := statistic.Generate(st, s, cfg.Namespaces)
		if err != nil {
			return nil, nil, err
		}
		if statistic.IsVendor(s.ID) {
			if err := sb.AddStatistic(s.ID, s.Definition); err != nil {
				return nil, nil, fmt.Errorf("statistic %q: %w", s.Name, err)
			}
		}

		if s.Area == format.Area1 {
			area1 = append(area1, d)
		} else {
			area2 = append(area2, d)
		}
		if e.logger.Enabled(logging.LevelDebug) {
			e.logger.Debug("statistic 0x%04x %q in %s: %s", d.ID, s.Name, s.Area, d.ValueString())
		}
	}

	return area1, area2, nil
}

// fifos fills the configured FIFOs with random events and assigns them to
// their data areas. FIFO names go to sb.
func (e *Encoder) fifos(st *gen.State, sb *stringslog.Builder, cfg *config.Config, a1 *dataarea.Area1, a2 *dataarea.Area2) error {
	g := event.NewGenerator(st, a1.Statistics, a2.Statistics)

	for _, fc := range cfg.Fifos {
		if fc.Name != "" {
			if err := sb.SetFifoName(fc.Number, fc.Name); err != nil {
				return err
			}
		}
		area := format.DataArea(fc.DataArea)
		if fc.Size == 0 || area == format.AreaNone {
			continue
		}

		f := fifo.Generate(g, fc.Number, fc.Size/encoding.DwordSize, fc.MaxEvents)
		f.Name = fc.Name
		if f.Name == "" {
			f.Name = fmt.Sprintf("FIFO %d", fc.Number)
		}
		switch area {
		case format.Area1:
			a1.Fifos = append(a1.Fifos, f)
		case format.Area2:
			a2.Fifos = append(a2.Fifos, f)
		default:
			return fmt.Errorf("%w: FIFO %d data area %d", errs.ErrConfig, fc.Number, fc.DataArea)
		}
		e.logger.Verbose("%s in %s: %d events, %d of %d bytes", f.Name, area, len(f.Events), f.Used(), f.Size())
	}

	return nil
}

// buildStrings adds the vendor unique event names invented while
// generating and builds the strings log.
func buildStrings(st *gen.State, sb *stringslog.Builder) ([]byte, error) {
	for _, k := range st.Events.Keys() {
		name, _ := st.Events.Name(k)
		if err := sb.AddEvent(k.Class, k.ID, name); err != nil {
			return nil, err
		}
	}
	for _, k := range st.VuEvents.Keys() {
		name, _ := st.VuEvents.Name(k)
		if err := sb.AddVuEvent(k.Class, k.ID, name); err != nil {
			return nil, err
		}
	}

	return sb.Build()
}

func (e *Encoder) header(st *gen.State, sizes [4]uint64) (*section.TelemetryHeader, error) {
	hdr := section.NewTelemetryHeader(e.kind)
	hdr.OUI = e.oui
	if err := hdr.SetAreaSizes(sizes); err != nil {
		return nil, err
	}

	hdr.Scope = format.Scope(st.IntN(int(format.ScopeNotReported), int(format.ScopeSubsystem))) //nolint:gosec
	if e.kind == format.LogHostInitiated {
		hdr.HostGeneration = uint8(st.IntN(0, 0xFF))       //nolint:gosec
		hdr.ControllerDataAvailable = uint8(st.IntN(0, 1)) //nolint:gosec
	}
	hdr.ControllerGeneration = uint8(st.IntN(0, 0xFF)) //nolint:gosec

	switch {
	case e.reason != nil:
		hdr.Reason = *e.reason
	case e.kind == format.LogHostInitiated:
		hdr.Reason = section.NewReason("This is the reason for the host initiated dump")
	default:
		hdr.Reason = section.NewReason("This is the reason for the controller initiated dump")
	}

	return hdr, nil
}
