package statistic

import (
	"fmt"
	"math/bits"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/endian"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/gen"
)

// RandomRequirement is the requirement tag of generated vendor statistics.
const RandomRequirement = "STATI-31"

// Spec describes a statistic to generate.
type Spec struct {
	Name        string
	ID          uint16
	Min         uint64
	Max         uint64
	DwordLength uint16
	Behavior    format.BehaviorType
	Namespace   int
	Area        format.DataArea
	Requirement string
	Definition  string
}

// Validate checks the spec against the namespace count of the device.
//
// Returns:
//   - error: errs.ErrConfig naming the statistic and the offending field
func (s *Spec) Validate(namespaces int) error {
	switch {
	case s.Behavior < format.Behavior1 || s.Behavior > format.Behavior6:
		return fmt.Errorf("%w: statistic %q behavior type %d", errs.ErrConfig, s.Name, s.Behavior)
	case s.Namespace < 0 || s.Namespace > namespaces:
		return fmt.Errorf("%w: statistic %q namespace %d exceeds %d namespaces", errs.ErrConfig, s.Name, s.Namespace, namespaces)
	case s.Namespace > MaxNamespace:
		return fmt.Errorf("%w: statistic %q namespace %d does not fit 7 bits", errs.ErrConfig, s.Name, s.Namespace)
	case s.DwordLength < 1 || s.DwordLength > MaxDwordLength:
		return fmt.Errorf("%w: statistic %q dword size %d", errs.ErrConfig, s.Name, s.DwordLength)
	case s.Max < s.Min:
		return fmt.Errorf("%w: statistic %q max %d is below min %d", errs.ErrConfig, s.Name, s.Max, s.Min)
	case s.Area != format.Area1 && s.Area != format.Area2:
		return fmt.Errorf("%w: statistic %q data area %d", errs.ErrConfig, s.Name, s.Area)
	}

	switch {
	case IsOCP(s.ID):
		if want, _ := OCPDwordLength(s.ID); s.DwordLength != want {
			return fmt.Errorf("%w: statistic %q (0x%02x) dword size %d, expected %d", errs.ErrConfig, s.Name, s.ID, s.DwordLength, want)
		}
	case IsVendor(s.ID):
		if err := encoding.ValidateName(s.Definition); err != nil {
			return fmt.Errorf("statistic %q definition: %w", s.Name, err)
		}
	default:
		return fmt.Errorf("%w: statistic %q identifier 0x%04x", errs.ErrConfig, s.Name, s.ID)
	}

	if bitsAvail := int(s.DwordLength) * 32; bitsAvail < 64 && bits.Len64(s.Max) > bitsAvail {
		return fmt.Errorf("%w: statistic %q max %d does not fit %d dwords", errs.ErrConfig, s.Name, s.Max, s.DwordLength)
	}

	return nil
}

// Generate builds a descriptor with a value drawn uniformly from
// [s.Min, s.Max]. Bad block identifiers draw a percent in 0..100 and a
// random raw count instead.
func Generate(st *gen.State, s *Spec, namespaces int) (Descriptor, error) {
	if err := s.Validate(namespaces); err != nil {
		return Descriptor{}, err
	}

	d := Descriptor{
		ID:          s.ID,
		Behavior:    s.Behavior,
		Namespace:   uint8(s.Namespace), //nolint:gosec
		DwordLength: s.DwordLength,
		Value:       make([]byte, int(s.DwordLength)*encoding.DwordSize),
		Name:        s.Name,
	}
	if IsVendor(s.ID) {
		d.Name = s.Definition
	}

	if IsBadBlock(s.ID) {
		d.BadBlock = &BadBlock{
			Percent:  uint8(st.IntN(0, badBlockPercentMax)), //nolint:gosec
			RawCount: st.Uint16(),
		}
		d.Value[0] = d.BadBlock.Percent
		endian.GetLittleEndianEngine().PutUint16(d.Value[2:4], d.BadBlock.RawCount)

		return d, nil
	}

	endian.PutUintN(d.Value, st.Uint64Range(s.Min, s.Max))

	return d, nil
}

// BalanceBandwidth pins Host Write Bandwidth and GC Write Bandwidth so they
// sum to 100 percent. When both are present the host share is drawn from its
// range, the GC share is the remainder, and both specs collapse to that
// single value.
//
// Returns:
//   - error: errs.ErrConfig if the remainder falls outside the GC range
func BalanceBandwidth(st *gen.State, specs []Spec) error {
	var host, gc *Spec
	for i := range specs {
		switch specs[i].ID {
		case IDHostWriteBandwidth:
			host = &specs[i]
		case IDGCWriteBandwidth:
			gc = &specs[i]
		}
	}
	if host == nil || gc == nil {
		return nil
	}
	if host.Max < host.Min || host.Max > 100 {
		return fmt.Errorf("%w: statistic %q range %d..%d", errs.ErrConfig, host.Name, host.Min, host.Max)
	}

	hostValue := st.Uint64Range(host.Min, host.Max)
	gcValue := 100 - hostValue
	if gcValue < gc.Min || gcValue > gc.Max {
		return fmt.Errorf("%w: statistics %q and %q cannot sum to 100 (host %d, GC range %d..%d)",
			errs.ErrConfig, host.Name, gc.Name, hostValue, gc.Min, gc.Max)
	}

	host.Min, host.Max = hostValue, hostValue
	gc.Min, gc.Max = gcValue, gcValue

	return nil
}

// RandomVendorSpecs invents count vendor statistics with identifiers drawn
// from the 8000h..FFFEh range that used does not already hold.
func RandomVendorSpecs(st *gen.State, count, namespaces int, used map[uint16]struct{}) ([]Spec, error) {
	free := make([]uint16, 0, 0x7FFF)
	for id := uint32(MinVendorID); id < 0xFFFF; id++ {
		if _, ok := used[uint16(id)]; !ok {
			free = append(free, uint16(id))
		}
	}
	if count > len(free) {
		return nil, fmt.Errorf("%w: %d random statistics requested, %d identifiers free", errs.ErrConfig, count, len(free))
	}

	specs := make([]Spec, 0, count)
	for x := range count {
		i := st.Rand().IntN(len(free))
		id := free[i]
		free[i] = free[len(free)-1]
		free = free[:len(free)-1]

		dw := st.IntN(1, MaxDwordLength)
		maxValue := st.Rand().Uint64()
		if width := dw * 32; width < 64 {
			maxValue &= 1<<width - 1
		}
		definition := fmt.Sprintf("Random Statistic Variable number %d %d", x, id)

		specs = append(specs, Spec{
			Name:        definition,
			ID:          id,
			Min:         st.Uint64Range(0, maxValue),
			Max:         maxValue,
			DwordLength: uint16(dw), //nolint:gosec
			Behavior:    format.BehaviorType(st.IntN(int(format.Behavior1), int(format.Behavior6))), //nolint:gosec
			Namespace:   st.IntN(0, min(namespaces, MaxNamespace)),
			Area:        format.DataArea(st.IntN(int(format.Area1), int(format.Area2))), //nolint:gosec
			Requirement: RandomRequirement,
			Definition:  definition,
		})
	}

	return specs, nil
}
