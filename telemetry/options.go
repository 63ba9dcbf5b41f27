package telemetry

import (
	"fmt"
	"math/rand/v2"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/internal/logging"
	"github.com/opencomputeproject/ocp-telemetry/internal/options"
	"github.com/opencomputeproject/ocp-telemetry/section"
)

// Option configures an Encoder.
type Option = options.Option[*Encoder]

// WithLogger sets the logger used to report encoding progress.
func WithLogger(l *logging.Logger) Option {
	return options.NoError(func(e *Encoder) {
		e.logger = l
	})
}

// WithSeed seeds the random source. Encoders with the same seed and
// configuration produce identical logs.
func WithSeed(seed uint64) Option {
	return options.NoError(func(e *Encoder) {
		e.seed = seed
		e.rng = nil
	})
}

// WithRand sets the random source directly. It overrides WithSeed.
func WithRand(r *rand.Rand) Option {
	return options.New(func(e *Encoder) error {
		if r == nil {
			return fmt.Errorf("%w: nil random source", errs.ErrConfig)
		}
		e.rng = r

		return nil
	})
}

// WithLogKind selects a host-initiated (07h, the default) or
// controller-initiated (08h) log.
func WithLogKind(kind format.LogKind) Option {
	return options.New(func(e *Encoder) error {
		if !kind.IsValid() {
			return fmt.Errorf("%w: log identifier 0x%02x", errs.ErrConfig, uint8(kind))
		}
		e.kind = kind

		return nil
	})
}

// WithOUI sets the IEEE OUI recorded in the telemetry header.
func WithOUI(oui [3]byte) Option {
	return options.NoError(func(e *Encoder) {
		e.oui = oui
	})
}

// WithFirmwareVersion sets the Data Area 1 firmware version, at most 8
// ASCII characters.
func WithFirmwareVersion(version string) Option {
	return options.New(func(e *Encoder) error {
		var field [section.FirmwareVersionSize]byte
		if err := encoding.PutFixedASCII(field[:], version); err != nil {
			return fmt.Errorf("firmware version: %w", err)
		}
		e.firmware = version

		return nil
	})
}

// WithReason sets the reason identifier of the telemetry header. Without
// it the error id carries a short text naming the log kind.
func WithReason(r section.Reason) Option {
	return options.NoError(func(e *Encoder) {
		e.reason = &r
	})
}
