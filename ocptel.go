// Package ocptel decodes, validates and generates OCP NVMe telemetry logs
// together with their companion strings logs.
//
// A Telemetry Host-Initiated (07h) or Controller-Initiated (08h) log is a
// 512-byte header followed by up to four data areas. Data Area 1 carries a
// header, the SMART / Health Information (02h) and extended SMART (C0h)
// pages, a statistics table and event FIFOs; Data Area 2 carries a second
// statistics table and more FIFOs. Data Areas 3 and 4 are vendor defined
// and kept opaque. Vendor unique identifiers in statistics and events are
// named by the strings log.
//
// # Core Features
//
//   - Strict decoding: reserved bytes, ordering, padding, bounds and
//     strings log references are all checked, and every failure wraps one
//     of the errs sentinels
//   - Configuration driven generation of conformant log pairs, repeatable
//     with a seed
//   - Bundle files holding both logs, compressed (None, Zstd, S2, LZ4) and
//     protected by xxHash64 checksums
//
// # Basic Usage
//
// Generating a log pair from the sample configuration:
//
//	tel, strs, err := ocptel.Generate(ocptel.DefaultConfig(), telemetry.WithSeed(42))
//
// Decoding it again:
//
//	log, err := ocptel.Decode(tel, strs)
//	for _, f := range log.Fifos() {
//	    fmt.Printf("%s: %d events\n", f.Name, len(f.Events))
//	}
//
// Packing both logs into one file:
//
//	data, err := ocptel.Pack(tel, strs, bundle.WithCompression(format.CompressionZstd))
//	tel, strs, err = ocptel.Unpack(data)
//
// # Package Structure
//
// This package wraps the most common calls. The telemetry, stringslog,
// dataarea, fifo, event, statistic and section packages expose each layer
// of the format for finer control.
package ocptel

import (
	"github.com/opencomputeproject/ocp-telemetry/bundle"
	"github.com/opencomputeproject/ocp-telemetry/config"
	"github.com/opencomputeproject/ocp-telemetry/internal/hash"
	"github.com/opencomputeproject/ocp-telemetry/stringslog"
	"github.com/opencomputeproject/ocp-telemetry/telemetry"
)

// Decode decodes and validates a telemetry log against its strings log.
//
// Returns:
//   - *telemetry.Log: the decoded log
//   - error: wraps one of the errs kind sentinels
func Decode(tel, strs []byte) (*telemetry.Log, error) {
	return telemetry.DecodePair(tel, strs)
}

// DecodeStrings decodes and validates a strings log on its own.
func DecodeStrings(strs []byte) (*stringslog.Log, error) {
	return stringslog.Decode(strs)
}

// DefaultConfig returns the sample generation configuration: all 29 OCP
// statistics, three vendor statistics plus random ones, and 16 FIFOs split
// between Data Areas 1 and 2.
func DefaultConfig() *config.Config {
	return config.Default()
}

// Generate creates a telemetry log and its strings log from cfg.
//
// Parameters:
//   - cfg: generation configuration; it is validated first
//   - opts: encoder options such as telemetry.WithSeed
//
// Returns:
//   - []byte: the telemetry log
//   - []byte: the strings log
//   - error: errs.ErrConfig for an invalid configuration
func Generate(cfg *config.Config, opts ...telemetry.Option) ([]byte, []byte, error) {
	enc, err := telemetry.NewEncoder(opts...)
	if err != nil {
		return nil, nil, err
	}

	return enc.Encode(cfg)
}

// Pack packs a telemetry log and its strings log into a bundle. It does not
// validate the logs.
func Pack(tel, strs []byte, opts ...bundle.Option) ([]byte, error) {
	return bundle.Pack(tel, strs, opts...)
}

// Unpack verifies a bundle and returns the telemetry log and the strings
// log it holds.
func Unpack(data []byte) ([]byte, []byte, error) {
	b, err := bundle.Unpack(data)
	if err != nil {
		return nil, nil, err
	}

	return b.Telemetry, b.Strings, nil
}

// Fingerprint identifies a log pair by the xxHash64 of both logs.
func Fingerprint(tel, strs []byte) uint64 {
	return hash.Fingerprint(tel, strs)
}
