// Package telemetry ties the section, statistic, event, fifo and dataarea
// codecs together into whole-log operations.
//
// Decoding validates a telemetry log against its strings log:
//
//	tel, err := telemetry.DecodePair(telBytes, stringsBytes)
//
// Encoding turns a configuration into a matching pair of logs:
//
//	enc, err := telemetry.NewEncoder(telemetry.WithSeed(42))
//	tel, strs, err := enc.Encode(cfg)
//
// The encoder builds the logs in dependency order: statistics, FIFOs, the
// strings log, Data Area 2, Data Area 1 (which records the Data Area 2
// layout and the strings log size), Data Areas 3 and 4, and finally the
// telemetry header.
package telemetry
