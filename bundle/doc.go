// Package bundle packs a telemetry log and its strings log into one file.
//
// A bundle is a 48-byte header followed by the compressed concatenation of
// the two logs:
//
//	Bytes | Field
//	------|-----------------------------------
//	0-7   | magic "OCPTBNDL"
//	8     | version (1)
//	9     | compression type
//	10-11 | reserved
//	12-15 | telemetry log length
//	16-19 | strings log length
//	20-23 | compressed payload length
//	24-31 | telemetry log xxHash64
//	32-39 | strings log xxHash64
//	40-47 | compressed payload xxHash64
//
// All integers are little-endian. Unpack verifies every length and checksum
// before returning the logs.
package bundle
