// Package section defines the fixed-layout records of the OCP telemetry and
// strings logs.
//
// Every record follows the same shape: a struct with a Parse method that
// validates and decodes a byte slice, a Bytes method that serializes it, and
// a ParseX helper returning the record by value. All integers are
// little-endian and all size and offset fields count dwords.
//
// # Telemetry Log Layout
//
//	┌─────────────────────────────────────────────┐
//	│ TelemetryHeader (block 0, 512 bytes)        │
//	│  - log identifier, OUI, last blocks         │
//	│  - scope / generation / data available      │
//	│  - Reason (bytes 384-511)                   │
//	├─────────────────────────────────────────────┤
//	│ Data Area 1 (32 blocks)                     │
//	│  - DataArea1Header (512 bytes)              │
//	│  - SmartHealth 02h (512 bytes)              │
//	│  - SmartExtended C0h (512 bytes)            │
//	│  - statistics, FIFOs, zero fill             │
//	├─────────────────────────────────────────────┤
//	│ Data Area 2: statistics, FIFOs, zero fill   │
//	├─────────────────────────────────────────────┤
//	│ Data Area 3 / 4: opaque                     │
//	└─────────────────────────────────────────────┘
//
// # Strings Log Layout
//
//	┌─────────────────────────────────────────────┐
//	│ StringsHeader (432 bytes)                   │
//	├─────────────────────────────────────────────┤
//	│ statistics identifier table (StringEntry)   │
//	│ event identifier table (StringEntry)        │
//	│ vendor unique event table (StringEntry)     │
//	├─────────────────────────────────────────────┤
//	│ ASCII table (space padded names)            │
//	└─────────────────────────────────────────────┘
//
// Parse methods check reserved bytes and bits, fixed versions and GUIDs,
// and field ranges that do not depend on other records. Cross-record
// geometry (last blocks against the log length, chained string tables) is
// checked by the Validate methods once the full buffer length is known.
package section
