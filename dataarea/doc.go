// Package dataarea assembles and disassembles Data Areas 1 and 2 of an OCP
// telemetry log.
//
// Data Area 1 is fixed at 32 blocks:
//
//	Offset | Content
//	-------|-----------------------------------------------
//	0      | Data Area 1 header (section.DataArea1Header)
//	512    | SMART / Health Information (02h)
//	1024   | SMART / Health Information Extension (C0h)
//	1536   | statistics table, then the FIFOs located in Data Area 1
//
// Data Area 2 starts with its statistics table followed by its FIFOs.
// Within an area FIFOs are placed in FIFO number order and the unused tail
// is zero. The Data Area 1 statistics start is counted from the start of
// the telemetry log; every other location is counted from the start of the
// owning area.
package dataarea
