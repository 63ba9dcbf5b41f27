// Package statistic encodes and decodes OCP statistic descriptors and the
// statistics tables of data areas 1 and 2.
//
// Identifiers 1..29 are assigned by the OCP Datacenter NVMe SSD
// specification and carry a fixed dword length. Identifiers 8000h and above
// are vendor unique and must be named in the strings log. Identifiers
// 1Bh..1Dh hold a bad block percent and raw count instead of a plain
// integer.
package statistic
