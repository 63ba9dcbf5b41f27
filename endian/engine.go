// Package endian provides the byte order engine used by every fixed-layout
// record in the telemetry and strings logs.
//
// All multi-byte integers in both logs are little-endian. The package combines
// binary.ByteOrder and binary.AppendByteOrder into the EndianEngine interface
// and adds the odd-width accessors the log formats need (24-bit and 48-bit
// counters, 6-byte raw counts and arbitrary 1..8 byte fields).
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	last := engine.Uint16(hdr[8:10])
//	ms := endian.Uint48(ts[0:6])
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instance is immutable and stateless.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian from the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// Uint24 decodes a 3-byte little-endian unsigned integer.
func Uint24(b []byte) uint32 {
	_ = b[2] // bounds check hint to compiler
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

// PutUint24 encodes v into 3 little-endian bytes. Bits above 24 are dropped.
func PutUint24(b []byte, v uint32) {
	_ = b[2]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}

// Uint48 decodes a 6-byte little-endian unsigned integer.
func Uint48(b []byte) uint64 {
	_ = b[5]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 |
		uint64(b[3])<<24 | uint64(b[4])<<32 | uint64(b[5])<<40
}

// PutUint48 encodes v into 6 little-endian bytes. Bits above 48 are dropped.
func PutUint48(b []byte, v uint64) {
	_ = b[5]
	for i := range 6 {
		b[i] = byte(v >> (8 * i))
	}
}

// UintN decodes a little-endian unsigned integer of len(b) bytes.
//
// Parameters:
//   - b: 1 to 8 bytes
//
// Returns:
//   - uint64: decoded value, bytes beyond the eighth are ignored
func UintN(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		if i >= 8 {
			continue
		}
		v = v<<8 | uint64(b[i])
	}

	return v
}

// PutUintN encodes v into len(b) little-endian bytes, zero-filling any bytes
// beyond the eighth.
func PutUintN(b []byte, v uint64) {
	for i := range b {
		if i < 8 {
			b[i] = byte(v >> (8 * i))
		} else {
			b[i] = 0
		}
	}
}
