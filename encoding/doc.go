// Package encoding implements the primitive field codec shared by the
// telemetry and strings log codecs.
//
// It provides bounds and reserved-field checks that map violations onto the
// errs sentinels, a pooled little-endian Writer used to assemble records and
// regions, and the ASCII name helpers: the dword-aligned, space-padded
// names area of the strings log and zero-padded fixed-width text fields.
package encoding
