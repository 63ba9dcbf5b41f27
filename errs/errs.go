// Package errs defines the sentinel errors returned by the telemetry and
// strings log codecs.
//
// Every error produced by a decode or encode call wraps exactly one of the
// kind sentinels below, so callers can classify a failure with errors.Is:
//
//	if errors.Is(err, errs.ErrOrdering) {
//	    // a sorted identifier table is out of order or has a duplicate
//	}
//
// The wrapped message carries the offending field, offset and value.
package errs

import "errors"

// Kind sentinels.
var (
	// ErrStructural reports a wrong overall size, a version or GUID mismatch, or a
	// size/offset field that is inconsistent with the buffer or a sibling table.
	ErrStructural = errors.New("structural error")

	// ErrRange reports a field value outside its legal numeric range.
	ErrRange = errors.New("value out of range")

	// ErrReservedField reports a reserved byte or bit that is not zero.
	ErrReservedField = errors.New("reserved field is not zero")

	// ErrOrdering reports identifiers or class bytes that are not strictly
	// increasing, or a duplicated identifier.
	ErrOrdering = errors.New("ordering violation")

	// ErrPadding reports zero-fill or space-fill bytes holding other values.
	ErrPadding = errors.New("padding violation")

	// ErrCrossReference reports a vendor unique identifier without a matching
	// strings log entry.
	ErrCrossReference = errors.New("cross reference error")

	// ErrConfig reports a generation configuration value that violates a
	// precondition. Encode only.
	ErrConfig = errors.New("invalid configuration")
)

// Bundle container errors.
var (
	ErrInvalidBundle     = errors.New("invalid bundle")
	ErrChecksumMismatch  = errors.New("checksum mismatch")
	ErrUnsupportedCodec  = errors.New("unsupported compression type")
	ErrInvalidHeaderSize = errors.New("invalid header size")
)
