package encoding

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/errs"
)

// DwordSize is the size in bytes of the unit used by every size and offset
// field in the telemetry and strings logs.
const DwordSize = 4

// CheckBounds verifies that the n-byte field at off fits in a region of total bytes.
//
// Returns:
//   - error: errs.ErrStructural naming label when the field overruns the region
func CheckBounds(label string, total, off, n int) error {
	if off < 0 || n < 0 || off > total || n > total-off {
		return fmt.Errorf("%w: %s at offset %d length %d exceeds region of %d bytes",
			errs.ErrStructural, label, off, n, total)
	}

	return nil
}

// CheckDwordRange converts a (start, size) pair expressed in dwords to byte
// offsets and verifies that it fits in a region of total bytes.
func CheckDwordRange(label string, total int, startDw, sizeDw uint64) (int, int, error) {
	limit := uint64(total) / DwordSize
	if startDw > limit || sizeDw > limit-startDw {
		return 0, 0, fmt.Errorf("%w: %s start 0x%x size 0x%x (dwords) exceeds region of %d bytes",
			errs.ErrStructural, label, startDw, sizeDw, total)
	}

	return int(startDw) * DwordSize, int(sizeDw) * DwordSize, nil
}

// CheckReserved verifies that every byte of a reserved field is zero.
//
// Returns:
//   - error: errs.ErrReservedField naming label and the first non-zero byte
func CheckReserved(label string, b []byte) error {
	for i, v := range b {
		if v != 0 {
			return fmt.Errorf("%w: %s byte %d is 0x%02x", errs.ErrReservedField, label, i, v)
		}
	}

	return nil
}

// CheckFill verifies that every byte of a padding run equals fill.
//
// Returns:
//   - error: errs.ErrPadding naming label and the first mismatching byte
func CheckFill(label string, b []byte, fill byte) error {
	for i, v := range b {
		if v != fill {
			return fmt.Errorf("%w: %s byte %d is 0x%02x, expected 0x%02x", errs.ErrPadding, label, i, v, fill)
		}
	}

	return nil
}

// IsZero reports whether every byte of b is zero.
func IsZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}

	return true
}

// AlignDword rounds n up to the next multiple of DwordSize.
func AlignDword(n int) int {
	return (n + DwordSize - 1) &^ (DwordSize - 1)
}
