package encoding

import (
	"bytes"
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/opencomputeproject/ocp-telemetry/internal/pool"
)

const (
	// MaxNameLength is the longest name a strings log entry can describe;
	// the entry stores length-1 in a single byte.
	MaxNameLength = 256

	// NamePad fills the bytes between a name and the next dword boundary.
	NamePad = 0x20
)

// NameBlob accumulates the ASCII names area of a strings log.
//
// Each name starts on a dword boundary and is followed by NamePad bytes up
// to the next boundary, so the blob length is always a multiple of
// DwordSize.
type NameBlob struct {
	buf *pool.ByteBuffer
}

// NewNameBlob creates an empty names area.
func NewNameBlob() *NameBlob {
	return &NameBlob{buf: pool.GetRegionBuffer()}
}

// Append writes name and returns its offset in dwords from the blob start.
//
// Returns:
//   - uint64: dword offset of the name
//   - error: errs.ErrConfig if the name is empty, longer than MaxNameLength
//     or not 7-bit ASCII
func (nb *NameBlob) Append(name string) (uint64, error) {
	if err := ValidateName(name); err != nil {
		return 0, err
	}

	offset := uint64(nb.buf.Len() / DwordSize) //nolint:gosec
	nb.buf.MustWrite([]byte(name))
	for nb.buf.Len()%DwordSize != 0 {
		nb.buf.B = append(nb.buf.B, NamePad)
	}

	return offset, nil
}

// Bytes returns the names area. The slice is owned by the blob.
func (nb *NameBlob) Bytes() []byte {
	return nb.buf.Bytes()
}

// Len returns the blob size in bytes.
func (nb *NameBlob) Len() int {
	return nb.buf.Len()
}

// Release returns the blob buffer to its pool.
func (nb *NameBlob) Release() {
	if nb.buf != nil {
		pool.PutRegionBuffer(nb.buf)
		nb.buf = nil
	}
}

// ValidateName checks that name fits a strings log entry.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", errs.ErrConfig)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name %q is %d bytes, limit %d", errs.ErrConfig, name, len(name), MaxNameLength)
	}
	for i := 0; i < len(name); i++ {
		if name[i] >= 0x80 {
			return fmt.Errorf("%w: name %q is not ASCII", errs.ErrConfig, name)
		}
	}

	return nil
}

// ReadName extracts the name at offsetDw/length from a names area and
// verifies its space padding up to the next dword boundary.
//
// Returns:
//   - string: the name
//   - error: errs.ErrStructural if the name lies outside blob, errs.ErrPadding
//     if a padding byte is not NamePad
func ReadName(label string, blob []byte, offsetDw uint64, length int) (string, error) {
	if offsetDw >= uint64(len(blob))/DwordSize {
		return "", fmt.Errorf("%w: %s name offset 0x%x (dwords) is outside the %d byte names area",
			errs.ErrStructural, label, offsetDw, len(blob))
	}

	start := int(offsetDw) * DwordSize
	if err := CheckBounds(label+" name", len(blob), start, length); err != nil {
		return "", err
	}

	end := start + length
	padEnd := min(AlignDword(end), len(blob))
	if err := CheckFill(label+" name padding", blob[end:padEnd], NamePad); err != nil {
		return "", err
	}

	return string(blob[start:end]), nil
}

// CheckFixedASCII verifies that s fits a width-byte ASCII field.
//
// Returns:
//   - error: errs.ErrConfig if s is longer than width or not ASCII
func CheckFixedASCII(s string, width int) error {
	if len(s) > width {
		return fmt.Errorf("%w: %q exceeds %d characters", errs.ErrConfig, s, width)
	}
	if nonASCII([]byte(s)) >= 0 {
		return fmt.Errorf("%w: %q is not ASCII", errs.ErrConfig, s)
	}

	return nil
}

// PutFixedASCII copies s into dst and zero-fills the rest.
//
// Returns:
//   - error: errs.ErrConfig if s is longer than dst or not ASCII
func PutFixedASCII(dst []byte, s string) error {
	if err := CheckFixedASCII(s, len(dst)); err != nil {
		return err
	}
	n := copy(dst, s)
	clear(dst[n:])

	return nil
}

// FixedASCII decodes a zero-padded ASCII field. Bytes after the first zero
// must also be zero.
//
// Returns:
//   - error: errs.ErrRange for a byte above 7Fh, errs.ErrPadding for a
//     non-zero byte after the first zero
func FixedASCII(label string, b []byte) (string, error) {
	end := bytes.IndexByte(b, 0)
	if end < 0 {
		end = len(b)
	} else if err := CheckFill(label+" padding", b[end:], 0); err != nil {
		return "", err
	}
	if i := nonASCII(b[:end]); i >= 0 {
		return "", fmt.Errorf("%w: %s byte %d is 0x%02x, not ASCII", errs.ErrRange, label, i, b[i])
	}

	return string(b[:end]), nil
}

func nonASCII(b []byte) int {
	for i, c := range b {
		if c >= 0x80 {
			return i
		}
	}

	return -1
}
