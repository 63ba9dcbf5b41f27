package section

import (
	"bytes"
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/encoding"
	"github.com/opencomputeproject/ocp-telemetry/endian"
	"github.com/opencomputeproject/ocp-telemetry/errs"
)

// Reason identifier flag bits (byte 74).
const (
	ReasonLineValid      = 0x01
	ReasonFileValid      = 0x02
	ReasonErrorValid     = 0x04
	ReasonExtensionValid = 0x08
	ReasonReservedMask   = 0xF0
)

// Reason is the 128-byte reason identifier at the end of the telemetry header.
//
//	Bytes  | Field
//	-------|------------------------
//	0-63   | error id
//	64-71  | file id
//	72-73  | line number
//	74     | valid flags
//	75-95  | reserved
//	96-127 | vendor unique extension
type Reason struct {
	ErrorID         [64]byte
	FileID          [8]byte
	Line            uint16
	Flags           uint8
	VendorExtension [32]byte
}

// NewReason creates a reason whose error id carries msg as ASCII text.
func NewReason(msg string) Reason {
	var r Reason
	copy(r.ErrorID[:], msg)

	return r
}

// ErrorText returns the error id up to its first zero byte.
func (r Reason) ErrorText() string {
	if i := bytes.IndexByte(r.ErrorID[:], 0); i >= 0 {
		return string(r.ErrorID[:i])
	}

	return string(r.ErrorID[:])
}

// Parse parses the reason from exactly ReasonSize bytes.
//
// Returns:
//   - error: errs.ErrStructural on a size mismatch, errs.ErrReservedField for
//     flag bits 7:4 or bytes 75-95
func (r *Reason) Parse(data []byte) error {
	if len(data) != ReasonSize {
		return fmt.Errorf("%w: reason identifier is %d bytes, expected %d", errs.ErrStructural, len(data), ReasonSize)
	}

	flags := data[74]
	if flags&ReasonReservedMask != 0 {
		return fmt.Errorf("%w: reason flags bits 7:4 are 0x%x", errs.ErrReservedField, flags>>4)
	}
	if err := encoding.CheckReserved("reason bytes 75-95", data[75:96]); err != nil {
		return err
	}

	copy(r.ErrorID[:], data[0:64])
	copy(r.FileID[:], data[64:72])
	r.Line = endian.GetLittleEndianEngine().Uint16(data[72:74])
	r.Flags = flags
	copy(r.VendorExtension[:], data[96:128])

	return nil
}

// Put writes the reason into dst, which must hold ReasonSize bytes.
func (r Reason) Put(dst []byte) {
	copy(dst[0:64], r.ErrorID[:])
	copy(dst[64:72], r.FileID[:])
	endian.GetLittleEndianEngine().PutUint16(dst[72:74], r.Line)
	dst[74] = r.Flags &^ ReasonReservedMask
	clear(dst[75:96])
	copy(dst[96:128], r.VendorExtension[:])
}

// Bytes serializes the reason.
func (r Reason) Bytes() []byte {
	b := make([]byte, ReasonSize)
	r.Put(b)

	return b
}
