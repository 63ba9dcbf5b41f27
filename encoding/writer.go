package encoding

import (
	"github.com/opencomputeproject/ocp-telemetry/endian"
	"github.com/opencomputeproject/ocp-telemetry/internal/pool"
)

// Writer appends little-endian fields to a pooled buffer.
//
// A Writer is single use: call Finish to obtain the encoded bytes, or
// Release to discard them. Both return the buffer to its pool.
type Writer struct {
	buf    *pool.ByteBuffer
	put    func(*pool.ByteBuffer)
	engine endian.EndianEngine
}

// NewWriter creates a Writer backed by a region-sized pooled buffer.
func NewWriter() *Writer {
	return &Writer{
		buf:    pool.GetRegionBuffer(),
		put:    pool.PutRegionBuffer,
		engine: endian.GetLittleEndianEngine(),
	}
}

// NewLogWriter creates a Writer backed by a buffer sized for a complete log.
func NewLogWriter() *Writer {
	return &Writer{
		buf:    pool.GetLogBuffer(),
		put:    pool.PutLogBuffer,
		engine: endian.GetLittleEndianEngine(),
	}
}

// Uint8 appends one byte.
func (w *Writer) Uint8(v uint8) {
	w.buf.B = append(w.buf.B, v)
}

// Uint16 appends a 2-byte little-endian value.
func (w *Writer) Uint16(v uint16) {
	w.buf.B = w.engine.AppendUint16(w.buf.B, v)
}

// Uint32 appends a 4-byte little-endian value.
func (w *Writer) Uint32(v uint32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, v)
}

// Uint64 appends an 8-byte little-endian value.
func (w *Writer) Uint64(v uint64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, v)
}

// UintN appends v as a width-byte little-endian field. Widths above 8 are
// zero-extended.
func (w *Writer) UintN(v uint64, width int) {
	start := len(w.buf.B)
	w.buf.WriteZeros(width)
	endian.PutUintN(w.buf.B[start:], v)
}

// Bytes appends raw bytes.
func (w *Writer) Bytes(b []byte) {
	w.buf.MustWrite(b)
}

// Fixed appends b truncated or zero-padded to exactly width bytes.
func (w *Writer) Fixed(b []byte, width int) {
	if len(b) > width {
		b = b[:width]
	}
	w.buf.MustWrite(b)
	w.buf.WriteZeros(width - len(b))
}

// Zeros appends n zero bytes.
func (w *Writer) Zeros(n int) {
	w.buf.WriteZeros(n)
}

// PadTo zero-fills up to size bytes.
func (w *Writer) PadTo(size int) {
	w.buf.PadTo(size)
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Finish returns a copy of the encoded bytes and releases the buffer.
func (w *Writer) Finish() []byte {
	out := w.buf.Clone()
	w.Release()

	return out
}

// Release returns the buffer to its pool without producing output.
func (w *Writer) Release() {
	if w.buf != nil {
		w.put(w.buf)
		w.buf = nil
	}
}
