package pool

import (
	"io"
	"sync"
)

// Default sizes of the pooled buffers. Region buffers hold one data area
// (Data Area 1 is fixed at 16 KiB), log buffers hold a complete telemetry or
// strings log.
const (
	RegionBufferDefaultSize  = 1024 * 16       // 16KiB
	RegionBufferMaxThreshold = 1024 * 256      // 256KiB
	LogBufferDefaultSize     = 1024 * 64       // 64KiB
	LogBufferMaxThreshold    = 1024 * 1024 * 8 // 8MiB
)

type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Clone returns a copy of the buffer contents that stays valid after the
// buffer goes back to its pool.
func (bb *ByteBuffer) Clone() []byte {
	out := make([]byte, len(bb.B))
	copy(out, bb.B)

	return out
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// WriteZeros appends n zero bytes.
func (bb *ByteBuffer) WriteZeros(n int) {
	if n <= 0 {
		return
	}
	bb.Grow(n)
	start := len(bb.B)
	bb.B = bb.B[:start+n]
	clear(bb.B[start:])
}

// PadTo zero-fills the buffer up to size bytes. It does nothing when the
// buffer is already that long.
func (bb *ByteBuffer) PadTo(size int) {
	bb.WriteZeros(size - len(bb.B))
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// Small buffers grow by RegionBufferDefaultSize, larger ones by 25% of their
// current capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := RegionBufferDefaultSize
	if cap(bb.B) > 4*RegionBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// Buffers whose capacity grew past maxThreshold are dropped instead of
// being returned to the pool.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	regionPool = NewByteBufferPool(RegionBufferDefaultSize, RegionBufferMaxThreshold)
	logPool    = NewByteBufferPool(LogBufferDefaultSize, LogBufferMaxThreshold)
)

// GetRegionBuffer retrieves a ByteBuffer sized for one data area or table.
func GetRegionBuffer() *ByteBuffer {
	return regionPool.Get()
}

// PutRegionBuffer returns a ByteBuffer to the region pool.
func PutRegionBuffer(bb *ByteBuffer) {
	regionPool.Put(bb)
}

// GetLogBuffer retrieves a ByteBuffer sized for a complete log.
func GetLogBuffer() *ByteBuffer {
	return logPool.Get()
}

// PutLogBuffer returns a ByteBuffer to the log pool.
func PutLogBuffer(bb *ByteBuffer) {
	logPool.Put(bb)
}
