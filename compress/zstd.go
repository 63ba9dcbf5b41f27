package compress

// ZstdCompressor compresses with Zstandard. The pure Go klauspost/compress
// backend is used unless the module is built with cgo and the gozstd tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstandard codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
