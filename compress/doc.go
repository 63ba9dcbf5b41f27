// Package compress provides the compression codecs used by bundle files.
//
// A telemetry log is mostly zero-filled FIFO tails and statistics tables,
// so general purpose codecs shrink it well. Four codecs are available:
//
//   - None: payload stored as is
//   - Zstd: best ratio; pure Go by default, cgo backed with the gozstd
//     build tag
//   - S2: fast with a good ratio
//   - LZ4: fastest decompression
//
// Codecs are looked up by format.CompressionType:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	packed, err := codec.Compress(payload)
//	original, err := codec.Decompress(packed)
//
// All codecs are safe for concurrent use.
package compress
