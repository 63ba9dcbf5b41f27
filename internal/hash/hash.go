// Package hash provides the xxHash64 checksums used by bundles and log
// fingerprints.
package hash

import "github.com/cespare/xxhash/v2"

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Fingerprint hashes a telemetry log and its strings log as one stream.
// Each part is preceded by its length so moving bytes between the two logs
// changes the result.
func Fingerprint(parts ...[]byte) uint64 {
	d := xxhash.New()
	var size [8]byte
	for _, p := range parts {
		n := uint64(len(p))
		for i := range size {
			size[i] = byte(n >> (8 * i))
		}
		_, _ = d.Write(size[:])
		_, _ = d.Write(p)
	}

	return d.Sum64()
}
