package config

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultPort is the TCP port dumpsock listens on.
	DefaultPort = 9999

	// DefaultBacklog allows exactly one pending connection.
	DefaultBacklog = 1

	// DefaultChunkSize is the most a single read pulls off the socket.
	DefaultChunkSize = 4096

	// DefaultBufferHint pre-sizes the receive buffer (1 MiB).  Larger
	// payloads still work; the buffer grows as needed.
	DefaultBufferHint = 1024 * 1024
)

// Supported --checksum algorithms.
const (
	ChecksumXXH64   = "xxh64"
	ChecksumBLAKE2s = "blake2s"
)

// Checksums lists every accepted --checksum value.
var Checksums = []string{ChecksumXXH64, ChecksumBLAKE2s} //nolint:gochecknoglobals
