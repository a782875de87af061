// Package config defines the runtime configuration for dumpsock and the
// validation applied to it before any socket is opened.
package config

import (
	"fmt"
	"net"
	"strings"

	dserr "dumpsock/internal/errors"
)

// Config holds every tuneable for a single dumpsock run.
type Config struct {
	// ── Listener ─────────────────────────────────────────────────────
	Port    int // local TCP port, wildcard IPv4 address
	Backlog int // pending-connection queue length passed to listen(2)

	// ── Drain ────────────────────────────────────────────────────────
	ChunkSize  int // upper bound on a single read
	BufferHint int // initial capacity of the receive buffer
	Checksum   string

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
	DryRun  bool
}

// Default returns a Config populated from defaults.go.
func Default() *Config {
	return &Config{
		Port:       DefaultPort,
		Backlog:    DefaultBacklog,
		ChunkSize:  DefaultChunkSize,
		BufferHint: DefaultBufferHint,
	}
}

// ListenAddr is the local endpoint the listener binds: wildcard IPv4
// host, configured port.
func (c *Config) ListenAddr() *net.TCPAddr {
	return &net.TCPAddr{IP: net.IPv4zero, Port: c.Port}
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return &dserr.ConfigError{
			Field:   "port",
			Value:   c.Port,
			Message: "out of range 1-65535",
			Hint:    fmt.Sprintf("omit -p to listen on the default port %d", DefaultPort),
		}
	}

	if c.Backlog < 1 {
		return &dserr.ConfigError{Field: "backlog", Value: c.Backlog, Message: "must be at least 1"}
	}
	if c.ChunkSize < 1 {
		return &dserr.ConfigError{Field: "chunk-size", Value: c.ChunkSize, Message: "must be at least 1"}
	}
	if c.BufferHint < 0 {
		return &dserr.ConfigError{Field: "buffer-hint", Value: c.BufferHint, Message: "must not be negative"}
	}

	if !validChecksum(c.Checksum) {
		return &dserr.ConfigError{
			Field:   "checksum",
			Value:   c.Checksum,
			Message: "unknown algorithm",
			Hint:    "use one of: " + strings.Join(Checksums, ", "),
		}
	}

	return nil
}

func validChecksum(name string) bool {
	if name == "" {
		return true
	}
	for _, c := range Checksums {
		if c == name {
			return true
		}
	}
	return false
}
