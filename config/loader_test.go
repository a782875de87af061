package config

import (
	"testing"
)

func TestLoadFromEnv_Port(t *testing.T) {
	t.Setenv("DUMPSOCK_PORT", "8080")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
}

func TestLoadFromEnv_Checksum(t *testing.T) {
	t.Setenv("DUMPSOCK_CHECKSUM", "XXH64")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Checksum != ChecksumXXH64 {
		t.Errorf("Checksum = %q, want %q", cfg.Checksum, ChecksumXXH64)
	}
}

func TestLoadFromEnv_Verbose(t *testing.T) {
	t.Setenv("DUMPSOCK_VERBOSE", "3")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Verbose != 3 {
		t.Errorf("Verbose = %d, want 3", cfg.Verbose)
	}
}

func TestLoadFromEnv_NoOverrideWhenEmpty(t *testing.T) {
	t.Setenv("DUMPSOCK_PORT", "")
	t.Setenv("DUMPSOCK_CHECKSUM", "")
	t.Setenv("DUMPSOCK_VERBOSE", "")

	cfg := Default()
	cfg.Checksum = ChecksumBLAKE2s
	LoadFromEnv(cfg)

	if cfg.Port != DefaultPort {
		t.Errorf("Port was overridden: %d", cfg.Port)
	}
	if cfg.Checksum != ChecksumBLAKE2s {
		t.Errorf("Checksum was overridden: %q", cfg.Checksum)
	}
}

func TestLoadFromEnv_InvalidIntIgnored(t *testing.T) {
	t.Setenv("DUMPSOCK_PORT", "not-a-number")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Port != DefaultPort {
		t.Errorf("Port should stay %d for invalid input, got %d", DefaultPort, cfg.Port)
	}
}
