package core

import (
	"fmt"

	"dumpsock/config"
	"dumpsock/internal/digest"
	"dumpsock/internal/metrics"
	"dumpsock/internal/transport"
	"dumpsock/util"
)

// Build constructs a Pipeline from a validated configuration.  The
// returned pipeline writes to os.Stdout and uses the platform socket
// stack.
func Build(cfg *config.Config, logger *util.Logger) (*Pipeline, error) {
	h, err := digest.New(cfg.Checksum)
	if err != nil {
		return nil, fmt.Errorf("checksum: %w", err)
	}

	return &Pipeline{
		Port:       cfg.Port,
		Backlog:    orDefault(cfg.Backlog, config.DefaultBacklog),
		ChunkSize:  orDefault(cfg.ChunkSize, config.DefaultChunkSize),
		BufferHint: max(0, cfg.BufferHint),
		Stack:      transport.Default(),
		Digest:     h,
		Metrics:    metrics.New(),
		Logger:     logger,
	}, nil
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
