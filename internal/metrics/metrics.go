// Package metrics records statistics of a single dumpsock run: how many
// reads the drain loop made, how many bytes arrived, how long it took,
// and how many bytes reached the output sink.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for a dumpsock run.
// A nil Collector is safe to use — all methods become no-ops.
type Collector struct {
	reads        atomic.Int64
	bytesIn      atomic.Int64
	bytesEmitted atomic.Int64

	mu         sync.RWMutex
	startTime  time.Time
	acceptedAt time.Time
	drainStart time.Time
	drainEnd   time.Time
	peer       string
	lastStage  string
	lastError  string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Connection ───────────────────────────────────────────────────────

// Accepted records the moment the peer connection was accepted.
func (c *Collector) Accepted(peer string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.acceptedAt = time.Now()
	c.peer = peer
	c.mu.Unlock()
}

// ── Drain ────────────────────────────────────────────────────────────

// DrainStarted marks the beginning of the read loop.
func (c *Collector) DrainStarted() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.drainStart = time.Now()
	c.mu.Unlock()
}

// DrainFinished marks the end of the read loop, successful or not.
func (c *Collector) DrainFinished() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.drainEnd = time.Now()
	c.mu.Unlock()
}

// Read records one read call that returned n bytes.
func (c *Collector) Read(n int) {
	if c == nil {
		return
	}
	c.reads.Add(1)
	c.bytesIn.Add(int64(n))
}

// Reads returns the number of read calls made.
func (c *Collector) Reads() int64 {
	if c == nil {
		return 0
	}
	return c.reads.Load()
}

// TotalBytesIn returns total bytes received.
func (c *Collector) TotalBytesIn() int64 {
	if c == nil {
		return 0
	}
	return c.bytesIn.Load()
}

// DrainDuration returns how long the read loop ran.  It is zero until
// both DrainStarted and DrainFinished have been called.
func (c *Collector) DrainDuration() time.Duration {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.drainStart.IsZero() || c.drainEnd.IsZero() {
		return 0
	}
	return c.drainEnd.Sub(c.drainStart)
}

// Throughput returns received bytes per second over the drain.  A
// drain too short to measure reports 0.
func (c *Collector) Throughput() float64 {
	d := c.DrainDuration()
	if d <= 0 {
		return 0
	}
	return float64(c.TotalBytesIn()) / d.Seconds()
}

// ── Output ───────────────────────────────────────────────────────────

// Emitted records n bytes written to the output sink.
func (c *Collector) Emitted(n int) {
	if c == nil {
		return
	}
	c.bytesEmitted.Add(int64(n))
}

// TotalBytesEmitted returns total bytes written to the output sink.
func (c *Collector) TotalBytesEmitted() int64 {
	if c == nil {
		return 0
	}
	return c.bytesEmitted.Load()
}

// ── Errors ───────────────────────────────────────────────────────────

// RecordError stores the terminal error message and the stage that
// produced it.  stage is empty for errors raised outside the pipeline.
func (c *Collector) RecordError(stage, msg string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.lastStage = stage
	c.lastError = msg
	c.mu.Unlock()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime         string  `json:"uptime"`
	Peer           string  `json:"peer,omitempty"`
	AcceptedAt     string  `json:"accepted_at,omitempty"`
	Reads          int64   `json:"reads"`
	BytesIn        int64   `json:"bytes_in"`
	BytesEmitted   int64   `json:"bytes_emitted"`
	DrainSeconds   float64 `json:"drain_seconds"`
	BytesPerSecond float64 `json:"bytes_per_second"`
	Stage          string  `json:"stage,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	drain := c.DrainDuration()
	rate := c.Throughput()

	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:         time.Since(c.startTime).Truncate(time.Millisecond).String(),
		Peer:           c.peer,
		Reads:          c.reads.Load(),
		BytesIn:        c.bytesIn.Load(),
		BytesEmitted:   c.bytesEmitted.Load(),
		DrainSeconds:   drain.Seconds(),
		BytesPerSecond: rate,
		Stage:          c.lastStage,
		Error:          c.lastError,
	}
	if !c.acceptedAt.IsZero() {
		s.AcceptedAt = c.acceptedAt.Format(time.RFC3339Nano)
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
