// Package core is the listener-drain pipeline: it takes one TCP
// connection on a fixed port, reads it until the peer closes, and
// writes what arrived to the output sink.
//
// The pipeline is a fixed sequence of stages:
//
//	init → socket → bind → listen → accept → drain → emit
//
// The first failing stage becomes the run's terminal error and every
// later stage is skipped.  Output is all-or-nothing.
package core

import (
	"context"
	"fmt"
	"hash"
	"io"
	"net"
	"os"

	dserr "dumpsock/internal/errors"
	"dumpsock/config"
	"dumpsock/internal/digest"
	"dumpsock/internal/metrics"
	"dumpsock/internal/transport"
	"dumpsock/util"
)

// ExitStatus is the process outcome of a run.
type ExitStatus int

const (
	Success ExitStatus = 0
	Failure ExitStatus = 1
)

// Status maps a run's terminal error to its exit status.
func Status(err error) ExitStatus {
	if err != nil {
		return Failure
	}
	return Success
}

// Pipeline accepts exactly one inbound connection and drains it.
//
// No stage has a timeout: a peer that never connects, or never closes,
// keeps Run blocked until ctx is cancelled.
type Pipeline struct {
	Port       int // bound on the wildcard IPv4 address
	Backlog    int
	ChunkSize  int
	BufferHint int

	Stack   transport.Stack
	Digest  hash.Hash // optional; fed every received chunk
	Metrics *metrics.Collector
	Logger  *util.Logger

	// Stdout defaults to os.Stdout when nil.
	Stdout io.Writer
}

func (p *Pipeline) stdout() io.Writer {
	if p.Stdout != nil {
		return p.Stdout
	}
	return os.Stdout
}

// chunkSize falls back to the default when unset, so a zero-value
// Pipeline never issues zero-length reads.
func (p *Pipeline) chunkSize() int {
	return orDefault(p.ChunkSize, config.DefaultChunkSize)
}

func (p *Pipeline) bufferHint() int {
	return max(0, p.BufferHint)
}

func (p *Pipeline) stack() transport.Stack {
	if p.Stack != nil {
		return p.Stack
	}
	return transport.Default()
}

// Run executes every stage in order and returns the terminal error, or
// nil when the received bytes were written to Stdout.  Sockets acquired
// along the way are closed before Run returns, whatever the outcome.
//
// Cancelling ctx closes the listener and connection, which fails the
// stage blocked on them.
func (p *Pipeline) Run(ctx context.Context) error {
	rc := &runContext{state: Fresh, logger: p.Logger}
	defer rc.release()

	stack := p.stack()
	out := p.stdout()

	rc.step(Initialized, func() error {
		if err := stack.Init(); err != nil {
			return dserr.Stage(dserr.ErrTransportInit, "", err)
		}
		return nil
	})

	rc.step(SocketReady, func() error {
		sock, err := stack.Socket()
		if err != nil {
			return dserr.Stage(dserr.ErrSocketCreate, "", err)
		}
		rc.sock = sock
		rc.addr = &net.TCPAddr{IP: net.IPv4zero, Port: p.Port}
		return nil
	})

	rc.step(Bound, func() error {
		if err := rc.sock.Bind(rc.addr); err != nil {
			return dserr.Stage(dserr.ErrBind, rc.addr.String(), err)
		}
		return nil
	})

	rc.step(Listening, func() error {
		ln, err := rc.sock.Listen(p.Backlog)
		if err != nil {
			return dserr.Stage(dserr.ErrListen, rc.addr.String(), err)
		}
		rc.ln = ln
		rc.stops = append(rc.stops, context.AfterFunc(ctx, func() { ln.Close() }))
		p.Logger.Verbose("listening on %s (tcp4, backlog %d)", ln.Addr(), p.Backlog)
		return nil
	})

	rc.step(Accepted, func() error {
		conn, err := rc.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				err = context.Cause(ctx)
			}
			return dserr.Stage(dserr.ErrAccept, rc.addr.String(), err)
		}
		rc.conn = conn
		rc.stops = append(rc.stops, context.AfterFunc(ctx, func() { conn.Close() }))
		p.Metrics.Accepted(conn.RemoteAddr().String())
		p.Logger.Verbose("connection from %s", conn.RemoteAddr())
		return nil
	})

	rc.step(Drained, func() error {
		rc.buf = make([]byte, 0, p.bufferHint())
		p.Metrics.DrainStarted()
		buf, err := drain(rc.conn, rc.buf, p.chunkSize(), p.Digest, p.Metrics)
		p.Metrics.DrainFinished()
		rc.buf = buf
		if err != nil {
			if ctx.Err() != nil {
				err = context.Cause(ctx)
			}
			return dserr.Stage(dserr.ErrRead, rc.conn.RemoteAddr().String(), err)
		}
		p.logSummary(len(rc.buf))
		return nil
	})

	// Emission leaves the run in Drained; only a failed write moves it.
	rc.step(Drained, func() error {
		if util.IsTerminal(out) {
			p.Logger.Warn("stdout is a terminal; writing %d raw bytes", len(rc.buf))
		}
		n, err := emit(out, rc.buf)
		p.Metrics.Emitted(n)
		if err != nil {
			return dserr.Stage(dserr.ErrWrite, "", err)
		}
		return nil
	})

	if rc.err != nil {
		var stage string
		if kind := dserr.KindOf(rc.err); kind != nil {
			stage = kind.Error()
		}
		p.Metrics.RecordError(stage, rc.err.Error())
	}
	if p.Logger.Enabled(util.LogDebug) {
		p.Logger.Debug("metrics: %s", p.Metrics.JSON())
	}
	return rc.err
}

// logSummary reports the drain the way the tool always has: size,
// elapsed time, and rate.
func (p *Pipeline) logSummary(n int) {
	if !p.Logger.Enabled(util.LogNormal) {
		return
	}
	msg := fmt.Sprintf("%d bytes in %.3fs for %.2f MiB/s",
		n,
		p.Metrics.DrainDuration().Seconds(),
		p.Metrics.Throughput()/(1024*1024))
	if sum := digest.Hex(p.Digest); sum != "" {
		msg += ", checksum " + sum
	}
	p.Logger.Info("%s", msg)
}
