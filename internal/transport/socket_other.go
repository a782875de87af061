//go:build !unix

package transport

import (
	"context"
	"net"
)

// sysStack falls back to the net package where raw socket calls are not
// available.  Bind and listen happen together in Bind, and the backlog
// is the operating system default.
type sysStack struct{}

func (sysStack) Init() error { return nil }

func (sysStack) Socket() (Socket, error) { return &netSocket{}, nil }

type netSocket struct {
	ln     net.Listener
	closed bool
}

func (s *netSocket) Bind(addr *net.TCPAddr) error {
	if s.closed {
		return net.ErrClosed
	}
	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp4", addr.String())
	if err != nil {
		return err
	}
	s.ln = ln
	return nil
}

func (s *netSocket) Listen(int) (net.Listener, error) {
	if s.closed || s.ln == nil {
		return nil, net.ErrClosed
	}
	ln := s.ln
	s.ln = nil
	s.closed = true
	return ln, nil
}

func (s *netSocket) Close() error {
	s.closed = true
	if s.ln == nil {
		return nil
	}
	ln := s.ln
	s.ln = nil
	return ln.Close()
}
