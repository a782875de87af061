package core

import (
	"io"
	"net"
	"sync"

	"dumpsock/internal/transport"
)

// ── Stack / Socket ───────────────────────────────────────────────────

type fakeStack struct {
	initErr   error
	socketErr error
	sock      *fakeSocket

	inits, sockets int
}

func (s *fakeStack) Init() error {
	s.inits++
	return s.initErr
}

func (s *fakeStack) Socket() (transport.Socket, error) {
	s.sockets++
	if s.socketErr != nil {
		return nil, s.socketErr
	}
	return s.sock, nil
}

type fakeSocket struct {
	bindErr   error
	listenErr error
	ln        *fakeListener

	boundTo *net.TCPAddr
	backlog int
	listens int
	closes  int
}

func (s *fakeSocket) Bind(addr *net.TCPAddr) error {
	s.boundTo = addr
	return s.bindErr
}

func (s *fakeSocket) Listen(backlog int) (net.Listener, error) {
	s.listens++
	s.backlog = backlog
	if s.listenErr != nil {
		return nil, s.listenErr
	}
	return s.ln, nil
}

func (s *fakeSocket) Close() error {
	s.closes++
	return nil
}

// ── Listener / Conn ──────────────────────────────────────────────────

type fakeListener struct {
	conn      *scriptedConn
	acceptErr error

	mu      sync.Mutex
	accepts int
	closes  int
}

func (l *fakeListener) Accept() (net.Conn, error) {
	l.mu.Lock()
	l.accepts++
	l.mu.Unlock()
	if l.acceptErr != nil {
		return nil, l.acceptErr
	}
	return l.conn, nil
}

func (l *fakeListener) Close() error {
	l.mu.Lock()
	l.closes++
	l.mu.Unlock()
	return nil
}

func (l *fakeListener) Addr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4zero, Port: 9999}
}

type readResult struct {
	data string
	err  error
}

// scriptedConn returns one scripted result per Read, then io.EOF.
type scriptedConn struct {
	net.Conn // unimplemented methods panic

	reads []readResult

	mu     sync.Mutex
	calls  int
	closes int
}

func (c *scriptedConn) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls >= len(c.reads) {
		c.calls++
		return 0, io.EOF
	}
	r := c.reads[c.calls]
	c.calls++
	n := copy(p, r.data)
	return n, r.err
}

func (c *scriptedConn) Close() error {
	c.mu.Lock()
	c.closes++
	c.mu.Unlock()
	return nil
}

func (c *scriptedConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 40000}
}

func (c *scriptedConn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9999}
}

// ── Output ───────────────────────────────────────────────────────────

type failWriter struct{ err error }

func (w failWriter) Write([]byte) (int, error) { return 0, w.err }

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }

// newFakes wires a stack whose every stage succeeds and whose connection
// delivers reads.
func newFakes(reads ...readResult) (*fakeStack, *fakeSocket, *fakeListener, *scriptedConn) {
	conn := &scriptedConn{reads: reads}
	ln := &fakeListener{conn: conn}
	sock := &fakeSocket{ln: ln}
	return &fakeStack{sock: sock}, sock, ln, conn
}
