package core

import (
	"net"

	"dumpsock/internal/transport"
	"dumpsock/util"
)

// State is a stage of the socket lifecycle a run has reached.
type State int

const (
	Fresh State = iota
	Initialized
	SocketReady
	Bound
	Listening
	Accepted
	Drained
	Errored
)

var stateNames = [...]string{ //nolint:gochecknoglobals
	Fresh:       "fresh",
	Initialized: "initialized",
	SocketReady: "socket-ready",
	Bound:       "bound",
	Listening:   "listening",
	Accepted:    "accepted",
	Drained:     "drained",
	Errored:     "errored",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// runContext is the state threaded through one run.  Once err is set it
// is final and step stops doing anything.
type runContext struct {
	state State
	err   error

	sock transport.Socket
	addr *net.TCPAddr
	ln   net.Listener
	conn net.Conn
	buf  []byte

	stops  []func() bool // context.AfterFunc handles
	logger *util.Logger
}

// step runs fn unless an earlier step failed.  On success the run moves
// to next; on failure it moves to Errored and keeps fn's error.
func (rc *runContext) step(next State, fn func() error) {
	if rc.err != nil {
		return
	}
	if err := fn(); err != nil {
		rc.err = err
		rc.logger.Verbose("%s -> %s: %v", rc.state, Errored, err)
		rc.state = Errored
		return
	}
	if rc.state != next {
		rc.logger.Verbose("%s -> %s", rc.state, next)
	}
	rc.state = next
}

// release closes everything the run acquired, newest first.  It runs
// on every exit path.
func (rc *runContext) release() {
	for _, stop := range rc.stops {
		stop()
	}
	if rc.conn != nil {
		if err := rc.conn.Close(); err != nil {
			rc.logger.Debug("close connection: %v", err)
		}
	}
	if rc.ln != nil {
		if err := rc.ln.Close(); err != nil {
			rc.logger.Debug("close listener: %v", err)
		}
	}
	if rc.sock != nil {
		if err := rc.sock.Close(); err != nil {
			rc.logger.Debug("close socket: %v", err)
		}
	}
}
