// Package transport provides the socket lifecycle the pipeline walks
// through: bring the network stack up, create a socket, bind it, and
// turn it into a passive listener.  Accepting and reading are done on
// the returned net.Listener and net.Conn.
//
// The stages are separate calls so that a failure can be attributed to
// exactly one of them.
package transport

import "net"

// Stack is the process-wide network subsystem.
type Stack interface {
	// Init brings the subsystem up.  It is called once, before Socket.
	Init() error

	// Socket allocates an unbound IPv4 stream socket.
	Socket() (Socket, error)
}

// Socket is a freshly created stream socket, owned by its creator until
// Close.
type Socket interface {
	// Bind assigns the local address.
	Bind(addr *net.TCPAddr) error

	// Listen marks the socket passive with the given backlog and hands
	// it back as a net.Listener.  The listener then owns the underlying
	// descriptor; Close on the Socket remains safe to call.
	Listen(backlog int) (net.Listener, error)

	// Close releases the socket.  It is idempotent.
	Close() error
}

// Default returns the platform Stack.
func Default() Stack { return sysStack{} }
