//go:build unix

package transport

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// sysStack issues the socket system calls directly so the requested
// backlog reaches listen(2) unchanged.
type sysStack struct{}

// Init is a no-op: the Go runtime brings the network stack up itself.
func (sysStack) Init() error { return nil }

func (sysStack) Socket() (Socket, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}
	unix.CloseOnExec(fd)

	// Match net.Listen: allow rebinding while an old connection on the
	// port sits in TIME_WAIT.  An active listener still conflicts.
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd) //nolint:errcheck
		return nil, os.NewSyscallError("setsockopt", err)
	}
	return &sysSocket{fd: fd}, nil
}

type sysSocket struct {
	fd int // -1 once closed or handed to a listener
}

func (s *sysSocket) Bind(addr *net.TCPAddr) error {
	if s.fd < 0 {
		return net.ErrClosed
	}
	ip4 := addr.IP.To4()
	if addr.IP != nil && ip4 == nil {
		return fmt.Errorf("bind: %s is not an IPv4 address", addr.IP)
	}

	sa := &unix.SockaddrInet4{Port: addr.Port}
	copy(sa.Addr[:], ip4)
	return os.NewSyscallError("bind", unix.Bind(s.fd, sa))
}

func (s *sysSocket) Listen(backlog int) (net.Listener, error) {
	if s.fd < 0 {
		return nil, net.ErrClosed
	}
	if err := unix.Listen(s.fd, backlog); err != nil {
		return nil, os.NewSyscallError("listen", err)
	}

	// net.FileListener dups the descriptor into the runtime poller, so
	// Accept can be interrupted by closing the listener.  The raw
	// descriptor is released here either way.
	f := os.NewFile(uintptr(s.fd), "tcp4-listener")
	s.fd = -1
	defer f.Close()

	ln, err := net.FileListener(f)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	return ln, nil
}

func (s *sysSocket) Close() error {
	if s.fd < 0 {
		return nil
	}
	fd := s.fd
	s.fd = -1
	return os.NewSyscallError("close", unix.Close(fd))
}
