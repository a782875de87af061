package util

import (
	"fmt"
	"net"
	"strconv"

	"github.com/phayes/freeport"
)

// FormatAddr returns "host:port".
func FormatAddr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// FindFreePort returns an available TCP port on the loopback interface.
func FindFreePort() (int, error) {
	port, err := freeport.GetFreePort()
	if err != nil {
		return 0, fmt.Errorf("finding free port: %w", err)
	}
	return port, nil
}
