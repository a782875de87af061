// dumpsock - accept one TCP connection on a fixed port and dump
// everything the peer sends to stdout.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dumpsock/cmd"
	"dumpsock/internal/core"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)

	err := cmd.Execute(ctx, os.Args[1:])
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dumpsock: %v\n", err)
	}
	os.Exit(int(core.Status(err)))
}
