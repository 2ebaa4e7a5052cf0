//go:build unix

package main

import (
	"os"
	"syscall"
)

// shutdownSignals all start the same graceful shutdown. SIGUSR1 and SIGUSR2
// let operators drain an instance without sending a termination signal.
var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1, syscall.SIGUSR2}
