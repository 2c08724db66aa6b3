package main

import (
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShutdownSignalsAreCatchable(t *testing.T) {
	assert.Contains(t, shutdownSignals, os.Interrupt)
	assert.Contains(t, shutdownSignals, os.Signal(syscall.SIGTERM))
	// SIGKILL 无法被捕获
	assert.NotContains(t, shutdownSignals, os.Kill)
}
