package cmd

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// errLocked reports another running instance of the same mode.
var errLocked = errors.New("another instance is already running")

// instanceLock is an advisory flock(2) guard, one per mode. The lock dies
// with the process, so a crashed instance never blocks the next one.
type instanceLock struct {
	file *os.File
}

// acquireLock takes a non-blocking exclusive lock on path and records our
// PID in it for diagnostics.
func acquireLock(path string) (*instanceLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
			return nil, fmt.Errorf("%w (lock file: %s)", errLocked, path)
		}
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}

	if err := f.Truncate(0); err == nil {
		fmt.Fprintf(f, "%d\n", os.Getpid())
	}
	return &instanceLock{file: f}, nil
}

func (l *instanceLock) release() {
	if l == nil || l.file == nil {
		return
	}
	unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	l.file.Close()
	l.file = nil
}
