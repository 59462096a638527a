//go:build unix || linux || darwin

// flock(2) implementation for Unix platforms, guarding a container
// file for the span of one build or one open-for-search session: a
// Writer holds an exclusive flock from Create through Finalize so a
// concurrent Reader can't observe a half-written file, and a Reader
// holds a shared flock for its whole lifetime so a Writer can never
// start a new build over a file still being searched.
// Both methods are called with l.mu held by the exported Lock/Unlock.
package lineindex

import "golang.org/x/sys/unix"

func (l *fileLock) lock(mode LockMode) error {
	op := unix.LOCK_SH
	if mode == LockExclusive {
		op = unix.LOCK_EX
	}
	// Blocking flock — no LOCK_NB so the call waits for the lock.
	return unix.Flock(int(l.f.Fd()), op)
}

func (l *fileLock) unlock() error {
	return unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
}
