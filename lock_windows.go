//go:build windows

// LockFileEx/UnlockFileEx implementation for Windows, guarding a
// container file for the span of one build or one open-for-search
// session — see lock_unix.go's comment for why a Writer takes an
// exclusive lock and a Reader a shared one.
// Both methods are called with l.mu held by the exported Lock/Unlock.
package lineindex

import "golang.org/x/sys/windows"

func (l *fileLock) lock(mode LockMode) error {
	var flags uint32
	if mode == LockExclusive {
		flags |= windows.LOCKFILE_EXCLUSIVE_LOCK
	}

	// Blocking lock over the entire file region (0 to max).
	h := windows.Handle(l.f.Fd())
	var overlapped windows.Overlapped

	return windows.LockFileEx(h, flags, 0, 0xFFFFFFFF, 0xFFFFFFFF, &overlapped)
}

func (l *fileLock) unlock() error {
	h := windows.Handle(l.f.Fd())
	var overlapped windows.Overlapped

	return windows.UnlockFileEx(h, 0, 0xFFFFFFFF, 0xFFFFFFFF, &overlapped)
}
