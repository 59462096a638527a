package lineindex

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLockingExclusiveBlocksExclusive(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "test.lidx")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	f1, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f1.Close()
	f2, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f2.Close()

	lock1 := &fileLock{f: f1}
	lock2 := &fileLock{f: f2}

	if err := lock1.Lock(LockExclusive); err != nil {
		t.Fatalf("lock1 exclusive lock failed: %v", err)
	}

	done := make(chan bool)
	go func() {
		if err := lock2.Lock(LockExclusive); err != nil {
			t.Errorf("lock2 lock failed: %v", err)
		}
		lock2.Unlock()
		done <- true
	}()

	select {
	case <-done:
		t.Fatal("lock2 acquired exclusive lock while lock1 held it")
	case <-time.After(100 * time.Millisecond):
		// expected: lock2 is blocked
	}

	if err := lock1.Unlock(); err != nil {
		t.Fatal(err)
	}

	select {
	case <-done:
		// success
	case <-time.After(1 * time.Second):
		t.Fatal("lock2 failed to acquire lock after release")
	}
}

func TestLockingSharedCompatible(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "test.lidx")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	f1, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f1.Close()
	f2, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f2.Close()

	lock1 := &fileLock{f: f1}
	lock2 := &fileLock{f: f2}

	if err := lock1.Lock(LockShared); err != nil {
		t.Fatalf("lock1 shared lock failed: %v", err)
	}
	defer lock1.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- lock2.Lock(LockShared)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("lock2 shared lock failed: %v", err)
		}
		lock2.Unlock()
	case <-time.After(1 * time.Second):
		t.Fatal("lock2 should not block on a second shared lock")
	}
}
