// Writer / chunker (C3).
//
// A Writer accumulates entries into a bounded in-memory buffer and,
// each time the buffer would exceed the configured chunk ceiling,
// hands the buffer to the suffix-array Oracle and appends the
// resulting (text, suffix array) pair to the container as one
// sub-index — the flush protocol of spec.md §4.2. Finalize flushes
// any remainder and clears the container's Dirty flag; a Writer that
// is never finalized leaves a file the Reader must reject (spec.md
// §7).
package lineindex

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/jpl-au/lineindex/internal/container"
)

// Writer builds an immutable container file from a stream of entries.
// It is not safe for concurrent use by multiple goroutines.
type Writer struct {
	f      *os.File
	lock   *fileLock
	cw     *container.Writer
	oracle Oracle
	config Config

	buf []byte

	mu          sync.Mutex
	poisoned    atomic.Bool
	finalized   atomic.Bool
	once        sync.Once
	finalizeErr error
}

// Create creates a new container file at path and returns a Writer
// ready for AddEntry/AddLinesFrom calls. A nil oracle uses
// DefaultOracle. A zero Config uses ConfigDefaults.
func Create(path string, oracle Oracle, config Config) (*Writer, error) {
	if oracle == nil {
		oracle = DefaultOracle()
	}
	config = fillConfig(config)

	// Truncate only once the exclusive lock is held, so a Reader still
	// holding its shared lock never sees the file emptied underneath it.
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, err
	}

	flock := &fileLock{f: f}
	if err := flock.Lock(LockExclusive); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Truncate(0); err != nil {
		flock.Unlock()
		f.Close()
		return nil, err
	}

	format := container.FormatFramed
	if config.Format == FormatArchive {
		format = container.FormatArchive
	}
	cw, err := container.Create(f, format, config.HashAlgorithm, config.CompressText)
	if err != nil {
		flock.Unlock()
		f.Close()
		return nil, err
	}

	return &Writer{
		f:      f,
		lock:   flock,
		cw:     cw,
		oracle: oracle,
		config: config,
	}, nil
}

// fillConfig fills zero-value fields with documented defaults without
// clobbering bool fields a caller deliberately set to false versus
// simply never having set — see ConfigDefaults for the distinction.
func fillConfig(c Config) Config {
	if c == (Config{}) {
		return ConfigDefaults()
	}
	return c.withDefaults()
}

// AddEntry appends entry, newline-terminated, to the current buffer.
// If entry alone exceeds MaxChunkSize, it fails with ErrEntryTooLarge
// without side effects. If appending would overflow the buffer, the
// current buffer is flushed as a sub-index first.
func (w *Writer) AddEntry(entry []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.addEntryLocked(entry)
}

func (w *Writer) addEntryLocked(entry []byte) error {
	if w.poisoned.Load() || w.finalized.Load() {
		return ErrClosed
	}
	if len(entry) > w.config.MaxChunkSize {
		return ErrEntryTooLarge
	}
	if len(w.buf)+len(entry)+1 > w.config.MaxChunkSize {
		if err := w.flushLocked(); err != nil {
			return err
		}
	}
	w.buf = append(w.buf, entry...)
	w.buf = append(w.buf, '\n')
	return nil
}

// AddLinesFrom reads newline-delimited lines from src and calls
// AddEntry on each, with the trailing newline stripped.
func (w *Writer) AddLinesFrom(src io.Reader) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	scanner := bufio.NewScanner(src)
	// +1 leaves room for the newline after a line of exactly MaxChunkSize.
	scanner.Buffer(make([]byte, w.config.ReadBuffer), w.config.MaxChunkSize+1)
	for scanner.Scan() {
		if err := w.addEntryLocked(scanner.Bytes()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return ErrEntryTooLarge
		}
		return fmt.Errorf("lineindex: add lines: %w", err)
	}
	return nil
}

// flushLocked runs the flush protocol of spec.md §4.2. The caller
// must hold w.mu. A no-op on an empty buffer: the writer never
// produces a sub-index with n = 0.
func (w *Writer) flushLocked() error {
	if len(w.buf) == 0 {
		return nil
	}

	n := len(w.buf)
	sa := make([]int32, n)
	if err := w.oracle.Build(w.buf, sa); err != nil {
		return fmt.Errorf("%w: %w", ErrOracleFailure, err)
	}

	saBytes := make([]byte, n*4)
	for i, v := range sa {
		binary.LittleEndian.PutUint32(saBytes[i*4:], uint32(v))
	}

	text := w.buf
	if w.config.CompressText {
		text = compressText(w.buf)
	}

	if _, err := w.cw.Append(text, saBytes); err != nil {
		w.poisoned.Store(true)
		return fmt.Errorf("lineindex: flush: %w", err)
	}

	w.buf = w.buf[:0]
	return nil
}

// Finalize flushes any remaining buffered entries and marks the
// container complete. Idempotent; safe to call more than once,
// including the common defer-plus-explicit-call idiom spec.md §7
// expects. The underlying flush/patch/sync/close sequence runs at
// most once — w.once guards that — but its outcome is recorded in
// w.finalizeErr and replayed on every subsequent call rather than
// trusting a fresh per-call local, so a Finalize that failed once
// keeps failing the same way instead of reporting success on retry.
// A failure also poisons the Writer, matching spec.md §7's "Io
// propagates to the caller and marks the writer poisoned — further
// operations fail" contract.
func (w *Writer) Finalize() error {
	w.once.Do(func() {
		w.mu.Lock()
		defer w.mu.Unlock()

		if w.poisoned.Load() {
			w.finalizeErr = ErrClosed
			return
		}
		if err := w.flushLocked(); err != nil {
			w.poisoned.Store(true)
			w.finalizeErr = err
			return
		}
		if err := w.cw.Finalize(checksum); err != nil {
			w.poisoned.Store(true)
			w.finalizeErr = fmt.Errorf("lineindex: finalize: %w", err)
			return
		}
		if w.config.SyncOnFinalize {
			if err := w.f.Sync(); err != nil {
				w.poisoned.Store(true)
				w.finalizeErr = err
				return
			}
		}
		w.finalized.Store(true)
		w.lock.Unlock()
		w.finalizeErr = w.f.Close()
	})
	return w.finalizeErr
}

// Close is an alias for Finalize so Writer satisfies io.Closer.
func (w *Writer) Close() error { return w.Finalize() }
