// Sub-index Reader (C4).
//
// Open maps a finalized container file into a slice of independent
// subIndex values — one per sub-index record the container enumerates —
// each holding its own resident or mmap'd text and its own
// resident-or-on-demand suffix array over the Reader's single file
// handle, per spec.md §5: all file access goes through ReadAt, so no
// sub-index shares a seek cursor or buffer with another, and Search can
// fan queries out across them without any cross-goroutine contention
// beyond the errgroup itself.
package lineindex

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/jpl-au/lineindex/internal/container"
)

// subIndex is one chunk's materialized text and suffix array, ready
// for locate.Bounds/locate.Lines.
type subIndex struct {
	text []byte
	mmap mmap.MMap // non-nil when text is backed by a live mapping that must be unmapped
	sa   saReader
}

// saReader is the locate package's SAReader, duplicated here as an
// unexported interface so reader.go doesn't need to import locate just
// to name the type; residentSA and *onDemandSA both satisfy it.
type saReader interface {
	EntryAt(off int64) (int32, error)
	Len() int64
}

// Reader answers Search queries against a finalized container file. A
// Reader is safe for concurrent use by multiple goroutines once Open
// returns.
type Reader struct {
	f      *os.File
	lock   *fileLock
	config Config
	subs   []subIndex
}

// Open opens the container file at path for searching. A zero Config
// uses ConfigDefaults.
func Open(path string, config Config) (*Reader, error) {
	config = fillConfig(config)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	flock := &fileLock{f: f}
	if err := flock.Lock(LockShared); err != nil {
		f.Close()
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		flock.Unlock()
		f.Close()
		return nil, err
	}

	hdr, records, err := container.Open(f, info.Size(), checksum)
	if err != nil {
		flock.Unlock()
		f.Close()
		switch {
		case errors.Is(err, container.ErrFormatMismatch):
			return nil, fmt.Errorf("%w: %w", ErrFormatMismatch, err)
		case errors.Is(err, container.ErrCorrupt):
			return nil, fmt.Errorf("%w: %w", ErrCorruptIndex, err)
		}
		return nil, err
	}

	r := &Reader{f: f, lock: flock, config: config}
	for _, rec := range records {
		sub, err := r.materialize(hdr, rec)
		if err != nil {
			r.closeSubs()
			flock.Unlock()
			f.Close()
			return nil, err
		}
		r.subs = append(r.subs, sub)
	}
	return r, nil
}

// materialize loads one sub-index's text (resident, mmap'd, or both —
// decompressed first if hdr.Compressed) and wires up its suffix-array
// reader per Config.ResidentSA.
func (r *Reader) materialize(hdr container.Header, rec container.Record) (subIndex, error) {
	var sub subIndex

	if r.config.Mmap && !hdr.Compressed {
		m, err := mmap.MapRegion(r.f, int(rec.TextLen), mmap.RDONLY, 0, rec.TextOffset)
		if err == nil {
			sub.text = []byte(m)
			sub.mmap = m
		}
	}
	if sub.text == nil {
		buf := make([]byte, rec.TextLen)
		if rec.TextLen > 0 {
			if _, err := r.f.ReadAt(buf, rec.TextOffset); err != nil {
				return subIndex{}, fmt.Errorf("%w: sub-index text read: %w", ErrCorruptIndex, err)
			}
		}
		if hdr.Compressed {
			text, err := decompressText(buf, int(rec.TextLen)*4)
			if err != nil {
				return subIndex{}, err
			}
			sub.text = text
		} else {
			sub.text = buf
		}
	}

	n := int64(len(sub.text))
	if rec.SALen/4 != n {
		return subIndex{}, fmt.Errorf("%w: suffix array has %d entries, text has %d bytes", ErrCorruptIndex, rec.SALen/4, n)
	}

	if r.config.ResidentSA {
		buf := make([]byte, rec.SALen)
		if rec.SALen > 0 {
			if _, err := r.f.ReadAt(buf, rec.SAOffset); err != nil {
				return subIndex{}, fmt.Errorf("%w: suffix array read: %w", ErrCorruptIndex, err)
			}
		}
		sub.sa = residentSA(buf)
	} else {
		sub.sa = &onDemandSA{r: io.NewSectionReader(r.f, rec.SAOffset, rec.SALen), len: rec.SALen}
	}

	return sub, nil
}

func (r *Reader) closeSubs() {
	for _, s := range r.subs {
		if s.mmap != nil {
			s.mmap.Unmap()
		}
	}
}

// Close releases the Reader's resources: text mappings, the shared
// lock and the file handle. Close is not idempotent, and the Reader
// keeps no closed state: Search after Close does not return ErrClosed.
func (r *Reader) Close() error {
	r.closeSubs()
	r.lock.Unlock()
	return r.f.Close()
}
