// Encoding B — POSIX ar archive (spec.md §6.2, "named archive").
//
// Entries are named text_<k> and suffix_array_<k> for k = 0, 1, …,
// always in consecutive pairs — the same layout the original
// implementation produced with Rust's `ar` crate (original_source's
// src/lib.rs Writer::dump_data/Reader::new). The Go counterpart is
// github.com/blakesmith/ar; we additionally track absolute byte
// offsets ourselves while walking entries so FormatArchive records
// can be addressed the same way FormatFramed records are — by
// (offset, length) into the container file — rather than requiring
// the rest of the package to special-case the archive encoding.
package container

import (
	"fmt"
	"io"

	"github.com/blakesmith/ar"
)

const (
	arGlobalHeaderSize = 8
	arEntryHeaderSize  = 60
)

// ArchiveWriter appends sub-index text/suffix-array pairs as named ar
// entries, starting at startOffset (immediately after the container
// header).
type ArchiveWriter struct {
	aw  *ar.Writer
	off int64
	k   int
}

// NewArchiveWriter writes the ar global header at startOffset and
// returns a writer ready for Append calls.
func NewArchiveWriter(w io.Writer, startOffset int64) (*ArchiveWriter, error) {
	aw := ar.NewWriter(w)
	if err := aw.WriteGlobalHeader(); err != nil {
		return nil, err
	}
	return &ArchiveWriter{aw: aw, off: startOffset + arGlobalHeaderSize}, nil
}

// Append writes one (text, sa) record as a text_<k>/suffix_array_<k>
// pair and returns its byte-offset tuple.
func (w *ArchiveWriter) Append(text, sa []byte) (Record, error) {
	var rec Record

	if err := w.aw.WriteHeader(&ar.Header{Name: fmt.Sprintf("text_%d", w.k), Size: int64(len(text))}); err != nil {
		return Record{}, err
	}
	w.off += arEntryHeaderSize
	rec.TextOffset = w.off
	rec.TextLen = int64(len(text))
	if _, err := w.aw.Write(text); err != nil {
		return Record{}, err
	}
	w.off += rec.TextLen
	if rec.TextLen%2 == 1 {
		w.off++ // ar pads odd-length entries with a trailing byte
	}

	if err := w.aw.WriteHeader(&ar.Header{Name: fmt.Sprintf("suffix_array_%d", w.k), Size: int64(len(sa))}); err != nil {
		return Record{}, err
	}
	w.off += arEntryHeaderSize
	rec.SAOffset = w.off
	rec.SALen = int64(len(sa))
	if _, err := w.aw.Write(sa); err != nil {
		return Record{}, err
	}
	w.off += rec.SALen
	if rec.SALen%2 == 1 {
		w.off++
	}

	w.k++
	return rec, nil
}

// EnumerateArchive walks an ar archive starting at startOffset,
// pairing consecutive text_<k>/suffix_array_<k> entries into Records.
func EnumerateArchive(r io.Reader, startOffset int64) ([]Record, error) {
	ar_r := ar.NewReader(r)
	off := startOffset + arGlobalHeaderSize

	var records []Record
	var pending *Record
	i := 0

	for {
		hdr, err := ar_r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: archive: %w", ErrCorrupt, err)
		}
		off += arEntryHeaderSize

		if i%2 == 0 {
			pending = &Record{TextOffset: off, TextLen: hdr.Size}
		} else {
			pending.SAOffset = off
			pending.SALen = hdr.Size
			if pending.SALen%4 != 0 {
				return nil, fmt.Errorf("%w: archive: suffix array length %d not a multiple of 4", ErrCorrupt, pending.SALen)
			}
			// See framed.go: SALen/4 need not equal TextLen when the
			// text payload is stored zstd-compressed; the caller
			// checks entry count against the decompressed length.
			records = append(records, *pending)
			pending = nil
		}

		off += hdr.Size
		if hdr.Size%2 == 1 {
			off++
		}
		i++
	}

	if i%2 != 0 {
		return nil, fmt.Errorf("%w: archive: odd entry count", ErrCorrupt)
	}
	return records, nil
}
