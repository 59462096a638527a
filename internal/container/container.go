// Container ties the header (header.go) to one of the two record
// codecs (framed.go, archive.go) behind a single Writer/Open surface,
// so the rest of the module never branches on Format itself.
package container

import (
	"fmt"
	"io"
	"os"
)

// Writer appends sub-index records to a newly created container file.
type Writer struct {
	f          *os.File
	format     Format
	hashAlg    int
	compressed bool
	framed     *FramedWriter
	archive    *ArchiveWriter
	count      int
}

// Create writes a placeholder header to f (already truncated/empty)
// and returns a Writer ready for Append calls. compressed must match
// whatever the caller passes to every subsequent Append: this format
// applies one compression decision to the whole file, not per record.
func Create(f *os.File, format Format, hashAlg int, compressed bool) (*Writer, error) {
	hdr := NewHeader(format, hashAlg, compressed)
	buf, err := hdr.Encode()
	if err != nil {
		return nil, err
	}
	if _, err := f.WriteAt(buf, 0); err != nil {
		return nil, err
	}

	w := &Writer{f: f, format: format, hashAlg: hashAlg, compressed: compressed}
	switch format {
	case FormatArchive:
		aw, err := NewArchiveWriter(&offsetWriter{f: f, off: HeaderSize}, HeaderSize)
		if err != nil {
			return nil, err
		}
		w.archive = aw
	default:
		w.framed = NewFramedWriter(f, HeaderSize)
	}
	return w, nil
}

// Append writes one sub-index's text and little-endian-encoded
// suffix-array bytes as a single record.
func (w *Writer) Append(text, sa []byte) (Record, error) {
	var rec Record
	var err error
	if w.archive != nil {
		rec, err = w.archive.Append(text, sa)
	} else {
		rec, err = w.framed.Append(text, sa)
	}
	if err != nil {
		return Record{}, err
	}
	w.count++
	return rec, nil
}

// Finalize patches the header's Count/Checksum and clears Dirty. The
// checksum covers the format tag and final sub-index count, giving
// Open a cheap structural check independent of re-walking every
// record.
func (w *Writer) Finalize(checksumFn func(b []byte, alg int) uint64) error {
	hdr := Header{
		Version:       headerVersion,
		Format:        w.format,
		HashAlgorithm: w.hashAlg,
		Compressed:    w.compressed,
		Dirty:         0,
		Count:         w.count,
	}
	hdr.Checksum = checksumFn(checksumInput(hdr), w.hashAlg)

	buf, err := hdr.Encode()
	if err != nil {
		return err
	}
	_, err = w.f.WriteAt(buf, 0)
	return err
}

func checksumInput(h Header) []byte {
	return []byte(fmt.Sprintf("%d:%d:%d:%t", h.Format, h.HashAlgorithm, h.Count, h.Compressed))
}

// offsetWriter adapts an io.WriterAt into a sequential io.Writer
// starting at a fixed offset, for the ar writer which only knows
// io.Writer.
type offsetWriter struct {
	f   io.WriterAt
	off int64
}

func (o *offsetWriter) Write(p []byte) (int, error) {
	n, err := o.f.WriteAt(p, o.off)
	o.off += int64(n)
	return n, err
}

// Open reads the header and enumerates every sub-index record. A
// container whose Dirty flag is still set was never finalized and is
// rejected: this format has no repair path, a crash mid-build simply
// invalidates the file.
func Open(r io.ReaderAt, size int64, verifyChecksum func(b []byte, alg int) uint64) (Header, []Record, error) {
	hdr, err := ReadHeader(r)
	if err != nil {
		return Header{}, nil, err
	}
	if hdr.Dirty != 0 {
		return Header{}, nil, fmt.Errorf("%w: container was never finalized", ErrCorrupt)
	}
	if got := verifyChecksum(checksumInput(hdr), hdr.HashAlgorithm); got != hdr.Checksum {
		return Header{}, nil, fmt.Errorf("%w: header checksum mismatch", ErrCorrupt)
	}

	var records []Record
	switch hdr.Format {
	case FormatFramed:
		records, err = EnumerateFramed(r, HeaderSize, size)
	case FormatArchive:
		records, err = EnumerateArchive(io.NewSectionReader(r, HeaderSize, size-HeaderSize), HeaderSize)
	default:
		return Header{}, nil, fmt.Errorf("%w: unknown format tag %d", ErrFormatMismatch, hdr.Format)
	}
	if err != nil {
		return Header{}, nil, err
	}
	if len(records) != hdr.Count {
		return Header{}, nil, fmt.Errorf("%w: header declares %d sub-indexes, found %d", ErrCorrupt, hdr.Count, len(records))
	}
	return hdr, records, nil
}
