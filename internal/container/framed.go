// Encoding A — length-prefixed framing (spec.md §6.2, "framed").
//
// For each sub-index, in order: u32le text_len || text || u32le
// sa_len_bytes || sa_bytes. End of the section terminates enumeration.
// All integers are little-endian, matching the suffix array's own
// little-endian int32 entries.
package container

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Record locates one sub-index's text and suffix-array payloads as
// absolute byte offsets within the container file, regardless of
// which encoding produced them — callers address both encodings
// identically once Enumerate has run.
type Record struct {
	TextOffset int64
	TextLen    int64
	SAOffset   int64
	SALen      int64 // bytes; SALen/4 is the suffix-array entry count
}

// FramedWriter appends length-prefixed sub-index records sequentially
// starting at a given offset.
type FramedWriter struct {
	w   io.WriterAt
	off int64
}

// NewFramedWriter returns a writer appending at startOffset.
func NewFramedWriter(w io.WriterAt, startOffset int64) *FramedWriter {
	return &FramedWriter{w: w, off: startOffset}
}

// Append writes one (text, sa) record and returns its byte-offset tuple.
func (fw *FramedWriter) Append(text, sa []byte) (Record, error) {
	var rec Record
	var hdr [4]byte

	binary.LittleEndian.PutUint32(hdr[:], uint32(len(text)))
	if _, err := fw.w.WriteAt(hdr[:], fw.off); err != nil {
		return Record{}, err
	}
	fw.off += 4

	rec.TextOffset = fw.off
	rec.TextLen = int64(len(text))
	if len(text) > 0 {
		if _, err := fw.w.WriteAt(text, fw.off); err != nil {
			return Record{}, err
		}
	}
	fw.off += rec.TextLen

	binary.LittleEndian.PutUint32(hdr[:], uint32(len(sa)))
	if _, err := fw.w.WriteAt(hdr[:], fw.off); err != nil {
		return Record{}, err
	}
	fw.off += 4

	rec.SAOffset = fw.off
	rec.SALen = int64(len(sa))
	if len(sa) > 0 {
		if _, err := fw.w.WriteAt(sa, fw.off); err != nil {
			return Record{}, err
		}
	}
	fw.off += rec.SALen

	return rec, nil
}

// Offset returns the current append position.
func (fw *FramedWriter) Offset() int64 { return fw.off }

// EnumerateFramed walks [start, end) reading length-prefixed records.
func EnumerateFramed(r io.ReaderAt, start, end int64) ([]Record, error) {
	var records []Record
	off := start

	for off < end {
		textLen, next, err := readU32Len(r, off, end)
		if err != nil {
			return nil, fmt.Errorf("%w: framed: text length: %w", ErrCorrupt, err)
		}
		off = next
		textOff := off
		if textOff+textLen > end {
			return nil, fmt.Errorf("%w: framed: text payload past end", ErrCorrupt)
		}
		off += textLen

		saLen, next, err := readU32Len(r, off, end)
		if err != nil {
			return nil, fmt.Errorf("%w: framed: suffix array length: %w", ErrCorrupt, err)
		}
		off = next
		saOff := off
		if saOff+saLen > end {
			return nil, fmt.Errorf("%w: framed: suffix array payload past end", ErrCorrupt)
		}
		if saLen%4 != 0 {
			return nil, fmt.Errorf("%w: framed: suffix array length %d not a multiple of 4", ErrCorrupt, saLen)
		}
		// saLen/4 need not equal textLen byte-for-byte here: when the
		// text payload is stored compressed (Config.CompressText),
		// textLen is the compressed length while the suffix array
		// still has one entry per decompressed byte. The caller
		// validates saLen/4 against the decompressed length once it
		// has decoded the text.
		off += saLen

		records = append(records, Record{textOff, textLen, saOff, saLen})
	}

	if off != end {
		return nil, fmt.Errorf("%w: framed: trailing bytes", ErrCorrupt)
	}
	return records, nil
}

func readU32Len(r io.ReaderAt, off, end int64) (length, next int64, err error) {
	if off+4 > end {
		return 0, 0, fmt.Errorf("truncated length prefix")
	}
	var hdr [4]byte
	if _, err := r.ReadAt(hdr[:], off); err != nil {
		return 0, 0, err
	}
	return int64(binary.LittleEndian.Uint32(hdr[:])), off + 4, nil
}
