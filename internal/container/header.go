// Container file header.
//
// The header is a fixed-size, padded JSON object at byte offset 0,
// the same fixed-size-then-newline framing the teacher uses for its
// database header, adapted from a free-form document store header to
// a binary container's magic/version/format header (spec.md §4.1 and
// §6.2 require a magic/version tag naming which of the two on-disk
// encodings a file uses).
//
// The header is written once, as a placeholder, when the container is
// created, and overwritten in place at Finalize with the final
// Dirty/Count/Checksum values — the rest of the file is not rewritten —
// after the teacher's dirty()/encode() discipline in
// header.go/write.go. A container whose Dirty flag is still set at
// Open was never finalized (crash, or a caller that never called
// Finalize) and is rejected outright: unlike the teacher's document
// store, this format has no repair path, because spec.md explicitly
// excludes incremental recovery for a write-once index — a truncated
// build is simply invalid.
package container

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// HeaderSize is the fixed size of the header in bytes.
const HeaderSize = 128

// Format identifies the on-disk sub-index encoding.
type Format int

const (
	FormatFramed Format = iota
	FormatArchive
)

// Header is the container's metadata block.
type Header struct {
	Version       int    `json:"_v"`
	Format        Format `json:"_fmt"`
	HashAlgorithm int    `json:"_alg"`
	Compressed    bool   `json:"_z"` // true if every sub-index's text payload is zstd-compressed
	Dirty         int    `json:"_e"` // 1 while being built, 0 once finalized
	Count         int    `json:"_n"` // number of sub-indexes; meaningful only when Dirty==0
	Checksum      uint64 `json:"_ck"`
}

const headerVersion = 1

// NewHeader returns a Header for a freshly created, not-yet-finalized
// container. compressed records, for the Reader's benefit, whether
// sub-index text payloads were zstd-compressed at write time — the
// same flag applies uniformly to every sub-index in the file.
func NewHeader(format Format, hashAlg int, compressed bool) Header {
	return Header{
		Version:       headerVersion,
		Format:        format,
		HashAlgorithm: hashAlg,
		Compressed:    compressed,
		Dirty:         1,
	}
}

// Encode serialises h to exactly HeaderSize bytes, padded with spaces
// and newline-terminated.
func (h Header) Encode() ([]byte, error) {
	data, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}

	padLen := HeaderSize - len(data) - 1
	if padLen < 0 {
		return nil, fmt.Errorf("container: header too large (%d bytes)", len(data))
	}

	buf := make([]byte, HeaderSize)
	copy(buf, data)
	for i := len(data); i < HeaderSize-1; i++ {
		buf[i] = ' '
	}
	buf[HeaderSize-1] = '\n'
	return buf, nil
}

// ReadHeader reads and parses the header at the start of r.
func ReadHeader(r io.ReaderAt) (Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := r.ReadAt(buf, 0); err != nil {
		return Header{}, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}

	var h Header
	if err := json.Unmarshal(bytes.TrimSpace(buf), &h); err != nil {
		return Header{}, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	if h.Version != headerVersion {
		return Header{}, fmt.Errorf("%w: header version %d", ErrFormatMismatch, h.Version)
	}
	return h, nil
}
