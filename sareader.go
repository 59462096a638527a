// Suffix-array residency strategies.
//
// residentSA holds the suffix array's bytes in memory (Config.ResidentSA
// true, the common case — the locator is then pure CPU, as spec.md §5
// describes for the no-suspension-points path). onDemandSA instead
// reads each entry from the container file as the locator needs it,
// keeping resident memory at Σn rather than Σ(n + 4n), at the cost of a
// seek per comparison (spec.md §4.5/§5 both call out this tradeoff as
// admissible either way).
package lineindex

import (
	"encoding/binary"
	"fmt"
	"io"
)

type residentSA []byte

func (r residentSA) EntryAt(off int64) (int32, error) {
	if off < 0 || off+4 > int64(len(r)) {
		return 0, fmt.Errorf("%w: suffix array offset %d out of range", ErrCorruptIndex, off)
	}
	return int32(binary.LittleEndian.Uint32(r[off : off+4])), nil
}

func (r residentSA) Len() int64 { return int64(len(r)) }

type onDemandSA struct {
	r   *io.SectionReader
	len int64
}

func (o *onDemandSA) EntryAt(off int64) (int32, error) {
	if off < 0 || off+4 > o.len {
		return 0, fmt.Errorf("%w: suffix array offset %d out of range", ErrCorruptIndex, off)
	}
	var buf [4]byte
	if _, err := o.r.ReadAt(buf[:], off); err != nil {
		return 0, fmt.Errorf("%w: suffix array read: %w", ErrCorruptIndex, err)
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

func (o *onDemandSA) Len() int64 { return o.len }
