// Suffix-array oracle boundary.
//
// The core never constructs a suffix array itself — it treats the
// algorithm as an external capability injected into the Writer. Any
// linear-time construction (SA-IS, DC3, a libdivsufsort binding) can
// satisfy Oracle; naiveOracle below exists only so the package is
// usable without wiring in a third-party construction algorithm, and
// is not the performance path.
package lineindex

import (
	"fmt"
	"slices"
)

// Oracle computes the suffix array of a byte buffer. Build must write
// exactly len(t) little-endian-ordered int32 entries into dst such
// that t[dst[i]:] are the lexicographically sorted suffixes of t.
//
// len(t) must fit in an int32; callers enforce this via Config's
// chunk ceiling before ever invoking Build.
type Oracle interface {
	Build(t []byte, dst []int32) error
}

// DefaultOracle returns the package's reference Oracle. It sorts
// suffixes by direct byte comparison and is O(n^2 log n) worst case —
// fine for the module's own tests and for small corpora, but callers
// indexing large corpora should supply a linear-time Oracle instead.
func DefaultOracle() Oracle {
	return naiveOracle{}
}

type naiveOracle struct{}

func (naiveOracle) Build(t []byte, dst []int32) error {
	n := len(t)
	if n != len(dst) {
		return fmt.Errorf("%w: oracle: dst length %d does not match text length %d", ErrOracleFailure, len(dst), n)
	}
	if n == 0 {
		return nil
	}

	idx := make([]int32, n)
	for i := range idx {
		idx[i] = int32(i)
	}

	slices.SortFunc(idx, func(a, b int32) int {
		sa, sb := t[a:], t[b:]
		for i := 0; i < len(sa) && i < len(sb); i++ {
			if sa[i] != sb[i] {
				if sa[i] < sb[i] {
					return -1
				}
				return 1
			}
		}
		return len(sa) - len(sb)
	})

	copy(dst, idx)
	return nil
}
