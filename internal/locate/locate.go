// Package locate implements the suffix-array substring locator (C5)
// and the line materializer/dedup step (C6) of spec.md §4.3–§4.4: an
// indirect-key binary search over a suffix array that bounds the
// range of entries whose suffix has a query substring as a prefix,
// followed by newline-expansion of each matched position into its
// enclosing line.
package locate

import "bytes"

// SAReader gives indirect-key access into a suffix array: EntryAt
// returns the int32 entry stored at byte offset off (a multiple of
// 4), and Len returns the suffix array's total byte length (4 times
// its entry count). Implementations may hold the array resident in
// memory or read it on demand from a file.
type SAReader interface {
	EntryAt(off int64) (int32, error)
	Len() int64
}

// compare3 classifies suffix t[p:] against query, truncated to
// min(len(query), len(t)-p) bytes per spec.md §4.3: the first
// differing byte decides the order; a suffix whose available bytes all
// agree but which has fewer than len(query) bytes remaining cannot be
// a prefix match and is treated as strictly less than the query.
func compare3(t []byte, p int64, query []byte) (matched bool, c int) {
	n := int64(len(t))
	avail := n - p
	q := int64(len(query))

	limit := q
	if avail < limit {
		limit = avail
	}
	for i := int64(0); i < limit; i++ {
		a, b := t[p+i], query[i]
		if a != b {
			if a < b {
				return false, -1
			}
			return false, 1
		}
	}
	if avail < q {
		return false, -1
	}
	return true, 0
}

func entryCompare(t []byte, sa SAReader, i int64, query []byte) (matched bool, c int, err error) {
	v, err := sa.EntryAt(i * 4)
	if err != nil {
		return false, 0, err
	}
	matched, c = compare3(t, int64(v), query)
	return matched, c, nil
}

// partitionPoint finds the smallest i in [start, count) for which
// pred(i) holds. pred must be false for every index before some point
// and true from there on (the standard binary-search precondition,
// matching sort.Search).
//
// This runs in suffix-array index space rather than the byte space
// spec.md §4.3 illustrates its mid-point formula in; §4.3 explicitly
// allows "index-space binary search then multiply by 4" as equivalent
// to the byte-space formulation, and index space sidesteps the
// byte-space underflow spec.md's design notes (§9) warn a "right =
// mid - 4" formulation must guard against when the search window
// collapses at its lower edge.
func partitionPoint(start, count int64, pred func(i int64) (bool, error)) (int64, error) {
	lo, hi := start, count
	for lo < hi {
		mid := lo + (hi-lo)/2
		ok, err := pred(mid)
		if err != nil {
			return 0, err
		}
		if ok {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo, nil
}

// Bounds performs the two-pass search of spec.md §4.3 and returns the
// half-open suffix-array index range [lo, hi) whose every entry's
// suffix has query as a prefix. query must be non-empty; the caller
// enforces the module's EmptyQuery policy before calling Bounds.
//
// The lower-bound pass finds the leftmost index whose suffix is not
// strictly less than query; if that index doesn't actually match
// (its suffix is strictly greater), the sub-index has no occurrence
// and the upper-bound pass is skipped, per spec.md §4.3.
func Bounds(t []byte, sa SAReader, query []byte) (lo, hi int64, err error) {
	count := sa.Len() / 4

	lo, err = partitionPoint(0, count, func(i int64) (bool, error) {
		_, c, err := entryCompare(t, sa, i, query)
		return c >= 0, err
	})
	if err != nil {
		return 0, 0, err
	}
	if lo >= count {
		return 0, 0, nil
	}

	matched, c, err := entryCompare(t, sa, lo, query)
	if err != nil {
		return 0, 0, err
	}
	if !matched || c != 0 {
		return 0, 0, nil
	}

	hi, err = partitionPoint(lo, count, func(i int64) (bool, error) {
		_, c, err := entryCompare(t, sa, i, query)
		return c > 0, err
	})
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// Lines expands each suffix-array entry in [lo, hi) to its enclosing
// newline-bounded line and deduplicates by line start offset, per
// spec.md §4.4. Order mirrors SA traversal from lo upward.
func Lines(t []byte, sa SAReader, lo, hi int64) ([][]byte, error) {
	if hi <= lo {
		return nil, nil
	}
	n := int64(len(t))
	seen := make(map[int64]struct{}, hi-lo)
	out := make([][]byte, 0, hi-lo)

	for i := lo; i < hi; i++ {
		v, err := sa.EntryAt(i * 4)
		if err != nil {
			return nil, err
		}
		p := int64(v)

		lineEnd := n - 1
		if rel := bytes.IndexByte(t[p:], '\n'); rel >= 0 {
			lineEnd = p + int64(rel)
		}

		lineStart := int64(0)
		if idx := bytes.LastIndexByte(t[:p], '\n'); idx >= 0 {
			lineStart = int64(idx) + 1
		}

		if _, dup := seen[lineStart]; dup {
			continue
		}
		seen[lineStart] = struct{}{}
		out = append(out, t[lineStart:lineEnd])
	}
	return out, nil
}
