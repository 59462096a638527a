package locate

import (
	"encoding/binary"
	"reflect"
	"slices"
	"testing"
)

// buildSA is a test-only reference suffix array builder: sort every
// suffix start position by direct byte comparison.
func buildSA(t []byte) []int32 {
	n := len(t)
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
	return idx
}

func encodeSA(sa []int32) residentTestSA {
	buf := make([]byte, len(sa)*4)
	for i, v := range sa {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return residentTestSA(buf)
}

type residentTestSA []byte

func (r residentTestSA) EntryAt(off int64) (int32, error) {
	return int32(binary.LittleEndian.Uint32(r[off : off+4])), nil
}
func (r residentTestSA) Len() int64 { return int64(len(r)) }

func search(t *testing.T, text string, query string) [][]byte {
	t.Helper()
	tb := []byte(text)
	sa := encodeSA(buildSA(tb))
	lo, hi, err := Bounds(tb, sa, []byte(query))
	if err != nil {
		t.Fatalf("bounds failed: %v", err)
	}
	lines, err := Lines(tb, sa, lo, hi)
	if err != nil {
		t.Fatalf("lines failed: %v", err)
	}
	return lines
}

func asStrings(lines [][]byte) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(l)
	}
	return out
}

func TestBoundsExactMatches(t *testing.T) {
	lines := asStrings(search(t, "apple\npineapple\ngrape\n", "apple"))
	slices.Sort(lines)
	want := []string{"apple", "pineapple"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("got %v, want %v", lines, want)
	}
}

func TestBoundsNoMatch(t *testing.T) {
	lines := search(t, "apple\npineapple\ngrape\n", "banana")
	if len(lines) != 0 {
		t.Errorf("expected no matches, got %v", lines)
	}
}

func TestBoundsOverlapDedup(t *testing.T) {
	// "abab" occurs twice in "ababab" (at 0 and 2) but both occurrences
	// belong to the same single line, so Lines must report it once.
	lines := search(t, "ababab\n", "abab")
	if len(lines) != 1 {
		t.Fatalf("expected 1 deduped line, got %d: %v", len(lines), asStrings(lines))
	}
	if string(lines[0]) != "ababab" {
		t.Errorf("got %q, want %q", lines[0], "ababab")
	}
}

func TestBoundsBinarySafety(t *testing.T) {
	text := "a\x00b\x01c\n"
	lines := search(t, text, "\x00b\x01")
	if len(lines) != 1 || string(lines[0]) != "a\x00b\x01c" {
		t.Errorf("got %v, want [%q]", asStrings(lines), "a\x00b\x01c")
	}
}

func TestBoundsSuffixShorterThanQuery(t *testing.T) {
	// A suffix near the end of the text is shorter than the query and
	// must never be reported as a match regardless of byte agreement.
	lines := search(t, "xyzap\n", "apple")
	if len(lines) != 0 {
		t.Errorf("expected no matches for a query longer than any suffix, got %v", asStrings(lines))
	}
}

func TestPartitionPoint(t *testing.T) {
	vals := []int64{1, 1, 2, 2, 2, 5, 8}
	i, err := partitionPoint(0, int64(len(vals)), func(i int64) (bool, error) {
		return vals[i] >= 2, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if i != 2 {
		t.Errorf("got %d, want 2", i)
	}
}
