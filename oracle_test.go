package lineindex

import "testing"

func TestNaiveOracleOrdersSuffixes(t *testing.T) {
	text := []byte("banana")
	sa := make([]int32, len(text))
	if err := DefaultOracle().Build(text, sa); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	// banana's suffixes in sorted order: a, ana, anana, banana, na, nana
	want := []int32{5, 3, 1, 0, 4, 2}
	if len(sa) != len(want) {
		t.Fatalf("length mismatch: got %d want %d", len(sa), len(want))
	}
	for i := range want {
		if sa[i] != want[i] {
			t.Errorf("sa[%d] = %d, want %d", i, sa[i], want[i])
		}
	}
}

func TestNaiveOracleEmptyText(t *testing.T) {
	sa := make([]int32, 0)
	if err := DefaultOracle().Build(nil, sa); err != nil {
		t.Fatalf("build failed on empty text: %v", err)
	}
}

func TestNaiveOracleLengthMismatch(t *testing.T) {
	text := []byte("abc")
	sa := make([]int32, 2)
	err := DefaultOracle().Build(text, sa)
	if err == nil {
		t.Fatal("expected error on dst/text length mismatch")
	}
}
