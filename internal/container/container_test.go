package container

import (
	"os"
	"path/filepath"
	"testing"
)

func sumIdentity(b []byte, alg int) uint64 {
	var h uint64
	for _, c := range b {
		h = h*31 + uint64(c)
	}
	return h
}

func TestWriterOpenRoundTripFramed(t *testing.T) {
	testRoundTrip(t, FormatFramed)
}

func TestWriterOpenRoundTripArchive(t *testing.T) {
	testRoundTrip(t, FormatArchive)
}

func testRoundTrip(t *testing.T, format Format) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "c.bin")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	w, err := Create(f, format, 1, false)
	if err != nil {
		t.Fatal(err)
	}

	texts := [][2][]byte{
		{[]byte("apple\npineapple\n"), []byte{0, 1, 2, 3}},
		{[]byte("banana\n"), []byte{4, 5, 6, 7}},
	}
	for _, pair := range texts {
		if _, err := w.Append(pair[0], pair[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Finalize(sumIdentity); err != nil {
		t.Fatal(err)
	}
	f.Close()

	rf, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer rf.Close()
	info, err := rf.Stat()
	if err != nil {
		t.Fatal(err)
	}

	hdr, records, err := Open(rf, info.Size(), sumIdentity)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if hdr.Dirty != 0 {
		t.Errorf("expected finalized header, Dirty=%d", hdr.Dirty)
	}
	if hdr.Count != len(texts) {
		t.Errorf("got %d records, want %d", hdr.Count, len(texts))
	}
	if len(records) != len(texts) {
		t.Fatalf("got %d enumerated records, want %d", len(records), len(texts))
	}

	for i, rec := range records {
		got := make([]byte, rec.TextLen)
		if _, err := rf.ReadAt(got, rec.TextOffset); err != nil {
			t.Fatal(err)
		}
		if string(got) != string(texts[i][0]) {
			t.Errorf("record %d text = %q, want %q", i, got, texts[i][0])
		}
	}
}

func TestOpenRejectsUnfinalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.bin")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Create(f, FormatFramed, 1, false); err != nil {
		t.Fatal(err)
	}
	f.Close()

	rf, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer rf.Close()
	info, _ := rf.Stat()

	_, _, err = Open(rf, info.Size(), sumIdentity)
	if err == nil {
		t.Fatal("expected Open to reject a never-finalized container")
	}
}

func TestOpenRejectsChecksumMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.bin")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := Create(f, FormatFramed, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Append([]byte("x\n"), []byte{0, 0, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if err := w.Finalize(sumIdentity); err != nil {
		t.Fatal(err)
	}
	f.Close()

	rf, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer rf.Close()
	info, _ := rf.Stat()

	wrongSum := func(b []byte, alg int) uint64 { return sumIdentity(b, alg) + 1 }
	_, _, err = Open(rf, info.Size(), wrongSum)
	if err == nil {
		t.Fatal("expected Open to reject a checksum mismatch")
	}
}
