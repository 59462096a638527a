package lineindex

import (
	"runtime"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	c := ConfigDefaults()
	if c.MaxChunkSize != defaultMaxChunkSize {
		t.Errorf("MaxChunkSize = %d, want %d", c.MaxChunkSize, defaultMaxChunkSize)
	}
	if c.HashAlgorithm != AlgXXHash3 {
		t.Errorf("HashAlgorithm = %d, want %d", c.HashAlgorithm, AlgXXHash3)
	}
	if c.Workers != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers = %d, want %d", c.Workers, runtime.GOMAXPROCS(0))
	}
	if c.ReadBuffer != 64*1024 {
		t.Errorf("ReadBuffer = %d, want %d", c.ReadBuffer, 64*1024)
	}
	if !c.ResidentSA || !c.Mmap {
		t.Errorf("ResidentSA/Mmap should default true, got %v/%v", c.ResidentSA, c.Mmap)
	}
}

func TestConfigWithDefaultsPreservesExplicitValues(t *testing.T) {
	c := Config{MaxChunkSize: 1024, HashAlgorithm: AlgBlake2b, Workers: 2, ReadBuffer: 512}
	got := c.withDefaults()
	if got.MaxChunkSize != 1024 || got.HashAlgorithm != AlgBlake2b || got.Workers != 2 || got.ReadBuffer != 512 {
		t.Errorf("withDefaults altered explicit values: %+v", got)
	}
}
