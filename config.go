// Configuration and defaults, filled in the same way the teacher's
// database Open() fills zero-value Config fields before use.
package lineindex

import "runtime"

// Hash algorithm selection for the container header checksum.
const (
	AlgXXHash3 = 1 // Default, fastest.
	AlgBlake2b = 2 // Best distribution.
)

// ContainerFormat selects the on-disk encoding for sub-index records.
type ContainerFormat int

const (
	// FormatFramed packs length-prefixed blobs directly in the file.
	FormatFramed ContainerFormat = iota
	// FormatArchive packs blobs as named entries in a POSIX ar archive.
	FormatArchive
)

// Config holds index configuration. A zero Config is valid; Open and
// Create fill unset fields with the defaults documented below.
type Config struct {
	// MaxChunkSize is L_max, the text-blob ceiling per sub-index.
	// Default 512 MiB.
	MaxChunkSize int

	// Format selects the container's on-disk encoding. Default
	// FormatFramed.
	Format ContainerFormat

	// ResidentSA keeps each sub-index's suffix array resident in
	// memory alongside its text. When false, SA entries are read on
	// demand from the container file during search. Defaults to true
	// only for a zero Config (via ConfigDefaults, used automatically
	// when Create/Open receive a zero Config); Go cannot distinguish
	// an explicitly-false bool from an unset one, so any non-empty
	// Config literal must set this field explicitly to get true.
	ResidentSA bool

	// Mmap memory-maps each sub-index's text blob from the container
	// file instead of copying it into a heap buffer at Open; falls
	// back to a plain read if mapping fails. Same zero-Config-only
	// default caveat as ResidentSA applies.
	Mmap bool

	// CompressText zstd-compresses each sub-index's text blob at
	// rest. The Reader decompresses once at Open. Default false.
	CompressText bool

	// HashAlgorithm selects the checksum used for the container
	// header. Sub-indexes carry no checksum of their own. Default
	// AlgXXHash3.
	HashAlgorithm int

	// Workers bounds the number of sub-indexes searched concurrently.
	// Default runtime.GOMAXPROCS(0).
	Workers int

	// ReadBuffer is the initial buffer size of the line scanner used
	// by AddLinesFrom. Default 64 KiB.
	ReadBuffer int

	// SyncOnFinalize calls fsync after the container's final flush.
	SyncOnFinalize bool
}

const defaultMaxChunkSize = 512 * 1024 * 1024

func (c Config) withDefaults() Config {
	if c.MaxChunkSize == 0 {
		c.MaxChunkSize = defaultMaxChunkSize
	}
	if c.HashAlgorithm == 0 {
		c.HashAlgorithm = AlgXXHash3
	}
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.ReadBuffer == 0 {
		c.ReadBuffer = 64 * 1024
	}
	// ResidentSA and Mmap are left as-is here: Go can't tell an
	// explicit false from an unset field, so withDefaults cannot turn
	// either on without also overriding a caller's deliberate false.
	// ConfigDefaults is the only path that sets them true; a caller
	// building a partial Config literal gets false for both unless it
	// sets them explicitly — see the field doc comments above.
	return c
}

// ConfigDefaults returns a Config with every field set to its
// documented default, including the bool fields that default to true
// and therefore cannot be expressed as a Go zero value.
func ConfigDefaults() Config {
	c := Config{
		ResidentSA: true,
		Mmap:       true,
	}
	return c.withDefaults()
}
