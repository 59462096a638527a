// Package container implements the on-disk sub-index container: the
// pack/unpack codec for (text, suffix-array) records, in either of two
// encodings (length-prefixed framing, or a POSIX ar archive), behind a
// single Writer/Enumerate interface.
package container

import "errors"

var (
	// ErrCorrupt is returned for a truncated record, a declared length
	// past EOF, or an inconsistent sub-index count.
	ErrCorrupt = errors.New("container: corrupt")

	// ErrFormatMismatch is returned when a container's format/version
	// tag is not one this package reads.
	ErrFormatMismatch = errors.New("container: format mismatch")
)
