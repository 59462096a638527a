// Package lineindex provides a disk-backed substring search index for
// line-oriented text corpora. It builds an immutable, chunked index
// from many text entries and answers "which stored lines contain this
// substring" queries in parallel across chunks.
//
// The index is write-once, read-many: a Writer accumulates entries and
// finalizes a container file; a Reader opens that container and
// answers Search queries concurrently until Closed.
package lineindex

import "errors"

// Sentinel errors returned by Writer and Reader operations.
var (
	// ErrEntryTooLarge is returned when a single entry exceeds the
	// configured chunk ceiling.
	ErrEntryTooLarge = errors.New("lineindex: entry exceeds chunk ceiling")

	// ErrEmptyQuery is returned by Search for a zero-length substring.
	ErrEmptyQuery = errors.New("lineindex: empty query")

	// ErrCorruptIndex is returned when a container file is truncated,
	// has a declared length past EOF, or otherwise fails structural
	// validation.
	ErrCorruptIndex = errors.New("lineindex: corrupt index")

	// ErrOracleFailure is returned when the suffix-array Oracle's Build
	// returns an error. The entries Build writes are not validated.
	ErrOracleFailure = errors.New("lineindex: oracle failure")

	// ErrFormatMismatch is returned by Open when a container's
	// format/version tag is not one this package reads.
	ErrFormatMismatch = errors.New("lineindex: container format mismatch")

	// ErrClosed is returned when operating on a Writer after
	// Close/Finalize, or on a Writer that has been poisoned by a prior
	// I/O failure. A Reader does not return it.
	ErrClosed = errors.New("lineindex: closed")
)
