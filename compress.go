// Optional at-rest compression for sub-index text blobs.
//
// When Config.CompressText is set, the Writer zstd-compresses each
// flushed T before handing it to the container codec, making the file
// smaller; the Reader decompresses once per sub-index at Open into a
// heap buffer, since a compressed payload cannot be mmap'd as text.
// The suffix array is never compressed: the
// locator addresses it by arithmetic offset and a decode step per
// access would defeat C5's "no allocation on the hot path" target.
package lineindex

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Shared encoder/decoder, built once: zstd.NewWriter/NewReader both
// document internal state (match finder tables, dictionaries) that is
// expensive to build and safe to reuse across concurrent calls.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

func compressText(t []byte) []byte {
	return zstdEncoder.EncodeAll(t, make([]byte, 0, len(t)))
}

func decompressText(compressed []byte, sizeHint int) ([]byte, error) {
	out, err := zstdDecoder.DecodeAll(compressed, make([]byte, 0, sizeHint))
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", ErrCorruptIndex, err)
	}
	return out, nil
}
