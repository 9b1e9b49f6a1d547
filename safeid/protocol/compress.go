package protocol

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var ErrDecompressionFailed = errors.New("protocol: decompression failed")

// A Compressor keeps its hash table between calls and is not safe for
// concurrent use.
var compressors = sync.Pool{
	New: func() interface{} { return new(lz4.Compressor) },
}

// compressBlock returns data as a raw LZ4 block when that is smaller.
// Key material is high-entropy, so records usually travel uncompressed.
func compressBlock(data []byte) ([]byte, bool) {
	if len(data) == 0 {
		return data, false
	}
	c := compressors.Get().(*lz4.Compressor)
	defer compressors.Put(c)

	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := c.CompressBlock(data, dst)
	if err != nil || n == 0 || n >= len(data) {
		return data, false
	}
	return dst[:n], true
}

// uncompressBlock expands block, which must decode to exactly size bytes.
func uncompressBlock(block []byte, size uint32) ([]byte, error) {
	if size == 0 || size > MaxFramePayload {
		return nil, ErrDecompressionFailed
	}
	dst := make([]byte, size)
	n, err := lz4.UncompressBlock(block, dst)
	if err != nil || n != int(size) {
		return nil, ErrDecompressionFailed
	}
	return dst, nil
}
