package compression

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4"
)

// NoCompressor is a pass-through compressor.
type NoCompressor struct{}

// Name returns the name of the compressor.
func (c *NoCompressor) Name() string {
	return "none"
}

// Compress returns a copy of the data unchanged.
func (c *NoCompressor) Compress(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Decompress returns a copy of the data unchanged.
func (c *NoCompressor) Decompress(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Payload framing: one flag byte (raw or lz4) followed by the
// uncompressed length in four big-endian bytes, then the body.
const (
	flagRaw  byte = 0
	flagLZ4  byte = 1
	frameLen      = 5
)

// LZ4Compressor implements LZ4 block compression. Incompressible input
// is stored raw behind the frame header.
type LZ4Compressor struct{}

// Name returns the name of the compressor.
func (c *LZ4Compressor) Name() string {
	return "lz4"
}

// Compress compresses data using LZ4.
func (c *LZ4Compressor) Compress(data []byte) ([]byte, error) {
	out := make([]byte, frameLen+lz4.CompressBlockBound(len(data)))
	binary.BigEndian.PutUint32(out[1:frameLen], uint32(len(data)))
	n, err := lz4.CompressBlock(data, out[frameLen:], nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if n == 0 || n >= len(data) {
		out[0] = flagRaw
		copy(out[frameLen:], data)
		return out[:frameLen+len(data)], nil
	}
	out[0] = flagLZ4
	return out[:frameLen+n], nil
}

// Decompress decompresses a payload produced by Compress.
func (c *LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) < frameLen {
		return nil, fmt.Errorf("lz4 payload too short: %d bytes", len(data))
	}
	size := binary.BigEndian.Uint32(data[1:frameLen])
	out := make([]byte, size)
	switch data[0] {
	case flagRaw:
		if int(size) != len(data)-frameLen {
			return nil, fmt.Errorf("raw payload length mismatch")
		}
		copy(out, data[frameLen:])
		return out, nil
	case flagLZ4:
		n, err := lz4.UncompressBlock(data[frameLen:], out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		return out[:n], nil
	default:
		return nil, fmt.Errorf("unknown compression flag %d", data[0])
	}
}
