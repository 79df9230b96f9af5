package compression

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// Every LZ4 stream starts with one of these markers. Blocks that LZ4 can't
// shrink are stored as-is.
const (
	lz4MarkerStored     byte = 0
	lz4MarkerCompressed byte = 1
)

func lz4Bound(size int) int {
	return lz4.CompressBlockBound(size) + 1
}

// lz4Level maps a compression level to the LZ4 high-compression depth. Level 0
// uses the fast compressor.
func lz4Level(level int) (lz4.CompressionLevel, error) {
	switch level {
	case 0:
		return lz4.Fast, nil
	case 1:
		return lz4.Level1, nil
	case 4:
		return lz4.Level4, nil
	case 9:
		return lz4.Level9, nil
	default:
		return 0, fmt.Errorf("lz4: unsupported compression level %d", level)
	}
}

func compressLZ4(src, dst []byte, level int) ([]byte, error) {
	depth, err := lz4Level(level)
	if err != nil {
		return nil, err
	}

	dst = dst[:cap(dst)]
	var written int
	if depth == lz4.Fast {
		written, err = lz4.CompressBlock(src, dst[1:], nil)
	} else {
		written, err = lz4.CompressBlockHC(src, dst[1:], depth, nil, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}

	// CompressBlock returns 0 when the data is incompressible.
	if written == 0 || written >= len(src) {
		dst[0] = lz4MarkerStored
		copy(dst[1:], src)
		return dst[:len(src)+1], nil
	}
	dst[0] = lz4MarkerCompressed
	return dst[:written+1], nil
}

func decompressLZ4(src, dst []byte) (int, error) {
	marker, payload := src[0], src[1:]
	switch marker {
	case lz4MarkerStored:
		if len(payload) != len(dst) {
			return 0, fmt.Errorf(
				"lz4 decompress: stored block has %d bytes, expected %d",
				len(payload),
				len(dst))
		}
		return copy(dst, payload), nil
	case lz4MarkerCompressed:
		read, err := lz4.UncompressBlock(payload, dst)
		if err != nil {
			return 0, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != len(dst) {
			return 0, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, len(dst))
		}
		return read, nil
	default:
		return 0, fmt.Errorf("lz4 decompress: invalid block marker %d", marker)
	}
}
