package compression

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/gzip"
	"github.com/noxer/bytewriter"
)

const gzipDefaultLevel = gzip.DefaultCompression

// gzipBound is the worst case gzip size for `size` bytes of input: stored
// deflate blocks plus the gzip header and trailer.
func gzipBound(size int) int {
	return size + size>>10 + 64
}

func compressRLE8Gzip(src, dst []byte, level int) ([]byte, error) {
	output := bytes.NewBuffer(dst)
	_, err := CompressImage(bytes.NewReader(src), output, level)
	if err != nil {
		return nil, fmt.Errorf("rle8_gzip compress: %w", err)
	}
	return output.Bytes(), nil
}

func decompressRLE8Gzip(src, dst []byte) (int, error) {
	n, err := DecompressImage(bytes.NewReader(src), bytewriter.New(dst))
	if err != nil {
		return 0, fmt.Errorf("rle8_gzip decompress: %w", err)
	}
	if int(n) != len(dst) {
		return 0, fmt.Errorf("rle8_gzip decompress: got %d bytes, expected %d", n, len(dst))
	}
	return int(n), nil
}
