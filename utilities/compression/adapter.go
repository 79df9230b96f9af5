package compression

import (
	"fmt"
)

// Format identifies a compressor.
type Format int

const (
	Zstd Format = iota
	LZ4
	RLE8Gzip
	ByteDeltaZstd
	formatCount
)

// Formats returns every supported format, in declaration order.
func Formats() []Format {
	formats := make([]Format, 0, int(formatCount))
	for f := Format(0); f < formatCount; f++ {
		formats = append(formats, f)
	}
	return formats
}

// String returns the human-readable name of a format.
func (format Format) String() string {
	switch format {
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case RLE8Gzip:
		return "rle8_gzip"
	case ByteDeltaZstd:
		return "bytedelta_zstd"
	default:
		return fmt.Sprintf("unknown(%d)", int(format))
	}
}

// ParseFormat parses a format from its string representation.
func ParseFormat(name string) (Format, error) {
	for _, format := range Formats() {
		if format.String() == name {
			return format, nil
		}
	}
	return 0, fmt.Errorf("unknown compression format: %q", name)
}

// Levels returns the compression levels a format supports. The list always
// contains the format's default level.
func Levels(format Format) []int {
	switch format {
	case Zstd, ByteDeltaZstd:
		return []int{-1, 3, 9, 15}
	case LZ4:
		return []int{0, 1, 4, 9}
	case RLE8Gzip:
		return []int{gzipDefaultLevel, 1, 9}
	default:
		return []int{0}
	}
}

// DefaultLevel returns the level used when the caller has no preference.
func DefaultLevel(format Format) int {
	switch format {
	case Zstd, ByteDeltaZstd:
		return 3
	case RLE8Gzip:
		return gzipDefaultLevel
	default:
		return 0
	}
}

func isEmpty(itemCount, itemSize int) bool {
	return itemCount <= 0 || itemSize <= 0
}

// Bound returns the largest number of bytes Compress can produce for
// `itemCount` items of `itemSize` bytes. It returns 0 for empty input.
func Bound(itemCount, itemSize int, format Format) int {
	if isEmpty(itemCount, itemSize) {
		return 0
	}
	size := itemCount * itemSize
	switch format {
	case Zstd, ByteDeltaZstd:
		return zstdBound(size)
	case LZ4:
		return lz4Bound(size)
	case RLE8Gzip:
		return gzipBound(rle8Bound(size))
	default:
		return 0
	}
}

// Compress compresses the first `itemCount * itemSize` bytes of `src`. The
// returned slice has a capacity of Bound() and a length equal to the compressed
// size. Empty input returns nil and no error.
func Compress(src []byte, itemCount, itemSize int, format Format, level int) ([]byte, error) {
	if isEmpty(itemCount, itemSize) {
		return nil, nil
	}
	size := itemCount * itemSize
	if len(src) < size {
		return nil, fmt.Errorf(
			"%s: source has %d bytes, need %d (%d x %d)",
			format,
			len(src),
			size,
			itemCount,
			itemSize)
	}
	src = src[:size]
	dst := make([]byte, 0, Bound(itemCount, itemSize, format))

	switch format {
	case Zstd:
		return compressZstd(src, dst, level)
	case LZ4:
		return compressLZ4(src, dst, level)
	case RLE8Gzip:
		return compressRLE8Gzip(src, dst, level)
	case ByteDeltaZstd:
		return compressByteDeltaZstd(src, dst, itemCount, itemSize, level)
	default:
		return nil, fmt.Errorf("unsupported compression format: %d", int(format))
	}
}

// Decompress expands `src` into `dst`, which must hold at least
// `itemCount * itemSize` bytes. It returns the number of bytes written. On
// failure it returns 0 along with the error. Empty input returns 0 and no
// error.
func Decompress(src, dst []byte, itemCount, itemSize int, format Format) (int, error) {
	if len(src) == 0 || isEmpty(itemCount, itemSize) {
		return 0, nil
	}
	size := itemCount * itemSize
	if len(dst) < size {
		return 0, fmt.Errorf(
			"%s: destination has %d bytes, need %d", format, len(dst), size)
	}
	dst = dst[:size]

	var n int
	var err error
	switch format {
	case Zstd:
		n, err = decompressZstd(src, dst)
	case LZ4:
		n, err = decompressLZ4(src, dst)
	case RLE8Gzip:
		n, err = decompressRLE8Gzip(src, dst)
	case ByteDeltaZstd:
		n, err = decompressByteDeltaZstd(src, dst, itemCount, itemSize)
	default:
		err = fmt.Errorf("unsupported compression format: %d", int(format))
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}
