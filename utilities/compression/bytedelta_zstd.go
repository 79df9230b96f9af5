package compression

import (
	"fmt"

	"github.com/dargueta/smolcube/utilities/filters"
)

func checkByteDeltaLanes(itemSize int) error {
	if itemSize > filters.MaxChannels {
		return fmt.Errorf(
			"bytedelta_zstd: item size %d exceeds the filter limit of %d",
			itemSize,
			filters.MaxChannels)
	}
	return nil
}

func compressByteDeltaZstd(src, dst []byte, itemCount, itemSize, level int) ([]byte, error) {
	if err := checkByteDeltaLanes(itemSize); err != nil {
		return nil, err
	}
	filtered := make([]byte, len(src))
	filters.FilterByteDelta(src, filtered, itemSize, itemCount)
	return compressZstd(filtered, dst, level)
}

func decompressByteDeltaZstd(src, dst []byte, itemCount, itemSize int) (int, error) {
	if err := checkByteDeltaLanes(itemSize); err != nil {
		return 0, err
	}

	frameSize, err := zstdFrameSize(src)
	if err != nil {
		return 0, fmt.Errorf("bytedelta_zstd decompress: %w", err)
	}
	if frameSize < 0 {
		frameSize = len(dst)
	}
	if frameSize != len(dst) {
		return 0, fmt.Errorf(
			"bytedelta_zstd decompress: frame holds %d bytes, expected %d",
			frameSize,
			len(dst))
	}

	filtered := make([]byte, frameSize)
	if _, err := decompressZstd(src, filtered); err != nil {
		return 0, err
	}
	filters.UnFilterByteDelta(filtered, dst, itemSize, itemCount)
	return len(dst), nil
}
