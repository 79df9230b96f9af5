package compression

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Encoders are cached per level. zstd.Encoder and zstd.Decoder are safe for
// concurrent use through EncodeAll and DecodeAll.
var (
	zstdEncodersLock sync.Mutex
	zstdEncoders     = map[zstd.EncoderLevel]*zstd.Encoder{}

	zstdDecoderOnce sync.Once
	zstdDecoder     *zstd.Decoder
	zstdDecoderErr  error
)

// zstdBound mirrors ZSTD_compressBound from the reference library.
func zstdBound(size int) int {
	const smallSize = 128 << 10
	bound := size + size>>8
	if size < smallSize {
		bound += (smallSize - size) >> 11
	}
	return bound
}

func zstdEncoderFor(level int) (*zstd.Encoder, error) {
	encoderLevel := zstd.EncoderLevelFromZstd(level)

	zstdEncodersLock.Lock()
	defer zstdEncodersLock.Unlock()

	if encoder, ok := zstdEncoders[encoderLevel]; ok {
		return encoder, nil
	}
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(encoderLevel))
	if err != nil {
		return nil, err
	}
	zstdEncoders[encoderLevel] = encoder
	return encoder, nil
}

func sharedZstdDecoder() (*zstd.Decoder, error) {
	zstdDecoderOnce.Do(func() {
		zstdDecoder, zstdDecoderErr = zstd.NewReader(nil)
	})
	return zstdDecoder, zstdDecoderErr
}

func compressZstd(src, dst []byte, level int) ([]byte, error) {
	encoder, err := zstdEncoderFor(level)
	if err != nil {
		return nil, fmt.Errorf("zstd compress: %w", err)
	}
	return encoder.EncodeAll(src, dst), nil
}

// zstdFrameSize returns the decompressed size recorded in the first frame of
// `src`, or -1 if the frame doesn't record it.
func zstdFrameSize(src []byte) (int, error) {
	var header zstd.Header
	if err := header.Decode(src); err != nil {
		return 0, err
	}
	if !header.HasFCS {
		return -1, nil
	}
	return int(header.FrameContentSize), nil
}

func decompressZstd(src, dst []byte) (int, error) {
	frameSize, err := zstdFrameSize(src)
	if err != nil {
		return 0, fmt.Errorf("zstd decompress: %w", err)
	}
	if frameSize > len(dst) {
		return 0, fmt.Errorf(
			"zstd decompress: frame holds %d bytes, destination has room for %d",
			frameSize,
			len(dst))
	}

	decoder, err := sharedZstdDecoder()
	if err != nil {
		return 0, fmt.Errorf("zstd decompress: %w", err)
	}
	output, err := decoder.DecodeAll(src, dst[:0:len(dst)])
	if err != nil {
		return 0, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(output) != len(dst) {
		return 0, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(output), len(dst))
	}
	// No-op unless DecodeAll had to reallocate.
	copy(dst, output)
	return len(output), nil
}
