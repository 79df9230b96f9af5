package testing

import (
	"bytes"
	"io"
	"testing"

	"github.com/dargueta/smolcube"
	"github.com/dargueta/smolcube/container"
	"github.com/dargueta/smolcube/utilities/compression"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// EncodeToStream serializes a collection and returns a seekable in-memory
// stream over the result. The stream's size is fixed to the encoded size.
func EncodeToStream(
	t *testing.T, coll *smolcube.Collection, flags smolcube.SaveFlags,
) io.ReadWriteSeeker {
	data, err := container.Encode(coll, flags)
	require.NoError(t, err, "failed to encode collection")
	return bytesextra.NewReadWriteSeeker(data)
}

// CompressFixture compresses `data` with RLE8 and gzip, the way fixtures are
// stored.
func CompressFixture(t *testing.T, data []byte) []byte {
	var output bytes.Buffer
	_, err := compression.CompressImage(bytes.NewReader(data), &output, 9)
	require.NoError(t, err, "failed to compress fixture")
	return output.Bytes()
}

// LoadFixture takes a compressed fixture and returns a stream to access the
// uncompressed data.
//
//   - Writes to the stream do not affect `compressedBytes`.
//   - While the stream can be written to, its size is fixed to `expectedSize`.
//     Attempting to write past the end of this buffer will trigger an error.
func LoadFixture(t *testing.T, compressedBytes []byte, expectedSize int) io.ReadWriteSeeker {
	require.Greater(t, len(compressedBytes), 0, "compressed fixture is empty")

	data, err := compression.DecompressImageToBytes(bytes.NewReader(compressedBytes))
	require.NoError(t, err)
	require.Equal(t, expectedSize, len(data), "uncompressed fixture is wrong size")
	return bytesextra.NewReadWriteSeeker(data)
}
