package testing

import (
	"crypto/rand"
	"testing"

	"github.com/dargueta/smolcube"
	"github.com/stretchr/testify/require"
)

// CreateRandomLUT creates a LUT of the given shape filled with random bytes.
// Every axis covered by `dimension` has `size` entries. It is guaranteed to
// either return a valid LUT or fail the test and abort.
func CreateRandomLUT(
	t *testing.T, channels, dimension int, dataType smolcube.DataType, size int,
) smolcube.LUT {
	lut := smolcube.NewLUT(channels, dimension, dataType, size, size, size)
	require.NoError(t, lut.Validate(), "invalid LUT shape")

	_, err := rand.Read(lut.Data)
	require.NoErrorf(t, err, "failed to fill %s LUT with random bytes", lut.ShapeString())
	return lut
}

// RampValues returns `count` float32 values of a smooth, slightly offset
// gradient in [0, 1), which is the kind of data real LUTs hold.
func RampValues(count int) []float32 {
	values := make([]float32, count)
	for i := range values {
		values[i] = float32(i%251)/251.0 + float32(i)/float32(count*7)
	}
	return values
}

// CreateRampLUT creates a Float32 LUT of the given shape filled with
// [RampValues].
func CreateRampLUT(t *testing.T, channels, dimension, size int) smolcube.LUT {
	probe := smolcube.NewLUT(channels, dimension, smolcube.Float32, size, size, size)
	values := RampValues(probe.ItemCount() * channels)

	lut, err := smolcube.NewFloat32LUT(channels, dimension, size, size, size, values)
	require.NoError(t, err, "failed to create ramp LUT")
	return lut
}

// CreateIdentityCube creates a 3-channel Float32 3D LUT mapping every color to
// itself, with red varying fastest.
func CreateIdentityCube(t *testing.T, size int) smolcube.LUT {
	require.Greater(t, size, 1, "identity cube needs at least two entries per axis")

	values := make([]float32, 0, size*size*size*3)
	scale := float32(size - 1)
	for b := 0; b < size; b++ {
		for g := 0; g < size; g++ {
			for r := 0; r < size; r++ {
				values = append(values, float32(r)/scale, float32(g)/scale, float32(b)/scale)
			}
		}
	}

	lut, err := smolcube.NewFloat32LUT(3, 3, size, size, size, values)
	require.NoError(t, err, "failed to create identity cube")
	return lut
}

// CreateCollection wraps the given LUTs in a collection, failing the test if
// any of them is invalid.
func CreateCollection(t *testing.T, title, comment string, luts ...smolcube.LUT) *smolcube.Collection {
	coll := smolcube.NewCollection(title, comment)
	for i, lut := range luts {
		require.NoErrorf(t, coll.Append(lut), "failed to append LUT %d", i)
	}
	return coll
}
