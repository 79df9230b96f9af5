package filters_test

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"testing"

	f "github.com/dargueta/smolcube/utilities/filters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allFilters = []f.ID{f.None, f.ByteDelta, f.Split, f.SplitDelta, f.TransposeDelta}

var elementCounts = []int{0, 1, 3, 15, 16, 17, 31, 32, 33, 100, 257}

var channelCounts = []int{1, 2, 3, 4, 5, 8, 12, 15, 16, 17, 32, 33, 48, f.MaxChannels}

func randomBytes(t *testing.T, size int) []byte {
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoErrorf(t, err, "failed to generate %d random bytes", size)
	return data
}

func TestRoundTrip__AllFilters(t *testing.T) {
	for _, id := range allFilters {
		filter, err := f.Get(id)
		require.NoError(t, err)

		t.Run(
			filter.Name(),
			func(t *testing.T) {
				for _, channels := range channelCounts {
					for _, elemCount := range elementCounts {
						original := randomBytes(t, channels*elemCount)
						encoded := make([]byte, len(original))
						decoded := make([]byte, len(original))

						filter.Encode(original, encoded, channels, elemCount)
						filter.Decode(encoded, decoded, channels, elemCount)
						require.Equalf(
							t,
							original,
							decoded,
							"round trip failed for %d elements of %d channels",
							elemCount,
							channels)
					}
				}
			},
		)
	}
}

func TestByteDelta__KnownOutput(t *testing.T) {
	// Two channels: [10 200] [13 190] [13 0]
	src := []byte{10, 200, 13, 190, 13, 0}
	expected := []byte{10, 200, 3, 246, 0, 66}

	dst := make([]byte, len(src))
	f.FilterByteDelta(src, dst, 2, 3)
	assert.Equal(t, expected, dst, "filtered data is wrong")

	restored := make([]byte, len(src))
	f.UnFilterByteDelta(dst, restored, 2, 3)
	assert.Equal(t, src, restored, "un-filtered data is wrong")
}

func TestByteDelta__KeepsInterleavedLayout(t *testing.T) {
	// A constant stream per channel becomes the channel value followed by zeros
	// in every channel, still interleaved.
	channels := 3
	elemCount := 40
	src := bytes.Repeat([]byte{7, 8, 9}, elemCount)

	dst := make([]byte, len(src))
	f.FilterByteDelta(src, dst, channels, elemCount)

	assert.Equal(t, []byte{7, 8, 9}, dst[:3])
	assert.Equal(t, make([]byte, len(src)-3), dst[3:])
}

func TestSplit__KnownOutput(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	dst := make([]byte, len(src))
	f.FilterSplit(src, dst, 3, 3)
	assert.Equal(t, []byte{1, 4, 7, 2, 5, 8, 3, 6, 9}, dst)
}

func TestSplitDelta__KnownOutput(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8, 0}
	dst := make([]byte, len(src))
	f.FilterSplitDelta(src, dst, 3, 3)
	assert.Equal(t, []byte{1, 3, 3, 2, 3, 3, 3, 3, 250}, dst)
}

func TestTransposeDelta__MatchesSplitDelta(t *testing.T) {
	for _, channels := range channelCounts {
		for _, elemCount := range elementCounts {
			t.Run(
				fmt.Sprintf("%dx%d", elemCount, channels),
				func(t *testing.T) {
					src := randomBytes(t, channels*elemCount)
					fused := make([]byte, len(src))
					twoPass := make([]byte, len(src))

					f.FilterTransposeDelta(src, fused, channels, elemCount)
					f.FilterSplitDelta(src, twoPass, channels, elemCount)
					assert.Equal(t, twoPass, fused, "fused and two-pass output differ")
				},
			)
		}
	}
}

func TestFilters__DoNotModifySource(t *testing.T) {
	src := randomBytes(t, 12*37)
	original := bytes.Clone(src)

	for _, id := range allFilters {
		filter, err := f.Get(id)
		require.NoError(t, err)

		dst := make([]byte, len(src))
		filter.Encode(src, dst, 12, 37)
		assert.Equalf(t, original, src, "%s modified its input", filter.Name())
	}
}

func TestFilters__InvalidArgumentsPanic(t *testing.T) {
	buffer := make([]byte, 16)
	assert.Panics(t, func() { f.FilterByteDelta(buffer, buffer, 0, 16) }, "zero channels")
	assert.Panics(
		t,
		func() {
			big := make([]byte, (f.MaxChannels+1)*2)
			f.FilterTransposeDelta(big, big, f.MaxChannels+1, 2)
		},
		"too many channels",
	)
	assert.Panics(
		t, func() { f.FilterSplit(buffer, make([]byte, 8), 2, 8) }, "short destination")
}

func TestGet__UnknownID(t *testing.T) {
	_, err := f.Get(f.ID(99))
	assert.Error(t, err)
	assert.Equal(t, "unknown(99)", f.ID(99).String())
	assert.Equal(t, "bytedelta", f.ByteDelta.String())
}
