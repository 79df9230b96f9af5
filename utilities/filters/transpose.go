package filters

import (
	"github.com/dargueta/smolcube/utilities/simd"
)

// loadTile reads a block of 16 elements, columns [col, col+width) of each, into
// `tile`. Unused columns are zeroed. When `full` is set the caller guarantees
// width == 16 and rows are loaded directly.
func loadTile(tile *[simd.Width]simd.Bytes16, src []byte, stride, col, width int, full bool) {
	for row := 0; row < simd.Width; row++ {
		start := row*stride + col
		if full {
			tile[row] = simd.Load(src[start:])
			continue
		}
		tile[row] = simd.Zero()
		copy(tile[row][:width], src[start:start+width])
	}
}

// storeTile is the inverse of loadTile.
func storeTile(tile *[simd.Width]simd.Bytes16, dst []byte, stride, col, width int, full bool) {
	for row := 0; row < simd.Width; row++ {
		start := row*stride + col
		if full {
			tile[row].Store(dst[start:])
			continue
		}
		copy(dst[start:start+width], tile[row][:width])
	}
}

// FilterTransposeDelta produces the same output as [FilterSplitDelta] in a
// single pass. It works on blocks of 16 elements: each block is transposed in
// 16x16 tiles so that every channel's 16 bytes end up in one vector, which is
// then delta-coded against the last byte of the channel's previous block and
// stored at dst[channel*elemCount + block*16]. Elements past the last full
// block are handled one at a time.
func FilterTransposeDelta(src, dst []byte, channels, elemCount int) {
	checkArgs(src, dst, channels, elemCount)
	blocks := elemCount / simd.Width
	full := channels%simd.Width == 0

	var prev [MaxChannels]simd.Bytes16
	var tile [simd.Width]simd.Bytes16

	for ib := 0; ib < blocks; ib++ {
		block := src[ib*simd.Width*channels:]
		for col := 0; col < channels; col += simd.Width {
			width := channels - col
			if width > simd.Width {
				width = simd.Width
			}

			loadTile(&tile, block, channels, col, width, full)
			simd.Transpose16(&tile)

			for j := 0; j < width; j++ {
				ich := col + j
				v := tile[j]
				delta := simd.Sub(v, simd.Concat(v, prev[ich], simd.Width-1))
				prev[ich] = v
				delta.Store(dst[ich*elemCount+ib*simd.Width:])
			}
		}
	}

	for ich := 0; ich < channels; ich++ {
		p := prev[ich].Lane(simd.Width - 1)
		for ip := blocks * simd.Width; ip < elemCount; ip++ {
			v := src[ip*channels+ich]
			dst[ich*elemCount+ip] = v - p
			p = v
		}
	}
}

// UnFilterTransposeDelta reverses [FilterTransposeDelta]: for each block it
// rebuilds every channel's 16 bytes with a prefix sum, then transposes the
// channels back into interleaved elements.
func UnFilterTransposeDelta(src, dst []byte, channels, elemCount int) {
	checkArgs(src, dst, channels, elemCount)
	blocks := elemCount / simd.Width
	full := channels%simd.Width == 0
	hibyte := simd.Set1(simd.Width - 1)

	var prev [MaxChannels]simd.Bytes16
	var tile [simd.Width]simd.Bytes16

	for ib := 0; ib < blocks; ib++ {
		block := dst[ib*simd.Width*channels:]
		for col := 0; col < channels; col += simd.Width {
			width := channels - col
			if width > simd.Width {
				width = simd.Width
			}

			for j := 0; j < simd.Width; j++ {
				if j >= width {
					tile[j] = simd.Zero()
					continue
				}
				ich := col + j
				v := simd.Load(src[ich*elemCount+ib*simd.Width:])
				prev[ich] = simd.Add(simd.PrefixSum(v), simd.Shuffle(prev[ich], hibyte))
				tile[j] = prev[ich]
			}

			simd.Transpose16(&tile)
			storeTile(&tile, block, channels, col, width, full)
		}
	}

	for ich := 0; ich < channels; ich++ {
		p := prev[ich].Lane(simd.Width - 1)
		for ip := blocks * simd.Width; ip < elemCount; ip++ {
			v := src[ich*elemCount+ip] + p
			dst[ip*channels+ich] = v
			p = v
		}
	}
}
