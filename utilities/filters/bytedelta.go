package filters

import (
	"github.com/dargueta/smolcube/utilities/simd"
)

// gatherStrided loads 16 bytes spaced `stride` apart, starting at src[0].
func gatherStrided(src []byte, stride int) simd.Bytes16 {
	v := simd.Zero()
	for lane := 0; lane < simd.Width; lane++ {
		v = v.WithLane(lane, src[lane*stride])
	}
	return v
}

// scatterStrided stores the 16 lanes of `v` to dst[0], dst[stride], ...
func scatterStrided(dst []byte, stride int, v simd.Bytes16) {
	for lane := 0; lane < simd.Width; lane++ {
		dst[lane*stride] = v.Lane(lane)
	}
}

// FilterByteDelta replaces every byte with its difference from the previous
// byte of the same channel, modulo 256. Byte i of channel c is src[c + i*channels];
// the byte before the first one of each channel is taken to be 0. The output
// keeps the interleaved layout of the input.
func FilterByteDelta(src, dst []byte, channels, elemCount int) {
	checkArgs(src, dst, channels, elemCount)
	blocks := elemCount / simd.Width

	for ich := 0; ich < channels; ich++ {
		prev16 := simd.Zero()
		offset := ich

		// SIMD loop, 16 elements at a time
		for ib := 0; ib < blocks; ib++ {
			v := gatherStrided(src[offset:], channels)
			delta := simd.Sub(v, simd.Concat(v, prev16, simd.Width-1))
			scatterStrided(dst[offset:], channels, delta)
			prev16 = v
			offset += simd.Width * channels
		}

		// Trailing elements that don't fill a block
		prev := prev16.Lane(simd.Width - 1)
		for ip := blocks * simd.Width; ip < elemCount; ip++ {
			v := src[offset]
			dst[offset] = v - prev
			prev = v
			offset += channels
		}
	}
}

// UnFilterByteDelta reverses [FilterByteDelta] with a per-channel prefix sum.
func UnFilterByteDelta(src, dst []byte, channels, elemCount int) {
	checkArgs(src, dst, channels, elemCount)
	blocks := elemCount / simd.Width
	hibyte := simd.Set1(simd.Width - 1)

	for ich := 0; ich < channels; ich++ {
		prev16 := simd.Zero()
		offset := ich

		for ib := 0; ib < blocks; ib++ {
			v := gatherStrided(src[offset:], channels)
			prev16 = simd.Add(simd.PrefixSum(v), simd.Shuffle(prev16, hibyte))
			scatterStrided(dst[offset:], channels, prev16)
			offset += simd.Width * channels
		}

		prev := prev16.Lane(simd.Width - 1)
		for ip := blocks * simd.Width; ip < elemCount; ip++ {
			v := src[offset] + prev
			dst[offset] = v
			prev = v
			offset += channels
		}
	}
}

// filterByteDeltaScalar is the reference implementation of FilterByteDelta.
func filterByteDeltaScalar(src, dst []byte, channels, elemCount int) {
	for ich := 0; ich < channels; ich++ {
		prev := byte(0)
		for ip := 0; ip < elemCount; ip++ {
			v := src[ip*channels+ich]
			dst[ip*channels+ich] = v - prev
			prev = v
		}
	}
}
