package filters

// FilterSplit de-interleaves the channels of `src` into contiguous runs: byte i
// of channel c goes to dst[c*elemCount + i].
func FilterSplit(src, dst []byte, channels, elemCount int) {
	checkArgs(src, dst, channels, elemCount)
	for ich := 0; ich < channels; ich++ {
		run := dst[ich*elemCount : (ich+1)*elemCount]
		for ip := range run {
			run[ip] = src[ip*channels+ich]
		}
	}
}

// UnFilterSplit re-interleaves the planar runs produced by [FilterSplit].
func UnFilterSplit(src, dst []byte, channels, elemCount int) {
	checkArgs(src, dst, channels, elemCount)
	for ich := 0; ich < channels; ich++ {
		run := src[ich*elemCount : (ich+1)*elemCount]
		for ip, v := range run {
			dst[ip*channels+ich] = v
		}
	}
}

// deltaEncode replaces each byte of `data` with its difference from the byte
// before it, modulo 256. The byte before the first is taken to be 0.
func deltaEncode(data []byte) {
	prev := byte(0)
	for i, v := range data {
		data[i] = v - prev
		prev = v
	}
}

// deltaDecode reverses deltaEncode with a running sum.
func deltaDecode(data []byte) {
	prev := byte(0)
	for i, v := range data {
		prev += v
		data[i] = prev
	}
}

// FilterSplitDelta splits the channels like [FilterSplit], then delta-codes
// each planar run.
func FilterSplitDelta(src, dst []byte, channels, elemCount int) {
	FilterSplit(src, dst, channels, elemCount)
	for ich := 0; ich < channels; ich++ {
		deltaEncode(dst[ich*elemCount : (ich+1)*elemCount])
	}
}

// UnFilterSplitDelta reverses [FilterSplitDelta]: it undoes the delta coding
// in a working buffer first, then re-interleaves.
func UnFilterSplitDelta(src, dst []byte, channels, elemCount int) {
	checkArgs(src, dst, channels, elemCount)
	planar := make([]byte, len(src))
	copy(planar, src)
	for ich := 0; ich < channels; ich++ {
		deltaDecode(planar[ich*elemCount : (ich+1)*elemCount])
	}
	UnFilterSplit(planar, dst, channels, elemCount)
}
