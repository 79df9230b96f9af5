package filters

import (
	"fmt"
)

// MaxChannels is the largest channel (byte lane) count a filter accepts. It's
// a multiple of the SIMD width so that a block of channels can always be
// transposed in 16x16 tiles.
const MaxChannels = 64

// ID identifies a filter. Only None and ByteDelta can appear in a container.
type ID uint32

const (
	None ID = iota
	ByteDelta
	Split
	SplitDelta
	TransposeDelta
)

// Filter is the interface implemented by all byte filters.
type Filter interface {
	// ID returns the filter identifier.
	ID() ID

	// Name returns a short human-readable name.
	Name() string

	// Encode writes the filtered form of `src` to `dst`.
	Encode(src, dst []byte, channels, elemCount int)

	// Decode reverses Encode, writing the original bytes to `dst`.
	Decode(src, dst []byte, channels, elemCount int)
}

// Registry maps filter IDs to filter implementations.
var Registry = map[ID]Filter{
	None:           noneFilter{},
	ByteDelta:      byteDeltaFilter{},
	Split:          splitFilter{},
	SplitDelta:     splitDeltaFilter{},
	TransposeDelta: transposeDeltaFilter{},
}

// Get returns the filter with the given ID.
func Get(id ID) (Filter, error) {
	filter, ok := Registry[id]
	if !ok {
		return nil, fmt.Errorf("unsupported filter ID: %d", uint32(id))
	}
	return filter, nil
}

func (id ID) String() string {
	filter, ok := Registry[id]
	if !ok {
		return fmt.Sprintf("unknown(%d)", uint32(id))
	}
	return filter.Name()
}

// checkArgs enforces the buffer-size contract shared by all filters.
func checkArgs(src, dst []byte, channels, elemCount int) {
	if channels < 1 || channels > MaxChannels {
		panic(fmt.Sprintf("filter channel count must be in [1, %d], got %d", MaxChannels, channels))
	}
	if elemCount < 0 {
		panic(fmt.Sprintf("negative element count %d", elemCount))
	}
	size := channels * elemCount
	if len(src) != size || len(dst) != size {
		panic(
			fmt.Sprintf(
				"filter buffers must be %d bytes (%d x %d), got src=%d dst=%d",
				size,
				elemCount,
				channels,
				len(src),
				len(dst)))
	}
}

type noneFilter struct{}

func (noneFilter) ID() ID       { return None }
func (noneFilter) Name() string { return "none" }

func (noneFilter) Encode(src, dst []byte, channels, elemCount int) {
	checkArgs(src, dst, channels, elemCount)
	copy(dst, src)
}

func (noneFilter) Decode(src, dst []byte, channels, elemCount int) {
	checkArgs(src, dst, channels, elemCount)
	copy(dst, src)
}

type byteDeltaFilter struct{}

func (byteDeltaFilter) ID() ID       { return ByteDelta }
func (byteDeltaFilter) Name() string { return "bytedelta" }

func (byteDeltaFilter) Encode(src, dst []byte, channels, elemCount int) {
	FilterByteDelta(src, dst, channels, elemCount)
}

func (byteDeltaFilter) Decode(src, dst []byte, channels, elemCount int) {
	UnFilterByteDelta(src, dst, channels, elemCount)
}

type splitFilter struct{}

func (splitFilter) ID() ID       { return Split }
func (splitFilter) Name() string { return "split" }

func (splitFilter) Encode(src, dst []byte, channels, elemCount int) {
	FilterSplit(src, dst, channels, elemCount)
}

func (splitFilter) Decode(src, dst []byte, channels, elemCount int) {
	UnFilterSplit(src, dst, channels, elemCount)
}

type splitDeltaFilter struct{}

func (splitDeltaFilter) ID() ID       { return SplitDelta }
func (splitDeltaFilter) Name() string { return "splitdelta" }

func (splitDeltaFilter) Encode(src, dst []byte, channels, elemCount int) {
	FilterSplitDelta(src, dst, channels, elemCount)
}

func (splitDeltaFilter) Decode(src, dst []byte, channels, elemCount int) {
	UnFilterSplitDelta(src, dst, channels, elemCount)
}

type transposeDeltaFilter struct{}

func (transposeDeltaFilter) ID() ID       { return TransposeDelta }
func (transposeDeltaFilter) Name() string { return "transposedelta" }

func (transposeDeltaFilter) Encode(src, dst []byte, channels, elemCount int) {
	FilterTransposeDelta(src, dst, channels, elemCount)
}

func (transposeDeltaFilter) Decode(src, dst []byte, channels, elemCount int) {
	UnFilterTransposeDelta(src, dst, channels, elemCount)
}
