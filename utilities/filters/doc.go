// Package filters implements reversible byte transforms that make interleaved
// floating-point data more compressible.
//
// All filters view a buffer as `elemCount` elements of `channels` bytes each.
// Neighboring LUT samples are numerically close, so the bytes at the same
// position in consecutive elements (in particular the exponent and high
// mantissa bytes) change slowly. The filters exploit this:
//
//   - [ByteDelta] replaces each byte with its difference from the previous byte
//     in the same channel stream, keeping the interleaved layout.
//   - [Split] de-interleaves the channel streams into contiguous planar runs.
//   - [SplitDelta] splits, then delta-codes each planar run.
//   - [TransposeDelta] produces the same output as SplitDelta in a single fused
//     pass over 16-element blocks.
//
// Arithmetic is unsigned 8-bit with wraparound throughout, so every filter is
// an exact bijection on byte buffers.
//
// Buffers must hold exactly `channels * elemCount` bytes and `channels` must
// be in [1, MaxChannels]. Violating either is a programming error and panics.
package filters
