// Package simd provides a small 16-byte lane abstraction used by the byte
// filters, plus detection of the vector instruction sets available on the host.
//
// Go has no portable vector intrinsics, so [Bytes16] implements the lane
// operations with SWAR ("SIMD within a register") arithmetic on two uint64
// halves. Filters are written once against these operations: zero, set1,
// load, store, add, sub, concat, shuffle, prefix sum, get lane, set lane, and
// interleave. Every operation treats lanes as unsigned 8-bit values with
// wraparound; there's no saturation.
//
// Lane 0 is the lowest-addressed byte, matching the memory order of a
// little-endian 128-bit load.
package simd
