package simd

import (
	"encoding/binary"
)

// Width is the number of byte lanes in a [Bytes16].
const Width = 16

// Bytes16 is a vector of 16 unsigned byte lanes.
type Bytes16 [Width]byte

const highBits = 0x8080808080808080

func (v Bytes16) halves() (uint64, uint64) {
	return binary.LittleEndian.Uint64(v[0:8]), binary.LittleEndian.Uint64(v[8:16])
}

func fromHalves(lo, hi uint64) Bytes16 {
	var v Bytes16
	binary.LittleEndian.PutUint64(v[0:8], lo)
	binary.LittleEndian.PutUint64(v[8:16], hi)
	return v
}

// addBytes adds the eight bytes of `a` and `b` lane by lane, modulo 256.
func addBytes(a, b uint64) uint64 {
	return ((a &^ highBits) + (b &^ highBits)) ^ ((a ^ b) & highBits)
}

// subBytes subtracts the eight bytes of `b` from `a` lane by lane, modulo 256.
func subBytes(a, b uint64) uint64 {
	return ((a | highBits) - (b &^ highBits)) ^ ((a ^ ^b) & highBits)
}

// Zero returns a vector with all lanes set to 0.
func Zero() Bytes16 {
	return Bytes16{}
}

// Set1 returns a vector with every lane set to `value`.
func Set1(value byte) Bytes16 {
	word := uint64(value) * 0x0101010101010101
	return fromHalves(word, word)
}

// Load reads 16 bytes from the start of `src`. It panics if `src` is shorter
// than 16 bytes.
func Load(src []byte) Bytes16 {
	var v Bytes16
	copy(v[:], src[:Width])
	return v
}

// Store writes the vector to the first 16 bytes of `dst`.
func (v Bytes16) Store(dst []byte) {
	copy(dst[:Width], v[:])
}

// Lane returns the value of lane `index`.
func (v Bytes16) Lane(index int) byte {
	return v[index]
}

// WithLane returns a copy of the vector with lane `index` set to `value`.
func (v Bytes16) WithLane(index int, value byte) Bytes16 {
	v[index] = value
	return v
}

// Add returns a + b for each lane, modulo 256.
func Add(a, b Bytes16) Bytes16 {
	aLo, aHi := a.halves()
	bLo, bHi := b.halves()
	return fromHalves(addBytes(aLo, bLo), addBytes(aHi, bHi))
}

// Sub returns a - b for each lane, modulo 256.
func Sub(a, b Bytes16) Bytes16 {
	aLo, aHi := a.halves()
	bLo, bHi := b.halves()
	return fromHalves(subBytes(aLo, bLo), subBytes(aHi, bHi))
}

// Concat treats `lo` followed by `hi` as a 32-byte sequence and returns the 16
// bytes starting at `index`. With index 15, lane 0 of the result is the last
// lane of `lo` and the remaining lanes are lanes 0-14 of `hi`.
func Concat(hi, lo Bytes16, index int) Bytes16 {
	var v Bytes16
	for i := range v {
		j := i + index
		if j < Width {
			v[i] = lo[j]
		} else {
			v[i] = hi[j-Width]
		}
	}
	return v
}

// Shuffle returns a vector where lane i is x[table[i] & 15], or 0 if the high
// bit of table[i] is set.
func Shuffle(x, table Bytes16) Bytes16 {
	var v Bytes16
	for i, t := range table {
		if t&0x80 == 0 {
			v[i] = x[t&0x0f]
		}
	}
	return v
}

// Broadcast returns a vector with every lane set to lane `index` of `x`.
func Broadcast(x Bytes16, index int) Bytes16 {
	return Set1(x[index])
}

// PrefixSum returns the running sum of the lanes, modulo 256: lane i of the
// result is x[0] + x[1] + ... + x[i].
func PrefixSum(x Bytes16) Bytes16 {
	lo, hi := x.halves()
	lo = addBytes(lo, lo<<8)
	lo = addBytes(lo, lo<<16)
	lo = addBytes(lo, lo<<32)
	hi = addBytes(hi, hi<<8)
	hi = addBytes(hi, hi<<16)
	hi = addBytes(hi, hi<<32)
	hi = addBytes(hi, (lo>>56)*0x0101010101010101)
	return fromHalves(lo, hi)
}

// InterleaveLow interleaves the lower eight lanes of `a` and `b`:
// a0 b0 a1 b1 ... a7 b7.
func InterleaveLow(a, b Bytes16) Bytes16 {
	var v Bytes16
	for i := 0; i < Width/2; i++ {
		v[2*i] = a[i]
		v[2*i+1] = b[i]
	}
	return v
}

// InterleaveHigh interleaves the upper eight lanes of `a` and `b`:
// a8 b8 a9 b9 ... a15 b15.
func InterleaveHigh(a, b Bytes16) Bytes16 {
	var v Bytes16
	for i := 0; i < Width/2; i++ {
		v[2*i] = a[Width/2+i]
		v[2*i+1] = b[Width/2+i]
	}
	return v
}

// Transpose16 transposes a 16x16 byte matrix in place: afterwards lane j of
// row i holds what was lane i of row j.
//
// Each of the four rounds interleaves row i with row i+8, which rotates the
// 8-bit (row, column) index left by one bit. Four rounds swap row and column.
func Transpose16(rows *[Width]Bytes16) {
	var tmp [Width]Bytes16
	for round := 0; round < 4; round++ {
		for i := 0; i < Width/2; i++ {
			tmp[2*i] = InterleaveLow(rows[i], rows[i+Width/2])
			tmp[2*i+1] = InterleaveHigh(rows[i], rows[i+Width/2])
		}
		*rows = tmp
	}
}
