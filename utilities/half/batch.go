package half

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dargueta/smolcube/utilities/simd"
)

var blockWidth = simd.Host().HalfBlockWidth()

// BlockWidth returns the number of elements converted per block by the batch
// functions on this host.
func BlockWidth() int {
	return blockWidth
}

func checkLengths(dstLen, srcLen int) {
	if dstLen < srcLen {
		panic(fmt.Sprintf("destination holds %d elements, need %d", dstLen, srcLen))
	}
}

// FromFloat32s converts every element of `src` into `dst`, which must be at
// least as long as `src`.
func FromFloat32s(dst []uint16, src []float32) {
	checkLengths(len(dst), len(src))
	i := 0
	if blockWidth == 8 {
		for ; i+8 <= len(src); i += 8 {
			s := src[i : i+8 : i+8]
			d := dst[i : i+8 : i+8]
			d[0] = FromFloat32(s[0])
			d[1] = FromFloat32(s[1])
			d[2] = FromFloat32(s[2])
			d[3] = FromFloat32(s[3])
			d[4] = FromFloat32(s[4])
			d[5] = FromFloat32(s[5])
			d[6] = FromFloat32(s[6])
			d[7] = FromFloat32(s[7])
		}
	}
	for ; i+4 <= len(src); i += 4 {
		s := src[i : i+4 : i+4]
		d := dst[i : i+4 : i+4]
		d[0] = FromFloat32(s[0])
		d[1] = FromFloat32(s[1])
		d[2] = FromFloat32(s[2])
		d[3] = FromFloat32(s[3])
	}
	for ; i < len(src); i++ {
		dst[i] = FromFloat32(src[i])
	}
}

// ToFloat32s converts every element of `src` into `dst`, which must be at least
// as long as `src`.
func ToFloat32s(dst []float32, src []uint16) {
	checkLengths(len(dst), len(src))
	i := 0
	if blockWidth == 8 {
		for ; i+8 <= len(src); i += 8 {
			s := src[i : i+8 : i+8]
			d := dst[i : i+8 : i+8]
			d[0] = ToFloat32(s[0])
			d[1] = ToFloat32(s[1])
			d[2] = ToFloat32(s[2])
			d[3] = ToFloat32(s[3])
			d[4] = ToFloat32(s[4])
			d[5] = ToFloat32(s[5])
			d[6] = ToFloat32(s[6])
			d[7] = ToFloat32(s[7])
		}
	}
	for ; i+4 <= len(src); i += 4 {
		s := src[i : i+4 : i+4]
		d := dst[i : i+4 : i+4]
		d[0] = ToFloat32(s[0])
		d[1] = ToFloat32(s[1])
		d[2] = ToFloat32(s[2])
		d[3] = ToFloat32(s[3])
	}
	for ; i < len(src); i++ {
		dst[i] = ToFloat32(src[i])
	}
}

// EncodeBytes converts little-endian float32 values in `src` to little-endian
// binary16 values in `dst`. `dst` must hold at least len(src)/2 bytes.
func EncodeBytes(dst, src []byte) {
	count := len(src) / 4
	checkLengths(len(dst)/2, count)
	for i := 0; i < count; i++ {
		f := math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
		binary.LittleEndian.PutUint16(dst[i*2:], FromFloat32(f))
	}
}

// DecodeBytes converts little-endian binary16 values in `src` to little-endian
// float32 values in `dst`. `dst` must hold at least 2*len(src) bytes.
func DecodeBytes(dst, src []byte) {
	count := len(src) / 2
	checkLengths(len(dst)/4, count)
	for i := 0; i < count; i++ {
		f := ToFloat32(binary.LittleEndian.Uint16(src[i*2:]))
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
	}
}
