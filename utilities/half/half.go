// Package half converts between IEEE-754 binary32 and binary16 floats.
//
// Conversions never allocate. Batch conversions process blocks whose width
// depends on the vector capabilities of the host and are bit-identical to
// converting each element with the scalar functions.
package half

import (
	"math"
)

const (
	f32Infinity = uint32(255) << 23
	// Smallest float32 magnitude that overflows binary16 before rounding.
	f16Overflow = uint32(127+16) << 23
	// Magnitudes below this become binary16 subnormals.
	f16MinNormal = uint32(127-14) << 23
	// 0.5: adding it aligns the 10 subnormal mantissa bits at the bottom of
	// the float32 mantissa, letting the FPU do the rounding.
	denormMagic = uint32((127-15)+(23-10)+1) << 23

	quietBit = 0x0200
)

// FromFloat32 converts `f` to binary16 bits, rounding to nearest with ties to
// even. Magnitudes too large for binary16 become infinity. NaNs stay NaN: the
// top 10 bits of the payload are kept and the quiet bit is forced on.
func FromFloat32(f float32) uint16 {
	u := math.Float32bits(f)
	sign := u & 0x80000000
	u ^= sign

	var o uint16
	switch {
	case u >= f16Overflow:
		if u > f32Infinity {
			o = 0x7c00 | quietBit | uint16((u>>13)&0x03ff)
		} else {
			o = 0x7c00
		}
	case u < f16MinNormal:
		// Subnormal or zero. The float32 addition rounds to nearest even.
		sum := float32(math.Float32frombits(u) + math.Float32frombits(denormMagic))
		o = uint16(math.Float32bits(sum) - denormMagic)
	default:
		mantissaOdd := (u >> 13) & 1
		// Re-bias the exponent, then round: 0xfff plus the odd bit gives ties
		// to even when the carry propagates.
		u -= uint32(127-15) << 23
		u += 0xfff + mantissaOdd
		o = uint16(u >> 13)
	}
	return o | uint16(sign>>16)
}

// ToFloat32 converts binary16 bits to the float32 of exactly the same value.
func ToFloat32(h uint16) float32 {
	const shiftedExponent = uint32(0x7c00) << 13
	magic := math.Float32frombits(uint32(113) << 23)

	o := uint32(h&0x7fff) << 13
	exponent := o & shiftedExponent
	o += uint32(127-15) << 23

	switch exponent {
	case shiftedExponent:
		// Infinity or NaN
		o += uint32(128-16) << 23
	case 0:
		// Zero or subnormal: renormalize by subtracting the implicit bit
		o += 1 << 23
		o = math.Float32bits(float32(math.Float32frombits(o) - magic))
	}
	o |= uint32(h&0x8000) << 16
	return math.Float32frombits(o)
}
