package smolcube

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dargueta/smolcube/utilities/half"
)

// ConvertData returns a copy of `lut` with its samples stored as `dstType` and
// `dstChannels` channels. For each sample, the first min(src, dst) channels are
// converted, any extra destination channels are set to zero, and any extra
// source channels are dropped. The source LUT is not modified.
func ConvertData(lut LUT, dstType DataType, dstChannels int) (LUT, error) {
	if err := lut.Validate(); err != nil {
		return LUT{}, err
	}
	if lut.Data == nil {
		return LUT{}, ErrInvalidArgument.WithMessage("LUT has no data to convert")
	}
	if !dstType.Valid() {
		return LUT{}, ErrInvalidArgument.WithMessage(
			fmt.Sprintf("unknown destination data type %d", uint32(dstType)))
	}
	if dstChannels < 1 || dstChannels > MaxChannels {
		return LUT{}, ErrInvalidArgument.WithMessage(
			fmt.Sprintf(
				"destination channels must be in [1, %d], got %d", MaxChannels, dstChannels))
	}

	result := NewLUT(dstChannels, lut.Dimension, dstType, lut.SizeX, lut.SizeY, lut.SizeZ)
	srcTypeSize := lut.Type.Size()
	dstTypeSize := dstType.Size()
	srcItemSize := lut.ItemSize()
	dstItemSize := result.ItemSize()
	copied := min(lut.Channels, dstChannels)

	for i := 0; i < lut.ItemCount(); i++ {
		src := lut.Data[i*srcItemSize : i*srcItemSize+copied*srcTypeSize]
		dst := result.Data[i*dstItemSize : i*dstItemSize+copied*dstTypeSize]
		convertComponents(dst, src, lut.Type, dstType)
		// Extra destination channels are already zero from NewLUT.
	}
	return result, nil
}

// convertComponents converts the little-endian scalars in `src` from type
// `from` to type `to`, writing them to `dst`.
func convertComponents(dst, src []byte, from, to DataType) {
	switch {
	case from == to:
		copy(dst, src)
	case from == Float32 && to == Float16:
		half.EncodeBytes(dst, src)
	case from == Float16 && to == Float32:
		half.DecodeBytes(dst, src)
	}
}

// Float32At returns component `channel` of sample `index` as a float32,
// widening Float16 data.
func (lut LUT) Float32At(index, channel int) float32 {
	offset := (index*lut.Channels + channel) * lut.Type.Size()
	if lut.Type == Float16 {
		return half.ToFloat32(binary.LittleEndian.Uint16(lut.Data[offset:]))
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(lut.Data[offset:]))
}
