package smolcube

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// DataType is the encoding of a single scalar component of a LUT.
type DataType uint32

const (
	Float32 DataType = iota
	Float16
	dataTypeCount
)

// MaxChannels is the largest number of color channels a LUT may have.
const MaxChannels = 4

// MaxDimension is the largest number of axes a LUT may have.
const MaxDimension = 3

// MaxAxisSize is the largest extent allowed along any single axis.
const MaxAxisSize = 65536

// Size returns the number of bytes a single component of this type occupies.
// It panics for unknown types.
func (t DataType) Size() int {
	switch t {
	case Float32:
		return 4
	case Float16:
		return 2
	default:
		panic(fmt.Sprintf("unknown data type %d", uint32(t)))
	}
}

func (t DataType) Valid() bool {
	return t < dataTypeCount
}

func (t DataType) String() string {
	switch t {
	case Float32:
		return "float32"
	case Float16:
		return "float16"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(t))
	}
}

// LUT is a typed, dimensioned array of color samples. Data holds the samples
// as little-endian scalars, interleaved by channel, with X varying fastest and
// Z slowest. Axes beyond Dimension have a size of 1.
//
// A LUT never changes its shape after it's created. Replacing its contents
// means replacing Data as a whole.
type LUT struct {
	Channels  int
	Dimension int
	Type      DataType
	SizeX     int
	SizeY     int
	SizeZ     int
	Data      []byte
}

// NewLUT creates a LUT of the given shape with a zeroed, newly allocated
// buffer. Sizes of axes beyond `dimension` are forced to 1.
func NewLUT(channels, dimension int, dataType DataType, sizeX, sizeY, sizeZ int) LUT {
	lut := LUT{
		Channels:  channels,
		Dimension: dimension,
		Type:      dataType,
		SizeX:     sizeX,
		SizeY:     1,
		SizeZ:     1,
	}
	if dimension >= 2 {
		lut.SizeY = sizeY
	}
	if dimension >= 3 {
		lut.SizeZ = sizeZ
	}
	lut.Data = make([]byte, lut.DataSize())
	return lut
}

// NewFloat32LUT creates a Float32 LUT and fills it from `values`, which must
// contain exactly ItemCount() * channels elements.
func NewFloat32LUT(
	channels, dimension, sizeX, sizeY, sizeZ int, values []float32,
) (LUT, error) {
	lut := NewLUT(channels, dimension, Float32, sizeX, sizeY, sizeZ)
	if err := lut.Validate(); err != nil {
		return LUT{}, err
	}
	if len(values) != lut.ItemCount()*channels {
		return LUT{}, ErrInvalidArgument.WithMessage(
			fmt.Sprintf(
				"expected %d values for a %s LUT, got %d",
				lut.ItemCount()*channels,
				lut.ShapeString(),
				len(values)))
	}
	for i, value := range values {
		binary.LittleEndian.PutUint32(lut.Data[i*4:], math.Float32bits(value))
	}
	return lut, nil
}

// ItemSize gives the number of bytes in one sample (all channels).
func (lut LUT) ItemSize() int {
	return lut.Channels * lut.Type.Size()
}

// ItemCount gives the number of samples in the LUT. Only the axes covered by
// the LUT's dimension contribute.
func (lut LUT) ItemCount() int {
	count := 1
	if lut.Dimension >= 1 {
		count *= lut.SizeX
	}
	if lut.Dimension >= 2 {
		count *= lut.SizeY
	}
	if lut.Dimension >= 3 {
		count *= lut.SizeZ
	}
	return count
}

// DataSize gives the number of bytes Data must hold for this shape.
func (lut LUT) DataSize() int {
	return lut.ItemCount() * lut.ItemSize()
}

// Validate checks the LUT's shape against the limits of the container format
// and verifies that Data has the expected length.
func (lut LUT) Validate() error {
	if lut.Channels < 1 || lut.Channels > MaxChannels {
		return ErrInvalidArgument.WithMessage(
			fmt.Sprintf("channels must be in [1, %d], got %d", MaxChannels, lut.Channels))
	}
	if lut.Dimension < 1 || lut.Dimension > MaxDimension {
		return ErrInvalidArgument.WithMessage(
			fmt.Sprintf("dimension must be in [1, %d], got %d", MaxDimension, lut.Dimension))
	}
	if !lut.Type.Valid() {
		return ErrInvalidArgument.WithMessage(
			fmt.Sprintf("unknown data type %d", uint32(lut.Type)))
	}
	for _, size := range [3]int{lut.SizeX, lut.SizeY, lut.SizeZ} {
		if size < 1 || size > MaxAxisSize {
			return ErrInvalidArgument.WithMessage(
				fmt.Sprintf("axis sizes must be in [1, %d], got %s", MaxAxisSize, lut.ShapeString()))
		}
	}
	if (lut.Dimension < 2 && lut.SizeY != 1) || (lut.Dimension < 3 && lut.SizeZ != 1) {
		return ErrInvalidArgument.WithMessage(
			fmt.Sprintf(
				"axes beyond dimension %d must have size 1, got %dx%dx%d",
				lut.Dimension,
				lut.SizeX,
				lut.SizeY,
				lut.SizeZ))
	}
	if lut.Data != nil && len(lut.Data) != lut.DataSize() {
		return ErrInvalidArgument.WithMessage(
			fmt.Sprintf(
				"%s LUT needs %d bytes of data, got %d",
				lut.ShapeString(),
				lut.DataSize(),
				len(lut.Data)))
	}
	return nil
}

// Equal returns true if both LUTs have the same shape, type, and contents.
func (lut LUT) Equal(other LUT) bool {
	return lut.Channels == other.Channels &&
		lut.Dimension == other.Dimension &&
		lut.Type == other.Type &&
		lut.SizeX == other.SizeX &&
		lut.SizeY == other.SizeY &&
		lut.SizeZ == other.SizeZ &&
		bytes.Equal(lut.Data, other.Data)
}

// Float32s decodes the LUT data into a new float32 slice. Float16 data is
// widened.
func (lut LUT) Float32s() []float32 {
	if lut.Type == Float32 {
		values := make([]float32, len(lut.Data)/4)
		for i := range values {
			values[i] = math.Float32frombits(binary.LittleEndian.Uint32(lut.Data[i*4:]))
		}
		return values
	}
	converted, err := ConvertData(lut, Float32, lut.Channels)
	if err != nil {
		return nil
	}
	return converted.Float32s()
}

// ShapeString returns a human-readable description of the LUT's extents, e.g.
// "33x33x33" for a 3D LUT.
func (lut LUT) ShapeString() string {
	switch lut.Dimension {
	case 1:
		return fmt.Sprintf("%d", lut.SizeX)
	case 2:
		return fmt.Sprintf("%dx%d", lut.SizeX, lut.SizeY)
	default:
		return fmt.Sprintf("%dx%dx%d", lut.SizeX, lut.SizeY, lut.SizeZ)
	}
}
