package cube

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dargueta/smolcube"
)

// Supported returns true if the format can represent `lut`: three float32
// channels, and either 1D or 3D with equal sizes on every axis.
func Supported(lut smolcube.LUT) bool {
	if lut.Channels != 3 || lut.Type != smolcube.Float32 || lut.Data == nil {
		return false
	}
	switch lut.Dimension {
	case 1:
		return lut.SizeX <= Max1DSize
	case 3:
		return lut.SizeX == lut.SizeY && lut.SizeX == lut.SizeZ && lut.SizeX <= Max3DSize
	default:
		return false
	}
}

// selectLUTs returns the first supported 1D and 3D LUTs of the collection, or
// -1 for each one that's missing.
func selectLUTs(coll *smolcube.Collection) (index1D, index3D int) {
	index1D, index3D = -1, -1
	for i := 0; i < coll.Len(); i++ {
		lut := coll.LUT(i)
		if !Supported(lut) {
			continue
		}
		if lut.Dimension == 1 && index1D < 0 {
			index1D = i
		} else if lut.Dimension == 3 && index3D < 0 {
			index3D = i
		}
	}
	return index1D, index3D
}

func formatFloat(value float32) string {
	return strconv.FormatFloat(float64(value), 'g', -1, 32)
}

func writeTriple(w *bufio.Writer, values []float32) {
	w.WriteString(formatFloat(values[0]))
	w.WriteByte(' ')
	w.WriteString(formatFloat(values[1]))
	w.WriteByte(' ')
	w.WriteString(formatFloat(values[2]))
	w.WriteByte('\n')
}

// Write writes a collection as a .cube file. LUTs the format can't represent
// are skipped without an error, as are all but the first 1D and first 3D LUT.
// The domain is written only if it has three channels.
func Write(w io.Writer, coll *smolcube.Collection) error {
	if w == nil || coll == nil {
		return smolcube.ErrInvalidArgument.WithMessage("writer and collection are required")
	}
	if coll.Len() == 0 {
		return smolcube.ErrInvalidArgument.WithMessage("collection has no LUTs")
	}

	writer := bufio.NewWriter(w)
	if coll.Comment != "" {
		for _, line := range strings.Split(coll.Comment, "\n") {
			fmt.Fprintf(writer, "# %s\n", line)
		}
	}
	if coll.Title != "" {
		fmt.Fprintf(writer, "TITLE \"%s\"\n", coll.Title)
	}
	if domain := coll.Domain; domain != nil && len(domain.Min) == 3 && len(domain.Max) == 3 {
		writer.WriteString("DOMAIN_MIN ")
		writeTriple(writer, domain.Min)
		writer.WriteString("DOMAIN_MAX ")
		writeTriple(writer, domain.Max)
	}

	index1D, index3D := selectLUTs(coll)
	if index1D >= 0 {
		fmt.Fprintf(writer, "LUT_1D_SIZE %d\n", coll.LUT(index1D).SizeX)
	}
	if index3D >= 0 {
		fmt.Fprintf(writer, "LUT_3D_SIZE %d\n", coll.LUT(index3D).SizeX)
	}

	for _, index := range []int{index1D, index3D} {
		if index < 0 {
			continue
		}
		values := coll.LUT(index).Float32s()
		for i := 0; i+3 <= len(values); i += 3 {
			writeTriple(writer, values[i:i+3])
		}
	}

	if err := writer.Flush(); err != nil {
		return smolcube.ErrFileAccess.Wrap(err)
	}
	return nil
}

// SaveFile writes a collection to the .cube file at `path`.
func SaveFile(path string, coll *smolcube.Collection) error {
	if path == "" {
		return smolcube.ErrInvalidArgument.WithMessage("path is empty")
	}
	file, err := os.Create(path)
	if err != nil {
		return smolcube.ErrFileAccess.Wrap(err)
	}

	err = Write(file, coll)
	closeErr := file.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return smolcube.ErrFileAccess.Wrap(closeErr)
	}
	return nil
}

// Codec adapts the package functions to [smolcube.Codec].
type Codec struct{}

func (Codec) Name() string      { return "cube" }
func (Codec) Extension() string { return ".cube" }

func (Codec) Load(r io.Reader) (*smolcube.Collection, error) {
	return Read(r)
}

func (Codec) Save(w io.Writer, coll *smolcube.Collection) error {
	return Write(w, coll)
}
