package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/dargueta/smolcube"
	"github.com/dargueta/smolcube/utilities/filters"
)

func decodeDomain(payload []byte) (*smolcube.Domain, error) {
	if len(payload) < 4 {
		return nil, smolcube.ErrInvalidContentData.WithMessage(
			fmt.Sprintf("domain chunk is %d bytes, too short", len(payload)))
	}
	channels := int(binary.LittleEndian.Uint32(payload))
	if channels < 1 || channels > smolcube.MaxChannels {
		return nil, smolcube.ErrInvalidContentData.WithMessage(
			fmt.Sprintf("domain has %d channels", channels))
	}
	if len(payload) != 4+8*channels {
		return nil, smolcube.ErrInvalidContentData.WithMessage(
			fmt.Sprintf(
				"domain chunk for %d channels must be %d bytes, got %d",
				channels,
				4+8*channels,
				len(payload)))
	}

	domain := &smolcube.Domain{
		Min: make([]float32, channels),
		Max: make([]float32, channels),
	}
	reader := bytes.NewReader(payload[4:])
	binary.Read(reader, binary.LittleEndian, domain.Min)
	binary.Read(reader, binary.LittleEndian, domain.Max)
	return domain, nil
}

func checkLUTHeader(header *lutHeader) error {
	if header.Channels < 1 || header.Channels > smolcube.MaxChannels {
		return fmt.Errorf("channels must be in [1, %d], got %d", smolcube.MaxChannels, header.Channels)
	}
	if header.Dimension < 1 || header.Dimension > smolcube.MaxDimension {
		return fmt.Errorf(
			"dimension must be in [1, %d], got %d", smolcube.MaxDimension, header.Dimension)
	}
	if !smolcube.DataType(header.DataType).Valid() {
		return fmt.Errorf("unknown data type %d", header.DataType)
	}
	if header.Filter >= filterCount {
		return fmt.Errorf("unknown filter %d", header.Filter)
	}
	if header.SizeX > smolcube.MaxAxisSize ||
		header.SizeY > smolcube.MaxAxisSize ||
		header.SizeZ > smolcube.MaxAxisSize {
		return fmt.Errorf(
			"axis sizes must not exceed %d, got %dx%dx%d",
			smolcube.MaxAxisSize,
			header.SizeX,
			header.SizeY,
			header.SizeZ)
	}
	return nil
}

// parseLUTChunk validates an ALut payload and returns its header along with
// the LUT shape it describes. Data is left nil.
func parseLUTChunk(payload []byte) (lutHeader, smolcube.LUT, error) {
	var header lutHeader
	if len(payload) <= lutHeaderSize {
		return header, smolcube.LUT{}, smolcube.ErrInvalidContentData.WithMessage(
			fmt.Sprintf("LUT chunk is %d bytes, must be over %d", len(payload), lutHeaderSize))
	}

	binary.Read(bytes.NewReader(payload[:lutHeaderSize]), binary.LittleEndian, &header)
	if err := checkLUTHeader(&header); err != nil {
		return header, smolcube.LUT{}, smolcube.ErrInvalidContentData.WithMessage(err.Error())
	}

	// Sizes of axes beyond the LUT's dimension don't contribute to the data
	// size, whatever the header says.
	itemCount := uint64(header.SizeX)
	sizeY, sizeZ := 1, 1
	if header.Dimension >= 2 {
		itemCount *= uint64(header.SizeY)
		sizeY = int(header.SizeY)
	}
	if header.Dimension >= 3 {
		itemCount *= uint64(header.SizeZ)
		sizeZ = int(header.SizeZ)
	}

	dataType := smolcube.DataType(header.DataType)
	itemSize := uint64(header.Channels) * uint64(dataType.Size())
	expectedSize := itemCount * itemSize
	dataSize := uint64(len(payload) - lutHeaderSize)
	if dataSize != expectedSize {
		return header, smolcube.LUT{}, smolcube.ErrInvalidContentData.WithMessage(
			fmt.Sprintf(
				"LUT declares %d bytes of data, chunk holds %d", expectedSize, dataSize))
	}

	lut := smolcube.LUT{
		Channels:  int(header.Channels),
		Dimension: int(header.Dimension),
		Type:      dataType,
		SizeX:     int(header.SizeX),
		SizeY:     sizeY,
		SizeZ:     sizeZ,
	}
	return header, lut, nil
}

// decodeLUT parses an ALut payload starting at `payloadOffset` in the file and
// attaches the LUT to the collection.
func decodeLUT(coll *smolcube.Collection, payload []byte, payloadOffset int) error {
	header, lut, err := parseLUTChunk(payload)
	if err != nil {
		return err
	}

	data := payload[lutHeaderSize:]
	if header.Filter == FilterNone {
		return coll.AppendFileView(lut, payloadOffset+lutHeaderSize, len(data))
	}

	lut.Data = make([]byte, len(data))
	filters.UnFilterByteDelta(data, lut.Data, lut.ItemSize(), lut.ItemCount())
	coll.AppendOwned(lut)
	return nil
}

// StoredLUT is a LUT's payload exactly as it sits in an encoded container.
type StoredLUT struct {
	// LUT describes the shape. Its Data is the stored bytes, which are still
	// filtered if Filter isn't FilterNone.
	smolcube.LUT
	Filter uint32
}

// ListLUTs returns the LUT payloads of an encoded container without
// un-filtering them. The data slices alias `data`.
func ListLUTs(data []byte) ([]StoredLUT, error) {
	var luts []StoredLUT
	err := walkChunks(data, func(info ChunkInfo, payload []byte) error {
		if info.FourCC != ChunkLUT {
			return nil
		}
		header, lut, err := parseLUTChunk(payload)
		if err != nil {
			return err
		}
		lut.Data = payload[lutHeaderSize:]
		luts = append(luts, StoredLUT{LUT: lut, Filter: header.Filter})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return luts, nil
}

// Decode parses an encoded container. Unfiltered LUTs of the returned
// collection are views into `data`, which must not be modified while the
// collection is in use. On failure no collection is returned.
func Decode(data []byte) (*smolcube.Collection, error) {
	coll := smolcube.NewCollectionFromFile(data)

	err := walkChunks(data, func(info ChunkInfo, payload []byte) error {
		switch info.FourCC {
		case ChunkTitle:
			if len(payload) > 0 {
				coll.Title = string(payload)
			}
		case ChunkComment:
			if len(payload) > 0 {
				coll.Comment = string(payload)
			}
		case ChunkDomain:
			domain, err := decodeDomain(payload)
			if err != nil {
				return err
			}
			coll.Domain = domain
		case ChunkLUT:
			return decodeLUT(coll, payload, info.Offset+chunkHeaderSize)
		}
		return nil
	})
	if err != nil {
		coll.Close()
		return nil, err
	}
	return coll, nil
}

// Read reads a whole container from a stream and decodes it.
func Read(r io.Reader) (*smolcube.Collection, error) {
	if r == nil {
		return nil, smolcube.ErrInvalidArgument.WithMessage("reader is nil")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, smolcube.ErrFileAccess.Wrap(err)
	}
	return Decode(data)
}

// LoadFile reads and decodes the container at `path`.
func LoadFile(path string) (*smolcube.Collection, error) {
	if path == "" {
		return nil, smolcube.ErrInvalidArgument.WithMessage("path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, smolcube.ErrFileAccess.Wrap(err)
	}
	return Decode(data)
}

// Codec adapts the container functions to [smolcube.Codec]. Flags apply when
// saving.
type Codec struct {
	Flags smolcube.SaveFlags
}

func (c Codec) Name() string      { return "smcube" }
func (c Codec) Extension() string { return ".smcube" }

func (c Codec) Load(r io.Reader) (*smolcube.Collection, error) {
	return Read(r)
}

func (c Codec) Save(w io.Writer, coll *smolcube.Collection) error {
	_, err := Write(w, coll, c.Flags)
	return err
}
