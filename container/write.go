package container

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/dargueta/smolcube"
	"github.com/dargueta/smolcube/utilities/filters"
	"github.com/noxer/bytewriter"
)

// encodedLUT is a LUT ready to be written: converted, and filtered if
// requested.
type encodedLUT struct {
	header lutHeader
	data   []byte
}

// prepareLUT applies the transforms selected by `flags` to a copy of `lut`.
// Type conversion happens before channel expansion, and filtering last.
func prepareLUT(lut smolcube.LUT, flags smolcube.SaveFlags) (encodedLUT, error) {
	if err := lut.Validate(); err != nil {
		return encodedLUT{}, err
	}
	if lut.Data == nil {
		return encodedLUT{}, smolcube.ErrInvalidArgument.WithMessage("LUT has no data")
	}

	dstType := lut.Type
	if flags.Has(smolcube.SaveConvertToFloat16) && lut.Type == smolcube.Float32 {
		dstType = smolcube.Float16
	}
	dstChannels := lut.Channels
	if flags.Has(smolcube.SaveExpandTo4Channels) && lut.Channels == 3 {
		dstChannels = 4
	}

	if dstType != lut.Type || dstChannels != lut.Channels {
		converted, err := smolcube.ConvertData(lut, dstType, dstChannels)
		if err != nil {
			return encodedLUT{}, err
		}
		lut = converted
	}

	result := encodedLUT{
		header: lutHeader{
			Channels:  uint32(lut.Channels),
			Dimension: uint32(lut.Dimension),
			DataType:  uint32(lut.Type),
			Filter:    FilterNone,
			SizeX:     uint32(lut.SizeX),
			SizeY:     uint32(lut.SizeY),
			SizeZ:     uint32(lut.SizeZ),
		},
		data: lut.Data,
	}

	if flags.Has(smolcube.SaveUseFilter) {
		filtered := make([]byte, len(lut.Data))
		// Every byte of an element is its own lane, so the filter sees
		// channels * element size channels.
		filters.FilterByteDelta(lut.Data, filtered, lut.ItemSize(), lut.ItemCount())
		result.header.Filter = FilterByteDelta
		result.data = filtered
	}
	return result, nil
}

func encodeDomain(domain *smolcube.Domain) ([]byte, error) {
	channels := len(domain.Min)
	if channels < 1 || channels > smolcube.MaxChannels || len(domain.Max) != channels {
		return nil, smolcube.ErrInvalidArgument.WithMessage(
			fmt.Sprintf(
				"domain needs 1 to %d matching min/max values, got %d and %d",
				smolcube.MaxChannels,
				len(domain.Min),
				len(domain.Max)))
	}

	payload := make([]byte, 4+8*channels)
	writer := bytewriter.New(payload)
	binary.Write(writer, binary.LittleEndian, uint32(channels))
	binary.Write(writer, binary.LittleEndian, domain.Min)
	binary.Write(writer, binary.LittleEndian, domain.Max)
	return payload, nil
}

// Encode serializes a collection into a new buffer.
func Encode(coll *smolcube.Collection, flags smolcube.SaveFlags) ([]byte, error) {
	if coll == nil {
		return nil, smolcube.ErrInvalidArgument.WithMessage("collection is nil")
	}

	totalSize := len(Magic)
	if coll.Title != "" {
		totalSize += chunkHeaderSize + len(coll.Title)
	}
	if coll.Comment != "" {
		totalSize += chunkHeaderSize + len(coll.Comment)
	}

	var domainPayload []byte
	if coll.Domain != nil {
		var err error
		domainPayload, err = encodeDomain(coll.Domain)
		if err != nil {
			return nil, err
		}
		totalSize += chunkHeaderSize + len(domainPayload)
	}

	luts := make([]encodedLUT, coll.Len())
	for i := range luts {
		encoded, err := prepareLUT(coll.LUT(i), flags)
		if err != nil {
			message := fmt.Sprintf("LUT %d can't be saved", i)
			if scErr, ok := err.(smolcube.SmolCubeError); ok {
				return nil, scErr.WithMessage(message)
			}
			return nil, smolcube.ErrInvalidArgument.Wrap(err).WithMessage(message)
		}
		luts[i] = encoded
		totalSize += chunkHeaderSize + lutHeaderSize + len(encoded.data)
	}

	output := make([]byte, totalSize)
	writer := bytewriter.New(output)
	writer.Write([]byte(Magic))

	if coll.Title != "" {
		writeChunkHeader(writer, ChunkTitle, len(coll.Title))
		writer.Write([]byte(coll.Title))
	}
	if coll.Comment != "" {
		writeChunkHeader(writer, ChunkComment, len(coll.Comment))
		writer.Write([]byte(coll.Comment))
	}
	if domainPayload != nil {
		writeChunkHeader(writer, ChunkDomain, len(domainPayload))
		writer.Write(domainPayload)
	}
	for _, lut := range luts {
		writeChunkHeader(writer, ChunkLUT, lutHeaderSize+len(lut.data))
		binary.Write(writer, binary.LittleEndian, &lut.header)
		writer.Write(lut.data)
	}
	return output, nil
}

// Write serializes a collection to a stream and returns the number of bytes
// written.
func Write(w io.Writer, coll *smolcube.Collection, flags smolcube.SaveFlags) (int64, error) {
	if w == nil {
		return 0, smolcube.ErrInvalidArgument.WithMessage("writer is nil")
	}
	data, err := Encode(coll, flags)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	if err != nil {
		return int64(n), smolcube.ErrFileAccess.Wrap(err)
	}
	return int64(n), nil
}

// SaveFile serializes a collection to the file at `path`, replacing it if it
// exists.
func SaveFile(path string, coll *smolcube.Collection, flags smolcube.SaveFlags) error {
	if path == "" {
		return smolcube.ErrInvalidArgument.WithMessage("path is empty")
	}
	data, err := Encode(coll, flags)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return smolcube.ErrFileAccess.Wrap(err)
	}
	return nil
}
