package container

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dargueta/smolcube"
)

// Magic is the signature at the start of every container.
const Magic = "SML1"

// Chunk type codes.
const (
	ChunkTitle   = "Titl"
	ChunkComment = "Comm"
	ChunkDomain  = "Domn"
	ChunkLUT     = "ALut"
)

const (
	chunkHeaderSize = 12
	lutHeaderSize   = 28
)

// Filter values stored in a LUT header.
const (
	FilterNone      uint32 = 0
	FilterByteDelta uint32 = 1
	filterCount     uint32 = 2
)

type chunkHeader struct {
	FourCC [4]byte
	Length uint64
}

// lutHeader is the fixed-size header at the start of every ALut payload.
type lutHeader struct {
	Channels  uint32
	Dimension uint32
	DataType  uint32
	Filter    uint32
	SizeX     uint32
	SizeY     uint32
	SizeZ     uint32
}

// ChunkInfo describes one chunk of a container.
type ChunkInfo struct {
	// FourCC is the chunk's type code.
	FourCC string
	// Offset is the position of the chunk header from the start of the file.
	Offset int
	// Length is the size of the payload, not including the chunk header.
	Length int
}

func writeChunkHeader(w io.Writer, fourcc string, length int) {
	header := chunkHeader{Length: uint64(length)}
	copy(header.FourCC[:], fourcc)
	binary.Write(w, binary.LittleEndian, &header)
}

// walkChunks calls `visit` for every chunk in `data`, which must start with the
// magic. It stops at the first error.
func walkChunks(data []byte, visit func(info ChunkInfo, payload []byte) error) error {
	if len(data) < len(Magic) {
		return smolcube.ErrInvalidHeaderData.WithMessage(
			fmt.Sprintf("file is %d bytes, too short for the magic", len(data)))
	}
	if string(data[:len(Magic)]) != Magic {
		return smolcube.ErrInvalidHeaderData.WithMessage(
			fmt.Sprintf("bad magic: expected %q, got %q", Magic, data[:len(Magic)]))
	}

	offset := len(Magic)
	for offset < len(data) {
		remaining := len(data) - offset
		if remaining < chunkHeaderSize {
			return smolcube.ErrInvalidContentData.WithMessage(
				fmt.Sprintf(
					"%d trailing bytes at offset %d can't hold a chunk header",
					remaining,
					offset))
		}

		fourcc := string(data[offset : offset+4])
		length := binary.LittleEndian.Uint64(data[offset+4 : offset+chunkHeaderSize])
		if length > uint64(remaining-chunkHeaderSize) {
			return smolcube.ErrInvalidContentData.WithMessage(
				fmt.Sprintf(
					"chunk %q at offset %d claims %d bytes, only %d left in file",
					fourcc,
					offset,
					length,
					remaining-chunkHeaderSize))
		}

		payloadStart := offset + chunkHeaderSize
		payloadEnd := payloadStart + int(length)
		info := ChunkInfo{FourCC: fourcc, Offset: offset, Length: int(length)}
		if err := visit(info, data[payloadStart:payloadEnd:payloadEnd]); err != nil {
			return err
		}
		offset = payloadEnd
	}
	return nil
}

// ListChunks returns the chunks of an encoded container without decoding them.
func ListChunks(data []byte) ([]ChunkInfo, error) {
	var chunks []ChunkInfo
	err := walkChunks(data, func(info ChunkInfo, _ []byte) error {
		chunks = append(chunks, info)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chunks, nil
}
