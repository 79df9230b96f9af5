// Package container reads and writes the "smcube" binary LUT container.
//
// A container starts with the 4-byte magic "SML1" followed by a sequence of
// chunks. Each chunk is a 4-byte type code, a little-endian uint64 payload
// length, and the payload:
//
//	"Titl"  title, raw UTF-8 bytes
//	"Comm"  comment, raw UTF-8 bytes
//	"Domn"  channels:u32, min:f32[channels], max:f32[channels]
//	"ALut"  28-byte LUT header followed by the LUT data
//
// The LUT header is seven little-endian uint32 values: channels, dimension,
// data type, filter, and the sizes of the X, Y, and Z axes. The filter is
// either 0 (none) or 1 (byte delta, applied to channels * element size byte
// lanes). Readers skip chunks with unknown type codes.
package container
