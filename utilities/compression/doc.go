// Package compression provides a uniform interface over the general-purpose
// compressors used to shrink LUT data, along with the run-length encoder they
// build on.
//
// Every format is used through the same three calls: [Bound] gives the worst
// case compressed size for a buffer, [Compress] allocates a buffer of that size
// and compresses into it, and [Decompress] writes into a buffer the caller has
// already sized. Buffers are described as `itemCount` items of `itemSize` bytes
// so that formats which understand the item structure can use it.
//
// Formats:
//
//   - Zstd: Zstandard, via github.com/klauspost/compress/zstd.
//   - LZ4: LZ4 block format, fast or high-compression depending on level.
//   - RLE8Gzip: RLE8 run-length encoding followed by gzip.
//   - ByteDeltaZstd: the byte-delta filter with `itemSize` byte lanes,
//     followed by Zstandard. This is a composite format: the filter stage
//     feeds an intermediate buffer that the second stage compresses.
//
// RLE8 is the scheme used by the Microsoft BMP file format. A brief
// explanation: if a byte B occurs N times where N >= 2, B is written twice,
// followed by a third (unsigned) byte indicating how many additional times B
// occurred. For example:
//
//	WXXXXXXXXXXXXXXXYZZ
//	W XX 13 Y ZZ 0
//
// This scheme lets us represent runs of up to 257 bytes with three bytes. For
// runs longer than 257 bytes, they are treated as separate runs. For example,
// a run of 300 "X" is represented as `XX 255 XX 41`. Unfortunately, using a byte
// as its own escape sequence means that occurrences of the same byte exactly
// twice are stored as three bytes: the two bytes followed by a null byte
// indicating no further repetition.
//
// Empty input (no items, or zero-sized items) is never an error: Bound returns
// 0, Compress returns nil, and Decompress returns 0.
package compression
