package compression

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// maxRLE8Run is the longest run a single RLE8 triple can describe: the two
// literal bytes plus up to 255 repeats.
const maxRLE8Run = 257

// rle8Bound gives the largest possible RLE8 encoding of `size` bytes. The
// worst case is a stream of pairs, each of which becomes three bytes.
func rle8Bound(size int) int {
	return size + (size+1)/2
}

// CompressRLE8 reads bytes from the input and writes RLE8-encoded data to the
// output until the input is exhausted. The return value is the number of bytes
// written, only valid if no error occurred.
func CompressRLE8(input io.Reader, output io.Writer) (int64, error) {
	grouper := NewRLEGrouper(input)
	writer := bufio.NewWriter(output)
	totalBytesWritten := int64(0)

	for {
		run, err := grouper.GetNextRun()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return totalBytesWritten, err
		}

		for run.RunLength >= 2 {
			chunk := run.RunLength
			if chunk > maxRLE8Run {
				chunk = maxRLE8Run
			}
			writer.WriteByte(run.Byte)
			writer.WriteByte(run.Byte)
			writer.WriteByte(byte(chunk - 2))
			totalBytesWritten += 3
			run.RunLength -= chunk
		}

		if run.RunLength == 1 {
			writer.WriteByte(run.Byte)
			totalBytesWritten++
		}
	}

	if err := writer.Flush(); err != nil {
		return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
	}
	return totalBytesWritten, nil
}

// DecompressRLE8 expands RLE8-encoded data from the input into the output. The
// return value is the number of bytes written.
func DecompressRLE8(input io.Reader, output io.Writer) (int64, error) {
	source := bufio.NewReader(input)
	writer := bufio.NewWriter(output)
	lastByteRead := -1
	totalBytesWritten := int64(0)

	for {
		currentByte, err := source.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
		}

		if int(currentByte) != lastByteRead {
			lastByteRead = int(currentByte)
			writer.WriteByte(currentByte)
			totalBytesWritten++
			continue
		}

		// Second of two identical bytes: a repeat count follows.
		repeatCount, err := source.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = fmt.Errorf(
					"%w: missing repeat count after two %02x bytes",
					io.ErrUnexpectedEOF,
					currentByte,
				)
			}
			return totalBytesWritten, fmt.Errorf("failed to read repeat count: %w", err)
		}

		// The first copy was written on the previous iteration, so this writes
		// the second copy plus the repeats.
		for i := 0; i <= int(repeatCount); i++ {
			writer.WriteByte(currentByte)
		}
		totalBytesWritten += int64(repeatCount) + 1

		// Forget the byte so a following run of the same value starts fresh.
		lastByteRead = -1
	}

	if err := writer.Flush(); err != nil {
		return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
	}
	return totalBytesWritten, nil
}
