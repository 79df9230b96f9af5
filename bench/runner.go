// Package bench measures how well the container and the compressors shrink
// LUT data, and how fast.
package bench

import (
	"bytes"
	"fmt"
	"time"

	"github.com/dargueta/smolcube"
	"github.com/dargueta/smolcube/container"
	"github.com/dargueta/smolcube/profiles"
	"github.com/dargueta/smolcube/utilities/compression"
)

// Result is one row of a benchmark report.
type Result struct {
	File           string  `csv:"file"`
	Profile        string  `csv:"profile"`
	Format         string  `csv:"format"`
	Level          int     `csv:"level"`
	RawSize        int     `csv:"raw_size"`
	StoredSize     int     `csv:"stored_size"`
	CompressedSize int     `csv:"compressed_size"`
	Ratio          float64 `csv:"ratio"`
	CompressMs     float64 `csv:"compress_ms"`
	DecompressMs   float64 `csv:"decompress_ms"`
}

// Runner stores a collection with each of its profiles and compresses the
// result with every level of each of its formats.
type Runner struct {
	// Flusher, if set, evicts CPU caches before every timed operation.
	Flusher *Flusher
	// Repeats is the number of times each operation runs. The fastest run is
	// reported. Values below 1 count as 1.
	Repeats  int
	Profiles []profiles.Profile
	Formats  []compression.Format
}

func (r *Runner) repeats() int {
	if r.Repeats < 1 {
		return 1
	}
	return r.Repeats
}

// timeBest runs `op` the configured number of times and returns the fastest
// duration. It stops at the first error.
func (r *Runner) timeBest(op func() error) (time.Duration, error) {
	best := time.Duration(-1)
	for i := 0; i < r.repeats(); i++ {
		if r.Flusher != nil {
			r.Flusher.Flush()
		}
		start := time.Now()
		err := op()
		elapsed := time.Since(start)
		if err != nil {
			return 0, err
		}
		if best < 0 || elapsed < best {
			best = elapsed
		}
	}
	return best, nil
}

func rawSize(coll *smolcube.Collection) int {
	total := 0
	for _, lut := range coll.LUTs() {
		total += len(lut.Data)
	}
	return total
}

func milliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// measure compresses and decompresses the LUT payloads of one stored
// container and checks that the data survives. Each payload is compressed on
// its own, with the LUT's item size, so filtering compressors see one lane
// per stored byte of an item. The remaining container bytes are counted
// uncompressed.
func (r *Runner) measure(stored []byte, format compression.Format, level int) (Result, error) {
	luts, err := container.ListLUTs(stored)
	if err != nil {
		return Result{}, err
	}

	compressed := make([][]byte, len(luts))
	compressTime, err := r.timeBest(func() error {
		for i, lut := range luts {
			var err error
			compressed[i], err = compression.Compress(
				lut.Data, lut.ItemCount(), lut.ItemSize(), format, level)
			if err != nil {
				return fmt.Errorf("LUT %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	outputs := make([][]byte, len(luts))
	for i, lut := range luts {
		outputs[i] = make([]byte, len(lut.Data))
	}
	decompressTime, err := r.timeBest(func() error {
		for i, lut := range luts {
			_, err := compression.Decompress(
				compressed[i], outputs[i], lut.ItemCount(), lut.ItemSize(), format)
			if err != nil {
				return fmt.Errorf("LUT %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	compressedSize := len(stored)
	for i, lut := range luts {
		if !bytes.Equal(lut.Data, outputs[i]) {
			return Result{}, fmt.Errorf(
				"%s level %d: decompressed data of LUT %d doesn't match", format, level, i)
		}
		compressedSize += len(compressed[i]) - len(lut.Data)
	}

	result := Result{
		Format:         format.String(),
		Level:          level,
		StoredSize:     len(stored),
		CompressedSize: compressedSize,
		CompressMs:     milliseconds(compressTime),
		DecompressMs:   milliseconds(decompressTime),
	}
	return result, nil
}

// Run benchmarks a single collection. `name` identifies it in the results.
func (r *Runner) Run(name string, coll *smolcube.Collection) ([]Result, error) {
	raw := rawSize(coll)
	var results []Result

	for _, profile := range r.Profiles {
		stored, err := container.Encode(coll, profile.Flags())
		if err != nil {
			return nil, fmt.Errorf("%s: profile %s: %w", name, profile.Slug, err)
		}

		for _, format := range r.Formats {
			for _, level := range compression.Levels(format) {
				result, err := r.measure(stored, format, level)
				if err != nil {
					return nil, fmt.Errorf("%s: profile %s: %w", name, profile.Slug, err)
				}
				result.File = name
				result.Profile = profile.Slug
				result.RawSize = raw
				if result.CompressedSize > 0 {
					result.Ratio = float64(raw) / float64(result.CompressedSize)
				}
				results = append(results, result)
			}
		}
	}
	return results, nil
}
