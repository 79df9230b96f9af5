package bench

import (
	"io"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes benchmark results as CSV with a header row.
func WriteCSV(w io.Writer, results []Result) error {
	return gocsv.Marshal(results, w)
}

// Summary is the best result per format over a set of results.
type Summary struct {
	Format         string
	Level          int
	Profile        string
	CompressedSize int
	Ratio          float64
}

// Summarize returns, for every format present in `results`, the result with the
// highest total compression ratio, in the order formats first appear.
func Summarize(results []Result) []Summary {
	var order []string
	best := map[string]Result{}
	for _, result := range results {
		current, ok := best[result.Format]
		if !ok {
			order = append(order, result.Format)
		}
		if !ok || result.Ratio > current.Ratio {
			best[result.Format] = result
		}
	}

	summaries := make([]Summary, len(order))
	for i, format := range order {
		result := best[format]
		summaries[i] = Summary{
			Format:         format,
			Level:          result.Level,
			Profile:        result.Profile,
			CompressedSize: result.CompressedSize,
			Ratio:          result.Ratio,
		}
	}
	return summaries
}
