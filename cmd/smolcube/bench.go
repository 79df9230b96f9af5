package main

import (
	"fmt"
	"os"

	"github.com/dargueta/smolcube/bench"
	"github.com/dargueta/smolcube/cube"
	"github.com/dargueta/smolcube/profiles"
	"github.com/dargueta/smolcube/utilities/compression"
	"github.com/urfave/cli/v2"
)

var benchCommand = &cli.Command{
	Name:      "bench",
	Usage:     "Measure compressed sizes and speeds for .cube files",
	ArgsUsage: "CUBE_FILE...",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "profile",
			Usage: "Profile to measure; may be repeated (default: all)",
		},
		&cli.StringSliceFlag{
			Name:  "format",
			Usage: "Compression format to measure; may be repeated (default: all)",
		},
		&cli.IntFlag{
			Name:  "repeats",
			Value: 3,
			Usage: "Number of runs per measurement; the fastest is reported",
		},
		&cli.IntFlag{
			Name:  "flush-size",
			Value: bench.DefaultFlushSize,
			Usage: "Bytes written to evict caches before each run; 0 disables",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the CSV report to this file instead of standard output",
		},
	},
	Action: runBenchmarks,
}

func selectedProfiles(slugs []string) ([]profiles.Profile, error) {
	if len(slugs) == 0 {
		return profiles.All(), nil
	}
	result := make([]profiles.Profile, 0, len(slugs))
	for _, slug := range slugs {
		profile, err := profiles.Get(slug)
		if err != nil {
			return nil, err
		}
		result = append(result, profile)
	}
	return result, nil
}

func selectedFormats(names []string) ([]compression.Format, error) {
	if len(names) == 0 {
		return compression.Formats(), nil
	}
	result := make([]compression.Format, 0, len(names))
	for _, name := range names {
		format, err := compression.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		result = append(result, format)
	}
	return result, nil
}

func runBenchmarks(context *cli.Context) error {
	if context.NArg() == 0 {
		return cli.Exit("no input files given", 1)
	}

	runner := bench.Runner{Repeats: context.Int("repeats")}
	var err error
	if runner.Profiles, err = selectedProfiles(context.StringSlice("profile")); err != nil {
		return err
	}
	if runner.Formats, err = selectedFormats(context.StringSlice("format")); err != nil {
		return err
	}
	if size := context.Int("flush-size"); size > 0 {
		runner.Flusher = bench.NewFlusher(size)
	}

	var results []bench.Result
	for _, path := range context.Args().Slice() {
		coll, err := cube.LoadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Info("benchmarking", "file", path, "luts", coll.Len())

		fileResults, err := runner.Run(path, coll)
		coll.Close()
		if err != nil {
			return err
		}
		results = append(results, fileResults...)
	}

	for _, summary := range bench.Summarize(results) {
		logger.Info(
			"best ratio",
			"format", summary.Format,
			"level", summary.Level,
			"profile", summary.Profile,
			"ratio", fmt.Sprintf("%.2f", summary.Ratio))
	}

	outputPath := context.String("output")
	if outputPath == "" {
		return bench.WriteCSV(context.App.Writer, results)
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := bench.WriteCSV(file, results); err != nil {
		return err
	}
	logger.Info("wrote report", "output", outputPath, "rows", len(results))
	return nil
}
