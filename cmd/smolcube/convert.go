package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/dargueta/smolcube"
	"github.com/dargueta/smolcube/container"
	"github.com/dargueta/smolcube/cube"
	"github.com/dargueta/smolcube/profiles"
	"github.com/urfave/cli/v2"
)

var convertCommand = &cli.Command{
	Name:      "convert",
	Usage:     "Convert .cube files to .smcube",
	ArgsUsage: "CUBE_FILE...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "profile",
			Value: profiles.DefaultSlug,
			Usage: fmt.Sprintf(
				"Named save options, one of: %s", strings.Join(profiles.Slugs(), ", ")),
		},
		&cli.BoolFlag{Name: "filter", Usage: "Apply the byte-delta filter (overrides the profile)"},
		&cli.BoolFlag{Name: "float16", Usage: "Store data as float16 (overrides the profile)"},
		&cli.BoolFlag{Name: "rgba", Usage: "Add a fourth channel to RGB data (overrides the profile)"},
		&cli.StringFlag{
			Name:  "output-dir",
			Usage: "Directory for the output files; defaults to next to each input",
		},
		&cli.BoolFlag{
			Name:  "roundtrip",
			Usage: "Read each output back, compare it, and write it out again as .out.cube",
		},
	},
	Action: convertFiles,
}

// saveFlags combines the selected profile with the individual flag overrides.
func saveFlags(context *cli.Context) (smolcube.SaveFlags, error) {
	profile, err := profiles.Get(context.String("profile"))
	if err != nil {
		return 0, err
	}
	flags := profile.Flags()

	for _, option := range []struct {
		name string
		flag smolcube.SaveFlags
	}{
		{"filter", smolcube.SaveUseFilter},
		{"float16", smolcube.SaveConvertToFloat16},
		{"rgba", smolcube.SaveExpandTo4Channels},
	} {
		if !context.IsSet(option.name) {
			continue
		}
		if context.Bool(option.name) {
			flags |= option.flag
		} else {
			flags &^= option.flag
		}
	}
	return flags, nil
}

func outputPath(inputPath, outputDir, suffix string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	if outputDir != "" {
		base = filepath.Join(outputDir, filepath.Base(base))
	}
	return base + suffix
}

func convertFiles(context *cli.Context) error {
	if context.NArg() == 0 {
		return cli.Exit("no input files given", 1)
	}
	flags, err := saveFlags(context)
	if err != nil {
		return err
	}
	logger.Debug("save options", "flags", flags.String())

	failures := 0
	for _, inputPath := range context.Args().Slice() {
		if err := convertFile(context, inputPath, flags); err != nil {
			logger.Error("conversion failed", "input", inputPath, "error", err)
			failures++
		}
	}
	if failures > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d files failed", failures, context.NArg()), 1)
	}
	return nil
}

func convertFile(context *cli.Context, inputPath string, flags smolcube.SaveFlags) error {
	coll, err := cube.LoadFile(inputPath)
	if err != nil {
		return err
	}
	defer coll.Close()

	for i, lut := range coll.LUTs() {
		logger.Debug(
			"read LUT",
			"input", inputPath,
			"index", i,
			"dimension", lut.Dimension,
			"size", lut.ShapeString())
	}

	outputDir := context.String("output-dir")
	smcubePath := outputPath(inputPath, outputDir, container.Codec{}.Extension())
	if err := container.SaveFile(smcubePath, coll, flags); err != nil {
		return err
	}
	logger.Info("converted", "input", inputPath, "output", smcubePath)

	if !context.Bool("roundtrip") {
		return nil
	}
	return roundTrip(coll, smcubePath, outputPath(inputPath, outputDir, ".out.cube"))
}

// roundTrip reads a written container back, checks it against the collection
// it was written from, and saves it as a .cube file for comparison with other
// tools.
func roundTrip(original *smolcube.Collection, smcubePath, cubePath string) error {
	loaded, err := container.LoadFile(smcubePath)
	if err != nil {
		return fmt.Errorf("failed to read back %s: %w", smcubePath, err)
	}
	defer loaded.Close()

	if loaded.Len() != original.Len() {
		return fmt.Errorf(
			"%s holds %d LUTs, expected %d", smcubePath, loaded.Len(), original.Len())
	}

	restored := smolcube.NewCollection(loaded.Title, loaded.Comment)
	restored.Domain = loaded.Domain
	for i := 0; i < loaded.Len(); i++ {
		want := original.LUT(i)
		got, err := smolcube.ConvertData(loaded.LUT(i), want.Type, want.Channels)
		if err != nil {
			return err
		}
		maxError := maxAbsDifference(want.Float32s(), got.Float32s())
		logger.Info("round trip", "file", smcubePath, "lut", i, "max_error", maxError)
		restored.AppendOwned(got)
	}

	if err := cube.SaveFile(cubePath, restored); err != nil {
		return err
	}
	logger.Debug("wrote round trip output", "output", cubePath)
	return nil
}

func maxAbsDifference(a, b []float32) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	maxDiff := 0.0
	for i := range a {
		diff := math.Abs(float64(a[i]) - float64(b[i]))
		if diff > maxDiff {
			maxDiff = diff
		}
	}
	return maxDiff
}
