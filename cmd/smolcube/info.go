package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/dargueta/smolcube"
	"github.com/dargueta/smolcube/container"
	"github.com/urfave/cli/v2"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

var infoCommand = &cli.Command{
	Name:      "info",
	Usage:     "Describe the contents of .smcube files",
	ArgsUsage: "SMCUBE_FILE...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Value: "text",
			Usage: "Output format: text or yaml",
		},
	},
	Action: describeFiles,
}

type chunkReport struct {
	FourCC string `yaml:"fourcc"`
	Offset int    `yaml:"offset"`
	Length int    `yaml:"length"`
}

type lutReport struct {
	Index     int    `yaml:"index"`
	Dimension int    `yaml:"dimension"`
	Shape     string `yaml:"shape"`
	Channels  int    `yaml:"channels"`
	Type      string `yaml:"type"`
	Storage   string `yaml:"storage"`
	Bytes     int    `yaml:"bytes"`
	Blake3    string `yaml:"blake3"`
}

type fileReport struct {
	Path    string           `yaml:"path"`
	Size    int              `yaml:"size"`
	Title   string           `yaml:"title,omitempty"`
	Comment string           `yaml:"comment,omitempty"`
	Domain  *smolcube.Domain `yaml:"domain,omitempty"`
	Chunks  []chunkReport    `yaml:"chunks"`
	LUTs    []lutReport      `yaml:"luts"`
}

// digest returns the hex BLAKE3 hash of the LUT's decoded data, so LUTs can be
// compared regardless of how they were filtered in the file.
func digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func describeFile(path string) (fileReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileReport{}, smolcube.ErrFileAccess.Wrap(err)
	}

	chunks, err := container.ListChunks(data)
	if err != nil {
		return fileReport{}, err
	}
	coll, err := container.Decode(data)
	if err != nil {
		return fileReport{}, err
	}
	defer coll.Close()

	report := fileReport{
		Path:    path,
		Size:    len(data),
		Title:   coll.Title,
		Comment: coll.Comment,
		Domain:  coll.Domain,
	}
	for _, chunk := range chunks {
		report.Chunks = append(report.Chunks, chunkReport(chunk))
	}
	for i, lut := range coll.LUTs() {
		report.LUTs = append(report.LUTs, lutReport{
			Index:     i,
			Dimension: lut.Dimension,
			Shape:     lut.ShapeString(),
			Channels:  lut.Channels,
			Type:      lut.Type.String(),
			Storage:   coll.StorageOf(i).String(),
			Bytes:     len(lut.Data),
			Blake3:    digest(lut.Data),
		})
	}
	return report, nil
}

func printText(w io.Writer, report fileReport) {
	fmt.Fprintf(w, "%s (%d bytes)\n", report.Path, report.Size)
	if report.Title != "" {
		fmt.Fprintf(w, "  title:   %s\n", report.Title)
	}
	if report.Comment != "" {
		fmt.Fprintf(w, "  comment: %q\n", report.Comment)
	}
	if report.Domain != nil {
		fmt.Fprintf(w, "  domain:  %v - %v\n", report.Domain.Min, report.Domain.Max)
	}
	for _, chunk := range report.Chunks {
		fmt.Fprintf(w, "  chunk %s at %d, %d bytes\n", chunk.FourCC, chunk.Offset, chunk.Length)
	}
	for _, lut := range report.LUTs {
		fmt.Fprintf(
			w,
			"  LUT %d: %dD %s, %d x %s, %s storage, blake3 %s\n",
			lut.Index,
			lut.Dimension,
			lut.Shape,
			lut.Channels,
			lut.Type,
			lut.Storage,
			lut.Blake3)
	}
}

func describeFiles(context *cli.Context) error {
	if context.NArg() == 0 {
		return cli.Exit("no input files given", 1)
	}
	format := context.String("format")
	if format != "text" && format != "yaml" {
		return cli.Exit(fmt.Sprintf("unknown output format %q", format), 1)
	}

	var reports []fileReport
	for _, path := range context.Args().Slice() {
		report, err := describeFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		reports = append(reports, report)
	}

	output := context.App.Writer
	if format == "yaml" {
		encoder := yaml.NewEncoder(output)
		defer encoder.Close()
		return encoder.Encode(reports)
	}
	for _, report := range reports {
		printText(output, report)
	}
	return nil
}
