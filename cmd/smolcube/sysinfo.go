package main

import (
	"fmt"
	"runtime"

	"github.com/dargueta/smolcube/utilities/half"
	"github.com/dargueta/smolcube/utilities/simd"
	"github.com/urfave/cli/v2"
)

var sysinfoCommand = &cli.Command{
	Name:   "sysinfo",
	Usage:  "Show the CPU features the codecs can use",
	Action: showSystemInfo,
}

func showSystemInfo(context *cli.Context) error {
	output := context.App.Writer
	fmt.Fprintf(output, "cpu:          %s\n", simd.CPUName())
	fmt.Fprintf(output, "arch:         %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(output, "cores:        %d\n", runtime.NumCPU())
	fmt.Fprintf(output, "features:     %s\n", simd.Host())
	fmt.Fprintf(output, "half block:   %d\n", half.BlockWidth())
	return nil
}
