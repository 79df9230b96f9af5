package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func setUpLogging(context *cli.Context) error {
	level := slog.LevelInfo
	if context.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func main() {
	app := cli.App{
		Name:  "smolcube",
		Usage: "Convert and inspect color lookup tables",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debugging information",
			},
		},
		Before: setUpLogging,
		Commands: []*cli.Command{
			convertCommand,
			infoCommand,
			benchCommand,
			sysinfoCommand,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}
