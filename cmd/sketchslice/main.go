// Package main starts the SketchSlice server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// version is overridden at build time.
var version = "dev"

// main is the entrypoint for the SketchSlice server.
func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// newCommand builds the root command.
func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "sketchslice",
		Usage:   "serve the freehand drawing surface",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable verbose debug logging",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "directory holding .env and layout.yaml",
				Sources: cli.EnvVars("DATA_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, options{
				debug:   cmd.Bool("debug"),
				dataDir: cmd.String("data-dir"),
			})
		},
	}
}
