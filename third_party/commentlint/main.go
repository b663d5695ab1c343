// Package main runs the commentlint CLI, which reports declarations without
// doc comments.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// main is the entrypoint for the comment linter CLI.
func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "commentlint: %v\n", err)
		os.Exit(1)
	}
}

// newCommand builds the CLI definition.
func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "commentlint",
		Usage:     "ensure every function and type has a doc comment",
		ArgsUsage: "[packages]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: ".golangci.yml", Usage: "golangci config holding exclusions"},
			&cli.BoolFlag{Name: "types", Value: true, Usage: "also require doc comments on type declarations"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			patterns := cmd.Args().Slice()
			if len(patterns) == 0 {
				patterns = []string{"./..."}
			}
			cfg, err := loadConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			pkgs, err := listPackages(patterns)
			if err != nil {
				return err
			}
			rep, err := lint(pkgs, cfg, cmd.Bool("types"))
			if err != nil {
				return err
			}
			return rep.print(os.Stderr)
		},
	}
}
