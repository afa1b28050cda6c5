// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run contains the run subcommand.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/matt-FFFFFF/conrun/internal/config"
	"github.com/matt-FFFFFF/conrun/internal/ctxlog"
	"github.com/matt-FFFFFF/conrun/internal/runbatch"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag     = "file"
	onlyFlag     = "only"
	sequenceFlag = "sequence"
	strictFlag   = "strict"
	cliExitStr   = ""
)

// ErrCommandsFailed is returned in strict mode when at least one command failed.
var ErrCommandsFailed = errors.New("some commands failed")

// RunCmd is the command that runs the commands of a command file.
var RunCmd = &cli.Command{
	Name:  "run",
	Usage: "Run the commands of a command file",
	Description: `Run the commands defined in a YAML or HCL command file and print a summary.
Commands run all at once unless --sequence is given. A failed command is retried
as many times as its retry count allows and never stops the other commands.

Command file URLs use Hashicorp's go-getter syntax, which allows for fetching files from various sources.
See https://github.com/hashicorp/go-getter.
`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:      fileFlag,
			Aliases:   []string{"f"},
			Usage:     "URL of the command file, supports Hashicorp's go-getter syntax",
			TakesFile: true,
			Required:  true,
			OnlyOnce:  true,
		},
		&cli.StringSliceFlag{
			Name:    onlyFlag,
			Aliases: []string{"o"},
			Usage: "Only run the commands whose name matches this regular expression. " +
				"Specify multiple times to run the commands matching any of them.",
		},
		&cli.BoolFlag{
			Name:        sequenceFlag,
			Aliases:     []string{"s"},
			Usage:       "Run the commands one after the other",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        strictFlag,
			Usage:       "Exit with status 1 when a command failed",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
	},
	Action: actionFunc,
}

// Options are the settings of one run.
type Options struct {
	URL      string
	Onlys    []string
	Sequence bool
	Strict   bool
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("Running run command")

	err := Run(ctx, Options{
		URL:      cmd.String(fileFlag),
		Onlys:    cmd.StringSlice(onlyFlag),
		Sequence: cmd.Bool(sequenceFlag),
		Strict:   cmd.Bool(strictFlag),
	}, cmd.Root().Writer, cmd.Root().ErrWriter)

	switch {
	case errors.Is(err, ErrCommandsFailed):
		logger.Error("Some commands failed. See above for details.")
		return cli.Exit(cliExitStr, 1)
	case err != nil:
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

// Run loads the command file and runs its commands, writing their output and the report to
// stdout and stderr. In strict mode a batch with failures returns ErrCommandsFailed.
func Run(ctx context.Context, opts Options, stdout, stderr io.Writer) error {
	f, err := config.Load(ctx, opts.URL)
	if err != nil {
		return fmt.Errorf("failed to load command file %s: %w", opts.URL, err)
	}

	runner := runbatch.NewRunner(runbatch.WithOutput(stdout, stderr))

	report := runner.Run(ctx, f.Runnable(), runbatch.RunOptions{
		Onlys:    opts.Onlys,
		Sequence: opts.Sequence,
	})

	if opts.Strict && report.HasFailure() {
		return fmt.Errorf("%w: %d of %d", ErrCommandsFailed, report.Failed(), len(report.Entries))
	}

	return nil
}
