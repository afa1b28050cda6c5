// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"fmt"
	"os"

	"github.com/matt-FFFFFF/conrun"
	"github.com/matt-FFFFFF/conrun/cmd/run"
	"github.com/matt-FFFFFF/conrun/cmd/version"
	"github.com/matt-FFFFFF/conrun/cmd/window"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		window.WindowCmd,
		version.VersionCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "conrun",
	Description: `conrun runs the commands listed in a command file, all at once or one after
the other, retries the ones that fail and prints a summary of the results.
The output of every command is prefixed with its colorized name.`,
	Usage:     "conrun run -f conrun.yaml",
	Version:   fmt.Sprintf("%s (commit: %s)", conrun.Version, conrun.Commit),
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
