// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package version contains the version subcommand.
package version

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/conrun"
	"github.com/urfave/cli/v3"
)

// VersionCmd prints the version and commit of the binary.
var VersionCmd = &cli.Command{
	Name:  "version",
	Usage: "Print the version of conrun",
	Action: func(_ context.Context, cmd *cli.Command) error {
		_, err := fmt.Fprintf(cmd.Root().Writer, "conrun %s (commit: %s)\n", conrun.Version, conrun.Commit)
		return err //nolint:wrapcheck
	},
}
