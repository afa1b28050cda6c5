// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
)

// runSerial runs the commands one after the other. A command is only spawned once the previous
// one has settled, whatever its outcome. Commands not started before ctx is done fail with ctx.Err().
func runSerial(ctx context.Context, commands []Command, run runFunc) []Result {
	results := make([]Result, 0, len(commands))

	for i, cmd := range commands {
		if err := ctx.Err(); err != nil {
			results = append(results, NewFailure(err))
			continue
		}

		results = append(results, run(ctx, i, cmd))
	}

	return results
}
