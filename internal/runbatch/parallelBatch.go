// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"sync"
)

// runParallel launches every command at once and waits for all of them to settle.
// Results keep the order of commands regardless of completion order.
func runParallel(ctx context.Context, commands []Command, run runFunc) []Result {
	results := make([]Result, len(commands))
	wg := &sync.WaitGroup{}

	for i, cmd := range commands {
		wg.Add(1)

		go func() {
			defer wg.Done()

			results[i] = run(ctx, i, cmd)
		}()
	}

	wg.Wait()

	return results
}
