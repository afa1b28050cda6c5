// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"strings"
)

// Command is a single external command of a batch. It is not modified by the runner.
type Command struct {
	Name       string       // Display name, also matched by the --only patterns
	Argv       []string     // Argv[0] is the executable
	Options    SpawnOptions // Process options
	RetryCount int          // Additional attempts after a failure
}

// SpawnOptions configures the spawned process.
type SpawnOptions struct {
	Dir string            // Working directory, empty for the current one
	Env map[string]string // Added to the inherited environment
}

// String returns the argv joined by spaces.
func (c Command) String() string {
	return strings.Join(c.Argv, " ")
}
