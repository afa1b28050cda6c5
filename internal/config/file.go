// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"maps"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/conrun/internal/runbatch"
)

var (
	// ErrInvalidConfig is returned when a command file fails validation.
	ErrInvalidConfig = errors.New("invalid command file")
	// ErrNoCommands is returned when a command file has no commands.
	ErrNoCommands = errors.New("no commands specified")
	// ErrEmptyName is returned when a command has no name.
	ErrEmptyName = errors.New("command name is empty")
	// ErrDuplicateName is returned when two commands have the same name.
	ErrDuplicateName = errors.New("duplicate command name")
	// ErrEmptyArgv is returned when a command has no executable.
	ErrEmptyArgv = errors.New("command argv is empty")
	// ErrNegativeRetry is returned when a command has a negative retry count.
	ErrNegativeRetry = errors.New("command retry count is negative")
)

// File is the content of a command file.
type File struct {
	Name        string              `yaml:"name"        hcl:"name,optional"`
	Description string              `yaml:"description" hcl:"description,optional"`
	Commands    []CommandDefinition `yaml:"commands"    hcl:"command,block"`
}

// CommandDefinition is one command of a command file.
type CommandDefinition struct {
	Name  string            `yaml:"name"          hcl:"name,label"`
	Argv  []string          `yaml:"argv"          hcl:"argv"`
	Cwd   string            `yaml:"cwd,omitempty" hcl:"cwd,optional"`
	Env   map[string]string `yaml:"env,omitempty" hcl:"env,optional"`
	Retry int               `yaml:"retry"         hcl:"retry,optional"`
}

// Validate checks every command and reports all problems at once.
func (f *File) Validate() error {
	if len(f.Commands) == 0 {
		return errors.Join(ErrInvalidConfig, ErrNoCommands)
	}

	var result error

	seen := make(map[string]int, len(f.Commands))

	for i, c := range f.Commands {
		if c.Name == "" {
			result = multierror.Append(result, fmt.Errorf("command %d: %w", i, ErrEmptyName))
		} else if first, ok := seen[c.Name]; ok {
			result = multierror.Append(result, fmt.Errorf("command %d: %w: %q is also command %d", i, ErrDuplicateName, c.Name, first))
		} else {
			seen[c.Name] = i
		}

		if len(c.Argv) == 0 || c.Argv[0] == "" {
			result = multierror.Append(result, fmt.Errorf("command %d (%s): %w", i, c.Name, ErrEmptyArgv))
		}

		if c.Retry < 0 {
			result = multierror.Append(result, fmt.Errorf("command %d (%s): %w", i, c.Name, ErrNegativeRetry))
		}
	}

	if result != nil {
		return errors.Join(ErrInvalidConfig, result)
	}

	return nil
}

// Runnable converts the definitions into runnable commands, in file order.
func (f *File) Runnable() []runbatch.Command {
	commands := make([]runbatch.Command, len(f.Commands))

	for i, c := range f.Commands {
		commands[i] = runbatch.Command{
			Name: c.Name,
			Argv: append([]string(nil), c.Argv...),
			Options: runbatch.SpawnOptions{
				Dir: c.Cwd,
				Env: maps.Clone(c.Env),
			},
			RetryCount: c.Retry,
		}
	}

	return commands
}
