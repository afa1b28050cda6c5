// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matt-FFFFFF/conrun/internal/color"
	"github.com/matt-FFFFFF/conrun/internal/ctxlog"
	"github.com/matt-FFFFFF/conrun/internal/retry"
)

// ErrInvalidPattern is returned when a filter pattern is not a valid regular expression.
var ErrInvalidPattern = errors.New("invalid command filter pattern")

// Runner runs batches of commands. It holds everything a batch needs, so several
// independent runners can coexist.
type Runner struct {
	stdout  io.Writer
	stderr  io.Writer
	palette []color.Code
	spawner Spawner
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets the writers receiving command output and the report.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithSpawner replaces the OSSpawner.
func WithSpawner(s Spawner) Option {
	return func(r *Runner) {
		r.spawner = s
	}
}

// WithPalette replaces the default palette.
func WithPalette(p []color.Code) Option {
	return func(r *Runner) {
		r.palette = slices.Clone(p)
	}
}

// Palette returns a copy of the colors the runner assigns to commands by position.
func (r *Runner) Palette() []color.Code {
	return slices.Clone(r.palette)
}

// NewRunner creates a runner writing to os.Stdout and os.Stderr with the default palette.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		palette: color.DefaultPalette(),
		spawner: OSSpawner{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RunOptions selects and orders the commands of a batch.
type RunOptions struct {
	Onlys    []string // Regular expressions matched against command names, blank ones are ignored
	Sequence bool     // Run one command at a time instead of all at once
}

// Run filters commands, runs them and writes the report to the runner's stdout.
// It returns once every command has settled and never fails: command failures are in the report.
// An invalid filter pattern is logged and matches nothing.
func (r *Runner) Run(ctx context.Context, commands []Command, opts RunOptions) *Report {
	id := uuid.NewString()
	logger := ctxlog.Logger(ctx).With("batch", id)
	ctx = ctxlog.New(ctx, logger)

	selected, err := Filter(commands, opts.Onlys)
	if err != nil {
		logger.Warn("ignoring invalid command filter", "error", err)
	}

	logger.Debug("running batch", "commands", len(selected), "sequence", opts.Sequence)

	mu := &sync.Mutex{}
	exec := NewExecutor(r.spawner, &syncWriter{w: r.stdout, mu: mu}, &syncWriter{w: r.stderr, mu: mu})

	start := time.Now()

	var results []Result
	if opts.Sequence {
		results = runSerial(ctx, selected, r.runOne(exec))
	} else {
		results = runParallel(ctx, selected, r.runOne(exec))
	}

	report := &Report{
		ID:      id,
		Elapsed: time.Since(start),
		Entries: make([]ReportEntry, len(selected)),
	}

	for i, cmd := range selected {
		report.Entries[i] = ReportEntry{
			Index:   i,
			Command: cmd,
			Result:  results[i],
			Color:   color.Pick(r.palette, i),
		}
	}

	logger.Info("batch finished",
		"elapsed", report.Elapsed.String(),
		"succeeded", report.Succeeded(),
		"failed", report.Failed())

	if err := report.Write(&syncWriter{w: r.stdout, mu: mu}); err != nil {
		logger.Error("failed to write report", "error", err)
	}

	return report
}

type runFunc func(ctx context.Context, index int, cmd Command) Result

// runOne returns the per-command handler: the executor wrapped with the command's retry budget.
func (r *Runner) runOne(exec *Executor) runFunc {
	return func(ctx context.Context, index int, cmd Command) Result {
		c := color.Pick(r.palette, index)
		op := retry.Wrap(func(ctx context.Context) (struct{}, error) {
			return struct{}{}, exec.Execute(ctx, cmd, c)
		}, cmd.RetryCount)

		if _, err := op(ctx); err != nil {
			return NewFailure(err)
		}

		return NewSuccess()
	}
}

// Filter keeps the commands whose name matches at least one pattern.
// Patterns are trimmed and blank ones dropped; with no pattern left every command is kept.
// Invalid patterns match nothing and are reported in the returned error.
func Filter(commands []Command, onlys []string) ([]Command, error) {
	patterns, active, err := compilePatterns(onlys)
	if !active {
		return slices.Clone(commands), err
	}

	selected := make([]Command, 0, len(commands))

	for _, cmd := range commands {
		if slices.ContainsFunc(patterns, func(re *regexp.Regexp) bool { return re.MatchString(cmd.Name) }) {
			selected = append(selected, cmd)
		}
	}

	return selected, err
}

// ValidatePatterns reports every pattern that is not a valid regular expression.
func ValidatePatterns(onlys []string) error {
	_, _, err := compilePatterns(onlys)
	return err
}

func compilePatterns(onlys []string) ([]*regexp.Regexp, bool, error) {
	var (
		patterns []*regexp.Regexp
		errs     []error
		active   bool
	)

	for _, only := range onlys {
		only = strings.TrimSpace(only)
		if only == "" {
			continue
		}

		active = true

		re, err := regexp.Compile(only)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, only, err))
			continue
		}

		patterns = append(patterns, re)
	}

	return patterns, active, errors.Join(errs...)
}

// syncWriter serializes writes from concurrently running commands.
type syncWriter struct {
	w  io.Writer
	mu *sync.Mutex
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.w.Write(p) //nolint:wrapcheck
}
