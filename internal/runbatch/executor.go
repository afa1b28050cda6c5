// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/conrun/internal/color"
	"github.com/matt-FFFFFF/conrun/internal/ctxlog"
	"github.com/matt-FFFFFF/conrun/internal/linebuffer"
)

// Executor spawns one command and multiplexes its output onto shared writers.
// Each batch of lines is written with a single Write call, so the writers only need to
// serialize individual writes for output of concurrent commands not to interleave.
type Executor struct {
	spawner Spawner
	stdout  io.Writer
	stderr  io.Writer
}

// NewExecutor creates an Executor writing to stdout and stderr.
func NewExecutor(spawner Spawner, stdout, stderr io.Writer) *Executor {
	return &Executor{
		spawner: spawner,
		stdout:  stdout,
		stderr:  stderr,
	}
}

// Execute runs cmd once and blocks until it has exited and both output streams are drained.
// The name in the line prefix is painted with c. A failure is always a *SpawnError.
func (e *Executor) Execute(ctx context.Context, cmd Command, c color.Code) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	ps, err := e.spawner.Spawn(ctx, cmd.Argv, cmd.Options)
	if err != nil {
		logger.Debug("spawn failed", "error", err)

		return &SpawnError{Message: err.Error(), Err: err}
	}

	prefix := Prefix(cmd.Name, c)
	indent := strings.Repeat(" ", lipgloss.Width(prefix))

	stdout := linebuffer.New(ps.Stdout())
	stderr := linebuffer.New(ps.Stderr(), linebuffer.WithChunks())

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()
		e.stream(ctx, stdout, e.stdout, prefix, indent, noStyle)
	}()

	go func() {
		defer wg.Done()
		e.stream(ctx, stderr, e.stderr, prefix, indent, color.Style("red"))
	}()

	wg.Wait()

	if err := ps.Wait(); err != nil {
		logger.Debug("command attempt failed", "error", err)

		return &SpawnError{
			Stderrs: stderr.Chunks(),
			Message: err.Error(),
			Err:     err,
		}
	}

	return nil
}

func (e *Executor) stream(ctx context.Context, lr *linebuffer.Reader, w io.Writer, prefix, indent string, style func(string) string) {
	for lines, err := range lr.Lines() {
		if err != nil {
			ctxlog.Warn(ctx, "output stream error", "error", err)
			continue
		}

		if _, err := io.WriteString(w, FormatLines(lines, prefix, indent, style)); err != nil {
			ctxlog.Warn(ctx, "failed to write command output", "error", err)
		}
	}
}

// Prefix returns "[name] " with name painted in c.
func Prefix(name string, c color.Code) string {
	return "[" + color.Colorize(name, c) + "] "
}

// FormatLines renders a batch of lines: the first one after prefix, the others after indent.
// Every line is passed through style and terminated by "\n".
func FormatLines(lines []string, prefix, indent string, style func(string) string) string {
	if style == nil {
		style = noStyle
	}

	sb := strings.Builder{}

	for i, line := range lines {
		if i == 0 {
			sb.WriteString(prefix)
		} else {
			sb.WriteString(indent)
		}

		sb.WriteString(style(line))
		sb.WriteString("\n")
	}

	return sb.String()
}

func noStyle(s string) string { return s }
