// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package window

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/matt-FFFFFF/conrun/internal/color"
	"github.com/matt-FFFFFF/conrun/internal/ctxlog"
	"github.com/matt-FFFFFF/conrun/internal/runbatch"
)

var (
	// ErrUnknownCommand is returned when the user types a command the window does not know.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrBatchRunning is returned when a batch is started while another one is running.
	ErrBatchRunning = errors.New("a batch is already running")
)

const helpText = `help               show this help
list               list the commands of the command file
run [PATTERN...]   run the commands, or only those whose name matches a pattern
report             show the report of the last batch
clear              clear this pane`

// session holds the commands of the window and the state of its batches.
// The executor may be called while a batch is running, so the state is guarded.
type session struct {
	commands []runbatch.Command
	sequence bool
	runner   *runbatch.Runner
	mutex    sync.Mutex
	running  bool
	last     *runbatch.Report
	wg       sync.WaitGroup
}

// start runs a batch in the background.
func (s *session) start(ctx context.Context, onlys []string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return ErrBatchRunning
	}

	s.running = true
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		report := s.runner.Run(ctx, s.commands, runbatch.RunOptions{
			Onlys:    onlys,
			Sequence: s.sequence,
		})

		s.mutex.Lock()
		defer s.mutex.Unlock()

		s.running = false
		s.last = report
	}()

	return nil
}

// wait blocks until the running batch, if any, has finished.
func (s *session) wait() {
	s.wg.Wait()
}

// execute runs a command typed in the window.
func (s *session) execute(ctx context.Context, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	ctxlog.Debug(ctx, "window command", "command", fields[0], "args", fields[1:])

	switch fields[0] {
	case "help":
		return helpText, nil

	case "list":
		return s.list(), nil

	case "run":
		if err := runbatch.ValidatePatterns(fields[1:]); err != nil {
			return "", err //nolint:wrapcheck
		}

		if err := s.start(ctx, fields[1:]); err != nil {
			return "", err
		}

		return "batch started", nil

	case "report":
		s.mutex.Lock()
		defer s.mutex.Unlock()

		switch {
		case s.running:
			return "a batch is running", nil
		case s.last == nil:
			return "no batch has finished yet", nil
		}

		return fmt.Sprintf("%s%d succeeded, %d failed", s.last.String(), s.last.Succeeded(), s.last.Failed()), nil

	case "clear":
		return "", nil
	}

	return "", fmt.Errorf("%w: %s, type help for the list of commands", ErrUnknownCommand, fields[0])
}

func (s *session) list() string {
	palette := s.runner.Palette()
	sb := strings.Builder{}

	for i, c := range s.commands {
		if i > 0 {
			sb.WriteString("\n")
		}

		fmt.Fprintf(&sb, "%d. [%s] %s", i, color.Colorize(c.Name, color.Pick(palette, i)), c.String())

		if c.RetryCount > 0 {
			fmt.Fprintf(&sb, " (retry %d)", c.RetryCount)
		}
	}

	return sb.String()
}
