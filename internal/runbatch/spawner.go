// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/matt-FFFFFF/conrun/internal/ctxlog"
)

var (
	// ErrEmptyArgv is returned when a command has no executable.
	ErrEmptyArgv = errors.New("command has no executable")
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrNonZeroExit is returned when the process exits with a non-zero status or is terminated by a signal.
	ErrNonZeroExit = errors.New("command failed")
	// ErrProcessKilled is returned when the process was killed because its context was done.
	ErrProcessKilled = errors.New("process killed")
)

// Spawner starts processes.
type Spawner interface {
	// Spawn starts argv[0] with argv[1:] as arguments. The process is killed when ctx is done.
	Spawn(ctx context.Context, argv []string, opts SpawnOptions) (Process, error)
}

// Process is a started process. Both output streams must be read to EOF before Wait is called.
type Process interface {
	Stdout() io.Reader
	Stderr() io.Reader
	// Wait waits for the process to exit. It returns nil for exit status 0.
	Wait() error
}

// SpawnError is the failure of one command attempt.
type SpawnError struct {
	Stderrs []string // Raw stderr chunks, in order
	Message string   // Generic failure message, e.g. "command failed: exit status 1"
	Err     error    // Underlying error
}

// Error implements the error interface.
func (e *SpawnError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SpawnError) Unwrap() error {
	return e.Err
}

// ErrMsg returns the concatenated stderr, or the generic message if nothing was written to stderr.
func (e *SpawnError) ErrMsg() string {
	if s := strings.Join(e.Stderrs, ""); s != "" {
		return s
	}

	return e.Message
}

var _ Spawner = OSSpawner{}

// OSSpawner starts real operating system processes.
type OSSpawner struct{}

// Spawn implements Spawner. Stdin of the child is the null device.
func (OSSpawner) Spawn(ctx context.Context, argv []string, opts SpawnOptions) (Process, error) {
	logger := ctxlog.Logger(ctx).With("argv", argv)

	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrEmptyArgv
	}

	path, err := lookPath(argv[0], opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCouldNotStartProcess, err)
	}

	env := os.Environ()
	for _, k := range slices.Sorted(maps.Keys(opts.Env)) {
		env = append(env, fmt.Sprintf("%s=%s", k, opts.Env[k]))
	}

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToCreatePipe, err)
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		closeAll(rOut, wOut)
		return nil, fmt.Errorf("%w: %w", ErrFailedToCreatePipe, err)
	}

	devNull, err := os.Open(os.DevNull)
	if err != nil {
		closeAll(rOut, wOut, rErr, wErr)
		return nil, fmt.Errorf("%w: %w", ErrCouldNotStartProcess, err)
	}

	args := slices.Concat([]string{filepath.Base(path)}, argv[1:])

	logger.Debug("starting process", "path", path, "cwd", opts.Dir)

	ps, err := os.StartProcess(path, args, &os.ProcAttr{
		Dir:   opts.Dir,
		Env:   env,
		Files: []*os.File{devNull, wOut, wErr},
	})

	// The child holds its own copies of the write ends.
	closeAll(wOut, wErr, devNull)

	if err != nil {
		closeAll(rOut, rErr)
		return nil, fmt.Errorf("%w: %w", ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	p := &osProcess{
		ps:     ps,
		stdout: rOut,
		stderr: rErr,
		done:   make(chan struct{}),
	}

	go p.watch(ctx)

	return p, nil
}

type osProcess struct {
	ps     *os.Process
	stdout *os.File
	stderr *os.File
	done   chan struct{}
	killed atomic.Bool
}

func (p *osProcess) Stdout() io.Reader { return p.stdout }

func (p *osProcess) Stderr() io.Reader { return p.stderr }

// watch kills the process when the context is done before the process exits.
func (p *osProcess) watch(ctx context.Context) {
	select {
	case <-ctx.Done():
		p.killed.Store(true)
		killPs(ctx, p.ps)
	case <-p.done:
	}
}

func (p *osProcess) Wait() error {
	state, err := p.ps.Wait()

	close(p.done)
	closeAll(p.stdout, p.stderr)

	if err != nil {
		return fmt.Errorf("%w: %w", ErrNonZeroExit, err)
	}

	if p.killed.Load() {
		return fmt.Errorf("%w: %w: %s", ErrNonZeroExit, ErrProcessKilled, state)
	}

	if !state.Success() {
		return fmt.Errorf("%w: %s", ErrNonZeroExit, state)
	}

	return nil
}

// killPs kills the process, ignoring processes that already finished.
func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Info(ctx, "process killed", "pid", ps.Pid)
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
