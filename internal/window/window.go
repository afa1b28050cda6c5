// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package window

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/conrun/internal/ctxlog"
	"golang.org/x/term"
)

const (
	// DefaultWindowSize is the default number of lines of the live log.
	DefaultWindowSize = 10
	// Banner is printed when the window starts.
	Banner = "[conrun interactive window]"
)

var (
	// ErrInterrupted is returned by Run when the user pressed Ctrl-C.
	ErrInterrupted = errors.New("interrupted")
	// ErrRawMode is returned when the input terminal cannot be switched to raw mode.
	ErrRawMode = errors.New("failed to enable raw mode")
)

// Window is an interactive terminal window.
// LogStdText and LogErrText may be called from any goroutine, before or during Run.
type Window struct {
	ctx        context.Context
	windowSize int
	executor   Executor
	input      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	exit       func()
	model      *model
	program    *tea.Program
	mutex      sync.Mutex

	// Log text sent before Run is held in pending and drawn when Run starts.
	queueMutex sync.Mutex
	started    bool
	stopped    bool
	pending    []logMsg
}

// Option configures a Window.
type Option func(*Window)

// WithWindowSize sets the number of lines kept by the live log.
func WithWindowSize(n int) Option {
	return func(w *Window) {
		if n > 0 {
			w.windowSize = n
		}
	}
}

// WithExecutor sets the function running the commands typed by the user.
func WithExecutor(fn Executor) Option {
	return func(w *Window) {
		if fn != nil {
			w.executor = fn
		}
	}
}

// WithInput sets the source of key presses. Raw mode is enabled when it is a terminal.
func WithInput(r io.Reader) Option {
	return func(w *Window) {
		w.input = r
	}
}

// WithOutput sets the standard and error output streams.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(w *Window) {
		w.stdout = stdout
		w.stderr = stderr
	}
}

// WithExit sets a function called after the terminal has been restored, when the user
// pressed Ctrl-C.
func WithExit(fn func()) Option {
	return func(w *Window) {
		w.exit = fn
	}
}

// New creates a Window. It does nothing visible until Run is called.
func New(ctx context.Context, opts ...Option) *Window {
	w := &Window{
		ctx:        ctx,
		windowSize: DefaultWindowSize,
		executor:   noopExecutor,
		input:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}

	for _, opt := range opts {
		opt(w)
	}

	w.model = newModel(ctx, w.windowSize, w.executor, w.stdout, w.stderr)
	w.program = tea.NewProgram(
		w.model,
		tea.WithContext(ctx),
		tea.WithInput(w.input),
		tea.WithOutput(w.stdout),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)

	return w
}

// Run prints the banner and the prompt, then processes key presses and log text until the
// context is done or the user presses Ctrl-C, in which case ErrInterrupted is returned.
// The terminal is restored before Run returns.
func (w *Window) Run() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	defer w.stop()

	restore, err := w.makeRaw()
	if err != nil {
		return err
	}

	defer restore()

	ops := append([]Op{Write(Stdout, Banner+"\r\n")}, w.model.input.Redraw()...)
	if err := Render(ops, w.stdout, w.stderr); err != nil {
		return fmt.Errorf("failed to draw window: %w", err)
	}

	// The event loop is not running yet, so the model can be updated directly.
	for _, msg := range w.start() {
		w.model.Update(msg)
	}

	_, err = w.program.Run()

	restore()
	_, _ = io.WriteString(w.stdout, "\r\n")

	switch {
	case w.model.interrupted:
		ctxlog.Debug(w.ctx, "window interrupted")

		if w.exit != nil {
			w.exit()
		}

		return ErrInterrupted

	case errors.Is(err, tea.ErrProgramKilled) && w.ctx.Err() != nil:
		return w.ctx.Err() //nolint:wrapcheck
	}

	return err //nolint:wrapcheck
}

// LogStdText pushes text to the live log.
// Text sent before Run is queued and drawn once Run starts. After Run has returned the text is
// dropped. While Run is active the call blocks until the event loop has accepted the text.
func (w *Window) LogStdText(text string) {
	w.send(logMsg{text: text})
}

// LogErrText pushes text to the live log, drawn in red on the error stream.
// It queues and blocks like LogStdText.
func (w *Window) LogErrText(text string) {
	w.send(logMsg{text: text, isErr: true})
}

func (w *Window) send(msg logMsg) {
	w.queueMutex.Lock()

	switch {
	case w.stopped:
		w.queueMutex.Unlock()
		return

	case !w.started:
		w.pending = append(w.pending, msg)
		w.queueMutex.Unlock()

		return
	}

	w.queueMutex.Unlock()
	w.program.Send(msg)
}

// start hands over the queued log text. Later text goes straight to the program.
func (w *Window) start() []logMsg {
	w.queueMutex.Lock()
	defer w.queueMutex.Unlock()

	w.started = true
	pending := w.pending
	w.pending = nil

	return pending
}

func (w *Window) stop() {
	w.queueMutex.Lock()
	defer w.queueMutex.Unlock()

	w.stopped = true
	w.pending = nil
}

// StdWriter returns a writer pushing everything written to it with LogStdText.
func (w *Window) StdWriter() io.Writer {
	return &logWriter{log: w.LogStdText}
}

// ErrWriter returns a writer pushing everything written to it with LogErrText.
func (w *Window) ErrWriter() io.Writer {
	return &logWriter{log: w.LogErrText}
}

// makeRaw puts the input terminal in raw mode and returns an idempotent restore function.
func (w *Window) makeRaw() (func(), error) {
	f, ok := w.input.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() {}, nil
	}

	fd := int(f.Fd())

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRawMode, err)
	}

	var once sync.Once

	return func() {
		once.Do(func() {
			if err := term.Restore(fd, state); err != nil {
				ctxlog.Warn(w.ctx, "failed to restore terminal", "error", err)
			}
		})
	}, nil
}

type logWriter struct {
	log func(string)
}

func (lw *logWriter) Write(p []byte) (int, error) {
	lw.log(string(p))
	return len(p), nil
}
