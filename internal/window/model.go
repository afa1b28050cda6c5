// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package window

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/conrun/internal/color"
	"github.com/matt-FFFFFF/conrun/internal/ctxlog"
)

// Executor runs a command typed by the user and returns the text to show in the command log.
type Executor func(ctx context.Context, cmd string) (string, error)

func noopExecutor(context.Context, string) (string, error) {
	return "", nil
}

// logMsg carries text pushed to the live log.
type logMsg struct {
	text  string
	isErr bool
}

// cmdResultMsg carries the outcome of a command typed by the user.
type cmdResultMsg struct {
	cmd  string
	text string
	err  error
}

// model owns the panes. It is only ever touched by the bubbletea event loop.
type model struct {
	ctx         context.Context
	keys        keyMap
	live        *LiveLog
	cmdLog      *CmdLog
	input       *InputLine
	history     *History
	executor    Executor
	stdout      io.Writer
	stderr      io.Writer
	interrupted bool
}

func newModel(ctx context.Context, windowSize int, executor Executor, stdout, stderr io.Writer) *model {
	if executor == nil {
		executor = noopExecutor
	}

	return &model{
		ctx:      ctx,
		keys:     defaultKeyMap(),
		live:     NewLiveLog(windowSize),
		cmdLog:   &CmdLog{},
		input:    &InputLine{},
		history:  NewHistory(DefaultHistorySize),
		executor: executor,
		stdout:   stdout,
		stderr:   stderr,
	}
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case logMsg:
		s := Stdout
		if msg.isErr {
			s = Stderr
		}

		ops := m.live.Push(msg.text, s)
		ops = append(ops, m.cmdLog.Redraw()...)
		m.draw(append(ops, m.input.Redraw()...))

		return m, nil

	case cmdResultMsg:
		text := msg.text
		if msg.err != nil {
			ctxlog.Debug(m.ctx, "command failed", "command", msg.cmd, "error", msg.err)
			text = color.Colorize("error: "+firstLine(msg.err.Error()), color.FgRed)
		}

		ops := m.cmdLog.Replace(text)
		m.draw(append(ops, m.input.Redraw()...))

		return m, nil
	}

	return m, nil
}

// View implements tea.Model. The program runs without a renderer, panes draw themselves.
func (m *model) View() string {
	return ""
}

func (m *model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.interrupted = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()

	case key.Matches(msg, m.keys.Backspace):
		if m.input.Backspace() {
			m.draw(m.input.Redraw())
		}

	case key.Matches(msg, m.keys.Prev):
		if cmd, ok := m.history.Prev(); ok {
			m.input.Set(cmd)
			m.draw(m.input.Redraw())
		}

	case key.Matches(msg, m.keys.Next):
		if cmd, ok := m.history.Next(); ok {
			m.input.Set(cmd)
			m.draw(m.input.Redraw())
		}

	case msg.Type == tea.KeyRunes && !msg.Alt:
		m.input.Append(string(msg.Runes))
		m.draw(m.input.Redraw())

	case msg.Type == tea.KeySpace:
		m.input.Append(" ")
		m.draw(m.input.Redraw())
	}

	return m, nil
}

// submit resets the input line and, for a non-blank command, records it and returns the
// tea.Cmd executing it.
func (m *model) submit() tea.Cmd {
	cmd := strings.TrimSpace(m.input.Content())

	m.input.Reset()
	m.draw(m.input.Redraw())

	if cmd == "" {
		return nil
	}

	m.history.Push(cmd)

	ctx, executor := m.ctx, m.executor

	return func() tea.Msg {
		text, err := executor(ctx, cmd)
		return cmdResultMsg{cmd: cmd, text: text, err: err}
	}
}

func (m *model) draw(ops []Op) {
	if err := Render(ops, m.stdout, m.stderr); err != nil {
		ctxlog.Warn(m.ctx, "failed to draw window", "error", err)
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}

	return s
}
