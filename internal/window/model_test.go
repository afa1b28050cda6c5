// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package window

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/conrun/internal/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(executor Executor) (*model, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	return newModel(context.Background(), 3, executor, stdout, stderr), stdout, stderr
}

func typeText(m *model, s string) {
	for _, r := range s {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}

		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m *model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

// submit presses enter and feeds the result of the command back into the model.
func submit(t *testing.T, m *model) {
	t.Helper()

	cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	m.Update(cmd())
}

func TestModel_Typing(t *testing.T) {
	m, stdout, _ := newTestModel(nil)

	typeText(m, "run a")
	assert.Equal(t, "run a", m.input.Content())
	assert.Contains(t, stdout.String(), "\r> run a")

	press(m, tea.KeyBackspace)
	assert.Equal(t, "run ", m.input.Content())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true})
	assert.Equal(t, "run ", m.input.Content())
}

func TestModel_BackspaceStopsAtPrompt(t *testing.T) {
	m, stdout, _ := newTestModel(nil)

	press(m, tea.KeyBackspace)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "> ", m.input.String())
}

func TestModel_SubmitRunsExecutor(t *testing.T) {
	var got []string

	m, stdout, _ := newTestModel(func(_ context.Context, cmd string) (string, error) {
		got = append(got, cmd)
		return "result of " + cmd, nil
	})

	typeText(m, "  list ")
	submit(t, m)

	assert.Equal(t, []string{"list"}, got)
	assert.Equal(t, []string{"result of list"}, m.cmdLog.Lines())
	assert.Equal(t, "", m.input.Content())
	assert.Equal(t, []string{"list"}, m.history.Entries())
	assert.Contains(t, stdout.String(), "result of list")
}

func TestModel_SubmitBlankDoesNothing(t *testing.T) {
	called := false

	m, _, _ := newTestModel(func(context.Context, string) (string, error) {
		called = true
		return "", nil
	})

	typeText(m, "   ")
	assert.Nil(t, press(m, tea.KeyEnter))
	assert.False(t, called)
	assert.Equal(t, 0, m.history.Len())
	assert.Equal(t, "", m.input.Content())
}

func TestModel_ExecutorError(t *testing.T) {
	restore := color.SetEnabled(false)
	defer restore()

	m, _, _ := newTestModel(func(context.Context, string) (string, error) {
		return "ignored", errors.New("no such command\ndetails")
	})

	typeText(m, "nope")
	submit(t, m)

	assert.Equal(t, []string{"error: no such command"}, m.cmdLog.Lines())
}

func TestModel_HistoryRecall(t *testing.T) {
	m, _, _ := newTestModel(nil)

	press(m, tea.KeyUp)
	assert.Equal(t, "", m.input.Content(), "up on empty history is a no-op")

	typeText(m, "first")
	submit(t, m)
	typeText(m, "second")
	submit(t, m)
	typeText(m, "second")
	submit(t, m)

	assert.Equal(t, []string{"first", "second"}, m.history.Entries())

	press(m, tea.KeyDown)
	assert.Equal(t, "", m.input.Content(), "down past the newest entry is a no-op")

	press(m, tea.KeyUp)
	assert.Equal(t, "second", m.input.Content())

	press(m, tea.KeyUp)
	assert.Equal(t, "first", m.input.Content())

	press(m, tea.KeyUp)
	assert.Equal(t, "first", m.input.Content())

	press(m, tea.KeyDown)
	assert.Equal(t, "second", m.input.Content())

	press(m, tea.KeyDown)
	assert.Equal(t, "second", m.input.Content())
}

func TestModel_LogRedrawsAllPanes(t *testing.T) {
	m, stdout, stderr := newTestModel(func(context.Context, string) (string, error) {
		return "done", nil
	})

	typeText(m, "x")
	submit(t, m)
	typeText(m, "ab")
	stdout.Reset()

	m.Update(logMsg{text: "one\ntwo\nthree\nfour"})

	assert.Equal(t, []string{"two", "three", "four"}, m.live.Lines())

	out := stdout.String()
	assert.Contains(t, out, "\rtwo")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "\r> ab")
	assert.NotContains(t, out, "\rone")
	assert.Empty(t, stderr.String())

	m.Update(logMsg{text: "oops", isErr: true})
	assert.Contains(t, stderr.String(), "oops")
	assert.Equal(t, []string{"three", "four", "oops"}, m.live.Lines())
}

func TestModel_CtrlCQuits(t *testing.T) {
	m, _, _ := newTestModel(nil)

	cmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.interrupted)
}
