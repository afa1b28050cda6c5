// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package window

import (
	"slices"
	"strings"

	"github.com/matt-FFFFFF/conrun/internal/color"
)

// Prompt is the prefix of the input line.
const Prompt = "> "

// splitText trims text and splits it into lines. Blank text has no lines.
func splitText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	return strings.Split(text, "\n")
}

type liveLine struct {
	text  string
	isErr bool
}

func (l liveLine) render() string {
	if l.isErr {
		return color.Colorize(l.text, color.FgRed)
	}

	return l.text
}

// LiveLog is the pane holding the most recent lines pushed by the caller.
// It is drawn above the input line.
type LiveLog struct {
	size  int
	lines []liveLine
	prev  []liveLine // What is on screen
}

// NewLiveLog creates a LiveLog keeping at most size lines.
func NewLiveLog(size int) *LiveLog {
	if size <= 0 {
		size = DefaultWindowSize
	}

	return &LiveLog{size: size}
}

// Push appends the lines of text, evicting the oldest lines beyond capacity,
// and returns the operations redrawing the pane on stream s.
// Lines pushed to Stderr are red. Text is trimmed first, so blank text adds no line at all
// rather than an empty one.
// The cursor must be on the line just below the pane and is left there.
func (l *LiveLog) Push(text string, s Stream) []Op {
	l.prev = slices.Clone(l.lines)

	for _, line := range splitText(text) {
		l.lines = append(l.lines, liveLine{text: line, isErr: s == Stderr})
	}

	if over := len(l.lines) - l.size; over > 0 {
		l.lines = slices.Delete(l.lines, 0, over)
	}

	ops := make([]Op, 0, 2*len(l.prev)+3*len(l.lines))

	for range l.prev {
		ops = append(ops, CursorUp(s, 1), EraseLine(s))
	}

	for _, line := range l.lines {
		ops = append(ops, EraseLine(s), Write(s, "\r"+line.render()), Write(s, "\n"))
	}

	l.prev = slices.Clone(l.lines)

	return ops
}

// Lines returns the lines currently held, oldest first.
func (l *LiveLog) Lines() []string {
	lines := make([]string, len(l.lines))
	for i, line := range l.lines {
		lines[i] = line.text
	}

	return lines
}

// CmdLog is the pane showing the output of the last command typed by the user.
// It is drawn below the input line.
type CmdLog struct {
	lines []string
	prev  []string // What is on screen
}

// Replace replaces the content of the pane with the lines of text and redraws it.
func (c *CmdLog) Replace(text string) []Op {
	c.lines = splitText(text)

	return c.Redraw()
}

// Redraw erases what the pane drew last time and draws its current content.
// The cursor must be on the input line and is left there.
func (c *CmdLog) Redraw() []Op {
	ops := make([]Op, 0, 2*len(c.prev)+2*len(c.lines)+2)

	for range c.prev {
		ops = append(ops, Write(Stdout, "\r\n"), EraseLine(Stdout))
	}

	ops = append(ops, CursorUp(Stdout, len(c.prev)))

	for _, line := range c.lines {
		ops = append(ops, Write(Stdout, "\r\n"), EraseLine(Stdout), Write(Stdout, line))
	}

	ops = append(ops, CursorUp(Stdout, len(c.lines)))

	c.prev = slices.Clone(c.lines)

	return ops
}

// Lines returns the lines currently shown.
func (c *CmdLog) Lines() []string {
	return slices.Clone(c.lines)
}

// InputLine is the editable prompt. The cursor is always at the end of the line.
type InputLine struct {
	content []rune
}

// Append appends s to the content.
func (in *InputLine) Append(s string) {
	in.content = append(in.content, []rune(s)...)
}

// Backspace removes the last rune of the content. It reports whether there was one.
func (in *InputLine) Backspace() bool {
	if len(in.content) == 0 {
		return false
	}

	in.content = in.content[:len(in.content)-1]

	return true
}

// Set replaces the content.
func (in *InputLine) Set(s string) {
	in.content = []rune(s)
}

// Reset clears the content.
func (in *InputLine) Reset() {
	in.content = nil
}

// Content returns the typed text, without the prompt.
func (in *InputLine) Content() string {
	return string(in.content)
}

// String returns the line as drawn, prompt included.
func (in *InputLine) String() string {
	return Prompt + string(in.content)
}

// Redraw returns the operations redrawing the input line.
func (in *InputLine) Redraw() []Op {
	return []Op{EraseLine(Stdout), Write(Stdout, "\r"+in.String())}
}
