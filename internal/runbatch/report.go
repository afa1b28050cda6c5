// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/conrun/internal/color"
)

const (
	divider      = "-------------------------------------------------"
	successGlyph = "✔"
	failureGlyph = "✘"
)

// ReportEntry is the outcome of one command of a batch.
type ReportEntry struct {
	Index   int        // Position in the filtered batch
	Command Command    // The command as given
	Result  Result     // Outcome after retries
	Color   color.Code // Palette color of the command
}

// Report is the outcome of a batch, in batch order.
type Report struct {
	ID      string
	Entries []ReportEntry
	Elapsed time.Duration
}

// Succeeded returns the number of successful commands.
func (r *Report) Succeeded() int {
	n := 0

	for _, e := range r.Entries {
		if e.Result.Kind == Success {
			n++
		}
	}

	return n
}

// Failed returns the number of failed commands.
func (r *Report) Failed() int {
	return len(r.Entries) - r.Succeeded()
}

// HasFailure reports whether at least one command failed.
func (r *Report) HasFailure() bool {
	return r.Failed() > 0
}

// Write renders the report: a divider, the total time, then one line per command
// with the titles padded to the same width.
func (r *Report) Write(w io.Writer) error {
	sb := strings.Builder{}

	sb.WriteString(divider)
	sb.WriteString("\n")
	sb.WriteString(color.Colorize(fmt.Sprintf("[stats of command results] total time: %dms", r.Elapsed.Milliseconds()), color.FgBlue))
	sb.WriteString("\n")

	titles := make([]string, len(r.Entries))
	width := 0

	for i, e := range r.Entries {
		titles[i] = e.title()
		width = max(width, lipgloss.Width(titles[i]))
	}

	for i, e := range r.Entries {
		sb.WriteString(titles[i])
		sb.WriteString(strings.Repeat(" ", width-lipgloss.Width(titles[i])))
		sb.WriteString(" ")
		sb.WriteString(e.content())
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())

	return err //nolint:wrapcheck
}

// String returns the rendered report.
func (r *Report) String() string {
	sb := strings.Builder{}
	_ = r.Write(&sb)

	return sb.String()
}

func (e ReportEntry) title() string {
	glyph := color.Colorize(successGlyph, color.FgGreen)
	if e.Result.Kind != Success {
		glyph = color.Colorize(failureGlyph, color.FgRed)
	}

	return glyph + " " + color.Colorize(fmt.Sprintf("%d.[%s]", e.Index, e.Command.Name), e.Color)
}

func (e ReportEntry) content() string {
	if e.Result.Kind == Success {
		return color.Colorize(e.Command.String(), color.FgGreen)
	}

	return color.Colorize(e.Command.String()+", "+strings.TrimRight(e.Result.ErrMsg, "\r\n"), color.FgRed)
}
