// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"strings"
	"testing"
	"time"

	"github.com/matt-FFFFFF/conrun/internal/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_Write(t *testing.T) {
	restore := color.SetEnabled(false)
	defer restore()

	report := &Report{
		Elapsed: 1234 * time.Millisecond,
		Entries: []ReportEntry{
			{Index: 0, Command: Command{Name: "a", Argv: []string{"printf", "ok"}}, Result: NewSuccess()},
			{Index: 1, Command: Command{Name: "longer", Argv: []string{"false"}}, Result: Result{Kind: Failure, ErrMsg: "boom\n"}},
		},
	}

	lines := strings.Split(strings.TrimSuffix(report.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, divider, lines[0])
	assert.Equal(t, "[stats of command results] total time: 1234ms", lines[1])
	assert.Equal(t, "✔ 0.[a]      printf ok", lines[2])
	assert.Equal(t, "✘ 1.[longer] false, boom", lines[3])
}

func TestReport_WriteColored(t *testing.T) {
	restore := color.SetEnabled(true)
	defer restore()

	report := &Report{
		Entries: []ReportEntry{
			{Index: 0, Command: Command{Name: "a", Argv: []string{"true"}}, Result: NewSuccess(), Color: color.FgMagenta},
		},
	}

	out := report.String()
	assert.Contains(t, out, "\033[35m0.[a]\033[0m")
	assert.Contains(t, out, "\033[32m✔\033[0m")
	assert.Contains(t, out, "\033[32mtrue\033[0m")
}

func TestReport_Counts(t *testing.T) {
	report := &Report{Entries: []ReportEntry{
		{Result: NewSuccess()},
		{Result: Result{Kind: Failure}},
		{Result: NewSuccess()},
	}}

	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Failed())
	assert.True(t, report.HasFailure())
	assert.False(t, (&Report{}).HasFailure())
}
