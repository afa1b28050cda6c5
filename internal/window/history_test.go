// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package window

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_SkipsConsecutiveDuplicates(t *testing.T) {
	h := NewHistory(0)

	h.Push("ls")
	h.Push("ls")
	h.Push("run")
	h.Push("ls")

	assert.Equal(t, []string{"ls", "run", "ls"}, h.Entries())
	assert.Equal(t, 3, h.Cursor())
}

func TestHistory_EvictsOldest(t *testing.T) {
	h := NewHistory(DefaultHistorySize)

	for i := range DefaultHistorySize + 5 {
		h.Push(strconv.Itoa(i))
	}

	entries := h.Entries()
	require.Len(t, entries, DefaultHistorySize)
	assert.Equal(t, "5", entries[0])
	assert.Equal(t, strconv.Itoa(DefaultHistorySize+4), entries[len(entries)-1])
	assert.Equal(t, DefaultHistorySize, h.Cursor())
}

func TestHistory_Navigation(t *testing.T) {
	h := NewHistory(10)

	_, ok := h.Prev()
	assert.False(t, ok, "up on empty history")

	_, ok = h.Next()
	assert.False(t, ok, "down on empty history")

	h.Push("a")
	h.Push("b")

	_, ok = h.Next()
	assert.False(t, ok, "down past the newest entry")

	got, ok := h.Prev()
	require.True(t, ok)
	assert.Equal(t, "b", got)

	_, ok = h.Next()
	assert.False(t, ok, "down at the newest entry")

	got, ok = h.Prev()
	require.True(t, ok)
	assert.Equal(t, "a", got)

	_, ok = h.Prev()
	assert.False(t, ok, "up at the oldest entry")
	assert.Equal(t, 0, h.Cursor())

	got, ok = h.Next()
	require.True(t, ok)
	assert.Equal(t, "b", got)
}
