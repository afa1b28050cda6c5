// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package window

import "slices"

// DefaultHistorySize is the number of commands remembered by the input line.
const DefaultHistorySize = 100

// History is the list of submitted commands with a cursor used for recall.
// The cursor is in [0, Len()], Len() meaning past the newest entry.
type History struct {
	size    int
	entries []string
	cursor  int
}

// NewHistory creates a History keeping at most size entries.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}

	return &History{size: size}
}

// Push appends cmd unless it equals the newest entry, evicts the oldest entries beyond
// capacity and moves the cursor past the newest entry.
func (h *History) Push(cmd string) {
	if len(h.entries) == 0 || h.entries[len(h.entries)-1] != cmd {
		h.entries = append(h.entries, cmd)
	}

	if over := len(h.entries) - h.size; over > 0 {
		h.entries = slices.Delete(h.entries, 0, over)
	}

	h.cursor = len(h.entries)
}

// Prev moves the cursor to the previous entry and returns it.
// It returns false when the cursor is already on the oldest entry.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 || h.cursor <= 0 {
		return "", false
	}

	h.cursor--

	return h.entries[h.cursor], true
}

// Next moves the cursor to the next entry and returns it.
// It returns false when the cursor is on the newest entry or past it.
func (h *History) Next() (string, bool) {
	if len(h.entries) == 0 || h.cursor >= len(h.entries)-1 {
		return "", false
	}

	h.cursor++

	return h.entries[h.cursor], true
}

// Entries returns the entries, oldest first.
func (h *History) Entries() []string {
	return slices.Clone(h.entries)
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns the position of the cursor.
func (h *History) Cursor() int {
	return h.cursor
}
