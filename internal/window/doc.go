// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package window provides an interactive terminal window drawn below the current cursor
// position, without taking over the screen.
//
// The window has three panes: a live log holding the most recent lines pushed by the caller,
// an input line with a "> " prompt and command history, and a command log showing the text
// returned by the last command typed by the user. Panes are redrawn in place: each pane
// erases exactly the lines it drew last time and draws its new content.
//
// Key events and pane updates are processed by a single bubbletea event loop, so the panes
// are never mutated concurrently.
package window
