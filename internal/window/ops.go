// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package window

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// OpKind is the kind of a draw operation.
type OpKind int

const (
	// OpCursorUp moves the cursor up N lines.
	OpCursorUp OpKind = iota
	// OpEraseLine erases the line the cursor is on.
	OpEraseLine
	// OpWrite writes Text.
	OpWrite
)

// Stream selects the output stream of a draw operation.
type Stream int

const (
	// Stdout is the standard output stream.
	Stdout Stream = iota
	// Stderr is the standard error stream.
	Stderr
)

// Op is a single draw operation.
type Op struct {
	Kind   OpKind
	N      int
	Text   string
	Stream Stream
}

// CursorUp returns an operation moving the cursor up n lines.
func CursorUp(s Stream, n int) Op {
	return Op{Kind: OpCursorUp, N: n, Stream: s}
}

// EraseLine returns an operation erasing the current line.
func EraseLine(s Stream) Op {
	return Op{Kind: OpEraseLine, Stream: s}
}

// Write returns an operation writing text.
func Write(s Stream, text string) Op {
	return Op{Kind: OpWrite, Text: text, Stream: s}
}

// String returns the bytes the operation sends to the terminal.
func (o Op) String() string {
	switch o.Kind {
	case OpCursorUp:
		// ansi.CursorUp(0) still moves one line.
		if o.N <= 0 {
			return ""
		}

		return ansi.CursorUp(o.N)
	case OpEraseLine:
		return ansi.EraseEntireLine
	case OpWrite:
		return o.Text
	default:
		return ""
	}
}

// Render writes ops in order. Consecutive operations on the same stream are sent with a
// single Write call.
func Render(ops []Op, stdout, stderr io.Writer) error {
	sb := strings.Builder{}
	current := Stdout

	flush := func() error {
		if sb.Len() == 0 {
			return nil
		}

		w := stdout
		if current == Stderr {
			w = stderr
		}

		_, err := io.WriteString(w, sb.String())
		sb.Reset()

		return err //nolint:wrapcheck
	}

	for _, op := range ops {
		if op.Stream != current {
			if err := flush(); err != nil {
				return err
			}

			current = op.Stream
		}

		sb.WriteString(op.String())
	}

	return flush()
}
