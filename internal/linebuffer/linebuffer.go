// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package linebuffer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"slices"
	"strings"
	"sync"
)

// DefaultChunkSize is the size of the read buffer used by New.
const DefaultChunkSize = 32 * 1024

// ErrRead is returned when the source fails with anything other than EOF.
var ErrRead = errors.New("failed to read stream")

// Reader wraps an io.Reader and splits what it reads into lines.
// Chunks is safe for concurrent use while Lines is being ranged over.
type Reader struct {
	reader     io.Reader
	size       int
	keepChunks bool
	chunks     []string
	partial    strings.Builder // Buffer for incomplete lines
	mu         sync.RWMutex
}

// Option configures a Reader.
type Option func(*Reader)

// WithSize sets the read buffer size. Values <= 0 keep DefaultChunkSize.
func WithSize(size int) Option {
	return func(lr *Reader) {
		if size > 0 {
			lr.size = size
		}
	}
}

// WithChunks makes the Reader retain every raw chunk it reads, see Chunks.
// Without it nothing but the current partial line is held in memory.
func WithChunks() Option {
	return func(lr *Reader) {
		lr.keepChunks = true
	}
}

// New creates a Reader over r.
func New(r io.Reader, opts ...Option) *Reader {
	lr := &Reader{
		reader: r,
		size:   DefaultChunkSize,
	}

	for _, opt := range opts {
		opt(lr)
	}

	return lr
}

// Lines reads the source until it closes. Every read that completes at least one line yields
// those lines, without terminators. A trailing unterminated fragment is yielded on close.
// A read error other than EOF is yielded once, wrapped in ErrRead, and ends the sequence.
func (lr *Reader) Lines() iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		buf := make([]byte, lr.size)

		for {
			n, err := lr.reader.Read(buf)
			if n > 0 {
				if lines := lr.process(string(buf[:n])); len(lines) > 0 {
					if !yield(lines, nil) {
						return
					}
				}
			}

			if err == nil {
				continue
			}

			if rest := lr.flush(); rest != "" {
				if !yield([]string{rest}, nil) {
					return
				}
			}

			if !errors.Is(err, io.EOF) && !errors.Is(err, fs.ErrClosed) {
				yield(nil, fmt.Errorf("%w: %w", ErrRead, err))
			}

			return
		}
	}
}

// process records a chunk and returns the lines it completed.
func (lr *Reader) process(data string) []string {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	if lr.keepChunks {
		lr.chunks = append(lr.chunks, data)
	}

	lr.partial.WriteString(data)
	combined := lr.partial.String()

	idx := strings.LastIndexByte(combined, '\n')
	if idx < 0 {
		return nil
	}

	lr.partial.Reset()
	lr.partial.WriteString(combined[idx+1:])

	return SplitChunk(combined[:idx+1])
}

func (lr *Reader) flush() string {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	rest := lr.partial.String()
	lr.partial.Reset()

	return rest
}

// Chunks returns a copy of the raw chunks read so far, in order.
// It is always empty unless the Reader was created WithChunks.
func (lr *Reader) Chunks() []string {
	lr.mu.RLock()
	defer lr.mu.RUnlock()

	return slices.Clone(lr.chunks)
}

// SplitChunk splits s on "\n". If s ends with a terminator the empty fragment after it is
// dropped, so "a\nb\n" gives two lines and "\n" gives one empty line.
func SplitChunk(s string) []string {
	if s == "" {
		return nil
	}

	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
