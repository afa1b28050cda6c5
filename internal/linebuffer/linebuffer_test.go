// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package linebuffer

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader returns one preset chunk per Read call.
type chunkReader struct {
	chunks []string
	err    error
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		if c.err != nil {
			return 0, c.err
		}

		return 0, io.EOF
	}

	n := copy(p, c.chunks[0])
	c.chunks = c.chunks[1:]

	return n, nil
}

func collect(t *testing.T, lr *Reader) [][]string {
	t.Helper()

	var batches [][]string

	for lines, err := range lr.Lines() {
		require.NoError(t, err)

		batches = append(batches, lines)
	}

	return batches
}

func TestSplitChunk(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"\n", []string{""}},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\nb", []string{"a", "b"}},
		{"a\n\nb\n", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitChunk(tt.in))
		})
	}
}

func TestLines_BatchPerChunk(t *testing.T) {
	lr := New(&chunkReader{chunks: []string{"one\ntwo\n", "three\n"}}, WithChunks())

	assert.Equal(t, [][]string{{"one", "two"}, {"three"}}, collect(t, lr))
	assert.Equal(t, []string{"one\ntwo\n", "three\n"}, lr.Chunks())
}

func TestLines_ChunksNotKeptByDefault(t *testing.T) {
	data := strings.Repeat("0123456789abcde\n", 64*1024)
	lr := New(strings.NewReader(data), WithSize(4096))

	total := 0
	for lines, err := range lr.Lines() {
		require.NoError(t, err)

		total += len(lines)
	}

	assert.Equal(t, 64*1024, total)
	assert.Empty(t, lr.Chunks())
}

func TestLines_HoldsPartialLines(t *testing.T) {
	lr := New(&chunkReader{chunks: []string{"hel", "lo\nwor", "ld"}})

	assert.Equal(t, [][]string{{"hello"}, {"world"}}, collect(t, lr))
}

func TestLines_BlankLines(t *testing.T) {
	lr := New(&chunkReader{chunks: []string{"\n", "a\n\n"}})

	assert.Equal(t, [][]string{{""}, {"a", ""}}, collect(t, lr))
}

func TestLines_OneByteReader(t *testing.T) {
	lr := New(iotest.OneByteReader(strings.NewReader("ab\ncd\n")))

	assert.Equal(t, [][]string{{"ab"}, {"cd"}}, collect(t, lr))
}

func TestLines_ReadError(t *testing.T) {
	errBoom := errors.New("boom")
	lr := New(&chunkReader{chunks: []string{"x\ny"}, err: errBoom})

	var (
		batches [][]string
		errs    []error
	)

	for lines, err := range lr.Lines() {
		if err != nil {
			errs = append(errs, err)
			continue
		}

		batches = append(batches, lines)
	}

	assert.Equal(t, [][]string{{"x"}, {"y"}}, batches)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrRead)
	assert.ErrorIs(t, errs[0], errBoom)
}

func TestLines_EarlyBreak(t *testing.T) {
	lr := New(&chunkReader{chunks: []string{"a\n", "b\n", "c\n"}}, WithChunks())

	for lines := range lr.Lines() {
		assert.Equal(t, []string{"a"}, lines)
		break
	}

	assert.Equal(t, []string{"a\n"}, lr.Chunks())
}

func TestLines_ConcurrentAccess(t *testing.T) {
	pr, pw := io.Pipe()
	lr := New(pr, WithSize(4), WithChunks())

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		for range lr.Lines() {
			_ = lr.Chunks()
		}
	}()

	for range 100 {
		_, err := pw.Write([]byte("line\n"))
		require.NoError(t, err)
		_ = lr.Chunks()
	}

	require.NoError(t, pw.Close())
	wg.Wait()

	assert.Equal(t, strings.Repeat("line\n", 100), strings.Join(lr.Chunks(), ""))
}
