// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	ctx := New(context.Background(), custom)
	assert.Same(t, custom, Logger(ctx))

	ctx = New(context.Background(), nil)
	assert.Same(t, DefaultLogger, Logger(ctx))
}

func TestLoggerWithoutValue(t *testing.T) {
	assert.Same(t, DefaultLogger, Logger(context.Background()))

	//nolint:staticcheck
	ctx := context.WithValue(context.Background(), loggerKey{}, "not a logger")
	assert.Same(t, DefaultLogger, Logger(ctx))
}

func TestLoggingFunctions(t *testing.T) {
	prev := LevelVar.Level()
	LevelVar.Set(slog.LevelDebug)

	defer LevelVar.Set(prev)

	buf := &bytes.Buffer{}
	ctx := NewForWriter(context.Background(), buf)

	Debug(ctx, "debug message", "k", 1)
	Info(ctx, "info message")
	Warn(ctx, "warn message")
	Error(ctx, "error message", "err", "boom")

	out := buf.String()
	assert.Contains(t, out, "DEBUG: debug message")
	assert.Contains(t, out, "INFO: info message")
	assert.Contains(t, out, "WARN: warn message")
	assert.Contains(t, out, "ERROR: error message")
	assert.Contains(t, out, `"boom"`)
	assert.NotContains(t, out, "\033[", "writer logger must not colour")
}

func TestNewForWriterRespectsLevel(t *testing.T) {
	prev := LevelVar.Level()
	LevelVar.Set(slog.LevelWarn)

	defer LevelVar.Set(prev)

	buf := &bytes.Buffer{}
	ctx := NewForWriter(context.Background(), buf)

	Info(ctx, "hidden")
	require.Empty(t, buf.String())

	Warn(ctx, "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewForWriterConcurrentLoggers(t *testing.T) {
	prev := LevelVar.Level()
	LevelVar.Set(slog.LevelDebug)

	defer LevelVar.Set(prev)

	buf := &bytes.Buffer{}
	ctx := NewForWriter(context.Background(), buf)

	const goroutines, lines = 8, 50

	var wg sync.WaitGroup

	for i := range goroutines {
		wg.Add(1)

		go func() {
			defer wg.Done()

			logger := Logger(ctx).With("worker", fmt.Sprint(i))
			for range lines {
				logger.Debug("tick")
			}
		}()
	}

	wg.Wait()

	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, got, goroutines*lines)

	for _, line := range got {
		assert.Contains(t, line, "DEBUG: tick")
	}
}
