// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default handler is a pretty console handler writing to stderr, so log lines never mix
// with the stdout of the commands being run. The level is read from CONRUN_LOG_LEVEL
// (DEBUG, INFO, WARN or ERROR; anything else means WARN).
package ctxlog
