// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runbatch runs a batch of external commands, serially or in parallel.
//
// Every command is spawned through a Spawner, its stdout and stderr are streamed line by line
// with a colorized "[name] " prefix, failed commands are retried up to their retry count, and
// once every command has settled a Report is printed. A failing command never aborts the batch.
package runbatch
