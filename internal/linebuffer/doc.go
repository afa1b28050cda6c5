// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package linebuffer turns a chunked byte stream into a lazy sequence of complete lines.
//
// Each read from the source yields the batch of lines it completed. A fragment without a
// line terminator is held back until a later read completes it or the source closes.
// The raw chunks can optionally be kept for later inspection.
package linebuffer
