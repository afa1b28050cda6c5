// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps text in ANSI SGR sequences.
//
// Color output is enabled when NO_COLOR is unset and either FORCE_COLOR is set or
// stdout is a terminal (detected with golang.org/x/term).
// The package also defines the command palette: the ordered set of colors assigned
// to commands by their position in a batch, and the named styles used by reports.
package color
