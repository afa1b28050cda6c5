// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import "slices"

var defaultPalette = []Code{FgBlue, FgYellow, FgCyan, FgWhite, FgMagenta, FgGray}

// DefaultPalette returns a copy of the six command colors, in assignment order.
func DefaultPalette() []Code {
	return slices.Clone(defaultPalette)
}

// Pick returns the palette entry for the given position, cycling through the palette.
// An empty palette yields Reset.
func Pick(palette []Code, index int) Code {
	if len(palette) == 0 || index < 0 {
		return Reset
	}

	return palette[index%len(palette)]
}

var styles = map[string]Code{
	"black":   FgBlack,
	"red":     FgRed,
	"green":   FgGreen,
	"yellow":  FgYellow,
	"blue":    FgBlue,
	"magenta": FgMagenta,
	"cyan":    FgCyan,
	"white":   FgWhite,
	"gray":    FgGray,
	"grey":    FgGray,
}

// Style returns a function that wraps text in the named color.
// Unknown names return the text unchanged.
func Style(name string) func(string) string {
	code, ok := styles[name]
	if !ok {
		return func(s string) string { return s }
	}

	return func(s string) string {
		return Colorize(s, code)
	}
}
