// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrCommandNotFound is returned when an executable cannot be found in PATH.
var ErrCommandNotFound = errors.New("executable not found in PATH")

// lookPath resolves command to an executable path.
// Names containing a path separator are used as is, relative ones are resolved against dir.
func lookPath(command, dir string) (string, error) {
	if strings.ContainsRune(command, '/') || strings.ContainsRune(command, filepath.Separator) {
		if !filepath.IsAbs(command) && dir != "" {
			command = filepath.Join(dir, command)
		}

		return command, nil
	}

	for _, p := range filepath.SplitList(os.Getenv("PATH")) {
		if p == "" {
			p = "."
		}

		candidates := []string{filepath.Join(p, command)}
		if runtime.GOOS == "windows" && filepath.Ext(command) == "" {
			candidates = append(candidates, filepath.Join(p, command+".exe"))
		}

		for _, candidate := range candidates {
			if isExecutable(candidate) {
				return candidate, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", ErrCommandNotFound, command)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	return runtime.GOOS == "windows" || info.Mode()&0o111 != 0
}
