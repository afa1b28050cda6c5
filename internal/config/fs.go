// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"os"

	"github.com/spf13/afero"
)

// FsFactory is a function that returns the filesystem local command files are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Environ returns the environment exposed to HCL command files as the env variable.
var Environ = os.Environ
