// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_YAML(t *testing.T) {
	content := `
name: build
commands:
  - name: lint
    argv: ["golangci-lint", "run"]
    retry: 2
  - name: test
    argv:
      - go
      - test
      - ./...
    cwd: ./src
    env:
      CGO_ENABLED: "0"
`

	f, err := Parse("conrun.yaml", []byte(content))
	require.NoError(t, err)

	assert.Equal(t, "build", f.Name)
	require.Len(t, f.Commands, 2)
	assert.Equal(t, CommandDefinition{Name: "lint", Argv: []string{"golangci-lint", "run"}, Retry: 2}, f.Commands[0])
	assert.Equal(t, "./src", f.Commands[1].Cwd)
	assert.Equal(t, map[string]string{"CGO_ENABLED": "0"}, f.Commands[1].Env)
}

func TestParse_YAMLUnknownField(t *testing.T) {
	content := `
commands:
  - name: lint
    exec: golangci-lint
`

	_, err := Parse("conrun.yml", []byte(content))
	require.ErrorIs(t, err, ErrInvalidYaml)
}

func TestParse_HCL(t *testing.T) {
	stubs := gostub.Stub(&Environ, func() []string {
		return []string{"TARGET=linux", "NOEQUALS", "EMPTY="}
	})
	defer stubs.Reset()

	content := `
name = "build"

command "compile" {
  argv  = ["go", "build", "-o", "bin/${env.TARGET}/app"]
  retry = 1
  env = {
    GOOS = env.TARGET
  }
}

command "test" {
  argv = ["go", "test", "./..."]
  cwd  = "src"
}
`

	f, err := Parse("conrun.hcl", []byte(content))
	require.NoError(t, err)

	assert.Equal(t, "build", f.Name)
	require.Len(t, f.Commands, 2)
	assert.Equal(t, "compile", f.Commands[0].Name)
	assert.Equal(t, []string{"go", "build", "-o", "bin/linux/app"}, f.Commands[0].Argv)
	assert.Equal(t, 1, f.Commands[0].Retry)
	assert.Equal(t, map[string]string{"GOOS": "linux"}, f.Commands[0].Env)
	assert.Equal(t, "src", f.Commands[1].Cwd)
}

func TestParse_HCLUnknownVariable(t *testing.T) {
	stubs := gostub.Stub(&Environ, func() []string { return nil })
	defer stubs.Reset()

	content := `
command "x" {
  argv = [env.MISSING]
}
`

	_, err := Parse("conrun.hcl", []byte(content))
	require.ErrorIs(t, err, ErrInvalidHcl)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse("conrun.toml", []byte(""))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
