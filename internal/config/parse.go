// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrUnsupportedFormat is returned when the file extension is neither YAML nor HCL.
	ErrUnsupportedFormat = errors.New("unsupported command file format")
	// ErrInvalidYaml is returned when a YAML command file cannot be decoded.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrInvalidHcl is returned when an HCL command file cannot be decoded.
	ErrInvalidHcl = errors.New("invalid HCL")
)

// Parse decodes a command file. The format is chosen from the extension of filename:
// .yaml and .yml for YAML, .hcl for HCL.
// HCL files can read the environment through the env variable, e.g. env.HOME.
func Parse(filename string, data []byte) (*File, error) {
	var f File

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, &f, yaml.DisallowUnknownField()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidYaml, filename, err)
		}

	case ".hcl":
		if err := hclsimple.Decode(filename, data, evalContext(), &f); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidHcl, err)
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	return &f, nil
}

func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)

	for _, kv := range Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		env[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}
