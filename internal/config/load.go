// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/conrun/internal/ctxlog"
	"github.com/spf13/afero"
)

// ErrGetConfigFile is returned when the command file cannot be retrieved.
var ErrGetConfigFile = errors.New("failed to get command file")

// document is the raw content of a command file and the name its format is detected from.
type document struct {
	name string
	data []byte
}

// source is a directory go-getter can download and the command file to read from it.
type source struct {
	dir  string
	file string
}

// Load retrieves, parses and validates the command file at url.
// Paths present on the local filesystem are read directly, anything else is fetched with go-getter.
func Load(ctx context.Context, url string) (*File, error) {
	doc, err := read(ctx, url)
	if err != nil {
		return nil, err
	}

	f, err := Parse(doc.name, doc.data)
	if err != nil {
		return nil, err
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "command file loaded", "url", url, "commands", len(f.Commands))

	return f, nil
}

func read(ctx context.Context, url string) (document, error) {
	if url == "" {
		return document{}, ErrGetConfigFile
	}

	fs := FsFactory()

	if ok, _ := afero.Exists(fs, url); ok {
		data, err := afero.ReadFile(fs, url)
		if err != nil {
			return document{}, fmt.Errorf("%w: %w", ErrGetConfigFile, err)
		}

		return document{name: url, data: data}, nil
	}

	return fetch(ctx, url)
}

// resolveSource works out what go-getter must download for url.
// Local paths download their parent directory. Remote URLs must name the file in a
// "//" subdirectory, because go-getter only fetches whole repositories and directories
// (https://github.com/hashicorp/go-getter/issues/98).
func resolveSource(url, pwd string) (source, error) {
	req := &getter.Request{Src: url, Pwd: pwd}

	local, err := getter.Detect(req, &getter.FileGetter{})
	if err != nil {
		return source{}, fmt.Errorf("%w: %w", ErrGetConfigFile, err)
	}

	if local {
		return source{dir: filepath.Dir(req.Src), file: filepath.Base(req.Src)}, nil
	}

	src, ok := splitGetterURL(url)
	if !ok {
		return source{}, fmt.Errorf("%w: invalid URL format: %s", ErrGetConfigFile, url)
	}

	return src, nil
}

// fetch downloads the directory holding the command file into a temporary directory,
// which is removed before returning, and reads the file from it.
func fetch(ctx context.Context, url string) (document, error) {
	wd, err := os.Getwd()
	if err != nil {
		return document{}, fmt.Errorf("%w: %w", ErrGetConfigFile, err)
	}

	tmpDir, err := os.MkdirTemp("", "conrun-getter-*")
	if err != nil {
		return document{}, fmt.Errorf("%w: %w", ErrGetConfigFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	src, err := resolveSource(url, wd)
	if err != nil {
		return document{}, err
	}

	req := &getter.Request{
		Src:     src.dir,
		Dst:     filepath.Join(tmpDir, "src"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	ctxlog.Debug(ctx, "fetching command file", "src", src.dir, "file", src.file)

	client := getter.Client{DisableSymlinks: true}

	res, err := client.Get(ctx, req)
	if err != nil {
		return document{}, fmt.Errorf("%w: %w", ErrGetConfigFile, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, src.file))
	if err != nil {
		return document{}, fmt.Errorf("%w: %w", ErrGetConfigFile, err)
	}

	return document{name: src.file, data: data}, nil
}

// splitGetterURL splits a go-getter URL whose last "//" part names a file, such as
// "git::https://host/repo.git//ci/conrun.yaml?ref=v1", into the directory URL
// "git::https://host/repo.git//ci?ref=v1" and the file name. The query is kept on the directory.
func splitGetterURL(url string) (source, bool) {
	base, query, _ := strings.Cut(url, "?")

	i := strings.LastIndex(base, "//")
	if i < 0 || strings.Count(base, "//") < 2 {
		return source{}, false
	}

	repo, sub := base[:i], base[i+len("//"):]
	if sub == "" || strings.HasSuffix(sub, "/") {
		return source{}, false
	}

	dir, file := path.Split(sub)
	if dir = strings.TrimSuffix(dir, "/"); dir != "" {
		repo += "//" + dir
	}

	if query != "" {
		repo += "?" + query
	}

	return source{dir: repo, file: file}, true
}
