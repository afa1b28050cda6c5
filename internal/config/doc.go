// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads command files.
//
// A command file lists the commands of a batch, in YAML or in HCL. Files are located with
// Hashicorp's go-getter syntax, so they can be local paths, git repositories or http URLs.
package config
