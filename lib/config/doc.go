// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for graphgen.
//
// Configuration is loaded from a single file named by either the
// GRAPHGEN_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no automatic file search: without either,
// callers use [Default].
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${GRAPHGEN_CACHE}, and ${VAR:-default} patterns are
// expanded.
//
// Key exports:
//
//   - [Config] -- master struct with Generation, Cache, Log
//   - [Default] -- returns a Config with the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other graphgen packages.
package config
