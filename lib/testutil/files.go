// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
)

// T is the subset of testing.TB the helpers need.
type T interface {
	Helper()
	Fatalf(format string, args ...any)
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// WriteFiles writes each relative path in files under root, in sorted
// path order.
//
//	testutil.WriteFiles(t, root, map[string]string{
//		"App/Sources/main.swift": "print(1)\n",
//	})
func WriteFiles(t T, root string, files map[string]string) {
	t.Helper()
	for _, name := range slices.Sorted(maps.Keys(files)) {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(name)), files[name])
	}
}
