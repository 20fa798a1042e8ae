// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for graphgen packages.
//
// [WriteFile] and [WriteFiles] lay out fixture trees (graph documents,
// source files, configs) under a test's temporary directory, creating
// parent directories as needed.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no graphgen-internal dependencies.
package testutil
