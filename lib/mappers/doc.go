// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package mappers holds the concrete graph mappers graphgen runs
// before generation, and [NewProjectPipeline] and
// [NewWorkspacePipeline], which assemble them in their required order.
//
// Like every mapper, these never touch the filesystem. Derived files
// (generated Info.plists, the workspace marker) and directory cleanup
// are returned as side effects for the executor.
package mappers
