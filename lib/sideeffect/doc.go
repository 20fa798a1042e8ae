// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sideeffect describes effects that graph mappers want
// performed without performing them.
//
// A [Descriptor] is a tagged variant over three effects: write or
// delete a file, create or delete a directory, run a command. Mappers
// return ordered lists of descriptors; the order is significant (a
// directory must exist before a file is written into it) and is
// preserved by every combinator in lib/mapper.
//
// Nothing in the mapping or hashing core executes descriptors. The
// [Executor] here is the collaborator the CLI hands the final list
// to; with DryRun set it only logs, which together with [Plan] lets a
// whole pipeline run with no filesystem writes at all.
package sideeffect
