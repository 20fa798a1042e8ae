// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package mapper defines graph transformations and the combinators
// that compose them into pipelines.
//
// A mapper is a pure function from a graph entity to a new entity and
// an ordered list of [sideeffect.Descriptor] values. Mappers never
// read or write files and never run processes; anything they want done
// is returned. There are three capabilities:
//
//   - [ProjectMapper] maps a [graph.Project]
//   - [WorkspaceMapper] maps a [graph.WorkspaceWithProjects]
//   - [TargetMapper] maps a single [graph.Target]
//
// Pipelines are built by composition:
//
//   - [SequentialProjectMapper] and [SequentialWorkspaceMapper] thread
//     an entity through an ordered mapper list and concatenate side
//     effects in pipeline order. An empty pipeline is the identity.
//     A pipeline is itself a mapper, so pipelines nest.
//   - [TargetProjectMapper] lifts a TargetMapper to a ProjectMapper by
//     mapping every target. Targets are mapped concurrently; results
//     and side effects are merged in target-name order.
//   - [ProjectWorkspaceMapper] lifts a ProjectMapper to a
//     WorkspaceMapper the same way, merging in project-path order.
//
// # Failure
//
// The first failing stage halts the pipeline. The error is a
// [*StageError] naming the entity and stage; a StageError raised by a
// nested pipeline is returned as is, so callers always see the
// innermost stage that failed and can errors.As/Is through it to the
// original cause.
//
// Side effects emitted by stages that succeeded before the failure are
// discarded: a failed run returns a nil list. A partially applied
// side-effect list would leave generated output inconsistent with any
// graph the caller could observe.
package mapper
