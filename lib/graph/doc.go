// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package graph defines the in-memory project graph that graphgen
// fingerprints and transforms.
//
// Every type here is a value. Functions that "modify" a graph entity
// return a new value and leave their argument untouched: slices and
// maps are copied by the Clone and With* helpers before they are
// changed. Mappers (lib/mapper) and hashers (lib/graphhash) share
// these types but never depend on each other.
//
// The graph is produced by a loader (see lib/graphload) and is
// assumed to be semantically valid. [Project.Validate] checks only
// the structural invariant the rest of graphgen relies on: the
// target map is keyed by each target's own name.
package graph
