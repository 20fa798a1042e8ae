// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package graphhash reduces graph entities to Merkle trees of
// content hashes.
//
// Each hasher owns one kind of entity and returns a
// [contenthash.MerkleNode] whose children are the entity's fields,
// labeled by field name. Scalars are hashed directly; files are hashed
// by content through [contenthash.ContentHasher.HashPath]; nested
// collections delegate to their own hasher.
//
// Collections whose order does not affect the build are sorted before
// hashing: copied files, sources, and resources by path, dependencies
// by (kind, name, path), platform filters, map keys, targets by name,
// and projects by path. Build phases (copy-files actions and scripts),
// script arguments and input/output paths, and compiler flags keep
// their order.
//
// Optional fields add a child only when set. The child binds the field
// name into its hash, so a missing value never collides with an empty
// one and two different optionals never collide by position.
//
// A failed leaf (usually an unreadable file) fails the whole
// computation. No partial tree is returned.
package graphhash
