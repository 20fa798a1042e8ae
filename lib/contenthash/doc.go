// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package contenthash is the leaf layer of graphgen's fingerprinting
// engine: a content hasher over atomic values and ordered child
// digests, and the [MerkleNode] tree that composite hashers build from
// them.
//
// All digests are 32-byte BLAKE3 keyed hashes. Two domain keys
// separate leaf values from interior nodes so that a node's digest can
// never equal the digest of some scalar whose bytes happen to spell
// out the node's children. Within the leaf domain every value carries
// a one-byte type tag, so the string "true" and the boolean true hash
// differently.
//
// Interior nodes hash the ordered list of their children's digests.
// The encoding includes the child count and each child's position, so
// reordering children always changes the result. Callers that want a
// result independent of order must sort before hashing; see
// lib/graphhash for the canonical ordering rules.
//
// A MerkleNode's Identifier is a label for humans and diffs. It is
// never fed into the node's hash; a hasher that wants a name to be
// part of the content hashes it explicitly as a child.
//
// Key exports:
//
//   - [Hash], [FormatHash], [ParseHash]
//   - [ContentHasher] and its implementation [Hasher]
//   - [MerkleNode], [Leaf], [NewNode]
//   - [Diff] for explaining why two trees differ
package contenthash
