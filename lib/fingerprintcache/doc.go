// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fingerprintcache remembers the last Merkle tree computed for
// each graph entity so generation can be skipped when nothing changed.
//
// Entries live in a SQLite database (WAL mode, one row per entity).
// Each row holds the root hash and the tree, CBOR-encoded and
// compressed with [compress]. A small in-memory LRU sits in front of
// the database for repeated lookups within one process.
//
// [Store.Check] compares a freshly computed tree against the stored
// one and returns the [contenthash.Diff] so callers can report what
// changed, not only that something did.
package fingerprintcache
