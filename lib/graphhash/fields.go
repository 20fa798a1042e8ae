// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graphhash

import (
	"maps"
	"slices"

	"github.com/bureau-foundation/graphgen/lib/contenthash"
)

func stringLeaf(hasher contenthash.ContentHasher, identifier, value string) contenthash.MerkleNode {
	return contenthash.Leaf(hasher.HashString(value), identifier)
}

func boolLeaf(hasher contenthash.ContentHasher, identifier string, value bool) contenthash.MerkleNode {
	return contenthash.Leaf(hasher.HashBool(value), identifier)
}

// contentLeaf hashes the file at path by content.
func contentLeaf(hasher contenthash.ContentHasher, identifier, path string) (contenthash.MerkleNode, error) {
	hash, err := hasher.HashPath(path)
	if err != nil {
		return contenthash.MerkleNode{}, err
	}
	return contenthash.Leaf(hash, identifier), nil
}

// contentFiles hashes files by path and content, sorted by path with
// duplicates dropped. A missing file fails the whole node.
func contentFiles(hasher contenthash.ContentHasher, identifier string, paths []string) (contenthash.MerkleNode, error) {
	sorted := slices.Clone(paths)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	children := make([]contenthash.MerkleNode, len(sorted))
	for i, path := range sorted {
		content, err := contentLeaf(hasher, "content", path)
		if err != nil {
			return contenthash.MerkleNode{}, err
		}
		children[i] = contenthash.NewNode(hasher, path, []contenthash.MerkleNode{
			stringLeaf(hasher, "path", path),
			content,
		})
	}
	return contenthash.NewNode(hasher, identifier, children), nil
}

// orderedStrings hashes values in the order given.
func orderedStrings(hasher contenthash.ContentHasher, identifier string, values []string) contenthash.MerkleNode {
	children := make([]contenthash.MerkleNode, len(values))
	for i, value := range values {
		children[i] = stringLeaf(hasher, value, value)
	}
	return contenthash.NewNode(hasher, identifier, children)
}

// unorderedStrings hashes values sorted and deduplicated.
func unorderedStrings(hasher contenthash.ContentHasher, identifier string, values []string) contenthash.MerkleNode {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return orderedStrings(hasher, identifier, slices.Compact(sorted))
}

// stringMap hashes a map by sorted key. Each entry is a node over the
// key and the value so that moving a value between keys changes the
// hash.
func stringMap(hasher contenthash.ContentHasher, identifier string, values map[string]string) contenthash.MerkleNode {
	keys := slices.Sorted(maps.Keys(values))
	children := make([]contenthash.MerkleNode, len(keys))
	for i, key := range keys {
		children[i] = contenthash.NewNode(hasher, key, []contenthash.MerkleNode{
			stringLeaf(hasher, "key", key),
			stringLeaf(hasher, "value", values[key]),
		})
	}
	return contenthash.NewNode(hasher, identifier, children)
}

// optional wraps the node for a set optional field. The field name is
// hashed alongside the value.
func optional(hasher contenthash.ContentHasher, field string, value contenthash.MerkleNode) contenthash.MerkleNode {
	return contenthash.NewNode(hasher, field, []contenthash.MerkleNode{
		stringLeaf(hasher, "field", field),
		value,
	})
}
