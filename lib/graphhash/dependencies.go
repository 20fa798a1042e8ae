// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graphhash

import (
	"cmp"
	"slices"

	"github.com/bureau-foundation/graphgen/lib/contenthash"
	"github.com/bureau-foundation/graphgen/lib/graph"
)

// DependenciesHasher hashes a target's dependency edges, sorted by
// (kind, name, path).
type DependenciesHasher struct {
	hasher     contenthash.ContentHasher
	conditions *PlatformConditionHasher
}

func NewDependenciesHasher(hasher contenthash.ContentHasher, conditions *PlatformConditionHasher) *DependenciesHasher {
	return &DependenciesHasher{hasher: hasher, conditions: conditions}
}

func (h *DependenciesHasher) Hash(identifier string, dependencies []graph.TargetDependency) contenthash.MerkleNode {
	sorted := slices.Clone(dependencies)
	slices.SortStableFunc(sorted, func(left, right graph.TargetDependency) int {
		return cmp.Or(
			cmp.Compare(left.Kind, right.Kind),
			cmp.Compare(left.Name, right.Name),
			cmp.Compare(left.Path, right.Path),
		)
	})

	children := make([]contenthash.MerkleNode, len(sorted))
	for i, dependency := range sorted {
		edge := []contenthash.MerkleNode{
			stringLeaf(h.hasher, "kind", string(dependency.Kind)),
			stringLeaf(h.hasher, "name", dependency.Name),
			stringLeaf(h.hasher, "path", dependency.Path),
		}
		if condition, ok := h.conditions.hashOptional(dependency.Condition); ok {
			edge = append(edge, condition)
		}
		label := string(dependency.Kind) + ":" + dependency.Name
		children[i] = contenthash.NewNode(h.hasher, label, edge)
	}
	return contenthash.NewNode(h.hasher, identifier, children)
}
