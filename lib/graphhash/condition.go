// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graphhash

import (
	"github.com/bureau-foundation/graphgen/lib/contenthash"
	"github.com/bureau-foundation/graphgen/lib/graph"
)

// PlatformConditionHasher hashes a platform condition. The filter set
// is hashed in sorted order, so permuting it changes nothing.
type PlatformConditionHasher struct {
	hasher contenthash.ContentHasher
}

func NewPlatformConditionHasher(hasher contenthash.ContentHasher) *PlatformConditionHasher {
	return &PlatformConditionHasher{hasher: hasher}
}

// Hash returns the node for condition.
func (h *PlatformConditionHasher) Hash(identifier string, condition graph.PlatformCondition) contenthash.MerkleNode {
	platforms := condition.Sorted()
	children := make([]contenthash.MerkleNode, len(platforms))
	for i, platform := range platforms {
		children[i] = stringLeaf(h.hasher, string(platform), string(platform))
	}
	return contenthash.NewNode(h.hasher, identifier, children)
}

// hashOptional returns the wrapped "condition" child, or false when
// condition is nil.
func (h *PlatformConditionHasher) hashOptional(condition *graph.PlatformCondition) (contenthash.MerkleNode, bool) {
	if condition == nil {
		return contenthash.MerkleNode{}, false
	}
	return optional(h.hasher, "condition", h.Hash("condition", *condition)), true
}
