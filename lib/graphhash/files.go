// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graphhash

import (
	"cmp"
	"slices"

	"github.com/bureau-foundation/graphgen/lib/contenthash"
	"github.com/bureau-foundation/graphgen/lib/graph"
)

// SourceFilesHasher hashes compiled sources by path order and
// content. Compiler flags are order-sensitive and kept as given.
type SourceFilesHasher struct {
	hasher     contenthash.ContentHasher
	conditions *PlatformConditionHasher
}

func NewSourceFilesHasher(hasher contenthash.ContentHasher, conditions *PlatformConditionHasher) *SourceFilesHasher {
	return &SourceFilesHasher{hasher: hasher, conditions: conditions}
}

func (h *SourceFilesHasher) Hash(identifier string, sources []graph.SourceFile) (contenthash.MerkleNode, error) {
	sorted := slices.Clone(sources)
	slices.SortStableFunc(sorted, func(left, right graph.SourceFile) int {
		return cmp.Compare(left.Path, right.Path)
	})

	children := make([]contenthash.MerkleNode, 0, len(sorted))
	for _, source := range sorted {
		content, err := contentLeaf(h.hasher, "content", source.Path)
		if err != nil {
			return contenthash.MerkleNode{}, err
		}
		fileChildren := []contenthash.MerkleNode{
			content,
			orderedStrings(h.hasher, "compilerFlags", source.CompilerFlags),
		}
		if condition, ok := h.conditions.hashOptional(source.Condition); ok {
			fileChildren = append(fileChildren, condition)
		}
		children = append(children, contenthash.NewNode(h.hasher, source.Path, fileChildren))
	}
	return contenthash.NewNode(h.hasher, identifier, children), nil
}

// ResourcesHasher hashes bundled resources by path order and content.
// Tags are a set.
type ResourcesHasher struct {
	hasher     contenthash.ContentHasher
	conditions *PlatformConditionHasher
}

func NewResourcesHasher(hasher contenthash.ContentHasher, conditions *PlatformConditionHasher) *ResourcesHasher {
	return &ResourcesHasher{hasher: hasher, conditions: conditions}
}

func (h *ResourcesHasher) Hash(identifier string, resources []graph.ResourceFile) (contenthash.MerkleNode, error) {
	sorted := slices.Clone(resources)
	slices.SortStableFunc(sorted, func(left, right graph.ResourceFile) int {
		return cmp.Compare(left.Path, right.Path)
	})

	children := make([]contenthash.MerkleNode, 0, len(sorted))
	for _, resource := range sorted {
		content, err := contentLeaf(h.hasher, "content", resource.Path)
		if err != nil {
			return contenthash.MerkleNode{}, err
		}
		fileChildren := []contenthash.MerkleNode{
			content,
			unorderedStrings(h.hasher, "tags", resource.Tags),
		}
		if condition, ok := h.conditions.hashOptional(resource.Condition); ok {
			fileChildren = append(fileChildren, condition)
		}
		children = append(children, contenthash.NewNode(h.hasher, resource.Path, fileChildren))
	}
	return contenthash.NewNode(h.hasher, identifier, children), nil
}
