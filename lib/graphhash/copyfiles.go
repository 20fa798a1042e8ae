// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graphhash

import (
	"fmt"

	"github.com/bureau-foundation/graphgen/lib/contenthash"
	"github.com/bureau-foundation/graphgen/lib/graph"
)

// CopyFilesHasher hashes a target's copy-files build phases.
type CopyFilesHasher struct {
	hasher     contenthash.ContentHasher
	conditions *PlatformConditionHasher
}

func NewCopyFilesHasher(hasher contenthash.ContentHasher, conditions *PlatformConditionHasher) *CopyFilesHasher {
	return &CopyFilesHasher{hasher: hasher, conditions: conditions}
}

// Hash returns one child per action, in phase order. Within an action
// the files are sorted by path and hashed by content.
func (h *CopyFilesHasher) Hash(identifier string, actions []graph.CopyFilesAction) (contenthash.MerkleNode, error) {
	children := make([]contenthash.MerkleNode, 0, len(actions))
	for _, action := range actions {
		node, err := h.hashAction(action)
		if err != nil {
			return contenthash.MerkleNode{}, fmt.Errorf("copy files action %q: %w", action.Name, err)
		}
		children = append(children, node)
	}
	return contenthash.NewNode(h.hasher, identifier, children), nil
}

func (h *CopyFilesHasher) hashAction(action graph.CopyFilesAction) (contenthash.MerkleNode, error) {
	files, err := h.HashFiles("files", action.Files)
	if err != nil {
		return contenthash.MerkleNode{}, err
	}
	children := []contenthash.MerkleNode{
		stringLeaf(h.hasher, "name", action.Name),
		stringLeaf(h.hasher, "destination", string(action.Destination)),
		files,
	}
	if action.Subpath != nil {
		children = append(children, optional(h.hasher, "subpath", stringLeaf(h.hasher, "subpath", *action.Subpath)))
	}
	return contenthash.NewNode(h.hasher, action.Name, children), nil
}

// HashFiles returns the node for one action's file list. The list is
// sorted by path first, so any permutation of the same files yields
// the same node.
func (h *CopyFilesHasher) HashFiles(identifier string, files []graph.CopyFileElement) (contenthash.MerkleNode, error) {
	sorted := graph.CopyFilesAction{Files: files}.SortedFiles()
	children := make([]contenthash.MerkleNode, 0, len(sorted))
	for _, file := range sorted {
		content, err := contentLeaf(h.hasher, "content", file.Path)
		if err != nil {
			return contenthash.MerkleNode{}, err
		}
		fileChildren := []contenthash.MerkleNode{
			content,
			boolLeaf(h.hasher, "isReference", file.IsReference),
			boolLeaf(h.hasher, "codeSignOnCopy", file.CodeSignOnCopy),
		}
		if condition, ok := h.conditions.hashOptional(file.Condition); ok {
			fileChildren = append(fileChildren, condition)
		}
		children = append(children, contenthash.NewNode(h.hasher, file.Path, fileChildren))
	}
	return contenthash.NewNode(h.hasher, identifier, children), nil
}
