// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graphhash

import (
	"fmt"

	"github.com/bureau-foundation/graphgen/lib/contenthash"
	"github.com/bureau-foundation/graphgen/lib/graph"
)

// ScriptsHasher hashes script build phases in phase order. A script
// given by path is hashed by the file's content; an inline script by
// its text.
type ScriptsHasher struct {
	hasher contenthash.ContentHasher
}

func NewScriptsHasher(hasher contenthash.ContentHasher) *ScriptsHasher {
	return &ScriptsHasher{hasher: hasher}
}

func (h *ScriptsHasher) Hash(identifier string, scripts []graph.TargetScript) (contenthash.MerkleNode, error) {
	children := make([]contenthash.MerkleNode, 0, len(scripts))
	for position, script := range scripts {
		node, err := h.hashScript(script)
		if err != nil {
			return contenthash.MerkleNode{}, fmt.Errorf("script %d (%s): %w", position, script.Name, err)
		}
		children = append(children, node)
	}
	return contenthash.NewNode(h.hasher, identifier, children), nil
}

func (h *ScriptsHasher) hashScript(script graph.TargetScript) (contenthash.MerkleNode, error) {
	children := []contenthash.MerkleNode{
		stringLeaf(h.hasher, "name", script.Name),
		stringLeaf(h.hasher, "order", string(script.Order)),
	}
	if script.Path != "" {
		content, err := contentLeaf(h.hasher, "content", script.Path)
		if err != nil {
			return contenthash.MerkleNode{}, err
		}
		children = append(children, optional(h.hasher, "path", content))
	} else {
		children = append(children, optional(h.hasher, "script", stringLeaf(h.hasher, "script", script.Script)))
	}
	children = append(children,
		orderedStrings(h.hasher, "arguments", script.Arguments),
		orderedStrings(h.hasher, "inputPaths", script.InputPaths),
		orderedStrings(h.hasher, "outputPaths", script.OutputPaths),
		stringLeaf(h.hasher, "shellPath", script.ShellPath),
	)
	return contenthash.NewNode(h.hasher, script.Name, children), nil
}
