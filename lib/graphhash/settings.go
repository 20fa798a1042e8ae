// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graphhash

import (
	"fmt"

	"github.com/bureau-foundation/graphgen/lib/contenthash"
	"github.com/bureau-foundation/graphgen/lib/graph"
)

// SettingsHasher hashes build settings. Keys and configuration names
// are sorted.
type SettingsHasher struct {
	hasher contenthash.ContentHasher
}

func NewSettingsHasher(hasher contenthash.ContentHasher) *SettingsHasher {
	return &SettingsHasher{hasher: hasher}
}

func (h *SettingsHasher) Hash(identifier string, settings graph.Settings) contenthash.MerkleNode {
	names := settings.ConfigurationNames()
	configurations := make([]contenthash.MerkleNode, len(names))
	for i, name := range names {
		configurations[i] = stringMap(h.hasher, name, settings.Configurations[name])
	}
	return contenthash.NewNode(h.hasher, identifier, []contenthash.MerkleNode{
		stringMap(h.hasher, "base", settings.Base),
		contenthash.NewNode(h.hasher, "configurations", configurations),
	})
}

// InfoPlistHasher hashes a target's Info.plist: a file by content, a
// dictionary by sorted key.
type InfoPlistHasher struct {
	hasher contenthash.ContentHasher
}

func NewInfoPlistHasher(hasher contenthash.ContentHasher) *InfoPlistHasher {
	return &InfoPlistHasher{hasher: hasher}
}

func (h *InfoPlistHasher) Hash(identifier string, plist graph.InfoPlist) (contenthash.MerkleNode, error) {
	var value contenthash.MerkleNode
	switch plist.Kind {
	case graph.InfoPlistFile:
		content, err := contentLeaf(h.hasher, "content", plist.Path)
		if err != nil {
			return contenthash.MerkleNode{}, fmt.Errorf("info plist: %w", err)
		}
		value = content
	case graph.InfoPlistDictionary:
		value = stringMap(h.hasher, "dictionary", plist.Dictionary)
	default:
		return contenthash.MerkleNode{}, fmt.Errorf("info plist: unknown kind %q", plist.Kind)
	}
	return contenthash.NewNode(h.hasher, identifier, []contenthash.MerkleNode{
		stringLeaf(h.hasher, "kind", string(plist.Kind)),
		value,
	}), nil
}
