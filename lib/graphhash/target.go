// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graphhash

import (
	"fmt"

	"github.com/bureau-foundation/graphgen/lib/contenthash"
	"github.com/bureau-foundation/graphgen/lib/graph"
)

// TargetHasher hashes one target by composing the field hashers.
type TargetHasher struct {
	hasher       contenthash.ContentHasher
	conditions   *PlatformConditionHasher
	sources      *SourceFilesHasher
	resources    *ResourcesHasher
	copyFiles    *CopyFilesHasher
	scripts      *ScriptsHasher
	settings     *SettingsHasher
	infoPlist    *InfoPlistHasher
	dependencies *DependenciesHasher
}

// NewTargetHasher wires the field hashers over a single content
// hasher.
func NewTargetHasher(hasher contenthash.ContentHasher) *TargetHasher {
	conditions := NewPlatformConditionHasher(hasher)
	return &TargetHasher{
		hasher:       hasher,
		conditions:   conditions,
		sources:      NewSourceFilesHasher(hasher, conditions),
		resources:    NewResourcesHasher(hasher, conditions),
		copyFiles:    NewCopyFilesHasher(hasher, conditions),
		scripts:      NewScriptsHasher(hasher),
		settings:     NewSettingsHasher(hasher),
		infoPlist:    NewInfoPlistHasher(hasher),
		dependencies: NewDependenciesHasher(hasher, conditions),
	}
}

// Hash returns the target's node, labeled with the target name.
func (h *TargetHasher) Hash(target graph.Target) (contenthash.MerkleNode, error) {
	sources, err := h.sources.Hash("sources", target.Sources)
	if err != nil {
		return contenthash.MerkleNode{}, fmt.Errorf("target %s: sources: %w", target.Name, err)
	}
	resources, err := h.resources.Hash("resources", target.Resources)
	if err != nil {
		return contenthash.MerkleNode{}, fmt.Errorf("target %s: resources: %w", target.Name, err)
	}
	copyFiles, err := h.copyFiles.Hash("copyFiles", target.CopyFiles)
	if err != nil {
		return contenthash.MerkleNode{}, fmt.Errorf("target %s: %w", target.Name, err)
	}
	scripts, err := h.scripts.Hash("scripts", target.Scripts)
	if err != nil {
		return contenthash.MerkleNode{}, fmt.Errorf("target %s: %w", target.Name, err)
	}

	destinations := make([]string, len(target.Destinations))
	for i, platform := range target.Destinations {
		destinations[i] = string(platform)
	}

	children := []contenthash.MerkleNode{
		stringLeaf(h.hasher, "name", target.Name),
		stringLeaf(h.hasher, "product", string(target.Product)),
		stringLeaf(h.hasher, "bundleId", target.BundleID),
		unorderedStrings(h.hasher, "destinations", destinations),
		sources,
		resources,
		copyFiles,
		scripts,
		h.settings.Hash("settings", target.Settings),
		stringMap(h.hasher, "environment", target.Environment),
		h.dependencies.Hash("dependencies", target.Dependencies),
	}
	if target.InfoPlist != nil {
		plist, err := h.infoPlist.Hash("infoPlist", *target.InfoPlist)
		if err != nil {
			return contenthash.MerkleNode{}, fmt.Errorf("target %s: %w", target.Name, err)
		}
		children = append(children, optional(h.hasher, "infoPlist", plist))
	}
	return contenthash.NewNode(h.hasher, target.Name, children), nil
}
