// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graphhash

import (
	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/graphgen/lib/contenthash"
	"github.com/bureau-foundation/graphgen/lib/graph"
)

// hashAll computes count subtrees on up to workers goroutines
// (unbounded when workers <= 0). The result is in index order. When
// several items fail, the error of the lowest index is returned, so
// the reported failure does not depend on scheduling.
func hashAll(count, workers int, hashOne func(index int) (contenthash.MerkleNode, error)) ([]contenthash.MerkleNode, error) {
	nodes := make([]contenthash.MerkleNode, count)
	errs := make([]error, count)
	var group errgroup.Group
	if workers > 0 {
		group.SetLimit(workers)
	}
	for index := range count {
		group.Go(func() error {
			nodes[index], errs[index] = hashOne(index)
			return nil
		})
	}
	_ = group.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// ProjectHasher hashes a project. Targets are hashed in parallel and
// combined in name order.
type ProjectHasher struct {
	hasher   contenthash.ContentHasher
	targets  *TargetHasher
	settings *SettingsHasher
	workers  int
}

func NewProjectHasher(hasher contenthash.ContentHasher, targets *TargetHasher, workers int) *ProjectHasher {
	return &ProjectHasher{
		hasher:   hasher,
		targets:  targets,
		settings: NewSettingsHasher(hasher),
		workers:  workers,
	}
}

// Hash returns the project's node, labeled with identifier.
func (h *ProjectHasher) Hash(identifier string, project graph.Project) (contenthash.MerkleNode, error) {
	sorted := project.SortedTargets()
	targets, err := hashAll(len(sorted), h.workers, func(index int) (contenthash.MerkleNode, error) {
		return h.targets.Hash(sorted[index])
	})
	if err != nil {
		return contenthash.MerkleNode{}, err
	}
	additionalFiles, err := contentFiles(h.hasher, "additionalFiles", project.AdditionalFiles)
	if err != nil {
		return contenthash.MerkleNode{}, err
	}

	children := []contenthash.MerkleNode{
		stringLeaf(h.hasher, "name", project.Name),
		stringLeaf(h.hasher, "path", project.Path),
		stringLeaf(h.hasher, "sourceRootPath", project.SourceRootPath),
		stringLeaf(h.hasher, "xcodeProjPath", project.XcodeProjPath),
		stringLeaf(h.hasher, "organization", project.Organization),
		h.settings.Hash("settings", project.Settings),
		additionalFiles,
		contenthash.NewNode(h.hasher, "targets", targets),
	}
	return contenthash.NewNode(h.hasher, identifier, children), nil
}

// WorkspaceHasher hashes a workspace with its projects. Projects are
// hashed in parallel and combined in path order.
type WorkspaceHasher struct {
	hasher   contenthash.ContentHasher
	projects *ProjectHasher
	workers  int
}

func NewWorkspaceHasher(hasher contenthash.ContentHasher, projects *ProjectHasher, workers int) *WorkspaceHasher {
	return &WorkspaceHasher{hasher: hasher, projects: projects, workers: workers}
}

func (h *WorkspaceHasher) Hash(identifier string, workspace graph.WorkspaceWithProjects) (contenthash.MerkleNode, error) {
	sorted := workspace.SortedProjects()
	projects, err := hashAll(len(sorted), h.workers, func(index int) (contenthash.MerkleNode, error) {
		return h.projects.Hash(sorted[index].Path, sorted[index])
	})
	if err != nil {
		return contenthash.MerkleNode{}, err
	}
	additionalFiles, err := contentFiles(h.hasher, "additionalFiles", workspace.Workspace.AdditionalFiles)
	if err != nil {
		return contenthash.MerkleNode{}, err
	}

	children := []contenthash.MerkleNode{
		stringLeaf(h.hasher, "name", workspace.Workspace.Name),
		stringLeaf(h.hasher, "path", workspace.Workspace.Path),
		stringLeaf(h.hasher, "xcWorkspacePath", workspace.Workspace.XcWorkspacePath),
		unorderedStrings(h.hasher, "projectPaths", workspace.Workspace.Projects),
		additionalFiles,
		contenthash.NewNode(h.hasher, "projects", projects),
	}
	return contenthash.NewNode(h.hasher, identifier, children), nil
}
