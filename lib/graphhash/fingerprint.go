// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graphhash

import (
	"fmt"
	"slices"

	"github.com/bureau-foundation/graphgen/lib/contenthash"
	"github.com/bureau-foundation/graphgen/lib/graph"
)

// Fingerprinter reduces whole projects and workspaces to a root hash.
type Fingerprinter struct {
	hasher     contenthash.ContentHasher
	projects   *ProjectHasher
	workspaces *WorkspaceHasher
}

// NewFingerprinter returns a fingerprinter over hasher. workers bounds
// how many targets (and, separately, projects) are hashed at once; zero
// or negative means no bound.
func NewFingerprinter(hasher contenthash.ContentHasher, workers int) *Fingerprinter {
	projects := NewProjectHasher(hasher, NewTargetHasher(hasher), workers)
	return &Fingerprinter{
		hasher:     hasher,
		projects:   projects,
		workspaces: NewWorkspaceHasher(hasher, projects, workers),
	}
}

// ProjectTree returns the full Merkle tree of project. The root is
// labeled with the project name.
func (f *Fingerprinter) ProjectTree(project graph.Project) (contenthash.MerkleNode, error) {
	node, err := f.projects.Hash(project.Name, project)
	if err != nil {
		return contenthash.MerkleNode{}, fmt.Errorf("fingerprinting project %s: %w", project.Name, err)
	}
	return node, nil
}

// FingerprintProject returns the root hash of [Fingerprinter.ProjectTree].
func (f *Fingerprinter) FingerprintProject(project graph.Project) (contenthash.Hash, error) {
	node, err := f.ProjectTree(project)
	if err != nil {
		return contenthash.Hash{}, err
	}
	return node.Hash, nil
}

// WorkspaceTree returns the full Merkle tree of workspace.
func (f *Fingerprinter) WorkspaceTree(workspace graph.WorkspaceWithProjects) (contenthash.MerkleNode, error) {
	name := workspace.Workspace.Name
	node, err := f.workspaces.Hash(name, workspace)
	if err != nil {
		return contenthash.MerkleNode{}, fmt.Errorf("fingerprinting workspace %s: %w", name, err)
	}
	return node, nil
}

// FingerprintWorkspace returns the root hash of
// [Fingerprinter.WorkspaceTree].
func (f *Fingerprinter) FingerprintWorkspace(workspace graph.WorkspaceWithProjects) (contenthash.Hash, error) {
	node, err := f.WorkspaceTree(workspace)
	if err != nil {
		return contenthash.Hash{}, err
	}
	return node.Hash, nil
}

// WithSettings returns tree with one more child, a node named
// identifier over settings by sorted key. The root keeps its
// identifier. Inputs that change generated output without being part
// of the graph (generation options) are folded in this way.
func (f *Fingerprinter) WithSettings(tree contenthash.MerkleNode, identifier string, settings map[string]string) contenthash.MerkleNode {
	children := append(slices.Clone(tree.Children), stringMap(f.hasher, identifier, settings))
	return contenthash.NewNode(f.hasher, tree.Identifier, children)
}
