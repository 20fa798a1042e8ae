// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graph

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// Workspace groups projects that are opened together.
type Workspace struct {
	Name            string   `json:"name"`
	Path            string   `json:"path"`
	XcWorkspacePath string   `json:"xcworkspace_path"`
	Projects        []string `json:"projects"`
	AdditionalFiles []string `json:"additional_files,omitempty"`
}

// WorkspaceWithProjects is a workspace together with the loaded
// projects it references. It is the unit workspace mappers operate on.
type WorkspaceWithProjects struct {
	Workspace Workspace `json:"workspace"`
	Projects  []Project `json:"projects"`
}

// SortedProjects returns the projects ordered by path. Project paths
// are unique within a workspace, so this order is total.
func (w WorkspaceWithProjects) SortedProjects() []Project {
	sorted := slices.Clone(w.Projects)
	slices.SortStableFunc(sorted, func(left, right Project) int {
		return cmp.Compare(left.Path, right.Path)
	})
	return sorted
}

// Clone returns a deep copy.
func (w WorkspaceWithProjects) Clone() WorkspaceWithProjects {
	clone := w
	clone.Workspace.Projects = slices.Clone(w.Workspace.Projects)
	clone.Workspace.AdditionalFiles = slices.Clone(w.Workspace.AdditionalFiles)
	clone.Projects = cloneEach(w.Projects, Project.Clone)
	return clone
}

// Validate checks the workspace and each of its projects. Project
// paths must be unique.
func (w WorkspaceWithProjects) Validate() error {
	var errs []error
	if w.Workspace.Name == "" {
		errs = append(errs, errors.New("workspace name is required"))
	}
	seen := make(map[string]bool, len(w.Projects))
	for _, project := range w.Projects {
		if seen[project.Path] {
			errs = append(errs, fmt.Errorf("workspace %s: duplicate project path %q", w.Workspace.Name, project.Path))
		}
		seen[project.Path] = true
		if err := project.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
