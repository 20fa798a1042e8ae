// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package graphload reads graph documents: JSONC files (JSON extended
// with comments and trailing commas) describing one or more projects
// and, optionally, the workspace that groups them.
//
//	{
//	  // Optional. Without it the document is a list of projects.
//	  "workspace": {"name": "App", "xcworkspace_path": "App.xcworkspace"},
//	  "projects": [
//	    {
//	      "name": "App",
//	      "path": "App",
//	      "targets": [
//	        {"name": "App", "product": "app", "sources": [{"path": "Sources/main.swift"}]},
//	      ],
//	    },
//	  ],
//	}
//
// Targets are written as a list and keyed by name on load. Relative
// project and workspace paths resolve against the document's
// directory; relative file paths inside a target resolve against its
// project.
package graphload

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/graphgen/lib/graph"
)

// Graph is a loaded document.
type Graph struct {
	// Workspace is set when the document declares one. Its Projects
	// are the same values as Graph.Projects.
	Workspace *graph.WorkspaceWithProjects

	// Projects in document order.
	Projects []graph.Project
}

type document struct {
	Workspace *graph.Workspace  `json:"workspace,omitempty"`
	Projects  []projectDocument `json:"projects"`
}

// projectDocument shadows the target map with a list.
type projectDocument struct {
	graph.Project
	Targets []graph.Target `json:"targets"`
}

// Parse strips JSONC comments and trailing commas from data, decodes
// the document, resolves relative paths against baseDir, and validates
// the result.
func Parse(data []byte, baseDir string) (Graph, error) {
	var doc document
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return Graph{}, fmt.Errorf("parsing graph: %w", err)
	}
	if len(doc.Projects) == 0 {
		return Graph{}, errors.New("graph declares no projects")
	}

	var loaded Graph
	for index, entry := range doc.Projects {
		project, err := graph.NewProject(entry.Name, resolve(baseDir, entry.Path), entry.Targets...)
		if err != nil {
			return Graph{}, fmt.Errorf("project %d: %w", index, err)
		}
		project.SourceRootPath = resolve(project.Path, entry.SourceRootPath)
		project.XcodeProjPath = resolve(project.Path, entry.XcodeProjPath)
		project.Organization = entry.Organization
		project.Settings = entry.Settings
		project.AdditionalFiles = resolveAll(project.Path, entry.AdditionalFiles)
		for name, target := range project.Targets {
			project.Targets[name] = resolveTarget(project.Path, target)
		}
		if err := project.Validate(); err != nil {
			return Graph{}, err
		}
		loaded.Projects = append(loaded.Projects, project)
	}

	if doc.Workspace != nil {
		workspace := *doc.Workspace
		workspace.Path = resolve(baseDir, workspace.Path)
		if workspace.Path == "" {
			workspace.Path = baseDir
		}
		workspace.XcWorkspacePath = resolve(workspace.Path, workspace.XcWorkspacePath)
		workspace.AdditionalFiles = resolveAll(workspace.Path, workspace.AdditionalFiles)
		if len(workspace.Projects) == 0 {
			for _, project := range loaded.Projects {
				workspace.Projects = append(workspace.Projects, project.Path)
			}
		} else {
			workspace.Projects = resolveAll(workspace.Path, workspace.Projects)
		}
		withProjects := graph.WorkspaceWithProjects{Workspace: workspace, Projects: loaded.Projects}
		if err := withProjects.Validate(); err != nil {
			return Graph{}, err
		}
		loaded.Workspace = &withProjects
	}
	return loaded, nil
}

// ReadFile reads and parses the graph document at path. Relative
// paths resolve against the file's directory.
func ReadFile(path string) (Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Graph{}, fmt.Errorf("reading %s: %w", path, err)
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return Graph{}, fmt.Errorf("resolving %s: %w", path, err)
	}
	loaded, err := Parse(data, filepath.Dir(absolute))
	if err != nil {
		return Graph{}, fmt.Errorf("%s: %w", path, err)
	}
	return loaded, nil
}

func resolveTarget(projectPath string, target graph.Target) graph.Target {
	resolved := target.Clone()
	for i := range resolved.Sources {
		resolved.Sources[i].Path = resolve(projectPath, resolved.Sources[i].Path)
	}
	for i := range resolved.Resources {
		resolved.Resources[i].Path = resolve(projectPath, resolved.Resources[i].Path)
	}
	for i := range resolved.CopyFiles {
		for j := range resolved.CopyFiles[i].Files {
			resolved.CopyFiles[i].Files[j].Path = resolve(projectPath, resolved.CopyFiles[i].Files[j].Path)
		}
	}
	for i := range resolved.Scripts {
		resolved.Scripts[i].Path = resolve(projectPath, resolved.Scripts[i].Path)
	}
	if resolved.InfoPlist != nil {
		resolved.InfoPlist.Path = resolve(projectPath, resolved.InfoPlist.Path)
	}
	for i := range resolved.Dependencies {
		resolved.Dependencies[i].Path = resolve(projectPath, resolved.Dependencies[i].Path)
	}
	return resolved
}

// resolve joins a relative path onto base. Empty and absolute paths
// are returned unchanged.
func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func resolveAll(base string, paths []string) []string {
	if paths == nil {
		return nil
	}
	resolved := make([]string, len(paths))
	for i, path := range paths {
		resolved[i] = resolve(base, path)
	}
	return resolved
}
