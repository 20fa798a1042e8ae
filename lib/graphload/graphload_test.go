// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graphload

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/bureau-foundation/graphgen/lib/graph"
)

const workspaceDocument = `{
  // Comments and trailing commas are allowed.
  "workspace": {"name": "Suite", "xcworkspace_path": "Suite.xcworkspace"},
  "projects": [
    {
      "name": "App",
      "path": "App",
      "targets": [
        {
          "name": "App",
          "product": "app",
          "bundle_id": "dev.graphgen.app",
          "sources": [{"path": "Sources/main.swift", "compiler_flags": ["-O"]}],
          "copy_files": [
            {"name": "Embed", "destination": "resources", "files": [{"path": "Embed/a.txt"}]},
          ],
          "info_plist": {"kind": "dictionary", "dictionary": {"CFBundleName": "App"}},
          "dependencies": [{"kind": "target", "name": "Kit", "path": "../Kit"}],
        },
      ],
    },
    {
      "name": "Kit",
      "path": "/abs/Kit",
      "targets": [{"name": "Kit", "product": "framework"}],
    },
  ],
}`

func TestParseWorkspaceDocument(t *testing.T) {
	loaded, err := Parse([]byte(workspaceDocument), "/repo")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(loaded.Projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(loaded.Projects))
	}

	app := loaded.Projects[0]
	if app.Path != "/repo/App" {
		t.Errorf("project path = %q, want /repo/App", app.Path)
	}
	target, ok := app.Targets["App"]
	if !ok {
		t.Fatal("target App not keyed by name")
	}
	if target.Sources[0].Path != "/repo/App/Sources/main.swift" {
		t.Errorf("source path = %q", target.Sources[0].Path)
	}
	if target.CopyFiles[0].Files[0].Path != "/repo/App/Embed/a.txt" {
		t.Errorf("copy file path = %q", target.CopyFiles[0].Files[0].Path)
	}
	if target.Dependencies[0].Path != "/repo/Kit" {
		t.Errorf("dependency path = %q, want /repo/Kit", target.Dependencies[0].Path)
	}
	if target.InfoPlist == nil || target.InfoPlist.Kind != graph.InfoPlistDictionary || target.InfoPlist.Dictionary["CFBundleName"] != "App" {
		t.Errorf("info plist = %+v", target.InfoPlist)
	}
	if loaded.Projects[1].Path != "/abs/Kit" {
		t.Errorf("absolute project path rewritten to %q", loaded.Projects[1].Path)
	}

	if loaded.Workspace == nil {
		t.Fatal("workspace not loaded")
	}
	if loaded.Workspace.Workspace.XcWorkspacePath != "/repo/Suite.xcworkspace" {
		t.Errorf("xcworkspace path = %q", loaded.Workspace.Workspace.XcWorkspacePath)
	}
	if want := []string{"/repo/App", "/abs/Kit"}; !slices.Equal(loaded.Workspace.Workspace.Projects, want) {
		t.Errorf("workspace projects = %v, want %v", loaded.Workspace.Workspace.Projects, want)
	}
}

func TestParseProjectsOnly(t *testing.T) {
	loaded, err := Parse([]byte(`{"projects": [{"name": "A", "path": "a", "targets": []}]}`), "/r")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if loaded.Workspace != nil {
		t.Error("workspace synthesized for a document without one")
	}
	if loaded.Projects[0].Path != "/r/a" {
		t.Errorf("project path = %q", loaded.Projects[0].Path)
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"malformed":        `{"projects": [`,
		"no projects":      `{"projects": []}`,
		"duplicate target": `{"projects": [{"name": "A", "path": "a", "targets": [{"name": "T"}, {"name": "T"}]}]}`,
		"unnamed project":  `{"projects": [{"path": "a", "targets": []}]}`,
		"duplicate project path": `{"workspace": {"name": "W"}, "projects": [
			{"name": "A", "path": "same", "targets": []},
			{"name": "B", "path": "same", "targets": []}]}`,
	}
	for name, document := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(document), "/r"); err == nil {
				t.Error("Parse accepted an invalid document")
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "graph.jsonc")
	if err := os.WriteFile(path, []byte(workspaceDocument), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	loaded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if want := filepath.Join(directory, "App"); loaded.Projects[0].Path != want {
		t.Errorf("project path = %q, want %q", loaded.Projects[0].Path, want)
	}

	_, err = ReadFile(filepath.Join(directory, "missing.jsonc"))
	if err == nil || !strings.Contains(err.Error(), "missing.jsonc") {
		t.Errorf("ReadFile of a missing file = %v, want an error naming it", err)
	}
}
