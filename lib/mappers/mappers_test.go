// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mappers

import (
	"errors"
	"reflect"
	"testing"

	"howett.net/plist"

	"github.com/bureau-foundation/graphgen/lib/graph"
	"github.com/bureau-foundation/graphgen/lib/mapper"
	"github.com/bureau-foundation/graphgen/lib/sideeffect"
)

// literalContent returns the manifest dictionary as the whole plist.
type literalContent struct{}

func (literalContent) Content(_ graph.Project, _ graph.Target, dictionary map[string]string) (map[string]any, error) {
	content := make(map[string]any, len(dictionary))
	for key, value := range dictionary {
		content[key] = value
	}
	return content, nil
}

type failingContent struct{ err error }

func (f failingContent) Content(graph.Project, graph.Target, map[string]string) (map[string]any, error) {
	return nil, f.err
}

func dictionaryTarget(name string, dictionary map[string]string) graph.Target {
	return graph.Target{
		Name:      name,
		Product:   graph.ProductApp,
		InfoPlist: &graph.InfoPlist{Kind: graph.InfoPlistDictionary, Dictionary: dictionary},
	}
}

func mustProject(t *testing.T, targets ...graph.Target) graph.Project {
	t.Helper()
	project, err := graph.NewProject("App", "/project", targets...)
	if err != nil {
		t.Fatalf("NewProject: %v", err)
	}
	return project
}

func decodePlist(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var decoded map[string]any
	if _, err := plist.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding plist: %v", err)
	}
	return decoded
}

func TestGenerateInfoPlistDerivesFiles(t *testing.T) {
	project := mustProject(t,
		dictionaryTarget("A", map[string]string{"A": "A_VALUE"}),
		dictionaryTarget("B", map[string]string{"B": "B_VALUE"}),
	)
	subject := NewGenerateInfoPlistMapper(literalContent{}, "Derived", "InfoPlists", 0, nil)

	mapped, effects, err := subject.MapProject(project)
	if err != nil {
		t.Fatalf("MapProject: %v", err)
	}
	if len(effects) != 2 {
		t.Fatalf("got %d side effects, want 2", len(effects))
	}
	if len(mapped.Targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(mapped.Targets))
	}

	for index, name := range []string{"A", "B"} {
		wantPath := "/project/Derived/InfoPlists/" + name + "-Info.plist"
		effect := effects[index]
		if effect.Kind != sideeffect.KindFile || effect.File.Path != wantPath {
			t.Errorf("side effect %d = %s, want a write of %s", index, effect, wantPath)
			continue
		}
		content := decodePlist(t, effect.File.Contents)
		if want := map[string]any{name: name + "_VALUE"}; !reflect.DeepEqual(content, want) {
			t.Errorf("plist for %s = %v, want %v", name, content, want)
		}

		plistRef := mapped.Targets[name].InfoPlist
		if plistRef == nil || plistRef.Kind != graph.InfoPlistFile || plistRef.Path != wantPath {
			t.Errorf("target %s info plist = %+v, want file %s", name, plistRef, wantPath)
		}
	}

	if project.Targets["A"].InfoPlist.Kind != graph.InfoPlistDictionary {
		t.Error("input project was modified")
	}
}

func TestGenerateInfoPlistSkipsFilePlists(t *testing.T) {
	fileTarget := graph.Target{Name: "F", InfoPlist: &graph.InfoPlist{Kind: graph.InfoPlistFile, Path: "/project/Info.plist"}}
	project := mustProject(t, fileTarget, graph.Target{Name: "None"})
	subject := NewGenerateInfoPlistMapper(literalContent{}, "Derived", "InfoPlists", 1, nil)

	mapped, effects, err := subject.MapProject(project)
	if err != nil {
		t.Fatalf("MapProject: %v", err)
	}
	if len(effects) != 0 {
		t.Errorf("side effects = %v, want none", effects)
	}
	if !reflect.DeepEqual(mapped.Targets, project.Targets) {
		t.Error("targets without dictionary plists were changed")
	}
}

func TestGenerateInfoPlistProviderFailure(t *testing.T) {
	cause := errors.New("no template")
	project := mustProject(t, dictionaryTarget("A", nil))
	subject := NewGenerateInfoPlistMapper(failingContent{err: cause}, "Derived", "InfoPlists", 0, nil)

	_, effects, err := subject.MapProject(project)
	if !errors.Is(err, cause) {
		t.Fatalf("error = %v, want it to wrap the provider failure", err)
	}
	var stageErr *mapper.StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("error %T is not a *mapper.StageError", err)
	}
	if effects != nil {
		t.Errorf("failed mapping returned side effects")
	}
}

func TestStandardContentLetsManifestOverride(t *testing.T) {
	target := graph.Target{Name: "App", Product: graph.ProductApp, Destinations: []graph.Platform{graph.PlatformIOS}}
	content, err := StandardInfoPlistContent{}.Content(graph.Project{}, target, map[string]string{"CFBundleVersion": "42"})
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	if content["CFBundleVersion"] != "42" {
		t.Errorf("CFBundleVersion = %v, want the manifest value", content["CFBundleVersion"])
	}
	if content["LSRequiresIPhoneOS"] != true {
		t.Error("iOS app is missing LSRequiresIPhoneOS")
	}
}

func TestEncodeInfoPlistIsDeterministic(t *testing.T) {
	content := map[string]any{"b": "2", "a": "1", "c": true}
	first, err := EncodeInfoPlist(content)
	if err != nil {
		t.Fatalf("EncodeInfoPlist: %v", err)
	}
	for range 10 {
		again, err := EncodeInfoPlist(content)
		if err != nil {
			t.Fatalf("EncodeInfoPlist: %v", err)
		}
		if string(again) != string(first) {
			t.Fatal("EncodeInfoPlist output differs between calls")
		}
	}
}

func TestWorkspaceIdentifierMapper(t *testing.T) {
	workspace := graph.WorkspaceWithProjects{
		Workspace: graph.Workspace{Name: "W", Path: "/w", XcWorkspacePath: "/w/W.xcworkspace"},
	}
	mapped, effects, err := NewWorkspaceIdentifierMapper(nil).MapWorkspace(workspace)
	if err != nil {
		t.Fatalf("MapWorkspace: %v", err)
	}
	if !reflect.DeepEqual(mapped, workspace) {
		t.Error("workspace was changed")
	}
	want := []sideeffect.Descriptor{sideeffect.File("/w/W.xcworkspace/"+GeneratedMarkerName, nil)}
	if !sideeffect.EqualLists(effects, want) {
		t.Errorf("side effects = %v, want %v", effects, want)
	}

	workspace.Workspace.XcWorkspacePath = ""
	if _, _, err := NewWorkspaceIdentifierMapper(nil).MapWorkspace(workspace); err == nil {
		t.Error("workspace without an xcworkspace path was accepted")
	}
}

func TestDeleteDerivedDirectory(t *testing.T) {
	project := mustProject(t)
	_, effects, err := NewDeleteDerivedDirectoryMapper("Derived", nil).MapProject(project)
	if err != nil {
		t.Fatalf("MapProject: %v", err)
	}
	want := []sideeffect.Descriptor{sideeffect.DeleteDirectory("/project/Derived")}
	if !sideeffect.EqualLists(effects, want) {
		t.Errorf("side effects = %v, want %v", effects, want)
	}
}

func TestDefaultConfiguration(t *testing.T) {
	bare := mustProject(t)
	mapped, _, err := NewDefaultConfigurationMapper("Debug").MapProject(bare)
	if err != nil {
		t.Fatalf("MapProject: %v", err)
	}
	if names := mapped.Settings.ConfigurationNames(); !reflect.DeepEqual(names, []string{"Debug"}) {
		t.Errorf("configurations = %v, want [Debug]", names)
	}
	if bare.Settings.Configurations != nil {
		t.Error("input project was modified")
	}

	configured := mustProject(t)
	configured.Settings.Configurations = map[string]map[string]string{"Release": {"X": "1"}}
	mapped, _, err = NewDefaultConfigurationMapper("Debug").MapProject(configured)
	if err != nil {
		t.Fatalf("MapProject: %v", err)
	}
	if names := mapped.Settings.ConfigurationNames(); !reflect.DeepEqual(names, []string{"Release"}) {
		t.Errorf("configurations = %v, want [Release]", names)
	}

	if _, _, err := NewDefaultConfigurationMapper("").MapProject(bare); err == nil {
		t.Error("empty default configuration was accepted")
	}
}

func TestWorkspacePipelineOrdersSideEffects(t *testing.T) {
	project := mustProject(t, dictionaryTarget("A", map[string]string{"K": "V"}))
	workspace := graph.WorkspaceWithProjects{
		Workspace: graph.Workspace{Name: "W", Path: "/w", XcWorkspacePath: "/w/W.xcworkspace", Projects: []string{"/project"}},
		Projects:  []graph.Project{project},
	}
	options := Options{
		DerivedDirectory:     "Derived",
		InfoPlistsDirectory:  "InfoPlists",
		DefaultConfiguration: "Debug",
		InfoPlistContent:     literalContent{},
	}

	mapped, effects, err := NewWorkspacePipeline(options, nil).MapWorkspace(workspace)
	if err != nil {
		t.Fatalf("MapWorkspace: %v", err)
	}

	var described []string
	for _, effect := range effects {
		described = append(described, effect.String())
	}
	if len(effects) != 3 {
		t.Fatalf("side effects = %v, want 3", described)
	}
	if effects[0].Kind != sideeffect.KindDirectory || effects[0].Directory.State != sideeffect.StateAbsent {
		t.Errorf("first side effect = %s, want the derived directory deletion", effects[0])
	}
	if effects[1].File == nil || effects[1].File.Path != "/project/Derived/InfoPlists/A-Info.plist" {
		t.Errorf("second side effect = %s, want the derived plist", effects[1])
	}
	if effects[2].File == nil || effects[2].File.Path != "/w/W.xcworkspace/"+GeneratedMarkerName {
		t.Errorf("third side effect = %s, want the workspace marker", effects[2])
	}
	if got := mapped.Projects[0].Settings.ConfigurationNames(); !reflect.DeepEqual(got, []string{"Debug"}) {
		t.Errorf("project configurations = %v, want [Debug]", got)
	}
}
