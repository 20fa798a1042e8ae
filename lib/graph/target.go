// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graph

import (
	"maps"
	"slices"
)

// Product is the kind of artifact a target builds.
type Product string

const (
	ProductApp            Product = "app"
	ProductFramework      Product = "framework"
	ProductStaticLibrary  Product = "static_library"
	ProductDynamicLibrary Product = "dynamic_library"
	ProductBundle         Product = "bundle"
	ProductUnitTests      Product = "unit_tests"
	ProductUITests        Product = "ui_tests"
	ProductCommandLine    Product = "command_line_tool"
	ProductAppExtension   Product = "app_extension"
)

// ScriptOrder places a target script before or after the compile
// phases.
type ScriptOrder string

const (
	ScriptPre  ScriptOrder = "pre"
	ScriptPost ScriptOrder = "post"
)

// DependencyKind distinguishes what a [TargetDependency] points at.
type DependencyKind string

const (
	DependencyTarget    DependencyKind = "target"
	DependencyProject   DependencyKind = "project"
	DependencyFramework DependencyKind = "framework"
	DependencyLibrary   DependencyKind = "library"
	DependencyPackage   DependencyKind = "package"
	DependencySDK       DependencyKind = "sdk"
)

// InfoPlistKind says how a target's Info.plist is supplied.
type InfoPlistKind string

const (
	// InfoPlistFile points at an existing plist on disk.
	InfoPlistFile InfoPlistKind = "file"
	// InfoPlistDictionary holds the plist content inline; a mapper
	// turns it into a derived file before generation.
	InfoPlistDictionary InfoPlistKind = "dictionary"
)

// Target is one buildable unit of a project.
type Target struct {
	Name         string             `json:"name"`
	Product      Product            `json:"product"`
	BundleID     string             `json:"bundle_id"`
	Destinations []Platform         `json:"destinations"`
	Sources      []SourceFile       `json:"sources,omitempty"`
	Resources    []ResourceFile     `json:"resources,omitempty"`
	CopyFiles    []CopyFilesAction  `json:"copy_files,omitempty"`
	Scripts      []TargetScript     `json:"scripts,omitempty"`
	InfoPlist    *InfoPlist         `json:"info_plist,omitempty"`
	Settings     Settings           `json:"settings,omitempty"`
	Environment  map[string]string  `json:"environment,omitempty"`
	Dependencies []TargetDependency `json:"dependencies,omitempty"`
}

// SourceFile is a compiled source. CompilerFlags keep their order
// because the compiler is sensitive to it.
type SourceFile struct {
	Path          string             `json:"path"`
	CompilerFlags []string           `json:"compiler_flags,omitempty"`
	Condition     *PlatformCondition `json:"condition,omitempty"`
}

// ResourceFile is a file bundled as a resource.
type ResourceFile struct {
	Path      string             `json:"path"`
	Tags      []string           `json:"tags,omitempty"`
	Condition *PlatformCondition `json:"condition,omitempty"`
}

// TargetScript is a shell build phase. Either Script (inline text) or
// Path (a script file) is set. InputPaths and OutputPaths are passed
// to the build system in order.
type TargetScript struct {
	Name        string      `json:"name"`
	Order       ScriptOrder `json:"order"`
	Script      string      `json:"script,omitempty"`
	Path        string      `json:"path,omitempty"`
	Arguments   []string    `json:"arguments,omitempty"`
	InputPaths  []string    `json:"input_paths,omitempty"`
	OutputPaths []string    `json:"output_paths,omitempty"`
	ShellPath   string      `json:"shell_path,omitempty"`
}

// TargetDependency is an edge from a target to something it links or
// builds against. Path is empty for same-project targets.
type TargetDependency struct {
	Kind      DependencyKind     `json:"kind"`
	Name      string             `json:"name"`
	Path      string             `json:"path,omitempty"`
	Condition *PlatformCondition `json:"condition,omitempty"`
}

// InfoPlist is either a path to a plist file or an inline dictionary.
type InfoPlist struct {
	Kind       InfoPlistKind     `json:"kind"`
	Path       string            `json:"path,omitempty"`
	Dictionary map[string]string `json:"dictionary,omitempty"`
}

// Settings holds build settings: a base layer plus per-configuration
// overrides keyed by configuration name ("Debug", "Release").
type Settings struct {
	Base           map[string]string            `json:"base,omitempty"`
	Configurations map[string]map[string]string `json:"configurations,omitempty"`
}

// Clone returns a deep copy of the settings.
func (s Settings) Clone() Settings {
	clone := Settings{Base: maps.Clone(s.Base)}
	if s.Configurations != nil {
		clone.Configurations = make(map[string]map[string]string, len(s.Configurations))
		for name, values := range s.Configurations {
			clone.Configurations[name] = maps.Clone(values)
		}
	}
	return clone
}

// ConfigurationNames returns the configuration names in sorted order.
func (s Settings) ConfigurationNames() []string {
	return slices.Sorted(maps.Keys(s.Configurations))
}

// Clone returns a deep copy of the info plist, or nil for nil.
func (p *InfoPlist) Clone() *InfoPlist {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Dictionary = maps.Clone(p.Dictionary)
	return &clone
}

// Clone returns a deep copy of the target. Mappers start from a clone
// so the input graph is never modified.
func (t Target) Clone() Target {
	clone := t
	clone.Destinations = slices.Clone(t.Destinations)
	clone.Sources = cloneEach(t.Sources, func(source SourceFile) SourceFile {
		source.CompilerFlags = slices.Clone(source.CompilerFlags)
		source.Condition = source.Condition.clone()
		return source
	})
	clone.Resources = cloneEach(t.Resources, func(resource ResourceFile) ResourceFile {
		resource.Tags = slices.Clone(resource.Tags)
		resource.Condition = resource.Condition.clone()
		return resource
	})
	clone.CopyFiles = cloneEach(t.CopyFiles, CopyFilesAction.Clone)
	clone.Scripts = cloneEach(t.Scripts, func(script TargetScript) TargetScript {
		script.Arguments = slices.Clone(script.Arguments)
		script.InputPaths = slices.Clone(script.InputPaths)
		script.OutputPaths = slices.Clone(script.OutputPaths)
		return script
	})
	clone.Dependencies = cloneEach(t.Dependencies, func(dependency TargetDependency) TargetDependency {
		dependency.Condition = dependency.Condition.clone()
		return dependency
	})
	clone.InfoPlist = t.InfoPlist.Clone()
	clone.Settings = t.Settings.Clone()
	clone.Environment = maps.Clone(t.Environment)
	return clone
}

// cloneEach copies a slice element by element, preserving nil.
func cloneEach[T any](values []T, cloneOne func(T) T) []T {
	if values == nil {
		return nil
	}
	clone := make([]T, len(values))
	for i, value := range values {
		clone[i] = cloneOne(value)
	}
	return clone
}
