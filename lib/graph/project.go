// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graph

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Project is a set of targets generated into one IDE project.
type Project struct {
	Name            string            `json:"name"`
	Path            string            `json:"path"`
	SourceRootPath  string            `json:"source_root_path,omitempty"`
	XcodeProjPath   string            `json:"xcodeproj_path,omitempty"`
	Organization    string            `json:"organization,omitempty"`
	Targets         map[string]Target `json:"targets"`
	Settings        Settings          `json:"settings,omitempty"`
	AdditionalFiles []string          `json:"additional_files,omitempty"`
}

// NewProject builds a project from a target list, keying each target
// by its name. Returns an error if two targets share a name.
func NewProject(name, path string, targets ...Target) (Project, error) {
	project := Project{
		Name:    name,
		Path:    path,
		Targets: make(map[string]Target, len(targets)),
	}
	for _, target := range targets {
		if _, exists := project.Targets[target.Name]; exists {
			return Project{}, fmt.Errorf("project %s: duplicate target name %q", name, target.Name)
		}
		project.Targets[target.Name] = target
	}
	return project, nil
}

// TargetNames returns the names of all targets in sorted order. This
// is the canonical iteration order wherever results must be
// reproducible.
func (p Project) TargetNames() []string {
	return slices.Sorted(maps.Keys(p.Targets))
}

// SortedTargets returns the targets ordered by name.
func (p Project) SortedTargets() []Target {
	names := p.TargetNames()
	targets := make([]Target, len(names))
	for i, name := range names {
		targets[i] = p.Targets[name]
	}
	return targets
}

// WithTargets returns a copy of the project whose target map is
// replaced by the given targets keyed by name. The receiver is not
// modified. Returns an error on a duplicate name.
func (p Project) WithTargets(targets []Target) (Project, error) {
	updated := p
	updated.Targets = make(map[string]Target, len(targets))
	for _, target := range targets {
		if _, exists := updated.Targets[target.Name]; exists {
			return Project{}, fmt.Errorf("project %s: duplicate target name %q", p.Name, target.Name)
		}
		updated.Targets[target.Name] = target
	}
	return updated, nil
}

// Clone returns a deep copy of the project.
func (p Project) Clone() Project {
	clone := p
	if p.Targets != nil {
		clone.Targets = make(map[string]Target, len(p.Targets))
		for name, target := range p.Targets {
			clone.Targets[name] = target.Clone()
		}
	}
	clone.Settings = p.Settings.Clone()
	clone.AdditionalFiles = slices.Clone(p.AdditionalFiles)
	return clone
}

// Validate checks the structural invariants graphgen depends on:
// a non-empty name and path, and every target stored under its own
// name. All violations are reported together.
func (p Project) Validate() error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, errors.New("project name is required"))
	}
	if p.Path == "" {
		errs = append(errs, fmt.Errorf("project %s: path is required", p.Name))
	}
	for _, key := range p.TargetNames() {
		target := p.Targets[key]
		if target.Name == "" {
			errs = append(errs, fmt.Errorf("project %s: target under key %q has no name", p.Name, key))
		} else if target.Name != key {
			errs = append(errs, fmt.Errorf("project %s: target %q stored under key %q", p.Name, target.Name, key))
		}
	}
	return errors.Join(errs...)
}
