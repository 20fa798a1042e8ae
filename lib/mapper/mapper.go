// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapper

import (
	"fmt"

	"github.com/bureau-foundation/graphgen/lib/graph"
	"github.com/bureau-foundation/graphgen/lib/sideeffect"
)

// ProjectMapper transforms a project. Implementations must not modify
// their argument (clone before editing) and must not perform I/O.
type ProjectMapper interface {
	MapProject(project graph.Project) (graph.Project, []sideeffect.Descriptor, error)
}

// WorkspaceMapper transforms a workspace together with its projects.
// The same purity rules as [ProjectMapper] apply.
type WorkspaceMapper interface {
	MapWorkspace(workspace graph.WorkspaceWithProjects) (graph.WorkspaceWithProjects, []sideeffect.Descriptor, error)
}

// TargetMapper transforms one target. Lift it into a project mapper
// with [NewTargetProjectMapper].
type TargetMapper interface {
	MapTarget(target graph.Target) (graph.Target, []sideeffect.Descriptor, error)
}

// Named is implemented by mappers that want a readable stage label in
// errors and logs. Mappers without it are labeled by Go type.
type Named interface {
	Name() string
}

// ProjectMapperFunc adapts a function to [ProjectMapper].
type ProjectMapperFunc func(project graph.Project) (graph.Project, []sideeffect.Descriptor, error)

// MapProject implements [ProjectMapper].
func (f ProjectMapperFunc) MapProject(project graph.Project) (graph.Project, []sideeffect.Descriptor, error) {
	return f(project)
}

// WorkspaceMapperFunc adapts a function to [WorkspaceMapper].
type WorkspaceMapperFunc func(workspace graph.WorkspaceWithProjects) (graph.WorkspaceWithProjects, []sideeffect.Descriptor, error)

// MapWorkspace implements [WorkspaceMapper].
func (f WorkspaceMapperFunc) MapWorkspace(workspace graph.WorkspaceWithProjects) (graph.WorkspaceWithProjects, []sideeffect.Descriptor, error) {
	return f(workspace)
}

// TargetMapperFunc adapts a function to [TargetMapper].
type TargetMapperFunc func(target graph.Target) (graph.Target, []sideeffect.Descriptor, error)

// MapTarget implements [TargetMapper].
func (f TargetMapperFunc) MapTarget(target graph.Target) (graph.Target, []sideeffect.Descriptor, error) {
	return f(target)
}

// stageName returns the label used for mapper in errors and logs.
func stageName(mapper any) string {
	if named, ok := mapper.(Named); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", mapper)
}

// stageLabel prefixes a stage's name with its 1-based pipeline
// position, which disambiguates a mapper that appears twice.
func stageLabel(position int, mapper any) string {
	return fmt.Sprintf("%d:%s", position+1, stageName(mapper))
}
