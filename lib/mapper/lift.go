// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapper

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/graphgen/lib/graph"
	"github.com/bureau-foundation/graphgen/lib/sideeffect"
)

// liftResult is one entity's mapping outcome, stored by canonical
// index so completion order never leaks into the merged result.
type liftResult[T any] struct {
	value   T
	effects []sideeffect.Descriptor
	err     error
}

// mapAll runs mapOne for every index in [0, count) on up to workers
// goroutines (unbounded when workers <= 0) and returns the results in
// index order. Every item runs even if another fails; the caller
// picks the first failure by index, which keeps error reporting
// deterministic.
func mapAll[T any](count, workers int, mapOne func(index int) (T, []sideeffect.Descriptor, error)) []liftResult[T] {
	results := make([]liftResult[T], count)
	var group errgroup.Group
	if workers > 0 {
		group.SetLimit(workers)
	}
	for index := range count {
		group.Go(func() error {
			value, effects, err := mapOne(index)
			results[index] = liftResult[T]{value: value, effects: effects, err: err}
			return nil
		})
	}
	_ = group.Wait()
	return results
}

// TargetProjectMapper applies a [TargetMapper] to every target of a
// project.
type TargetProjectMapper struct {
	mapper  TargetMapper
	workers int
}

// NewTargetProjectMapper lifts mapper to a project mapper. Targets are
// mapped on up to workers goroutines; zero or negative means one
// goroutine per target.
func NewTargetProjectMapper(mapper TargetMapper, workers int) *TargetProjectMapper {
	return &TargetProjectMapper{mapper: mapper, workers: workers}
}

// Name implements [Named].
func (m *TargetProjectMapper) Name() string {
	return "targets(" + stageName(m.mapper) + ")"
}

// MapProject implements [ProjectMapper]. Mapped targets are re-keyed
// by their (possibly new) names; two targets mapping to the same name
// is a failure. Side effects are concatenated in the sorted order of
// the original target names.
func (m *TargetProjectMapper) MapProject(project graph.Project) (graph.Project, []sideeffect.Descriptor, error) {
	names := project.TargetNames()
	stage := stageName(m.mapper)

	results := mapAll(len(names), m.workers, func(index int) (graph.Target, []sideeffect.Descriptor, error) {
		return m.mapper.MapTarget(project.Targets[names[index]])
	})

	targets := make([]graph.Target, len(names))
	var sideEffects []sideeffect.Descriptor
	for index, result := range results {
		if result.err != nil {
			entity := fmt.Sprintf("target %s of project %s", names[index], project.Name)
			return graph.Project{}, nil, stageFailure(entity, stage, result.err)
		}
		targets[index] = result.value
		sideEffects = append(sideEffects, result.effects...)
	}

	mapped, err := project.WithTargets(targets)
	if err != nil {
		return graph.Project{}, nil, &StageError{Entity: "project " + project.Name, Stage: m.Name(), Err: err}
	}
	return mapped, sideEffects, nil
}

// ProjectWorkspaceMapper applies a [ProjectMapper] to every project of
// a workspace.
type ProjectWorkspaceMapper struct {
	mapper  ProjectMapper
	workers int
}

// NewProjectWorkspaceMapper lifts mapper to a workspace mapper.
// Projects are mapped on up to workers goroutines; zero or negative
// means one goroutine per project.
func NewProjectWorkspaceMapper(mapper ProjectMapper, workers int) *ProjectWorkspaceMapper {
	return &ProjectWorkspaceMapper{mapper: mapper, workers: workers}
}

// Name implements [Named].
func (m *ProjectWorkspaceMapper) Name() string {
	return "projects(" + stageName(m.mapper) + ")"
}

// MapWorkspace implements [WorkspaceMapper]. Mapped projects keep
// their positions in the workspace; side effects are concatenated in
// project-path order.
func (m *ProjectWorkspaceMapper) MapWorkspace(workspace graph.WorkspaceWithProjects) (graph.WorkspaceWithProjects, []sideeffect.Descriptor, error) {
	projects := workspace.Projects
	stage := stageName(m.mapper)

	results := mapAll(len(projects), m.workers, func(index int) (graph.Project, []sideeffect.Descriptor, error) {
		return m.mapper.MapProject(projects[index])
	})

	mapped := workspace
	mapped.Projects = make([]graph.Project, len(projects))
	order := make([]int, len(projects))
	for index := range projects {
		order[index] = index
	}
	sortIndicesByPath(order, projects)

	var sideEffects []sideeffect.Descriptor
	for _, index := range order {
		result := results[index]
		if result.err != nil {
			entity := fmt.Sprintf("project %s of workspace %s", projects[index].Name, workspace.Workspace.Name)
			return graph.WorkspaceWithProjects{}, nil, stageFailure(entity, stage, result.err)
		}
		mapped.Projects[index] = result.value
		sideEffects = append(sideEffects, result.effects...)
	}
	return mapped, sideEffects, nil
}

// sortIndicesByPath orders indices by the path of the project each
// refers to, falling back to index order for equal paths.
func sortIndicesByPath(indices []int, projects []graph.Project) {
	slices.SortStableFunc(indices, func(a, b int) int {
		return cmp.Compare(projects[a].Path, projects[b].Path)
	})
}
