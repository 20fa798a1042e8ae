// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapper

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/bureau-foundation/graphgen/lib/graph"
	"github.com/bureau-foundation/graphgen/lib/sideeffect"
)

// SequentialProjectMapper runs project mappers in order, feeding each
// one's output to the next.
type SequentialProjectMapper struct {
	mappers []ProjectMapper
	logger  *slog.Logger
}

// NewSequentialProjectMapper returns a pipeline over mappers, applied
// in the given order. A nil logger discards progress records.
func NewSequentialProjectMapper(logger *slog.Logger, mappers ...ProjectMapper) *SequentialProjectMapper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SequentialProjectMapper{mappers: slices.Clone(mappers), logger: logger}
}

// Name implements [Named].
func (s *SequentialProjectMapper) Name() string {
	return fmt.Sprintf("sequential-project(%d)", len(s.mappers))
}

// MapProject implements [ProjectMapper]. With no mappers it returns
// project unchanged and no side effects.
func (s *SequentialProjectMapper) MapProject(project graph.Project) (graph.Project, []sideeffect.Descriptor, error) {
	entity := "project " + project.Name
	current := project
	var sideEffects []sideeffect.Descriptor

	for position, stage := range s.mappers {
		label := stageLabel(position, stage)
		mapped, effects, err := stage.MapProject(current)
		if err != nil {
			s.logger.Debug("project mapper failed", "project", project.Name, "stage", label, "error", err)
			return graph.Project{}, nil, stageFailure(entity, label, err)
		}
		s.logger.Debug("project mapper applied",
			"project", project.Name,
			"stage", label,
			"side_effects", len(effects),
		)
		current = mapped
		sideEffects = append(sideEffects, effects...)
	}

	return current, sideEffects, nil
}

// SequentialWorkspaceMapper runs workspace mappers in order, feeding
// each one's output to the next.
type SequentialWorkspaceMapper struct {
	mappers []WorkspaceMapper
	logger  *slog.Logger
}

// NewSequentialWorkspaceMapper returns a pipeline over mappers,
// applied in the given order. A nil logger discards progress records.
func NewSequentialWorkspaceMapper(logger *slog.Logger, mappers ...WorkspaceMapper) *SequentialWorkspaceMapper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SequentialWorkspaceMapper{mappers: slices.Clone(mappers), logger: logger}
}

// Name implements [Named].
func (s *SequentialWorkspaceMapper) Name() string {
	return fmt.Sprintf("sequential-workspace(%d)", len(s.mappers))
}

// MapWorkspace implements [WorkspaceMapper]. With no mappers it
// returns workspace unchanged and no side effects.
func (s *SequentialWorkspaceMapper) MapWorkspace(workspace graph.WorkspaceWithProjects) (graph.WorkspaceWithProjects, []sideeffect.Descriptor, error) {
	name := workspace.Workspace.Name
	entity := "workspace " + name
	current := workspace
	var sideEffects []sideeffect.Descriptor

	for position, stage := range s.mappers {
		label := stageLabel(position, stage)
		mapped, effects, err := stage.MapWorkspace(current)
		if err != nil {
			s.logger.Debug("workspace mapper failed", "workspace", name, "stage", label, "error", err)
			return graph.WorkspaceWithProjects{}, nil, stageFailure(entity, label, err)
		}
		s.logger.Debug("workspace mapper applied",
			"workspace", name,
			"stage", label,
			"side_effects", len(effects),
		)
		current = mapped
		sideEffects = append(sideEffects, effects...)
	}

	return current, sideEffects, nil
}
