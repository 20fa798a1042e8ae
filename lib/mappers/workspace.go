// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mappers

import (
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/bureau-foundation/graphgen/lib/graph"
	"github.com/bureau-foundation/graphgen/lib/sideeffect"
)

// GeneratedMarkerName is the file placed inside every generated
// workspace bundle so tools can tell it was produced by graphgen.
const GeneratedMarkerName = ".graphgen-generated"

// WorkspaceIdentifierMapper marks the generated workspace bundle.
type WorkspaceIdentifierMapper struct {
	logger *slog.Logger
}

func NewWorkspaceIdentifierMapper(logger *slog.Logger) *WorkspaceIdentifierMapper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &WorkspaceIdentifierMapper{logger: logger}
}

func (*WorkspaceIdentifierMapper) Name() string { return "workspace-identifier" }

// MapWorkspace returns the workspace unchanged plus one empty marker
// file under its xcworkspace path.
func (m *WorkspaceIdentifierMapper) MapWorkspace(workspace graph.WorkspaceWithProjects) (graph.WorkspaceWithProjects, []sideeffect.Descriptor, error) {
	bundle := workspace.Workspace.XcWorkspacePath
	if bundle == "" {
		return graph.WorkspaceWithProjects{}, nil, errors.New("workspace has no xcworkspace path")
	}
	m.logger.Debug("signing workspace", "workspace", workspace.Workspace.Name)
	marker := sideeffect.File(filepath.Join(bundle, GeneratedMarkerName), nil)
	return workspace, []sideeffect.Descriptor{marker}, nil
}
