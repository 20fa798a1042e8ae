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

// DeleteDerivedDirectoryMapper removes a project's derived directory
// so files from a previous generation do not linger. It must run
// before any mapper that writes derived files.
type DeleteDerivedDirectoryMapper struct {
	derivedDirectory string
	logger           *slog.Logger
}

// NewDeleteDerivedDirectoryMapper returns a mapper deleting
// <project>/derivedDirectory.
func NewDeleteDerivedDirectoryMapper(derivedDirectory string, logger *slog.Logger) *DeleteDerivedDirectoryMapper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DeleteDerivedDirectoryMapper{derivedDirectory: derivedDirectory, logger: logger}
}

func (*DeleteDerivedDirectoryMapper) Name() string { return "delete-derived-directory" }

func (m *DeleteDerivedDirectoryMapper) MapProject(project graph.Project) (graph.Project, []sideeffect.Descriptor, error) {
	if m.derivedDirectory == "" {
		return graph.Project{}, nil, errors.New("derived directory name is empty")
	}
	directory := filepath.Join(project.Path, m.derivedDirectory)
	m.logger.Debug("cleaning derived directory", "project", project.Name, "path", directory)
	return project, []sideeffect.Descriptor{sideeffect.DeleteDirectory(directory)}, nil
}

// DefaultConfigurationMapper gives a project without build
// configurations a single empty configuration with the given name.
// Projects that declare configurations are returned unchanged.
type DefaultConfigurationMapper struct {
	configuration string
}

func NewDefaultConfigurationMapper(configuration string) *DefaultConfigurationMapper {
	return &DefaultConfigurationMapper{configuration: configuration}
}

func (*DefaultConfigurationMapper) Name() string { return "default-configuration" }

func (m *DefaultConfigurationMapper) MapProject(project graph.Project) (graph.Project, []sideeffect.Descriptor, error) {
	if len(project.Settings.Configurations) > 0 {
		return project, nil, nil
	}
	if m.configuration == "" {
		return graph.Project{}, nil, errors.New("default configuration name is empty")
	}
	mapped := project.Clone()
	mapped.Settings.Configurations = map[string]map[string]string{m.configuration: {}}
	return mapped, nil, nil
}
