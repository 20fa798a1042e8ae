// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mappers

import (
	"log/slog"

	"github.com/bureau-foundation/graphgen/lib/mapper"
)

// Options configures the standard pipelines.
type Options struct {
	// DerivedDirectory is the per-project directory for generated
	// files, relative to the project path.
	DerivedDirectory string

	// InfoPlistsDirectory is the subdirectory of DerivedDirectory
	// holding derived Info.plists.
	InfoPlistsDirectory string

	// DefaultConfiguration names the configuration given to projects
	// that declare none.
	DefaultConfiguration string

	// Workers bounds per-target and per-project parallelism. Zero or
	// negative means unbounded.
	Workers int

	// InfoPlistContent supplies derived Info.plist content. Nil uses
	// [StandardInfoPlistContent].
	InfoPlistContent InfoPlistContentProvider
}

// NewProjectPipeline returns the project mappers in their required
// order: the derived directory is deleted before anything is written
// into it.
func NewProjectPipeline(options Options, logger *slog.Logger) *mapper.SequentialProjectMapper {
	content := options.InfoPlistContent
	if content == nil {
		content = StandardInfoPlistContent{}
	}
	return mapper.NewSequentialProjectMapper(logger,
		NewDeleteDerivedDirectoryMapper(options.DerivedDirectory, logger),
		NewDefaultConfigurationMapper(options.DefaultConfiguration),
		NewGenerateInfoPlistMapper(content, options.DerivedDirectory, options.InfoPlistsDirectory, options.Workers, logger),
	)
}

// NewWorkspacePipeline runs the project pipeline over every project of
// the workspace and then marks the workspace as generated.
func NewWorkspacePipeline(options Options, logger *slog.Logger) *mapper.SequentialWorkspaceMapper {
	return mapper.NewSequentialWorkspaceMapper(logger,
		mapper.NewProjectWorkspaceMapper(NewProjectPipeline(options, logger), options.Workers),
		NewWorkspaceIdentifierMapper(logger),
	)
}
