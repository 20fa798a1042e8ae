// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mappers

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"howett.net/plist"

	"github.com/bureau-foundation/graphgen/lib/graph"
	"github.com/bureau-foundation/graphgen/lib/mapper"
	"github.com/bureau-foundation/graphgen/lib/sideeffect"
)

// InfoPlistContentProvider produces the full content of a derived
// Info.plist for target. Values from the manifest dictionary must take
// precedence over anything the provider adds.
type InfoPlistContentProvider interface {
	Content(project graph.Project, target graph.Target, dictionary map[string]string) (map[string]any, error)
}

// StandardInfoPlistContent fills in the bundle keys every product
// needs, expressed as build-setting references so the build system
// resolves them.
type StandardInfoPlistContent struct{}

func (StandardInfoPlistContent) Content(_ graph.Project, target graph.Target, dictionary map[string]string) (map[string]any, error) {
	content := map[string]any{
		"CFBundleDevelopmentRegion":     "$(DEVELOPMENT_LANGUAGE)",
		"CFBundleExecutable":            "$(EXECUTABLE_NAME)",
		"CFBundleIdentifier":            "$(PRODUCT_BUNDLE_IDENTIFIER)",
		"CFBundleInfoDictionaryVersion": "6.0",
		"CFBundleName":                  "$(PRODUCT_NAME)",
		"CFBundlePackageType":           "$(PRODUCT_BUNDLE_PACKAGE_TYPE)",
		"CFBundleShortVersionString":    "1.0",
		"CFBundleVersion":               "1",
	}
	if target.Product == graph.ProductApp && slices.Contains(target.Destinations, graph.PlatformIOS) {
		content["LSRequiresIPhoneOS"] = true
	}
	for key, value := range dictionary {
		content[key] = value
	}
	return content, nil
}

// GenerateInfoPlistMapper writes dictionary Info.plists to derived
// files and points targets at them. Targets whose plist is already a
// file, or who have none, are left alone.
type GenerateInfoPlistMapper struct {
	content    InfoPlistContentProvider
	derived    string
	infoPlists string
	workers    int
	logger     *slog.Logger
}

// NewGenerateInfoPlistMapper returns a mapper writing plists to
// <project>/derived/infoPlists/<target>-Info.plist.
func NewGenerateInfoPlistMapper(content InfoPlistContentProvider, derived, infoPlists string, workers int, logger *slog.Logger) *GenerateInfoPlistMapper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &GenerateInfoPlistMapper{
		content:    content,
		derived:    derived,
		infoPlists: infoPlists,
		workers:    workers,
		logger:     logger,
	}
}

func (*GenerateInfoPlistMapper) Name() string { return "generate-info-plist" }

// DerivedPath returns where the plist for targetName is written.
func (m *GenerateInfoPlistMapper) DerivedPath(project graph.Project, targetName string) string {
	return filepath.Join(project.Path, m.derived, m.infoPlists, targetName+"-Info.plist")
}

// MapProject lifts the per-target rewrite over every target; the
// target step needs the project for paths and content, so the lift is
// built per call.
func (m *GenerateInfoPlistMapper) MapProject(project graph.Project) (graph.Project, []sideeffect.Descriptor, error) {
	perTarget := mapper.TargetMapperFunc(func(target graph.Target) (graph.Target, []sideeffect.Descriptor, error) {
		return m.mapTarget(project, target)
	})
	return mapper.NewTargetProjectMapper(perTarget, m.workers).MapProject(project)
}

func (m *GenerateInfoPlistMapper) mapTarget(project graph.Project, target graph.Target) (graph.Target, []sideeffect.Descriptor, error) {
	if target.InfoPlist == nil || target.InfoPlist.Kind != graph.InfoPlistDictionary {
		return target, nil, nil
	}
	content, err := m.content.Content(project, target, target.InfoPlist.Dictionary)
	if err != nil {
		return graph.Target{}, nil, fmt.Errorf("info plist content for %s: %w", target.Name, err)
	}
	if content == nil {
		return graph.Target{}, nil, errors.New("info plist content provider returned no content")
	}
	data, err := EncodeInfoPlist(content)
	if err != nil {
		return graph.Target{}, nil, err
	}

	path := m.DerivedPath(project, target.Name)
	m.logger.Debug("deriving info plist", "project", project.Name, "target", target.Name, "path", path, "keys", len(content))

	mapped := target.Clone()
	mapped.InfoPlist = &graph.InfoPlist{Kind: graph.InfoPlistFile, Path: path}
	return mapped, []sideeffect.Descriptor{sideeffect.File(path, data)}, nil
}

// EncodeInfoPlist renders content as an XML property list. The
// encoder writes dictionary keys in sorted order, so equal content
// always yields equal bytes.
func EncodeInfoPlist(content map[string]any) ([]byte, error) {
	data, err := plist.MarshalIndent(content, plist.XMLFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf("encoding info plist: %w", err)
	}
	return data, nil
}
