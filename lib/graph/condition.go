// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graph

import (
	"slices"
	"strings"
)

// Platform is an operating system family a target can build for.
type Platform string

const (
	PlatformIOS      Platform = "ios"
	PlatformMacOS    Platform = "macos"
	PlatformTVOS     Platform = "tvos"
	PlatformWatchOS  Platform = "watchos"
	PlatformVisionOS Platform = "visionos"
	PlatformCatalyst Platform = "catalyst"
)

// PlatformCondition restricts a file, dependency, or phase to a subset
// of platforms. The filter set is unordered: two conditions with the
// same platforms in different order are the same condition.
type PlatformCondition struct {
	Platforms []Platform `json:"platforms"`
}

// NewPlatformCondition returns a condition for the given platforms, or
// nil when the list is empty. An empty condition would match nothing,
// which is never what a manifest author means.
func NewPlatformCondition(platforms ...Platform) *PlatformCondition {
	if len(platforms) == 0 {
		return nil
	}
	return &PlatformCondition{Platforms: slices.Clone(platforms)}
}

// Sorted returns the platform filters in canonical (lexical) order
// with duplicates removed.
func (c PlatformCondition) Sorted() []Platform {
	sorted := slices.Clone(c.Platforms)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

// String joins the canonical filter list with underscores, e.g.
// "ios_macos".
func (c PlatformCondition) String() string {
	sorted := c.Sorted()
	names := make([]string, len(sorted))
	for i, platform := range sorted {
		names[i] = string(platform)
	}
	return strings.Join(names, "_")
}

func (c *PlatformCondition) clone() *PlatformCondition {
	if c == nil {
		return nil
	}
	return &PlatformCondition{Platforms: slices.Clone(c.Platforms)}
}
