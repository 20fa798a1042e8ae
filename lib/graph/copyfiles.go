// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graph

import (
	"cmp"
	"slices"
)

// CopyFilesDestination is where a copy-files build phase places its
// files inside the built product.
type CopyFilesDestination string

const (
	DestinationAbsolutePath      CopyFilesDestination = "absolute_path"
	DestinationProductsDirectory CopyFilesDestination = "products_directory"
	DestinationWrapper           CopyFilesDestination = "wrapper"
	DestinationExecutables       CopyFilesDestination = "executables"
	DestinationResources         CopyFilesDestination = "resources"
	DestinationJavaResources     CopyFilesDestination = "java_resources"
	DestinationFrameworks        CopyFilesDestination = "frameworks"
	DestinationSharedFrameworks  CopyFilesDestination = "shared_frameworks"
	DestinationSharedSupport     CopyFilesDestination = "shared_support"
	DestinationPlugins           CopyFilesDestination = "plugins"
	DestinationOther             CopyFilesDestination = "other"
)

// CopyFilesAction is a build phase that copies files into the product.
// The order of Files carries no meaning; Subpath is optional and an
// empty subpath is distinct from no subpath.
type CopyFilesAction struct {
	Name        string               `json:"name"`
	Destination CopyFilesDestination `json:"destination"`
	Subpath     *string              `json:"subpath,omitempty"`
	Files       []CopyFileElement    `json:"files"`
}

// CopyFileElement is one file copied by a [CopyFilesAction].
type CopyFileElement struct {
	Path           string             `json:"path"`
	IsReference    bool               `json:"is_reference,omitempty"`
	CodeSignOnCopy bool               `json:"code_sign_on_copy,omitempty"`
	Condition      *PlatformCondition `json:"condition,omitempty"`
}

// Clone returns a deep copy of the action.
func (a CopyFilesAction) Clone() CopyFilesAction {
	clone := a
	if a.Subpath != nil {
		subpath := *a.Subpath
		clone.Subpath = &subpath
	}
	clone.Files = cloneEach(a.Files, func(file CopyFileElement) CopyFileElement {
		file.Condition = file.Condition.clone()
		return file
	})
	return clone
}

// SortedFiles returns the files ordered by path, the canonical order
// for hashing.
func (a CopyFilesAction) SortedFiles() []CopyFileElement {
	sorted := slices.Clone(a.Files)
	slices.SortStableFunc(sorted, func(left, right CopyFileElement) int {
		return cmp.Compare(left.Path, right.Path)
	})
	return sorted
}
