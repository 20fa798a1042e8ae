// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contenthash

import (
	"fmt"
	"strconv"
	"strings"
)

// ChangeKind classifies one entry of a [Diff].
type ChangeKind int

const (
	Added ChangeKind = iota
	Removed
	Modified
)

func (kind ChangeKind) String() string {
	switch kind {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	default:
		return fmt.Sprintf("unknown(%d)", int(kind))
	}
}

// Change is one difference between two trees. Path is the
// slash-joined identifier path from (and excluding) the root, with
// identifiers containing "/" quoted. Old is
// zero for Added, New is zero for Removed.
type Change struct {
	Path string
	Kind ChangeKind
	Old  Hash
	New  Hash
}

// Diff reports the deepest nodes that explain why before and after
// have different root hashes. Children are matched by identifier
// (repeated identifiers are matched by occurrence). A node whose
// children all match but whose hash still differs (the children were
// reordered, or its leaf content changed) is reported as Modified.
//
// Equal roots produce no changes.
func Diff(before, after MerkleNode) []Change {
	var changes []Change
	diffNode(nil, before, after, &changes)
	return changes
}

func diffNode(path []string, before, after MerkleNode, changes *[]Change) {
	if before.Hash == after.Hash {
		return
	}
	if len(before.Children) == 0 || len(after.Children) == 0 {
		*changes = append(*changes, Change{Path: joinPath(path), Kind: Modified, Old: before.Hash, New: after.Hash})
		return
	}

	beforeKeys := occurrenceKeys(before.Children)
	afterKeys := occurrenceKeys(after.Children)
	afterByKey := make(map[string]int, len(afterKeys))
	for i, key := range afterKeys {
		afterByKey[key] = i
	}

	reported := len(*changes)
	matched := make(map[string]bool, len(beforeKeys))
	for i, key := range beforeKeys {
		childPath := append(path[:len(path):len(path)], key)
		j, ok := afterByKey[key]
		if !ok {
			*changes = append(*changes, Change{Path: joinPath(childPath), Kind: Removed, Old: before.Children[i].Hash})
			continue
		}
		matched[key] = true
		diffNode(childPath, before.Children[i], after.Children[j], changes)
	}
	for j, key := range afterKeys {
		if matched[key] {
			continue
		}
		childPath := append(path[:len(path):len(path)], key)
		*changes = append(*changes, Change{Path: joinPath(childPath), Kind: Added, New: after.Children[j].Hash})
	}

	if len(*changes) == reported {
		*changes = append(*changes, Change{Path: joinPath(path), Kind: Modified, Old: before.Hash, New: after.Hash})
	}
}

// occurrenceKeys labels children by identifier, suffixing repeats with
// "#n" so each child has a unique key.
func occurrenceKeys(children []MerkleNode) []string {
	keys := make([]string, len(children))
	seen := make(map[string]int, len(children))
	for i, child := range children {
		count := seen[child.Identifier]
		seen[child.Identifier] = count + 1
		if count == 0 {
			keys[i] = child.Identifier
		} else {
			keys[i] = fmt.Sprintf("%s#%d", child.Identifier, count)
		}
	}
	return keys
}

// joinPath joins identifiers with "/". Identifiers that contain "/"
// or a quote (absolute file paths) are written Go-quoted so the
// segment boundaries stay unambiguous.
func joinPath(path []string) string {
	segments := make([]string, len(path))
	for i, identifier := range path {
		if strings.ContainsAny(identifier, "/\"") {
			segments[i] = strconv.Quote(identifier)
		} else {
			segments[i] = identifier
		}
	}
	return strings.Join(segments, "/")
}
