// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sideeffect

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// Kind tags which payload of a [Descriptor] is set.
type Kind string

const (
	KindFile      Kind = "file"
	KindCommand   Kind = "command"
	KindDirectory Kind = "directory"
)

// State says whether a file or directory should exist after the
// effect is applied.
type State string

const (
	StatePresent State = "present"
	StateAbsent  State = "absent"
)

// FileDescriptor writes Contents to Path (present) or removes Path
// (absent). Nil Contents with StatePresent creates an empty file.
type FileDescriptor struct {
	Path     string `cbor:"path"`
	Contents []byte `cbor:"contents,omitempty"`
	State    State  `cbor:"state"`
}

// DirectoryDescriptor creates (present) or recursively removes
// (absent) the directory at Path.
type DirectoryDescriptor struct {
	Path  string `cbor:"path"`
	State State  `cbor:"state"`
}

// CommandDescriptor runs Argv[0] with Argv[1:] as arguments. No shell
// is involved.
type CommandDescriptor struct {
	Argv []string `cbor:"argv"`
}

// Descriptor is one deferred effect. Exactly one of File, Command, and
// Directory is non-nil, matching Kind. Use the constructors below
// rather than building descriptors by hand.
type Descriptor struct {
	Kind      Kind                 `cbor:"kind"`
	File      *FileDescriptor      `cbor:"file,omitempty"`
	Command   *CommandDescriptor   `cbor:"command,omitempty"`
	Directory *DirectoryDescriptor `cbor:"directory,omitempty"`
}

// File returns a descriptor that writes contents to path.
func File(path string, contents []byte) Descriptor {
	return Descriptor{Kind: KindFile, File: &FileDescriptor{
		Path:     path,
		Contents: bytes.Clone(contents),
		State:    StatePresent,
	}}
}

// DeleteFile returns a descriptor that removes the file at path.
func DeleteFile(path string) Descriptor {
	return Descriptor{Kind: KindFile, File: &FileDescriptor{Path: path, State: StateAbsent}}
}

// Directory returns a descriptor that creates the directory at path
// and any missing parents.
func Directory(path string) Descriptor {
	return Descriptor{Kind: KindDirectory, Directory: &DirectoryDescriptor{Path: path, State: StatePresent}}
}

// DeleteDirectory returns a descriptor that removes the directory at
// path and everything below it.
func DeleteDirectory(path string) Descriptor {
	return Descriptor{Kind: KindDirectory, Directory: &DirectoryDescriptor{Path: path, State: StateAbsent}}
}

// Command returns a descriptor that runs argv.
func Command(argv ...string) Descriptor {
	return Descriptor{Kind: KindCommand, Command: &CommandDescriptor{Argv: slices.Clone(argv)}}
}

// Validate checks that exactly the payload named by Kind is set and
// that it is complete.
func (d Descriptor) Validate() error {
	set := 0
	for _, present := range []bool{d.File != nil, d.Command != nil, d.Directory != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("side effect %q has %d payloads, want exactly 1", d.Kind, set)
	}

	switch d.Kind {
	case KindFile:
		if d.File == nil {
			return fmt.Errorf("file side effect has no file payload")
		}
		if d.File.Path == "" {
			return fmt.Errorf("file side effect has an empty path")
		}
		return validateState(d.File.State)
	case KindDirectory:
		if d.Directory == nil {
			return fmt.Errorf("directory side effect has no directory payload")
		}
		if d.Directory.Path == "" {
			return fmt.Errorf("directory side effect has an empty path")
		}
		return validateState(d.Directory.State)
	case KindCommand:
		if d.Command == nil {
			return fmt.Errorf("command side effect has no command payload")
		}
		if len(d.Command.Argv) == 0 || d.Command.Argv[0] == "" {
			return fmt.Errorf("command side effect has an empty argv")
		}
		return nil
	default:
		return fmt.Errorf("unknown side effect kind %q", d.Kind)
	}
}

func validateState(state State) error {
	if state != StatePresent && state != StateAbsent {
		return fmt.Errorf("invalid side effect state %q", state)
	}
	return nil
}

// Equal reports whether two descriptors describe the same effect.
func (d Descriptor) Equal(other Descriptor) bool {
	if d.Kind != other.Kind {
		return false
	}
	switch {
	case d.File != nil || other.File != nil:
		return d.File != nil && other.File != nil &&
			d.File.Path == other.File.Path &&
			d.File.State == other.File.State &&
			bytes.Equal(d.File.Contents, other.File.Contents)
	case d.Directory != nil || other.Directory != nil:
		return d.Directory != nil && other.Directory != nil && *d.Directory == *other.Directory
	case d.Command != nil || other.Command != nil:
		return d.Command != nil && other.Command != nil && slices.Equal(d.Command.Argv, other.Command.Argv)
	}
	return true
}

// String returns a one-line description, stable across runs, used in
// logs and dry-run output.
func (d Descriptor) String() string {
	switch {
	case d.Kind == KindFile && d.File != nil:
		if d.File.State == StateAbsent {
			return "delete file " + d.File.Path
		}
		return fmt.Sprintf("write file %s (%d bytes)", d.File.Path, len(d.File.Contents))
	case d.Kind == KindDirectory && d.Directory != nil:
		if d.Directory.State == StateAbsent {
			return "delete directory " + d.Directory.Path
		}
		return "create directory " + d.Directory.Path
	case d.Kind == KindCommand && d.Command != nil:
		return "run " + strings.Join(d.Command.Argv, " ")
	default:
		return fmt.Sprintf("invalid side effect (%s)", d.Kind)
	}
}

// EqualLists reports whether two descriptor lists are equal element
// by element, in order.
func EqualLists(left, right []Descriptor) bool {
	return slices.EqualFunc(left, right, Descriptor.Equal)
}
