// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package filecontent supplies file bytes to the hashing engine.
//
// A fingerprint computed over missing content is unsound, so readers
// distinguish "the file does not exist" ([ErrNotFound]) from "the file
// exists but could not be read" ([ErrUnreadable]) and never return
// empty content in place of an error. Both are reported as a
// [*ReadError] carrying the path. Readers do not retry; a caller that
// wants retries wraps the reader.
package filecontent

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

var (
	// ErrNotFound reports that no file exists at the requested path.
	ErrNotFound = errors.New("file not found")

	// ErrUnreadable reports that a file exists but its content could
	// not be read (permissions, a directory, an I/O failure).
	ErrUnreadable = errors.New("file unreadable")
)

// ReadError is returned by every [Reader] failure. Kind is one of the
// sentinel errors above; Err is the underlying cause, if any.
type ReadError struct {
	Path string
	Kind error
	Err  error
}

func (e *ReadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *ReadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Reader returns the full content of the file at path as of the call.
type Reader interface {
	ReadFile(path string) ([]byte, error)
}

// OSReader reads from the local filesystem.
type OSReader struct{}

// ReadFile implements [Reader].
func (OSReader) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &ReadError{Path: path, Kind: ErrNotFound}
	}
	return nil, &ReadError{Path: path, Kind: ErrUnreadable, Err: err}
}

// MemoryReader serves file content from memory. It is used by tests
// and by dry runs over a graph whose files are not on disk. Safe for
// concurrent use.
type MemoryReader struct {
	mutex sync.RWMutex
	files map[string][]byte
}

// NewMemoryReader returns a reader serving a copy of files.
func NewMemoryReader(files map[string][]byte) *MemoryReader {
	reader := &MemoryReader{files: make(map[string][]byte, len(files))}
	for path, data := range files {
		reader.files[path] = append([]byte(nil), data...)
	}
	return reader
}

// Set stores (or replaces) the content at path.
func (r *MemoryReader) Set(path string, data []byte) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.files[path] = append([]byte(nil), data...)
}

// ReadFile implements [Reader]. The returned slice is a copy.
func (r *MemoryReader) ReadFile(path string) ([]byte, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	data, ok := r.files[path]
	if !ok {
		return nil, &ReadError{Path: path, Kind: ErrNotFound}
	}
	return append([]byte(nil), data...), nil
}
