// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package filecontent

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOSReaderReadsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Info.plist")
	if err := os.WriteFile(path, []byte("<plist/>"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := OSReader{}.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "<plist/>" {
		t.Errorf("ReadFile = %q, want %q", data, "<plist/>")
	}
}

func TestOSReaderMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")

	_, err := OSReader{}.ReadFile(path)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ReadFile error = %v, want ErrNotFound", err)
	}
	if errors.Is(err, ErrUnreadable) {
		t.Error("missing file should not report ErrUnreadable")
	}

	var readError *ReadError
	if !errors.As(err, &readError) {
		t.Fatalf("error %T is not a *ReadError", err)
	}
	if readError.Path != path {
		t.Errorf("ReadError.Path = %q, want %q", readError.Path, path)
	}
}

func TestOSReaderDirectoryIsUnreadable(t *testing.T) {
	_, err := OSReader{}.ReadFile(t.TempDir())
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("ReadFile(directory) error = %v, want ErrUnreadable", err)
	}
}

func TestMemoryReader(t *testing.T) {
	source := map[string][]byte{"/a": []byte("one")}
	reader := NewMemoryReader(source)

	// Mutating the source map after construction must not leak in.
	source["/a"][0] = 'X'

	data, err := reader.ReadFile("/a")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "one" {
		t.Errorf("ReadFile = %q, want %q", data, "one")
	}

	reader.Set("/a", []byte("two"))
	data, _ = reader.ReadFile("/a")
	if string(data) != "two" {
		t.Errorf("after Set, ReadFile = %q, want %q", data, "two")
	}

	if _, err := reader.ReadFile("/b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadFile(/b) error = %v, want ErrNotFound", err)
	}
}
