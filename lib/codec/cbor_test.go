// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

type sampleEntry struct {
	Key   string `cbor:"key"`
	Label string `cbor:"label,omitempty"`
	Size  int    `cbor:"size"`
}

type sampleJSONTagged struct {
	Name    string `json:"name"`
	Product string `json:"product"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleEntry{Key: "project:/App", Label: "App", Size: 42}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleEntry
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalMapIsDeterministic(t *testing.T) {
	// Go map iteration order is random; the encoding must not be.
	value := map[string]int{"zeta": 1, "alpha": 2, "mu": 3, "beta": 4}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for range 20 {
		again, err := Marshal(value)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("deterministic encoding violated: %x != %x", first, again)
		}
	}
}

func TestJSONTagFallback(t *testing.T) {
	original := sampleJSONTagged{Name: "App", Product: "app"}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded sampleJSONTagged
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("json-tag roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestStreamRoundtrip(t *testing.T) {
	entries := []sampleEntry{{Key: "a", Size: 1}, {Key: "b", Label: "B", Size: 2}}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, entry := range entries {
		if err := encoder.Encode(entry); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for i, want := range entries {
		var got sampleEntry
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode entry %d: %v", i, err)
		}
		if got != want {
			t.Errorf("entry %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var entry sampleEntry
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &entry); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]any{"kind": "file"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"kind"`) || !strings.Contains(notation, `"file"`) {
		t.Errorf("Diagnose = %q, want it to mention the key and value", notation)
	}
}

type treeNode struct {
	Identifier string     `cbor:"identifier"`
	Children   []treeNode `cbor:"children,omitempty"`
}

func TestUnmarshalDeepTree(t *testing.T) {
	// Twenty levels of node map plus children array exceeds the
	// library's default depth limit of 32.
	root := treeNode{Identifier: "leaf"}
	for range 20 {
		root = treeNode{Identifier: "node", Children: []treeNode{root}}
	}
	data, err := Marshal(root)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded treeNode
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal deep tree: %v", err)
	}
	depth := 0
	for node := decoded; len(node.Children) > 0; node = node.Children[0] {
		depth++
	}
	if depth != 20 {
		t.Errorf("decoded depth = %d, want 20", depth)
	}
}
