// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fingerprintcache

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/bureau-foundation/graphgen/lib/clock"
	"github.com/bureau-foundation/graphgen/lib/compress"
	"github.com/bureau-foundation/graphgen/lib/contenthash"
	"github.com/bureau-foundation/graphgen/lib/filecontent"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T, memoryEntries int, compression compress.Algorithm) (*Store, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(epoch)
	store, err := Open(Config{
		Path:          filepath.Join(t.TempDir(), "fingerprints.db"),
		PoolSize:      2,
		Compression:   compression,
		MemoryEntries: memoryEntries,
		Clock:         fake,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store, fake
}

func sampleTree(content string) contenthash.MerkleNode {
	hasher := contenthash.NewHasher(filecontent.NewMemoryReader(nil))
	file := contenthash.NewNode(hasher, "/a.txt", []contenthash.MerkleNode{
		contenthash.Leaf(hasher.HashBytes([]byte(content)), "content"),
		contenthash.Leaf(hasher.HashBool(false), "isReference"),
	})
	return contenthash.NewNode(hasher, "App", []contenthash.MerkleNode{
		contenthash.Leaf(hasher.HashString("App"), "name"),
		contenthash.NewNode(hasher, "files", []contenthash.MerkleNode{file}),
	})
}

func TestPutAndLookup(t *testing.T) {
	for _, compression := range []compress.Algorithm{compress.None, compress.LZ4, compress.Zstd} {
		t.Run(compression.String(), func(t *testing.T) {
			store, _ := openTestStore(t, 0, compression)
			ctx := context.Background()
			tree := sampleTree("v1")

			if _, found, err := store.Lookup(ctx, "project App"); err != nil || found {
				t.Fatalf("Lookup before Put = found %v, err %v", found, err)
			}
			if err := store.Put(ctx, "project App", tree); err != nil {
				t.Fatalf("Put: %v", err)
			}

			entry, found, err := store.Lookup(ctx, "project App")
			if err != nil || !found {
				t.Fatalf("Lookup after Put = found %v, err %v", found, err)
			}
			if entry.Hash != tree.Hash {
				t.Errorf("Hash = %s, want %s", entry.Hash.Short(), tree.Hash.Short())
			}
			if !reflect.DeepEqual(entry.Tree, tree) {
				t.Error("stored tree differs from the tree put")
			}
			if !entry.UpdatedAt.Equal(epoch) {
				t.Errorf("UpdatedAt = %v, want %v", entry.UpdatedAt, epoch)
			}
		})
	}
}

func TestPutReplaces(t *testing.T) {
	store, fake := openTestStore(t, 0, compress.Zstd)
	ctx := context.Background()

	if err := store.Put(ctx, "project App", sampleTree("v1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	fake.Advance(time.Hour)
	second := sampleTree("v2")
	if err := store.Put(ctx, "project App", second); err != nil {
		t.Fatalf("Put: %v", err)
	}

	entry, _, err := store.Lookup(ctx, "project App")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if entry.Hash != second.Hash {
		t.Error("second Put did not replace the entry")
	}
	if !entry.UpdatedAt.Equal(epoch.Add(time.Hour)) {
		t.Errorf("UpdatedAt = %v, want one hour after the first Put", entry.UpdatedAt)
	}
}

func TestCheck(t *testing.T) {
	store, _ := openTestStore(t, 8, compress.LZ4)
	ctx := context.Background()
	before := sampleTree("v1")

	result, err := store.Check(ctx, "project App", before)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Hit || result.Previous != nil || result.Changes != nil {
		t.Errorf("Check on an empty store = %+v, want a bare miss", result)
	}

	if err := store.Put(ctx, "project App", before); err != nil {
		t.Fatalf("Put: %v", err)
	}
	result, err = store.Check(ctx, "project App", sampleTree("v1"))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !result.Hit || len(result.Changes) != 0 {
		t.Errorf("Check of an identical tree = %+v, want a hit with no changes", result)
	}

	result, err = store.Check(ctx, "project App", sampleTree("v2"))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Hit {
		t.Fatal("Check of a changed tree reported a hit")
	}
	if len(result.Changes) != 1 || result.Changes[0].Path != `files/"/a.txt"/content` {
		t.Errorf("Changes = %+v, want one change at files/\"/a.txt\"/content", result.Changes)
	}
	if result.Changes[0].Kind != contenthash.Modified {
		t.Errorf("change kind = %s, want modified", result.Changes[0].Kind)
	}
}

func TestMemoryCacheSurvivesDatabaseLoss(t *testing.T) {
	store, _ := openTestStore(t, 4, compress.None)
	ctx := context.Background()
	tree := sampleTree("v1")
	if err := store.Put(ctx, "project App", tree); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Remove the row behind the cache's back; the LRU still answers.
	conn, err := store.pool.Take(ctx)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	err = sqlitex.Execute(conn, `DELETE FROM fingerprints`, nil)
	store.pool.Put(conn)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}

	if _, found, err := store.Lookup(ctx, "project App"); err != nil || !found {
		t.Errorf("Lookup through the memory cache = found %v, err %v", found, err)
	}

	if err := store.Delete(ctx, "project App"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := store.Lookup(ctx, "project App"); found {
		t.Error("Lookup found an entry after Delete")
	}
}

func TestEntities(t *testing.T) {
	store, _ := openTestStore(t, 0, compress.None)
	ctx := context.Background()
	for _, entity := range []string{"workspace W", "project B", "project A"} {
		if err := store.Put(ctx, entity, sampleTree(entity)); err != nil {
			t.Fatalf("Put %s: %v", entity, err)
		}
	}
	entities, err := store.Entities(ctx)
	if err != nil {
		t.Fatalf("Entities: %v", err)
	}
	if want := []string{"project A", "project B", "workspace W"}; !reflect.DeepEqual(entities, want) {
		t.Errorf("Entities = %v, want %v", entities, want)
	}
}

func TestCorruptRowIsReported(t *testing.T) {
	store, _ := openTestStore(t, 0, compress.None)
	ctx := context.Background()
	if err := store.Put(ctx, "project App", sampleTree("v1")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	conn, err := store.pool.Take(ctx)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	err = sqlitex.Execute(conn, `UPDATE fingerprints SET tree = ?`,
		&sqlitex.ExecOptions{Args: []any{[]byte{0xff, 0x00}}})
	store.pool.Put(conn)
	if err != nil {
		t.Fatalf("UPDATE: %v", err)
	}

	_, _, err = store.Lookup(ctx, "project App")
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Lookup of a corrupt row = %v, want ErrCorrupt", err)
	}
}

func TestInconsistentTreeIsReported(t *testing.T) {
	store, _ := openTestStore(t, 0, compress.None)
	ctx := context.Background()

	// The root hash matches its children, but one child's hash does
	// not match its own children.
	hasher := contenthash.NewHasher(filecontent.NewMemoryReader(nil))
	files := sampleTree("v1").Children[1]
	files.Hash = hasher.HashString("forged")
	forged := contenthash.NewNode(hasher, "App", []contenthash.MerkleNode{
		contenthash.Leaf(hasher.HashString("App"), "name"),
		files,
	})
	if err := store.Put(ctx, "project App", forged); err != nil {
		t.Fatalf("Put: %v", err)
	}

	_, _, err := store.Lookup(ctx, "project App")
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Lookup of an inconsistent tree = %v, want ErrCorrupt", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(Config{}); err == nil {
		t.Error("Open accepted an empty path")
	}
}
