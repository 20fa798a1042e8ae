// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fingerprintcache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/bureau-foundation/graphgen/lib/clock"
	"github.com/bureau-foundation/graphgen/lib/codec"
	"github.com/bureau-foundation/graphgen/lib/compress"
	"github.com/bureau-foundation/graphgen/lib/contenthash"
	"github.com/bureau-foundation/graphgen/lib/filecontent"
)

// Config holds the parameters for [Open]. Path is required.
type Config struct {
	// Path is the SQLite database file. Its parent directory must
	// exist; the file is created if missing.
	Path string

	// PoolSize is the number of SQLite connections. Zero or negative
	// means max(NumCPU, 4).
	PoolSize int

	// Compression is applied to stored trees.
	Compression compress.Algorithm

	// MemoryEntries sizes the in-memory LRU. Zero disables it.
	MemoryEntries int

	// Clock stamps entries. Nil means [clock.Real].
	Clock clock.Clock

	// Logger receives open/close and corruption reports. Nil
	// discards them.
	Logger *slog.Logger

	// Hasher recomputes interior hashes of decoded trees. It must
	// match the hasher the trees were built with. Nil means a
	// [contenthash.Hasher].
	Hasher contenthash.ContentHasher
}

// Entry is the stored fingerprint of one entity.
type Entry struct {
	Entity    string
	Hash      contenthash.Hash
	Tree      contenthash.MerkleNode
	UpdatedAt time.Time
}

// Result is the outcome of [Store.Check].
type Result struct {
	// Hit is true when a stored entry exists and its hash equals the
	// checked tree's root hash.
	Hit bool

	// Previous is the stored entry, or nil when the entity has never
	// been stored.
	Previous *Entry

	// Changes lists the differences from the stored tree. Empty on a
	// hit; nil when there is no previous entry.
	Changes []contenthash.Change
}

// ErrCorrupt marks a stored row that cannot be decoded, whose tree
// does not match its recorded hash, or whose interior hashes do not
// verify.
var ErrCorrupt = errors.New("corrupt fingerprint entry")

// Store is a persistent fingerprint cache. It is safe for concurrent
// use.
type Store struct {
	pool        *sqlitex.Pool
	memory      *lru.Cache[string, Entry]
	compression compress.Algorithm
	clock       clock.Clock
	hasher      contenthash.ContentHasher
	logger      *slog.Logger
	path        string
}

// Open opens (creating if needed) the cache database. The caller must
// Close the store.
func Open(config Config) (*Store, error) {
	if config.Path == "" {
		return nil, errors.New("fingerprintcache: Path is required")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	hasher := config.Hasher
	if hasher == nil {
		// Verification only combines child hashes; no file is read.
		hasher = contenthash.NewHasher(filecontent.NewMemoryReader(nil))
	}

	var memory *lru.Cache[string, Entry]
	if config.MemoryEntries > 0 {
		var err error
		memory, err = lru.New[string, Entry](config.MemoryEntries)
		if err != nil {
			return nil, fmt.Errorf("fingerprintcache: %w", err)
		}
	}

	pool, err := openPool(config.Path, config.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("fingerprintcache: %w", err)
	}

	logger.Debug("fingerprint cache opened",
		"path", config.Path,
		"compression", config.Compression,
		"memory_entries", config.MemoryEntries,
	)
	return &Store{
		pool:        pool,
		memory:      memory,
		compression: config.Compression,
		clock:       clk,
		hasher:      hasher,
		logger:      logger,
		path:        config.Path,
	}, nil
}

// Close closes the database. Blocks until borrowed connections are
// returned.
func (s *Store) Close() error {
	if err := s.pool.Close(); err != nil {
		return fmt.Errorf("fingerprintcache: closing %s: %w", s.path, err)
	}
	s.logger.Debug("fingerprint cache closed", "path", s.path)
	return nil
}

// Lookup returns the stored entry for entity. The boolean is false
// when none exists.
func (s *Store) Lookup(ctx context.Context, entity string) (Entry, bool, error) {
	if s.memory != nil {
		if entry, ok := s.memory.Get(entity); ok {
			return entry, true, nil
		}
	}

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return Entry{}, false, fmt.Errorf("fingerprintcache: lookup %s: %w", entity, err)
	}
	defer s.pool.Put(conn)

	var (
		entry Entry
		found bool
	)
	err = sqlitex.Execute(conn,
		`SELECT hash, tree, updated_at FROM fingerprints WHERE entity = ?`,
		&sqlitex.ExecOptions{
			Args: []any{entity},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				decoded, err := s.decodeRow(entity, stmt)
				if err != nil {
					return err
				}
				entry, found = decoded, true
				return nil
			},
		})
	if err != nil {
		return Entry{}, false, fmt.Errorf("fingerprintcache: lookup %s: %w", entity, err)
	}
	if found && s.memory != nil {
		s.memory.Add(entity, entry)
	}
	return entry, found, nil
}

func (s *Store) decodeRow(entity string, stmt *sqlite.Stmt) (Entry, error) {
	entry := Entry{
		Entity:    entity,
		UpdatedAt: time.Unix(0, stmt.ColumnInt64(2)).UTC(),
	}
	if stmt.ColumnLen(0) != len(entry.Hash) {
		return Entry{}, fmt.Errorf("%w: hash is %d bytes", ErrCorrupt, stmt.ColumnLen(0))
	}
	stmt.ColumnBytes(0, entry.Hash[:])

	frame := make([]byte, stmt.ColumnLen(1))
	stmt.ColumnBytes(1, frame)
	encoded, err := compress.Decode(frame)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := codec.Unmarshal(encoded, &entry.Tree); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if entry.Tree.Hash != entry.Hash {
		s.logger.Warn("stored tree does not match its hash", "entity", entity, "hash", entry.Hash.Short())
		return Entry{}, fmt.Errorf("%w: tree root %s, recorded %s", ErrCorrupt, entry.Tree.Hash.Short(), entry.Hash.Short())
	}
	if !entry.Tree.Verify(s.hasher) {
		s.logger.Warn("stored tree is not internally consistent", "entity", entity, "hash", entry.Hash.Short())
		return Entry{}, fmt.Errorf("%w: interior hashes of %s do not verify", ErrCorrupt, entry.Hash.Short())
	}
	return entry, nil
}

// Put stores tree as the current fingerprint of entity, replacing any
// previous entry.
func (s *Store) Put(ctx context.Context, entity string, tree contenthash.MerkleNode) (err error) {
	encoded, err := codec.Marshal(tree)
	if err != nil {
		return fmt.Errorf("fingerprintcache: encoding tree for %s: %w", entity, err)
	}
	frame, err := compress.Encode(encoded, s.compression)
	if err != nil {
		return fmt.Errorf("fingerprintcache: compressing tree for %s: %w", entity, err)
	}

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("fingerprintcache: put %s: %w", entity, err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("fingerprintcache: begin transaction: %w", err)
	}
	defer endTransaction(&err)

	now := s.clock.Now().UTC()
	err = sqlitex.Execute(conn,
		`INSERT INTO fingerprints (entity, hash, tree, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(entity) DO UPDATE SET hash = excluded.hash, tree = excluded.tree, updated_at = excluded.updated_at`,
		&sqlitex.ExecOptions{Args: []any{entity, tree.Hash[:], frame, now.UnixNano()}})
	if err != nil {
		return fmt.Errorf("fingerprintcache: put %s: %w", entity, err)
	}

	if s.memory != nil {
		s.memory.Add(entity, Entry{Entity: entity, Hash: tree.Hash, Tree: tree, UpdatedAt: now})
	}
	return nil
}

// Delete removes the entry for entity. Deleting a missing entry is
// not an error.
func (s *Store) Delete(ctx context.Context, entity string) error {
	if s.memory != nil {
		s.memory.Remove(entity)
	}
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("fingerprintcache: delete %s: %w", entity, err)
	}
	defer s.pool.Put(conn)

	if err := sqlitex.Execute(conn, `DELETE FROM fingerprints WHERE entity = ?`,
		&sqlitex.ExecOptions{Args: []any{entity}}); err != nil {
		return fmt.Errorf("fingerprintcache: delete %s: %w", entity, err)
	}
	return nil
}

// Entities lists stored entity names in sorted order.
func (s *Store) Entities(ctx context.Context) ([]string, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("fingerprintcache: list: %w", err)
	}
	defer s.pool.Put(conn)

	var entities []string
	err = sqlitex.Execute(conn, `SELECT entity FROM fingerprints ORDER BY entity`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				entities = append(entities, stmt.ColumnText(0))
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("fingerprintcache: list: %w", err)
	}
	return entities, nil
}

// Check compares tree with the stored fingerprint of entity. It does
// not store tree; call [Store.Put] once the work the fingerprint
// guards has succeeded.
func (s *Store) Check(ctx context.Context, entity string, tree contenthash.MerkleNode) (Result, error) {
	previous, found, err := s.Lookup(ctx, entity)
	if err != nil {
		return Result{}, err
	}
	if !found {
		s.logger.Debug("fingerprint miss", "entity", entity, "reason", "not stored")
		return Result{}, nil
	}
	result := Result{
		Hit:      previous.Hash == tree.Hash,
		Previous: &previous,
		Changes:  contenthash.Diff(previous.Tree, tree),
	}
	if result.Hit {
		s.logger.Debug("fingerprint hit", "entity", entity, "hash", tree.Hash.Short())
	} else {
		s.logger.Debug("fingerprint miss", "entity", entity, "changes", len(result.Changes))
	}
	return result, nil
}
