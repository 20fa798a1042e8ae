// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contenthash

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/graphgen/lib/filecontent"
)

// ContentHasher hashes atomic values and ordered lists of hashes.
// Composite hashers depend on this interface rather than on [Hasher]
// so tests can observe or fail individual leaf hashes.
type ContentHasher interface {
	HashString(value string) Hash
	HashBool(value bool) Hash
	HashBytes(data []byte) Hash

	// HashPath hashes the full content of the file at path, read at
	// the time of the call. A missing or unreadable file is an error;
	// it is never hashed as empty content.
	HashPath(path string) (Hash, error)

	// HashChildren combines child digests in the given order.
	// Swapping two children changes the result.
	HashChildren(children []Hash) Hash
}

// domainKey is a 32-byte key for BLAKE3 keyed hashing. The byte
// values are the ASCII domain name, zero-padded. Changing either key
// invalidates every stored fingerprint.
type domainKey [32]byte

var (
	leafDomainKey = domainKey{
		'g', 'r', 'a', 'p', 'h', 'g', 'e', 'n', '.', 'c', 'o', 'n', 't', 'e', 'n', 't',
		'.', 'l', 'e', 'a', 'f', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	nodeDomainKey = domainKey{
		'g', 'r', 'a', 'p', 'h', 'g', 'e', 'n', '.', 'c', 'o', 'n', 't', 'e', 'n', 't',
		'.', 'n', 'o', 'd', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// Leaf type tags. Raw bytes and file content share a tag: a file is
// its bytes, and hashing a path's content must equal hashing the same
// bytes directly.
const (
	tagString byte = 's'
	tagBool   byte = 'b'
	tagBytes  byte = 'r'
)

// Hasher is the BLAKE3 implementation of [ContentHasher]. It holds no
// mutable state and is safe for concurrent use.
type Hasher struct {
	files filecontent.Reader
}

// NewHasher returns a hasher reading file content through files.
func NewHasher(files filecontent.Reader) *Hasher {
	return &Hasher{files: files}
}

// HashString implements [ContentHasher].
func (h *Hasher) HashString(value string) Hash {
	return leafHash(tagString, []byte(value))
}

// HashBool implements [ContentHasher].
func (h *Hasher) HashBool(value bool) Hash {
	if value {
		return leafHash(tagBool, []byte{1})
	}
	return leafHash(tagBool, []byte{0})
}

// HashBytes implements [ContentHasher].
func (h *Hasher) HashBytes(data []byte) Hash {
	return leafHash(tagBytes, data)
}

// HashPath implements [ContentHasher].
func (h *Hasher) HashPath(path string) (Hash, error) {
	data, err := h.files.ReadFile(path)
	if err != nil {
		return Hash{}, fmt.Errorf("hashing content of %s: %w", path, err)
	}
	return h.HashBytes(data), nil
}

// HashChildren implements [ContentHasher]. The encoding is the child
// count followed by (position, digest) for each child, all integers
// big-endian uint64.
func (h *Hasher) HashChildren(children []Hash) Hash {
	hasher := newKeyed(nodeDomainKey)
	var scratch [8]byte
	binary.BigEndian.PutUint64(scratch[:], uint64(len(children)))
	hasher.Write(scratch[:])
	for position, child := range children {
		binary.BigEndian.PutUint64(scratch[:], uint64(position))
		hasher.Write(scratch[:])
		hasher.Write(child[:])
	}
	return sum(hasher)
}

func leafHash(tag byte, data []byte) Hash {
	hasher := newKeyed(leafDomainKey)
	hasher.Write([]byte{tag})
	hasher.Write(data)
	return sum(hasher)
}

func newKeyed(key domainKey) *blake3.Hasher {
	// NewKeyed only fails for a key that is not 32 bytes, which the
	// domainKey type rules out.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("contenthash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

func sum(hasher *blake3.Hasher) Hash {
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}
