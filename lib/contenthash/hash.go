// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contenthash

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// Hash is a 32-byte BLAKE3 digest. Hashes are comparable with == and
// orderable with [Hash.Compare], so they work as map keys and as
// sorted storage keys.
type Hash [32]byte

// String returns the hex encoding of the hash.
func (h Hash) String() string {
	return FormatHash(h)
}

// Short returns the first 12 hex characters, for log lines and
// human-facing output where a full digest is noise.
func (h Hash) Short() string {
	return hex.EncodeToString(h[:6])
}

// IsZero reports whether h is the zero value. No real digest is zero.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Compare orders hashes bytewise: -1 if h < other, 0 if equal, +1
// otherwise.
func (h Hash) Compare(other Hash) int {
	return bytes.Compare(h[:], other[:])
}

// FormatHash returns the hex-encoded string representation of a hash.
// This is the canonical format used in cache keys, logs, and CLI
// output.
func FormatHash(hash Hash) string {
	return hex.EncodeToString(hash[:])
}

// ParseHash parses a 64-character hex string into a Hash.
func ParseHash(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing content hash: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("content hash is %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}
