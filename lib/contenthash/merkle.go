// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contenthash

// MerkleNode is one node of a fingerprint tree. Hash is a pure function
// of the node's directly hashed content and the ordered hashes of
// Children; Identifier is a debugging label and is not hashed.
//
// Nodes are built bottom-up in one pass and not modified afterward.
// The struct tags give the stable CBOR layout used by the fingerprint
// cache.
type MerkleNode struct {
	Hash       Hash         `cbor:"hash"`
	Identifier string       `cbor:"identifier"`
	Children   []MerkleNode `cbor:"children,omitempty"`
}

// Leaf returns a childless node carrying an already computed hash.
func Leaf(hash Hash, identifier string) MerkleNode {
	return MerkleNode{Hash: hash, Identifier: identifier}
}

// NewNode returns a node whose hash is hasher.HashChildren over the
// children's hashes, in the order given.
func NewNode(hasher ContentHasher, identifier string, children []MerkleNode) MerkleNode {
	return MerkleNode{
		Hash:       hasher.HashChildren(ChildHashes(children)),
		Identifier: identifier,
		Children:   children,
	}
}

// ChildHashes returns the hashes of nodes in order.
func ChildHashes(nodes []MerkleNode) []Hash {
	hashes := make([]Hash, len(nodes))
	for i, node := range nodes {
		hashes[i] = node.Hash
	}
	return hashes
}

// Child returns the first direct child with the given identifier.
func (n MerkleNode) Child(identifier string) (MerkleNode, bool) {
	for _, child := range n.Children {
		if child.Identifier == identifier {
			return child, true
		}
	}
	return MerkleNode{}, false
}

// Find follows a path of identifiers from n. An empty path returns n.
func (n MerkleNode) Find(path ...string) (MerkleNode, bool) {
	current := n
	for _, identifier := range path {
		child, ok := current.Child(identifier)
		if !ok {
			return MerkleNode{}, false
		}
		current = child
	}
	return current, true
}

// Walk visits n and its descendants depth-first, parents before
// children, passing the identifier path from n. Returning false from
// visit skips that node's children.
func (n MerkleNode) Walk(visit func(path []string, node MerkleNode) bool) {
	n.walk(nil, visit)
}

func (n MerkleNode) walk(prefix []string, visit func([]string, MerkleNode) bool) {
	path := append(prefix[:len(prefix):len(prefix)], n.Identifier)
	if !visit(path, n) {
		return
	}
	for _, child := range n.Children {
		child.walk(path, visit)
	}
}

// Verify recomputes every interior hash with hasher and reports
// whether the tree is internally consistent. Leaves are trusted. The
// fingerprint cache runs it on every tree it decodes.
func (n MerkleNode) Verify(hasher ContentHasher) bool {
	if len(n.Children) == 0 {
		return true
	}
	for _, child := range n.Children {
		if !child.Verify(hasher) {
			return false
		}
	}
	return hasher.HashChildren(ChildHashes(n.Children)) == n.Hash
}
