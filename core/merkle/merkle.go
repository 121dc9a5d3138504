// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle builds complete binary merkle trees over hashes.
//
// The tree of n leaves is stored in an array of 2n-1 nodes. Leaves occupy
// the tail of the array in order and every inner node i is the merge of
// nodes 2i+1 and 2i+2, so the root is node 0.
package merkle

import (
	"github.com/Qitmeer/cellverify/common/hash"
)

// BuildMerkleTreeStore returns the node array of the tree over leaves, or
// nil for no leaves.
func BuildMerkleTreeStore(leaves []hash.Hash) []hash.Hash {
	if len(leaves) == 0 {
		return nil
	}
	n := len(leaves)
	nodes := make([]hash.Hash, 2*n-1)
	copy(nodes[n-1:], leaves)
	for i := n - 2; i >= 0; i-- {
		nodes[i] = hash.HashMerge(&nodes[2*i+1], &nodes[2*i+2])
	}
	return nodes
}

// MerkleRoot returns the root of the tree over leaves. It is the zero hash
// for no leaves and the leaf itself for a single leaf.
func MerkleRoot(leaves []hash.Hash) hash.Hash {
	nodes := BuildMerkleTreeStore(leaves)
	if nodes == nil {
		return hash.ZeroHash
	}
	return nodes[0]
}

// Proof returns the sibling path from the leaf at index up to the root.
func Proof(leaves []hash.Hash, index int) ([]hash.Hash, bool) {
	if index < 0 || index >= len(leaves) {
		return nil, false
	}
	nodes := BuildMerkleTreeStore(leaves)
	var path []hash.Hash
	for i := len(leaves) - 1 + index; i > 0; i = (i - 1) / 2 {
		path = append(path, nodes[sibling(i)])
	}
	return path, true
}

// VerifyProof checks a path built by Proof for the leaf at index of a tree
// with count leaves.
func VerifyProof(root, leaf hash.Hash, index, count int, path []hash.Hash) bool {
	if index < 0 || index >= count {
		return false
	}
	i := count - 1 + index
	cur := leaf
	for _, p := range path {
		if i == 0 {
			return false
		}
		p := p
		if i%2 == 1 {
			cur = hash.HashMerge(&cur, &p)
		} else {
			cur = hash.HashMerge(&p, &cur)
		}
		i = (i - 1) / 2
	}
	return i == 0 && cur == root
}

func sibling(i int) int {
	if i%2 == 1 {
		return i + 1
	}
	return i - 1
}
