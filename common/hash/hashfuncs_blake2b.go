// Copyright (c) 2017-2018 The qitmeer developers

package hash

import (
	"hash"

	"golang.org/x/crypto/blake2b"
)

// New returns the chain hasher, a blake2b-256 state. It panics only if the
// blake2b package rejects an unkeyed 256 bit digest, which cannot happen.
func New() hash.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	return h
}

// HashB using blake2b calculates 256 bits hash and returns the resulting bytes.
func HashB(b []byte) []byte {
	hash := blake2b.Sum256(b)
	return hash[:]
}

// HashH calculates hash(b) and returns the resulting bytes as a Hash.
func HashH(b []byte) Hash {
	return Hash(blake2b.Sum256(b))
}

// HashMerge hashes the concatenation of two digests. It is the merge
// function of every merkle structure in the chain.
func HashMerge(left, right *Hash) Hash {
	var buf [HashSize * 2]byte
	copy(buf[:HashSize], left[:])
	copy(buf[HashSize:], right[:])
	return HashH(buf[:])
}

// DoubleHashH calculates hash(hash(b)) and returns the resulting bytes as a
// Hash.
func DoubleHashH(b []byte) Hash {
	first := blake2b.Sum256(b)
	return Hash(blake2b.Sum256(first[:]))
}
