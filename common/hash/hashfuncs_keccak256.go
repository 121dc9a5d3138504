// Copyright (c) 2017-2018 The qitmeer developers

package hash

import (
	"golang.org/x/crypto/sha3"
)

// Keccak256H calculates the legacy keccak256 hash of b and returns the
// resulting bytes as a Hash.
func Keccak256H(b []byte) Hash {
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	var r Hash
	copy(r[:], h.Sum(nil))
	return r
}
