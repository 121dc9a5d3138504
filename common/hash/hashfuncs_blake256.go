// Copyright (c) 2017-2018 The qitmeer developers

package hash

import (
	"github.com/dchest/blake256"
)

// Blake256H calculates blake256(b) and returns the resulting bytes as a Hash.
func Blake256H(b []byte) Hash {
	h := blake256.New()
	h.Write(b)
	var r Hash
	copy(r[:], h.Sum(nil))
	return r
}
