// Copyright (c) 2017-2020 The qitmeer developers
// license that can be found in the LICENSE file.

package mmr

import "errors"

var (
	// ErrInconsistentStore is returned when a node the MMR relies on is
	// missing from the store, or when a read only store is written to.
	ErrInconsistentStore = errors.New("inconsistent store")

	ErrGetRootOnEmpty = errors.New("get root on an empty MMR")

	ErrGenProofForInvalidLeaves = errors.New("generate proof for invalid leaves")

	ErrCorruptedProof = errors.New("corrupted proof")

	// ErrMerge wraps the failures of Merge.
	ErrMerge = errors.New("merge error")
)
