// Copyright 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"bytes"
	"fmt"

	"github.com/Qitmeer/cellverify/common/hash"
	s "github.com/Qitmeer/cellverify/core/serialization"
	"github.com/holiman/uint256"
)

// HeaderDigest summarises a run of consecutive headers. A leaf covers one
// header, inner nodes of the chain root MMR cover the union of their
// children.
type HeaderDigest struct {
	ChildrenHash hash.Hash

	TotalDifficulty uint256.Int

	StartNumber uint64
	EndNumber   uint64

	StartEpoch EpochNumberWithFraction
	EndEpoch   EpochNumberWithFraction

	StartTimestamp uint64
	EndTimestamp   uint64

	StartCompactTarget uint32
	EndCompactTarget   uint32
}

// Digest returns the MMR leaf of the header.
func (h *HeaderView) Digest() HeaderDigest {
	epoch := h.Epoch()
	return HeaderDigest{
		ChildrenHash:       h.Hash(),
		TotalDifficulty:    *h.Difficulty(),
		StartNumber:        h.Number(),
		EndNumber:          h.Number(),
		StartEpoch:         epoch,
		EndEpoch:           epoch,
		StartTimestamp:     h.Timestamp(),
		EndTimestamp:       h.Timestamp(),
		StartCompactTarget: h.CompactTarget(),
		EndCompactTarget:   h.CompactTarget(),
	}
}

// Hash commits to every field of the digest.
func (d *HeaderDigest) Hash() hash.Hash {
	var buf bytes.Buffer
	diff := d.TotalDifficulty.Bytes32()
	_ = s.WriteElements(&buf, &d.ChildrenHash, hash.Hash(diff),
		d.StartNumber, d.EndNumber,
		d.StartEpoch.FullValue(), d.EndEpoch.FullValue(),
		d.StartTimestamp, d.EndTimestamp,
		d.StartCompactTarget, d.EndCompactTarget)
	return hash.HashH(buf.Bytes())
}

func (d *HeaderDigest) String() string {
	return fmt.Sprintf("HeaderDigest { blocks: %d..%d, hash: %s }",
		d.StartNumber, d.EndNumber, d.ChildrenHash)
}

// HeaderDigestMerger merges adjacent digests of the chain root MMR.
type HeaderDigestMerger struct{}

// Merge joins left and right, which must cover consecutive block ranges.
func (HeaderDigestMerger) Merge(left, right *HeaderDigest) (HeaderDigest, error) {
	if left.EndNumber+1 != right.StartNumber {
		return HeaderDigest{}, fmt.Errorf("numbers not continuous: %d then %d",
			left.EndNumber, right.StartNumber)
	}
	if !left.EndEpoch.Less(right.StartEpoch) {
		return HeaderDigest{}, fmt.Errorf("epochs not increasing: %s then %s",
			left.EndEpoch, right.StartEpoch)
	}
	lh, rh := left.Hash(), right.Hash()
	merged := HeaderDigest{
		ChildrenHash:       hash.HashMerge(&lh, &rh),
		StartNumber:        left.StartNumber,
		EndNumber:          right.EndNumber,
		StartEpoch:         left.StartEpoch,
		EndEpoch:           right.EndEpoch,
		StartTimestamp:     left.StartTimestamp,
		EndTimestamp:       right.EndTimestamp,
		StartCompactTarget: left.StartCompactTarget,
		EndCompactTarget:   right.EndCompactTarget,
	}
	if _, overflow := merged.TotalDifficulty.AddOverflow(&left.TotalDifficulty, &right.TotalDifficulty); overflow {
		return HeaderDigest{}, fmt.Errorf("total difficulty overflow merging %d..%d",
			left.StartNumber, right.EndNumber)
	}
	return merged, nil
}
