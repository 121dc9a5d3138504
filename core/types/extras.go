// Copyright 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/holiman/uint256"
)

// VerifiedStatus is the verification outcome recorded for a block.
type VerifiedStatus byte

const (
	VerifiedUnset VerifiedStatus = iota
	VerifiedValid
	VerifiedInvalid
)

var verifiedStatusStrings = map[VerifiedStatus]string{
	VerifiedUnset:   "unset",
	VerifiedValid:   "valid",
	VerifiedInvalid: "invalid",
}

func (v VerifiedStatus) String() string {
	if s, ok := verifiedStatusStrings[v]; ok {
		return s
	}
	return "unknown"
}

// BlockExt is the side record kept for every stored block.
type BlockExt struct {
	// Milliseconds since the unix epoch.
	ReceivedAt       uint64
	TotalDifficulty  uint256.Int
	TotalUnclesCount uint64
	Verified         VerifiedStatus
	TxsFees          []Capacity
}

// IsVerified reports whether a verdict was recorded.
func (b *BlockExt) IsVerified() bool {
	return b.Verified != VerifiedUnset
}

// TransactionInfo locates a committed transaction.
type TransactionInfo struct {
	BlockHash   hash.Hash
	BlockNumber uint64
	BlockEpoch  EpochNumberWithFraction
	Index       uint32
}

// IsCellbase reports whether the transaction is first in its block.
func (t *TransactionInfo) IsCellbase() bool {
	return t.Index == 0
}

// IsGenesis reports whether the transaction belongs to the genesis block.
func (t *TransactionInfo) IsGenesis() bool {
	return t.BlockNumber == 0
}
