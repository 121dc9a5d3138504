// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package params

import (
	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/Qitmeer/cellverify/core/types"
	"github.com/Qitmeer/cellverify/core/types/pow"
)

// Params defines a cellverify network by its consensus parameters.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// GenesisBlock defines the first block of the chain.
	GenesisBlock *types.BlockView

	// PowType selects the proof of work engine every non genesis header
	// must satisfy.
	PowType pow.PowType

	// MaxBlockBytes is the largest serialized block, uncle proposals
	// excluded, consensus accepts.
	MaxBlockBytes uint64

	// MaxBlockProposalsLimit bounds the proposal ids a block may carry.
	MaxBlockProposalsLimit uint64

	// GenesisEpochLength is the number of blocks in the genesis epoch.
	GenesisEpochLength uint64

	// InitialPrimaryEpochReward is the primary issuance of the genesis
	// epoch. It is split evenly over its blocks.
	InitialPrimaryEpochReward types.Capacity

	// SecondaryEpochReward is the secondary issuance of every epoch.
	SecondaryEpochReward types.Capacity

	// GenesisCompactTarget is the difficulty target of the genesis epoch.
	GenesisCompactTarget uint32
}

// GenesisHash is the hash of the genesis block.
func (p *Params) GenesisHash() hash.Hash {
	return p.GenesisBlock.Hash()
}

// GenesisEpochExt builds the epoch the genesis block belongs to.
func (p *Params) GenesisEpochExt() *types.EpochExt {
	length := p.GenesisEpochLength
	return &types.EpochExt{
		Number:          0,
		BaseBlockReward: types.Capacity(uint64(p.InitialPrimaryEpochReward) / length),
		RemainderReward: types.Capacity(uint64(p.InitialPrimaryEpochReward) % length),
		StartNumber:     0,
		Length:          length,
		CompactTarget:   p.GenesisCompactTarget,
	}
}

// Engine returns the proof of work engine of the network.
func (p *Params) Engine() pow.Engine {
	return pow.NewEngine(p.PowType)
}

// WithPowType returns a copy of p verifying with powType instead.
func (p *Params) WithPowType(powType pow.PowType) *Params {
	np := *p
	np.PowType = powType
	return &np
}
