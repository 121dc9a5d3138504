// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package params

import (
	"github.com/Qitmeer/cellverify/core/types"
	"github.com/Qitmeer/cellverify/core/types/pow"
)

const (
	mainGenesisTimestamp     = 1573852190812
	mainGenesisCompactTarget = 0x1a08a97e
	mainEpochLength          = 1743
)

// mainInitialEpochReward is the primary issuance of the first mainnet epoch.
var mainInitialEpochReward = types.CapacityBytes(1_917_808)

// MainNetParams defines the network parameters for the main network.
var MainNetParams = Params{
	Name: "mainnet",

	GenesisBlock: buildGenesisBlock(mainGenesisTimestamp, mainGenesisCompactTarget,
		mainEpochLength, types.CapacityBytes(1_000_000), "cellverify mainnet genesis"),
	PowType: pow.BLAKE2B,

	MaxBlockBytes:          597_000,
	MaxBlockProposalsLimit: 1_500,

	GenesisEpochLength:        mainEpochLength,
	InitialPrimaryEpochReward: mainInitialEpochReward,
	SecondaryEpochReward:      types.CapacityBytes(613_698),
	GenesisCompactTarget:      mainGenesisCompactTarget,
}
