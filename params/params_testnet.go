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
	testGenesisTimestamp     = 1589276230000
	testGenesisCompactTarget = 0x1e015555
	testEpochLength          = 1000
)

// TestNetParams defines the network parameters for the test network.
var TestNetParams = Params{
	Name: "testnet",

	GenesisBlock: buildGenesisBlock(testGenesisTimestamp, testGenesisCompactTarget,
		testEpochLength, types.CapacityBytes(1_000_000), "cellverify testnet genesis"),
	PowType: pow.KECCAK256,

	MaxBlockBytes:          597_000,
	MaxBlockProposalsLimit: 1_500,

	GenesisEpochLength:        testEpochLength,
	InitialPrimaryEpochReward: types.CapacityBytes(1_917_808),
	SecondaryEpochReward:      types.CapacityBytes(613_698),
	GenesisCompactTarget:      testGenesisCompactTarget,
}
