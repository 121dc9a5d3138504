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

const privEpochLength = 1000

// PrivNetParams defines the network parameters for the private test network.
// It uses the dummy engine so blocks can be produced without mining.
var PrivNetParams = Params{
	Name: "privnet",

	GenesisBlock: buildGenesisBlock(0, pow.DiffTwo, privEpochLength,
		types.CapacityBytes(1_000_000), "cellverify privnet genesis"),
	PowType: pow.DUMMY,

	MaxBlockBytes:          597_000,
	MaxBlockProposalsLimit: 1_500,

	GenesisEpochLength:        privEpochLength,
	InitialPrimaryEpochReward: types.CapacityBytes(1_917_808),
	SecondaryEpochReward:      types.CapacityBytes(613_698),
	GenesisCompactTarget:      pow.DiffTwo,
}
