// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package params

import (
	"github.com/Qitmeer/cellverify/core/types"
)

// buildGenesisCellbase is the cellbase transaction of a genesis block. Its
// single output locks the initial capacity and the witness carries the
// network message.
func buildGenesisCellbase(capacity types.Capacity, message string) *types.TransactionView {
	return types.NewTransactionBuilder().
		Input(types.NewCellbaseInput(0)).
		Output(types.CellOutput{Capacity: capacity}).
		OutputData(nil).
		Witness([]byte(message)).
		Build()
}

// buildGenesisBlock defines the genesis block of a network.
//
// The genesis block is not evaluated for proof of work. The only values
// that are ever used elsewhere in the chain from it are:
// (1) The genesis block hash is the parent of block 1.
// (2) The difficulty starts off at the value given by compactTarget.
// (3) The timestamp, which guides when blocks can be built on top of it.
func buildGenesisBlock(timestamp uint64, compactTarget uint32, epochLength uint64,
	capacity types.Capacity, message string) *types.BlockView {
	header := types.NewHeaderBuilder().
		Timestamp(timestamp).
		CompactTarget(compactTarget).
		Epoch(types.NewEpochNumberWithFraction(0, 0, epochLength)).
		Build()
	return types.NewBlockBuilder().
		Header(header).
		Transaction(buildGenesisCellbase(capacity, message)).
		Build()
}
