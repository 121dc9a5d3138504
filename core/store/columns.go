// Copyright (c) 2017-2020 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"encoding/binary"

	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/Qitmeer/cellverify/core/types"
	"github.com/Qitmeer/cellverify/database"
)

// ByteOrder is the byte order used for numeric keys. Big endian keeps the
// keys of a column sorted by number.
var ByteOrder = binary.BigEndian

const (
	// ColumnIndex maps a main chain block number to its hash.
	ColumnIndex database.Col = iota

	// ColumnBlockNumber maps a main chain block hash to its number.
	ColumnBlockNumber

	// ColumnBlockHeader maps a block hash to its header.
	ColumnBlockHeader

	// ColumnBlockBody maps block hash ++ tx index to a transaction.
	ColumnBlockBody

	ColumnBlockUncle

	ColumnBlockProposalIDs

	ColumnBlockExt

	// ColumnBlockEpoch maps a block hash to the number of its epoch.
	ColumnBlockEpoch

	// ColumnEpoch maps an epoch number to its EpochExt.
	ColumnEpoch

	// ColumnCellSet maps a tx hash to the TxMeta of its outputs.
	ColumnCellSet

	// ColumnCell maps tx hash ++ output index to a live cell.
	ColumnCell

	ColumnCellData

	ColumnTransactionInfo

	// ColumnChainRootMMR maps an MMR position to a HeaderDigest.
	ColumnChainRootMMR

	ColumnMeta
)

var (
	metaTipKey          = []byte("TIP_HEADER")
	metaCurrentEpochKey = []byte("CURRENT_EPOCH")
)

func numberKey(n uint64) []byte {
	var k [8]byte
	ByteOrder.PutUint64(k[:], n)
	return k[:]
}

func indexKey(h hash.Hash, index uint32) []byte {
	k := make([]byte, hash.HashSize+4)
	copy(k, h[:])
	ByteOrder.PutUint32(k[hash.HashSize:], index)
	return k
}

func outPointKey(op types.OutPoint) []byte {
	return indexKey(op.TxHash, op.Index)
}
