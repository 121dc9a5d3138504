// Copyright (c) 2017-2020 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package store keeps the chain on a column scoped key value database. A
// ChainDB hands out point in time snapshots for verification and a single
// StoreTransaction at a time for the writer.
package store

import (
	"sort"

	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/Qitmeer/cellverify/core/mmr"
	"github.com/Qitmeer/cellverify/core/types"
	"github.com/Qitmeer/cellverify/database"
	"github.com/Qitmeer/cellverify/log"
	"github.com/pkg/errors"
)

// MedianTimeBlockCount is the number of blocks, the block itself included,
// whose timestamps make up the median time of a block.
const MedianTimeBlockCount = 37

var storeLog = log.New("module", "store")

// AssertError reports stored data contradicting itself.
type AssertError string

func (e AssertError) Error() string {
	return "assertion failed: " + string(e)
}

// ChainStore is the read side shared by the live database, its snapshots
// and the writer transaction. Lookups of absent entries return a nil value
// and a nil error.
type ChainStore interface {
	GetBlockHash(number uint64) (*hash.Hash, error)
	GetBlockNumber(blockHash hash.Hash) (uint64, bool, error)
	GetBlockHeader(blockHash hash.Hash) (*types.HeaderView, error)
	GetBlockBody(blockHash hash.Hash) ([]*types.TransactionView, error)
	GetBlockUncles(blockHash hash.Hash) ([]*types.UncleBlockView, error)
	GetBlockProposals(blockHash hash.Hash) ([]types.ProposalShortID, error)
	GetBlock(blockHash hash.Hash) (*types.BlockView, error)
	GetBlockExt(blockHash hash.Hash) (*types.BlockExt, error)
	GetBlockEpoch(blockHash hash.Hash) (*types.EpochExt, error)
	GetEpochExt(number uint64) (*types.EpochExt, error)
	GetCurrentEpochExt() (*types.EpochExt, error)
	GetTip() (*types.HeaderView, error)
	GetTxMeta(txHash hash.Hash) (*types.TxMeta, error)
	GetCellMeta(outPoint types.OutPoint) (*types.CellMeta, error)
	GetCellData(outPoint types.OutPoint) ([]byte, *hash.Hash, error)
	GetTransactionInfo(txHash hash.Hash) (*types.TransactionInfo, error)
	GetTransaction(txHash hash.Hash) (*types.TransactionView, *types.TransactionInfo, error)
	TransactionCells(txHash hash.Hash, fn func(*types.CellMeta) bool) error
	MedianTime(blockHash hash.Hash) (uint64, error)
	GetElem(pos uint64) (types.HeaderDigest, bool, error)
}

// chainReader implements ChainStore over any database.Reader.
type chainReader struct {
	r database.Reader
}

func (c *chainReader) get(col database.Col, key []byte) ([]byte, error) {
	v, err := c.r.Get(col, key)
	if err == database.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read column %d", col)
	}
	return v, nil
}

func (c *chainReader) GetBlockHash(number uint64) (*hash.Hash, error) {
	v, err := c.get(ColumnIndex, numberKey(number))
	if err != nil || v == nil {
		return nil, err
	}
	return hash.NewHash(v)
}

func (c *chainReader) GetBlockNumber(blockHash hash.Hash) (uint64, bool, error) {
	v, err := c.get(ColumnBlockNumber, blockHash[:])
	if err != nil || v == nil {
		return 0, false, err
	}
	if len(v) != 8 {
		return 0, false, errors.Errorf("block number of %s: bad length %d", blockHash, len(v))
	}
	return ByteOrder.Uint64(v), true, nil
}

func (c *chainReader) GetBlockHeader(blockHash hash.Hash) (*types.HeaderView, error) {
	v, err := c.get(ColumnBlockHeader, blockHash[:])
	if err != nil || v == nil {
		return nil, err
	}
	header, err := decodeHeader(v)
	if err != nil {
		return nil, errors.Wrapf(err, "decode header %s", blockHash)
	}
	return header, nil
}

func (c *chainReader) GetBlockBody(blockHash hash.Hash) ([]*types.TransactionView, error) {
	var (
		txs    []*types.TransactionView
		decErr error
	)
	err := database.PrefixIter(c.r, ColumnBlockBody, blockHash[:], func(_, value []byte) bool {
		tx, err := decodeTransaction(value)
		if err != nil {
			decErr = errors.Wrapf(err, "decode body of %s", blockHash)
			return false
		}
		txs = append(txs, tx)
		return true
	})
	if err != nil {
		return nil, err
	}
	return txs, decErr
}

func (c *chainReader) GetBlockUncles(blockHash hash.Hash) ([]*types.UncleBlockView, error) {
	v, err := c.get(ColumnBlockUncle, blockHash[:])
	if err != nil || v == nil {
		return nil, err
	}
	uncles, err := decodeUncles(v)
	if err != nil {
		return nil, errors.Wrapf(err, "decode uncles of %s", blockHash)
	}
	return uncles, nil
}

func (c *chainReader) GetBlockProposals(blockHash hash.Hash) ([]types.ProposalShortID, error) {
	v, err := c.get(ColumnBlockProposalIDs, blockHash[:])
	if err != nil || v == nil {
		return nil, err
	}
	ids, err := decodeProposals(v)
	if err != nil {
		return nil, errors.Wrapf(err, "decode proposals of %s", blockHash)
	}
	return ids, nil
}

// GetBlock assembles a stored block. The header is taken as stored.
func (c *chainReader) GetBlock(blockHash hash.Hash) (*types.BlockView, error) {
	header, err := c.GetBlockHeader(blockHash)
	if err != nil || header == nil {
		return nil, err
	}
	txs, err := c.GetBlockBody(blockHash)
	if err != nil {
		return nil, err
	}
	uncles, err := c.GetBlockUncles(blockHash)
	if err != nil {
		return nil, err
	}
	proposals, err := c.GetBlockProposals(blockHash)
	if err != nil {
		return nil, err
	}
	builder := types.NewBlockBuilder().Header(header).Transactions(txs).Proposals(proposals)
	for _, u := range uncles {
		builder.Uncle(u)
	}
	return builder.BuildUnchecked(), nil
}

func (c *chainReader) GetBlockExt(blockHash hash.Hash) (*types.BlockExt, error) {
	v, err := c.get(ColumnBlockExt, blockHash[:])
	if err != nil || v == nil {
		return nil, err
	}
	ext, err := decodeBlockExt(v)
	if err != nil {
		return nil, errors.Wrapf(err, "decode block ext of %s", blockHash)
	}
	return ext, nil
}

// GetBlockEpoch returns the epoch a stored block belongs to.
func (c *chainReader) GetBlockEpoch(blockHash hash.Hash) (*types.EpochExt, error) {
	v, err := c.get(ColumnBlockEpoch, blockHash[:])
	if err != nil || v == nil {
		return nil, err
	}
	if len(v) != 8 {
		return nil, errors.Errorf("epoch of %s: bad length %d", blockHash, len(v))
	}
	return c.GetEpochExt(ByteOrder.Uint64(v))
}

func (c *chainReader) GetEpochExt(number uint64) (*types.EpochExt, error) {
	v, err := c.get(ColumnEpoch, numberKey(number))
	if err != nil || v == nil {
		return nil, err
	}
	e, err := decodeEpochExt(v)
	if err != nil {
		return nil, errors.Wrapf(err, "decode epoch %d", number)
	}
	return e, nil
}

func (c *chainReader) GetCurrentEpochExt() (*types.EpochExt, error) {
	v, err := c.get(ColumnMeta, metaCurrentEpochKey)
	if err != nil || v == nil {
		return nil, err
	}
	return decodeEpochExt(v)
}

func (c *chainReader) GetTip() (*types.HeaderView, error) {
	v, err := c.get(ColumnMeta, metaTipKey)
	if err != nil || v == nil {
		return nil, err
	}
	tip, err := hash.NewHash(v)
	if err != nil {
		return nil, err
	}
	return c.GetBlockHeader(*tip)
}

func (c *chainReader) GetTxMeta(txHash hash.Hash) (*types.TxMeta, error) {
	v, err := c.get(ColumnCellSet, txHash[:])
	if err != nil || v == nil {
		return nil, err
	}
	meta, err := decodeTxMeta(v)
	if err != nil {
		return nil, errors.Wrapf(err, "decode tx meta %s", txHash)
	}
	return meta, nil
}

func (c *chainReader) GetCellMeta(outPoint types.OutPoint) (*types.CellMeta, error) {
	v, err := c.get(ColumnCell, outPointKey(outPoint))
	if err != nil || v == nil {
		return nil, err
	}
	meta, err := decodeCell(outPoint, v)
	if err != nil {
		return nil, errors.Wrapf(err, "decode cell %s", outPoint)
	}
	return meta, nil
}

func (c *chainReader) GetCellData(outPoint types.OutPoint) ([]byte, *hash.Hash, error) {
	v, err := c.get(ColumnCellData, outPointKey(outPoint))
	if err != nil || v == nil {
		return nil, nil, err
	}
	data, dataHash, err := decodeCellData(v)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "decode cell data %s", outPoint)
	}
	return data, &dataHash, nil
}

func (c *chainReader) GetTransactionInfo(txHash hash.Hash) (*types.TransactionInfo, error) {
	v, err := c.get(ColumnTransactionInfo, txHash[:])
	if err != nil || v == nil {
		return nil, err
	}
	info, err := decodeTxInfo(v)
	if err != nil {
		return nil, errors.Wrapf(err, "decode tx info %s", txHash)
	}
	return info, nil
}

// GetTransaction returns a main chain transaction and where it sits.
func (c *chainReader) GetTransaction(txHash hash.Hash) (*types.TransactionView, *types.TransactionInfo, error) {
	info, err := c.GetTransactionInfo(txHash)
	if err != nil || info == nil {
		return nil, nil, err
	}
	v, err := c.get(ColumnBlockBody, indexKey(info.BlockHash, info.Index))
	if err != nil {
		return nil, nil, err
	}
	if v == nil {
		return nil, nil, AssertError("transaction info without body: " + txHash.String())
	}
	tx, err := decodeTransaction(v)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "decode transaction %s", txHash)
	}
	return tx, info, nil
}

// TransactionCells calls fn for every live cell of txHash in output order
// until fn returns false.
func (c *chainReader) TransactionCells(txHash hash.Hash, fn func(*types.CellMeta) bool) error {
	var decErr error
	err := database.PrefixIter(c.r, ColumnCell, txHash[:], func(key, value []byte) bool {
		op := types.NewOutPoint(txHash, ByteOrder.Uint32(key[hash.HashSize:]))
		meta, err := decodeCell(op, value)
		if err != nil {
			decErr = errors.Wrapf(err, "decode cell %s", op)
			return false
		}
		return fn(meta)
	})
	if err != nil {
		return err
	}
	return decErr
}

// MedianTime returns the median timestamp of the block and up to
// MedianTimeBlockCount-1 of its ancestors.
func (c *chainReader) MedianTime(blockHash hash.Hash) (uint64, error) {
	timestamps := make([]uint64, 0, MedianTimeBlockCount)
	current := blockHash
	for i := 0; i < MedianTimeBlockCount; i++ {
		header, err := c.GetBlockHeader(current)
		if err != nil {
			return 0, err
		}
		if header == nil {
			return 0, errors.Errorf("median time: missing header %s", current)
		}
		timestamps = append(timestamps, header.Timestamp())
		if header.IsGenesis() {
			break
		}
		current = header.ParentHash()
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] < timestamps[j] })
	return timestamps[len(timestamps)/2], nil
}

// GetElem reads a persisted node of the chain root MMR.
func (c *chainReader) GetElem(pos uint64) (types.HeaderDigest, bool, error) {
	v, err := c.get(ColumnChainRootMMR, numberKey(pos))
	if err != nil || v == nil {
		return types.HeaderDigest{}, false, err
	}
	d, err := decodeHeaderDigest(v)
	if err != nil {
		return types.HeaderDigest{}, false, errors.Wrapf(err, "decode mmr node %d", pos)
	}
	return d, true, nil
}

// chainRootMMRSize is the size of the MMR whose last leaf is the header of
// block number.
func chainRootMMRSize(number uint64) uint64 {
	return mmr.LeafIndexToMMRSize(number)
}
