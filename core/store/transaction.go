// Copyright (c) 2017-2020 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"time"

	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/Qitmeer/cellverify/core/mmr"
	"github.com/Qitmeer/cellverify/core/types"
	"github.com/Qitmeer/cellverify/database"
	"github.com/Qitmeer/cellverify/metrics"
	"github.com/pkg/errors"
)

var (
	// ErrUnknownCell is returned when spending an out-point the store has
	// no record of.
	ErrUnknownCell = errors.New("unknown cell")

	// ErrDeadCell is returned when spending an out-point twice.
	ErrDeadCell = errors.New("cell is already dead")

	// ErrTransactionDone is returned by operations on a committed or rolled
	// back transaction.
	ErrTransactionDone = errors.New("store transaction already done")

	commitTimer = metrics.NewTimer("store/commit")
)

// StoreTransaction is the writer side of ChainDB. Its reads observe its own
// pending writes, other readers see nothing until Commit.
type StoreTransaction struct {
	chainReader
	owner   *ChainDB
	pending *overlay
	batch   database.Batch
	done    bool
}

func (t *StoreTransaction) put(col database.Col, key, value []byte) {
	t.pending.put(col, key, value)
	t.batch.Put(col, key, value)
}

func (t *StoreTransaction) delete(col database.Col, key []byte) {
	t.pending.delete(col, key)
	t.batch.Delete(col, key)
}

// InsertBlock stores the header, body, uncles and proposals of a block. It
// does not make the block part of the main chain.
func (t *StoreTransaction) InsertBlock(block *types.BlockView) error {
	blockHash := block.Hash()
	header, err := encodeHeader(block.Header())
	if err != nil {
		return errors.Wrapf(err, "encode header %s", blockHash)
	}
	t.put(ColumnBlockHeader, blockHash[:], header)
	for i, tx := range block.Transactions() {
		v, err := encodeTransaction(tx)
		if err != nil {
			return errors.Wrapf(err, "encode transaction %s", tx.Hash())
		}
		t.put(ColumnBlockBody, indexKey(blockHash, uint32(i)), v)
	}
	uncles, err := encodeUncles(block.Uncles())
	if err != nil {
		return errors.Wrapf(err, "encode uncles of %s", blockHash)
	}
	t.put(ColumnBlockUncle, blockHash[:], uncles)
	proposals, err := encodeProposals(block.Proposals())
	if err != nil {
		return errors.Wrapf(err, "encode proposals of %s", blockHash)
	}
	t.put(ColumnBlockProposalIDs, blockHash[:], proposals)
	return nil
}

// AttachBlock makes a stored block the next main chain block: it indexes
// the block by number, records where its transactions sit and pushes its
// header digest onto the chain root MMR.
func (t *StoreTransaction) AttachBlock(block *types.BlockView) error {
	blockHash := block.Hash()
	number := block.Number()
	if !block.IsGenesis() {
		parent, err := t.GetBlockHash(number - 1)
		if err != nil {
			return err
		}
		if parent == nil || *parent != block.Header().ParentHash() {
			return errors.Errorf("block %s (%d) does not extend the main chain", blockHash, number)
		}
	}
	t.put(ColumnIndex, numberKey(number), blockHash[:])
	t.put(ColumnBlockNumber, blockHash[:], numberKey(number))

	epoch := block.Header().Epoch()
	for i, tx := range block.Transactions() {
		v, err := encodeTxInfo(&types.TransactionInfo{
			BlockHash:   blockHash,
			BlockNumber: number,
			BlockEpoch:  epoch,
			Index:       uint32(i),
		})
		if err != nil {
			return err
		}
		txHash := tx.Hash()
		t.put(ColumnTransactionInfo, txHash[:], v)
	}

	var size uint64
	if !block.IsGenesis() {
		size = chainRootMMRSize(number - 1)
	}
	chainRoot := mmr.New[types.HeaderDigest](size, t, types.HeaderDigestMerger{})
	if _, err := chainRoot.Push(block.Header().Digest()); err != nil {
		return errors.Wrapf(err, "push digest of %s", blockHash)
	}
	return chainRoot.Commit()
}

// DetachBlock removes the main chain index entries of the tip block.
// Chain root MMR nodes past the new tip are left to be overwritten.
func (t *StoreTransaction) DetachBlock(block *types.BlockView) error {
	blockHash := block.Hash()
	t.delete(ColumnIndex, numberKey(block.Number()))
	t.delete(ColumnBlockNumber, blockHash[:])
	for _, tx := range block.Transactions() {
		txHash := tx.Hash()
		t.delete(ColumnTransactionInfo, txHash[:])
	}
	return nil
}

// AttachBlockCells creates the cells of every transaction of block and
// marks the cells they consume dead.
func (t *StoreTransaction) AttachBlockCells(block *types.BlockView) error {
	blockHash := block.Hash()
	number := block.Number()
	epoch := block.Header().Epoch()
	for i, tx := range block.Transactions() {
		if !tx.IsCellbase() {
			for _, in := range tx.Inputs() {
				if err := t.MarkSpent(in.PreviousOutput); err != nil {
					return errors.Wrapf(err, "attach cells of %s", blockHash)
				}
			}
		}
		info := &types.TransactionInfo{
			BlockHash:   blockHash,
			BlockNumber: number,
			BlockEpoch:  epoch,
			Index:       uint32(i),
		}
		meta, err := types.NewTxMeta(number, epoch, blockHash, len(tx.Outputs()), i == 0)
		if err != nil {
			return errors.Wrapf(err, "attach cells of %s", blockHash)
		}
		if err := t.putTxMeta(tx.Hash(), meta); err != nil {
			return err
		}
		for j := range tx.Outputs() {
			output, data, _ := tx.OutputWithData(j)
			if err := t.putCell(types.NewOutPoint(tx.Hash(), uint32(j)), output, data, info); err != nil {
				return err
			}
		}
	}
	return nil
}

// DetachBlockCells reverts AttachBlockCells for the tip block.
func (t *StoreTransaction) DetachBlockCells(block *types.BlockView) error {
	txs := block.Transactions()
	for i := len(txs) - 1; i >= 0; i-- {
		tx := txs[i]
		txHash := tx.Hash()
		t.delete(ColumnCellSet, txHash[:])
		for j := range tx.Outputs() {
			key := outPointKey(types.NewOutPoint(txHash, uint32(j)))
			t.delete(ColumnCell, key)
			t.delete(ColumnCellData, key)
		}
		if tx.IsCellbase() {
			continue
		}
		for _, in := range tx.Inputs() {
			if err := t.restoreCell(in.PreviousOutput); err != nil {
				return errors.Wrapf(err, "detach cells of %s", block.Hash())
			}
		}
	}
	return nil
}

func (t *StoreTransaction) restoreCell(op types.OutPoint) error {
	meta, err := t.GetTxMeta(op.TxHash)
	if err != nil {
		return err
	}
	if meta == nil || !meta.UnsetDead(int(op.Index)) {
		return errors.Wrapf(ErrUnknownCell, "restore %s", op)
	}
	tx, info, err := t.GetTransaction(op.TxHash)
	if err != nil {
		return err
	}
	if tx == nil {
		return errors.Wrapf(ErrUnknownCell, "restore %s: transaction not found", op)
	}
	output, data, ok := tx.OutputWithData(int(op.Index))
	if !ok {
		return AssertError("tx meta covers missing output " + op.String())
	}
	if err := t.putTxMeta(op.TxHash, meta); err != nil {
		return err
	}
	return t.putCell(op, output, data, info)
}

// MarkSpent flips the dead bit of out-point and drops its cell entry.
func (t *StoreTransaction) MarkSpent(op types.OutPoint) error {
	meta, err := t.GetTxMeta(op.TxHash)
	if err != nil {
		return err
	}
	if meta == nil {
		return errors.Wrapf(ErrUnknownCell, "spend %s", op)
	}
	dead, ok := meta.IsDead(int(op.Index))
	if !ok {
		return errors.Wrapf(ErrUnknownCell, "spend %s", op)
	}
	if dead {
		return errors.Wrapf(ErrDeadCell, "spend %s", op)
	}
	meta.SetDead(int(op.Index))
	if err := t.putTxMeta(op.TxHash, meta); err != nil {
		return err
	}
	key := outPointKey(op)
	t.delete(ColumnCell, key)
	t.delete(ColumnCellData, key)
	return nil
}

func (t *StoreTransaction) putTxMeta(txHash hash.Hash, meta *types.TxMeta) error {
	v, err := encodeTxMeta(meta)
	if err != nil {
		return errors.Wrapf(err, "encode tx meta %s", txHash)
	}
	t.put(ColumnCellSet, txHash[:], v)
	return nil
}

func (t *StoreTransaction) putCell(op types.OutPoint, output types.CellOutput, data []byte,
	info *types.TransactionInfo) error {
	cell, err := encodeCell(&types.CellMeta{
		CellOutput:      output,
		OutPoint:        op,
		TransactionInfo: info,
		DataBytes:       uint64(len(data)),
	})
	if err != nil {
		return errors.Wrapf(err, "encode cell %s", op)
	}
	cellData, err := encodeCellData(data)
	if err != nil {
		return errors.Wrapf(err, "encode cell data %s", op)
	}
	key := outPointKey(op)
	t.put(ColumnCell, key, cell)
	t.put(ColumnCellData, key, cellData)
	return nil
}

func (t *StoreTransaction) InsertBlockExt(blockHash hash.Hash, ext *types.BlockExt) error {
	v, err := encodeBlockExt(ext)
	if err != nil {
		return errors.Wrapf(err, "encode block ext %s", blockHash)
	}
	t.put(ColumnBlockExt, blockHash[:], v)
	return nil
}

func (t *StoreTransaction) InsertEpochExt(epoch *types.EpochExt) error {
	v, err := encodeEpochExt(epoch)
	if err != nil {
		return errors.Wrapf(err, "encode epoch %d", epoch.Number)
	}
	t.put(ColumnEpoch, numberKey(epoch.Number), v)
	return nil
}

func (t *StoreTransaction) InsertCurrentEpochExt(epoch *types.EpochExt) error {
	v, err := encodeEpochExt(epoch)
	if err != nil {
		return errors.Wrapf(err, "encode epoch %d", epoch.Number)
	}
	t.put(ColumnMeta, metaCurrentEpochKey, v)
	return nil
}

// AttachBlockEpoch records the epoch number of a block. The EpochExt itself
// is stored with InsertEpochExt.
func (t *StoreTransaction) AttachBlockEpoch(blockHash hash.Hash, epochNumber uint64) error {
	t.put(ColumnBlockEpoch, blockHash[:], numberKey(epochNumber))
	return nil
}

func (t *StoreTransaction) InsertTip(header *types.HeaderView) {
	tip := header.Hash()
	t.put(ColumnMeta, metaTipKey, tip[:])
}

// Append stores chain root MMR nodes from pos on. It makes the transaction
// an mmr.Store.
func (t *StoreTransaction) Append(pos uint64, elems []types.HeaderDigest) error {
	for i := range elems {
		v, err := encodeHeaderDigest(&elems[i])
		if err != nil {
			return errors.Wrapf(err, "encode mmr node %d", pos+uint64(i))
		}
		t.put(ColumnChainRootMMR, numberKey(pos+uint64(i)), v)
	}
	return nil
}

// ChainRootMMR returns the MMR whose last leaf is the digest of block
// number, backed by this transaction.
func (t *StoreTransaction) ChainRootMMR(number uint64) *mmr.MMR[types.HeaderDigest] {
	return mmr.New[types.HeaderDigest](chainRootMMRSize(number), t, types.HeaderDigestMerger{})
}

// Commit writes every pending change atomically and ends the transaction.
func (t *StoreTransaction) Commit() error {
	if t.done {
		return ErrTransactionDone
	}
	start := time.Now()
	err := t.batch.Write()
	commitTimer.UpdateSince(start)
	t.finish()
	if err != nil {
		return errors.Wrap(err, "commit store transaction")
	}
	return nil
}

// Rollback drops the pending changes. It is a no-op after Commit.
func (t *StoreTransaction) Rollback() {
	if t.done {
		return
	}
	t.finish()
}

func (t *StoreTransaction) finish() {
	t.done = true
	t.batch.Reset()
	t.pending.reset()
	t.owner.writer.Unlock()
}
