// Copyright (c) 2017-2020 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/Qitmeer/cellverify/core/mmr"
	"github.com/Qitmeer/cellverify/core/types"
	"github.com/Qitmeer/cellverify/database"
	"github.com/Qitmeer/cellverify/metrics"
)

var (
	cellLiveCounter    = metrics.NewCounter("store/cell/live")
	cellDeadCounter    = metrics.NewCounter("store/cell/dead")
	cellUnknownCounter = metrics.NewCounter("store/cell/unknown")
)

// StoreSnapshot is a read only view of the chain frozen when it was taken.
// It resolves cells and headers for verification and exposes the chain
// root MMR without allowing appends.
type StoreSnapshot struct {
	chainReader
	snap database.Snapshot
}

var (
	_ types.CellProvider            = (*StoreSnapshot)(nil)
	_ types.HeaderChecker           = (*StoreSnapshot)(nil)
	_ mmr.Store[types.HeaderDigest] = (*StoreSnapshot)(nil)
	_ mmr.Store[types.HeaderDigest] = (*StoreTransaction)(nil)
	_ ChainStore                    = (*StoreSnapshot)(nil)
	_ ChainStore                    = (*ChainDB)(nil)
)

// Cell classifies out-point as live, dead or unknown. Data is loaded only
// when withData is set.
func (s *StoreSnapshot) Cell(outPoint types.OutPoint, withData bool) types.CellStatus {
	status := s.cell(outPoint, withData)
	switch status.Kind {
	case types.CellLive:
		cellLiveCounter.Inc(1)
	case types.CellDead:
		cellDeadCounter.Inc(1)
	default:
		cellUnknownCounter.Inc(1)
	}
	return status
}

func (s *StoreSnapshot) cell(outPoint types.OutPoint, withData bool) types.CellStatus {
	meta, err := s.GetTxMeta(outPoint.TxHash)
	if err != nil {
		storeLog.Error("Failed to read tx meta", "tx", outPoint.TxHash, "err", err)
		return types.UnknownCell()
	}
	if meta == nil {
		return types.UnknownCell()
	}
	dead, ok := meta.IsDead(int(outPoint.Index))
	if !ok {
		return types.UnknownCell()
	}
	if dead {
		return types.DeadCell()
	}

	cell, err := s.GetCellMeta(outPoint)
	if err == nil && cell == nil {
		err = AssertError("tx meta implies cell exists: " + outPoint.String())
	}
	if err != nil {
		storeLog.Error("Failed to load live cell", "outpoint", outPoint, "err", err)
		return types.UnknownCell()
	}
	if withData {
		data, dataHash, err := s.GetCellData(outPoint)
		if err == nil && dataHash == nil {
			err = AssertError("cell meta implies cell data exists: " + outPoint.String())
		}
		if err != nil {
			storeLog.Error("Failed to load cell data", "outpoint", outPoint, "err", err)
			return types.UnknownCell()
		}
		cell.MemCellData = data
		cell.MemCellDataHash = dataHash
	}
	return types.LiveCell(cell)
}

// IsValid reports whether blockHash is on the main chain of the snapshot.
func (s *StoreSnapshot) IsValid(blockHash hash.Hash) bool {
	_, ok, err := s.GetBlockNumber(blockHash)
	if err != nil {
		storeLog.Error("Failed to read block number", "hash", blockHash, "err", err)
		return false
	}
	return ok
}

// BlockMedianTime returns MedianTime of blockHash. A block whose ancestry
// cannot be read gets the largest timestamp so nothing passes after it.
func (s *StoreSnapshot) BlockMedianTime(blockHash hash.Hash) uint64 {
	median, err := s.MedianTime(blockHash)
	if err != nil {
		storeLog.Error("Failed to compute median time", "hash", blockHash, "err", err)
		return ^uint64(0)
	}
	return median
}

// Append always fails, the chain root MMR of a snapshot is read only.
func (s *StoreSnapshot) Append(pos uint64, elems []types.HeaderDigest) error {
	storeLog.Error("Failed to append to MMR, snapshot MMR is readonly")
	return mmr.ErrInconsistentStore
}

// ChainRootMMR returns the read only MMR whose last leaf is the digest of
// block number.
func (s *StoreSnapshot) ChainRootMMR(number uint64) *mmr.MMR[types.HeaderDigest] {
	return mmr.New[types.HeaderDigest](chainRootMMRSize(number), s, types.HeaderDigestMerger{})
}

func (s *StoreSnapshot) Release() {
	s.snap.Release()
}
