// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verification

import (
	"fmt"
	"time"

	"github.com/Qitmeer/cellverify/core/types"
	"github.com/Qitmeer/cellverify/log"
	"github.com/Qitmeer/cellverify/metrics"
	"github.com/deckarep/golang-set"
)

var (
	blockVerifyTimer   = metrics.NewTimer("verification/block")
	blockRejectedMeter = metrics.NewMeter("verification/block/rejected")
)

// BlockVerifier runs the context free structural checks of a block.
type BlockVerifier struct {
	maxBlockBytes          uint64
	maxBlockProposalsLimit uint64
}

func NewBlockVerifier(maxBlockBytes, maxBlockProposalsLimit uint64) *BlockVerifier {
	return &BlockVerifier{
		maxBlockBytes:          maxBlockBytes,
		maxBlockProposalsLimit: maxBlockProposalsLimit,
	}
}

// Verify returns the first failing check: proposals limit, block bytes,
// cellbase, duplicates, then merkle roots.
func (v *BlockVerifier) Verify(block *types.BlockView) error {
	start := time.Now()
	defer blockVerifyTimer.UpdateSince(start)

	verifyLog.Trace("Verifying block", "block", log.SpewClosure(block.Header().Data()))
	err := v.verify(block)
	if err != nil {
		blockRejectedMeter.Mark(1)
		logReject("block", block.Hash().String(), err)
	}
	return err
}

func (v *BlockVerifier) verify(block *types.BlockView) error {
	if err := NewBlockProposalsLimitVerifier(v.maxBlockProposalsLimit).Verify(block); err != nil {
		return err
	}
	if err := NewBlockBytesVerifier(v.maxBlockBytes).Verify(block); err != nil {
		return err
	}
	if err := NewCellbaseVerifier().Verify(block); err != nil {
		return err
	}
	if err := NewDuplicateVerifier().Verify(block); err != nil {
		return err
	}
	return NewMerkleRootVerifier().Verify(block)
}

// CellbaseVerifier checks that a non genesis block starts with exactly one
// well formed cellbase.
type CellbaseVerifier struct{}

func NewCellbaseVerifier() CellbaseVerifier {
	return CellbaseVerifier{}
}

func (CellbaseVerifier) Verify(block *types.BlockView) error {
	if block.IsGenesis() {
		return nil
	}

	transactions := block.Transactions()
	cellbases := 0
	for _, tx := range transactions {
		if tx.IsCellbase() {
			cellbases++
		}
	}
	if cellbases != 1 {
		str := fmt.Sprintf("block contains %d cellbases, expected 1", cellbases)
		return ruleError(ErrCellbaseInvalidQuantity, str)
	}

	// The cellbase must be the first transaction.
	cellbase := transactions[0]
	if !cellbase.IsCellbase() {
		return ruleError(ErrCellbaseInvalidPosition, "first transaction in "+
			"block is not the cellbase")
	}

	if len(cellbase.Outputs()) != 1 || len(cellbase.OutputsData()) != 1 {
		str := fmt.Sprintf("cellbase has %d outputs and %d outputs data, expected 1",
			len(cellbase.Outputs()), len(cellbase.OutputsData()))
		return ruleError(ErrCellbaseInvalidQuantity, str)
	}
	if len(cellbase.OutputsData()[0]) != 0 {
		return ruleError(ErrCellbaseInvalidOutputData, "cellbase output data is not empty")
	}

	if cellbase.Inputs()[0] != types.NewCellbaseInput(block.Number()) {
		str := fmt.Sprintf("cellbase input since %d does not commit to block %d",
			cellbase.Inputs()[0].Since, block.Number())
		return ruleError(ErrCellbaseInvalidInput, str)
	}
	return nil
}

// DuplicateVerifier rejects repeated transactions and proposals.
type DuplicateVerifier struct{}

func NewDuplicateVerifier() DuplicateVerifier {
	return DuplicateVerifier{}
}

func (DuplicateVerifier) Verify(block *types.BlockView) error {
	seen := mapset.NewThreadUnsafeSet()
	for _, h := range block.TxHashes() {
		if !seen.Add(h) {
			str := fmt.Sprintf("block contains duplicate transaction %v", h)
			return ruleError(ErrCommitTransactionDuplicate, str)
		}
	}

	proposals := mapset.NewThreadUnsafeSet()
	for _, id := range block.Proposals() {
		if !proposals.Add(id) {
			str := fmt.Sprintf("block contains duplicate proposal %v", id)
			return ruleError(ErrProposalTransactionDuplicate, str)
		}
	}
	return nil
}

// MerkleRootVerifier binds the header to the body.
type MerkleRootVerifier struct{}

func NewMerkleRootVerifier() MerkleRootVerifier {
	return MerkleRootVerifier{}
}

func (MerkleRootVerifier) Verify(block *types.BlockView) error {
	header := block.Header()
	if calculated := block.CalcTransactionsRoot(); header.TransactionsRoot() != calculated {
		str := fmt.Sprintf("block transactions root is invalid - block "+
			"header indicates %v, but calculated value is %v",
			header.TransactionsRoot(), calculated)
		return ruleError(ErrTransactionsRoot, str)
	}
	if calculated := block.CalcProposalsHash(); header.ProposalsHash() != calculated {
		str := fmt.Sprintf("block proposals hash is invalid - block "+
			"header indicates %v, but calculated value is %v",
			header.ProposalsHash(), calculated)
		return ruleError(ErrTransactionsRoot, str)
	}
	return nil
}

// BlockBytesVerifier bounds the serialized size of a block, uncle
// proposals excluded. Genesis is exempt.
type BlockBytesVerifier struct {
	maxBlockBytes uint64
}

func NewBlockBytesVerifier(maxBlockBytes uint64) BlockBytesVerifier {
	return BlockBytesVerifier{maxBlockBytes: maxBlockBytes}
}

func (v BlockBytesVerifier) Verify(block *types.BlockView) error {
	if block.IsGenesis() {
		return nil
	}
	size := uint64(block.SerializedSizeWithoutUncleProposals())
	if size > v.maxBlockBytes {
		str := fmt.Sprintf("serialized block is too big - got %d, max %d",
			size, v.maxBlockBytes)
		return ruleError(ErrExceededMaximumBlockBytes, str)
	}
	return nil
}

type BlockProposalsLimitVerifier struct {
	limit uint64
}

func NewBlockProposalsLimitVerifier(limit uint64) BlockProposalsLimitVerifier {
	return BlockProposalsLimitVerifier{limit: limit}
}

func (v BlockProposalsLimitVerifier) Verify(block *types.BlockView) error {
	if n := uint64(len(block.Proposals())); n > v.limit {
		str := fmt.Sprintf("block contains %d proposals, max %d", n, v.limit)
		return ruleError(ErrExceededMaximumProposalsLimit, str)
	}
	return nil
}
