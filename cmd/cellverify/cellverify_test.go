package main

import (
	"fmt"
	"testing"
	"time"

	"github.com/Qitmeer/cellverify/core/store"
	"github.com/Qitmeer/cellverify/core/types"
	"github.com/Qitmeer/cellverify/core/verification"
	"github.com/Qitmeer/cellverify/database/ldb"
	"github.com/Qitmeer/cellverify/params"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = &params.PrivNetParams

func newTestChain(t *testing.T) *store.ChainDB {
	db, err := ldb.OpenMem()
	require.NoError(t, err)
	chain := store.NewChainDB(db)
	t.Cleanup(func() { chain.Close() })
	require.NoError(t, chain.InitGenesis(testParams.GenesisBlock, testParams.GenesisEpochExt()))
	return chain
}

func nextBlock(parent *types.HeaderView, cellbaseData []byte) *types.BlockView {
	number := parent.Number() + 1
	cellbase := types.NewTransactionBuilder().
		Input(types.NewCellbaseInput(number)).
		Output(types.CellOutput{Capacity: types.CapacityBytes(1000)}).
		OutputData(cellbaseData).
		Build()
	header := types.NewHeaderBuilder().
		ParentHash(parent.Hash()).
		Number(number).
		Timestamp(parent.Timestamp() + 1000).
		CompactTarget(testParams.GenesisCompactTarget).
		Epoch(types.NewEpochNumberWithFraction(0, number, testParams.GenesisEpochLength)).
		Build()
	return types.NewBlockBuilder().Header(header).Transaction(cellbase).Build()
}

func appendBlock(t *testing.T, chain *store.ChainDB, block *types.BlockView) {
	txn := chain.BeginTransaction()
	defer txn.Rollback()
	require.NoError(t, txn.InsertBlock(block))
	require.NoError(t, txn.AttachBlock(block))
	require.NoError(t, txn.AttachBlockCells(block))
	require.NoError(t, txn.AttachBlockEpoch(block.Hash(), 0))
	txn.InsertTip(block.Header())
	require.NoError(t, txn.Commit())
}

func extend(t *testing.T, chain *store.ChainDB, n int) []*types.BlockView {
	parent := testParams.GenesisBlock.Header()
	var blocks []*types.BlockView
	for i := 0; i < n; i++ {
		block := nextBlock(parent, nil)
		appendBlock(t, chain, block)
		blocks = append(blocks, block)
		parent = block.Header()
	}
	return blocks
}

func testClock() clock.Clock {
	return clock.NewTestClock(time.UnixMilli(1_000_000))
}

func TestVerifyRange(t *testing.T) {
	chain := newTestChain(t)
	extend(t, chain, 20)

	v := newChainVerifier(chain, testParams, testClock())
	checked, err := v.verifyRange(0, 20)
	require.NoError(t, err)
	assert.Equal(t, uint64(21), checked)
}

func TestVerifyRangeStopsAtFirstFailure(t *testing.T) {
	chain := newTestChain(t)
	blocks := extend(t, chain, 3)
	appendBlock(t, chain, nextBlock(blocks[2].Header(), []byte{1}))

	v := newChainVerifier(chain, testParams, testClock())
	checked, err := v.verifyRange(1, 4)
	require.Error(t, err)
	assert.Equal(t, uint64(3), checked)
	code, ok := verification.ErrorCodeOf(err)
	require.True(t, ok)
	assert.Equal(t, verification.ErrCellbaseInvalidOutputData, code)
}

func TestVerifyRejectsForeignGenesis(t *testing.T) {
	chain := newTestChain(t)
	v := newChainVerifier(chain, &params.TestNetParams, testClock())
	_, err := v.verifyRange(0, 0)
	assert.Error(t, err)
}

func TestVerifyRangeMissingBlock(t *testing.T) {
	chain := newTestChain(t)
	v := newChainVerifier(chain, testParams, testClock())
	_, err := v.verifyRange(1, 1)
	assert.Error(t, err)
}

func TestCellStatus(t *testing.T) {
	chain := newTestChain(t)
	blocks := extend(t, chain, 1)
	cellbase := blocks[0].Transactions()[0]

	out, err := cellStatus(chain, fmt.Sprintf("%s:0", cellbase.Hash()))
	require.NoError(t, err)
	assert.Contains(t, out, "block=1")
	assert.Contains(t, out, "cellbase=true")

	out, err = cellStatus(chain, fmt.Sprintf("%s:1", cellbase.Hash()))
	require.NoError(t, err)
	assert.Contains(t, out, types.UnknownCell().String())

	_, err = cellStatus(chain, cellbase.Hash().String())
	assert.Error(t, err)
}

func TestHeaderStatus(t *testing.T) {
	chain := newTestChain(t)
	blocks := extend(t, chain, 2)

	out, err := headerStatus(chain, blocks[1].Hash().String())
	require.NoError(t, err)
	assert.Contains(t, out, "number=2")

	orphan := nextBlock(blocks[1].Header(), nil)
	out, err = headerStatus(chain, orphan.Hash().String())
	require.NoError(t, err)
	assert.Contains(t, out, "not on the main chain")
}

func TestHeaderStatusMissingHeader(t *testing.T) {
	chain := newTestChain(t)
	blocks := extend(t, chain, 1)
	blockHash := blocks[0].Hash()

	batch := chain.DB().NewBatch()
	batch.Delete(store.ColumnBlockHeader, blockHash[:])
	require.NoError(t, batch.Write())

	_, err := headerStatus(chain, blockHash.String())
	require.Error(t, err)
	assert.IsType(t, store.AssertError(""), err)
}

func TestParseOutPoint(t *testing.T) {
	op, err := parseOutPoint("0x01:7")
	require.NoError(t, err)
	assert.Equal(t, uint32(7), op.Index)
	assert.Equal(t, byte(1), op.TxHash[31])

	for _, bad := range []string{"01", "01:x", "01:-1", "zz:1"} {
		_, err := parseOutPoint(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoadConfigRequiresOneAction(t *testing.T) {
	_, _, err := LoadConfig([]string{"--privnet"})
	assert.Error(t, err)
	_, _, err = LoadConfig([]string{"--privnet", "--verify", "--header", "0x1"})
	assert.Error(t, err)

	cfg, p, err := LoadConfig([]string{"--privnet", "--verify", "--from", "5"})
	require.NoError(t, err)
	assert.Equal(t, "privnet", p.Name)
	assert.Equal(t, uint64(5), cfg.From)
}
