package types

import (
	"testing"

	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/Qitmeer/cellverify/core/merkle"
	"github.com/stretchr/testify/assert"
)

func cellbaseTx(number uint64) *TransactionView {
	return NewTransactionBuilder().
		Input(NewCellbaseInput(number)).
		Output(CellOutput{Capacity: 1000}).
		OutputData(nil).
		Witness([]byte{1}).
		Build()
}

func spendTx(prev OutPoint) *TransactionView {
	return NewTransactionBuilder().
		Input(NewCellInput(prev, 0)).
		Output(CellOutput{Capacity: 500, Lock: Script{Args: []byte{7}}}).
		OutputData([]byte{1, 2, 3}).
		Build()
}

func TestTransactionHashes(t *testing.T) {
	tx := spendTx(NewOutPoint(hash.HashH([]byte("a")), 0))
	withWitness := tx.AsBuilder().Witness([]byte("sig")).Build()
	assert.Equal(t, tx.Hash(), withWitness.Hash())
	assert.NotEqual(t, tx.WitnessHash(), withWitness.WitnessHash())
	assert.Equal(t, ProposalShortIDFromTxHash(tx.Hash()), tx.ProposalShortID())

	other := tx.AsBuilder().SetOutputsData([][]byte{{9}}).Build()
	assert.NotEqual(t, tx.Hash(), other.Hash())
	// builder copies
	assert.Equal(t, []byte{1, 2, 3}, tx.OutputsData()[0])
}

func TestIsCellbase(t *testing.T) {
	assert.True(t, cellbaseTx(1).IsCellbase())
	assert.False(t, spendTx(NewOutPoint(hash.ZeroHash, 0)).IsCellbase())
	twoInputs := cellbaseTx(1).AsBuilder().Input(NewCellbaseInput(1)).Build()
	assert.False(t, twoInputs.IsCellbase())
	op := NullOutPoint()
	assert.True(t, op.IsNull())
}

func TestHeaderHashes(t *testing.T) {
	h := NewHeaderBuilder().Number(1).Timestamp(10).Build()
	nonced := h.AsBuilder().Nonce(99).Build()
	assert.Equal(t, h.PowHash(), nonced.PowHash())
	assert.NotEqual(t, h.Hash(), nonced.Hash())
	assert.Equal(t, uint64(99), nonced.Nonce())
	assert.Equal(t, h.Hash(), NewHeaderBuilder().Number(1).Timestamp(10).Build().Hash())
}

func TestBlockBuildCommitments(t *testing.T) {
	cb := cellbaseTx(1)
	tx := spendTx(NewOutPoint(cb.Hash(), 0))
	uncle := NewBlockBuilder().Header(NewHeaderBuilder().Number(1).Nonce(1).Build()).
		Proposal(ProposalShortID{1}).Build().AsUncle()

	block := NewBlockBuilder().
		Header(NewHeaderBuilder().Number(1).Build()).
		Transaction(cb).
		Transaction(tx).
		Uncle(uncle).
		Proposal(ProposalShortID{2}).
		Build()

	txRoot := merkle.MerkleRoot([]hash.Hash{cb.Hash(), tx.Hash()})
	witRoot := merkle.MerkleRoot([]hash.Hash{cb.WitnessHash(), tx.WitnessHash()})
	assert.Equal(t, hash.HashMerge(&txRoot, &witRoot), block.Header().TransactionsRoot())
	assert.Equal(t, block.CalcTransactionsRoot(), block.Header().TransactionsRoot())
	assert.Equal(t, block.CalcProposalsHash(), block.Header().ProposalsHash())
	uh := uncle.Hash()
	assert.Equal(t, hash.HashH(uh[:]), block.Header().UnclesHash())
	assert.Equal(t, []hash.Hash{cb.Hash(), tx.Hash()}, block.TxHashes())
	assert.Equal(t, []hash.Hash{uncle.Hash()}, block.UncleHashes())

	empty := NewBlockBuilder().Build()
	assert.Equal(t, hash.ZeroHash, empty.Header().ProposalsHash())
	assert.Equal(t, hash.ZeroHash, empty.Header().UnclesHash())
}

func TestBlockBuildUnchecked(t *testing.T) {
	header := NewHeaderBuilder().Number(1).TransactionsRoot(hash.HashH([]byte("bogus"))).Build()
	block := NewBlockBuilder().Header(header).Transaction(cellbaseTx(1)).BuildUnchecked()
	assert.Equal(t, header.Hash(), block.Hash())
	assert.NotEqual(t, block.CalcTransactionsRoot(), block.Header().TransactionsRoot())

	rebuilt := block.AsBuilder().Build()
	assert.Equal(t, rebuilt.CalcTransactionsRoot(), rebuilt.Header().TransactionsRoot())
}

func TestBlockSizes(t *testing.T) {
	uncle := NewUncleBlockView(NewHeaderBuilder().Number(1).Build(),
		[]ProposalShortID{{1}, {2}, {3}})
	block := NewBlockBuilder().
		Header(NewHeaderBuilder().Number(2).Build()).
		Transaction(cellbaseTx(2)).
		Uncle(uncle).
		Proposal(ProposalShortID{4}).
		Build()

	assert.Equal(t, len(block.Serialize()), block.SerializedSize())
	assert.Equal(t, block.SerializedSize()-3*ProposalShortIDSize,
		block.SerializedSizeWithoutUncleProposals())

	empty := NewBlockBuilder().
		Header(NewHeaderBuilder().Number(2).Build()).
		Uncle(NewUncleBlockView(NewHeaderBuilder().Number(1).Build(), nil)).
		Build()
	assert.Equal(t, empty.SerializedSize(), empty.SerializedSizeWithoutUncleProposals())

	tx := cellbaseTx(2)
	data := tx.Data()
	assert.Equal(t, data.SerializeSize(), tx.SerializedSize())
}

func TestUnionProposalIDs(t *testing.T) {
	uncle := NewUncleBlockView(NewHeaderBuilder().Build(), []ProposalShortID{{2}, {3}})
	block := NewBlockBuilder().
		Proposals([]ProposalShortID{{1}, {2}}).
		Uncle(uncle).
		Build()
	assert.Equal(t, []ProposalShortID{{1}, {2}, {3}}, block.UnionProposalIDs())
}
