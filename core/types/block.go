// Copyright 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"bytes"

	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/Qitmeer/cellverify/core/merkle"
	s "github.com/Qitmeer/cellverify/core/serialization"
	mapset "github.com/deckarep/golang-set"
)

// UncleBlockView is an uncle header with the proposals of its block.
type UncleBlockView struct {
	header    *HeaderView
	proposals []ProposalShortID
}

func NewUncleBlockView(header *HeaderView, proposals []ProposalShortID) *UncleBlockView {
	return &UncleBlockView{header: header, proposals: append([]ProposalShortID(nil), proposals...)}
}

func (u *UncleBlockView) Header() *HeaderView          { return u.header }
func (u *UncleBlockView) Hash() hash.Hash              { return u.header.Hash() }
func (u *UncleBlockView) Proposals() []ProposalShortID { return u.proposals }

func (u *UncleBlockView) SerializedSize() int {
	return HeaderSize + s.CountSize + len(u.proposals)*ProposalShortIDSize
}

// BlockBuilder accumulates the parts of a block. Build recomputes the
// header commitments, BuildUnchecked keeps the header as given.
type BlockBuilder struct {
	header       Header
	uncles       []*UncleBlockView
	transactions []*TransactionView
	proposals    []ProposalShortID
}

func NewBlockBuilder() *BlockBuilder {
	return &BlockBuilder{header: Header{Version: HeaderVersion}}
}

func (b *BlockBuilder) Header(h *HeaderView) *BlockBuilder {
	b.header = h.Data()
	return b
}

func (b *BlockBuilder) Uncle(u *UncleBlockView) *BlockBuilder {
	b.uncles = append(b.uncles, u)
	return b
}

func (b *BlockBuilder) Transaction(tx *TransactionView) *BlockBuilder {
	b.transactions = append(b.transactions, tx)
	return b
}

func (b *BlockBuilder) Transactions(txs []*TransactionView) *BlockBuilder {
	b.transactions = append(b.transactions, txs...)
	return b
}

func (b *BlockBuilder) Proposal(id ProposalShortID) *BlockBuilder {
	b.proposals = append(b.proposals, id)
	return b
}

func (b *BlockBuilder) Proposals(ids []ProposalShortID) *BlockBuilder {
	b.proposals = append(b.proposals, ids...)
	return b
}

// Build sets the transactions root, proposals hash and uncles hash of the
// header from the body, then hashes the header.
func (b *BlockBuilder) Build() *BlockView {
	p := b.newView()
	p.header.TransactionsRoot = p.view.CalcTransactionsRoot()
	p.header.ProposalsHash = p.view.CalcProposalsHash()
	p.header.UnclesHash = p.view.CalcUnclesHash()
	return p.finish()
}

// BuildUnchecked hashes the header as given, whatever the body.
func (b *BlockBuilder) BuildUnchecked() *BlockView {
	return b.newView().finish()
}

type blockParts struct {
	header Header
	view   *BlockView
}

func (b *BlockBuilder) newView() *blockParts {
	v := &BlockView{
		uncles:       append([]*UncleBlockView(nil), b.uncles...),
		transactions: append([]*TransactionView(nil), b.transactions...),
		proposals:    append([]ProposalShortID(nil), b.proposals...),
	}
	v.uncleHashes = make([]hash.Hash, len(v.uncles))
	for i, u := range v.uncles {
		v.uncleHashes[i] = u.Hash()
	}
	v.txHashes = make([]hash.Hash, len(v.transactions))
	v.txWitnessHashes = make([]hash.Hash, len(v.transactions))
	for i, tx := range v.transactions {
		v.txHashes[i] = tx.Hash()
		v.txWitnessHashes[i] = tx.WitnessHash()
	}
	return &blockParts{header: b.header, view: v}
}

func (p *blockParts) finish() *BlockView {
	p.view.header = newHeaderView(p.header)
	return p.view
}

// BlockView is a hashed, read only block.
type BlockView struct {
	header          *HeaderView
	uncles          []*UncleBlockView
	transactions    []*TransactionView
	proposals       []ProposalShortID
	uncleHashes     []hash.Hash
	txHashes        []hash.Hash
	txWitnessHashes []hash.Hash
}

func (b *BlockView) Header() *HeaderView              { return b.header }
func (b *BlockView) Hash() hash.Hash                  { return b.header.Hash() }
func (b *BlockView) Number() uint64                   { return b.header.Number() }
func (b *BlockView) IsGenesis() bool                  { return b.header.IsGenesis() }
func (b *BlockView) Uncles() []*UncleBlockView        { return b.uncles }
func (b *BlockView) Transactions() []*TransactionView { return b.transactions }
func (b *BlockView) Proposals() []ProposalShortID     { return b.proposals }
func (b *BlockView) UncleHashes() []hash.Hash         { return b.uncleHashes }
func (b *BlockView) TxHashes() []hash.Hash            { return b.txHashes }
func (b *BlockView) TxWitnessHashes() []hash.Hash     { return b.txWitnessHashes }

// CalcTransactionsRoot is merkle(merkle(tx hashes), merkle(witness hashes)).
func (b *BlockView) CalcTransactionsRoot() hash.Hash {
	return merkle.MerkleRoot([]hash.Hash{
		merkle.MerkleRoot(b.txHashes),
		merkle.MerkleRoot(b.txWitnessHashes),
	})
}

// CalcProposalsHash hashes the concatenated proposal ids, zero for none.
func (b *BlockView) CalcProposalsHash() hash.Hash {
	if len(b.proposals) == 0 {
		return hash.ZeroHash
	}
	buf := make([]byte, 0, len(b.proposals)*ProposalShortIDSize)
	for _, id := range b.proposals {
		buf = append(buf, id[:]...)
	}
	return hash.HashH(buf)
}

// CalcUnclesHash hashes the concatenated uncle hashes, zero for none.
func (b *BlockView) CalcUnclesHash() hash.Hash {
	if len(b.uncleHashes) == 0 {
		return hash.ZeroHash
	}
	buf := make([]byte, 0, len(b.uncleHashes)*hash.HashSize)
	for _, h := range b.uncleHashes {
		buf = append(buf, h[:]...)
	}
	return hash.HashH(buf)
}

// UnionProposalIDs returns the proposals of the block and of its uncles
// without duplicates, in first seen order.
func (b *BlockView) UnionProposalIDs() []ProposalShortID {
	seen := mapset.NewThreadUnsafeSet()
	var ids []ProposalShortID
	add := func(list []ProposalShortID) {
		for _, id := range list {
			if seen.Add(id) {
				ids = append(ids, id)
			}
		}
	}
	add(b.proposals)
	for _, u := range b.uncles {
		add(u.proposals)
	}
	return ids
}

// SerializedSize is the size of header, uncles, transactions and
// proposals, each list carrying a count prefix.
func (b *BlockView) SerializedSize() int {
	size := HeaderSize + s.CountSize
	for _, u := range b.uncles {
		size += u.SerializedSize()
	}
	size += s.CountSize
	for _, tx := range b.transactions {
		size += tx.SerializedSize()
	}
	return size + s.CountSize + len(b.proposals)*ProposalShortIDSize
}

// SerializedSizeWithoutUncleProposals is the size the block bytes limit is
// checked against. Only the uncle proposal ids are dropped, each uncle keeps
// its count prefix.
func (b *BlockView) SerializedSizeWithoutUncleProposals() int {
	size := b.SerializedSize()
	for _, u := range b.uncles {
		size -= len(u.proposals) * ProposalShortIDSize
	}
	return size
}

// Serialize writes header, uncles, transactions and proposals.
func (b *BlockView) Serialize() []byte {
	var buf bytes.Buffer
	hd := b.header.Data()
	_ = hd.Serialize(&buf)
	_ = s.WriteCount(&buf, len(b.uncles))
	for _, u := range b.uncles {
		uh := u.header.Data()
		_ = uh.Serialize(&buf)
		writeProposals(&buf, u.proposals)
	}
	_ = s.WriteCount(&buf, len(b.transactions))
	for _, tx := range b.transactions {
		data := tx.Data()
		_ = data.Serialize(&buf)
	}
	writeProposals(&buf, b.proposals)
	return buf.Bytes()
}

func writeProposals(buf *bytes.Buffer, ids []ProposalShortID) {
	_ = s.WriteCount(buf, len(ids))
	for _, id := range ids {
		_ = s.WriteElements(buf, [ProposalShortIDSize]byte(id))
	}
}

// AsBuilder returns a builder holding the block's parts.
func (b *BlockView) AsBuilder() *BlockBuilder {
	return &BlockBuilder{
		header:       b.header.Data(),
		uncles:       append([]*UncleBlockView(nil), b.uncles...),
		transactions: append([]*TransactionView(nil), b.transactions...),
		proposals:    append([]ProposalShortID(nil), b.proposals...),
	}
}

// AsUncle turns the block into an uncle of another block.
func (b *BlockView) AsUncle() *UncleBlockView {
	return NewUncleBlockView(b.header, b.proposals)
}
