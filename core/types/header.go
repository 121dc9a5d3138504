// Copyright 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Qitmeer/cellverify/common/hash"
	s "github.com/Qitmeer/cellverify/core/serialization"
	"github.com/Qitmeer/cellverify/core/types/pow"
	"github.com/holiman/uint256"
)

// RawHeaderSize is the serialized size of a header without its nonce:
// Version 4 bytes + ParentHash 32 bytes + Timestamp 8 bytes + Number 8 bytes
// + TransactionsRoot 32 bytes + ProposalsHash 32 bytes + CompactTarget 4 bytes
// + UnclesHash 32 bytes + Epoch 8 bytes + Dao 32 bytes
// --> Total 192 bytes.
const RawHeaderSize = 4 + (hash.HashSize * 5) + 8 + 8 + 4 + 8

// HeaderSize is the serialized size of a header including its nonce.
const HeaderSize = RawHeaderSize + 8

// Header holds the fields of a block header. It carries no cached hashes,
// a HeaderView is obtained with HeaderBuilder.Build.
type Header struct {
	Version uint32

	ParentHash hash.Hash

	// Milliseconds since the unix epoch.
	Timestamp uint64

	Number uint64

	// merkle(merkle(tx hashes), merkle(tx witness hashes))
	TransactionsRoot hash.Hash

	ProposalsHash hash.Hash

	// Difficulty target in compact form
	CompactTarget uint32

	UnclesHash hash.Hash

	// Packed EpochNumberWithFraction
	Epoch uint64

	Dao hash.Hash

	Nonce uint64
}

func (h *Header) serializeRaw(w io.Writer) error {
	return s.WriteElements(w, h.Version, &h.ParentHash, h.Timestamp, h.Number,
		&h.TransactionsRoot, &h.ProposalsHash, h.CompactTarget, &h.UnclesHash,
		h.Epoch, &h.Dao)
}

// Serialize writes the full header.
func (h *Header) Serialize(w io.Writer) error {
	if err := h.serializeRaw(w); err != nil {
		return err
	}
	return s.WriteElements(w, h.Nonce)
}

// PowHash is the hash of the header without its nonce.
func (h *Header) PowHash() hash.Hash {
	buf := bytes.NewBuffer(make([]byte, 0, RawHeaderSize))
	_ = h.serializeRaw(buf)
	return hash.HashH(buf.Bytes())
}

// BlockHash is the hash of the full header.
func (h *Header) BlockHash() hash.Hash {
	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize))
	_ = h.Serialize(buf)
	return hash.HashH(buf.Bytes())
}

// HeaderBuilder accumulates header fields. Build hashes them once and
// returns the immutable view.
type HeaderBuilder struct {
	data Header
}

func NewHeaderBuilder() *HeaderBuilder {
	return &HeaderBuilder{data: Header{Version: HeaderVersion}}
}

func (b *HeaderBuilder) Version(v uint32) *HeaderBuilder          { b.data.Version = v; return b }
func (b *HeaderBuilder) ParentHash(h hash.Hash) *HeaderBuilder    { b.data.ParentHash = h; return b }
func (b *HeaderBuilder) Timestamp(ts uint64) *HeaderBuilder       { b.data.Timestamp = ts; return b }
func (b *HeaderBuilder) Number(n uint64) *HeaderBuilder           { b.data.Number = n; return b }
func (b *HeaderBuilder) ProposalsHash(h hash.Hash) *HeaderBuilder { b.data.ProposalsHash = h; return b }
func (b *HeaderBuilder) CompactTarget(c uint32) *HeaderBuilder    { b.data.CompactTarget = c; return b }
func (b *HeaderBuilder) UnclesHash(h hash.Hash) *HeaderBuilder    { b.data.UnclesHash = h; return b }
func (b *HeaderBuilder) Dao(h hash.Hash) *HeaderBuilder           { b.data.Dao = h; return b }
func (b *HeaderBuilder) Nonce(n uint64) *HeaderBuilder            { b.data.Nonce = n; return b }

func (b *HeaderBuilder) TransactionsRoot(h hash.Hash) *HeaderBuilder {
	b.data.TransactionsRoot = h
	return b
}

func (b *HeaderBuilder) Epoch(e EpochNumberWithFraction) *HeaderBuilder {
	b.data.Epoch = e.FullValue()
	return b
}

// RawEpoch sets the epoch field without going through
// EpochNumberWithFraction.
func (b *HeaderBuilder) RawEpoch(v uint64) *HeaderBuilder {
	b.data.Epoch = v
	return b
}

func (b *HeaderBuilder) Build() *HeaderView {
	return newHeaderView(b.data)
}

func newHeaderView(data Header) *HeaderView {
	return &HeaderView{
		data:    data,
		hash:    data.BlockHash(),
		powHash: data.PowHash(),
	}
}

// HeaderView is a hashed, read only header.
type HeaderView struct {
	data    Header
	hash    hash.Hash
	powHash hash.Hash
}

func (h *HeaderView) Data() Header                { return h.data }
func (h *HeaderView) Hash() hash.Hash             { return h.hash }
func (h *HeaderView) PowHash() hash.Hash          { return h.powHash }
func (h *HeaderView) Version() uint32             { return h.data.Version }
func (h *HeaderView) ParentHash() hash.Hash       { return h.data.ParentHash }
func (h *HeaderView) Timestamp() uint64           { return h.data.Timestamp }
func (h *HeaderView) Number() uint64              { return h.data.Number }
func (h *HeaderView) TransactionsRoot() hash.Hash { return h.data.TransactionsRoot }
func (h *HeaderView) ProposalsHash() hash.Hash    { return h.data.ProposalsHash }
func (h *HeaderView) CompactTarget() uint32       { return h.data.CompactTarget }
func (h *HeaderView) UnclesHash() hash.Hash       { return h.data.UnclesHash }
func (h *HeaderView) Dao() hash.Hash              { return h.data.Dao }
func (h *HeaderView) Nonce() uint64               { return h.data.Nonce }

// Epoch decodes the packed epoch field.
func (h *HeaderView) Epoch() EpochNumberWithFraction {
	return EpochNumberWithFractionFromFullValue(h.data.Epoch)
}

// RawEpoch is the epoch field as stored in the header.
func (h *HeaderView) RawEpoch() uint64 {
	return h.data.Epoch
}

func (h *HeaderView) IsGenesis() bool {
	return h.data.Number == 0
}

// Difficulty is the difficulty encoded by the compact target.
func (h *HeaderView) Difficulty() *uint256.Int {
	return pow.CompactToDifficulty(h.data.CompactTarget)
}

// AsBuilder returns a builder initialised with the view's fields.
func (h *HeaderView) AsBuilder() *HeaderBuilder {
	return &HeaderBuilder{data: h.data}
}

func (h *HeaderView) String() string {
	return fmt.Sprintf("Header { number: %d, hash: %s, parent: %s, epoch: %s }",
		h.data.Number, h.hash, h.data.ParentHash, h.Epoch())
}
