// Copyright 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"bytes"
	"io"

	"github.com/Qitmeer/cellverify/common/hash"
	s "github.com/Qitmeer/cellverify/core/serialization"
)

// Transaction holds the fields of a transaction. OutputsData[i] is the data
// of Outputs[i].
type Transaction struct {
	Version     uint32
	CellDeps    []CellDep
	HeaderDeps  []hash.Hash
	Inputs      []CellInput
	Outputs     []CellOutput
	OutputsData [][]byte
	Witnesses   [][]byte
}

// serializeRaw writes the fields covered by the transaction hash.
func (tx *Transaction) serializeRaw(w io.Writer) error {
	if err := s.WriteElements(w, tx.Version); err != nil {
		return err
	}
	if err := s.WriteCount(w, len(tx.CellDeps)); err != nil {
		return err
	}
	for i := range tx.CellDeps {
		if err := tx.CellDeps[i].serialize(w); err != nil {
			return err
		}
	}
	if err := s.WriteCount(w, len(tx.HeaderDeps)); err != nil {
		return err
	}
	for i := range tx.HeaderDeps {
		if err := s.WriteElements(w, &tx.HeaderDeps[i]); err != nil {
			return err
		}
	}
	if err := s.WriteCount(w, len(tx.Inputs)); err != nil {
		return err
	}
	for i := range tx.Inputs {
		if err := tx.Inputs[i].serialize(w); err != nil {
			return err
		}
	}
	if err := s.WriteCount(w, len(tx.Outputs)); err != nil {
		return err
	}
	for i := range tx.Outputs {
		if err := tx.Outputs[i].serialize(w); err != nil {
			return err
		}
	}
	return writeBytesVector(w, tx.OutputsData)
}

// Serialize writes the transaction including witnesses.
func (tx *Transaction) Serialize(w io.Writer) error {
	if err := tx.serializeRaw(w); err != nil {
		return err
	}
	return writeBytesVector(w, tx.Witnesses)
}

func (tx *Transaction) SerializeSize() int {
	var buf bytes.Buffer
	_ = tx.Serialize(&buf)
	return buf.Len()
}

func writeBytesVector(w io.Writer, v [][]byte) error {
	if err := s.WriteCount(w, len(v)); err != nil {
		return err
	}
	for _, b := range v {
		if err := s.WriteVarBytes(w, b); err != nil {
			return err
		}
	}
	return nil
}

// TransactionBuilder accumulates transaction fields.
type TransactionBuilder struct {
	data Transaction
}

func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{data: Transaction{Version: TxVersion}}
}

func (b *TransactionBuilder) Version(v uint32) *TransactionBuilder {
	b.data.Version = v
	return b
}

func (b *TransactionBuilder) CellDep(d CellDep) *TransactionBuilder {
	b.data.CellDeps = append(b.data.CellDeps, d)
	return b
}

func (b *TransactionBuilder) HeaderDep(h hash.Hash) *TransactionBuilder {
	b.data.HeaderDeps = append(b.data.HeaderDeps, h)
	return b
}

func (b *TransactionBuilder) Input(in CellInput) *TransactionBuilder {
	b.data.Inputs = append(b.data.Inputs, in)
	return b
}

func (b *TransactionBuilder) Output(o CellOutput) *TransactionBuilder {
	b.data.Outputs = append(b.data.Outputs, o)
	return b
}

func (b *TransactionBuilder) OutputData(d []byte) *TransactionBuilder {
	b.data.OutputsData = append(b.data.OutputsData, d)
	return b
}

func (b *TransactionBuilder) Witness(wit []byte) *TransactionBuilder {
	b.data.Witnesses = append(b.data.Witnesses, wit)
	return b
}

// SetOutputs replaces all outputs.
func (b *TransactionBuilder) SetOutputs(outputs []CellOutput) *TransactionBuilder {
	b.data.Outputs = append([]CellOutput(nil), outputs...)
	return b
}

// SetOutputsData replaces all outputs data.
func (b *TransactionBuilder) SetOutputsData(data [][]byte) *TransactionBuilder {
	b.data.OutputsData = append([][]byte(nil), data...)
	return b
}

// Build hashes the transaction and returns the read only view.
func (b *TransactionBuilder) Build() *TransactionView {
	return newTransactionView(cloneTransaction(&b.data))
}

func newTransactionView(data Transaction) *TransactionView {
	var buf bytes.Buffer
	_ = data.serializeRaw(&buf)
	txHash := hash.HashH(buf.Bytes())
	_ = writeBytesVector(&buf, data.Witnesses)
	return &TransactionView{
		data:        data,
		hash:        txHash,
		witnessHash: hash.HashH(buf.Bytes()),
		size:        buf.Len(),
	}
}

func cloneTransaction(tx *Transaction) Transaction {
	c := *tx
	c.CellDeps = append([]CellDep(nil), tx.CellDeps...)
	c.HeaderDeps = append([]hash.Hash(nil), tx.HeaderDeps...)
	c.Inputs = append([]CellInput(nil), tx.Inputs...)
	c.Outputs = append([]CellOutput(nil), tx.Outputs...)
	c.OutputsData = append([][]byte(nil), tx.OutputsData...)
	c.Witnesses = append([][]byte(nil), tx.Witnesses...)
	return c
}

// TransactionView is a hashed, read only transaction.
type TransactionView struct {
	data        Transaction
	hash        hash.Hash
	witnessHash hash.Hash
	size        int
}

// Hash covers every field except witnesses.
func (tx *TransactionView) Hash() hash.Hash { return tx.hash }

// WitnessHash covers every field.
func (tx *TransactionView) WitnessHash() hash.Hash { return tx.witnessHash }

func (tx *TransactionView) Data() Transaction       { return tx.data }
func (tx *TransactionView) Version() uint32         { return tx.data.Version }
func (tx *TransactionView) CellDeps() []CellDep     { return tx.data.CellDeps }
func (tx *TransactionView) HeaderDeps() []hash.Hash { return tx.data.HeaderDeps }
func (tx *TransactionView) Inputs() []CellInput     { return tx.data.Inputs }
func (tx *TransactionView) Outputs() []CellOutput   { return tx.data.Outputs }
func (tx *TransactionView) OutputsData() [][]byte   { return tx.data.OutputsData }
func (tx *TransactionView) Witnesses() [][]byte     { return tx.data.Witnesses }
func (tx *TransactionView) SerializedSize() int     { return tx.size }

// IsCellbase reports whether the transaction has the single null input of
// a cellbase.
func (tx *TransactionView) IsCellbase() bool {
	return len(tx.data.Inputs) == 1 && tx.data.Inputs[0].PreviousOutput.IsNull()
}

func (tx *TransactionView) ProposalShortID() ProposalShortID {
	return ProposalShortIDFromTxHash(tx.hash)
}

// OutputWithData returns output index and its data.
func (tx *TransactionView) OutputWithData(index int) (CellOutput, []byte, bool) {
	if index < 0 || index >= len(tx.data.Outputs) || index >= len(tx.data.OutputsData) {
		return CellOutput{}, nil, false
	}
	return tx.data.Outputs[index], tx.data.OutputsData[index], true
}

// OutputPts lists the out points created by the transaction.
func (tx *TransactionView) OutputPts() []OutPoint {
	pts := make([]OutPoint, len(tx.data.Outputs))
	for i := range pts {
		pts[i] = NewOutPoint(tx.hash, uint32(i))
	}
	return pts
}

// InputPts lists the out points spent by the transaction.
func (tx *TransactionView) InputPts() []OutPoint {
	pts := make([]OutPoint, len(tx.data.Inputs))
	for i, in := range tx.data.Inputs {
		pts[i] = in.PreviousOutput
	}
	return pts
}

// AsBuilder returns a builder initialised with a copy of the view's fields.
func (tx *TransactionView) AsBuilder() *TransactionBuilder {
	return &TransactionBuilder{data: cloneTransaction(&tx.data)}
}
