// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Qitmeer/cellverify/common/hash"
	s "github.com/Qitmeer/cellverify/core/serialization"
)

// ScriptHashType tells how a script's code hash is matched against cells.
type ScriptHashType uint8

const (
	HashTypeData ScriptHashType = 0
	HashTypeType ScriptHashType = 1
)

// Script is a lock or type script reference.
type Script struct {
	CodeHash hash.Hash
	HashType ScriptHashType
	Args     []byte
}

func (sc *Script) serialize(w io.Writer) error {
	return s.WriteElements(w, sc.CodeHash, uint8(sc.HashType), sc.Args)
}

// Hash returns the script hash.
func (sc *Script) Hash() hash.Hash {
	var buf bytes.Buffer
	_ = sc.serialize(&buf)
	return hash.HashH(buf.Bytes())
}

// IntoWitness returns the serialized script, the form a cellbase puts in
// its witness.
func (sc *Script) IntoWitness() []byte {
	var buf bytes.Buffer
	_ = sc.serialize(&buf)
	return buf.Bytes()
}

// CellOutput is a transaction output.
type CellOutput struct {
	Capacity Capacity
	Lock     Script
	// Type is optional.
	Type *Script
}

func (o *CellOutput) serialize(w io.Writer) error {
	if err := s.WriteElements(w, uint64(o.Capacity)); err != nil {
		return err
	}
	if err := o.Lock.serialize(w); err != nil {
		return err
	}
	if err := s.WriteElements(w, o.Type != nil); err != nil {
		return err
	}
	if o.Type != nil {
		return o.Type.serialize(w)
	}
	return nil
}

// OccupiedCapacity returns the capacity needed to store the output and its
// data on chain.
func (o *CellOutput) OccupiedCapacity(dataLen int) (Capacity, error) {
	size := 8 + hash.HashSize + 1 + len(o.Lock.Args) + dataLen
	if o.Type != nil {
		size += hash.HashSize + 1 + len(o.Type.Args)
	}
	c := CapacityBytes(uint64(size))
	if c/ShannonsPerByte != Capacity(size) {
		return 0, ErrCapacityOverflow
	}
	return c, nil
}

// OutPoint references an output of a transaction.
type OutPoint struct {
	TxHash hash.Hash
	Index  uint32
}

// NewOutPoint returns an out point for output index of txHash.
func NewOutPoint(txHash hash.Hash, index uint32) OutPoint {
	return OutPoint{TxHash: txHash, Index: index}
}

// NullOutPoint returns the out point carried by cellbase inputs.
func NullOutPoint() OutPoint {
	return OutPoint{Index: CellbaseIndex}
}

// IsNull reports whether the out point is the cellbase marker.
func (op *OutPoint) IsNull() bool {
	return op.TxHash.IsZero() && op.Index == CellbaseIndex
}

func (op OutPoint) String() string {
	return fmt.Sprintf("%s:%d", op.TxHash, op.Index)
}

func (op *OutPoint) serialize(w io.Writer) error {
	return s.WriteElements(w, op.TxHash, op.Index)
}

// CellInput spends the cell at PreviousOutput. Since is the relative or
// absolute lock of the input.
type CellInput struct {
	PreviousOutput OutPoint
	Since          uint64
}

// NewCellInput returns an input spending outPoint.
func NewCellInput(outPoint OutPoint, since uint64) CellInput {
	return CellInput{PreviousOutput: outPoint, Since: since}
}

// NewCellbaseInput returns the input of the cellbase of block number. The
// number is embedded in Since.
func NewCellbaseInput(number uint64) CellInput {
	return CellInput{PreviousOutput: NullOutPoint(), Since: number}
}

func (in *CellInput) serialize(w io.Writer) error {
	if err := s.WriteElements(w, in.Since); err != nil {
		return err
	}
	return in.PreviousOutput.serialize(w)
}

// DepType tells how a cell dependency is expanded.
type DepType uint8

const (
	DepTypeCode     DepType = 0
	DepTypeDepGroup DepType = 1
)

// CellDep is a cell referenced but not spent by a transaction.
type CellDep struct {
	OutPoint OutPoint
	DepType  DepType
}

func (d *CellDep) serialize(w io.Writer) error {
	if err := d.OutPoint.serialize(w); err != nil {
		return err
	}
	return s.WriteElements(w, uint8(d.DepType))
}

// ProposalShortID is the truncated transaction hash used in proposal zones.
type ProposalShortID [ProposalShortIDSize]byte

// ProposalShortIDFromTxHash truncates a transaction hash.
func ProposalShortIDFromTxHash(h hash.Hash) ProposalShortID {
	var id ProposalShortID
	copy(id[:], h[:ProposalShortIDSize])
	return id
}

func (id ProposalShortID) String() string {
	return fmt.Sprintf("%x", id[:])
}
