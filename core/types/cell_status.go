// Copyright 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"fmt"

	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/Qitmeer/cellverify/common/util"
)

// TxMeta records which outputs of a committed transaction are spent.
type TxMeta struct {
	BlockNumber uint64
	Epoch       EpochNumberWithFraction
	BlockHash   hash.Hash
	Cellbase    bool
	dead        *util.BitVector
}

// NewTxMeta returns the meta of a transaction with outputs live outputs.
func NewTxMeta(blockNumber uint64, epoch EpochNumberWithFraction, blockHash hash.Hash,
	outputs int, cellbase bool) (*TxMeta, error) {
	dead, err := util.New(outputs)
	if err != nil {
		return nil, fmt.Errorf("tx meta of %d outputs: %v", outputs, err)
	}
	return &TxMeta{
		BlockNumber: blockNumber,
		Epoch:       epoch,
		BlockHash:   blockHash,
		Cellbase:    cellbase,
		dead:        dead,
	}, nil
}

// NewTxMetaFromDeadCells rebuilds a meta from stored spent bits.
func NewTxMetaFromDeadCells(blockNumber uint64, epoch EpochNumberWithFraction,
	blockHash hash.Hash, cellbase bool, deadCells []byte, outputs int) (*TxMeta, error) {
	dead, err := util.NewFromBytes(deadCells, outputs)
	if err != nil {
		return nil, fmt.Errorf("tx meta of %d outputs: %v", outputs, err)
	}
	return &TxMeta{
		BlockNumber: blockNumber,
		Epoch:       epoch,
		BlockHash:   blockHash,
		Cellbase:    cellbase,
		dead:        dead,
	}, nil
}

// Len is the number of outputs tracked.
func (m *TxMeta) Len() int {
	return m.dead.Len()
}

// IsDead returns whether output index is spent. ok is false when the index
// is out of range.
func (m *TxMeta) IsDead(index int) (dead bool, ok bool) {
	return m.dead.Get(index)
}

func (m *TxMeta) SetDead(index int) bool {
	return m.dead.Set(index, true)
}

func (m *TxMeta) UnsetDead(index int) bool {
	return m.dead.Set(index, false)
}

// AllDead reports whether every output is spent.
func (m *TxMeta) AllDead() bool {
	return m.dead.CountOnes() == m.dead.Len()
}

// DeadCells returns the spent bits, one per output.
func (m *TxMeta) DeadCells() []byte {
	return m.dead.Bytes()
}

func (m *TxMeta) Clone() *TxMeta {
	c := *m
	c.dead = m.dead.Clone()
	return &c
}

// CellMeta describes a live cell.
type CellMeta struct {
	CellOutput      CellOutput
	OutPoint        OutPoint
	TransactionInfo *TransactionInfo
	DataBytes       uint64
	// Only filled when the data was requested.
	MemCellData     []byte
	MemCellDataHash *hash.Hash
}

// IsCellbase reports whether the cell was created by a cellbase.
func (c *CellMeta) IsCellbase() bool {
	return c.TransactionInfo != nil && c.TransactionInfo.IsCellbase()
}

// CellStatusKind classifies an out point.
type CellStatusKind byte

const (
	// Never seen, or pruned.
	CellUnknown CellStatusKind = iota
	CellLive
	CellDead
)

var cellStatusKindStrings = map[CellStatusKind]string{
	CellUnknown: "Unknown",
	CellLive:    "Live",
	CellDead:    "Dead",
}

func (k CellStatusKind) String() string {
	if s, ok := cellStatusKindStrings[k]; ok {
		return s
	}
	return fmt.Sprintf("Unknown CellStatusKind (%d)", int(k))
}

// CellStatus is the liveness of an out point. Meta is set for live cells
// only.
type CellStatus struct {
	Kind CellStatusKind
	Meta *CellMeta
}

func LiveCell(meta *CellMeta) CellStatus { return CellStatus{Kind: CellLive, Meta: meta} }
func DeadCell() CellStatus               { return CellStatus{Kind: CellDead} }
func UnknownCell() CellStatus            { return CellStatus{Kind: CellUnknown} }

func (s CellStatus) IsLive() bool    { return s.Kind == CellLive }
func (s CellStatus) IsDead() bool    { return s.Kind == CellDead }
func (s CellStatus) IsUnknown() bool { return s.Kind == CellUnknown }

func (s CellStatus) String() string {
	return s.Kind.String()
}

// CellProvider resolves the liveness of out points.
type CellProvider interface {
	Cell(outPoint OutPoint, withData bool) CellStatus
}

// HeaderChecker tells whether a block hash is known.
type HeaderChecker interface {
	IsValid(blockHash hash.Hash) bool
}
