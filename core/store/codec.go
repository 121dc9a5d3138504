// Copyright (c) 2017-2020 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/Qitmeer/cellverify/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// Records are the rlp layout of the stored values. They carry no pointers,
// optional fields use a flag next to a zero value.

type scriptRecord struct {
	CodeHash hash.Hash
	HashType uint8
	Args     []byte
}

func toScriptRecord(sc *types.Script) scriptRecord {
	return scriptRecord{CodeHash: sc.CodeHash, HashType: uint8(sc.HashType), Args: sc.Args}
}

func (r *scriptRecord) script() types.Script {
	var args []byte
	if len(r.Args) > 0 {
		args = r.Args
	}
	return types.Script{CodeHash: r.CodeHash, HashType: types.ScriptHashType(r.HashType), Args: args}
}

type outputRecord struct {
	Capacity uint64
	Lock     scriptRecord
	HasType  uint8
	Type     scriptRecord
}

func toOutputRecord(o *types.CellOutput) outputRecord {
	r := outputRecord{Capacity: uint64(o.Capacity), Lock: toScriptRecord(&o.Lock)}
	if o.Type != nil {
		r.HasType = 1
		r.Type = toScriptRecord(o.Type)
	}
	return r
}

func (r *outputRecord) output() types.CellOutput {
	o := types.CellOutput{Capacity: types.Capacity(r.Capacity), Lock: r.Lock.script()}
	if r.HasType != 0 {
		sc := r.Type.script()
		o.Type = &sc
	}
	return o
}

type cellDepRecord struct {
	TxHash  hash.Hash
	Index   uint32
	DepType uint8
}

type cellInputRecord struct {
	TxHash hash.Hash
	Index  uint32
	Since  uint64
}

type txRecord struct {
	Version     uint32
	CellDeps    []cellDepRecord
	HeaderDeps  []hash.Hash
	Inputs      []cellInputRecord
	Outputs     []outputRecord
	OutputsData [][]byte
	Witnesses   [][]byte
}

func encodeTransaction(tx *types.TransactionView) ([]byte, error) {
	r := txRecord{
		Version:     tx.Version(),
		HeaderDeps:  tx.HeaderDeps(),
		OutputsData: tx.OutputsData(),
		Witnesses:   tx.Witnesses(),
	}
	for _, d := range tx.CellDeps() {
		r.CellDeps = append(r.CellDeps, cellDepRecord{
			TxHash: d.OutPoint.TxHash, Index: d.OutPoint.Index, DepType: uint8(d.DepType)})
	}
	for _, in := range tx.Inputs() {
		r.Inputs = append(r.Inputs, cellInputRecord{
			TxHash: in.PreviousOutput.TxHash, Index: in.PreviousOutput.Index, Since: in.Since})
	}
	outputs := tx.Outputs()
	for i := range outputs {
		r.Outputs = append(r.Outputs, toOutputRecord(&outputs[i]))
	}
	return rlp.EncodeToBytes(&r)
}

func decodeTransaction(b []byte) (*types.TransactionView, error) {
	var r txRecord
	if err := rlp.DecodeBytes(b, &r); err != nil {
		return nil, err
	}
	builder := types.NewTransactionBuilder().Version(r.Version)
	for _, d := range r.CellDeps {
		builder.CellDep(types.CellDep{
			OutPoint: types.NewOutPoint(d.TxHash, d.Index), DepType: types.DepType(d.DepType)})
	}
	for _, h := range r.HeaderDeps {
		builder.HeaderDep(h)
	}
	for _, in := range r.Inputs {
		builder.Input(types.NewCellInput(types.NewOutPoint(in.TxHash, in.Index), in.Since))
	}
	for i := range r.Outputs {
		builder.Output(r.Outputs[i].output())
	}
	for _, d := range r.OutputsData {
		builder.OutputData(d)
	}
	for _, w := range r.Witnesses {
		builder.Witness(w)
	}
	return builder.Build(), nil
}

func encodeHeader(h *types.HeaderView) ([]byte, error) {
	data := h.Data()
	return rlp.EncodeToBytes(&data)
}

func decodeHeader(b []byte) (*types.HeaderView, error) {
	var data types.Header
	if err := rlp.DecodeBytes(b, &data); err != nil {
		return nil, err
	}
	return headerView(&data), nil
}

func headerView(data *types.Header) *types.HeaderView {
	return types.NewHeaderBuilder().
		Version(data.Version).
		ParentHash(data.ParentHash).
		Timestamp(data.Timestamp).
		Number(data.Number).
		TransactionsRoot(data.TransactionsRoot).
		ProposalsHash(data.ProposalsHash).
		CompactTarget(data.CompactTarget).
		UnclesHash(data.UnclesHash).
		RawEpoch(data.Epoch).
		Dao(data.Dao).
		Nonce(data.Nonce).
		Build()
}

type uncleRecord struct {
	Header    types.Header
	Proposals []types.ProposalShortID
}

func encodeUncles(uncles []*types.UncleBlockView) ([]byte, error) {
	rs := make([]uncleRecord, 0, len(uncles))
	for _, u := range uncles {
		rs = append(rs, uncleRecord{Header: u.Header().Data(), Proposals: u.Proposals()})
	}
	return rlp.EncodeToBytes(rs)
}

func decodeUncles(b []byte) ([]*types.UncleBlockView, error) {
	var rs []uncleRecord
	if err := rlp.DecodeBytes(b, &rs); err != nil {
		return nil, err
	}
	uncles := make([]*types.UncleBlockView, 0, len(rs))
	for i := range rs {
		uncles = append(uncles, types.NewUncleBlockView(headerView(&rs[i].Header), rs[i].Proposals))
	}
	return uncles, nil
}

func encodeProposals(ids []types.ProposalShortID) ([]byte, error) {
	return rlp.EncodeToBytes(ids)
}

func decodeProposals(b []byte) ([]types.ProposalShortID, error) {
	var ids []types.ProposalShortID
	if err := rlp.DecodeBytes(b, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

type blockExtRecord struct {
	ReceivedAt       uint64
	TotalDifficulty  [32]byte
	TotalUnclesCount uint64
	Verified         uint8
	TxsFees          []uint64
}

func encodeBlockExt(ext *types.BlockExt) ([]byte, error) {
	r := blockExtRecord{
		ReceivedAt:       ext.ReceivedAt,
		TotalDifficulty:  ext.TotalDifficulty.Bytes32(),
		TotalUnclesCount: ext.TotalUnclesCount,
		Verified:         uint8(ext.Verified),
	}
	for _, fee := range ext.TxsFees {
		r.TxsFees = append(r.TxsFees, uint64(fee))
	}
	return rlp.EncodeToBytes(&r)
}

func decodeBlockExt(b []byte) (*types.BlockExt, error) {
	var r blockExtRecord
	if err := rlp.DecodeBytes(b, &r); err != nil {
		return nil, err
	}
	ext := &types.BlockExt{
		ReceivedAt:       r.ReceivedAt,
		TotalUnclesCount: r.TotalUnclesCount,
		Verified:         types.VerifiedStatus(r.Verified),
	}
	ext.TotalDifficulty.SetBytes32(r.TotalDifficulty[:])
	for _, fee := range r.TxsFees {
		ext.TxsFees = append(ext.TxsFees, types.Capacity(fee))
	}
	return ext, nil
}

type epochExtRecord struct {
	Number                       uint64
	BaseBlockReward              uint64
	RemainderReward              uint64
	PreviousEpochHashRate        [32]byte
	LastBlockHashInPreviousEpoch hash.Hash
	StartNumber                  uint64
	Length                       uint64
	CompactTarget                uint32
}

func encodeEpochExt(e *types.EpochExt) ([]byte, error) {
	return rlp.EncodeToBytes(&epochExtRecord{
		Number:                       e.Number,
		BaseBlockReward:              uint64(e.BaseBlockReward),
		RemainderReward:              uint64(e.RemainderReward),
		PreviousEpochHashRate:        e.PreviousEpochHashRate.Bytes32(),
		LastBlockHashInPreviousEpoch: e.LastBlockHashInPreviousEpoch,
		StartNumber:                  e.StartNumber,
		Length:                       e.Length,
		CompactTarget:                e.CompactTarget,
	})
}

func decodeEpochExt(b []byte) (*types.EpochExt, error) {
	var r epochExtRecord
	if err := rlp.DecodeBytes(b, &r); err != nil {
		return nil, err
	}
	e := &types.EpochExt{
		Number:                       r.Number,
		BaseBlockReward:              types.Capacity(r.BaseBlockReward),
		RemainderReward:              types.Capacity(r.RemainderReward),
		LastBlockHashInPreviousEpoch: r.LastBlockHashInPreviousEpoch,
		StartNumber:                  r.StartNumber,
		Length:                       r.Length,
		CompactTarget:                r.CompactTarget,
	}
	e.PreviousEpochHashRate.SetBytes32(r.PreviousEpochHashRate[:])
	return e, nil
}

type txMetaRecord struct {
	BlockNumber uint64
	Epoch       uint64
	BlockHash   hash.Hash
	Cellbase    uint8
	Outputs     uint64
	DeadCells   []byte
}

func encodeTxMeta(m *types.TxMeta) ([]byte, error) {
	r := txMetaRecord{
		BlockNumber: m.BlockNumber,
		Epoch:       m.Epoch.FullValue(),
		BlockHash:   m.BlockHash,
		Outputs:     uint64(m.Len()),
		DeadCells:   m.DeadCells(),
	}
	if m.Cellbase {
		r.Cellbase = 1
	}
	return rlp.EncodeToBytes(&r)
}

func decodeTxMeta(b []byte) (*types.TxMeta, error) {
	var r txMetaRecord
	if err := rlp.DecodeBytes(b, &r); err != nil {
		return nil, err
	}
	return types.NewTxMetaFromDeadCells(r.BlockNumber,
		types.EpochNumberWithFractionFromFullValue(r.Epoch), r.BlockHash,
		r.Cellbase != 0, r.DeadCells, int(r.Outputs))
}

type txInfoRecord struct {
	BlockHash   hash.Hash
	BlockNumber uint64
	BlockEpoch  uint64
	Index       uint32
}

func toTxInfoRecord(info *types.TransactionInfo) txInfoRecord {
	return txInfoRecord{
		BlockHash:   info.BlockHash,
		BlockNumber: info.BlockNumber,
		BlockEpoch:  info.BlockEpoch.FullValue(),
		Index:       info.Index,
	}
}

func (r *txInfoRecord) info() *types.TransactionInfo {
	return &types.TransactionInfo{
		BlockHash:   r.BlockHash,
		BlockNumber: r.BlockNumber,
		BlockEpoch:  types.EpochNumberWithFractionFromFullValue(r.BlockEpoch),
		Index:       r.Index,
	}
}

func encodeTxInfo(info *types.TransactionInfo) ([]byte, error) {
	r := toTxInfoRecord(info)
	return rlp.EncodeToBytes(&r)
}

func decodeTxInfo(b []byte) (*types.TransactionInfo, error) {
	var r txInfoRecord
	if err := rlp.DecodeBytes(b, &r); err != nil {
		return nil, err
	}
	return r.info(), nil
}

// cellRecord is a live cell without its data.
type cellRecord struct {
	Output    outputRecord
	Info      txInfoRecord
	DataBytes uint64
}

func encodeCell(c *types.CellMeta) ([]byte, error) {
	return rlp.EncodeToBytes(&cellRecord{
		Output:    toOutputRecord(&c.CellOutput),
		Info:      toTxInfoRecord(c.TransactionInfo),
		DataBytes: c.DataBytes,
	})
}

func decodeCell(op types.OutPoint, b []byte) (*types.CellMeta, error) {
	var r cellRecord
	if err := rlp.DecodeBytes(b, &r); err != nil {
		return nil, err
	}
	return &types.CellMeta{
		CellOutput:      r.Output.output(),
		OutPoint:        op,
		TransactionInfo: r.Info.info(),
		DataBytes:       r.DataBytes,
	}, nil
}

// cellDataRecord wraps the data so an empty payload still has a value.
type cellDataRecord struct {
	Data     []byte
	DataHash hash.Hash
}

func encodeCellData(data []byte) ([]byte, error) {
	return rlp.EncodeToBytes(&cellDataRecord{Data: data, DataHash: hash.HashH(data)})
}

func decodeCellData(b []byte) ([]byte, hash.Hash, error) {
	var r cellDataRecord
	if err := rlp.DecodeBytes(b, &r); err != nil {
		return nil, hash.ZeroHash, err
	}
	return r.Data, r.DataHash, nil
}

type headerDigestRecord struct {
	ChildrenHash       hash.Hash
	TotalDifficulty    [32]byte
	StartNumber        uint64
	EndNumber          uint64
	StartEpoch         uint64
	EndEpoch           uint64
	StartTimestamp     uint64
	EndTimestamp       uint64
	StartCompactTarget uint32
	EndCompactTarget   uint32
}

func encodeHeaderDigest(d *types.HeaderDigest) ([]byte, error) {
	return rlp.EncodeToBytes(&headerDigestRecord{
		ChildrenHash:       d.ChildrenHash,
		TotalDifficulty:    d.TotalDifficulty.Bytes32(),
		StartNumber:        d.StartNumber,
		EndNumber:          d.EndNumber,
		StartEpoch:         d.StartEpoch.FullValue(),
		EndEpoch:           d.EndEpoch.FullValue(),
		StartTimestamp:     d.StartTimestamp,
		EndTimestamp:       d.EndTimestamp,
		StartCompactTarget: d.StartCompactTarget,
		EndCompactTarget:   d.EndCompactTarget,
	})
}

func decodeHeaderDigest(b []byte) (types.HeaderDigest, error) {
	var r headerDigestRecord
	if err := rlp.DecodeBytes(b, &r); err != nil {
		return types.HeaderDigest{}, err
	}
	d := types.HeaderDigest{
		ChildrenHash:       r.ChildrenHash,
		StartNumber:        r.StartNumber,
		EndNumber:          r.EndNumber,
		StartEpoch:         types.EpochNumberWithFractionFromFullValue(r.StartEpoch),
		EndEpoch:           types.EpochNumberWithFractionFromFullValue(r.EndEpoch),
		StartTimestamp:     r.StartTimestamp,
		EndTimestamp:       r.EndTimestamp,
		StartCompactTarget: r.StartCompactTarget,
		EndCompactTarget:   r.EndCompactTarget,
	}
	d.TotalDifficulty = *new(uint256.Int).SetBytes32(r.TotalDifficulty[:])
	return d, nil
}
