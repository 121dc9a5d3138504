package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/Qitmeer/cellverify/core/store"
	"github.com/Qitmeer/cellverify/core/types"
)

// parseOutPoint parses "<txhash>:<index>".
func parseOutPoint(s string) (types.OutPoint, error) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return types.OutPoint{}, fmt.Errorf("out point %q is not <txhash>:<index>", s)
	}
	txHash, err := hash.NewHashFromStr(s[:i])
	if err != nil {
		return types.OutPoint{}, err
	}
	index, err := strconv.ParseUint(s[i+1:], 10, 32)
	if err != nil {
		return types.OutPoint{}, err
	}
	return types.NewOutPoint(*txHash, uint32(index)), nil
}

// cellStatus describes the liveness of an out point in the current chain
// state.
func cellStatus(chain *store.ChainDB, s string) (string, error) {
	outPoint, err := parseOutPoint(s)
	if err != nil {
		return "", err
	}
	snap, err := chain.Snapshot()
	if err != nil {
		return "", err
	}
	defer snap.Release()

	status := snap.Cell(outPoint, true)
	if !status.IsLive() {
		return fmt.Sprintf("%s: %s", outPoint, status), nil
	}
	meta := status.Meta
	return fmt.Sprintf("%s: %s capacity=%s data_bytes=%d block=%d cellbase=%t",
		outPoint, status, meta.CellOutput.Capacity, meta.DataBytes,
		meta.TransactionInfo.BlockNumber, meta.IsCellbase()), nil
}

// headerStatus reports whether the block s is on the main chain.
func headerStatus(chain *store.ChainDB, s string) (string, error) {
	blockHash, err := hash.NewHashFromStr(s)
	if err != nil {
		return "", err
	}
	snap, err := chain.Snapshot()
	if err != nil {
		return "", err
	}
	defer snap.Release()

	if !snap.IsValid(*blockHash) {
		return fmt.Sprintf("%s: not on the main chain", blockHash), nil
	}
	header, err := snap.GetBlockHeader(*blockHash)
	if err != nil {
		return "", err
	}
	if header == nil {
		return "", store.AssertError("main chain block without header: " + blockHash.String())
	}
	return fmt.Sprintf("%s: number=%d epoch=%s timestamp=%d", blockHash,
		header.Number(), header.Epoch(), header.Timestamp()), nil
}
