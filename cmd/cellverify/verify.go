package main

import (
	"fmt"
	"time"

	"github.com/Qitmeer/cellverify/core/store"
	"github.com/Qitmeer/cellverify/core/types"
	"github.com/Qitmeer/cellverify/core/verification"
	"github.com/Qitmeer/cellverify/log"
	"github.com/Qitmeer/cellverify/params"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/pkg/errors"
)

const (
	// progressInterval is how many blocks are checked between progress logs.
	progressInterval = 1000

	metricsRefresh = 3 * time.Second
)

// runVerify walks the main chain from cfg.From to the tip.
func runVerify(cfg *Config, chain *store.ChainDB, p *params.Params) error {
	tip, err := chain.GetTip()
	if err != nil {
		return err
	}
	if tip == nil {
		return errors.New("the chain database has no tip")
	}
	from := cfg.From
	if from > tip.Number() {
		fmt.Printf("Nothing to verify, the tip is block %d\n", tip.Number())
		return nil
	}

	start := time.Now()
	v := newChainVerifier(chain, p, clock.NewDefaultClock())
	checked, err := v.verifyRange(from, tip.Number())
	if err != nil {
		if code, ok := verification.ErrorCodeOf(err); ok {
			fmt.Printf("Block %d failed %s (%s): %v\n", from+checked, code, code.Kind(), err)
		}
		return err
	}
	fmt.Printf("Verified %d blocks (%d..%d) in %v\n", checked, from, tip.Number(),
		time.Since(start).Round(time.Millisecond))
	return nil
}

// chainVerifier runs the consensus checks over stored main chain blocks.
// Each block is checked against its own snapshot of the store.
type chainVerifier struct {
	chain  *store.ChainDB
	params *params.Params
	clock  clock.Clock
	blocks *verification.BlockVerifier
}

func newChainVerifier(chain *store.ChainDB, p *params.Params, clk clock.Clock) *chainVerifier {
	return &chainVerifier{
		chain:  chain,
		params: p,
		clock:  clk,
		blocks: verification.NewBlockVerifier(p.MaxBlockBytes, p.MaxBlockProposalsLimit),
	}
}

// verifyRange checks the main chain blocks numbered from..to and returns
// how many passed. It stops at the first failure.
func (v *chainVerifier) verifyRange(from, to uint64) (uint64, error) {
	var checked uint64
	for number := from; number <= to; number++ {
		if err := v.verifyBlock(number); err != nil {
			return checked, errors.Wrapf(err, "block %d", number)
		}
		checked++
		if checked%progressInterval == 0 {
			log.Info("Verified blocks", "count", checked, "number", number)
		}
	}
	return checked, nil
}

func (v *chainVerifier) verifyBlock(number uint64) error {
	snap, err := v.chain.Snapshot()
	if err != nil {
		return err
	}
	defer snap.Release()

	blockHash, err := snap.GetBlockHash(number)
	if err != nil {
		return err
	}
	if blockHash == nil {
		return errors.New("not on the main chain")
	}
	block, err := snap.GetBlock(*blockHash)
	if err != nil {
		return err
	}
	if block == nil {
		return errors.Errorf("missing block %s", blockHash)
	}

	if err := v.verifyHeader(snap, block.Header()); err != nil {
		return err
	}
	if err := v.blocks.Verify(block); err != nil {
		return err
	}

	epoch, err := snap.GetBlockEpoch(*blockHash)
	if err != nil {
		return err
	}
	if epoch == nil {
		return errors.Errorf("missing epoch of block %s", blockHash)
	}
	return verification.NewEpochVerifier(epoch, block).Verify()
}

func (v *chainVerifier) verifyHeader(snap *store.StoreSnapshot, header *types.HeaderView) error {
	// The genesis block is not mined. It is accepted when it is the
	// genesis of the network.
	if header.IsGenesis() {
		if header.Hash() != v.params.GenesisHash() {
			return errors.Errorf("genesis %s does not belong to %s", header.Hash(), v.params.Name)
		}
		return verification.NewVersionVerifier(header).Verify()
	}
	headers := verification.NewHeaderVerifier(snap, v.params.Engine(), v.clock)
	resolver, err := verification.NewHeaderResolverWrapper(header, snap)
	if err != nil {
		return err
	}
	return headers.Verify(resolver)
}
