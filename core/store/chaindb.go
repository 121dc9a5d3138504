// Copyright (c) 2017-2020 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"sync"

	"github.com/Qitmeer/cellverify/core/types"
	"github.com/Qitmeer/cellverify/database"
	"github.com/pkg/errors"
)

// ChainDB is the live chain store. Reads go straight to the database,
// writes go through the one StoreTransaction allowed at a time.
type ChainDB struct {
	chainReader
	db     database.DB
	writer sync.Mutex
}

func NewChainDB(db database.DB) *ChainDB {
	return &ChainDB{chainReader: chainReader{r: db}, db: db}
}

// DB returns the underlying database.
func (c *ChainDB) DB() database.DB {
	return c.db
}

// Snapshot freezes the current committed state. The snapshot must be
// released.
func (c *ChainDB) Snapshot() (*StoreSnapshot, error) {
	snap, err := c.db.Snapshot()
	if err != nil {
		return nil, errors.Wrap(err, "take snapshot")
	}
	return &StoreSnapshot{chainReader: chainReader{r: snap}, snap: snap}, nil
}

// BeginTransaction blocks until no other transaction is open and returns
// a new one. It must be ended with Commit or Rollback.
func (c *ChainDB) BeginTransaction() *StoreTransaction {
	c.writer.Lock()
	pending := newOverlay(c.db)
	return &StoreTransaction{
		chainReader: chainReader{r: pending},
		owner:       c,
		pending:     pending,
		batch:       c.db.NewBatch(),
	}
}

// InitGenesis stores the genesis block and its epoch into an empty
// database. A database that already holds a chain must have been created
// with the same genesis.
func (c *ChainDB) InitGenesis(genesis *types.BlockView, epoch *types.EpochExt) error {
	stored, err := c.GetBlockHash(0)
	if err != nil {
		return err
	}
	if stored != nil {
		if *stored != genesis.Hash() {
			return errors.Errorf("database genesis %s does not match %s", stored, genesis.Hash())
		}
		return nil
	}

	header := genesis.Header()
	ext := &types.BlockExt{
		ReceivedAt: header.Timestamp(),
		Verified:   types.VerifiedValid,
	}
	ext.TotalDifficulty = *header.Difficulty()

	txn := c.BeginTransaction()
	defer txn.Rollback()
	if err := txn.InsertBlock(genesis); err != nil {
		return err
	}
	if err := txn.AttachBlock(genesis); err != nil {
		return err
	}
	if err := txn.AttachBlockCells(genesis); err != nil {
		return err
	}
	if err := txn.InsertBlockExt(genesis.Hash(), ext); err != nil {
		return err
	}
	if err := txn.InsertEpochExt(epoch); err != nil {
		return err
	}
	if err := txn.AttachBlockEpoch(genesis.Hash(), epoch.Number); err != nil {
		return err
	}
	if err := txn.InsertCurrentEpochExt(epoch); err != nil {
		return err
	}
	txn.InsertTip(header)
	if err := txn.Commit(); err != nil {
		return err
	}
	storeLog.Info("Initialized chain", "genesis", genesis.Hash(), "epoch", epoch.Number)
	return nil
}

func (c *ChainDB) Close() error {
	return c.db.Close()
}
