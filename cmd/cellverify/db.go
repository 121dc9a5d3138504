package main

import (
	"os"

	"github.com/Qitmeer/cellverify/core/store"
	"github.com/Qitmeer/cellverify/database"
	_ "github.com/Qitmeer/cellverify/database/badgerdb"
	_ "github.com/Qitmeer/cellverify/database/boltdb"
	_ "github.com/Qitmeer/cellverify/database/ldb"
	"github.com/Qitmeer/cellverify/log"
	"github.com/Qitmeer/cellverify/params"
)

// LoadChainDB opens (or creates when needed) the chain database of the
// configured backend and makes sure it holds the genesis of p.
func LoadChainDB(cfg *Config, p *params.Params) (*store.ChainDB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, err
	}

	dbPath := cfg.DbPath()
	log.Info("Loading chain database", "dbPath", dbPath)
	db, err := database.Create(cfg.DbType, dbPath)
	if err != nil {
		return nil, err
	}
	chain := store.NewChainDB(db)
	if err := chain.InitGenesis(p.GenesisBlock, p.GenesisEpochExt()); err != nil {
		chain.Close()
		return nil, err
	}
	log.Info("Chain database loaded")
	return chain, nil
}
