// Copyright (c) 2017-2020 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command cellverify checks a stored chain against the consensus rules and
// answers cell and header queries from a snapshot of it.
package main

import (
	"fmt"
	"os"

	"github.com/Qitmeer/cellverify/log"
	"github.com/Qitmeer/cellverify/metrics"
)

func main() {
	if err := cellverifyMain(); err != nil {
		os.Exit(1)
	}
}

func cellverifyMain() error {
	// Load configuration and parse command line.
	cfg, p, err := LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if err := cfg.InitLogging(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer func() {
		if log.LogWrite() != nil {
			log.LogWrite().Close()
		}
	}()
	cfg.InitMetrics()
	if cfg.Metrics {
		quit := make(chan struct{})
		defer close(quit)
		go metrics.CollectProcessMetrics(metricsRefresh, quit)
	}

	chain, err := LoadChainDB(cfg, p)
	if err != nil {
		log.Error("load chain database", "error", err)
		return err
	}
	defer func() {
		log.Info("Gracefully shutting down the database...")
		chain.Close()
	}()

	switch {
	case cfg.Verify:
		err = runVerify(cfg, chain, p)
	case cfg.Cell != "":
		err = printQuery(cellStatus(chain, cfg.Cell))
	case cfg.Header != "":
		err = printQuery(headerStatus(chain, cfg.Header))
	}
	if err != nil {
		log.Error(err.Error())
	}

	if cfg.Dump {
		metrics.WriteOnce(os.Stdout)
	}
	return err
}

func printQuery(out string, err error) error {
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
