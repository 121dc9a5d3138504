package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Qitmeer/cellverify/config"
	"github.com/Qitmeer/cellverify/params"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

type Config struct {
	config.Config

	Verify bool   `long:"verify" description:"Verify the stored main chain from --from to the tip"`
	From   uint64 `long:"from" description:"First block number checked by --verify"`
	Cell   string `long:"cell" description:"Show the status of the out point <txhash>:<index>"`
	Header string `long:"header" description:"Report whether the block <hash> is on the main chain"`
	Dump   bool   `long:"dumpmetrics" description:"Print the collected metrics on exit"`
}

// LoadConfig parses the command line and resolves the network parameters.
func LoadConfig(args []string) (*Config, *params.Params, error) {
	cfg := Config{
		Config: config.Default(),
		From:   1,
	}

	parser := flags.NewParser(&cfg, flags.HelpFlag)
	_, err := parser.ParseArgs(args)
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
		return nil, nil, err
	}

	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	usageMessage := fmt.Sprintf("Use %s -h to show usage", appName)

	p, err := cfg.Resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, usageMessage)
		return nil, nil, err
	}

	actions := 0
	for _, set := range []bool{cfg.Verify, cfg.Cell != "", cfg.Header != ""} {
		if set {
			actions++
		}
	}
	if actions != 1 {
		fmt.Fprintln(os.Stderr, usageMessage)
		return nil, nil, errors.New("LoadConfig: exactly one of --verify, " +
			"--cell and --header must be given")
	}
	return &cfg, p, nil
}
