// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/Qitmeer/cellverify/core/types/pow"
	"github.com/Qitmeer/cellverify/database"
	"github.com/Qitmeer/cellverify/database/ldb"
	"github.com/Qitmeer/cellverify/log"
	"github.com/Qitmeer/cellverify/metrics"
	"github.com/Qitmeer/cellverify/params"
	"github.com/btcsuite/btcutil"
)

const (
	defaultDataDirname = "data"
	defaultLogDirname  = "logs"
	defaultLogFilename = "cellverify.log"
	defaultDebugLevel  = "info"

	// chainDbNamePrefix is the prefix for the chain database name. The
	// database type is appended to this value to form the full name.
	chainDbNamePrefix = "chain"
)

var (
	DefaultHomeDir = btcutil.AppDataDir("cellverify", false)
	defaultDataDir = filepath.Join(DefaultHomeDir, defaultDataDirname)
	defaultLogDir  = filepath.Join(DefaultHomeDir, defaultLogDirname)
	defaultDbType  = ldb.DbType
)

// Config is the process configuration shared by the cellverify commands.
type Config struct {
	HomeDir       string `short:"A" long:"appdata" description:"Path to application home directory"`
	DataDir       string `short:"b" long:"datadir" description:"Directory to store data"`
	LogDir        string `long:"logdir" description:"Directory to log output."`
	NoFileLogging bool   `long:"nofilelogging" description:"Disable file logging."`
	TestNet       bool   `long:"testnet" description:"Use the test network"`
	PrivNet       bool   `long:"privnet" description:"Use the private network"`
	DbType        string `long:"dbtype" description:"Database backend to use for the chain {leveldb, bolt, badger}"`
	PowType       string `long:"pow" description:"Override the proof of work engine of the network {dummy, blake2b, keccak256, blake256}"`
	DebugLevel    string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, crit}"`
	ModuleLevels  string `long:"vmodule" description:"Per module logging levels, e.g. verification=5,store=4"`
	Metrics       bool   `long:"metrics" description:"Enable metrics collection"`
}

// Default returns the configuration used when no option is given.
func Default() Config {
	return Config{
		HomeDir:    DefaultHomeDir,
		DataDir:    defaultDataDir,
		LogDir:     defaultLogDir,
		DbType:     defaultDbType,
		DebugLevel: defaultDebugLevel,
	}
}

// Resolve validates the configuration, picks the network parameters and
// rewrites the directories for the selected network.
func (c *Config) Resolve() (*params.Params, error) {
	funcName := "Resolve"

	// Update the data and log directories if only the home directory
	// was given.
	if c.HomeDir != DefaultHomeDir {
		c.HomeDir = CleanAndExpandPath(c.HomeDir)
		if c.DataDir == defaultDataDir {
			c.DataDir = filepath.Join(c.HomeDir, defaultDataDirname)
		}
		if c.LogDir == defaultLogDir {
			c.LogDir = filepath.Join(c.HomeDir, defaultLogDirname)
		}
	}

	// Multiple networks can't be selected simultaneously.
	if c.TestNet && c.PrivNet {
		return nil, fmt.Errorf("%s: the testnet and privnet params can't be "+
			"used together -- choose one", funcName)
	}
	p := &params.MainNetParams
	switch {
	case c.TestNet:
		p = &params.TestNetParams
	case c.PrivNet:
		p = &params.PrivNetParams
	}

	if c.PowType != "" {
		powType, err := pow.ParsePowType(c.PowType)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", funcName, err)
		}
		p = p.WithPowType(powType)
	}

	if !validDbType(c.DbType) {
		return nil, fmt.Errorf("%s: the specified database type [%v] is "+
			"invalid -- supported types %v", funcName, c.DbType, database.SupportedDrivers())
	}

	if _, err := log.LvlFromString(c.DebugLevel); err != nil {
		return nil, fmt.Errorf("%s: %v", funcName, err)
	}

	c.DataDir = filepath.Join(CleanAndExpandPath(c.DataDir), p.Name)
	c.LogDir = filepath.Join(CleanAndExpandPath(c.LogDir), p.Name)
	return p, nil
}

// DbPath returns the path to the chain database of the configured backend.
func (c *Config) DbPath() string {
	return filepath.Join(c.DataDir, chainDbNamePrefix+"_"+c.DbType)
}

// InitLogging applies the logging options. It must run after Resolve.
func (c *Config) InitLogging() error {
	if !c.NoFileLogging {
		if err := log.InitLogRotator(filepath.Join(c.LogDir, defaultLogFilename)); err != nil {
			return err
		}
	}
	if err := log.SetLogLevel(c.DebugLevel); err != nil {
		return err
	}
	if c.ModuleLevels != "" {
		return log.SetModuleLevels(c.ModuleLevels)
	}
	return nil
}

// InitMetrics turns metrics collection on when asked to. Meters created
// before it ran stay no-ops.
func (c *Config) InitMetrics() {
	if c.Metrics && !metrics.Enabled {
		metrics.Enable()
	}
}

func validDbType(dbType string) bool {
	for _, t := range database.SupportedDrivers() {
		if t == dbType {
			return true
		}
	}
	return false
}

// CleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func CleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		var homeDir string
		if u, err := user.Current(); err == nil {
			homeDir = u.HomeDir
		} else {
			homeDir = os.Getenv("HOME")
		}
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}
