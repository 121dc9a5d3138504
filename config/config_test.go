package config

import (
	"path/filepath"
	"testing"

	"github.com/Qitmeer/cellverify/core/types/pow"
	_ "github.com/Qitmeer/cellverify/database/boltdb"
	"github.com/Qitmeer/cellverify/params"
	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) *Config {
	cfg := Default()
	_, err := flags.NewParser(&cfg, flags.HelpFlag).ParseArgs(args)
	require.NoError(t, err)
	return &cfg
}

func TestDefaultIsMainNet(t *testing.T) {
	cfg := parse(t)
	p, err := cfg.Resolve()
	require.NoError(t, err)
	assert.Same(t, &params.MainNetParams, p)
	assert.Equal(t, filepath.Join(defaultDataDir, "mainnet"), cfg.DataDir)
	assert.Equal(t, filepath.Join(cfg.DataDir, "chain_leveldb"), cfg.DbPath())
}

func TestHomeDirMovesDataAndLogs(t *testing.T) {
	home := t.TempDir()
	cfg := parse(t, "--appdata", home, "--privnet", "--dbtype", "bolt")
	p, err := cfg.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "privnet", p.Name)
	assert.Equal(t, filepath.Join(home, defaultDataDirname, "privnet"), cfg.DataDir)
	assert.Equal(t, filepath.Join(home, defaultLogDirname, "privnet"), cfg.LogDir)
	assert.Equal(t, filepath.Join(cfg.DataDir, "chain_bolt"), cfg.DbPath())
}

func TestPowOverride(t *testing.T) {
	cfg := parse(t, "--testnet", "--pow", "blake256")
	p, err := cfg.Resolve()
	require.NoError(t, err)
	assert.Equal(t, pow.BLAKE256, p.PowType)
	assert.Equal(t, pow.KECCAK256, params.TestNetParams.PowType)
}

func TestResolveRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"two networks", []string{"--testnet", "--privnet"}},
		{"unknown pow", []string{"--pow", "cuckaroo"}},
		{"unknown db", []string{"--dbtype", "ffldb"}},
		{"unknown level", []string{"-d", "loud"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := parse(t, test.args...)
			_, err := cfg.Resolve()
			assert.Error(t, err)
		})
	}
}

func TestCleanAndExpandPath(t *testing.T) {
	t.Setenv("CELLVERIFY_TEST_DIR", "/tmp/cv")
	assert.Equal(t, "/tmp/cv/data", CleanAndExpandPath("$CELLVERIFY_TEST_DIR/./data/"))
}
