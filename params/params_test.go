package params

import (
	"testing"

	"github.com/Qitmeer/cellverify/core/store"
	"github.com/Qitmeer/cellverify/core/types"
	"github.com/Qitmeer/cellverify/core/types/pow"
	"github.com/Qitmeer/cellverify/core/verification"
	"github.com/Qitmeer/cellverify/database/ldb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesisEpochExt(t *testing.T) {
	epoch := MainNetParams.GenesisEpochExt()
	assert.True(t, epoch.IsGenesis())
	assert.Equal(t, uint64(mainEpochLength), epoch.Length)
	assert.True(t, epoch.Contains(0))
	assert.False(t, epoch.Contains(mainEpochLength))

	// the primary issuance is spread over the epoch without loss
	var total types.Capacity
	for n := uint64(0); n < epoch.Length; n++ {
		r, err := epoch.BlockReward(n)
		require.NoError(t, err)
		total += r
	}
	assert.Equal(t, MainNetParams.InitialPrimaryEpochReward, total)
}

func TestGenesisBlocksVerify(t *testing.T) {
	for _, p := range networks {
		t.Run(p.Name, func(t *testing.T) {
			genesis := p.GenesisBlock
			assert.True(t, genesis.IsGenesis())
			assert.Equal(t, genesis.Hash(), p.GenesisHash())

			blocks := verification.NewBlockVerifier(p.MaxBlockBytes, p.MaxBlockProposalsLimit)
			assert.NoError(t, blocks.Verify(genesis))
			assert.NoError(t, verification.NewEpochVerifier(p.GenesisEpochExt(), genesis).Verify())
		})
	}
}

func TestGenesisHashesDiffer(t *testing.T) {
	assert.NotEqual(t, MainNetParams.GenesisHash(), TestNetParams.GenesisHash())
	assert.NotEqual(t, TestNetParams.GenesisHash(), PrivNetParams.GenesisHash())
}

func TestInitGenesisFromParams(t *testing.T) {
	db, err := ldb.OpenMem()
	require.NoError(t, err)
	chain := store.NewChainDB(db)
	defer chain.Close()

	require.NoError(t, chain.InitGenesis(PrivNetParams.GenesisBlock, PrivNetParams.GenesisEpochExt()))
	tip, err := chain.GetTip()
	require.NoError(t, err)
	assert.Equal(t, PrivNetParams.GenesisHash(), tip.Hash())

	// a different genesis cannot be stored over it
	assert.Error(t, chain.InitGenesis(TestNetParams.GenesisBlock, TestNetParams.GenesisEpochExt()))
}

func TestByName(t *testing.T) {
	p, err := ByName("TestNet")
	require.NoError(t, err)
	assert.Same(t, &TestNetParams, p)

	_, err = ByName("mixnet")
	assert.Error(t, err)
}

func TestEngine(t *testing.T) {
	assert.Equal(t, pow.BLAKE2B, MainNetParams.Engine().Type())
	assert.Equal(t, pow.DUMMY, PrivNetParams.Engine().Type())

	p := MainNetParams.WithPowType(pow.BLAKE256)
	assert.Equal(t, pow.BLAKE256, p.Engine().Type())
	assert.Equal(t, pow.BLAKE2B, MainNetParams.PowType)
}
