package types

import (
	"testing"

	"github.com/Qitmeer/cellverify/core/types/pow"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func digestAt(number uint64) HeaderDigest {
	h := NewHeaderBuilder().
		Number(number).
		Timestamp(number * 1000).
		CompactTarget(pow.DiffTwo).
		Epoch(NewEpochNumberWithFraction(0, number, 100)).
		Build()
	return h.Digest()
}

func TestHeaderDigestMerge(t *testing.T) {
	l, r := digestAt(1), digestAt(2)
	merged, err := HeaderDigestMerger{}.Merge(&l, &r)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), merged.StartNumber)
	assert.Equal(t, uint64(2), merged.EndNumber)
	assert.Equal(t, uint64(1000), merged.StartTimestamp)
	assert.Equal(t, uint64(2000), merged.EndTimestamp)
	assert.Equal(t, uint256.NewInt(4), &merged.TotalDifficulty)
	lh, rh := l.Hash(), r.Hash()
	assert.NotEqual(t, lh, rh)

	_, err = HeaderDigestMerger{}.Merge(&r, &l)
	assert.Error(t, err)

	far := digestAt(4)
	_, err = HeaderDigestMerger{}.Merge(&r, &far)
	assert.Error(t, err)
}
