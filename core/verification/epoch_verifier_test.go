// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verification

import (
	"testing"

	"github.com/Qitmeer/cellverify/core/types"
	"github.com/Qitmeer/cellverify/core/types/pow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpochNumberMismatch(t *testing.T) {
	block := types.NewBlockBuilder().
		Header(types.NewHeaderBuilder().RawEpoch(2).Build()).
		Build()
	epoch := &types.EpochExt{Length: 1}

	err := NewEpochVerifier(epoch, block).Verify()
	assert.Equal(t, EpochError{
		ErrorCode: ErrEpochNumberMismatch,
		Expected:  1_099_511_627_776,
		Actual:    1_099_511_627_778,
	}, err)
	assert.Equal(t, EpochErrorKind, ErrEpochNumberMismatch.Kind())
}

func TestEpochTargetMismatch(t *testing.T) {
	epoch := &types.EpochExt{CompactTarget: pow.DiffTwo, Length: 1}
	block := types.NewBlockBuilder().
		Header(types.NewHeaderBuilder().
			Epoch(epoch.NumberWithFraction(0)).
			CompactTarget(0x200c30c3).
			Build()).
		Build()

	err := NewEpochVerifier(epoch, block).Verify()
	assert.Equal(t, EpochError{
		ErrorCode: ErrEpochTargetMismatch,
		Expected:  uint64(pow.DiffTwo),
		Actual:    0x200c30c3,
	}, err)
}

func TestEpochVerifierAccepts(t *testing.T) {
	epoch := &types.EpochExt{Number: 3, StartNumber: 100, Length: 10, CompactTarget: pow.DiffTwo}
	for n := uint64(100); n < 110; n++ {
		block := types.NewBlockBuilder().
			Header(types.NewHeaderBuilder().
				Number(n).
				Epoch(types.NewEpochNumberWithFraction(3, n-100, 10)).
				CompactTarget(pow.DiffTwo).
				Build()).
			Build()
		assert.NoError(t, NewEpochVerifier(epoch, block).Verify(), "block %d", n)
	}
}

func TestEpochVerifierOutsideEpoch(t *testing.T) {
	epoch := &types.EpochExt{Number: 3, StartNumber: 100, Length: 10, CompactTarget: pow.DiffTwo}
	block := types.NewBlockBuilder().
		Header(types.NewHeaderBuilder().
			Number(110).
			Epoch(types.NewEpochNumberWithFraction(3, 10, 10)).
			CompactTarget(pow.DiffTwo).
			Build()).
		Build()
	err := NewEpochVerifier(epoch, block).Verify()
	requireCode(t, err, ErrEpochNumberMismatch)
	assert.Equal(t, types.NewEpochNumberWithFraction(3, 0, 10).FullValue(), err.(EpochError).Expected)
}

func TestBlockRewardFor(t *testing.T) {
	epoch := &types.EpochExt{
		BaseBlockReward: 100,
		RemainderReward: 2,
		StartNumber:     10,
		Length:          4,
	}
	want := []BlockReward{
		{Primary: 101, Secondary: 3},
		{Primary: 101, Secondary: 2},
		{Primary: 100, Secondary: 2},
		{Primary: 100, Secondary: 2},
	}
	var total types.Capacity
	for i, w := range want {
		r, err := BlockRewardFor(epoch, 10+uint64(i), 9)
		require.NoError(t, err)
		assert.Equal(t, w, r)
		sum, err := r.Total()
		require.NoError(t, err)
		total += sum
	}
	assert.Equal(t, types.Capacity(4*100+2+9), total)

	_, err := BlockRewardFor(&types.EpochExt{}, 0, 9)
	assert.Error(t, err)
}
