// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verification

import (
	"github.com/Qitmeer/cellverify/core/types"
)

// EpochVerifier checks the epoch field and compact target of a block
// against the epoch it belongs to.
type EpochVerifier struct {
	epoch *types.EpochExt
	block *types.BlockView
}

func NewEpochVerifier(epoch *types.EpochExt, block *types.BlockView) EpochVerifier {
	return EpochVerifier{epoch: epoch, block: block}
}

// Verify compares full epoch values, so a header whose raw epoch has a
// zero length is compared in its normalized form. A block outside the
// epoch is reported against the first block of the epoch.
func (v EpochVerifier) Verify() error {
	header := v.block.Header()
	number := header.Number()
	actual := header.Epoch().FullValue()
	if !v.epoch.Contains(number) {
		return EpochError{
			ErrorCode: ErrEpochNumberMismatch,
			Expected:  types.NewEpochNumberWithFraction(v.epoch.Number, 0, v.epoch.Length).FullValue(),
			Actual:    actual,
		}
	}
	if expected := v.epoch.NumberWithFraction(number).FullValue(); actual != expected {
		return EpochError{
			ErrorCode: ErrEpochNumberMismatch,
			Expected:  expected,
			Actual:    actual,
		}
	}
	if header.CompactTarget() != v.epoch.CompactTarget {
		return EpochError{
			ErrorCode: ErrEpochTargetMismatch,
			Expected:  uint64(v.epoch.CompactTarget),
			Actual:    uint64(header.CompactTarget()),
		}
	}
	return nil
}

// BlockReward is the issuance of one block.
type BlockReward struct {
	Primary   types.Capacity
	Secondary types.Capacity
}

func (r BlockReward) Total() (types.Capacity, error) {
	return r.Primary.SafeAdd(r.Secondary)
}

// BlockRewardFor splits the primary reward of epoch and secondaryEpochReward
// over its blocks and returns the share of block number.
func BlockRewardFor(epoch *types.EpochExt, number uint64, secondaryEpochReward types.Capacity) (BlockReward, error) {
	primary, err := epoch.BlockReward(number)
	if err != nil {
		return BlockReward{}, err
	}
	secondary, err := epoch.SecondaryBlockIssuance(number, secondaryEpochReward)
	if err != nil {
		return BlockReward{}, err
	}
	return BlockReward{Primary: primary, Secondary: secondary}, nil
}
