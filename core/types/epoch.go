// Copyright 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/Qitmeer/cellverify/core/types/pow"
	"github.com/holiman/uint256"
)

// Bit layout of EpochNumberWithFraction.
const (
	EpochNumberOffset  = 0
	EpochNumberBits    = 24
	EpochNumberMaximum = 1 << EpochNumberBits
	EpochNumberMask    = EpochNumberMaximum - 1

	EpochIndexOffset  = EpochNumberBits
	EpochIndexBits    = 16
	EpochIndexMaximum = 1 << EpochIndexBits
	EpochIndexMask    = EpochIndexMaximum - 1

	EpochLengthOffset  = EpochNumberBits + EpochIndexBits
	EpochLengthBits    = 16
	EpochLengthMaximum = 1 << EpochLengthBits
	EpochLengthMask    = EpochLengthMaximum - 1
)

// EpochNumberWithFraction packs an epoch number with the position of a
// block inside the epoch (index of length) in 64 bits.
type EpochNumberWithFraction struct {
	v uint64
}

// NewEpochNumberWithFraction packs number, index and length. It panics if
// a field does not fit its bits.
func NewEpochNumberWithFraction(number, index, length uint64) EpochNumberWithFraction {
	if number >= EpochNumberMaximum || index >= EpochIndexMaximum || length >= EpochLengthMaximum {
		panic(fmt.Sprintf("epoch fields out of range: number %d, index %d, length %d",
			number, index, length))
	}
	return NewEpochNumberWithFractionUnchecked(number, index, length)
}

// NewEpochNumberWithFractionUnchecked packs the low bits of each field.
func NewEpochNumberWithFractionUnchecked(number, index, length uint64) EpochNumberWithFraction {
	return EpochNumberWithFraction{
		v: (length&EpochLengthMask)<<EpochLengthOffset |
			(index&EpochIndexMask)<<EpochIndexOffset |
			(number&EpochNumberMask)<<EpochNumberOffset,
	}
}

// EpochNumberWithFractionFromFullValue decodes a header epoch field. A zero
// length, which would make the fraction undefined, decodes as index 0 of
// length 1.
func EpochNumberWithFractionFromFullValue(v uint64) EpochNumberWithFraction {
	e := EpochNumberWithFraction{v: v}
	if e.Length() == 0 {
		return NewEpochNumberWithFractionUnchecked(e.Number(), 0, 1)
	}
	return e
}

// ParseEpochNumberWithFraction parses the String form.
func ParseEpochNumberWithFraction(str string) (EpochNumberWithFraction, error) {
	var number, index, length uint64
	_, err := fmt.Sscanf(str, "Epoch { number: %d, index: %d, length: %d }",
		&number, &index, &length)
	if err != nil {
		return EpochNumberWithFraction{}, fmt.Errorf("invalid epoch %q: %v", str, err)
	}
	if number >= EpochNumberMaximum || index >= EpochIndexMaximum || length >= EpochLengthMaximum {
		return EpochNumberWithFraction{}, fmt.Errorf("invalid epoch %q: field out of range", str)
	}
	return NewEpochNumberWithFractionUnchecked(number, index, length), nil
}

func (e EpochNumberWithFraction) FullValue() uint64 { return e.v }

func (e EpochNumberWithFraction) Number() uint64 {
	return (e.v >> EpochNumberOffset) & EpochNumberMask
}

func (e EpochNumberWithFraction) Index() uint64 {
	return (e.v >> EpochIndexOffset) & EpochIndexMask
}

func (e EpochNumberWithFraction) Length() uint64 {
	return (e.v >> EpochLengthOffset) & EpochLengthMask
}

// Cmp orders by number, then by index/length. The fractions are compared
// by cross multiplication.
func (e EpochNumberWithFraction) Cmp(o EpochNumberWithFraction) int {
	switch {
	case e.Number() < o.Number():
		return -1
	case e.Number() > o.Number():
		return 1
	}
	a := e.Index() * o.Length()
	b := o.Index() * e.Length()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (e EpochNumberWithFraction) Less(o EpochNumberWithFraction) bool {
	return e.Cmp(o) < 0
}

// ToRational returns number + index/length. Length zero counts as one.
func (e EpochNumberWithFraction) ToRational() *big.Rat {
	length := e.Length()
	if length == 0 {
		length = 1
	}
	r := new(big.Rat).SetFrac(new(big.Int).SetUint64(e.Index()), new(big.Int).SetUint64(length))
	return r.Add(r, new(big.Rat).SetInt(new(big.Int).SetUint64(e.Number())))
}

func (e EpochNumberWithFraction) String() string {
	return fmt.Sprintf("Epoch { number: %d, index: %d, length: %d }",
		e.Number(), e.Index(), e.Length())
}

var errZeroEpochLength = errors.New("epoch length is zero")

// EpochExt describes an epoch: its rewards, its difficulty and the blocks
// it spans.
type EpochExt struct {
	Number uint64

	BaseBlockReward Capacity

	// The first RemainderReward blocks of the epoch get one extra shannon.
	RemainderReward Capacity

	PreviousEpochHashRate uint256.Int

	LastBlockHashInPreviousEpoch hash.Hash

	StartNumber uint64

	Length uint64

	CompactTarget uint32
}

// Contains reports whether block number belongs to the epoch.
func (e *EpochExt) Contains(number uint64) bool {
	return number >= e.StartNumber && number-e.StartNumber < e.Length
}

// EndNumber is the number of the last block of the epoch.
func (e *EpochExt) EndNumber() uint64 {
	return e.StartNumber + e.Length - 1
}

func (e *EpochExt) IsGenesis() bool {
	return e.Number == 0
}

// BlockReward returns the primary reward of block number.
func (e *EpochExt) BlockReward(number uint64) (Capacity, error) {
	if number >= e.StartNumber && number-e.StartNumber < uint64(e.RemainderReward) {
		return e.BaseBlockReward.SafeAdd(1)
	}
	return e.BaseBlockReward, nil
}

// SecondaryBlockIssuance splits total over the epoch blocks, the remainder
// going one shannon each to the first blocks.
func (e *EpochExt) SecondaryBlockIssuance(number uint64, total Capacity) (Capacity, error) {
	if e.Length == 0 {
		return 0, errZeroEpochLength
	}
	issuance := Capacity(uint64(total) / e.Length)
	remainder := uint64(total) % e.Length
	if number >= e.StartNumber && number-e.StartNumber < remainder {
		return issuance.SafeAdd(1)
	}
	return issuance, nil
}

// NumberWithFraction returns the epoch field of block number. It panics if
// number is outside the epoch or a field does not fit its bits.
func (e *EpochExt) NumberWithFraction(number uint64) EpochNumberWithFraction {
	if !e.Contains(number) {
		panic(fmt.Sprintf("block %d outside %s", number, e))
	}
	return NewEpochNumberWithFraction(e.Number, number-e.StartNumber, e.Length)
}

// Difficulty is the difficulty of the epoch compact target.
func (e *EpochExt) Difficulty() *uint256.Int {
	return pow.CompactToDifficulty(e.CompactTarget)
}

func (e *EpochExt) String() string {
	return fmt.Sprintf("EpochExt { number: %d, start: %d, length: %d, compact_target: %#x }",
		e.Number, e.StartNumber, e.Length, e.CompactTarget)
}
