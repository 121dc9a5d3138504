// Copyright (c) 2017-2020 The qitmeer developers
// license that can be found in the LICENSE file.

package pow

import (
	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/holiman/uint256"
)

// DiffTwo is the compact target of difficulty 2, the easiest target
// dev chains start from.
const DiffTwo uint32 = 0x20800000

var (
	u256One = uint256.NewInt(1)
	u256Max = new(uint256.Int).SetAllOne()
)

// HashToU256 interprets a digest as a big endian 256-bit number.
func HashToU256(h *hash.Hash) *uint256.Int {
	return new(uint256.Int).SetBytes(h[:])
}

// CompactToTarget decodes a compact target.
//
// The most significant 8 bits are the base 256 exponent and the low 24 bits
// the mantissa:
//
//	N = mantissa * 256^(exponent-3)
//
// overflow is set when a non zero mantissa is shifted past 256 bits.
func CompactToTarget(compact uint32) (target *uint256.Int, overflow bool) {
	exponent := uint(compact >> 24)
	mantissa := uint256.NewInt(uint64(compact & 0x00ffffff))

	if exponent <= 3 {
		mantissa.Rsh(mantissa, 8*(3-exponent))
		target = new(uint256.Int).Set(mantissa)
	} else {
		target = new(uint256.Int).Lsh(mantissa, 8*(exponent-3))
	}
	overflow = !mantissa.IsZero() && exponent > 32
	return target, overflow
}

// TargetToCompact encodes a target in compact form. The encoding keeps the
// 24 most significant bits only.
func TargetToCompact(target *uint256.Int) uint32 {
	exponent := uint((target.BitLen() + 7) / 8)
	var compact uint32
	if exponent <= 3 {
		compact = uint32(target.Uint64() << (8 * (3 - exponent)))
	} else {
		compact = uint32(new(uint256.Int).Rsh(target, 8*(exponent-3)).Uint64())
	}
	return compact | uint32(exponent<<24)
}

// TargetToDifficulty returns 2^256 / target. Targets 0 and 1 map to the
// maximum difficulty.
func TargetToDifficulty(target *uint256.Int) *uint256.Int {
	return divOneLsh256(target)
}

// DifficultyToTarget returns 2^256 / difficulty. Difficulties 0 and 1 map
// to the maximum target.
func DifficultyToTarget(difficulty *uint256.Int) *uint256.Int {
	return divOneLsh256(difficulty)
}

// CompactToDifficulty decodes compact and converts it to a difficulty. A
// malformed compact has difficulty zero.
func CompactToDifficulty(compact uint32) *uint256.Int {
	target, overflow := CompactToTarget(compact)
	if target.IsZero() || overflow {
		return new(uint256.Int)
	}
	return TargetToDifficulty(target)
}

// DifficultyToCompact is the inverse of CompactToDifficulty up to the
// precision of the compact form.
func DifficultyToCompact(difficulty *uint256.Int) uint32 {
	return TargetToCompact(DifficultyToTarget(difficulty))
}

// divOneLsh256 computes floor(2^256 / d) for d >= 2 as
// (2^256 - d) / d + 1, which stays inside 256 bits.
func divOneLsh256(d *uint256.Int) *uint256.Int {
	if d.Cmp(u256One) <= 0 {
		return new(uint256.Int).Set(u256Max)
	}
	q := new(uint256.Int).Sub(u256Max, d)
	q.AddUint64(q, 1)
	q.Div(q, d)
	return q.AddUint64(q, 1)
}
