package pow

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestCompactToTarget(t *testing.T) {
	target, overflow := CompactToTarget(DiffTwo)
	assert.False(t, overflow)
	assert.Equal(t, new(uint256.Int).Lsh(uint256.NewInt(1), 255), target)

	target, overflow = CompactToTarget(0x05123456)
	assert.False(t, overflow)
	assert.Equal(t, uint256.NewInt(0x1234560000), target)

	target, overflow = CompactToTarget(0x01003456)
	assert.False(t, overflow)
	assert.True(t, target.IsZero())

	target, overflow = CompactToTarget(0x02123456)
	assert.False(t, overflow)
	assert.Equal(t, uint256.NewInt(0x1234), target)

	_, overflow = CompactToTarget(0x22000001)
	assert.True(t, overflow)

	target, overflow = CompactToTarget(0x22000000)
	assert.False(t, overflow)
	assert.True(t, target.IsZero())
}

func TestTargetToCompact(t *testing.T) {
	assert.Equal(t, DiffTwo, TargetToCompact(new(uint256.Int).Lsh(uint256.NewInt(1), 255)))
	assert.Equal(t, uint32(0x05123456), TargetToCompact(uint256.NewInt(0x1234560000)))
	assert.Equal(t, uint32(0x02123400), TargetToCompact(uint256.NewInt(0x1234)))
	assert.Equal(t, uint32(0), TargetToCompact(new(uint256.Int)))

	for _, compact := range []uint32{0x1d7fffff, 0x1b0404cb, 0x200c30c3, DiffTwo} {
		target, _ := CompactToTarget(compact)
		assert.Equal(t, compact, TargetToCompact(target))
	}
}

func TestDifficulty(t *testing.T) {
	assert.Equal(t, uint256.NewInt(2), CompactToDifficulty(DiffTwo))
	assert.True(t, CompactToDifficulty(0).IsZero())
	assert.True(t, CompactToDifficulty(0x22000001).IsZero())

	max := new(uint256.Int).SetAllOne()
	assert.Equal(t, max, TargetToDifficulty(uint256.NewInt(1)))
	assert.Equal(t, max, DifficultyToTarget(uint256.NewInt(1)))
	assert.Equal(t, new(uint256.Int).Lsh(uint256.NewInt(1), 254), DifficultyToTarget(uint256.NewInt(4)))
	// 2^256 / 3
	third := DifficultyToTarget(uint256.NewInt(3))
	assert.Equal(t, max, new(uint256.Int).Mul(third, uint256.NewInt(3)))

	assert.Equal(t, DiffTwo, DifficultyToCompact(uint256.NewInt(2)))
}
