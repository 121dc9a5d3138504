package types

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpochNumberWithFractionLayout(t *testing.T) {
	e := NewEpochNumberWithFraction(3, 5, 1000)
	assert.Equal(t, uint64(3), e.Number())
	assert.Equal(t, uint64(5), e.Index())
	assert.Equal(t, uint64(1000), e.Length())
	assert.Equal(t, uint64(3)|uint64(5)<<24|uint64(1000)<<40, e.FullValue())
	assert.Equal(t, e, EpochNumberWithFractionFromFullValue(e.FullValue()))
}

func TestEpochNumberWithFractionOutOfRange(t *testing.T) {
	assert.Panics(t, func() { NewEpochNumberWithFraction(EpochNumberMaximum, 0, 1) })
	assert.Panics(t, func() { NewEpochNumberWithFraction(0, EpochIndexMaximum, 1) })
	assert.Panics(t, func() { NewEpochNumberWithFraction(0, 0, EpochLengthMaximum) })
	assert.NotPanics(t, func() {
		NewEpochNumberWithFraction(EpochNumberMaximum-1, EpochIndexMaximum-1, EpochLengthMaximum-1)
	})
}

func TestEpochNumberWithFractionZeroLength(t *testing.T) {
	e := EpochNumberWithFractionFromFullValue(2)
	assert.Equal(t, uint64(2), e.Number())
	assert.Equal(t, uint64(0), e.Index())
	assert.Equal(t, uint64(1), e.Length())
	assert.Equal(t, uint64(1_099_511_627_778), e.FullValue())

	e = EpochNumberWithFractionFromFullValue(7 | 3<<24)
	assert.Equal(t, NewEpochNumberWithFraction(7, 0, 1), e)
}

func TestEpochNumberWithFractionOrdering(t *testing.T) {
	assert.False(t, NewEpochNumberWithFraction(1, 1, 2).Less(NewEpochNumberWithFraction(1, 2, 4)))
	assert.False(t, NewEpochNumberWithFraction(1, 2, 4).Less(NewEpochNumberWithFraction(1, 1, 2)))
	assert.Equal(t, 0, NewEpochNumberWithFraction(1, 1, 2).Cmp(NewEpochNumberWithFraction(1, 2, 4)))
	assert.True(t, NewEpochNumberWithFraction(1, 1, 2).Less(NewEpochNumberWithFraction(2, 0, 1)))
	assert.True(t, NewEpochNumberWithFraction(1, 1, 3).Less(NewEpochNumberWithFraction(1, 1, 2)))
	assert.Equal(t, 1, NewEpochNumberWithFraction(3, 0, 10).Cmp(NewEpochNumberWithFraction(2, 9, 10)))
}

func TestEpochNumberWithFractionString(t *testing.T) {
	e := NewEpochNumberWithFraction(10, 20, 1800)
	assert.Equal(t, "Epoch { number: 10, index: 20, length: 1800 }", e.String())
	parsed, err := ParseEpochNumberWithFraction(e.String())
	assert.NoError(t, err)
	assert.Equal(t, e, parsed)

	_, err = ParseEpochNumberWithFraction("epoch 10")
	assert.Error(t, err)
	_, err = ParseEpochNumberWithFraction("Epoch { number: 16777216, index: 0, length: 1 }")
	assert.Error(t, err)
}

func TestEpochNumberWithFractionToRational(t *testing.T) {
	assert.Equal(t, big.NewRat(5, 2), NewEpochNumberWithFraction(2, 1, 2).ToRational())
	assert.Equal(t, big.NewRat(2, 1), NewEpochNumberWithFractionUnchecked(2, 0, 0).ToRational())
}

func testEpochExt() *EpochExt {
	return &EpochExt{
		Number:          3,
		BaseBlockReward: 100,
		RemainderReward: 2,
		StartNumber:     1000,
		Length:          10,
		CompactTarget:   0x20010000,
	}
}

func TestEpochExtBlockReward(t *testing.T) {
	e := testEpochExt()
	for number, want := range map[uint64]Capacity{999: 100, 1000: 101, 1001: 101, 1002: 100, 1009: 100} {
		got, err := e.BlockReward(number)
		assert.NoError(t, err)
		assert.Equal(t, want, got, "block %d", number)
	}
}

func TestEpochExtSecondaryBlockIssuance(t *testing.T) {
	e := testEpochExt()
	// 1003 / 10 = 100 remainder 3
	for number, want := range map[uint64]Capacity{1000: 101, 1002: 101, 1003: 100, 1009: 100} {
		got, err := e.SecondaryBlockIssuance(number, 1003)
		assert.NoError(t, err)
		assert.Equal(t, want, got, "block %d", number)
	}

	var total Capacity
	for n := e.StartNumber; n <= e.EndNumber(); n++ {
		got, err := e.SecondaryBlockIssuance(n, 1003)
		assert.NoError(t, err)
		total += got
	}
	assert.Equal(t, Capacity(1003), total)

	e.Length = 0
	_, err := e.SecondaryBlockIssuance(1000, 1003)
	assert.Error(t, err)
}

func TestEpochExtNumberWithFraction(t *testing.T) {
	e := testEpochExt()
	assert.False(t, e.Contains(999))
	assert.True(t, e.Contains(1000))
	assert.True(t, e.Contains(1009))
	assert.False(t, e.Contains(1010))
	assert.Equal(t, NewEpochNumberWithFraction(3, 4, 10), e.NumberWithFraction(1004))
	assert.Equal(t, uint64(1009), e.EndNumber())
	assert.False(t, e.IsGenesis())

	assert.Panics(t, func() { e.NumberWithFraction(999) })
	assert.Panics(t, func() { e.NumberWithFraction(1010) })

	long := testEpochExt()
	long.Length = EpochLengthMaximum
	assert.True(t, long.Contains(1004))
	assert.Panics(t, func() { long.NumberWithFraction(1004) })
}
