// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verification

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Qitmeer/cellverify/core/mmr"
	"github.com/Qitmeer/cellverify/core/types"
	"github.com/Qitmeer/cellverify/core/types/pow"
	"github.com/lightningnetwork/lnd/clock"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testMedian uint64 = 1_600_000_000_000
	testNow    uint64 = testMedian + 60_000
)

func testClock() clock.Clock {
	return clock.NewTestClock(time.UnixMilli(int64(testNow)))
}

func headerPair(parentNumber, number, timestamp uint64) (*types.HeaderView, *types.HeaderView) {
	parent := types.NewHeaderBuilder().Number(parentNumber).Timestamp(testMedian).Build()
	header := types.NewHeaderBuilder().
		ParentHash(parent.Hash()).
		Number(number).
		Timestamp(timestamp).
		Build()
	return parent, header
}

func newResolver(ctrl *gomock.Controller, header, parent *types.HeaderView) *MockHeaderResolver {
	r := NewMockHeaderResolver(ctrl)
	r.EXPECT().Header().Return(header).AnyTimes()
	r.EXPECT().Parent().Return(parent).AnyTimes()
	return r
}

func TestTimestampBoundary(t *testing.T) {
	tests := []struct {
		name      string
		timestamp uint64
		want      error
	}{
		{name: "median plus one", timestamp: testMedian + 1},
		{name: "median", timestamp: testMedian,
			want: TimestampError{ErrorCode: ErrBlockTimeTooOld, Min: testMedian, Actual: testMedian}},
		{name: "below median", timestamp: testMedian - 1,
			want: TimestampError{ErrorCode: ErrBlockTimeTooOld, Min: testMedian, Actual: testMedian - 1}},
		{name: "now plus skew", timestamp: testNow + AllowedFutureBlockTime},
		{name: "past skew", timestamp: testNow + AllowedFutureBlockTime + 1,
			want: TimestampError{ErrorCode: ErrBlockTimeTooNew, Max: testNow + 15000, Actual: testNow + 15001}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			parent, header := headerPair(9, 10, test.timestamp)
			median := NewMockMedianTimeContext(ctrl)
			median.EXPECT().BlockMedianTime(parent.Hash()).Return(testMedian)

			v := NewHeaderVerifier(median, pow.NewEngine(pow.DUMMY), testClock())
			err := v.Verify(newResolver(ctrl, header, parent))
			if test.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, test.want, err)
		})
	}
}

func TestTimestampSkipsGenesis(t *testing.T) {
	ctrl := gomock.NewController(t)
	median := NewMockMedianTimeContext(ctrl)
	header := types.NewHeaderBuilder().Timestamp(0).Build()
	assert.NoError(t, NewTimestampVerifier(median, header, testNow).Verify())
}

func TestNumberMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	parent, header := headerPair(9, 12, testMedian+1)
	median := NewMockMedianTimeContext(ctrl)

	v := NewHeaderVerifier(median, pow.NewEngine(pow.DUMMY), testClock())
	err := v.Verify(newResolver(ctrl, header, parent))
	assert.Equal(t, NumberError{Expected: 10, Actual: 12}, err)
	assert.Equal(t, HeaderErrorKind, ErrNumberMismatch.Kind())
}

func TestUnknownParent(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, header := headerPair(9, 10, testMedian+1)
	median := NewMockMedianTimeContext(ctrl)

	v := NewHeaderVerifier(median, pow.NewEngine(pow.DUMMY), testClock())
	err := v.Verify(newResolver(ctrl, header, nil))
	assert.Equal(t, UnknownParentError{ParentHash: header.ParentHash()}, err)
	assert.True(t, IsUnknownParent(err))
	assert.True(t, IsUnknownParent(pkgerrors.Wrap(err, "sync")))
	assert.False(t, IsUnknownParent(NumberError{}))
}

func TestHeaderCheckOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	median := NewMockMedianTimeContext(ctrl)

	// version is checked before anything else, the parent is never asked
	bad := types.NewHeaderBuilder().Version(types.HeaderVersion + 1).Number(10).Build()
	r := NewMockHeaderResolver(ctrl)
	r.EXPECT().Header().Return(bad)
	v := NewHeaderVerifier(median, pow.NewEngine(pow.DUMMY), testClock())
	requireCode(t, v.Verify(r), ErrHeaderVersion)

	// proof of work comes second
	zeroTarget := types.NewHeaderBuilder().Number(10).CompactTarget(0).Build()
	r = NewMockHeaderResolver(ctrl)
	r.EXPECT().Header().Return(zeroTarget)
	v = NewHeaderVerifier(median, pow.NewEngine(pow.BLAKE2B), testClock())
	requireCode(t, v.Verify(r), ErrInvalidNonce)
}

func TestVerifyGenesis(t *testing.T) {
	ctrl := gomock.NewController(t)
	v := NewHeaderVerifier(NewMockMedianTimeContext(ctrl), pow.NewEngine(pow.DUMMY), testClock())
	assert.NoError(t, v.VerifyGenesis(types.NewHeaderBuilder().Build()))
	requireCode(t, v.VerifyGenesis(types.NewHeaderBuilder().Version(1).Build()), ErrHeaderVersion)
}

func TestHeaderResolverWrapper(t *testing.T) {
	ctrl := gomock.NewController(t)
	parent, header := headerPair(9, 10, testMedian+1)

	provider := NewMockHeaderProvider(ctrl)
	provider.EXPECT().GetBlockHeader(parent.Hash()).Return(parent, nil)
	w, err := NewHeaderResolverWrapper(header, provider)
	require.NoError(t, err)
	assert.Equal(t, header, w.Header())
	assert.Equal(t, parent, w.Parent())

	provider.EXPECT().GetBlockHeader(parent.Hash()).Return(nil, nil)
	w, err = NewHeaderResolverWrapper(header, provider)
	require.NoError(t, err)
	assert.Nil(t, w.Parent())

	fail := errors.New("disk")
	provider.EXPECT().GetBlockHeader(parent.Hash()).Return(nil, fail)
	_, err = NewHeaderResolverWrapper(header, provider)
	assert.Equal(t, fail, err)
}

func TestErrorCodeOf(t *testing.T) {
	_, ok := ErrorCodeOf(nil)
	assert.False(t, ok)
	_, ok = ErrorCodeOf(errors.New("plain"))
	assert.False(t, ok)

	code, ok := ErrorCodeOf(pkgerrors.Wrap(mmr.ErrInconsistentStore, "append"))
	assert.True(t, ok)
	assert.Equal(t, ErrInconsistentStore, code)
	assert.Equal(t, StoreErrorKind, code.Kind())

	code, ok = ErrorCodeOf(ruleError(ErrTransactionsRoot, "x"))
	assert.True(t, ok)
	assert.Equal(t, BlockErrorKind, code.Kind())
	assert.Equal(t, "ErrTransactionsRoot", code.String())
	assert.Equal(t, "Unknown ErrorCode (99)", ErrorCode(99).String())

	for c := ErrHeaderVersion; c <= ErrInconsistentStore; c++ {
		assert.False(t, strings.HasPrefix(c.String(), "Unknown ErrorCode"), "code %d", int(c))
	}
}
