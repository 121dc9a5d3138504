// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verification

import (
	"fmt"
	"time"

	"github.com/Qitmeer/cellverify/core/types"
	"github.com/Qitmeer/cellverify/core/types/pow"
	"github.com/Qitmeer/cellverify/log"
	"github.com/Qitmeer/cellverify/metrics"
	"github.com/lightningnetwork/lnd/clock"
)

// AllowedFutureBlockTime is how far, in milliseconds, a header timestamp
// may run ahead of the local clock.
const AllowedFutureBlockTime = 15 * 1000

var (
	verifyLog = log.New("module", "verification")

	headerVerifyTimer   = metrics.NewTimer("verification/header")
	headerRejectedMeter = metrics.NewMeter("verification/header/rejected")
)

// HeaderVerifier checks a header against its parent: version, proof of
// work, parent, number and timestamp, stopping at the first failure.
type HeaderVerifier struct {
	pow        pow.Engine
	medianTime MedianTimeContext
	clock      clock.Clock
}

// NewHeaderVerifier returns a verifier reading "now" from clk.
func NewHeaderVerifier(medianTime MedianTimeContext, engine pow.Engine, clk clock.Clock) *HeaderVerifier {
	return &HeaderVerifier{pow: engine, medianTime: medianTime, clock: clk}
}

// Verify runs every header check on target. An UnknownParentError means
// the parent has to be fetched before the header can be judged.
func (v *HeaderVerifier) Verify(target HeaderResolver) error {
	start := time.Now()
	defer headerVerifyTimer.UpdateSince(start)

	header := target.Header()
	err := v.verify(header, target)
	if err != nil {
		headerRejectedMeter.Mark(1)
		logReject("header", header.Hash().String(), err)
	}
	return err
}

func (v *HeaderVerifier) verify(header *types.HeaderView, target HeaderResolver) error {
	if err := NewVersionVerifier(header).Verify(); err != nil {
		return err
	}
	if err := NewPowVerifier(header, v.pow).Verify(); err != nil {
		return err
	}
	parent := target.Parent()
	if parent == nil {
		return UnknownParentError{ParentHash: header.ParentHash()}
	}
	if err := NewNumberVerifier(parent, header).Verify(); err != nil {
		return err
	}
	return NewTimestampVerifier(v.medianTime, header, v.now()).Verify()
}

// VerifyGenesis checks the genesis header, which has no parent: only the
// version and the proof of work apply.
func (v *HeaderVerifier) VerifyGenesis(header *types.HeaderView) error {
	if err := NewVersionVerifier(header).Verify(); err != nil {
		return err
	}
	return NewPowVerifier(header, v.pow).Verify()
}

func (v *HeaderVerifier) now() uint64 {
	return uint64(v.clock.Now().UnixMilli())
}

type VersionVerifier struct {
	header *types.HeaderView
}

func NewVersionVerifier(header *types.HeaderView) VersionVerifier {
	return VersionVerifier{header: header}
}

func (v VersionVerifier) Verify() error {
	if v.header.Version() != types.HeaderVersion {
		str := fmt.Sprintf("header version %d, expected %d", v.header.Version(), types.HeaderVersion)
		return ruleError(ErrHeaderVersion, str)
	}
	return nil
}

type PowVerifier struct {
	header *types.HeaderView
	pow    pow.Engine
}

func NewPowVerifier(header *types.HeaderView, engine pow.Engine) PowVerifier {
	return PowVerifier{header: header, pow: engine}
}

func (v PowVerifier) Verify() error {
	if !v.pow.Verify(v.header) {
		str := fmt.Sprintf("nonce %d does not satisfy target %#x under %s",
			v.header.Nonce(), v.header.CompactTarget(), v.pow.Type())
		return ruleError(ErrInvalidNonce, str)
	}
	return nil
}

type NumberVerifier struct {
	parent *types.HeaderView
	header *types.HeaderView
}

func NewNumberVerifier(parent, header *types.HeaderView) NumberVerifier {
	return NumberVerifier{parent: parent, header: header}
}

func (v NumberVerifier) Verify() error {
	if v.header.Number() != v.parent.Number()+1 {
		return NumberError{Expected: v.parent.Number() + 1, Actual: v.header.Number()}
	}
	return nil
}

// TimestampVerifier requires median < timestamp <= now + AllowedFutureBlockTime,
// the median being taken over the parent and its ancestors. Genesis is
// exempt.
type TimestampVerifier struct {
	header     *types.HeaderView
	medianTime MedianTimeContext
	now        uint64
}

func NewTimestampVerifier(medianTime MedianTimeContext, header *types.HeaderView, now uint64) TimestampVerifier {
	return TimestampVerifier{header: header, medianTime: medianTime, now: now}
}

func (v TimestampVerifier) Verify() error {
	if v.header.IsGenesis() {
		return nil
	}
	median := v.medianTime.BlockMedianTime(v.header.ParentHash())
	if v.header.Timestamp() <= median {
		return TimestampError{ErrorCode: ErrBlockTimeTooOld, Min: median, Actual: v.header.Timestamp()}
	}
	limit := v.now + AllowedFutureBlockTime
	if v.header.Timestamp() > limit {
		return TimestampError{ErrorCode: ErrBlockTimeTooNew, Max: limit, Actual: v.header.Timestamp()}
	}
	return nil
}

func logReject(what, hash string, err error) {
	code, ok := ErrorCodeOf(err)
	if !ok {
		verifyLog.Debug("Verification failed", "target", what, "hash", hash, "err", err)
		return
	}
	verifyLog.Debug("Rejected", "target", what, "hash", hash, "kind", code.Kind(), "code", code, "err", err)
}
