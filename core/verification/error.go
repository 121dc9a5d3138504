// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verification

import (
	"fmt"

	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/Qitmeer/cellverify/core/mmr"
	"github.com/pkg/errors"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific consensus error.
const (
	// ErrHeaderVersion indicates the header version is not the accepted
	// one.
	ErrHeaderVersion ErrorCode = iota

	// ErrInvalidNonce indicates the proof of work does not meet the target
	// of the header.
	ErrInvalidNonce

	// ErrUnknownParent indicates the parent header could not be resolved.
	// The caller may fetch it and verify again.
	ErrUnknownParent

	// ErrNumberMismatch indicates the header number is not its parent
	// number plus one.
	ErrNumberMismatch

	// ErrBlockTimeTooOld indicates the timestamp is not after the median
	// time of the ancestors.
	ErrBlockTimeTooOld

	// ErrBlockTimeTooNew indicates the timestamp is too far in the future.
	ErrBlockTimeTooNew

	// ErrCellbaseInvalidQuantity indicates a block without exactly one
	// cellbase, or a cellbase without exactly one output.
	ErrCellbaseInvalidQuantity

	// ErrCellbaseInvalidPosition indicates the cellbase is not the first
	// transaction.
	ErrCellbaseInvalidPosition

	// ErrCellbaseInvalidInput indicates the cellbase input does not commit
	// to the block number.
	ErrCellbaseInvalidInput

	// ErrCellbaseInvalidOutputData indicates cellbase output data that is
	// not empty.
	ErrCellbaseInvalidOutputData

	// ErrCommitTransactionDuplicate indicates two transactions with the
	// same hash.
	ErrCommitTransactionDuplicate

	// ErrProposalTransactionDuplicate indicates a repeated proposal id.
	ErrProposalTransactionDuplicate

	// ErrTransactionsRoot indicates the transactions root or proposals
	// hash of the header does not match the body.
	ErrTransactionsRoot

	// ErrExceededMaximumBlockBytes indicates a block larger than allowed.
	ErrExceededMaximumBlockBytes

	// ErrExceededMaximumProposalsLimit indicates too many proposals.
	ErrExceededMaximumProposalsLimit

	// ErrEpochNumberMismatch indicates the epoch field of the header is not
	// the position of the block in its epoch.
	ErrEpochNumberMismatch

	// ErrEpochTargetMismatch indicates the compact target of the header is
	// not the one of its epoch.
	ErrEpochTargetMismatch

	// ErrInconsistentStore indicates a write through a read only store.
	ErrInconsistentStore
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrHeaderVersion:                 "ErrHeaderVersion",
	ErrInvalidNonce:                  "ErrInvalidNonce",
	ErrUnknownParent:                 "ErrUnknownParent",
	ErrNumberMismatch:                "ErrNumberMismatch",
	ErrBlockTimeTooOld:               "ErrBlockTimeTooOld",
	ErrBlockTimeTooNew:               "ErrBlockTimeTooNew",
	ErrCellbaseInvalidQuantity:       "ErrCellbaseInvalidQuantity",
	ErrCellbaseInvalidPosition:       "ErrCellbaseInvalidPosition",
	ErrCellbaseInvalidInput:          "ErrCellbaseInvalidInput",
	ErrCellbaseInvalidOutputData:     "ErrCellbaseInvalidOutputData",
	ErrCommitTransactionDuplicate:    "ErrCommitTransactionDuplicate",
	ErrProposalTransactionDuplicate:  "ErrProposalTransactionDuplicate",
	ErrTransactionsRoot:              "ErrTransactionsRoot",
	ErrExceededMaximumBlockBytes:     "ErrExceededMaximumBlockBytes",
	ErrExceededMaximumProposalsLimit: "ErrExceededMaximumProposalsLimit",
	ErrEpochNumberMismatch:           "ErrEpochNumberMismatch",
	ErrEpochTargetMismatch:           "ErrEpochTargetMismatch",
	ErrInconsistentStore:             "ErrInconsistentStore",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// ErrorKind groups error codes by the component that raises them.
type ErrorKind int

const (
	HeaderErrorKind ErrorKind = iota
	BlockErrorKind
	CellbaseErrorKind
	EpochErrorKind
	StoreErrorKind
)

func (k ErrorKind) String() string {
	switch k {
	case HeaderErrorKind:
		return "Header"
	case BlockErrorKind:
		return "Block"
	case CellbaseErrorKind:
		return "Cellbase"
	case EpochErrorKind:
		return "Epoch"
	case StoreErrorKind:
		return "Store"
	}
	return fmt.Sprintf("Unknown ErrorKind (%d)", int(k))
}

// Kind returns the group of the code.
func (e ErrorCode) Kind() ErrorKind {
	switch {
	case e <= ErrBlockTimeTooNew:
		return HeaderErrorKind
	case e <= ErrCellbaseInvalidOutputData:
		return CellbaseErrorKind
	case e <= ErrExceededMaximumProposalsLimit:
		return BlockErrorKind
	case e <= ErrEpochTargetMismatch:
		return EpochErrorKind
	}
	return StoreErrorKind
}

// RuleError identifies a rule violation that carries no values beyond its
// code.
type RuleError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	return e.Description
}

func (e RuleError) Code() ErrorCode {
	return e.ErrorCode
}

// ruleError creates an RuleError given a set of arguments.
func ruleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}

// NumberError is returned for a header whose number does not follow its
// parent.
type NumberError struct {
	Expected uint64
	Actual   uint64
}

func (e NumberError) Error() string {
	return fmt.Sprintf("number mismatch: expected %d, actual %d", e.Expected, e.Actual)
}

func (e NumberError) Code() ErrorCode {
	return ErrNumberMismatch
}

// TimestampError is returned for a timestamp outside (Min, Max]. Only the
// bound that was violated is set.
type TimestampError struct {
	ErrorCode ErrorCode
	Min       uint64
	Max       uint64
	Actual    uint64
}

func (e TimestampError) Error() string {
	if e.ErrorCode == ErrBlockTimeTooOld {
		return fmt.Sprintf("block time too old: min %d, actual %d", e.Min, e.Actual)
	}
	return fmt.Sprintf("block time too new: max %d, actual %d", e.Max, e.Actual)
}

func (e TimestampError) Code() ErrorCode {
	return e.ErrorCode
}

// UnknownParentError is returned when the parent header of the target is
// not available.
type UnknownParentError struct {
	ParentHash hash.Hash
}

func (e UnknownParentError) Error() string {
	return fmt.Sprintf("unknown parent %s", e.ParentHash)
}

func (e UnknownParentError) Code() ErrorCode {
	return ErrUnknownParent
}

// EpochError is returned for a block whose epoch field or compact target
// disagrees with its epoch. Targets are widened to uint64.
type EpochError struct {
	ErrorCode ErrorCode
	Expected  uint64
	Actual    uint64
}

func (e EpochError) Error() string {
	if e.ErrorCode == ErrEpochTargetMismatch {
		return fmt.Sprintf("epoch target mismatch: expected %#x, actual %#x", e.Expected, e.Actual)
	}
	return fmt.Sprintf("epoch number mismatch: expected %d, actual %d", e.Expected, e.Actual)
}

func (e EpochError) Code() ErrorCode {
	return e.ErrorCode
}

type codedError interface {
	error
	Code() ErrorCode
}

// ErrorCodeOf extracts the code of a consensus error. Store errors from a
// read only MMR map to ErrInconsistentStore.
func ErrorCodeOf(err error) (ErrorCode, bool) {
	if err == nil {
		return 0, false
	}
	var coded codedError
	if errors.As(err, &coded) {
		return coded.Code(), true
	}
	if errors.Is(err, mmr.ErrInconsistentStore) {
		return ErrInconsistentStore, true
	}
	return 0, false
}

// IsUnknownParent reports whether err only reflects missing local state.
func IsUnknownParent(err error) bool {
	code, ok := ErrorCodeOf(err)
	return ok && code == ErrUnknownParent
}
