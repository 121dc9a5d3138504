// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

const (
	// HeaderVersion is the only header version accepted by consensus.
	HeaderVersion uint32 = 0

	// TxVersion is the current latest supported transaction version.
	TxVersion uint32 = 0

	// ProposalShortIDSize is the length of a proposal short id.
	ProposalShortIDSize = 10

	// CellbaseIndex is the out point index carried by the cellbase input.
	CellbaseIndex uint32 = 0xffffffff
)
