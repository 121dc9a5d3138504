// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verification

import (
	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/Qitmeer/cellverify/core/types"
)

//go:generate mockgen -source=interface.go -destination=interface_mock.go -package=verification

// MedianTimeContext supplies the median timestamp, in milliseconds, of a
// block and its recent ancestors.
type MedianTimeContext interface {
	BlockMedianTime(blockHash hash.Hash) uint64
}

// HeaderResolver is the target of a HeaderVerifier: the header and its
// parent, nil when unknown.
type HeaderResolver interface {
	Header() *types.HeaderView
	Parent() *types.HeaderView
}

// HeaderProvider looks up stored headers.
type HeaderProvider interface {
	GetBlockHeader(blockHash hash.Hash) (*types.HeaderView, error)
}

// HeaderResolverWrapper resolves the parent of a header once, from a
// HeaderProvider.
type HeaderResolverWrapper struct {
	header *types.HeaderView
	parent *types.HeaderView
}

func NewHeaderResolverWrapper(header *types.HeaderView, provider HeaderProvider) (*HeaderResolverWrapper, error) {
	parent, err := provider.GetBlockHeader(header.ParentHash())
	if err != nil {
		return nil, err
	}
	return &HeaderResolverWrapper{header: header, parent: parent}, nil
}

func (w *HeaderResolverWrapper) Header() *types.HeaderView { return w.header }
func (w *HeaderResolverWrapper) Parent() *types.HeaderView { return w.parent }
