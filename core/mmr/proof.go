// Copyright (c) 2017-2020 The qitmeer developers
// license that can be found in the LICENSE file.

package mmr

import (
	"sort"

	"github.com/pkg/errors"
)

// Leaf is a node with its position.
type Leaf[T any] struct {
	Pos  uint64
	Elem T
}

// MerkleProof proves that leaves belong to an MMR of a given size.
type MerkleProof[T comparable] struct {
	mmrSize uint64
	proof   []T
	merge   Merge[T]
}

func NewMerkleProof[T comparable](mmrSize uint64, proof []T, merge Merge[T]) *MerkleProof[T] {
	return &MerkleProof[T]{mmrSize: mmrSize, proof: proof, merge: merge}
}

func (p *MerkleProof[T]) MMRSize() uint64 { return p.mmrSize }

func (p *MerkleProof[T]) ProofItems() []T { return p.proof }

// CalculateRoot rebuilds the root from leaves and the proof items.
func (p *MerkleProof[T]) CalculateRoot(leaves []Leaf[T]) (T, error) {
	var zero T
	peaks, err := p.calculatePeaks(leaves)
	if err != nil {
		return zero, err
	}
	root, ok, err := bagPeaks(p.merge, peaks)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, ErrCorruptedProof
	}
	return root, nil
}

// Verify reports whether leaves with the proof hash to root.
func (p *MerkleProof[T]) Verify(root T, leaves []Leaf[T]) (bool, error) {
	calculated, err := p.CalculateRoot(leaves)
	if err != nil {
		return false, err
	}
	return calculated == root, nil
}

type proofIter[T any] struct {
	items []T
}

func (it *proofIter[T]) next() (T, bool) {
	if len(it.items) == 0 {
		var zero T
		return zero, false
	}
	item := it.items[0]
	it.items = it.items[1:]
	return item, true
}

func (p *MerkleProof[T]) calculatePeaks(leaves []Leaf[T]) ([]T, error) {
	if len(leaves) == 0 {
		return nil, ErrCorruptedProof
	}
	if p.mmrSize == 1 && len(leaves) == 1 && leaves[0].Pos == 0 {
		return []T{leaves[0].Elem}, nil
	}
	leaves = append([]Leaf[T](nil), leaves...)
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].Pos < leaves[j].Pos })

	it := &proofIter[T]{items: p.proof}
	peaks := GetPeaks(p.mmrSize)
	hashes := make([]T, 0, len(peaks)+1)
peaksLoop:
	for _, peakPos := range peaks {
		n := 0
		for n < len(leaves) && leaves[n].Pos <= peakPos {
			n++
		}
		peakLeaves := leaves[:n]
		leaves = leaves[n:]

		var peakRoot T
		switch {
		case len(peakLeaves) == 1 && peakLeaves[0].Pos == peakPos:
			peakRoot = peakLeaves[0].Elem
		case len(peakLeaves) == 0:
			item, ok := it.next()
			if !ok {
				// every right peak is bagged
				break peaksLoop
			}
			peakRoot = item
		default:
			var err error
			peakRoot, err = p.calculatePeakRoot(peakLeaves, peakPos, it)
			if err != nil {
				return nil, err
			}
		}
		hashes = append(hashes, peakRoot)
	}
	if len(leaves) > 0 {
		return nil, ErrCorruptedProof
	}
	if item, ok := it.next(); ok {
		hashes = append(hashes, item)
	}
	if len(it.items) > 0 {
		return nil, ErrCorruptedProof
	}
	return hashes, nil
}

func (p *MerkleProof[T]) calculatePeakRoot(leaves []Leaf[T], peakPos uint64, it *proofIter[T]) (T, error) {
	var zero T
	type node struct {
		pos    uint64
		elem   T
		height uint32
	}
	queue := make([]node, 0, len(leaves))
	for _, l := range leaves {
		queue = append(queue, node{pos: l.Pos, elem: l.Elem})
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.pos == peakPos {
			return n.elem, nil
		}
		nextHeight := PosHeightInTree(n.pos + 1)
		isRight := nextHeight > n.height
		var sibPos, parentPos uint64
		if isRight {
			sibPos = n.pos - siblingOffset(n.height)
			parentPos = n.pos + 1
		} else {
			sibPos = n.pos + siblingOffset(n.height)
			parentPos = n.pos + parentOffset(n.height)
		}

		var sibling T
		if len(queue) > 0 && queue[0].pos == sibPos {
			sibling = queue[0].elem
			queue = queue[1:]
		} else {
			item, ok := it.next()
			if !ok {
				return zero, ErrCorruptedProof
			}
			sibling = item
		}

		var parent T
		var err error
		if isRight {
			parent, err = p.merge.Merge(&sibling, &n.elem)
		} else {
			parent, err = p.merge.Merge(&n.elem, &sibling)
		}
		if err != nil {
			return zero, errors.Wrap(ErrMerge, err.Error())
		}
		if parentPos >= peakPos {
			return parent, nil
		}
		queue = append(queue, node{pos: parentPos, elem: parent, height: n.height + 1})
	}
	return zero, ErrCorruptedProof
}
