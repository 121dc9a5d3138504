// Copyright (c) 2017-2020 The qitmeer developers
// license that can be found in the LICENSE file.

// Package mmr implements a Merkle Mountain Range, an append only
// accumulator whose nodes are persisted by position in a Store.
package mmr

import (
	"sort"

	"github.com/pkg/errors"
)

// MMR accumulates elements of type T. Pushed nodes are buffered until
// Commit.
type MMR[T comparable] struct {
	mmrSize uint64
	batch   *Batch[T]
	merge   Merge[T]
}

// New opens an MMR of mmrSize nodes over store.
func New[T comparable](mmrSize uint64, store Store[T], merge Merge[T]) *MMR[T] {
	return &MMR[T]{mmrSize: mmrSize, batch: NewBatch(store), merge: merge}
}

func (m *MMR[T]) Size() uint64 { return m.mmrSize }

func (m *MMR[T]) IsEmpty() bool { return m.mmrSize == 0 }

func (m *MMR[T]) Batch() *Batch[T] { return m.batch }

func (m *MMR[T]) doMerge(left, right *T) (T, error) {
	parent, err := m.merge.Merge(left, right)
	if err != nil {
		var zero T
		return zero, errors.Wrap(ErrMerge, err.Error())
	}
	return parent, nil
}

// findElem looks pos up in the nodes being pushed, then in the batch.
func (m *MMR[T]) findElem(pos uint64, pending []T) (T, error) {
	if pos >= m.mmrSize && pos-m.mmrSize < uint64(len(pending)) {
		return pending[pos-m.mmrSize], nil
	}
	elem, ok, err := m.batch.GetElem(pos)
	if err != nil {
		return elem, err
	}
	if !ok {
		return elem, ErrInconsistentStore
	}
	return elem, nil
}

// Push appends a leaf and the parents it completes. It returns the leaf
// position.
func (m *MMR[T]) Push(elem T) (uint64, error) {
	elems := []T{elem}
	elemPos := m.mmrSize
	height := uint32(0)
	pos := elemPos
	// the next position is a parent as long as its height is above ours
	for PosHeightInTree(pos+1) > height {
		pos++
		leftPos := pos - parentOffset(height)
		rightPos := leftPos + siblingOffset(height)
		left, err := m.findElem(leftPos, elems)
		if err != nil {
			return 0, err
		}
		right, err := m.findElem(rightPos, elems)
		if err != nil {
			return 0, err
		}
		parent, err := m.doMerge(&left, &right)
		if err != nil {
			return 0, err
		}
		elems = append(elems, parent)
		height++
	}
	m.batch.Append(elemPos, elems)
	m.mmrSize = pos + 1
	return elemPos, nil
}

func (m *MMR[T]) getElem(pos uint64) (T, error) {
	return m.findElem(pos, nil)
}

// GetRoot bags the peaks into the root.
func (m *MMR[T]) GetRoot() (T, error) {
	var zero T
	switch m.mmrSize {
	case 0:
		return zero, ErrGetRootOnEmpty
	case 1:
		return m.getElem(0)
	}
	peaks := GetPeaks(m.mmrSize)
	elems := make([]T, 0, len(peaks))
	for _, pos := range peaks {
		elem, err := m.getElem(pos)
		if err != nil {
			return zero, err
		}
		elems = append(elems, elem)
	}
	root, ok, err := m.bagPeaks(elems)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, ErrInconsistentStore
	}
	return root, nil
}

// bagPeaks folds peaks from the right: the two rightmost are merged as
// (left, right) until one remains.
func (m *MMR[T]) bagPeaks(peaks []T) (T, bool, error) {
	return bagPeaks(m.merge, peaks)
}

func bagPeaks[T any](merge Merge[T], peaks []T) (T, bool, error) {
	var zero T
	for len(peaks) > 1 {
		right := peaks[len(peaks)-1]
		left := peaks[len(peaks)-2]
		parent, err := merge.Merge(&left, &right)
		if err != nil {
			return zero, false, errors.Wrap(ErrMerge, err.Error())
		}
		peaks = append(peaks[:len(peaks)-2], parent)
	}
	if len(peaks) == 0 {
		return zero, false, nil
	}
	return peaks[0], true, nil
}

func (m *MMR[T]) genProofForPeak(proof []T, posList []uint64, peakPos uint64) ([]T, error) {
	if len(posList) == 1 && posList[0] == peakPos {
		return proof, nil
	}
	if len(posList) == 0 {
		elem, err := m.getElem(peakPos)
		if err != nil {
			return nil, err
		}
		return append(proof, elem), nil
	}

	type node struct {
		pos    uint64
		height uint32
	}
	queue := make([]node, 0, len(posList))
	for _, pos := range posList {
		queue = append(queue, node{pos: pos})
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.pos == peakPos {
			break
		}
		var sibPos, parentPos uint64
		if PosHeightInTree(n.pos+1) > n.height {
			// right child
			sibPos = n.pos - siblingOffset(n.height)
			parentPos = n.pos + 1
		} else {
			sibPos = n.pos + siblingOffset(n.height)
			parentPos = n.pos + parentOffset(n.height)
		}
		if len(queue) > 0 && queue[0].pos == sibPos {
			queue = queue[1:]
		} else {
			elem, err := m.getElem(sibPos)
			if err != nil {
				return nil, err
			}
			proof = append(proof, elem)
		}
		if parentPos < peakPos {
			queue = append(queue, node{pos: parentPos, height: n.height + 1})
		}
	}
	return proof, nil
}

// GenProof returns the proof of the nodes at posList.
func (m *MMR[T]) GenProof(posList []uint64) (*MerkleProof[T], error) {
	if len(posList) == 0 {
		return nil, ErrGenProofForInvalidLeaves
	}
	if m.mmrSize == 1 && len(posList) == 1 && posList[0] == 0 {
		return NewMerkleProof[T](m.mmrSize, nil, m.merge), nil
	}
	posList = append([]uint64(nil), posList...)
	sort.Slice(posList, func(i, j int) bool { return posList[i] < posList[j] })

	var proof []T
	baggingTrack := 0
	for _, peakPos := range GetPeaks(m.mmrSize) {
		n := 0
		for n < len(posList) && posList[n] <= peakPos {
			n++
		}
		peakList := posList[:n]
		posList = posList[n:]
		if len(peakList) == 0 {
			baggingTrack++
		} else {
			baggingTrack = 0
		}
		var err error
		proof, err = m.genProofForPeak(proof, peakList, peakPos)
		if err != nil {
			return nil, err
		}
	}
	if len(posList) > 0 {
		return nil, ErrGenProofForInvalidLeaves
	}
	if baggingTrack > 1 {
		rhs := append([]T(nil), proof[len(proof)-baggingTrack:]...)
		proof = proof[:len(proof)-baggingTrack]
		bagged, _, err := m.bagPeaks(rhs)
		if err != nil {
			return nil, err
		}
		proof = append(proof, bagged)
	}
	return NewMerkleProof[T](m.mmrSize, proof, m.merge), nil
}

// Commit flushes the pushed nodes to the store.
func (m *MMR[T]) Commit() error {
	return m.batch.Commit()
}
