// Copyright (c) 2017-2020 The qitmeer developers
// license that can be found in the LICENSE file.

package mmr

import "math/bits"

// Positions are 0 based and count every node, leaves and inner nodes, in
// insertion order.

// LeafIndexToMMRSize returns the size of the MMR holding leaves 0..index.
func LeafIndexToMMRSize(index uint64) uint64 {
	leaves := index + 1
	peaks := uint64(bits.OnesCount64(leaves))
	return 2*leaves - peaks
}

// LeafIndexToPos returns the position of leaf index.
func LeafIndexToPos(index uint64) uint64 {
	return LeafIndexToMMRSize(index) - uint64(bits.TrailingZeros64(index+1)) - 1
}

// PosHeightInTree returns the height of the node at pos, leaves being 0.
func PosHeightInTree(pos uint64) uint32 {
	pos++
	allOnes := func(n uint64) bool {
		return n != 0 && bits.OnesCount64(n) == 64-bits.LeadingZeros64(n)
	}
	for !allOnes(pos) {
		// jump to the same height in the left subtree
		msb := uint64(1) << uint(63-bits.LeadingZeros64(pos))
		pos -= msb - 1
	}
	return uint32(63 - bits.LeadingZeros64(pos))
}

func parentOffset(height uint32) uint64 {
	return 2 << height
}

func siblingOffset(height uint32) uint64 {
	return (2 << height) - 1
}

func peakPosByHeight(height uint32) uint64 {
	return (1 << (height + 1)) - 2
}

func leftPeakHeightPos(mmrSize uint64) (uint32, uint64) {
	height := uint32(1)
	prevPos := uint64(0)
	pos := peakPosByHeight(height)
	for pos < mmrSize {
		height++
		prevPos = pos
		pos = peakPosByHeight(height)
	}
	return height - 1, prevPos
}

func rightPeak(height uint32, pos, mmrSize uint64) (uint32, uint64, bool) {
	pos += siblingOffset(height)
	for pos > mmrSize-1 {
		if height == 0 {
			return 0, 0, false
		}
		// move to the left child
		pos -= parentOffset(height - 1)
		height--
	}
	return height, pos, true
}

// GetPeaks returns the peak positions of an MMR of mmrSize, left to right.
func GetPeaks(mmrSize uint64) []uint64 {
	if mmrSize == 0 {
		return nil
	}
	height, pos := leftPeakHeightPos(mmrSize)
	peaks := []uint64{pos}
	for height > 0 {
		var ok bool
		height, pos, ok = rightPeak(height, pos, mmrSize)
		if !ok {
			break
		}
		peaks = append(peaks, pos)
	}
	return peaks
}
