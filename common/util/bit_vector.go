// Copyright (c) 2017-2020 The qitmeer developers
// license that can be found in the LICENSE file.

package util

import (
	"errors"
	"math/bits"
)

//invalid bit length
var errInvalidLength = errors.New("invalid length")

// BitVector is a fixed length little-endian bit set. Bit i lives in byte i/8
// at position i%8.
type BitVector struct {
	len int
	b   []byte
}

// New returns a cleared vector of l bits.
func New(l int) (*BitVector, error) {
	if l < 0 {
		return nil, errInvalidLength
	}
	return &BitVector{len: l, b: make([]byte, (l+7)/8)}, nil
}

// NewFromBytes wraps b as a vector of l bits. The slice is copied.
func NewFromBytes(b []byte, l int) (*BitVector, error) {
	if l < 0 || len(b)*8 < l {
		return nil, errInvalidLength
	}
	cp := make([]byte, (l+7)/8)
	copy(cp, b)
	return &BitVector{len: l, b: cp}, nil
}

// Len returns the number of addressable bits.
func (bv *BitVector) Len() int {
	return bv.len
}

// Get reports bit i. The second result is false when i is out of range.
func (bv *BitVector) Get(i int) (bool, bool) {
	if i < 0 || i >= bv.len {
		return false, false
	}
	return bv.b[i/8]&(0x1<<uint(i%8)) != 0, true
}

// Set assigns bit i and reports whether i was in range.
func (bv *BitVector) Set(i int, v bool) bool {
	if i < 0 || i >= bv.len {
		return false
	}
	if v {
		bv.b[i/8] |= 1 << uint(i%8)
	} else {
		bv.b[i/8] &^= 1 << uint(i%8)
	}
	return true
}

// CountOnes returns the number of set bits.
func (bv *BitVector) CountOnes() int {
	n := 0
	for _, v := range bv.b {
		n += bits.OnesCount8(v)
	}
	return n
}

// Clone returns an independent copy.
func (bv *BitVector) Clone() *BitVector {
	cp := make([]byte, len(bv.b))
	copy(cp, bv.b)
	return &BitVector{len: bv.len, b: cp}
}

//return bytes
func (bv *BitVector) Bytes() []byte {
	return bv.b
}
