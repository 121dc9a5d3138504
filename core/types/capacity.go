// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"errors"
	"fmt"
	"math"
)

// ShannonsPerByte is the capacity needed to occupy one byte.
const ShannonsPerByte = 100000000

// ErrCapacityOverflow is returned by checked capacity arithmetic.
var ErrCapacityOverflow = errors.New("capacity overflow")

// Capacity is an amount of shannons.
type Capacity uint64

// CapacityBytes returns the capacity occupied by n bytes.
func CapacityBytes(n uint64) Capacity {
	return Capacity(n * ShannonsPerByte)
}

// SafeAdd returns c+o or ErrCapacityOverflow.
func (c Capacity) SafeAdd(o Capacity) (Capacity, error) {
	if uint64(c) > math.MaxUint64-uint64(o) {
		return 0, ErrCapacityOverflow
	}
	return c + o, nil
}

// SafeSub returns c-o or ErrCapacityOverflow when o exceeds c.
func (c Capacity) SafeSub(o Capacity) (Capacity, error) {
	if o > c {
		return 0, ErrCapacityOverflow
	}
	return c - o, nil
}

func (c Capacity) String() string {
	return fmt.Sprintf("%d shannons", uint64(c))
}
