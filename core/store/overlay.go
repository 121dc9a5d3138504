// Copyright (c) 2017-2020 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"bytes"
	"sort"

	"github.com/Qitmeer/cellverify/database"
)

// overlay is a database.Reader that sees the pending writes of a
// transaction on top of the committed state. A nil value marks a delete.
type overlay struct {
	base  database.Reader
	dirty map[database.Col]map[string][]byte
}

func newOverlay(base database.Reader) *overlay {
	return &overlay{base: base, dirty: make(map[database.Col]map[string][]byte)}
}

func (o *overlay) put(col database.Col, key, value []byte) {
	m, ok := o.dirty[col]
	if !ok {
		m = make(map[string][]byte)
		o.dirty[col] = m
	}
	if value == nil {
		value = []byte{}
	}
	m[string(key)] = value
}

func (o *overlay) delete(col database.Col, key []byte) {
	m, ok := o.dirty[col]
	if !ok {
		m = make(map[string][]byte)
		o.dirty[col] = m
	}
	m[string(key)] = nil
}

func (o *overlay) Get(col database.Col, key []byte) ([]byte, error) {
	if v, ok := o.dirty[col][string(key)]; ok {
		if v == nil {
			return nil, database.ErrNotFound
		}
		return v, nil
	}
	return o.base.Get(col, key)
}

type pendingKV struct {
	k, v []byte
}

func (o *overlay) Iter(col database.Col, from []byte, dir database.Direction) (database.Iterator, error) {
	base, err := o.base.Iter(col, from, dir)
	if err != nil {
		return nil, err
	}
	var pend []pendingKV
	for k, v := range o.dirty[col] {
		kb := []byte(k)
		if from != nil {
			c := bytes.Compare(kb, from)
			if (dir == database.Forward && c < 0) || (dir == database.Reverse && c > 0) {
				continue
			}
		}
		pend = append(pend, pendingKV{k: kb, v: v})
	}
	sort.Slice(pend, func(i, j int) bool {
		c := bytes.Compare(pend[i].k, pend[j].k)
		if dir == database.Reverse {
			return c > 0
		}
		return c < 0
	})
	return &mergedIterator{base: base, pend: pend, dir: dir}, nil
}

func (o *overlay) reset() {
	o.dirty = make(map[database.Col]map[string][]byte)
}

// mergedIterator walks the committed keys and the pending keys of one
// column in order. Pending entries shadow committed ones.
type mergedIterator struct {
	base    database.Iterator
	baseOK  bool
	started bool
	pend    []pendingKV
	pi      int
	dir     database.Direction
	key     []byte
	value   []byte
}

func (it *mergedIterator) Next() bool {
	if !it.started {
		it.baseOK = it.base.Next()
		it.started = true
	}
	for {
		havePend := it.pi < len(it.pend)
		if !it.baseOK && !havePend {
			it.key, it.value = nil, nil
			return false
		}
		var c int
		switch {
		case !havePend:
			c = -1
		case !it.baseOK:
			c = 1
		default:
			c = bytes.Compare(it.base.Key(), it.pend[it.pi].k)
			if it.dir == database.Reverse {
				c = -c
			}
		}
		if c < 0 {
			it.key = append([]byte(nil), it.base.Key()...)
			it.value = append([]byte(nil), it.base.Value()...)
			it.baseOK = it.base.Next()
			return true
		}
		p := it.pend[it.pi]
		it.pi++
		if c == 0 {
			it.baseOK = it.base.Next()
		}
		if p.v == nil {
			continue
		}
		it.key, it.value = p.k, p.v
		return true
	}
}

func (it *mergedIterator) Key() []byte   { return it.key }
func (it *mergedIterator) Value() []byte { return it.value }
func (it *mergedIterator) Error() error  { return it.base.Error() }
func (it *mergedIterator) Release()      { it.base.Release() }
