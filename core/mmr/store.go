// Copyright (c) 2017-2020 The qitmeer developers
// license that can be found in the LICENSE file.

package mmr

import "sync"

// Store persists MMR nodes by position.
type Store[T any] interface {
	// GetElem returns the node at pos. ok is false when it is absent.
	GetElem(pos uint64) (elem T, ok bool, err error)
	// Append stores elems at pos, pos+1, ...
	Append(pos uint64, elems []T) error
}

// Merge combines two sibling nodes into their parent.
type Merge[T any] interface {
	Merge(left, right *T) (T, error)
}

// MemStore is an in memory Store.
type MemStore[T any] struct {
	mtx   sync.RWMutex
	elems map[uint64]T
}

func NewMemStore[T any]() *MemStore[T] {
	return &MemStore[T]{elems: make(map[uint64]T)}
}

func (s *MemStore[T]) GetElem(pos uint64) (T, bool, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	elem, ok := s.elems[pos]
	return elem, ok, nil
}

func (s *MemStore[T]) Append(pos uint64, elems []T) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	for i, elem := range elems {
		s.elems[pos+uint64(i)] = elem
	}
	return nil
}

type batchEntry[T any] struct {
	pos   uint64
	elems []T
}

// Batch buffers appends in memory until Commit.
type Batch[T any] struct {
	store   Store[T]
	entries []batchEntry[T]
}

func NewBatch[T any](store Store[T]) *Batch[T] {
	return &Batch[T]{store: store}
}

func (b *Batch[T]) Append(pos uint64, elems []T) {
	b.entries = append(b.entries, batchEntry[T]{pos: pos, elems: elems})
}

// GetElem looks in the buffered appends first.
func (b *Batch[T]) GetElem(pos uint64) (T, bool, error) {
	for i := len(b.entries) - 1; i >= 0; i-- {
		e := b.entries[i]
		if pos >= e.pos && pos-e.pos < uint64(len(e.elems)) {
			return e.elems[pos-e.pos], true, nil
		}
	}
	return b.store.GetElem(pos)
}

// Commit writes the buffered appends to the store, in order.
func (b *Batch[T]) Commit() error {
	for len(b.entries) > 0 {
		e := b.entries[0]
		if err := b.store.Append(e.pos, e.elems); err != nil {
			return err
		}
		b.entries = b.entries[1:]
	}
	return nil
}

func (b *Batch[T]) Store() Store[T] {
	return b.store
}
