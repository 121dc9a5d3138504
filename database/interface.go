// Copyright (c) 2017-2018 The qitmeer developers

// Package database defines a column scoped key value store with point in
// time snapshots and atomic batches. Backends live in sub packages and
// register themselves with RegisterDriver.
package database

import (
	"bytes"
	"errors"
)

// Col names a column. Keys of different columns never collide.
type Col byte

// Direction of an iteration.
type Direction byte

const (
	Forward Direction = iota
	Reverse
)

// ErrNotFound is returned by Get for missing keys.
var ErrNotFound = errors.New("not found")

// Reader is the read side shared by a database and its snapshots.
type Reader interface {
	// Get returns the value of key in col, or ErrNotFound.
	Get(col Col, key []byte) ([]byte, error)

	// Iter walks col from the first key >= from (Forward) or the last key
	// <= from (Reverse). A nil from starts at the first or last key.
	Iter(col Col, from []byte, dir Direction) (Iterator, error)
}

// Iterator walks the keys of one column. It must be released.
type Iterator interface {
	Next() bool
	// Key and Value are valid until the next call to Next.
	Key() []byte
	Value() []byte
	Error() error
	Release()
}

// Batch collects writes applied atomically by Write.
type Batch interface {
	Put(col Col, key, value []byte)
	Delete(col Col, key []byte)
	Len() int
	Write() error
	Reset()
}

// Snapshot is a read handle frozen at the time it was taken. Writes that
// happen afterwards are never observed.
type Snapshot interface {
	Reader
	Release()
}

// DB is an open database.
type DB interface {
	Reader
	NewBatch() Batch
	Snapshot() (Snapshot, error)
	Close() error
}

// PrefixIter calls fn for every key of col starting with prefix, in order,
// until fn returns false.
func PrefixIter(r Reader, col Col, prefix []byte, fn func(key, value []byte) bool) error {
	it, err := r.Iter(col, prefix, Forward)
	if err != nil {
		return err
	}
	defer it.Release()
	for it.Next() {
		if !bytes.HasPrefix(it.Key(), prefix) {
			break
		}
		if !fn(it.Key(), it.Value()) {
			break
		}
	}
	return it.Error()
}
