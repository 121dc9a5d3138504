// Copyright (c) 2017-2018 The qitmeer developers

// Package boltdb is the bbolt backend. Every column is a bucket.
package boltdb

import (
	"bytes"

	"github.com/Qitmeer/cellverify/database"
	"github.com/Qitmeer/cellverify/log"
	"github.com/coreos/bbolt"
)

const DbType = "bolt"

// initialMmapSize keeps read transactions from blocking the writer on a
// remap while the file is small.
const initialMmapSize = 64 << 20

var dbLog = log.New("module", "database", "backend", DbType)

func init() {
	if err := database.RegisterDriver(database.Driver{
		DbType: DbType,
		Create: func(path string) (database.DB, error) { return Open(path) },
	}); err != nil {
		panic(err)
	}
}

func bucketName(col database.Col) []byte {
	return []byte{'c', byte(col)}
}

type BoltDB struct {
	db *bolt.DB
}

// Open opens or creates the database file at path.
func Open(path string) (*BoltDB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{InitialMmapSize: initialMmapSize})
	if err != nil {
		return nil, err
	}
	dbLog.Info("Opened database", "path", path)
	return &BoltDB{db: db}, nil
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

func get(tx *bolt.Tx, col database.Col, key []byte) ([]byte, error) {
	bucket := tx.Bucket(bucketName(col))
	if bucket == nil {
		return nil, database.ErrNotFound
	}
	v := bucket.Get(key)
	if v == nil {
		return nil, database.ErrNotFound
	}
	return copyBytes(v), nil
}

func (b *BoltDB) Get(col database.Col, key []byte) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		var err error
		value, err = get(tx, col, key)
		return err
	})
	return value, err
}

// Iter holds a read transaction until the iterator is released.
func (b *BoltDB) Iter(col database.Col, from []byte, dir database.Direction) (database.Iterator, error) {
	tx, err := b.db.Begin(false)
	if err != nil {
		return nil, err
	}
	return newIterator(tx, col, from, dir, true), nil
}

func (b *BoltDB) NewBatch() database.Batch {
	return &boltBatch{db: b.db}
}

// Snapshot is a read only transaction.
func (b *BoltDB) Snapshot() (database.Snapshot, error) {
	tx, err := b.db.Begin(false)
	if err != nil {
		return nil, err
	}
	return &boltSnapshot{tx: tx}, nil
}

func (b *BoltDB) Close() error {
	return b.db.Close()
}

type boltSnapshot struct {
	tx *bolt.Tx
}

func (s *boltSnapshot) Get(col database.Col, key []byte) ([]byte, error) {
	return get(s.tx, col, key)
}

func (s *boltSnapshot) Iter(col database.Col, from []byte, dir database.Direction) (database.Iterator, error) {
	return newIterator(s.tx, col, from, dir, false), nil
}

func (s *boltSnapshot) Release() {
	if err := s.tx.Rollback(); err != nil {
		dbLog.Warn("Release snapshot", "err", err)
	}
}

type batchOp struct {
	col    database.Col
	key    []byte
	value  []byte
	delete bool
}

type boltBatch struct {
	db  *bolt.DB
	ops []batchOp
}

func (b *boltBatch) Put(col database.Col, key, value []byte) {
	b.ops = append(b.ops, batchOp{col: col, key: copyBytes(key), value: copyBytes(value)})
}

func (b *boltBatch) Delete(col database.Col, key []byte) {
	b.ops = append(b.ops, batchOp{col: col, key: copyBytes(key), delete: true})
}

func (b *boltBatch) Len() int { return len(b.ops) }
func (b *boltBatch) Reset()   { b.ops = nil }

func (b *boltBatch) Write() error {
	return b.db.Update(func(tx *bolt.Tx) error {
		for _, op := range b.ops {
			bucket, err := tx.CreateBucketIfNotExists(bucketName(op.col))
			if err != nil {
				return err
			}
			if op.delete {
				err = bucket.Delete(op.key)
			} else {
				err = bucket.Put(op.key, op.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

type boltIterator struct {
	tx      *bolt.Tx
	ownTx   bool
	cursor  *bolt.Cursor
	from    []byte
	dir     database.Direction
	started bool
	key     []byte
	value   []byte
}

func newIterator(tx *bolt.Tx, col database.Col, from []byte, dir database.Direction, ownTx bool) *boltIterator {
	it := &boltIterator{tx: tx, ownTx: ownTx, from: from, dir: dir}
	if bucket := tx.Bucket(bucketName(col)); bucket != nil {
		it.cursor = bucket.Cursor()
	}
	return it
}

func (i *boltIterator) first() ([]byte, []byte) {
	if i.dir == database.Forward {
		if i.from == nil {
			return i.cursor.First()
		}
		return i.cursor.Seek(i.from)
	}
	if i.from == nil {
		return i.cursor.Last()
	}
	k, v := i.cursor.Seek(i.from)
	if k == nil {
		return i.cursor.Last()
	}
	if bytes.Equal(k, i.from) {
		return k, v
	}
	return i.cursor.Prev()
}

func (i *boltIterator) Next() bool {
	if i.cursor == nil {
		return false
	}
	var k, v []byte
	switch {
	case !i.started:
		i.started = true
		k, v = i.first()
	case i.dir == database.Forward:
		k, v = i.cursor.Next()
	default:
		k, v = i.cursor.Prev()
	}
	i.key, i.value = k, v
	return k != nil
}

func (i *boltIterator) Key() []byte   { return i.key }
func (i *boltIterator) Value() []byte { return i.value }
func (i *boltIterator) Error() error  { return nil }

func (i *boltIterator) Release() {
	if i.ownTx {
		if err := i.tx.Rollback(); err != nil {
			dbLog.Warn("Release iterator", "err", err)
		}
	}
}
