// Copyright (c) 2017-2018 The qitmeer developers

// Package ldb is the goleveldb backend. Columns are key prefixes.
package ldb

import (
	"bytes"
	"fmt"

	"github.com/Qitmeer/cellverify/database"
	"github.com/Qitmeer/cellverify/log"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const DbType = "leveldb"

var dbLog = log.New("module", "database", "backend", DbType)

func init() {
	if err := database.RegisterDriver(database.Driver{
		DbType: DbType,
		Create: func(path string) (database.DB, error) { return Open(path) },
	}); err != nil {
		panic(err)
	}
}

// reader is implemented by both *leveldb.DB and *leveldb.Snapshot.
type reader interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
	NewIterator(slice *util.Range, ro *opt.ReadOptions) iterator.Iterator
}

type LevelDB struct {
	db *leveldb.DB
}

// Open opens or creates the database at path, recovering it if the
// manifest is corrupted.
func Open(path string) (*LevelDB, error) {
	opts := &opt.Options{
		OpenFilesCacheCapacity: 16,
		Strict:                 opt.DefaultStrict,
		Compression:            opt.NoCompression,
		BlockCacheCapacity:     8 * opt.MiB,
		WriteBuffer:            4 * opt.MiB,
	}
	db, err := leveldb.OpenFile(path, opts)
	if err != nil {
		dbLog.Warn("Open failed, recovering", "path", path, "err", err)
		if db, err = leveldb.RecoverFile(path, nil); err != nil {
			return nil, fmt.Errorf("err while recoverfile %s : %v", path, err)
		}
	}
	dbLog.Info("Opened database", "path", path)
	return &LevelDB{db: db}, nil
}

// OpenMem opens a database held in memory.
func OpenMem() (*LevelDB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &LevelDB{db: db}, nil
}

func colKey(col database.Col, key []byte) []byte {
	k := make([]byte, 1+len(key))
	k[0] = byte(col)
	copy(k[1:], key)
	return k
}

func get(r reader, col database.Col, key []byte) ([]byte, error) {
	v, err := r.Get(colKey(col, key), nil)
	if err == leveldb.ErrNotFound {
		return nil, database.ErrNotFound
	}
	return v, err
}

func iter(r reader, col database.Col, from []byte, dir database.Direction) database.Iterator {
	return &ldbIterator{
		it:   r.NewIterator(util.BytesPrefix([]byte{byte(col)}), nil),
		from: from,
		col:  col,
		dir:  dir,
	}
}

func (l *LevelDB) Get(col database.Col, key []byte) ([]byte, error) {
	return get(l.db, col, key)
}

func (l *LevelDB) Iter(col database.Col, from []byte, dir database.Direction) (database.Iterator, error) {
	return iter(l.db, col, from, dir), nil
}

func (l *LevelDB) NewBatch() database.Batch {
	return &ldbBatch{db: l.db, b: new(leveldb.Batch)}
}

func (l *LevelDB) Snapshot() (database.Snapshot, error) {
	snap, err := l.db.GetSnapshot()
	if err != nil {
		return nil, err
	}
	return &ldbSnapshot{snap: snap}, nil
}

func (l *LevelDB) Close() error {
	return l.db.Close()
}

type ldbSnapshot struct {
	snap *leveldb.Snapshot
}

func (s *ldbSnapshot) Get(col database.Col, key []byte) ([]byte, error) {
	return get(s.snap, col, key)
}

func (s *ldbSnapshot) Iter(col database.Col, from []byte, dir database.Direction) (database.Iterator, error) {
	return iter(s.snap, col, from, dir), nil
}

func (s *ldbSnapshot) Release() {
	s.snap.Release()
}

type ldbBatch struct {
	db *leveldb.DB
	b  *leveldb.Batch
}

func (b *ldbBatch) Put(col database.Col, key, value []byte) { b.b.Put(colKey(col, key), value) }
func (b *ldbBatch) Delete(col database.Col, key []byte)     { b.b.Delete(colKey(col, key)) }
func (b *ldbBatch) Len() int                                { return b.b.Len() }
func (b *ldbBatch) Reset()                                  { b.b.Reset() }

func (b *ldbBatch) Write() error {
	return b.db.Write(b.b, nil)
}

type ldbIterator struct {
	it      iterator.Iterator
	from    []byte
	col     database.Col
	dir     database.Direction
	started bool
}

func (i *ldbIterator) first() bool {
	if i.dir == database.Forward {
		if i.from == nil {
			return i.it.First()
		}
		return i.it.Seek(colKey(i.col, i.from))
	}
	if i.from == nil {
		return i.it.Last()
	}
	seek := colKey(i.col, i.from)
	if !i.it.Seek(seek) {
		return i.it.Last()
	}
	if bytes.Equal(i.it.Key(), seek) {
		return true
	}
	return i.it.Prev()
}

func (i *ldbIterator) Next() bool {
	if !i.started {
		i.started = true
		return i.first()
	}
	if i.dir == database.Forward {
		return i.it.Next()
	}
	return i.it.Prev()
}

func (i *ldbIterator) Key() []byte   { return i.it.Key()[1:] }
func (i *ldbIterator) Value() []byte { return i.it.Value() }
func (i *ldbIterator) Error() error  { return i.it.Error() }
func (i *ldbIterator) Release()      { i.it.Release() }
