// Copyright (c) 2017-2018 The qitmeer developers

// Package badgerdb is the badger backend. Columns are key prefixes.
package badgerdb

import (
	"bytes"

	"github.com/Qitmeer/cellverify/database"
	"github.com/Qitmeer/cellverify/log"
	"github.com/dgraph-io/badger"
)

const DbType = "badger"

// maxKeyTail bounds the keys stored after the column byte; it is used to
// seek past the end of a column when iterating in reverse.
const maxKeyTail = 128

var dbLog = log.New("module", "database", "backend", DbType)

func init() {
	if err := database.RegisterDriver(database.Driver{
		DbType: DbType,
		Create: func(path string) (database.DB, error) { return Open(path) },
	}); err != nil {
		panic(err)
	}
}

type BadgerDB struct {
	db *badger.DB
}

// Open opens or creates the database in directory path.
func Open(path string) (*BadgerDB, error) {
	opt := badger.DefaultOptions
	opt.Dir = path
	opt.ValueDir = path
	db, err := badger.Open(opt)
	if err != nil {
		return nil, err
	}
	dbLog.Info("Opened database", "path", path)
	return &BadgerDB{db: db}, nil
}

func colKey(col database.Col, key []byte) []byte {
	k := make([]byte, 1+len(key))
	k[0] = byte(col)
	copy(k[1:], key)
	return k
}

func get(txn *badger.Txn, col database.Col, key []byte) ([]byte, error) {
	item, err := txn.Get(colKey(col, key))
	if err == badger.ErrKeyNotFound {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func (b *BadgerDB) Get(col database.Col, key []byte) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		value, err = get(txn, col, key)
		return err
	})
	return value, err
}

// Iter holds a read transaction until the iterator is released.
func (b *BadgerDB) Iter(col database.Col, from []byte, dir database.Direction) (database.Iterator, error) {
	return newIterator(b.db.NewTransaction(false), col, from, dir, true), nil
}

func (b *BadgerDB) NewBatch() database.Batch {
	return &badgerBatch{db: b.db}
}

// Snapshot is a read only transaction.
func (b *BadgerDB) Snapshot() (database.Snapshot, error) {
	return &badgerSnapshot{txn: b.db.NewTransaction(false)}, nil
}

func (b *BadgerDB) Close() error {
	return b.db.Close()
}

type badgerSnapshot struct {
	txn *badger.Txn
}

func (s *badgerSnapshot) Get(col database.Col, key []byte) ([]byte, error) {
	return get(s.txn, col, key)
}

func (s *badgerSnapshot) Iter(col database.Col, from []byte, dir database.Direction) (database.Iterator, error) {
	return newIterator(s.txn, col, from, dir, false), nil
}

func (s *badgerSnapshot) Release() {
	s.txn.Discard()
}

type batchOp struct {
	key    []byte
	value  []byte
	delete bool
}

type badgerBatch struct {
	db  *badger.DB
	ops []batchOp
}

func (b *badgerBatch) Put(col database.Col, key, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	b.ops = append(b.ops, batchOp{key: colKey(col, key), value: v})
}

func (b *badgerBatch) Delete(col database.Col, key []byte) {
	b.ops = append(b.ops, batchOp{key: colKey(col, key), delete: true})
}

func (b *badgerBatch) Len() int { return len(b.ops) }
func (b *badgerBatch) Reset()   { b.ops = nil }

func apply(txn *badger.Txn, op batchOp) error {
	if op.delete {
		return txn.Delete(op.key)
	}
	return txn.Set(op.key, op.value)
}

// Write commits the batch, splitting it over several transactions when it
// is too big for one.
func (b *badgerBatch) Write() error {
	txn := b.db.NewTransaction(true)
	defer func() { txn.Discard() }()
	for _, op := range b.ops {
		err := apply(txn, op)
		if err == badger.ErrTxnTooBig {
			if err := txn.Commit(nil); err != nil {
				return err
			}
			dbLog.Debug("Split oversized batch")
			txn = b.db.NewTransaction(true)
			err = apply(txn, op)
		}
		if err != nil {
			return err
		}
	}
	return txn.Commit(nil)
}

type badgerIterator struct {
	txn     *badger.Txn
	ownTxn  bool
	it      *badger.Iterator
	prefix  []byte
	from    []byte
	dir     database.Direction
	started bool
	key     []byte
	value   []byte
	err     error
}

func newIterator(txn *badger.Txn, col database.Col, from []byte, dir database.Direction, ownTxn bool) *badgerIterator {
	opts := badger.DefaultIteratorOptions
	opts.Reverse = dir == database.Reverse
	return &badgerIterator{
		txn:    txn,
		ownTxn: ownTxn,
		it:     txn.NewIterator(opts),
		prefix: []byte{byte(col)},
		from:   from,
		dir:    dir,
	}
}

func (i *badgerIterator) seekKey() []byte {
	if i.from != nil {
		return colKey(database.Col(i.prefix[0]), i.from)
	}
	if i.dir == database.Forward {
		return i.prefix
	}
	return append(append([]byte(nil), i.prefix...), bytes.Repeat([]byte{0xff}, maxKeyTail)...)
}

func (i *badgerIterator) Next() bool {
	if !i.started {
		i.started = true
		i.it.Seek(i.seekKey())
	} else {
		i.it.Next()
	}
	if !i.it.ValidForPrefix(i.prefix) {
		return false
	}
	item := i.it.Item()
	i.key = append([]byte(nil), item.Key()[1:]...)
	i.value, i.err = item.ValueCopy(nil)
	return i.err == nil
}

func (i *badgerIterator) Key() []byte   { return i.key }
func (i *badgerIterator) Value() []byte { return i.value }
func (i *badgerIterator) Error() error  { return i.err }

func (i *badgerIterator) Release() {
	i.it.Close()
	if i.ownTxn {
		i.txn.Discard()
	}
}
