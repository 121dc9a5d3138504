// Copyright (c) 2017-2018 The qitmeer developers

// Package dbtest holds the behaviour every database backend must share.
package dbtest

import (
	"testing"

	"github.com/Qitmeer/cellverify/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	colA database.Col = 1
	colB database.Col = 2
)

// RunSuite runs the backend tests against databases returned by open.
func RunSuite(t *testing.T, open func(t *testing.T) database.DB) {
	tests := []struct {
		name string
		fn   func(t *testing.T, db database.DB)
	}{
		{"GetPutDelete", testGetPutDelete},
		{"ColumnIsolation", testColumnIsolation},
		{"IterForward", testIterForward},
		{"IterReverse", testIterReverse},
		{"PrefixIter", testPrefixIter},
		{"SnapshotIsolation", testSnapshotIsolation},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			db := open(t)
			defer db.Close()
			test.fn(t, db)
		})
	}
}

func put(t *testing.T, db database.DB, col database.Col, kv ...string) {
	batch := db.NewBatch()
	for i := 0; i+1 < len(kv); i += 2 {
		batch.Put(col, []byte(kv[i]), []byte(kv[i+1]))
	}
	require.NoError(t, batch.Write())
}

func keys(t *testing.T, r database.Reader, col database.Col, from []byte, dir database.Direction) []string {
	it, err := r.Iter(col, from, dir)
	require.NoError(t, err)
	defer it.Release()
	var ks []string
	for it.Next() {
		ks = append(ks, string(it.Key())+"="+string(it.Value()))
	}
	require.NoError(t, it.Error())
	return ks
}

func testGetPutDelete(t *testing.T, db database.DB) {
	_, err := db.Get(colA, []byte("k"))
	assert.Equal(t, database.ErrNotFound, err)

	batch := db.NewBatch()
	batch.Put(colA, []byte("k"), []byte("v"))
	batch.Put(colA, []byte("k2"), []byte("v2"))
	assert.Equal(t, 2, batch.Len())
	require.NoError(t, batch.Write())

	v, err := db.Get(colA, []byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	batch = db.NewBatch()
	batch.Delete(colA, []byte("k"))
	require.NoError(t, batch.Write())
	_, err = db.Get(colA, []byte("k"))
	assert.Equal(t, database.ErrNotFound, err)

	batch.Reset()
	assert.Equal(t, 0, batch.Len())
}

func testColumnIsolation(t *testing.T, db database.DB) {
	put(t, db, colA, "k", "a")
	put(t, db, colB, "k", "b")
	v, err := db.Get(colA, []byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("a"), v)
	v, err = db.Get(colB, []byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("b"), v)
	assert.Equal(t, []string{"k=a"}, keys(t, db, colA, nil, database.Forward))
	assert.Empty(t, keys(t, db, database.Col(9), nil, database.Forward))
}

func testIterForward(t *testing.T, db database.DB) {
	put(t, db, colA, "a", "1", "b", "2", "d", "4")
	put(t, db, colB, "c", "x")
	assert.Equal(t, []string{"a=1", "b=2", "d=4"}, keys(t, db, colA, nil, database.Forward))
	assert.Equal(t, []string{"b=2", "d=4"}, keys(t, db, colA, []byte("b"), database.Forward))
	assert.Equal(t, []string{"d=4"}, keys(t, db, colA, []byte("c"), database.Forward))
	assert.Empty(t, keys(t, db, colA, []byte("e"), database.Forward))
}

func testIterReverse(t *testing.T, db database.DB) {
	put(t, db, colA, "a", "1", "b", "2", "d", "4")
	put(t, db, colB, "c", "x")
	assert.Equal(t, []string{"d=4", "b=2", "a=1"}, keys(t, db, colA, nil, database.Reverse))
	assert.Equal(t, []string{"b=2", "a=1"}, keys(t, db, colA, []byte("b"), database.Reverse))
	assert.Equal(t, []string{"b=2", "a=1"}, keys(t, db, colA, []byte("c"), database.Reverse))
	assert.Equal(t, []string{"d=4", "b=2", "a=1"}, keys(t, db, colA, []byte("z"), database.Reverse))
}

func testPrefixIter(t *testing.T, db database.DB) {
	put(t, db, colA, "tx1:0", "a", "tx1:1", "b", "tx2:0", "c")
	var got []string
	err := database.PrefixIter(db, colA, []byte("tx1:"), func(k, v []byte) bool {
		got = append(got, string(k))
		return true
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"tx1:0", "tx1:1"}, got)

	got = nil
	err = database.PrefixIter(db, colA, []byte("tx"), func(k, v []byte) bool {
		got = append(got, string(k))
		return len(got) < 2
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"tx1:0", "tx1:1"}, got)
}

func testSnapshotIsolation(t *testing.T, db database.DB) {
	put(t, db, colA, "k", "old")
	snap, err := db.Snapshot()
	require.NoError(t, err)

	put(t, db, colA, "k", "new", "k2", "v2")

	v, err := snap.Get(colA, []byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("old"), v)
	_, err = snap.Get(colA, []byte("k2"))
	assert.Equal(t, database.ErrNotFound, err)
	assert.Equal(t, []string{"k=old"}, keys(t, snap, colA, nil, database.Forward))
	snap.Release()

	v, err = db.Get(colA, []byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}
