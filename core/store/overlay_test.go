// Copyright (c) 2017-2020 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"testing"

	"github.com/Qitmeer/cellverify/database"
	"github.com/Qitmeer/cellverify/database/ldb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, r database.Reader, from []byte, dir database.Direction) []string {
	it, err := r.Iter(ColumnMeta, from, dir)
	require.NoError(t, err)
	defer it.Release()
	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key())+"="+string(it.Value()))
	}
	require.NoError(t, it.Error())
	return keys
}

func TestOverlayMergesPendingWrites(t *testing.T) {
	db, err := ldb.OpenMem()
	require.NoError(t, err)
	defer db.Close()

	b := db.NewBatch()
	for _, k := range []string{"b", "d", "f"} {
		b.Put(ColumnMeta, []byte(k), []byte("base"))
	}
	require.NoError(t, b.Write())

	o := newOverlay(db)
	o.put(ColumnMeta, []byte("a"), []byte("new"))
	o.put(ColumnMeta, []byte("d"), []byte("new"))
	o.delete(ColumnMeta, []byte("f"))
	o.put(ColumnMeta, []byte("g"), []byte("new"))
	o.put(ColumnIndex, []byte("c"), []byte("other"))

	v, err := o.Get(ColumnMeta, []byte("d"))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
	_, err = o.Get(ColumnMeta, []byte("f"))
	assert.Equal(t, database.ErrNotFound, err)
	v, err = o.Get(ColumnMeta, []byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("base"), v)

	assert.Equal(t, []string{"a=new", "b=base", "d=new", "g=new"},
		collect(t, o, nil, database.Forward))
	assert.Equal(t, []string{"d=new", "g=new"},
		collect(t, o, []byte("c"), database.Forward))
	assert.Equal(t, []string{"g=new", "d=new", "b=base", "a=new"},
		collect(t, o, nil, database.Reverse))
	assert.Equal(t, []string{"d=new", "b=base", "a=new"},
		collect(t, o, []byte("e"), database.Reverse))

	o.reset()
	assert.Equal(t, []string{"b=base", "d=base", "f=base"},
		collect(t, o, nil, database.Forward))
}
