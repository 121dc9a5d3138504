// Copyright (c) 2017-2018 The qitmeer developers

package benchmark

// $ go test -run='^$' -bench=. -benchmem

import (
	"path/filepath"
	"testing"

	"github.com/Qitmeer/cellverify/database"
	"github.com/Qitmeer/cellverify/database/badgerdb"
	"github.com/Qitmeer/cellverify/database/boltdb"
	"github.com/Qitmeer/cellverify/database/ldb"
)

const testCol database.Col = 1

var (
	testKey       = []byte("testKey")
	testValue     = []byte("testValue")
	testValueSize = int64(len(testValue))
)

func benchmarkGet(b *testing.B, dbType, path string) {
	db, err := database.Create(dbType, path)
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()

	batch := db.NewBatch()
	batch.Put(testCol, testKey, testValue)
	if err := batch.Write(); err != nil {
		b.Fatal(err)
	}

	b.SetBytes(testValueSize)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := db.Get(testCol, testKey); err != nil {
			b.Fatal(err)
		}
	}

	b.StopTimer()
}

func benchmarkSnapshotGet(b *testing.B, dbType, path string) {
	db, err := database.Create(dbType, path)
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()

	batch := db.NewBatch()
	batch.Put(testCol, testKey, testValue)
	if err := batch.Write(); err != nil {
		b.Fatal(err)
	}

	b.SetBytes(testValueSize)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		snap, err := db.Snapshot()
		if err != nil {
			b.Fatal(err)
		}
		if _, err := snap.Get(testCol, testKey); err != nil {
			b.Fatal(err)
		}
		snap.Release()
	}

	b.StopTimer()
}

func BenchmarkGetBadger(b *testing.B) {
	benchmarkGet(b, badgerdb.DbType, b.TempDir())
}

func BenchmarkGetLevelDB(b *testing.B) {
	benchmarkGet(b, ldb.DbType, b.TempDir())
}

func BenchmarkGetBolt(b *testing.B) {
	benchmarkGet(b, boltdb.DbType, filepath.Join(b.TempDir(), "test.db"))
}

func BenchmarkSnapshotGetBadger(b *testing.B) {
	benchmarkSnapshotGet(b, badgerdb.DbType, b.TempDir())
}

func BenchmarkSnapshotGetLevelDB(b *testing.B) {
	benchmarkSnapshotGet(b, ldb.DbType, b.TempDir())
}

func BenchmarkSnapshotGetBolt(b *testing.B) {
	benchmarkSnapshotGet(b, boltdb.DbType, filepath.Join(b.TempDir(), "test.db"))
}
