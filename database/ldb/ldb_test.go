package ldb

import (
	"testing"

	"github.com/Qitmeer/cellverify/database"
	"github.com/Qitmeer/cellverify/database/dbtest"
	"github.com/stretchr/testify/require"
)

func TestMemSuite(t *testing.T) {
	dbtest.RunSuite(t, func(t *testing.T) database.DB {
		db, err := OpenMem()
		require.NoError(t, err)
		return db
	})
}

func TestFileSuite(t *testing.T) {
	dbtest.RunSuite(t, func(t *testing.T) database.DB {
		db, err := database.Create(DbType, t.TempDir())
		require.NoError(t, err)
		return db
	})
}
