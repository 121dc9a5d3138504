package badgerdb

import (
	"testing"

	"github.com/Qitmeer/cellverify/database"
	"github.com/Qitmeer/cellverify/database/dbtest"
	"github.com/stretchr/testify/require"
)

func TestSuite(t *testing.T) {
	dbtest.RunSuite(t, func(t *testing.T) database.DB {
		db, err := database.Create(DbType, t.TempDir())
		require.NoError(t, err)
		return db
	})
}
