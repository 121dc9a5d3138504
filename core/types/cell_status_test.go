package types

import (
	"testing"

	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/stretchr/testify/assert"
)

func TestTxMeta(t *testing.T) {
	meta, err := NewTxMeta(5, NewEpochNumberWithFraction(0, 5, 10), hash.HashH([]byte("b")), 3, false)
	assert.NoError(t, err)
	assert.Equal(t, 3, meta.Len())
	dead, ok := meta.IsDead(0)
	assert.True(t, ok)
	assert.False(t, dead)

	_, err = NewTxMeta(5, meta.Epoch, meta.BlockHash, -1, false)
	assert.Error(t, err)

	dead, ok = meta.IsDead(1)
	assert.True(t, ok)
	assert.False(t, dead)

	assert.True(t, meta.SetDead(1))
	dead, ok = meta.IsDead(1)
	assert.True(t, ok)
	assert.True(t, dead)

	_, ok = meta.IsDead(3)
	assert.False(t, ok)
	assert.False(t, meta.SetDead(3))

	assert.False(t, meta.AllDead())
	meta.SetDead(0)
	meta.SetDead(2)
	assert.True(t, meta.AllDead())

	clone := meta.Clone()
	meta.UnsetDead(0)
	dead, _ = clone.IsDead(0)
	assert.True(t, dead)

	restored, err := NewTxMetaFromDeadCells(meta.BlockNumber, meta.Epoch, meta.BlockHash,
		meta.Cellbase, meta.DeadCells(), meta.Len())
	assert.NoError(t, err)
	assert.Equal(t, meta.DeadCells(), restored.DeadCells())

	_, err = NewTxMetaFromDeadCells(0, meta.Epoch, meta.BlockHash, false, nil, 3)
	assert.Error(t, err)
}

func TestCellStatus(t *testing.T) {
	meta := &CellMeta{OutPoint: NewOutPoint(hash.ZeroHash, 1)}
	live := LiveCell(meta)
	assert.True(t, live.IsLive())
	assert.Equal(t, meta, live.Meta)
	assert.True(t, DeadCell().IsDead())
	assert.Nil(t, DeadCell().Meta)
	assert.True(t, UnknownCell().IsUnknown())
	assert.Equal(t, "Unknown", UnknownCell().String())
	assert.Equal(t, "Live", live.String())
}
