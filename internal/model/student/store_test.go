package student

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Store = (*MemoryStore)(nil)

func TestMemoryStoreListPreservesOrder(t *testing.T) {
	items := []Student{
		{MatriculationNumber: 3, Name: "C"},
		{MatriculationNumber: 1, Name: "A"},
		{MatriculationNumber: 2, Name: "B"},
	}
	store := NewMemoryStore(items)

	assert.Equal(t, items, store.List())
	assert.Equal(t, store.List(), store.List())
}

func TestMemoryStoreFindEveryRecord(t *testing.T) {
	items := []Student{
		{MatriculationNumber: 0, Name: "Max"},
		{MatriculationNumber: 7, Name: "Erika"},
	}
	store := NewMemoryStore(items)

	for _, want := range items {
		got, ok := store.FindByMatriculationNumber(want.MatriculationNumber)
		require.True(t, ok, "mnr %d", want.MatriculationNumber)
		assert.Equal(t, want, got)
	}
}

func TestMemoryStoreFindMissing(t *testing.T) {
	store := NewMemoryStore([]Student{{MatriculationNumber: 1, Name: "A"}})

	_, ok := store.FindByMatriculationNumber(42)
	assert.False(t, ok)
}

func TestMemoryStoreSnapshot(t *testing.T) {
	store := NewMemoryStore(nil)

	snap := store.Snapshot()
	assert.NotEmpty(t, snap.ID)
	assert.Zero(t, snap.Count)
	assert.False(t, snap.LoadedAt.IsZero())
	assert.NotNil(t, store.List())
	assert.Equal(t, snap, store.Snapshot())
}
