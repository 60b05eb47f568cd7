package student

import (
	"time"

	"github.com/google/uuid"
)

// Store exposes student retrieval for the query service.
type Store interface {
	List() []Student
	FindByMatriculationNumber(mnr int) (Student, bool)
	Snapshot() Snapshot
}

// MemoryStore implements Store over a slice that is never written after construction.
type MemoryStore struct {
	items    []Student
	snapshot Snapshot
}

// NewMemoryStore takes ownership of items and stamps the snapshot metadata.
func NewMemoryStore(items []Student) *MemoryStore {
	if items == nil {
		items = []Student{}
	}
	return &MemoryStore{
		items: items,
		snapshot: Snapshot{
			ID:       uuid.NewString(),
			Count:    len(items),
			LoadedAt: time.Now().UTC(),
		},
	}
}

// List returns the backing slice in upstream order. Callers must treat it as read-only.
func (s *MemoryStore) List() []Student {
	return s.items
}

// FindByMatriculationNumber returns the first student with the given number.
func (s *MemoryStore) FindByMatriculationNumber(mnr int) (Student, bool) {
	for _, item := range s.items {
		if item.MatriculationNumber == mnr {
			return item, true
		}
	}
	return Student{}, false
}

// Snapshot reports when and what was loaded.
func (s *MemoryStore) Snapshot() Snapshot {
	return s.snapshot
}
