package student

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/zhouzirui/students/backend/internal/model/student"
)

var (
	ErrNotReady           = errors.New("student directory not ready")
	ErrAlreadyInitialized = errors.New("student directory already initialized")
	ErrStudentNotFound    = errors.New("student not found")
)

// Fetcher loads the full student list from the data source.
type Fetcher interface {
	FetchStudents(ctx context.Context) ([]student.Student, error)
}

// Service answers student queries over a snapshot loaded once at startup.
type Service struct {
	fetcher Fetcher
	logger  *zap.Logger
	loaded  atomic.Pointer[snapshotStore]
}

// snapshotStore pins the store published by Initialize.
type snapshotStore struct {
	store student.Store
}

// NewService returns an uninitialized Service. A nil logger disables logging.
func NewService(fetcher Fetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher: fetcher,
		logger:  logger.Named("students"),
	}
}

// Initialize fetches the students and publishes them as the service's
// snapshot. It succeeds at most once; after a failure the service stays
// uninitialized.
func (s *Service) Initialize(ctx context.Context) error {
	if s.loaded.Load() != nil {
		return ErrAlreadyInitialized
	}

	items, err := s.fetcher.FetchStudents(ctx)
	if err != nil {
		return fmt.Errorf("load students: %w", err)
	}

	store := student.NewMemoryStore(items)
	if !s.loaded.CompareAndSwap(nil, &snapshotStore{store: store}) {
		return ErrAlreadyInitialized
	}

	snap := store.Snapshot()
	s.logger.Info("student directory ready",
		zap.Int("students", snap.Count),
		zap.String("snapshot", snap.ID),
	)
	return nil
}

// Ready reports whether Initialize has completed successfully.
func (s *Service) Ready() bool {
	return s.loaded.Load() != nil
}

func (s *Service) current() student.Store {
	if loaded := s.loaded.Load(); loaded != nil {
		return loaded.store
	}
	return nil
}

// Snapshot returns the metadata of the loaded snapshot.
func (s *Service) Snapshot() (student.Snapshot, bool) {
	store := s.current()
	if store == nil {
		return student.Snapshot{}, false
	}
	return store.Snapshot(), true
}

// FindAll returns every student in upstream order.
func (s *Service) FindAll() ([]student.Student, error) {
	store := s.current()
	if store == nil {
		return nil, ErrNotReady
	}
	return store.List(), nil
}

// FindByMatriculationNumber looks up a single student.
func (s *Service) FindByMatriculationNumber(mnr int) (student.Student, error) {
	store := s.current()
	if store == nil {
		return student.Student{}, ErrNotReady
	}
	item, ok := store.FindByMatriculationNumber(mnr)
	if !ok {
		return student.Student{}, ErrStudentNotFound
	}
	return item, nil
}
