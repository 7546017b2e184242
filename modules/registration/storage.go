package registration

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Storage persists submitted registrations.
type Storage interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id uuid.UUID) (Record, error)
	Ping(ctx context.Context) error
}

// MemoryStorage keeps records in process memory.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[uuid.UUID]Record)}
}

func (s *MemoryStorage) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRecord, rec.ID)
	}
	s.records[rec.ID] = rec
	return nil
}

func (s *MemoryStorage) Get(_ context.Context, id uuid.UUID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return rec, nil
}

func (s *MemoryStorage) Ping(context.Context) error { return nil }

// All returns every record ordered by creation time.
func (s *MemoryStorage) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.SortedFunc(maps.Values(s.records), func(a, b Record) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
