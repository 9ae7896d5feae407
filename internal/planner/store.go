package planner

import (
	"context"
	"sync"

	"github.com/slotforge/slotforge/internal/civil"
	"github.com/slotforge/slotforge/internal/schedule"
)

// SlotStore is the persistence collaborator contract. BulkCreate may
// persist only a subset of what was requested; it returns exactly the
// records actually created and the caller decides what to do with the
// rest (blind retries risk duplicate bookings).
type SlotStore interface {
	ListByDate(ctx context.Context, date civil.Date) ([]schedule.PersistedSlot, error)
	BulkCreate(ctx context.Context, slots []schedule.CandidateSlot) ([]schedule.PersistedSlot, error)
}

// MemoryStore is an in-process SlotStore for tests and the CLI. Slots
// are bucketed by their civil date in the store's zone.
type MemoryStore struct {
	zone schedule.Zone

	mu     sync.RWMutex
	nextID int64
	byDate map[civil.Date][]schedule.PersistedSlot
}

// NewMemoryStore constructs an empty store bucketing by zone-local dates.
func NewMemoryStore(zone schedule.Zone) *MemoryStore {
	return &MemoryStore{
		zone:   zone,
		byDate: make(map[civil.Date][]schedule.PersistedSlot),
	}
}

// ListByDate returns a copy of the slots stored under the given date.
func (s *MemoryStore) ListByDate(_ context.Context, date civil.Date) ([]schedule.PersistedSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slots := s.byDate[date]
	out := make([]schedule.PersistedSlot, len(slots))
	copy(out, slots)
	return out, nil
}

// BulkCreate persists every candidate and returns the created records in
// input order.
func (s *MemoryStore) BulkCreate(_ context.Context, slots []schedule.CandidateSlot) ([]schedule.PersistedSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := make([]schedule.PersistedSlot, 0, len(slots))
	for _, c := range slots {
		s.nextID++
		p := schedule.PersistedSlot{ID: s.nextID, ServiceID: c.ServiceID, Time: c.Time}
		date := s.zone.DateOf(p.Time)
		s.byDate[date] = append(s.byDate[date], p)
		created = append(created, p)
	}
	return created, nil
}
