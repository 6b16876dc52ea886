package repository

import (
	"context"
	"sync"

	"github.com/anyulbade/truck-tco-calculator/internal/model"
)

// MemoryLocalStore keeps each client's calculations in process, most recent first.
type MemoryLocalStore struct {
	mu      sync.RWMutex
	records map[string][]model.SavedCalculation
}

func NewMemoryLocalStore() *MemoryLocalStore {
	return &MemoryLocalStore{records: map[string][]model.SavedCalculation{}}
}

func (s *MemoryLocalStore) Prepend(_ context.Context, clientID string, rec model.SavedCalculation) error {
	if clientID == "" {
		return model.ErrNoClient
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[clientID] = append([]model.SavedCalculation{rec}, s.records[clientID]...)
	return nil
}

func (s *MemoryLocalStore) List(_ context.Context, clientID string, limit int) ([]model.SavedCalculation, error) {
	if clientID == "" {
		return nil, model.ErrNoClient
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.records[clientID]
	n := len(records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.SavedCalculation, n)
	copy(out, records[:n])
	return out, nil
}

func (s *MemoryLocalStore) Delete(_ context.Context, clientID, id string) error {
	if clientID == "" {
		return model.ErrNoClient
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.records[clientID]
	for i, rec := range records {
		if string(rec.ID) == id {
			s.records[clientID] = append(records[:i:i], records[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func (s *MemoryLocalStore) UpdateNotes(_ context.Context, clientID, id, notes string) error {
	if clientID == "" {
		return model.ErrNoClient
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.records[clientID]
	for i := range records {
		if string(records[i].ID) == id {
			records[i].Notes = notes
			return nil
		}
	}
	return model.ErrNotFound
}
