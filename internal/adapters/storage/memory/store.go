// Package memory provides in-process implementations of the rate and
// history stores for local profiles and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prmf/premium-api/internal/domain"
)

type rateKey struct {
	age        int
	familySize domain.FamilySize
}

// RateStore is an in-memory rate table keyed by (age, family size).
type RateStore struct {
	mu    sync.RWMutex
	rates map[rateKey]domain.RateRecord
}

// NewRateStore creates an empty in-memory rate store.
func NewRateStore() *RateStore {
	return &RateStore{
		rates: make(map[rateKey]domain.RateRecord),
	}
}

// Find returns the rate row for the exact (age, familySize) key.
func (s *RateStore) Find(_ context.Context, age int, familySize domain.FamilySize) (*domain.RateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rate, ok := s.rates[rateKey{age: age, familySize: familySize}]
	if !ok {
		return nil, domain.NewRateNotFoundError(age, familySize)
	}

	return &rate, nil
}

// ReplaceAll swaps the table contents.
func (s *RateStore) ReplaceAll(_ context.Context, rates []domain.RateRecord) error {
	next := make(map[rateKey]domain.RateRecord, len(rates))
	for _, r := range rates {
		next[rateKey{age: r.Age, familySize: r.FamilySize}] = r
	}

	s.mu.Lock()
	s.rates = next
	s.mu.Unlock()

	return nil
}

// Name implements ports.HealthChecker.
func (s *RateStore) Name() string { return "memory-rates" }

// Check implements ports.HealthChecker. The in-process table is always
// reachable.
func (s *RateStore) Check(_ context.Context) error { return nil }

// HistoryStore is an in-memory append-only quote history.
type HistoryStore struct {
	mu      sync.RWMutex
	records []domain.HistoryRecord
}

// NewHistoryStore creates an empty in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Append stores a copy of the record, assigning an ID and timestamp
// when the caller did not set them.
func (s *HistoryStore) Append(_ context.Context, record *domain.HistoryRecord) error {
	r := *record
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	s.records = append(s.records, r)
	s.mu.Unlock()

	return nil
}

// ListByOwner returns the owner's records, newest first, capped at limit.
func (s *HistoryStore) ListByOwner(_ context.Context, ownerID string, limit int) ([]domain.HistoryRecord, error) {
	s.mu.RLock()
	matched := make([]domain.HistoryRecord, 0)
	for _, r := range s.records {
		if r.OwnerID != nil && *r.OwnerID == ownerID {
			matched = append(matched, r)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}
