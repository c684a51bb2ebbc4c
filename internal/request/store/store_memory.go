package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ssto/internal/request/models"
	"ssto/pkg/platform/sentinel"
)

// InMemory is a request store for tests and single-node runs.
type InMemory struct {
	mu       sync.RWMutex
	nextID   int64
	requests map[int64]*models.TestRequest
}

func NewInMemory() *InMemory {
	return &InMemory{requests: make(map[int64]*models.TestRequest)}
}

func (s *InMemory) Create(_ context.Context, r *models.TestRequest) error {
	if !r.Status.IsValid() {
		return fmt.Errorf("create request: unknown status %q: %w", r.Status, sentinel.ErrInvalidState)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		s.nextID++
		r.ID = s.nextID
	} else if _, exists := s.requests[r.ID]; exists {
		return fmt.Errorf("create request %d: %w", r.ID, sentinel.ErrConflict)
	} else if r.ID > s.nextID {
		s.nextID = r.ID
	}
	s.requests[r.ID] = r.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id int64) (*models.TestRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("request %d: %w", id, sentinel.ErrNotFound)
	}
	return r.Clone(), nil
}

// FindEligibleCandidates returns APPROVED and IN_TESTING requests by id.
func (s *InMemory) FindEligibleCandidates(ctx context.Context) ([]*models.TestRequest, error) {
	return s.List(ctx, models.EligibleStatuses...)
}

// List returns requests in any of statuses (all when none given) by id.
func (s *InMemory) List(_ context.Context, statuses ...models.Status) ([]*models.TestRequest, error) {
	want := make(map[models.Status]bool, len(statuses))
	for _, st := range statuses {
		want[st] = true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.TestRequest, 0, len(s.requests))
	for _, r := range s.requests {
		if len(want) == 0 || want[r.Status] {
			out = append(out, r.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateStatus is a compare-and-set on status.
func (s *InMemory) UpdateStatus(_ context.Context, id int64, expected, next models.Status, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return fmt.Errorf("request %d: %w", id, sentinel.ErrNotFound)
	}
	if r.Status != expected {
		return fmt.Errorf("request %d is %s, expected %s: %w", id, r.Status, expected, sentinel.ErrConflict)
	}
	r.Status = next
	r.UpdatedAt = at
	return nil
}

func (s *InMemory) SetLinkedSignal(_ context.Context, requestID, signalID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[requestID]
	if !ok {
		return fmt.Errorf("request %d: %w", requestID, sentinel.ErrNotFound)
	}
	r.LinkedSignalID = signalID
	return nil
}

// ClearLinkedSignal unsets the link only while it still points at signalID.
func (s *InMemory) ClearLinkedSignal(_ context.Context, requestID, signalID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[requestID]
	if !ok {
		return fmt.Errorf("request %d: %w", requestID, sentinel.ErrNotFound)
	}
	if r.LinkedSignalID == signalID {
		r.LinkedSignalID = 0
	}
	return nil
}
