package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"ssto/internal/signal/models"
	"ssto/pkg/platform/sentinel"
)

// InMemory keeps signals and their link decisions in process memory. Every
// returned signal is a copy.
type InMemory struct {
	mu        sync.RWMutex
	nextID    int64
	signals   map[int64]*models.Signal
	decisions []*models.LinkDecision
}

func NewInMemory() *InMemory {
	return &InMemory{signals: make(map[int64]*models.Signal)}
}

// Create assigns the next id when sig.ID is zero.
func (s *InMemory) Create(_ context.Context, sig *models.Signal) error {
	if err := sig.Validate(); err != nil {
		return fmt.Errorf("create signal: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if sig.ID == 0 {
		s.nextID++
		sig.ID = s.nextID
	} else if _, exists := s.signals[sig.ID]; exists {
		return fmt.Errorf("create signal %d: %w", sig.ID, sentinel.ErrConflict)
	} else if sig.ID > s.nextID {
		s.nextID = sig.ID
	}
	s.signals[sig.ID] = sig.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id int64) (*models.Signal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sig, ok := s.signals[id]
	if !ok {
		return nil, fmt.Errorf("signal %d: %w", id, sentinel.ErrNotFound)
	}
	return sig.Clone(), nil
}

// SetStatus moves a signal from expected to next. A signal whose current
// status differs from expected is left alone and ErrConflict is returned.
func (s *InMemory) SetStatus(_ context.Context, id int64, expected, next models.Status, requestID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sig, ok := s.signals[id]
	if !ok {
		return fmt.Errorf("signal %d: %w", id, sentinel.ErrNotFound)
	}
	if sig.Status != expected {
		return fmt.Errorf("signal %d is %s, expected %s: %w", id, sig.Status, expected, sentinel.ErrConflict)
	}
	updated := sig.Clone()
	updated.Status = next
	updated.LinkedRequestID = requestID
	if err := updated.Validate(); err != nil {
		return fmt.Errorf("set signal status: %w: %w", sentinel.ErrInvalidState, err)
	}
	s.signals[id] = updated
	return nil
}

func (s *InMemory) AppendLinkDecision(_ context.Context, d *models.LinkDecision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *d
	s.decisions = append(s.decisions, &c)
	return nil
}

// ListLinkDecisions returns a signal's decisions in append order.
func (s *InMemory) ListLinkDecisions(_ context.Context, signalID int64) ([]*models.LinkDecision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.LinkDecision
	for _, d := range s.decisions {
		if d.SignalID == signalID {
			c := *d
			out = append(out, &c)
		}
	}
	return out, nil
}

// ListByStatus returns matching signals ordered by id.
func (s *InMemory) ListByStatus(_ context.Context, status models.Status) ([]*models.Signal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Signal
	for _, sig := range s.signals {
		if sig.Status == status {
			out = append(out, sig.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) CountByStatus(_ context.Context) (map[models.Status]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[models.Status]int, 3)
	for _, sig := range s.signals {
		counts[sig.Status]++
	}
	return counts, nil
}
