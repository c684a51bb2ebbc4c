package service

import (
	"context"

	"ssto/internal/signal/models"
)

// Stats summarizes signals by reconciliation status.
type Stats struct {
	Total                int                   `json:"total"`
	ByStatus             map[models.Status]int `json:"by_status"`
	UnmatchedTestSignals int                   `json:"unmatched_test_signals"`
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	counts, err := s.signals.CountByStatus(ctx)
	if err != nil {
		return nil, translate(err, "failed to count signals")
	}
	unmatched, err := s.signals.ListByStatus(ctx, models.StatusUnmatched)
	if err != nil {
		return nil, translate(err, "failed to list unmatched signals")
	}

	st := &Stats{ByStatus: map[models.Status]int{
		models.StatusUnmatched:      counts[models.StatusUnmatched],
		models.StatusMatched:        counts[models.StatusMatched],
		models.StatusManuallyLinked: counts[models.StatusManuallyLinked],
	}}
	for _, n := range st.ByStatus {
		st.Total += n
	}
	for _, sig := range unmatched {
		if sig.IsTestSignal {
			st.UnmatchedTestSignals++
		}
	}
	return st, nil
}
