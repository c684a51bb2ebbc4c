package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"ssto/internal/matching"
	"ssto/internal/signal/models"
	dErrors "ssto/pkg/domain-errors"
)

type FeedSort string

const (
	SortScore FeedSort = "score"
	SortTime  FeedSort = "time"
)

type SortDir string

const (
	DirAsc  SortDir = "asc"
	DirDesc SortDir = "desc"
)

// FeedQuery selects a page of the unmatched feed. Zero values take the
// defaults: score, descending, the configured page size.
type FeedQuery struct {
	Sort   FeedSort
	Dir    SortDir
	Limit  int
	Offset int
}

// FeedItem is an unmatched signal with its live suggestions. TopScore is 0
// when there are none.
type FeedItem struct {
	*models.Signal
	Suggestions      []matching.Suggestion `json:"suggestions"`
	OperatorMessages []string              `json:"operator_messages"`
	TopScore         int                   `json:"top_score"`
}

// FeedPage carries the total before paging.
type FeedPage struct {
	Count int         `json:"count"`
	Items []*FeedItem `json:"items"`
}

func (s *Service) normalizeQuery(q FeedQuery) (FeedQuery, error) {
	if q.Sort == "" {
		q.Sort = SortScore
	}
	if q.Dir == "" {
		q.Dir = DirDesc
	}
	if q.Sort != SortScore && q.Sort != SortTime {
		return q, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("sort must be score or time, got %q", q.Sort))
	}
	if q.Dir != DirAsc && q.Dir != DirDesc {
		return q, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("dir must be asc or desc, got %q", q.Dir))
	}
	if q.Offset < 0 {
		return q, dErrors.New(dErrors.CodeValidation, "offset must not be negative")
	}
	if q.Limit <= 0 {
		q.Limit = s.feed.DefaultLimit
	}
	if q.Limit > s.feed.MaxLimit {
		q.Limit = s.feed.MaxLimit
	}
	return q, nil
}

// ListUnmatched returns unmatched signals annotated with suggestions computed
// against the current candidate pool. Nothing is cached between reads.
func (s *Service) ListUnmatched(ctx context.Context, q FeedQuery) (*FeedPage, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "reconcile.ListUnmatched")
	defer span.End()

	q, err := s.normalizeQuery(q)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("feed.sort", string(q.Sort)),
		attribute.String("feed.dir", string(q.Dir)),
	)

	listCtx, cancel := s.withStoreTimeout(ctx)
	signals, err := s.signals.ListByStatus(listCtx, models.StatusUnmatched)
	cancel()
	if err != nil {
		return nil, translate(err, "failed to list unmatched signals")
	}
	candidates, err := s.eligibleCandidates(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*FeedItem, len(signals))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.feed.Workers)
	for i, sig := range signals {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ids := s.extractor.Extract(sig)
			sugg := s.engine.Suggest(ids, candidates, 0)
			item := &FeedItem{
				Signal:      sig,
				Suggestions: sugg,
				OperatorMessages: matching.OperatorMessages(matching.Outcome{
					Identifiers: ids,
					Suggestions: sugg,
				}),
			}
			if len(sugg) > 0 {
				item.TopScore = sugg[0].Score
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, translate(err, "feed scoring aborted")
	}

	sortFeed(items, q.Sort, q.Dir)
	page := &FeedPage{Count: len(items), Items: paginate(items, q.Offset, q.Limit)}

	span.SetAttributes(attribute.Int("feed.count", page.Count))
	s.metrics.ObserveFeedLatency(time.Since(start))
	return page, nil
}

// sortFeed orders by the requested key. Under score sort, signals without
// suggestions go last in either direction. Ties fall back to signal id.
func sortFeed(items []*FeedItem, by FeedSort, dir SortDir) {
	desc := dir == DirDesc
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch by {
		case SortScore:
			aHas, bHas := len(a.Suggestions) > 0, len(b.Suggestions) > 0
			if aHas != bHas {
				return aHas
			}
			if a.TopScore != b.TopScore {
				if desc {
					return a.TopScore > b.TopScore
				}
				return a.TopScore < b.TopScore
			}
		case SortTime:
			if !a.ReceivedAt.Equal(b.ReceivedAt) {
				if desc {
					return a.ReceivedAt.After(b.ReceivedAt)
				}
				return a.ReceivedAt.Before(b.ReceivedAt)
			}
		}
		return a.ID < b.ID
	})
}

func paginate(items []*FeedItem, offset, limit int) []*FeedItem {
	if offset >= len(items) {
		return []*FeedItem{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
