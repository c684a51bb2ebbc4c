// Package service runs signal reconciliation: auto-linking by terminal id,
// operator suggestions, manual links and the unmatched feed.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"ssto/internal/matching"
	"ssto/internal/reconcile/lock"
	"ssto/internal/reconcile/metrics"
	"ssto/internal/signal/extract"
)

const (
	defaultStoreTimeout = 5 * time.Second
	defaultFeedLimit    = 50
	defaultFeedMaxLimit = 200
	defaultFeedWorkers  = 8
)

// FeedConfig bounds unmatched feed pages and scoring fan-out.
type FeedConfig struct {
	DefaultLimit int
	MaxLimit     int
	Workers      int
}

type Service struct {
	signals   SignalStore
	requests  RequestStore
	engine    *matching.Engine
	extractor *extract.Extractor

	locker       Locker
	tx           TxRunner
	audit        AuditPublisher
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	storeTimeout time.Duration
	feed         FeedConfig
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.audit = p
	}
}

// WithLocker replaces the in-process sharded lock, e.g. with a Redis lock
// shared between instances.
func WithLocker(l Locker) Option {
	return func(s *Service) {
		s.locker = l
	}
}

func WithTxRunner(tx TxRunner) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

// WithStoreTimeout bounds each store round trip. A shorter caller deadline
// still wins.
func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

func WithFeedConfig(cfg FeedConfig) Option {
	return func(s *Service) {
		if cfg.DefaultLimit > 0 {
			s.feed.DefaultLimit = cfg.DefaultLimit
		}
		if cfg.MaxLimit > 0 {
			s.feed.MaxLimit = cfg.MaxLimit
		}
		if cfg.Workers > 0 {
			s.feed.Workers = cfg.Workers
		}
	}
}

func New(signals SignalStore, requests RequestStore, engine *matching.Engine, extractor *extract.Extractor, opts ...Option) *Service {
	s := &Service{
		signals:      signals,
		requests:     requests,
		engine:       engine,
		extractor:    extractor,
		locker:       lock.NewSharded(),
		tx:           inlineTx{},
		logger:       slog.New(slog.DiscardHandler),
		tracer:       otel.Tracer("ssto/internal/reconcile/service"),
		storeTimeout: defaultStoreTimeout,
		feed: FeedConfig{
			DefaultLimit: defaultFeedLimit,
			MaxLimit:     defaultFeedMaxLimit,
			Workers:      defaultFeedWorkers,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) withStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

// commit runs fn under the signal's lock inside one transaction, all bounded
// by the store timeout.
func (s *Service) commit(ctx context.Context, signalID int64, fn func(ctx context.Context) error) error {
	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	unlock, err := s.locker.Lock(ctx, signalID)
	if err != nil {
		return err
	}
	defer unlock()

	return s.tx.RunInTx(ctx, fn)
}

func (s *Service) emit(ctx context.Context, event auditEvent) error {
	if s.audit == nil {
		return nil
	}
	return s.audit.Emit(ctx, event.toAudit(ctx))
}
