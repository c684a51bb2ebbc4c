package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ssto/internal/request/models"
	dErrors "ssto/pkg/domain-errors"
	"ssto/pkg/platform/sentinel"
	"ssto/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, r *models.TestRequest) error
	FindByID(ctx context.Context, id int64) (*models.TestRequest, error)
	List(ctx context.Context, statuses ...models.Status) ([]*models.TestRequest, error)
	UpdateStatus(ctx context.Context, id int64, expected, next models.Status, at time.Time) error
}

// Service files test requests and moves them through their lifecycle.
type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create files a request in DRAFT.
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.TestRequest, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid test request")
	}
	r := models.NewTestRequest(req.VesselName, req.MMSI, req.IMONumber, req.TerminalID,
		req.PlannedTestDate, req.TestDate, requestcontext.Now(ctx))
	if err := s.store.Create(ctx, r); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to create test request")
	}
	s.logger.InfoContext(ctx, "test request created",
		"request_id", r.ID,
		"terminal_id", r.TerminalID,
	)
	return r, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.TestRequest, error) {
	r, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "failed to load test request")
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, statuses ...models.Status) ([]*models.TestRequest, error) {
	out, err := s.store.List(ctx, statuses...)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to list test requests")
	}
	return out, nil
}

// Transition validates the move against the lifecycle and persists it with a
// compare-and-set, so a concurrent change surfaces as an invalid transition
// instead of being overwritten.
func (s *Service) Transition(ctx context.Context, id int64, next models.Status) (*models.TestRequest, error) {
	r, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "failed to load test request")
	}
	from := r.Status
	if err := r.Transition(next, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.store.UpdateStatus(ctx, id, from, next, r.UpdatedAt); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeInvalidTransition,
				fmt.Sprintf("request %d changed concurrently; %s to %s no longer applies", id, from, next))
		}
		return nil, translate(err, "failed to update test request")
	}
	s.logger.InfoContext(ctx, "test request transitioned",
		"request_id", id,
		"from", from,
		"to", next,
		"actor", requestcontext.Actor(ctx),
	)
	return r, nil
}

func translate(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "test request not found")
	}
	return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, msg)
}
