package service

import (
	"context"

	"ssto/internal/signal/models"
	dErrors "ssto/pkg/domain-errors"
	"ssto/pkg/requestcontext"
)

// Ingest stores a newly received signal as UNMATCHED and reconciles it. The
// stored signal is returned alongside the result even when reconciliation
// fails after the insert.
func (s *Service) Ingest(ctx context.Context, sig *models.Signal) (*models.Signal, *Result, error) {
	if sig == nil {
		return nil, nil, dErrors.New(dErrors.CodeBadRequest, "signal is required")
	}
	now := requestcontext.Now(ctx)
	stored := sig.Clone()
	stored.ID = 0
	stored.Status = models.StatusUnmatched
	stored.LinkedRequestID = 0
	stored.CreatedAt = now
	if stored.ReceivedAt.IsZero() {
		stored.ReceivedAt = now
	}
	stored.IsTestSignal = s.extractor.IsTestSignal(stored)

	createCtx, cancel := s.withStoreTimeout(ctx)
	err := s.signals.Create(createCtx, stored)
	cancel()
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to store signal",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, nil, translate(err, "failed to store signal")
	}

	s.logger.InfoContext(ctx, "signal ingested",
		"request_id", requestcontext.RequestID(ctx),
		"signal_id", stored.ID,
		"is_test_signal", stored.IsTestSignal,
	)

	res, err := s.Reconcile(ctx, stored)
	if err != nil {
		return stored, nil, err
	}
	if res.Matched {
		stored.Status = models.StatusMatched
		stored.LinkedRequestID = res.RequestID
	}
	return stored, res, nil
}

// ReconcileByID loads a stored signal and reconciles it.
func (s *Service) ReconcileByID(ctx context.Context, signalID int64) (*Result, error) {
	findCtx, cancel := s.withStoreTimeout(ctx)
	sig, err := s.signals.FindByID(findCtx, signalID)
	cancel()
	if err != nil {
		return nil, translate(err, "signal")
	}
	return s.Reconcile(ctx, sig)
}

// GetSignal returns one stored signal.
func (s *Service) GetSignal(ctx context.Context, signalID int64) (*models.Signal, error) {
	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()
	sig, err := s.signals.FindByID(ctx, signalID)
	if err != nil {
		return nil, translate(err, "signal")
	}
	return sig, nil
}
